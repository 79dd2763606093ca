package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateOutputFormat(t *testing.T) {
	supported := []string{"json", "yaml", "text", "markdown"}

	tests := []struct {
		name             string
		format           string
		supportedFormats []string
		expectedError    string
	}{
		{name: "json", format: "json", supportedFormats: supported},
		{name: "yaml", format: "yaml", supportedFormats: supported},
		{name: "markdown", format: "markdown", supportedFormats: supported},
		{
			name:             "xml rejected",
			format:           "xml",
			supportedFormats: supported,
			expectedError:    "unsupported output format 'xml'. Supported formats: [json yaml text markdown]",
		},
		{
			name:             "yaml not configured",
			format:           "yaml",
			supportedFormats: []string{"json", "text"},
			expectedError:    "unsupported output format 'yaml'. Supported formats: [json text]",
		},
		{
			name:             "case sensitive",
			format:           "JSON",
			supportedFormats: supported,
			expectedError:    "unsupported output format 'JSON'. Supported formats: [json yaml text markdown]",
		},
		{name: "no restrictions", format: "csv", supportedFormats: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format, tt.supportedFormats)
			if tt.expectedError == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.expectedError)
		})
	}
}

func TestResolveOutputFormat(t *testing.T) {
	supported := []string{"json", "yaml", "text", "markdown"}

	tests := []struct {
		requested string
		want      string
		wantErr   bool
	}{
		{requested: "", want: "json"},
		{requested: "YAML", want: "yaml"},
		{requested: " text ", want: "text"},
		{requested: "md", want: "markdown"},
		{requested: "html", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.requested, func(t *testing.T) {
			got, err := ResolveOutputFormat(tt.requested, "json", supported)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDomain(t *testing.T) {
	assert.Equal(t, "Finance", ResolveDomain("Finance", "Healthcare", "IT"))
	assert.Equal(t, "Healthcare", ResolveDomain("  ", "Healthcare", "IT"))
	assert.Equal(t, "IT", ResolveDomain("", "", "IT"))
	assert.Equal(t, "", ResolveDomain("", "", ""))
}

func BenchmarkValidateOutputFormat(b *testing.B) {
	supportedFormats := []string{"json", "yaml", "text", "markdown"}

	b.Run("valid format", func(b *testing.B) {
		for b.Loop() {
			_ = ValidateOutputFormat("markdown", supportedFormats)
		}
	})

	b.Run("invalid format", func(b *testing.B) {
		for b.Loop() {
			_ = ValidateOutputFormat("xml", supportedFormats)
		}
	})
}
