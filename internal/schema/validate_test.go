package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidDocuments(t *testing.T) {
	docs := map[string]string{
		"empty object": `{}`,
		"full": `{
			"name": "Ada", "role": "Engineer", "email": "ada@example.com",
			"summary": "Builds things.", "skills": ["Go", "SQL"],
			"experience": [{"role": "Dev", "company": "Acme", "startDate": "2020", "endDate": "", "description": "Led work."}],
			"education": [{"degree": "BSc", "institution": "Uni", "year": "2019"}],
			"projects": [{"title": "X", "description": "Y", "tech": ["Go"], "link": ""}],
			"domain": "IT", "profileImage": null, "id": null
		}`,
		"nulls for missing sections": `{"skills": null, "experience": null, "summary": null}`,
		"unknown fields tolerated":   `{"templateId": "modern", "customSections": []}`,
	}

	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, Validate([]byte(doc)))
		})
	}
}

func TestValidate_TypeMismatch(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{"experience not an array", `{"experience": "x"}`, "experience"},
		{"skills not strings", `{"skills": [1, 2]}`, "skills.0"},
		{"summary not a string", `{"summary": 42}`, "summary"},
		{"nested description", `{"experience": [{"description": ["a"]}]}`, "experience.0.description"},
		{"root not an object", `[1, 2]`, "(root)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate([]byte(tt.doc))
			require.Error(t, err)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "error should be ValidationError type")
			assert.Contains(t, validationErr.Fields(), tt.field)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}

func TestValidate_NotJSON(t *testing.T) {
	err := Validate([]byte(`name: Ada`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestDecodeResume(t *testing.T) {
	r, err := DecodeResume([]byte(`{"name": "Ada", "skills": ["Go"], "profileImage": "me.png", "experience": null}`))
	require.NoError(t, err)

	assert.Equal(t, "Ada", r.Name)
	assert.Equal(t, []string{"Go"}, r.Skills)
	assert.Nil(t, r.Experience)
	require.NotNil(t, r.ProfileImage)
	assert.Equal(t, "me.png", *r.ProfileImage)

	_, err = DecodeResume([]byte(`{"experience": "x"}`))
	assert.Error(t, err)
}
