package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersionValue(t *testing.T) {
	tests := []struct {
		name        string
		input       any
		expected    int64
		expectError bool
	}{
		{name: "int64 value", input: int64(42), expected: 42},
		{name: "float64 value", input: float64(42.0), expected: 42},
		{name: "string value", input: "42", expected: 42},
		{name: "invalid string value", input: "not-a-number", expectError: true},
		{name: "unsupported type", input: []string{"42"}, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseVersionValue(tt.input, "secret/data/test")
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDecodeKVv2(t *testing.T) {
	t.Run("valid secret", func(t *testing.T) {
		secret, err := decodeKVv2(map[string]any{
			"data":     map[string]any{"api_key": "k"},
			"metadata": map[string]any{"version": float64(3)},
		}, "secret/data/gemini")
		require.NoError(t, err)
		assert.Equal(t, int64(3), secret.Version)
		assert.Equal(t, "k", secret.Data["api_key"])
	})

	t.Run("missing data", func(t *testing.T) {
		_, err := decodeKVv2(map[string]any{"metadata": map[string]any{}}, "p")
		assert.ErrorContains(t, err, "missing 'data' field")
	})

	t.Run("missing metadata", func(t *testing.T) {
		_, err := decodeKVv2(map[string]any{"data": map[string]any{}}, "p")
		assert.ErrorContains(t, err, "missing 'metadata' field")
	})

	t.Run("missing version", func(t *testing.T) {
		_, err := decodeKVv2(map[string]any{
			"data":     map[string]any{},
			"metadata": map[string]any{},
		}, "p")
		assert.ErrorContains(t, err, "missing 'version' field")
	})
}

func TestVaultSecretStringField(t *testing.T) {
	secret := &VaultSecret{Data: map[string]any{"url": "postgres://db", "n": 5}}

	v, err := secret.stringField("p", "url")
	require.NoError(t, err)
	assert.Equal(t, "postgres://db", v)

	_, err = secret.stringField("p", "missing")
	assert.ErrorContains(t, err, "key 'missing' not found")

	_, err = secret.stringField("p", "n")
	assert.ErrorContains(t, err, "is not a string")
}

func TestApplyGeminiKeyToConfig(t *testing.T) {
	config := &Config{}
	applyGeminiKeyToConfig(config, "vault-key")
	assert.Equal(t, "vault-key", config.AI.APIKey)
	assert.Equal(t, "vault-key", config.AI.Advise.APIKey)

	config = &Config{AI: AIConfig{Advise: OperationAIConfig{APIKey: "advise-key"}}}
	applyGeminiKeyToConfig(config, "vault-key")
	assert.Equal(t, "vault-key", config.AI.APIKey)
	assert.Equal(t, "advise-key", config.AI.Advise.APIKey)

	config = &Config{AI: AIConfig{APIKey: "file-key"}}
	applyGeminiKeyToConfig(config, "")
	assert.Equal(t, "file-key", config.AI.APIKey)
}

func TestResolveVaultToken(t *testing.T) {
	t.Run("token from config", func(t *testing.T) {
		token, err := resolveVaultToken(VaultConfig{Token: "direct-token", TokenFile: "/ignored"})
		assert.NoError(t, err)
		assert.Equal(t, "direct-token", token)
	})

	t.Run("token from file", func(t *testing.T) {
		tokenFile := filepath.Join(t.TempDir(), "vault-token")
		require.NoError(t, os.WriteFile(tokenFile, []byte("  file-token  \n"), 0600))

		token, err := resolveVaultToken(VaultConfig{TokenFile: tokenFile})
		assert.NoError(t, err)
		assert.Equal(t, "file-token", token)
	})

	t.Run("missing token file", func(t *testing.T) {
		_, err := resolveVaultToken(VaultConfig{TokenFile: "/nonexistent/token/file"})
		assert.ErrorContains(t, err, "failed to read vault token file")
	})

	t.Run("blank token file", func(t *testing.T) {
		tokenFile := filepath.Join(t.TempDir(), "empty-token")
		require.NoError(t, os.WriteFile(tokenFile, []byte("   \n"), 0600))

		_, err := resolveVaultToken(VaultConfig{TokenFile: tokenFile})
		assert.ErrorContains(t, err, "vault token is required")
	})

	t.Run("no token", func(t *testing.T) {
		_, err := resolveVaultToken(VaultConfig{})
		assert.ErrorContains(t, err, "vault token is required")
	})
}

func TestLoadTLSCertificateContent(t *testing.T) {
	config := &Config{}
	n := loadTLSCertificateContent(config, &VaultSecret{Data: map[string]any{
		"cert": "CERT",
		"key":  "KEY",
		"ca":   "",
	}})

	assert.Equal(t, 2, n)
	assert.Equal(t, "CERT", config.Server.TLS.CertContent)
	assert.Equal(t, "KEY", config.Server.TLS.KeyContent)
	assert.Empty(t, config.Server.TLS.CAContent)
}

func TestRejectTLSFilePaths(t *testing.T) {
	assert.NoError(t, rejectTLSFilePaths(&VaultSecret{Data: map[string]any{"cert": "x"}}))

	err := rejectTLSFilePaths(&VaultSecret{Data: map[string]any{"key_file": "/etc/key.pem"}})
	assert.ErrorContains(t, err, "'key_file' field is no longer supported")
	assert.ErrorContains(t, err, "'key' field instead")
}

func TestSplitListAndMask(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b "))
	assert.Equal(t, []string{}, splitList(""))

	assert.Equal(t, "abcd****mnop", maskSecret("abcdefghijklmnop"))
	assert.Equal(t, "****", maskSecret("short"))
	assert.Equal(t, "", maskSecret(""))
}

func TestApplyVaultSecretsDisabled(t *testing.T) {
	config := &Config{AI: AIConfig{APIKey: "kept"}}
	require.NoError(t, ApplyVaultSecrets(config, nil))
	assert.Equal(t, "kept", config.AI.APIKey)

	client, err := NewVaultClient(VaultConfig{Enabled: false}, nil)
	assert.NoError(t, err)
	assert.Nil(t, client)
}
