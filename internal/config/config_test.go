package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp runs the test from an empty directory so no config.yaml is picked up
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.App.DefaultFormat)
	assert.Equal(t, []string{"json", "yaml", "text", "markdown"}, cfg.App.SupportedFormats)
	assert.Equal(t, "IT", cfg.App.DefaultDomain)
	assert.Equal(t, 4, cfg.App.Concurrency)
	assert.Equal(t, StoreDriverFile, cfg.Store.Driver)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 500*time.Millisecond, cfg.Watch.DebounceDelay)
	assert.Empty(t, cfg.AI.APIKey)
	assert.Error(t, cfg.ValidateAI())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("RESUMEAUDIT_STORE_DRIVER", "sqlite")
	t.Setenv("RESUMEAUDIT_STORE_PATH", "resumes.db")
	t.Setenv("RESUMEAUDIT_APP_DEFAULTDOMAIN", "Finance")
	t.Setenv("RESUMEAUDIT_SERVER_APIKEYS", "k1, k2")
	t.Setenv("GEMINI_API_KEY", "legacy-key")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "resumes.db", cfg.Store.Path)
	assert.Equal(t, "Finance", cfg.App.DefaultDomain)
	assert.Equal(t, []string{"k1", "k2"}, cfg.Server.APIKeys)
	assert.Equal(t, "legacy-key", cfg.GetAdviseConfig().APIKey)
	assert.NoError(t, cfg.ValidateAI())
}

func TestLoadConfig_File(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("GEMINI_API_KEY", "")
	yaml := `
ai:
  apiKey: file-key
  advise:
    model: gemini-2.5-pro
app:
  defaultFormat: markdown
  concurrency: 2
store:
  driver: postgres
  databaseURL: postgres://localhost/resumes
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0600))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	advise := cfg.GetAdviseConfig()
	assert.Equal(t, "file-key", advise.APIKey)
	assert.Equal(t, "gemini-2.5-pro", advise.Model)
	assert.Equal(t, 45*time.Second, *advise.Timeout)
	assert.Equal(t, "markdown", cfg.App.DefaultFormat)
	assert.Equal(t, 2, cfg.App.Concurrency)
	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("store:\n  driver: mongo\n"), 0600))

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "invalid store driver: mongo")
}

func validConfig() Config {
	return Config{
		AI:     AIConfig{Timeout: time.Second},
		Server: ServerConfig{Port: "8080", TLS: TLSConfig{Mode: "disabled"}},
		App: AppConfig{
			DefaultFormat:    "json",
			SupportedFormats: []string{"json", "yaml"},
			Concurrency:      1,
		},
		Store: StoreConfig{Driver: StoreDriverFile, Path: "data"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		errorMsg string
	}{
		{"valid", func(*Config) {}, ""},
		{"zero AI timeout", func(c *Config) { c.AI.Timeout = 0 }, "AI timeout must be positive"},
		{"missing port", func(c *Config) { c.Server.Port = "" }, "server port is required"},
		{"unsupported format", func(c *Config) { c.App.DefaultFormat = "xml" }, "invalid default format: xml"},
		{"no concurrency", func(c *Config) { c.App.Concurrency = 0 }, "app concurrency must be at least 1"},
		{"sqlite without path", func(c *Config) { c.Store = StoreConfig{Driver: StoreDriverSQLite} }, "store path is required for the sqlite driver"},
		{"postgres without dsn", func(c *Config) { c.Store = StoreConfig{Driver: StoreDriverPostgres} }, "store databaseURL is required for the postgres driver"},
		{"bad TLS mode", func(c *Config) { c.Server.TLS.Mode = "on" }, "TLS configuration error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errorMsg)
		})
	}
}

func TestGetAdviseConfig_Fallbacks(t *testing.T) {
	useSystem := false
	cfg := Config{
		AI: AIConfig{
			Provider:         "gemini",
			Model:            "gemini-2.0-flash",
			Timeout:          time.Minute,
			APIKey:           "global",
			MaxRetries:       3,
			Temperature:      0.7,
			UseSystemPrompts: true,
			Advise:           OperationAIConfig{UseSystemPrompts: &useSystem},
		},
	}

	got := cfg.GetAdviseConfig()
	assert.Equal(t, "gemini", got.Provider)
	assert.Equal(t, "gemini-2.0-flash", got.Model)
	assert.Equal(t, time.Minute, *got.Timeout)
	assert.Equal(t, "global", got.APIKey)
	assert.Equal(t, 3, *got.MaxRetries)
	assert.InDelta(t, 0.7, float64(*got.Temperature), 1e-6)
	assert.False(t, *got.UseSystemPrompts)

	// the stored operation config is not modified
	assert.Nil(t, cfg.AI.Advise.Timeout)
}
