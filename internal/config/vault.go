package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/vault/api"

	"resumeaudit/internal/errors"
)

// VaultConfig holds Vault connection configuration
type VaultConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Address   string `mapstructure:"address"`
	Token     string `mapstructure:"token"`
	TokenFile string `mapstructure:"tokenFile"`
	Namespace string `mapstructure:"namespace"`

	Secrets VaultSecrets `mapstructure:"secrets"`
}

// VaultSecrets holds KVv2 paths of the secrets to load. Empty paths are skipped.
type VaultSecrets struct {
	APIKeys     string `mapstructure:"apiKeys"`     // key "keys", comma separated
	GeminiKey   string `mapstructure:"geminiKey"`   // key "api_key"
	TLSCerts    string `mapstructure:"tlsCerts"`    // keys "cert", "key", "ca" with PEM content
	DatabaseURL string `mapstructure:"databaseURL"` // key "url", postgres DSN for the store
}

// VaultSecret is a secret read from a KVv2 engine
type VaultSecret struct {
	Data    map[string]any
	Version int64
}

// VaultClient wraps the Vault API client
type VaultClient struct {
	client *api.Client
	logger *errors.Logger
}

func orDiscard(logger *errors.Logger) *errors.Logger {
	if logger != nil {
		return logger
	}
	return errors.NewLoggerWithWriter(io.Discard, slog.LevelError)
}

// NewVaultClient connects to Vault. It returns nil when Vault is disabled.
func NewVaultClient(cfg VaultConfig, logger *errors.Logger) (*VaultClient, error) {
	logger = orDiscard(logger)
	if !cfg.Enabled {
		logger.Debug("Vault integration disabled")
		return nil, nil
	}

	vaultCfg := api.DefaultConfig()
	if cfg.Address != "" {
		vaultCfg.Address = cfg.Address
	}
	client, err := api.NewClient(vaultCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}
	if cfg.Namespace != "" {
		client.SetNamespace(cfg.Namespace)
	}

	token, err := resolveVaultToken(cfg)
	if err != nil {
		return nil, err
	}
	client.SetToken(token)

	health, err := client.Sys().Health()
	if err != nil {
		logger.LogError(err, "Failed to connect to Vault", "address", vaultCfg.Address)
		return nil, fmt.Errorf("failed to connect to vault: %w", err)
	}
	logger.Info("Connected to Vault",
		"address", vaultCfg.Address,
		"version", health.Version,
		"sealed", health.Sealed)

	return &VaultClient{client: client, logger: logger}, nil
}

// resolveVaultToken prefers the inline token over the token file
func resolveVaultToken(cfg VaultConfig) (string, error) {
	token := cfg.Token
	if token == "" && cfg.TokenFile != "" {
		raw, err := os.ReadFile(cfg.TokenFile)
		if err != nil {
			return "", fmt.Errorf("failed to read vault token file: %w", err)
		}
		token = strings.TrimSpace(string(raw))
	}
	if token == "" {
		return "", fmt.Errorf("vault token is required when vault is enabled")
	}
	return token, nil
}

// GetSecretV2 reads a secret from a KVv2 engine
func (vc *VaultClient) GetSecretV2(path string) (*VaultSecret, error) {
	if vc == nil {
		return nil, fmt.Errorf("vault client not initialized")
	}
	secret, err := vc.client.Logical().Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret from %s: %w", path, err)
	}
	if secret == nil || secret.Data == nil {
		return nil, fmt.Errorf("secret not found at path: %s", path)
	}
	return decodeKVv2(secret.Data, path)
}

// decodeKVv2 splits a raw KVv2 payload into data and version
func decodeKVv2(raw map[string]any, path string) (*VaultSecret, error) {
	data, ok := raw["data"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("secret at %s is not in KVv2 format (missing 'data' field)", path)
	}
	metadata, ok := raw["metadata"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("secret at %s is not in KVv2 format (missing 'metadata' field)", path)
	}
	versionRaw, ok := metadata["version"]
	if !ok {
		return nil, fmt.Errorf("secret metadata at %s is missing 'version' field", path)
	}
	version, err := parseVersionValue(versionRaw, path)
	if err != nil {
		return nil, err
	}
	return &VaultSecret{Data: data, Version: version}, nil
}

// parseVersionValue accepts the numeric encodings Vault and JSON produce
func parseVersionValue(versionRaw any, path string) (int64, error) {
	switch v := versionRaw.(type) {
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	case string:
		version, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("could not parse secret version at %s: %w", path, err)
		}
		return version, nil
	default:
		return 0, fmt.Errorf("unexpected type for version at %s: %T", path, versionRaw)
	}
}

// stringField returns a string value from secret data
func (s *VaultSecret) stringField(path, key string) (string, error) {
	value, ok := s.Data[key]
	if !ok {
		return "", fmt.Errorf("key '%s' not found in secret %s", key, path)
	}
	str, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("value for key '%s' is not a string in secret %s", key, path)
	}
	return str, nil
}

// GetStringSecret reads one string value
func (vc *VaultClient) GetStringSecret(path, key string) (string, error) {
	secret, err := vc.GetSecretV2(path)
	if err != nil {
		return "", err
	}
	value, err := secret.stringField(path, key)
	if err != nil {
		return "", err
	}
	vc.logger.Debug("String secret retrieved from Vault", "path", path, "key", key, "masked_value", maskSecret(value))
	return value, nil
}

func maskSecret(value string) string {
	switch {
	case len(value) > 8:
		return value[:4] + "****" + value[len(value)-4:]
	case value != "":
		return "****"
	}
	return ""
}

// splitList splits a comma separated secret, dropping blanks
func splitList(value string) []string {
	result := []string{}
	for part := range strings.SplitSeq(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

// ApplyVaultSecrets loads the configured secrets from Vault into config
func ApplyVaultSecrets(config *Config, logger *errors.Logger) error {
	logger = orDiscard(logger)
	if !config.Vault.Enabled {
		logger.Debug("Vault integration disabled, skipping secret loading")
		return nil
	}

	client, err := NewVaultClient(config.Vault, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize vault client: %w", err)
	}
	if err := applySecrets(client, config, logger); err != nil {
		return err
	}
	logger.Info("Applied secrets from Vault")
	return nil
}

func applySecrets(client *VaultClient, config *Config, logger *errors.Logger) error {
	paths := config.Vault.Secrets

	if paths.APIKeys != "" {
		value, err := client.GetStringSecret(paths.APIKeys, "keys")
		if err != nil {
			return fmt.Errorf("failed to load API keys from vault: %w", err)
		}
		if keys := splitList(value); len(keys) > 0 {
			config.Server.APIKeys = keys
			logger.Info("API keys loaded from Vault", "count", len(keys))
		}
	}

	if paths.GeminiKey != "" {
		key, err := client.GetStringSecret(paths.GeminiKey, "api_key")
		if err != nil {
			return fmt.Errorf("failed to load Gemini API key from vault: %w", err)
		}
		applyGeminiKeyToConfig(config, key)
	}

	if paths.DatabaseURL != "" {
		dsn, err := client.GetStringSecret(paths.DatabaseURL, "url")
		if err != nil {
			return fmt.Errorf("failed to load database URL from vault: %w", err)
		}
		if dsn != "" {
			config.Store.DatabaseURL = dsn
		}
	}

	if paths.TLSCerts != "" {
		secret, err := client.GetSecretV2(paths.TLSCerts)
		if err != nil {
			return fmt.Errorf("failed to load TLS certificates from vault: %w", err)
		}
		if err := rejectTLSFilePaths(secret); err != nil {
			return err
		}
		n := loadTLSCertificateContent(config, secret)
		logger.Info("TLS certificates loaded from Vault", "certificates_loaded", n)
	}

	return nil
}

// applyGeminiKeyToConfig sets the global key and fills an unset advise key
func applyGeminiKeyToConfig(config *Config, geminiKey string) {
	if geminiKey == "" {
		return
	}
	config.AI.APIKey = geminiKey
	if config.AI.Advise.APIKey == "" {
		config.AI.Advise.APIKey = geminiKey
	}
}

// loadTLSCertificateContent copies PEM content into the TLS config and
// returns how many fields were set
func loadTLSCertificateContent(config *Config, secret *VaultSecret) int {
	targets := []struct {
		key    string
		target *string
	}{
		{"cert", &config.Server.TLS.CertContent},
		{"key", &config.Server.TLS.KeyContent},
		{"ca", &config.Server.TLS.CAContent},
	}

	loaded := 0
	for _, t := range targets {
		if content, ok := secret.Data[t.key].(string); ok && content != "" {
			*t.target = content
			loaded++
		}
	}
	return loaded
}

// rejectTLSFilePaths refuses file path fields, Vault must hold PEM content
func rejectTLSFilePaths(secret *VaultSecret) error {
	for _, field := range []string{"cert_file", "key_file", "ca_file"} {
		if _, ok := secret.Data[field]; ok {
			return fmt.Errorf("vault TLS configuration error: '%s' field is no longer supported. Store certificate content in '%s' field instead",
				field, strings.TrimSuffix(field, "_file"))
		}
	}
	return nil
}
