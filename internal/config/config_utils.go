package config

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// legacyGeminiKeyEnv is honoured when no AI key is configured
const legacyGeminiKeyEnv = "GEMINI_API_KEY"

// applyFallbacks fills values that viper cannot express as plain defaults
func (c *Config) applyFallbacks() {
	c.applyAIKeyFallback()
	c.applyServerAPIKeyFallbacks()
	c.applyTLSDefaults()
	c.applyObservabilityDefaults()
}

func (c *Config) applyAIKeyFallback() {
	if c.AI.APIKey == "" {
		c.AI.APIKey = os.Getenv(legacyGeminiKeyEnv)
	}
}

// applyServerAPIKeyFallbacks normalizes server API keys, reading a comma
// separated list from the environment when none are configured
func (c *Config) applyServerAPIKeyFallbacks() {
	keys := c.Server.APIKeys
	if len(keys) == 0 {
		if apiKeysEnv := os.Getenv(EnvPrefix + "_SERVER_APIKEYS"); apiKeysEnv != "" {
			keys = strings.Split(apiKeysEnv, ",")
		}
	}

	var cleaned []string
	for _, key := range keys {
		if key = strings.TrimSpace(key); key != "" {
			cleaned = append(cleaned, key)
		}
	}
	c.Server.APIKeys = cleaned
}

func (c *Config) applyTLSDefaults() {
	if c.Server.TLS.Mode == "mutual" && c.Server.TLS.ClientAuthPolicy == "" {
		c.Server.TLS.ClientAuthPolicy = "require"
	}
	if c.Server.TLS.MinVersion == "" && c.Server.TLS.Mode != "disabled" {
		c.Server.TLS.MinVersion = "1.2"
	}
}

func (c *Config) applyObservabilityDefaults() {
	if c.Observability.ServiceInstance == "" {
		c.Observability.ServiceInstance = generateServiceInstanceID(c.Observability.ServiceName)
	}
}

// generateServiceInstanceID derives an instance ID from the hostname
func generateServiceInstanceID(serviceName string) string {
	if hostname, err := os.Hostname(); err == nil {
		return fmt.Sprintf("%s-%s", serviceName, hostname)
	}
	return fmt.Sprintf("%s-1", serviceName)
}

// maskValue hides secrets in configuration logs
func maskValue(name, value string) string {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "key") || strings.Contains(lower, "url") || strings.Contains(lower, "token") {
		return "***MASKED***"
	}
	return value
}

// logConfigurationSources logs a summary of configuration sources being used
func (c *Config) logConfigurationSources(configFileUsed string) {
	log.Println("[CONFIG] === Configuration Sources Summary ===")

	if configFileUsed != "" {
		log.Printf("[CONFIG] Config file: %s", configFileUsed)
	} else {
		log.Println("[CONFIG] Config file: None (using defaults)")
	}

	envVars := []string{
		EnvPrefix + "_AI_APIKEY",
		EnvPrefix + "_AI_MODEL",
		EnvPrefix + "_SERVER_PORT",
		EnvPrefix + "_SERVER_HOST",
		EnvPrefix + "_APP_LOGLEVEL",
		EnvPrefix + "_APP_DEFAULTDOMAIN",
		EnvPrefix + "_STORE_DRIVER",
		EnvPrefix + "_STORE_PATH",
		EnvPrefix + "_STORE_DATABASEURL",
		EnvPrefix + "_VAULT_ENABLED",
		legacyGeminiKeyEnv,
	}

	log.Println("[CONFIG] Environment variables:")
	hasEnvVars := false
	for _, envVar := range envVars {
		if value := os.Getenv(envVar); value != "" {
			log.Printf("[CONFIG]   %s=%s", envVar, maskValue(envVar, value))
			hasEnvVars = true
		}
	}
	if !hasEnvVars {
		log.Println("[CONFIG]   None set")
	}

	log.Println("[CONFIG] === Key Configuration Values ===")
	log.Printf("[CONFIG] AI Provider: %s, Model: %s", c.AI.Provider, c.AI.Model)
	if c.AI.APIKey != "" {
		log.Println("[CONFIG] AI API Key: ***CONFIGURED***")
	} else {
		log.Println("[CONFIG] AI API Key: ***NOT SET*** (advise disabled)")
	}
	log.Printf("[CONFIG] Advise - Provider: %s, Model: %s", c.AI.Advise.Provider, c.AI.Advise.Model)
	log.Printf("[CONFIG] Server: %s:%s (TLS %s)", c.Server.Host, c.Server.Port, c.Server.TLS.Mode)
	log.Printf("[CONFIG] Log Level: %s", c.App.LogLevel)
	log.Printf("[CONFIG] Default Domain: %s", c.App.DefaultDomain)
	log.Printf("[CONFIG] Store Driver: %s", c.Store.Driver)
	log.Printf("[CONFIG] Vault Enabled: %t", c.Vault.Enabled)
	log.Printf("[CONFIG] Observability Enabled: %t", c.Observability.Enabled)
	log.Println("[CONFIG] =====================================")
}
