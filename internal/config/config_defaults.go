package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// AI
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("ai.apiKey", "")
	v.SetDefault("ai.maxRetries", 3)
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.useSystemPrompts", true)
	v.SetDefault("ai.customPrompts.systemPrompt", "")
	v.SetDefault("ai.customPrompts.systemPromptFile", "")
	v.SetDefault("ai.customPrompts.userPrompt", "")
	v.SetDefault("ai.customPrompts.userPromptFile", "")

	// AI - advise operation
	v.SetDefault("ai.advise.provider", "gemini")
	v.SetDefault("ai.advise.model", "")
	v.SetDefault("ai.advise.timeout", 45*time.Second)
	v.SetDefault("ai.advise.apiKey", "")
	v.SetDefault("ai.advise.maxRetries", 2)
	v.SetDefault("ai.advise.temperature", 0.4)
	v.SetDefault("ai.advise.useSystemPrompts", true)
	v.SetDefault("ai.advise.customPrompts.systemPrompt", "")
	v.SetDefault("ai.advise.customPrompts.systemPromptFile", "")
	v.SetDefault("ai.advise.customPrompts.userPrompt", "")
	v.SetDefault("ai.advise.customPrompts.userPromptFile", "")
	v.SetDefault("ai.advise.circuitBreaker.enabled", true)
	v.SetDefault("ai.advise.circuitBreaker.maxRequests", 3)
	v.SetDefault("ai.advise.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("ai.advise.circuitBreaker.timeout", 60*time.Second)
	v.SetDefault("ai.advise.circuitBreaker.minRequests", 3)
	v.SetDefault("ai.advise.circuitBreaker.failureThreshold", 0.6)

	// Server
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", 30*time.Second)
	v.SetDefault("server.writeTimeout", 60*time.Second)
	v.SetDefault("server.idleTimeout", 120*time.Second)
	v.SetDefault("server.tls.mode", "disabled")
	v.SetDefault("server.tls.certFile", "")
	v.SetDefault("server.tls.keyFile", "")
	v.SetDefault("server.tls.caFile", "")
	v.SetDefault("server.tls.certContent", "")
	v.SetDefault("server.tls.keyContent", "")
	v.SetDefault("server.tls.caContent", "")
	v.SetDefault("server.tls.minVersion", "1.2")
	v.SetDefault("server.tls.cipherSuites", []string{})
	v.SetDefault("server.tls.clientAuthPolicy", "require")
	v.SetDefault("server.apiKeys", []string{})
	v.SetDefault("server.rateLimit.enabled", false)
	v.SetDefault("server.rateLimit.requests", 60)
	v.SetDefault("server.rateLimit.burstCapacity", 10)
	v.SetDefault("server.rateLimit.byIP", true)
	v.SetDefault("server.rateLimit.byAPIKey", false)
	v.SetDefault("server.rateLimit.window", time.Minute)

	// App
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "json")
	v.SetDefault("app.supportedFormats", []string{"json", "yaml", "text", "markdown"})
	v.SetDefault("app.maxFileSize", 1024*1024) // 1MB
	v.SetDefault("app.defaultDomain", "IT")
	v.SetDefault("app.concurrency", 4)

	// Store
	v.SetDefault("store.driver", StoreDriverFile)
	v.SetDefault("store.path", ".resumeaudit")
	v.SetDefault("store.databaseURL", "")
	v.SetDefault("store.maxConns", 4)
	v.SetDefault("store.circuitBreaker.enabled", true)
	v.SetDefault("store.circuitBreaker.maxRequests", 1)
	v.SetDefault("store.circuitBreaker.interval", 30*time.Second)
	v.SetDefault("store.circuitBreaker.timeout", 15*time.Second)
	v.SetDefault("store.circuitBreaker.minRequests", 5)
	v.SetDefault("store.circuitBreaker.failureThreshold", 0.5)

	// Watch
	v.SetDefault("watch.debounceDelay", 500*time.Millisecond)

	// Vault
	v.SetDefault("vault.enabled", false)
	v.SetDefault("vault.address", "")
	v.SetDefault("vault.token", "")
	v.SetDefault("vault.tokenFile", "")
	v.SetDefault("vault.namespace", "")
	v.SetDefault("vault.secrets.apiKeys", "")
	v.SetDefault("vault.secrets.geminiKey", "")
	v.SetDefault("vault.secrets.tlsCerts", "")
	v.SetDefault("vault.secrets.databaseURL", "")

	// Observability
	v.SetDefault("observability.enabled", true)
	v.SetDefault("observability.serviceName", "resumeaudit")
	v.SetDefault("observability.serviceVersion", "")
	v.SetDefault("observability.serviceInstance", "")
	v.SetDefault("observability.consoleOutput", false)
	v.SetDefault("observability.sampleRate", 1.0)
	v.SetDefault("observability.tracing.enabled", true)
	v.SetDefault("observability.tracing.sampleRate", 1.0)
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.collectionInterval", 15*time.Second)
	v.SetDefault("observability.customMetrics.aiOperations.enabled", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackDuration", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackTokenUsage", true)
	v.SetDefault("observability.customMetrics.businessMetrics.enabled", true)
	v.SetDefault("observability.customMetrics.businessMetrics.trackSuccessRates", true)
	v.SetDefault("observability.customMetrics.businessMetrics.trackScores", true)
	v.SetDefault("observability.customMetrics.infrastructure.enabled", true)
	v.SetDefault("observability.customMetrics.infrastructure.trackRateLimits", true)
	v.SetDefault("observability.customMetrics.infrastructure.trackStore", true)
	v.SetDefault("observability.console.enabled", false)
	v.SetDefault("observability.console.prettyPrint", true)
	v.SetDefault("observability.prometheus.enabled", true)
	v.SetDefault("observability.prometheus.endpoint", "/metrics")
	v.SetDefault("observability.prometheus.port", "9090")
	v.SetDefault("observability.otlp.enabled", false)
	v.SetDefault("observability.otlp.endpoint", "http://localhost:4318")
	v.SetDefault("observability.otlp.insecure", true)
	v.SetDefault("observability.otlp.headers", map[string]string{})
	v.SetDefault("observability.healthCheck.timeout", 15*time.Second)
	v.SetDefault("observability.healthCheck.aiModelCheckTimeout", 10*time.Second)
}
