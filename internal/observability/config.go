package observability

import (
	"resumeaudit/internal/config"
)

// GetObservabilityConfig derives the manager settings from the loaded config
func GetObservabilityConfig(cfg *config.Config, version string) ObservabilityConfig {
	obs := cfg.Observability

	serviceVersion := obs.ServiceVersion
	if serviceVersion == "" {
		serviceVersion = version
	}

	sampleRate := obs.Tracing.SampleRate
	if sampleRate <= 0 {
		sampleRate = obs.SampleRate
	}

	return ObservabilityConfig{
		ServiceName:     obs.ServiceName,
		ServiceVersion:  serviceVersion,
		ServiceInstance: obs.ServiceInstance,
		Enabled:         obs.Enabled,
		TracingEnabled:  obs.Tracing.Enabled,
		MetricsEnabled:  obs.Metrics.Enabled,
		ConsoleOutput:   obs.ConsoleOutput || obs.Console.Enabled,
		PrettyPrint:     obs.Console.PrettyPrint,
		SampleRate:      sampleRate,
		Prometheus: PrometheusConfig{
			Enabled:  obs.Prometheus.Enabled,
			Endpoint: obs.Prometheus.Endpoint,
			Port:     obs.Prometheus.Port,
		},
	}
}
