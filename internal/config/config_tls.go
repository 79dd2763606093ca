package config

import "fmt"

// pemSource is one TLS input that may come from a file or inline content
type pemSource struct {
	name    string
	file    string
	content string
}

func (s pemSource) set() bool { return s.file != "" || s.content != "" }

func (s pemSource) validate() error {
	if s.file != "" && s.content != "" {
		return fmt.Errorf("cannot specify both %sFile and %sContent - choose one", s.name, s.name)
	}
	return nil
}

// ValidateTLSConfig validates the TLS configuration
func (c *Config) ValidateTLSConfig() error {
	tls := c.Server.TLS
	if err := validateTLSMode(tls); err != nil {
		return err
	}
	return validateTLSVersion(tls.MinVersion)
}

func validateTLSMode(tls TLSConfig) error {
	cert := pemSource{"cert", tls.CertFile, tls.CertContent}
	key := pemSource{"key", tls.KeyFile, tls.KeyContent}
	ca := pemSource{"ca", tls.CAFile, tls.CAContent}

	switch tls.Mode {
	case "disabled":
		return nil
	case "server", "mutual":
	default:
		return fmt.Errorf("invalid TLS mode: %s (must be 'disabled', 'server', or 'mutual')", tls.Mode)
	}

	if !cert.set() || !key.set() {
		return fmt.Errorf("TLS certificate and key are required for %s mode (provide either files or content)", tls.Mode)
	}
	if tls.Mode == "mutual" && !ca.set() {
		return fmt.Errorf("CA certificate is required for mutual TLS mode (provide either caFile or caContent)")
	}
	for _, src := range []pemSource{cert, key, ca} {
		if err := src.validate(); err != nil {
			return err
		}
	}
	if tls.Mode == "mutual" {
		return validateClientAuthPolicy(tls.ClientAuthPolicy)
	}
	return nil
}

func validateClientAuthPolicy(policy string) error {
	switch policy {
	case "require", "request", "verify", "":
		return nil
	}
	return fmt.Errorf("invalid clientAuthPolicy: %s (must be 'require', 'request', or 'verify')", policy)
}

func validateTLSVersion(version string) error {
	switch version {
	case "", "1.2", "1.3":
		return nil
	}
	return fmt.Errorf("invalid TLS minVersion: %s (must be '1.2' or '1.3')", version)
}
