package server

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	"resumeaudit/internal/config"
)

// cipherSuitesByName lists the suites that may be configured by name
var cipherSuitesByName = map[string]uint16{
	"TLS_AES_128_GCM_SHA256":                  tls.TLS_AES_128_GCM_SHA256,
	"TLS_AES_256_GCM_SHA384":                  tls.TLS_AES_256_GCM_SHA384,
	"TLS_CHACHA20_POLY1305_SHA256":            tls.TLS_CHACHA20_POLY1305_SHA256,
	"TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256": tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
	"TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384": tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
	"TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256":   tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
	"TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384":   tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
	"TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305":  tls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305,
	"TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305":    tls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305,
}

// buildTLSConfig returns the listener TLS settings for cfg.Mode, or nil when
// TLS is disabled
func buildTLSConfig(cfg config.TLSConfig) (*tls.Config, error) {
	switch cfg.Mode {
	case "disabled", "":
		return nil, nil
	case "server", "mutual":
	default:
		return nil, fmt.Errorf("invalid TLS mode: %s (must be 'disabled', 'server', or 'mutual')", cfg.Mode)
	}

	cert, err := loadServerCertificate(cfg)
	if err != nil {
		return nil, err
	}

	tlsConfig := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
		ClientAuth:   tls.NoClientCert,
	}
	if cfg.MinVersion == "1.3" {
		tlsConfig.MinVersion = tls.VersionTLS13
	}

	for _, name := range cfg.CipherSuites {
		if id, ok := cipherSuitesByName[name]; ok {
			tlsConfig.CipherSuites = append(tlsConfig.CipherSuites, id)
		}
	}

	if cfg.Mode == "mutual" {
		pool, err := loadCAPool(cfg)
		if err != nil {
			return nil, err
		}
		tlsConfig.ClientCAs = pool
		tlsConfig.ClientAuth = clientAuthPolicy(cfg.ClientAuthPolicy)
	}

	return tlsConfig, nil
}

// loadServerCertificate prefers inline PEM content over files
func loadServerCertificate(cfg config.TLSConfig) (tls.Certificate, error) {
	if cfg.CertContent != "" && cfg.KeyContent != "" {
		cert, err := tls.X509KeyPair([]byte(cfg.CertContent), []byte(cfg.KeyContent))
		if err != nil {
			return tls.Certificate{}, fmt.Errorf("failed to load server cert/key from content: %w", err)
		}
		return cert, nil
	}

	if cfg.CertFile != "" && cfg.KeyFile != "" {
		cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
		if err != nil {
			return tls.Certificate{}, fmt.Errorf("failed to load server cert/key from files: %w", err)
		}
		return cert, nil
	}

	return tls.Certificate{}, fmt.Errorf("TLS certificate and key are required (provide either files or content)")
}

func loadCAPool(cfg config.TLSConfig) (*x509.CertPool, error) {
	caPEM := []byte(cfg.CAContent)
	if len(caPEM) == 0 {
		if cfg.CAFile == "" {
			return nil, fmt.Errorf("CA certificate is required for mutual TLS mode (provide either caFile or caContent)")
		}
		var err error
		if caPEM, err = os.ReadFile(cfg.CAFile); err != nil {
			return nil, fmt.Errorf("failed to read CA file: %w", err)
		}
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caPEM) {
		return nil, fmt.Errorf("failed to append CA cert")
	}
	return pool, nil
}

func clientAuthPolicy(policy string) tls.ClientAuthType {
	switch policy {
	case "request":
		return tls.RequestClientCert
	case "verify":
		return tls.VerifyClientCertIfGiven
	default:
		return tls.RequireAndVerifyClientCert
	}
}
