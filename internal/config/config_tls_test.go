package config

import (
	"testing"
)

func TestValidateTLSConfig(t *testing.T) {
	tests := []struct {
		name        string
		tls         TLSConfig
		expectError bool
		errorMsg    string
	}{
		{
			name:        "disabled ignores everything else",
			tls:         TLSConfig{Mode: "disabled", CertFile: "a", CertContent: "b"},
			expectError: false,
		},
		{
			name:        "server with files",
			tls:         TLSConfig{Mode: "server", CertFile: "cert.pem", KeyFile: "key.pem", MinVersion: "1.3"},
			expectError: false,
		},
		{
			name:        "server with inline content",
			tls:         TLSConfig{Mode: "server", CertContent: "-----BEGIN", KeyContent: "-----BEGIN"},
			expectError: false,
		},
		{
			name:        "invalid mode",
			tls:         TLSConfig{Mode: "optional"},
			expectError: true,
			errorMsg:    "invalid TLS mode: optional (must be 'disabled', 'server', or 'mutual')",
		},
		{
			name:        "server missing key",
			tls:         TLSConfig{Mode: "server", CertFile: "cert.pem"},
			expectError: true,
			errorMsg:    "TLS certificate and key are required for server mode (provide either files or content)",
		},
		{
			name:        "duplicate cert source",
			tls:         TLSConfig{Mode: "server", CertFile: "cert.pem", CertContent: "x", KeyFile: "key.pem"},
			expectError: true,
			errorMsg:    "cannot specify both certFile and certContent - choose one",
		},
		{
			name:        "mutual missing CA",
			tls:         TLSConfig{Mode: "mutual", CertFile: "cert.pem", KeyFile: "key.pem"},
			expectError: true,
			errorMsg:    "CA certificate is required for mutual TLS mode (provide either caFile or caContent)",
		},
		{
			name:        "mutual duplicate CA source",
			tls:         TLSConfig{Mode: "mutual", CertFile: "c", KeyFile: "k", CAFile: "ca", CAContent: "x"},
			expectError: true,
			errorMsg:    "cannot specify both caFile and caContent - choose one",
		},
		{
			name:        "mutual bad client auth policy",
			tls:         TLSConfig{Mode: "mutual", CertFile: "c", KeyFile: "k", CAFile: "ca", ClientAuthPolicy: "maybe"},
			expectError: true,
			errorMsg:    "invalid clientAuthPolicy: maybe (must be 'require', 'request', or 'verify')",
		},
		{
			name:        "mutual default client auth policy",
			tls:         TLSConfig{Mode: "mutual", CertFile: "c", KeyFile: "k", CAFile: "ca"},
			expectError: false,
		},
		{
			name:        "bad min version",
			tls:         TLSConfig{Mode: "server", CertFile: "c", KeyFile: "k", MinVersion: "1.1"},
			expectError: true,
			errorMsg:    "invalid TLS minVersion: 1.1 (must be '1.2' or '1.3')",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Server: ServerConfig{TLS: tt.tls}}
			err := cfg.ValidateTLSConfig()

			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error but got none")
				}
				if err.Error() != tt.errorMsg {
					t.Errorf("expected error %q, got %q", tt.errorMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
