package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"resumeaudit/internal/ai"
	"resumeaudit/internal/config"
	"resumeaudit/internal/errors"
	"resumeaudit/internal/server"
	"resumeaudit/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start an HTTP server exposing the analyzers and the resume store.

Endpoints:
- GET /health, GET /stats
- POST /ats, /bias, /bias/replace, /insights, /salary, /advise
- GET /resumes, GET|PUT|DELETE /resumes/{slot}, POST /resumes/{slot}/bias

/advise needs an AI API key; without one it answers 503 and every other
endpoint keeps working.

TLS Configuration:
- Use --tls-mode to set TLS mode: disabled, server, mutual
- Use --cert-file and --key-file for TLS certificates
- Use --ca-file for mutual TLS client certificate verification`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (default from config)")
	serveCmd.Flags().String("host", "", "Host to bind to (default from config)")
	serveCmd.Flags().String("tls-mode", "", "TLS mode: disabled, server, mutual (overrides config)")
	serveCmd.Flags().String("cert-file", "", "Server certificate file (PEM, overrides config)")
	serveCmd.Flags().String("key-file", "", "Server private key file (PEM, overrides config)")
	serveCmd.Flags().String("ca-file", "", "CA certificate file for client cert verification (PEM, overrides config)")
}

// applyServeFlags copies explicitly set flags over the loaded config
func applyServeFlags(cmd *cobra.Command, cfg *config.Config) {
	overrides := map[string]*string{
		"port":      &cfg.Server.Port,
		"host":      &cfg.Server.Host,
		"tls-mode":  &cfg.Server.TLS.Mode,
		"cert-file": &cfg.Server.TLS.CertFile,
		"key-file":  &cfg.Server.TLS.KeyFile,
		"ca-file":   &cfg.Server.TLS.CAFile,
	}
	for name, target := range overrides {
		if cmd.Flags().Changed(name) {
			*target, _ = cmd.Flags().GetString(name)
		}
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	applyServeFlags(cmd, cfg)
	if err := cfg.ValidateTLSConfig(); err != nil {
		return fmt.Errorf("invalid TLS configuration: %w", err)
	}

	st, err := store.Open(cmd.Context(), cfg.Store, logger)
	if err != nil {
		return errors.NewStorageError(errors.ErrCodeStoreUnavailable, "failed to open resume store", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.LogError(err, "Failed to close resume store")
		}
	}()

	var advisor server.Advisor
	adviseConfig := cfg.GetAdviseConfig()
	aiService, err := ai.NewService(cmd.Context(), &adviseConfig, logger)
	switch {
	case err == nil:
		advisor = aiService
		defer func() {
			if err := aiService.Close(); err != nil {
				logger.LogError(err, "Failed to close AI service")
			}
		}()
	case isMissingAPIKey(err):
		logger.Warn("AI API key not configured, /advise is disabled")
	default:
		return err
	}

	srv := server.NewServer(cfg, server.NewServerConfig(cfg, Version), st, advisor, logger)
	return srv.Start(cmd.Context())
}

func isMissingAPIKey(err error) bool {
	appErr, ok := errors.AsAppError(err)
	return ok && appErr.Code == errors.ErrCodeMissingAPIKey
}
