// Package server exposes the analyzers, the résumé store and the assistant
// over a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"time"

	"resumeaudit/internal/ai"
	"resumeaudit/internal/config"
	resumeErrors "resumeaudit/internal/errors"
	"resumeaudit/internal/store"
	"resumeaudit/internal/types"
)

// ResumeRequest carries a raw résumé document
type ResumeRequest struct {
	Resume json.RawMessage `json:"resume" validate:"required"`
}

// ATSRequest is the body of POST /ats
type ATSRequest struct {
	Resume json.RawMessage `json:"resume" validate:"required"`
	Domain string          `json:"domain" validate:"omitempty,max=64"`
}

// SalaryRequest is the body of POST /salary
type SalaryRequest struct {
	Resume json.RawMessage `json:"resume" validate:"required"`
	Domain string          `json:"domain" validate:"omitempty,max=64"`
}

// JobsRequest is the body of POST /jobs
type JobsRequest struct {
	Resume json.RawMessage `json:"resume" validate:"required"`
	Domain string          `json:"domain" validate:"omitempty,max=64"`
}

// InsightsRequest is the body of POST /insights
type InsightsRequest struct {
	Domain string `json:"domain" validate:"max=64"`
}

// AdviseRequest is the body of POST /advise
type AdviseRequest struct {
	Resume   json.RawMessage `json:"resume" validate:"required"`
	Question string          `json:"question" validate:"required,max=2000"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Advisor answers résumé questions. *ai.Service implements it.
type Advisor interface {
	Advise(ctx context.Context, input types.AdviceInput, defaultDomain string) (types.AdviceOutput, *ai.TokenUsage, error)
	GetModelInfo(ctx context.Context) *ai.ModelInfo
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	AppConfig *config.Config
	TLSConfig config.TLSConfig

	APIKeys map[string]bool

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	MaxRequestSize int64

	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Store persists résumé slots
	Store store.Store
	// Advisor is nil when no AI key is configured
	Advisor Advisor

	Logger *resumeErrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// NewServerConfig derives the server settings from the application config
func NewServerConfig(appCfg *config.Config, version string) ServerConfig {
	rateLimit := appCfg.Server.RateLimit
	return ServerConfig{
		Host:           appCfg.Server.Host,
		Port:           appCfg.Server.Port,
		Version:        version,
		TLSConfig:      appCfg.Server.TLS,
		APIKeys:        appCfg.Server.APIKeys,
		ReadTimeout:    appCfg.Server.ReadTimeout,
		WriteTimeout:   appCfg.Server.WriteTimeout,
		IdleTimeout:    appCfg.Server.IdleTimeout,
		MaxRequestSize: appCfg.App.MaxFileSize,
		RateLimit:      &rateLimit,
	}
}

// NewServer creates a new Server. advisor may be nil.
func NewServer(appCfg *config.Config, cfg ServerConfig, st store.Store, advisor Advisor, logger *resumeErrors.Logger) *Server {
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window, cfg.RateLimit.BurstCapacity, logger)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		TLSConfig:      cfg.TLSConfig,
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Store:          st,
		Advisor:        advisor,
		Logger:         logger,
	}
}
