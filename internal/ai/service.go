// Package ai answers résumé questions with a hosted language model.
package ai

import (
	"context"
	"fmt"
	"strings"

	"resumeaudit/internal/ats"
	"resumeaudit/internal/config"
	"resumeaudit/internal/errors"
	"resumeaudit/internal/types"
)

// OperationAdvise names the advise operation in breakers, spans and metrics
const OperationAdvise = "advise"

// Service handles AI operations for résumé advice
type Service struct {
	Provider AIProvider
	config   *config.OperationAIConfig
	logger   *errors.Logger
}

// NewService creates a service for the advise operation
func NewService(ctx context.Context, cfg *config.OperationAIConfig, logger *errors.Logger) (*Service, error) {
	if cfg.APIKey == "" {
		return nil, errors.NewConfigError(errors.ErrCodeMissingAPIKey, "AI API key is not configured", nil)
	}

	logger.Debug("Initializing AI service",
		"provider", cfg.Provider,
		"operation_type", OperationAdvise,
		"model", cfg.Model,
		"temperature", *cfg.Temperature,
		"timeout", *cfg.Timeout,
		"max_retries", *cfg.MaxRetries,
		"use_system_prompts", *cfg.UseSystemPrompts)

	var provider AIProvider
	switch cfg.Provider {
	case "gemini":
		p, err := NewGeminiProvider(ctx, cfg, OperationAdvise, logger)
		if err != nil {
			return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed, "Failed to create AI provider", err)
		}
		provider = p
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported AI provider: %s", cfg.Provider), nil)
	}

	return NewServiceWithProvider(provider, cfg, logger), nil
}

// NewServiceWithProvider wraps an existing provider
func NewServiceWithProvider(provider AIProvider, cfg *config.OperationAIConfig, logger *errors.Logger) *Service {
	return &Service{Provider: provider, config: cfg, logger: logger}
}

// AdviseDomain picks the domain the assistant is told about: the résumé's own,
// else the configured default, else IT
func AdviseDomain(r types.ResumeRecord, defaultDomain string) string {
	for _, d := range []string{r.Domain, defaultDomain} {
		if d = strings.TrimSpace(d); d != "" {
			return d
		}
	}
	return ats.DefaultDomain
}

// Advise validates the question and asks the provider
func (s *Service) Advise(ctx context.Context, input types.AdviceInput, defaultDomain string) (types.AdviceOutput, *TokenUsage, error) {
	if strings.TrimSpace(input.Question) == "" {
		return types.AdviceOutput{}, nil, errors.NewValidationError(errors.ErrCodeInvalidRequest, "question is required", nil)
	}
	domain := AdviseDomain(input.Resume, defaultDomain)
	s.logger.Debug("Requesting advice", "domain", domain, "question_length", len(input.Question))
	return s.Provider.Advise(ctx, input, domain)
}

// GetModelInfo returns information about the AI model for health checks
func (s *Service) GetModelInfo(ctx context.Context) *ModelInfo {
	return s.Provider.GetModelInfo(ctx)
}

// Close releases the provider
func (s *Service) Close() error {
	return s.Provider.Close()
}
