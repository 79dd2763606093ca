package ai

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"

	"resumeaudit/internal/config"
	apperrors "resumeaudit/internal/errors"
	"resumeaudit/internal/types"
)

const (
	defaultModelCheckTimeout = 10 * time.Second
	maxBackoff               = 30 * time.Second
)

// GeminiProvider implements AIProvider for Google Gemini
type GeminiProvider struct {
	models            modelsAPI
	config            *config.OperationAIConfig
	operation         string
	generateBreaker   *Breaker[*genai.GenerateContentResponse]
	modelBreaker      *Breaker[*genai.Model]
	modelCheckTimeout time.Duration
	baseDelay         time.Duration
	logger            *apperrors.Logger
}

var _ AIProvider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a Gemini provider for one operation
func NewGeminiProvider(ctx context.Context, cfg *config.OperationAIConfig, operation string, logger *apperrors.Logger) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, apperrors.NewAIError(apperrors.ErrCodeAIServiceFailed, "Failed to create Gemini client", err)
	}
	return newGeminiProvider(client.Models, cfg, operation, logger), nil
}

func newGeminiProvider(models modelsAPI, cfg *config.OperationAIConfig, operation string, logger *apperrors.Logger) *GeminiProvider {
	return &GeminiProvider{
		models:            models,
		config:            cfg,
		operation:         operation,
		generateBreaker:   NewGenerateBreaker(operation, cfg.CircuitBreaker, logger),
		modelBreaker:      NewModelBreaker(operation, cfg.CircuitBreaker, logger),
		modelCheckTimeout: defaultModelCheckTimeout,
		baseDelay:         time.Second,
		logger:            logger,
	}
}

// ModelInfo represents information about the AI model
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}

// GetModelInfo checks that the configured model is reachable
func (g *GeminiProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	info := &ModelInfo{Name: g.config.Model}

	checkCtx, cancel := context.WithTimeout(ctx, g.modelCheckTimeout)
	defer cancel()

	model, err := g.modelBreaker.Execute(func() (*genai.Model, error) {
		return g.models.Get(checkCtx, g.config.Model, &genai.GetModelConfig{})
	})
	if err != nil {
		info.Error = fmt.Sprintf("Failed to get model info: %v", err)
		g.logger.Warn("Model availability check failed",
			"model", g.config.Model,
			"provider", g.config.Provider,
			"error", err.Error())
		return info
	}

	info.Available = true
	info.DisplayName = model.DisplayName
	info.Version = model.Version
	return info
}

// backoff doubles per attempt, adds up to 10% jitter and caps at maxBackoff
func (g *GeminiProvider) backoff(attempt int) time.Duration {
	delay := g.baseDelay << (attempt - 1)
	if delay <= 0 || delay > maxBackoff {
		delay = maxBackoff
	}
	if jitterMax := int64(delay) / 10; jitterMax > 0 {
		if n, err := rand.Int(rand.Reader, big.NewInt(jitterMax)); err == nil {
			delay += time.Duration(n.Int64())
		}
	}
	return min(delay, maxBackoff)
}

// executeWithRetry retries retryable failures with exponential backoff
func (g *GeminiProvider) executeWithRetry(ctx context.Context, fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	maxRetries := *g.config.MaxRetries
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Warn("Retrying AI operation",
				"operation", g.operation,
				"attempt", attempt,
				"max_retries", maxRetries,
				"error", lastErr.Error())

			select {
			case <-time.After(g.backoff(attempt)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !isRetryableError(err) {
			break
		}
	}

	g.logger.LogError(lastErr, "AI operation failed",
		"operation", g.operation,
		"max_retries", maxRetries)
	return nil, fmt.Errorf("operation '%s' failed: %w", g.operation, lastErr)
}

// isRetryableError accepts network failures, rate limiting and 5xx responses
func isRetryableError(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var genaiErr genai.APIError
	if errors.As(err, &genaiErr) {
		return isRetryableStatus(genaiErr.Code)
	}
	var genaiPtr *genai.APIError
	if errors.As(err, &genaiPtr) && genaiPtr != nil {
		return isRetryableStatus(genaiPtr.Code)
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return isRetryableStatus(apiErr.Code)
	}
	return false
}

func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// adviseSchema constrains the model to {"answer": string}
func (g *GeminiProvider) adviseSchema() *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"answer": {Type: genai.TypeString},
			},
			Required: []string{"answer"},
		},
	}
	if *g.config.Temperature > 0 {
		cfg.Temperature = g.config.Temperature
	}
	return cfg
}

type adviseResponse struct {
	Answer string `json:"answer"`
}

// Advise answers a question about the résumé
func (g *GeminiProvider) Advise(ctx context.Context, input types.AdviceInput, domain string) (types.AdviceOutput, *TokenUsage, error) {
	ctx, span := otel.Tracer("resumeaudit.ai.gemini").Start(ctx, "gemini.advise")
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.config.Model),
		attribute.Float64("ai.temperature", float64(*g.config.Temperature)),
		attribute.String("resume.domain", domain),
		attribute.Int("input.question_length", len(input.Question)),
	)

	genCfg := g.adviseSchema()
	systemPrompt := resolvePrompt(g.config.CustomPrompts.SystemPrompt, DefaultAdviseSystemPrompt)
	if *g.config.UseSystemPrompts {
		genCfg.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}
	userPrompt := BuildAdvisePrompt(resolvePrompt(g.config.CustomPrompts.UserPrompt, DefaultAdviseUserPrompt), domain, input)

	result, err := g.generateBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return g.executeWithRetry(ctx, func() (*genai.GenerateContentResponse, error) {
			return g.models.GenerateContent(ctx, g.config.Model, genai.Text(userPrompt), genCfg)
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return types.AdviceOutput{}, nil, apperrors.NewAIError(apperrors.ErrCodeAIServiceFailed, "Failed to generate advice", err)
	}

	var parsed adviseResponse
	if err := json.Unmarshal([]byte(result.Text()), &parsed); err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return types.AdviceOutput{}, nil, apperrors.NewAIError(apperrors.ErrCodeAIResponseParse, "Failed to parse AI response", err)
	}

	usage := extractTokenUsage(result)
	if usage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", usage.InputTokens),
			attribute.Int64("ai.tokens.output", usage.OutputTokens),
			attribute.Int64("ai.tokens.total", usage.TotalTokens),
		)
	}
	span.SetAttributes(attribute.Bool("success", true))

	return types.AdviceOutput{Answer: strings.TrimSpace(parsed.Answer), Domain: domain}, usage, nil
}

// CircuitBreakerStats reports both breakers for the health endpoint
func (g *GeminiProvider) CircuitBreakerStats() map[string]any {
	return map[string]any{
		"ai_operations":    g.generateBreaker.Stats(),
		"model_operations": g.modelBreaker.Stats(),
		"overall_healthy":  g.generateBreaker.IsHealthy() && g.modelBreaker.IsHealthy(),
	}
}

// Close is a no-op; the genai client holds no long-lived resources in unary mode
func (g *GeminiProvider) Close() error {
	return nil
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

func extractTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}
	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}
