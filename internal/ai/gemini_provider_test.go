package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"

	"resumeaudit/internal/config"
	apperrors "resumeaudit/internal/errors"
	"resumeaudit/internal/types"
)

var testLogger = apperrors.NewLogger(slog.LevelError)

func timePtr(d time.Duration) *time.Duration { return &d }
func intPtr(i int) *int                      { return &i }
func float32Ptr(f float32) *float32          { return &f }
func boolPtr(b bool) *bool                   { return &b }

func countsOf(requests, failures uint32) gobreaker.Counts {
	return gobreaker.Counts{Requests: requests, TotalFailures: failures}
}

func testOpConfig() *config.OperationAIConfig {
	return &config.OperationAIConfig{
		Provider:         "gemini",
		Model:            "test-model",
		Timeout:          timePtr(30 * time.Second),
		APIKey:           "test-key",
		MaxRetries:       intPtr(2),
		Temperature:      float32Ptr(0.4),
		UseSystemPrompts: boolPtr(true),
		CircuitBreaker:   breakerConfig(),
	}
}

// fakeModels replays queued responses and records requests
type fakeModels struct {
	responses []fakeResponse
	calls     int
	prompts   []string
	configs   []*genai.GenerateContentConfig
	model     *genai.Model
	modelErr  error
}

type fakeResponse struct {
	text string
	err  error
}

func (f *fakeModels) GenerateContent(_ context.Context, _ string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.prompts = append(f.prompts, contents[0].Parts[0].Text)
	f.configs = append(f.configs, cfg)

	r := f.responses[min(f.calls, len(f.responses))-1]
	if r.err != nil {
		return nil, r.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: r.text}}},
		}},
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     120,
			CandidatesTokenCount: 30,
			TotalTokenCount:      150,
		},
	}, nil
}

func (f *fakeModels) Get(context.Context, string, *genai.GetModelConfig) (*genai.Model, error) {
	return f.model, f.modelErr
}

func newTestProvider(models *fakeModels, cfg *config.OperationAIConfig) *GeminiProvider {
	p := newGeminiProvider(models, cfg, OperationAdvise, testLogger)
	p.baseDelay = time.Millisecond
	return p
}

func adviceInput() types.AdviceInput {
	return types.AdviceInput{
		Resume: types.ResumeRecord{
			Name:   "Ada",
			Role:   "Data Engineer",
			Skills: []string{"Python", "SQL"},
		},
		Question: "  How do I improve my summary?  ",
	}
}

func TestGeminiProvider_Advise(t *testing.T) {
	models := &fakeModels{responses: []fakeResponse{{text: `{"answer": "  Lead with a metric.  "}`}}}
	p := newTestProvider(models, testOpConfig())

	out, usage, err := p.Advise(context.Background(), adviceInput(), "Data Science")
	require.NoError(t, err)

	assert.Equal(t, "Lead with a metric.", out.Answer)
	assert.Equal(t, "Data Science", out.Domain)
	require.NotNil(t, usage)
	assert.Equal(t, int64(150), usage.TotalTokens)

	require.Len(t, models.prompts, 1)
	prompt := models.prompts[0]
	assert.Contains(t, prompt, "The user is creating a Data Science resume.")
	assert.Contains(t, prompt, "- Skills: Python, SQL")
	assert.Contains(t, prompt, "- Summary: Not set")
	assert.True(t, strings.HasSuffix(prompt, "User question: How do I improve my summary?"))

	cfg := models.configs[0]
	assert.Equal(t, "application/json", cfg.ResponseMIMEType)
	assert.Equal(t, []string{"answer"}, cfg.ResponseSchema.Required)
	require.NotNil(t, cfg.SystemInstruction)
	assert.Equal(t, DefaultAdviseSystemPrompt, cfg.SystemInstruction.Parts[0].Text)
}

func TestGeminiProvider_CustomPrompts(t *testing.T) {
	cfg := testOpConfig()
	cfg.UseSystemPrompts = boolPtr(false)
	cfg.CustomPrompts = config.PromptConfig{UserPrompt: "[%s] %s Q: %s"}

	models := &fakeModels{responses: []fakeResponse{{text: `{"answer": "ok"}`}}}
	p := newTestProvider(models, cfg)

	_, _, err := p.Advise(context.Background(), adviceInput(), "IT")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(models.prompts[0], "[IT] Current resume data:"))
	assert.Nil(t, models.configs[0].SystemInstruction)
}

func TestGeminiProvider_RetriesRetryableErrors(t *testing.T) {
	models := &fakeModels{responses: []fakeResponse{
		{err: genai.APIError{Code: http.StatusServiceUnavailable, Status: "UNAVAILABLE"}},
		{err: fmt.Errorf("generate: %w", genai.APIError{Code: http.StatusTooManyRequests})},
		{text: `{"answer": "third time lucky"}`},
	}}
	p := newTestProvider(models, testOpConfig())

	out, _, err := p.Advise(context.Background(), adviceInput(), "IT")
	require.NoError(t, err)
	assert.Equal(t, "third time lucky", out.Answer)
	assert.Equal(t, 3, models.calls)
}

func TestGeminiProvider_DoesNotRetryClientErrors(t *testing.T) {
	models := &fakeModels{responses: []fakeResponse{{err: genai.APIError{Code: http.StatusBadRequest}}}}
	p := newTestProvider(models, testOpConfig())

	_, _, err := p.Advise(context.Background(), adviceInput(), "IT")
	require.Error(t, err)
	assert.Equal(t, 1, models.calls)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeAI))
}

func TestGeminiProvider_BadResponse(t *testing.T) {
	models := &fakeModels{responses: []fakeResponse{{text: `not json`}}}
	p := newTestProvider(models, testOpConfig())

	_, _, err := p.Advise(context.Background(), adviceInput(), "IT")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeAIResponseParse, appErr.Code)
}

func TestGeminiProvider_GetModelInfo(t *testing.T) {
	models := &fakeModels{model: &genai.Model{DisplayName: "Test Model", Version: "001"}}
	info := newTestProvider(models, testOpConfig()).GetModelInfo(context.Background())
	assert.True(t, info.Available)
	assert.Equal(t, "Test Model", info.DisplayName)
	assert.Equal(t, "test-model", info.Name)

	models = &fakeModels{modelErr: errors.New("not found")}
	info = newTestProvider(models, testOpConfig()).GetModelInfo(context.Background())
	assert.False(t, info.Available)
	assert.Contains(t, info.Error, "not found")
}

func TestGeminiProvider_CircuitBreakerStats(t *testing.T) {
	p := newTestProvider(&fakeModels{}, testOpConfig())
	stats := p.CircuitBreakerStats()

	assert.Equal(t, "AI-advise", stats["ai_operations"].(map[string]any)["name"])
	assert.Equal(t, "AI-Model-advise", stats["model_operations"].(map[string]any)["name"])
	assert.Equal(t, true, stats["overall_healthy"])
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"deadline", context.DeadlineExceeded, true},
		{"429", &googleapi.Error{Code: http.StatusTooManyRequests}, true},
		{"genai 429", genai.APIError{Code: http.StatusTooManyRequests}, true},
		{"genai 500 wrapped", fmt.Errorf("wrapped: %w", genai.APIError{Code: http.StatusInternalServerError}), true},
		{"genai 503 pointer", &genai.APIError{Code: http.StatusServiceUnavailable}, true},
		{"genai 404", genai.APIError{Code: http.StatusNotFound}, false},
		{"502 wrapped", errors.Join(errors.New("call"), &googleapi.Error{Code: http.StatusBadGateway}), true},
		{"401", &googleapi.Error{Code: http.StatusUnauthorized}, false},
		{"plain", errors.New("bad input"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableError(tt.err))
		})
	}
}

func TestBackoff(t *testing.T) {
	p := &GeminiProvider{baseDelay: time.Second}
	assert.GreaterOrEqual(t, p.backoff(1), time.Second)
	assert.Less(t, p.backoff(1), 1100*time.Millisecond)
	assert.GreaterOrEqual(t, p.backoff(3), 4*time.Second)
	assert.Equal(t, maxBackoff, p.backoff(10))
}
