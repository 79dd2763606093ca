package ai

import (
	"context"

	"google.golang.org/genai"

	"resumeaudit/internal/types"
)

// AIProvider answers résumé questions. Token usage may be nil.
type AIProvider interface {
	Advise(ctx context.Context, input types.AdviceInput, domain string) (types.AdviceOutput, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}

// modelsAPI is the part of genai.Models the provider calls
type modelsAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	Get(ctx context.Context, model string, config *genai.GetModelConfig) (*genai.Model, error)
}
