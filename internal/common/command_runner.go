package common

import (
	"context"

	"resumeaudit/internal/ai"
	"resumeaudit/internal/errors"
	"resumeaudit/internal/types"
)

// ResumeOperationFunc runs one operation on a decoded résumé. Token usage is
// nil for operations that do not call the model.
type ResumeOperationFunc[Output any] func(context.Context, types.ResumeRecord) (Output, *ai.TokenUsage, error)

// Analyzer lifts a pure analyzer into a ResumeOperationFunc
func Analyzer[Output any](fn func(types.ResumeRecord) Output) ResumeOperationFunc[Output] {
	return func(_ context.Context, r types.ResumeRecord) (Output, *ai.TokenUsage, error) {
		return fn(r), nil, nil
	}
}

// RunResumeCommand reads filename as a résumé, runs op on it and writes the
// formatted result through out.
func RunResumeCommand[Output any](
	ctx context.Context,
	logger *errors.Logger,
	out *OutputHandler,
	cmdConfig CommandConfig,
	filename string,
	op ResumeOperationFunc[Output],
) error {
	fileProcessor := NewFileProcessor(logger, cmdConfig.MaxFileSize)

	resume, err := fileProcessor.ReadResume(filename)
	if err != nil {
		return err
	}

	logger.Debug("Running resume command", "file", filename, "name", resume.Name, "domain", resume.Domain)

	result, tokenUsage, err := op(ctx, resume)
	if err != nil {
		return err
	}

	if tokenUsage != nil {
		logger.Info("AI token usage",
			"input_tokens", tokenUsage.InputTokens,
			"output_tokens", tokenUsage.OutputTokens,
			"total_tokens", tokenUsage.TotalTokens)
	}

	return out.HandleOutput(result, cmdConfig)
}
