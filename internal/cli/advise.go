package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"resumeaudit/internal/ai"
	"resumeaudit/internal/common"
	"resumeaudit/internal/types"
)

var adviseQuestion string

var adviseCmd = &cobra.Command{
	Use:   "advise FILE",
	Short: "Ask the AI assistant a question about a resume",
	Long: `Send a short summary of the resume together with your question to the
configured language model and print its answer. Requires an AI API key
(RESUMEAUDIT_AI_APIKEY or GEMINI_API_KEY).`,
	Args: cobra.ExactArgs(1),
	RunE: runAdvise,
}

func init() {
	adviseCmd.Flags().StringVarP(&adviseQuestion, "question", "q", "", "Question for the assistant")
	_ = adviseCmd.MarkFlagRequired("question")
}

func runAdvise(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	adviseConfig := cfg.GetAdviseConfig()
	aiService, err := ai.NewService(cmd.Context(), &adviseConfig, logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}
	defer func() {
		if err := aiService.Close(); err != nil {
			logger.LogError(err, "Failed to close AI service")
		}
	}()

	logger.Info("Starting resume advice", "file", args[0], "model", adviseConfig.Model)

	return common.RunResumeCommand(cmd.Context(), logger, newOutput(cmd, logger), commandConfig, args[0],
		func(ctx context.Context, r types.ResumeRecord) (types.AdviceOutput, *ai.TokenUsage, error) {
			return aiService.Advise(ctx, types.AdviceInput{Resume: r, Question: adviseQuestion}, cfg.App.DefaultDomain)
		})
}
