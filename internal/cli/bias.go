package cli

import (
	"github.com/spf13/cobra"

	"resumeaudit/internal/bias"
	"resumeaudit/internal/common"
)

var biasCmd = &cobra.Command{
	Use:   "bias FILE",
	Short: "Flag gendered, age-related and passive wording",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := getLoggerFromContext(cmd.Context())
		return common.RunResumeCommand(cmd.Context(), logger, newOutput(cmd, logger), commandConfig, args[0],
			common.Analyzer(bias.Report))
	},
}

var debiasCmd = &cobra.Command{
	Use:   "debias FILE",
	Short: "Rewrite flagged wording and show the bias score before and after",
	Long: `Replace every flagged word or phrase in the summary, experience and
project descriptions with its neutral alternative. The rewritten resume is
printed together with the bias analysis of the original and of the result.
An attached profile photo is reported but left in place.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := getLoggerFromContext(cmd.Context())
		return common.RunResumeCommand(cmd.Context(), logger, newOutput(cmd, logger), commandConfig, args[0],
			common.Analyzer(bias.Debias))
	},
}
