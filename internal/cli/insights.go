package cli

import (
	"context"

	"github.com/spf13/cobra"

	"resumeaudit/internal/ai"
	"resumeaudit/internal/common"
	"resumeaudit/internal/insights"
	"resumeaudit/internal/types"
)

var (
	insightsDomain string
	salaryDomain   string
	jobsDomain     string
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show career strengths and growth areas for a domain",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		logger := getLoggerFromContext(cmd.Context())

		insight := insights.Career(domainFor(insightsDomain, types.ResumeRecord{}, cfg))
		return newOutput(cmd, logger).HandleOutput(insight, commandConfig)
	},
}

var salaryCmd = &cobra.Command{
	Use:   "salary FILE",
	Short: "Estimate a salary band from role, experience, skills and degree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		logger := getLoggerFromContext(cmd.Context())

		return common.RunResumeCommand(cmd.Context(), logger, newOutput(cmd, logger), commandConfig, args[0],
			func(_ context.Context, r types.ResumeRecord) (types.SalaryEstimate, *ai.TokenUsage, error) {
				return insights.EstimateSalary(r, domainFor(salaryDomain, r, cfg)), nil, nil
			})
	},
}

var jobsCmd = &cobra.Command{
	Use:   "jobs FILE",
	Short: "List sample job openings for the resume's domain, best match first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		logger := getLoggerFromContext(cmd.Context())

		return common.RunResumeCommand(cmd.Context(), logger, newOutput(cmd, logger), commandConfig, args[0],
			func(_ context.Context, r types.ResumeRecord) (types.JobAlerts, *ai.TokenUsage, error) {
				return insights.Jobs(r, domainFor(jobsDomain, r, cfg)), nil, nil
			})
	},
}

func init() {
	insightsCmd.Flags().StringVar(&insightsDomain, "domain", "", "Career domain (default: app.defaultDomain)")
	salaryCmd.Flags().StringVar(&salaryDomain, "domain", "", "Salary table domain (default: the resume's domain)")
	jobsCmd.Flags().StringVar(&jobsDomain, "domain", "", "Job table domain (default: the resume's domain)")
}
