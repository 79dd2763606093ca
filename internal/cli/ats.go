package cli

import (
	"context"

	"github.com/spf13/cobra"

	"resumeaudit/internal/ai"
	"resumeaudit/internal/ats"
	"resumeaudit/internal/common"
	"resumeaudit/internal/types"
)

var atsDomain string

var atsCmd = &cobra.Command{
	Use:   "ats FILE...",
	Short: "Score resumes for ATS readiness",
	Long: `Score one or more JSON resumes the way an applicant tracking system
would: summary, experience, skills, domain keyword coverage, education and
contact details. Several files are analyzed concurrently and reported in
argument order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runATS,
}

func init() {
	atsCmd.Flags().StringVar(&atsDomain, "domain", "", "Keyword domain (default: the resume's domain, then app.defaultDomain)")
}

func runATS(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())
	out := newOutput(cmd, logger)

	report := func(r types.ResumeRecord) types.ATSReport {
		return ats.Report(r, domainFor(atsDomain, r, cfg))
	}

	if len(args) == 1 {
		return common.RunResumeCommand(cmd.Context(), logger, out, commandConfig, args[0],
			func(_ context.Context, r types.ResumeRecord) (types.ATSReport, *ai.TokenUsage, error) {
				return report(r), nil, nil
			})
	}

	fp := common.NewFileProcessor(logger, commandConfig.MaxFileSize)
	reports, err := common.RunBatch(cmd.Context(), args, cfg.App.Concurrency,
		func(_ context.Context, file string) (types.ATSReport, error) {
			r, err := fp.ReadResume(file)
			if err != nil {
				return types.ATSReport{}, err
			}
			rep := report(r)
			rep.File = file
			return rep, nil
		})
	if err != nil {
		return err
	}

	logger.Info("Batch ATS analysis completed", "files", len(reports), "concurrency", cfg.App.Concurrency)
	return out.HandleOutput(reports, commandConfig)
}
