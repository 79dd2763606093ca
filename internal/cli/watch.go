package cli

import (
	"github.com/spf13/cobra"

	"resumeaudit/internal/ats"
	"resumeaudit/internal/bias"
	"resumeaudit/internal/common"
	"resumeaudit/internal/types"
	"resumeaudit/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch FILE...",
	Short: "Re-run ATS and bias analysis whenever a resume changes",
	Long: `Analyze each file once, then keep watching and print a fresh combined
ATS and bias report every time a file is saved. Bursts of writes are
debounced (watch.debounceDelay). Stop with Ctrl+C.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

// auditFile reads one résumé and runs both analyzers on it
func auditFile(fp *common.FileProcessor, file, defaultDomain string) (types.AuditReport, error) {
	r, err := fp.ReadResume(file)
	if err != nil {
		return types.AuditReport{}, err
	}
	domain := common.ResolveDomain("", r.Domain, defaultDomain)
	return types.AuditReport{
		File: file,
		ATS:  ats.Report(r, domain),
		Bias: bias.Report(r),
	}, nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())
	out := newOutput(cmd, logger)
	fp := common.NewFileProcessor(logger, commandConfig.MaxFileSize)

	report := func(files []string) {
		for _, file := range files {
			audit, err := auditFile(fp, file, cfg.App.DefaultDomain)
			if err != nil {
				logger.LogError(err, "Analysis failed", "file", file)
				continue
			}
			if err := out.HandleOutput(audit, commandConfig); err != nil {
				logger.LogError(err, "Failed to write report", "file", file)
			}
		}
	}

	w, err := watch.New(args, cfg.Watch.DebounceDelay, report, logger)
	if err != nil {
		return err
	}

	report(w.Files())

	if err := w.Start(); err != nil {
		return err
	}
	<-cmd.Context().Done()

	logger.Info("Stopping file watcher")
	return w.Stop()
}
