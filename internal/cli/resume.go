package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"resumeaudit/internal/bias"
	"resumeaudit/internal/common"
	"resumeaudit/internal/errors"
	"resumeaudit/internal/store"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Manage resumes stored in the public, A and B slots",
	Long: `Save, show, list and delete stored resumes. The backend is chosen by
store.driver: file (default), sqlite or postgres.`,
}

var resumeSaveCmd = &cobra.Command{
	Use:   "save SLOT FILE",
	Short: "Validate a resume file and store it in SLOT",
	Args:  cobra.ExactArgs(2),
	RunE: withStore(func(ctx context.Context, cmd *cobra.Command, st store.Store, logger *errors.Logger, args []string) error {
		slot, file := args[0], args[1]
		r, err := common.NewFileProcessor(logger, commandConfig.MaxFileSize).ReadResume(file)
		if err != nil {
			return err
		}
		entry, err := st.Save(ctx, slot, r)
		if err != nil {
			return store.AsAppError(err, slot)
		}
		logger.Info("Resume saved", "slot", slot, "id", entry.ID, "file", file)
		return newOutput(cmd, logger).HandleOutput(*entry, commandConfig)
	}),
}

var resumeShowCmd = &cobra.Command{
	Use:   "show SLOT",
	Short: "Show the resume stored in SLOT",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(ctx context.Context, cmd *cobra.Command, st store.Store, logger *errors.Logger, args []string) error {
		entry, err := st.Get(ctx, args[0])
		if err != nil {
			return store.AsAppError(err, args[0])
		}
		return newOutput(cmd, logger).HandleOutput(*entry, commandConfig)
	}),
}

var resumeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored resumes",
	Args:  cobra.NoArgs,
	RunE: withStore(func(ctx context.Context, cmd *cobra.Command, st store.Store, logger *errors.Logger, args []string) error {
		entries, err := st.List(ctx)
		if err != nil {
			return store.AsAppError(err, "")
		}
		if entries == nil {
			entries = []store.Entry{}
		}
		return newOutput(cmd, logger).HandleOutput(entries, commandConfig)
	}),
}

var resumeDeleteCmd = &cobra.Command{
	Use:   "delete SLOT",
	Short: "Delete the resume stored in SLOT",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(ctx context.Context, cmd *cobra.Command, st store.Store, logger *errors.Logger, args []string) error {
		if err := st.Delete(ctx, args[0]); err != nil {
			return store.AsAppError(err, args[0])
		}
		logger.Info("Resume deleted", "slot", args[0])
		fmt.Fprintf(cmd.ErrOrStderr(), "Deleted slot %s\n", args[0])
		return nil
	}),
}

var resumeBiasCmd = &cobra.Command{
	Use:   "bias SLOT",
	Short: "Analyze the resume in SLOT for bias and cache the result",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(ctx context.Context, cmd *cobra.Command, st store.Store, logger *errors.Logger, args []string) error {
		slot := args[0]
		entry, err := st.Get(ctx, slot)
		if err != nil {
			return store.AsAppError(err, slot)
		}
		report := bias.Report(entry.Resume)
		if err := st.RecordBias(ctx, slot, report.Result.Score, report.Result.Issues); err != nil {
			return store.AsAppError(err, slot)
		}
		return newOutput(cmd, logger).HandleOutput(report, commandConfig)
	}),
}

type storeFunc func(ctx context.Context, cmd *cobra.Command, st store.Store, logger *errors.Logger, args []string) error

// withStore opens the configured store for the duration of one command
func withStore(fn storeFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		logger := getLoggerFromContext(cmd.Context())

		st, err := store.Open(cmd.Context(), cfg.Store, logger)
		if err != nil {
			return errors.NewStorageError(errors.ErrCodeStoreUnavailable, "failed to open resume store", err)
		}
		defer func() {
			if err := st.Close(); err != nil {
				logger.LogError(err, "Failed to close resume store")
			}
		}()

		return fn(cmd.Context(), cmd, st, logger, args)
	}
}

func init() {
	resumeCmd.AddCommand(resumeSaveCmd, resumeShowCmd, resumeListCmd, resumeDeleteCmd, resumeBiasCmd)
}
