package cli

import (
	"context"

	"github.com/spf13/cobra"

	"resumeaudit/internal/ats"
	"resumeaudit/internal/common"
	"resumeaudit/internal/config"
	"resumeaudit/internal/errors"
	"resumeaudit/internal/formatters"
	"resumeaudit/internal/types"
)

type configKeyType struct{}
type loggerKeyType struct{}

var configKey = configKeyType{}
var loggerKey = loggerKeyType{}

// outputFlags holds the raw persistent flags; commandConfig is the resolved
// form every subcommand writes with
var (
	outputFlags   common.CommandConfig
	commandConfig common.CommandConfig
)

var rootCmd = &cobra.Command{
	Use:   "resumeaudit",
	Short: "Score resumes for ATS readiness and biased wording",
	Long: `resumeaudit checks structured JSON resumes the way an applicant
tracking system would, flags gendered, age-related and passive wording,
estimates salary bands and stores resumes in named slots. It can also
serve the same analyses over HTTP.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: resolveOutput,
}

func Execute(ctx context.Context, cfg *config.Config, logger *errors.Logger) error {
	ctx = context.WithValue(ctx, configKey, cfg)
	ctx = context.WithValue(ctx, loggerKey, logger)
	rootCmd.SetContext(ctx)
	return rootCmd.Execute()
}

func getConfigFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg
	}
	panic("config not found in context") // Execute always sets it
}

func getLoggerFromContext(ctx context.Context) *errors.Logger {
	if logger, ok := ctx.Value(loggerKey).(*errors.Logger); ok {
		return logger
	}
	panic("logger not found in context")
}

// resolveOutput applies the configured default format and size limit
func resolveOutput(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())

	format, err := common.ResolveOutputFormat(outputFlags.OutputFormat, cfg.App.DefaultFormat, cfg.App.SupportedFormats)
	if err != nil {
		return err
	}

	commandConfig = common.CommandConfig{
		OutputFile:   outputFlags.OutputFile,
		OutputFormat: format,
		MaxFileSize:  cfg.App.MaxFileSize,
	}
	return nil
}

// newOutput writes to the command's stdout unless --output is set
func newOutput(cmd *cobra.Command, logger *errors.Logger) *common.OutputHandler {
	return common.NewOutputHandlerWithWriter(logger, cmd.OutOrStdout())
}

// domainFor picks the --domain flag, the résumé's domain, the configured
// default, then IT
func domainFor(flag string, r types.ResumeRecord, cfg *config.Config) string {
	if d := common.ResolveDomain(flag, r.Domain, cfg.App.DefaultDomain); d != "" {
		return d
	}
	return ats.DefaultDomain
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFlags.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.PersistentFlags().StringVar(&outputFlags.OutputFormat, "format", "", "Output format: json, yaml, text, or markdown")

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return formatters.GlobalRegistry.GetSupportedFormats(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(atsCmd)
	rootCmd.AddCommand(biasCmd)
	rootCmd.AddCommand(debiasCmd)
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(salaryCmd)
	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(adviseCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
