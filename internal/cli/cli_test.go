package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumeaudit/internal/common"
	"resumeaudit/internal/config"
	"resumeaudit/internal/errors"
	"resumeaudit/internal/store"
	"resumeaudit/internal/types"
)

const resumeJSON = `{
	"name": "Ada Lovelace",
	"role": "Software Engineer",
	"email": "ada@example.com",
	"summary": "Seasoned engineer who worked on analytics tooling.",
	"skills": ["Go", "Python", "SQL", "Docker"],
	"experience": [{"role": "Developer", "company": "Acme", "startDate": "2020", "endDate": "", "description": "Built APIs serving 2M requests."}],
	"education": [{"degree": "Master of Science", "institution": "Uni", "year": "2019"}]
}`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		App: config.AppConfig{
			DefaultFormat:    "json",
			SupportedFormats: []string{"json", "yaml", "text", "markdown"},
			MaxFileSize:      1 << 20,
			DefaultDomain:    "IT",
			Concurrency:      2,
		},
		Store: config.StoreConfig{Driver: config.StoreDriverFile, Path: t.TempDir()},
	}
}

func writeResume(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// resetContexts clears contexts cobra copied onto subcommands in earlier runs
func resetContexts(cmd *cobra.Command) {
	cmd.SetContext(nil) //nolint:staticcheck // cobra treats nil as unset
	for _, c := range cmd.Commands() {
		resetContexts(c)
	}
}

func runCLI(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()

	outputFlags = common.CommandConfig{}
	atsDomain, insightsDomain, salaryDomain, jobsDomain, adviseQuestion = "", "", "", "", ""
	resetContexts(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	logger := errors.NewLoggerWithWriter(io.Discard, slog.LevelError)
	err := Execute(context.Background(), cfg, logger)
	return out.String(), err
}

func TestATSCommand(t *testing.T) {
	cfg := testConfig(t)
	file := writeResume(t, t.TempDir(), "cv.json", resumeJSON)

	out, err := runCLI(t, cfg, "ats", file)
	require.NoError(t, err)

	var report types.ATSReport
	require.NoError(t, json.Unmarshal([]byte(out), &report), out)
	assert.Equal(t, "IT", report.Domain)
	assert.Empty(t, report.File)
	assert.NotEmpty(t, report.Info.Label)

	out, err = runCLI(t, cfg, "ats", "--domain", "Finance", file)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &report), out)
	assert.Equal(t, "Finance", report.Domain)
}

func TestATSCommand_Batch(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	files := []string{
		writeResume(t, dir, "b.json", resumeJSON),
		writeResume(t, dir, "a.json", `{"name": "Grace", "domain": "Healthcare"}`),
		writeResume(t, dir, "c.json", `{"name": "Linus"}`),
	}

	out, err := runCLI(t, cfg, append([]string{"ats"}, files...)...)
	require.NoError(t, err)

	var reports []types.ATSReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports), out)
	require.Len(t, reports, 3)
	for i, r := range reports {
		assert.Equal(t, files[i], r.File)
	}
	assert.Equal(t, "Healthcare", reports[1].Domain)

	_, err = runCLI(t, cfg, "ats", files[0], filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "missing.json")
}

func TestATSCommand_RejectsMalformedResume(t *testing.T) {
	cfg := testConfig(t)
	file := writeResume(t, t.TempDir(), "bad.json", `{"experience": "ten years"}`)

	_, err := runCLI(t, cfg, "ats", file)
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInvalidResume, appErr.Code)
}

func TestBiasCommands(t *testing.T) {
	cfg := testConfig(t)
	file := writeResume(t, t.TempDir(), "cv.json", resumeJSON)

	out, err := runCLI(t, cfg, "bias", "--format", "text", file)
	require.NoError(t, err)
	assert.Contains(t, out, "=== BIAS REPORT ===")

	out, err = runCLI(t, cfg, "debias", file)
	require.NoError(t, err)

	var report types.DebiasReport
	require.NoError(t, json.Unmarshal([]byte(out), &report), out)
	assert.Equal(t, 2, report.Before.Issues)
	assert.Equal(t, 0, report.After.Issues)
	assert.Equal(t, "experienced engineer who delivered analytics tooling.", report.Resume.Summary)
}

func TestInsightsAndSalaryCommands(t *testing.T) {
	cfg := testConfig(t)
	file := writeResume(t, t.TempDir(), "cv.json", resumeJSON)

	out, err := runCLI(t, cfg, "insights", "--domain", "IT", "--format", "md")
	require.NoError(t, err)
	assert.Contains(t, out, "# Career Insights: IT")

	out, err = runCLI(t, cfg, "salary", file)
	require.NoError(t, err)

	var estimate types.SalaryEstimate
	require.NoError(t, json.Unmarshal([]byte(out), &estimate), out)
	assert.Equal(t, "IT", estimate.Domain)
	assert.True(t, estimate.Factors.AdvancedDegree)
	assert.Equal(t, 4, estimate.Factors.Skills)

	out, err = runCLI(t, cfg, "jobs", file, "--domain", "Dance", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "=== JOB ALERTS: Dance ===")
	assert.Contains(t, out, " 95%  Bharatanatyam Instructor - Kalakshetra (Chennai, India, Full-time)")
	assert.Contains(t, out, "More: https://www.naukri.com/software-engineer-jobs-in-")
}

func TestAdviseCommand_RequiresAPIKey(t *testing.T) {
	cfg := testConfig(t)
	file := writeResume(t, t.TempDir(), "cv.json", resumeJSON)

	_, err := runCLI(t, cfg, "advise", file, "--question", "What should I improve?")
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeMissingAPIKey, appErr.Code)
}

func TestResumeCommands(t *testing.T) {
	cfg := testConfig(t)
	file := writeResume(t, t.TempDir(), "cv.json", resumeJSON)

	out, err := runCLI(t, cfg, "resume", "list", "--format", "text")
	require.NoError(t, err)
	assert.Equal(t, "No stored resumes\n", out)

	out, err = runCLI(t, cfg, "resume", "save", "A", file)
	require.NoError(t, err)
	var saved store.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &saved), out)
	assert.Equal(t, "A", saved.Slot)
	assert.Equal(t, "Ada Lovelace", saved.Resume.Name)

	_, err = runCLI(t, cfg, "resume", "bias", "A")
	require.NoError(t, err)

	out, err = runCLI(t, cfg, "resume", "show", "A")
	require.NoError(t, err)
	var shown store.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &shown), out)
	require.NotNil(t, shown.BiasIssues)
	assert.Equal(t, 2, *shown.BiasIssues)

	out, err = runCLI(t, cfg, "resume", "list")
	require.NoError(t, err)
	var entries []store.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries), out)
	assert.Len(t, entries, 1)

	_, err = runCLI(t, cfg, "resume", "delete", "A")
	require.NoError(t, err)

	_, err = runCLI(t, cfg, "resume", "show", "A")
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeResumeNotFound, appErr.Code)

	_, err = runCLI(t, cfg, "resume", "save", "Z", file)
	appErr, ok = errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInvalidRequest, appErr.Code)
}

func TestOutputFlags(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	file := writeResume(t, dir, "cv.json", resumeJSON)
	outFile := filepath.Join(dir, "report.yaml")

	out, err := runCLI(t, cfg, "ats", "--format", "yaml", "-o", outFile, file)
	require.NoError(t, err)
	assert.Empty(t, out)

	content, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "domain: IT")

	_, err = runCLI(t, cfg, "ats", "--format", "html", file)
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, testConfig(t), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "resumeaudit version dev")
}

func TestAuditFile(t *testing.T) {
	fp := common.NewFileProcessor(errors.NewLoggerWithWriter(io.Discard, slog.LevelError), 0)
	file := writeResume(t, t.TempDir(), "cv.json", `{"name": "Ada", "domain": "Healthcare", "summary": "Worked on records."}`)

	audit, err := auditFile(fp, file, "IT")
	require.NoError(t, err)
	assert.Equal(t, file, audit.File)
	assert.Equal(t, "Healthcare", audit.ATS.Domain)
	assert.Equal(t, 1, audit.Bias.Result.Issues)

	_, err = auditFile(fp, filepath.Join(t.TempDir(), "missing.json"), "IT")
	assert.Error(t, err)
}

func TestApplyServeFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "serve"}
	cmd.Flags().StringP("port", "p", "", "")
	cmd.Flags().String("host", "", "")
	cmd.Flags().String("tls-mode", "", "")
	cmd.Flags().String("cert-file", "", "")
	cmd.Flags().String("key-file", "", "")
	cmd.Flags().String("ca-file", "", "")
	require.NoError(t, cmd.Flags().Set("port", "9999"))
	require.NoError(t, cmd.Flags().Set("tls-mode", "server"))

	cfg := &config.Config{Server: config.ServerConfig{Host: "localhost", Port: "8080"}}
	applyServeFlags(cmd, cfg)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, "server", cfg.Server.TLS.Mode)
}
