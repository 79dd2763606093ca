package formatters

import (
	"fmt"
	"strings"

	"resumeaudit/internal/store"
	"resumeaudit/internal/types"
)

func atsMarkdown(r types.ATSReport) string {
	var b strings.Builder
	if r.File != "" {
		fmt.Fprintf(&b, "# ATS Report: %s\n\n", r.File)
	} else {
		b.WriteString("# ATS Report\n\n")
	}
	fmt.Fprintf(&b, "**Score:** %d/100 (%s)\n\n", r.Result.Score, r.Info.Label)
	fmt.Fprintf(&b, "%s\n\n", r.Info.Message)
	fmt.Fprintf(&b, "**Keyword match (%s):** %d%%\n\n", r.Domain, r.Result.KeywordScore)

	s := r.Result.SectionScores
	b.WriteString("## Section Scores\n\n| Section | Score |\n|---|---|\n")
	fmt.Fprintf(&b, "| Summary | %d |\n| Experience | %d |\n| Skills | %d |\n", s.Summary, s.Experience, s.Skills)
	fmt.Fprintf(&b, "| Keywords | %d |\n| Education | %d |\n| Formatting | %d |\n", s.Keywords, s.Education, s.Formatting)

	if len(r.Result.Strengths) > 0 {
		b.WriteString("\n## Strengths\n\n")
		for _, s := range r.Result.Strengths {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}

	if len(r.Result.Issues) > 0 {
		b.WriteString("\n## Issues\n\n")
		for _, issue := range r.Result.Issues {
			fmt.Fprintf(&b, "- **%s** (%s, %s): %s\n  - Fix: %s (+%d)\n",
				issue.Section, issue.Severity, issue.Type, issue.Msg, issue.Fix, issue.Impact)
		}
	}
	return b.String()
}

func atsBatchMarkdown(reports []types.ATSReport) string {
	var b strings.Builder
	b.WriteString("# ATS Batch Report\n\n| File | Score | Label | Keywords |\n|---|---|---|---|\n")
	for _, r := range reports {
		fmt.Fprintf(&b, "| %s | %d | %s | %d%% |\n", r.File, r.Result.Score, r.Info.Label, r.Result.KeywordScore)
	}
	for _, r := range reports {
		b.WriteString("\n")
		b.WriteString(strings.Replace(atsMarkdown(r), "# ", "## ", 1))
	}
	return b.String()
}

func biasIssuesMarkdown(b *strings.Builder, issues []types.BiasIssue) {
	b.WriteString("| Type | Severity | Found | Suggestion |\n|---|---|---|---|\n")
	for _, issue := range issues {
		if issue.Type == types.BiasPhoto {
			fmt.Fprintf(b, "| %s | %s | profile photo | %s |\n", issue.Type, issue.Severity, issue.Description)
			continue
		}
		fmt.Fprintf(b, "| %s | %s | %s | %s |\n", issue.Type, issue.Severity, issue.Word, issue.Replacement)
	}
}

func biasMarkdown(r types.BiasReport) string {
	var b strings.Builder
	b.WriteString("# Bias Report\n\n")
	fmt.Fprintf(&b, "**Score:** %d/100 (%s)\n\n", r.Result.Score, r.ScoreLabel)
	fmt.Fprintf(&b, "**Status:** %s\n\n", r.Status.Label)
	if len(r.Result.IssuesList) > 0 {
		biasIssuesMarkdown(&b, r.Result.IssuesList)
	}
	return b.String()
}

func debiasMarkdown(r types.DebiasReport) string {
	var b strings.Builder
	b.WriteString("# Debiased Resume\n\n")
	fmt.Fprintf(&b, "**Score:** %d → %d\n\n**Issues:** %d → %d\n", r.Before.Score, r.After.Score, r.Before.Issues, r.After.Issues)
	if r.Resume.Summary != "" {
		fmt.Fprintf(&b, "\n## Summary\n\n%s\n", r.Resume.Summary)
	}
	for _, exp := range r.Resume.Experience {
		if exp.Description != "" {
			fmt.Fprintf(&b, "\n## %s\n\n%s\n", exp.Role, exp.Description)
		}
	}
	if len(r.After.IssuesList) > 0 {
		b.WriteString("\n## Remaining Issues\n\n")
		biasIssuesMarkdown(&b, r.After.IssuesList)
	}
	return b.String()
}

func auditMarkdown(r types.AuditReport) string {
	return atsMarkdown(r.ATS) + "\n" + biasMarkdown(r.Bias)
}

func careerMarkdown(c types.CareerInsight) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Career Insights: %s\n\n## Strengths\n\n", c.Domain)
	for _, s := range c.Strengths {
		fmt.Fprintf(&b, "- %s\n", s)
	}
	b.WriteString("\n## Areas to Improve\n\n")
	for _, s := range c.Improve {
		fmt.Fprintf(&b, "- %s\n", s)
	}
	return b.String()
}

func salaryMarkdown(s types.SalaryEstimate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Salary Estimate: %s\n\n", s.Domain)
	fmt.Fprintf(&b, "**Matched role:** %s\n\n", s.MatchedRole)
	fmt.Fprintf(&b, "| Min | Mid | Max |\n|---|---|---|\n| %.1f | %.1f | %.1f |\n\n", s.Min, s.Mid, s.Max)
	fmt.Fprintf(&b, "Figures in %s %s. Multiplier %.2f.\n", s.Currency, s.Unit, s.Multiplier)
	return b.String()
}

func jobsMarkdown(j types.JobAlerts) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Job Alerts: %s\n\n", j.Domain)
	if j.Message != "" {
		fmt.Fprintf(&b, "%s\n", j.Message)
		return b.String()
	}
	b.WriteString("| Match | Title | Company | Location | Type |\n|---|---|---|---|---|\n")
	for _, job := range j.Jobs {
		fmt.Fprintf(&b, "| %d%% | %s | %s | %s | %s |\n", job.Match, job.Title, job.Company, job.Location, job.Type)
	}
	fmt.Fprintf(&b, "\n[View more jobs](%s)\n", j.SearchURL)
	return b.String()
}

func adviceMarkdown(a types.AdviceOutput) string {
	return fmt.Sprintf("# Advice (%s)\n\n%s\n", a.Domain, a.Answer)
}

func entryMarkdown(e store.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Slot %s\n\n", e.Slot)
	fmt.Fprintf(&b, "- **ID:** %s\n- **Name:** %s\n- **Role:** %s\n", e.ID, e.Resume.Name, e.Resume.Role)
	fmt.Fprintf(&b, "- **Bias score:** %s\n- **Updated:** %s\n", biasCache(e), e.UpdatedAt.Format("2006-01-02 15:04:05 MST"))
	return b.String()
}

func entriesMarkdown(entries []store.Entry) string {
	var b strings.Builder
	b.WriteString("# Stored Resumes\n\n| Slot | Name | Role | Bias |\n|---|---|---|---|\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", e.Slot, e.Resume.Name, e.Resume.Role, biasCache(e))
	}
	return b.String()
}
