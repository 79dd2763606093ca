package formatters

import (
	"fmt"
	"strings"

	"resumeaudit/internal/store"
	"resumeaudit/internal/types"
)

func atsText(r types.ATSReport) string {
	var b strings.Builder
	if r.File != "" {
		fmt.Fprintf(&b, "=== ATS REPORT: %s ===\n\n", r.File)
	} else {
		b.WriteString("=== ATS REPORT ===\n\n")
	}
	fmt.Fprintf(&b, "Score: %d/100 (%s)\n", r.Result.Score, r.Info.Label)
	fmt.Fprintf(&b, "%s\n\n", r.Info.Message)
	fmt.Fprintf(&b, "Keyword match (%s): %d%%\n", r.Domain, r.Result.KeywordScore)
	if len(r.Result.MatchedKeywords) > 0 {
		fmt.Fprintf(&b, "Matched: %s\n", strings.Join(r.Result.MatchedKeywords, ", "))
	}

	s := r.Result.SectionScores
	b.WriteString("\nSection scores:\n")
	fmt.Fprintf(&b, "  Summary:    %d\n", s.Summary)
	fmt.Fprintf(&b, "  Experience: %d\n", s.Experience)
	fmt.Fprintf(&b, "  Skills:     %d\n", s.Skills)
	fmt.Fprintf(&b, "  Keywords:   %d\n", s.Keywords)
	fmt.Fprintf(&b, "  Education:  %d\n", s.Education)
	fmt.Fprintf(&b, "  Formatting: %d\n", s.Formatting)

	if len(r.Result.Strengths) > 0 {
		b.WriteString("\nStrengths:\n")
		for _, s := range r.Result.Strengths {
			fmt.Fprintf(&b, "  + %s\n", s)
		}
	}

	if len(r.Result.Issues) > 0 {
		fmt.Fprintf(&b, "\nIssues (%d):\n", len(r.Result.Issues))
		for i, issue := range r.Result.Issues {
			fmt.Fprintf(&b, "  %d. [%s/%s] %s: %s\n", i+1, strings.ToUpper(issue.Severity), issue.Type, issue.Section, issue.Msg)
			fmt.Fprintf(&b, "     Fix: %s (+%d)\n", issue.Fix, issue.Impact)
		}
	}
	return b.String()
}

func atsBatchText(reports []types.ATSReport) string {
	parts := make([]string, len(reports))
	for i, r := range reports {
		parts[i] = atsText(r)
	}
	return strings.Join(parts, "\n")
}

func biasIssuesText(b *strings.Builder, issues []types.BiasIssue) {
	for i, issue := range issues {
		if issue.Type == types.BiasPhoto {
			fmt.Fprintf(b, "  %d. [%s/%s] %s\n", i+1, strings.ToUpper(issue.Severity), issue.Type, issue.Description)
			continue
		}
		fmt.Fprintf(b, "  %d. [%s/%s] %q -> %q\n", i+1, strings.ToUpper(issue.Severity), issue.Type, issue.Word, issue.Replacement)
	}
}

func biasText(r types.BiasReport) string {
	var b strings.Builder
	b.WriteString("=== BIAS REPORT ===\n\n")
	fmt.Fprintf(&b, "Score: %d/100 (%s)\n", r.Result.Score, r.ScoreLabel)
	fmt.Fprintf(&b, "Status: %s\n", r.Status.Label)
	fmt.Fprintf(&b, "Issues: %d\n", r.Result.Issues)
	if len(r.Result.IssuesList) > 0 {
		b.WriteString("\n")
		biasIssuesText(&b, r.Result.IssuesList)
	}
	return b.String()
}

func debiasText(r types.DebiasReport) string {
	var b strings.Builder
	b.WriteString("=== DEBIASED RESUME ===\n\n")
	fmt.Fprintf(&b, "Score: %d -> %d\n", r.Before.Score, r.After.Score)
	fmt.Fprintf(&b, "Issues: %d -> %d\n", r.Before.Issues, r.After.Issues)
	if r.Resume.Summary != "" {
		fmt.Fprintf(&b, "\nSummary:\n%s\n", r.Resume.Summary)
	}
	for i, exp := range r.Resume.Experience {
		if exp.Description != "" {
			fmt.Fprintf(&b, "\nExperience %d (%s):\n%s\n", i+1, exp.Role, exp.Description)
		}
	}
	if len(r.After.IssuesList) > 0 {
		b.WriteString("\nRemaining issues:\n")
		biasIssuesText(&b, r.After.IssuesList)
	}
	return b.String()
}

func auditText(r types.AuditReport) string {
	return atsText(r.ATS) + "\n" + biasText(r.Bias)
}

func careerText(c types.CareerInsight) string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== CAREER INSIGHTS: %s ===\n\nStrengths:\n", c.Domain)
	for _, s := range c.Strengths {
		fmt.Fprintf(&b, "  + %s\n", s)
	}
	b.WriteString("\nAreas to improve:\n")
	for _, s := range c.Improve {
		fmt.Fprintf(&b, "  - %s\n", s)
	}
	return b.String()
}

func salaryText(s types.SalaryEstimate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== SALARY ESTIMATE: %s ===\n\n", s.Domain)
	fmt.Fprintf(&b, "Matched role: %s\n", s.MatchedRole)
	fmt.Fprintf(&b, "Range: %.1f - %.1f %s %s (mid %.1f)\n", s.Min, s.Max, s.Currency, s.Unit, s.Mid)
	fmt.Fprintf(&b, "Multiplier: %.2f (experience %d, skills %d, advanced degree %t)\n",
		s.Multiplier, s.Factors.Experience, s.Factors.Skills, s.Factors.AdvancedDegree)
	return b.String()
}

func jobsText(j types.JobAlerts) string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== JOB ALERTS: %s ===\n\n", j.Domain)
	if j.Message != "" {
		fmt.Fprintf(&b, "%s\n", j.Message)
		return b.String()
	}
	for _, job := range j.Jobs {
		fmt.Fprintf(&b, "%3d%%  %s - %s (%s, %s)\n", job.Match, job.Title, job.Company, job.Location, job.Type)
	}
	fmt.Fprintf(&b, "\nMore: %s\n", j.SearchURL)
	return b.String()
}

func adviceText(a types.AdviceOutput) string {
	return fmt.Sprintf("=== ADVICE (%s) ===\n\n%s\n", a.Domain, a.Answer)
}

func biasCache(e store.Entry) string {
	if e.BiasScore == nil {
		return "not analyzed"
	}
	issues := 0
	if e.BiasIssues != nil {
		issues = *e.BiasIssues
	}
	return fmt.Sprintf("%d (%d issues)", *e.BiasScore, issues)
}

func entryText(e store.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== SLOT %s ===\n\n", e.Slot)
	fmt.Fprintf(&b, "ID: %s\n", e.ID)
	fmt.Fprintf(&b, "Name: %s\n", e.Resume.Name)
	fmt.Fprintf(&b, "Role: %s\n", e.Resume.Role)
	fmt.Fprintf(&b, "Bias score: %s\n", biasCache(e))
	fmt.Fprintf(&b, "Updated: %s\n", e.UpdatedAt.Format("2006-01-02 15:04:05 MST"))
	return b.String()
}

func entriesText(entries []store.Entry) string {
	if len(entries) == 0 {
		return "No stored resumes\n"
	}
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%-7s %-24s %-28s bias: %s\n", e.Slot, e.Resume.Name, e.Resume.Role, biasCache(e))
	}
	return b.String()
}
