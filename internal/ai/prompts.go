package ai

import (
	"fmt"
	"strings"

	"resumeaudit/internal/types"
)

// DefaultAdviseSystemPrompt is used when no system prompt is configured
const DefaultAdviseSystemPrompt = `You are an expert career assistant for resume writing.

- Give helpful, actionable advice; be concise but thorough
- Focus on ATS optimization, impact metrics and professional language
- When the user asks about their current resume, reference the resume data you were given
- Never invent experience, employers, degrees or numbers the user has not provided`

// DefaultAdviseUserPrompt takes the domain, the résumé context and the question
const DefaultAdviseUserPrompt = `The user is creating a %s resume.

%s

User question: %s`

const notSet = "Not set"

func orNotSet(s string) string {
	if strings.TrimSpace(s) == "" {
		return notSet
	}
	return s
}

// BuildResumeContext summarizes a résumé for the assistant prompt
func BuildResumeContext(r types.ResumeRecord) string {
	var b strings.Builder
	b.WriteString("Current resume data:\n")
	fmt.Fprintf(&b, "- Name: %s\n", orNotSet(r.Name))
	fmt.Fprintf(&b, "- Role: %s\n", orNotSet(r.Role))
	fmt.Fprintf(&b, "- Summary: %s\n", orNotSet(r.Summary))
	fmt.Fprintf(&b, "- Skills: %s\n", orNotSet(strings.Join(r.Skills, ", ")))
	fmt.Fprintf(&b, "- Experience: %d entries\n", len(r.Experience))
	fmt.Fprintf(&b, "- Education: %d entries\n", len(r.Education))
	fmt.Fprintf(&b, "- Projects: %d entries", len(r.Projects))
	return b.String()
}

// BuildAdvisePrompt fills the user prompt template
func BuildAdvisePrompt(template, domain string, input types.AdviceInput) string {
	return fmt.Sprintf(template, domain, BuildResumeContext(input.Resume), strings.TrimSpace(input.Question))
}

// resolvePrompt returns the configured prompt, or the built-in one when unset.
// File contents have already replaced inline config by the time this runs.
func resolvePrompt(configured, fallback string) string {
	if strings.TrimSpace(configured) != "" {
		return configured
	}
	return fallback
}
