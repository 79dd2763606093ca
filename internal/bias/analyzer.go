package bias

import (
	"strings"

	"resumeaudit/internal/types"
	"resumeaudit/internal/utils"
)

// Score bounds
const (
	MaxScore = 95
	MinScore = 40

	photoPenalty     = 10
	photoDescription = "Photos can introduce unconscious bias in ATS screening"
)

// Normalize fills every collection and the domain with its empty default so
// callers never branch on missing values. Other fields are kept as given.
func Normalize(r types.ResumeRecord) types.ResumeRecord {
	if r.Skills == nil {
		r.Skills = []string{}
	}
	if r.Experience == nil {
		r.Experience = []types.Experience{}
	}
	if r.Education == nil {
		r.Education = []types.Education{}
	}
	if r.Projects == nil {
		r.Projects = []types.Project{}
	}
	if r.Domain == "" {
		r.Domain = "IT"
	}
	if r.ProfileImage != nil && *r.ProfileImage == "" {
		r.ProfileImage = nil
	}
	if r.ID != nil && *r.ID == "" {
		r.ID = nil
	}
	return r
}

// Analyze flags gendered, age-related and passive wording in the free-text
// fields plus an attached photo.
func Analyze(resume types.ResumeRecord) types.BiasResult {
	r := Normalize(resume)
	text := utils.LowerASCII(freeText(r))

	issues := []types.BiasIssue{}
	score := 100
	for _, c := range categories {
		for _, p := range c.patterns {
			if !strings.Contains(text, p.Word) {
				continue
			}
			issues = append(issues, types.BiasIssue{
				Word:        p.Word,
				Replacement: p.Replacement,
				Type:        c.kind,
				Severity:    p.Severity,
			})
			score -= penalty(p.Severity)
		}
	}

	if r.HasProfileImage() {
		issues = append(issues, types.BiasIssue{
			Word:        "Profile Photo",
			Replacement: "Remove photo",
			Type:        types.BiasPhoto,
			Severity:    types.BiasModerate,
			Description: photoDescription,
		})
		score -= photoPenalty
	}

	score = max(MinScore, min(score, MaxScore))

	return types.BiasResult{
		Score:      score,
		Issues:     len(issues),
		IssuesList: issues,
	}
}

// freeText joins the summary with every experience and project description
func freeText(r types.ResumeRecord) string {
	parts := make([]string, 0, 1+len(r.Experience)+len(r.Projects))
	parts = append(parts, r.Summary)
	for _, e := range r.Experience {
		parts = append(parts, e.Description)
	}
	for _, p := range r.Projects {
		parts = append(parts, p.Description)
	}
	return strings.Join(parts, " ")
}
