package ats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strings"
	"unicode/utf8"

	"resumeaudit/internal/types"
)

// Score bounds. No résumé is perfect and none is worthless.
const (
	MaxScore = 92
	MinScore = 20

	strongThreshold = 85
)

const (
	minSummaryLength     = 50
	longSummaryLength    = 300
	minDescriptionLength = 50
	experienceCap        = 25.0
	noMetricsPenalty     = 8
)

var severityRank = map[string]int{
	types.SeverityHigh:   0,
	types.SeverityMedium: 1,
	types.SeverityLow:    2,
}

// analysis accumulates section scores and issues for one résumé
type analysis struct {
	domain    string
	keywords  []string
	issues    []types.ATSIssue
	hasMetric bool
}

func (a *analysis) add(issue types.ATSIssue) {
	a.issues = append(a.issues, issue)
}

// Analyze scores resume against domain. It never fails: missing fields
// count as absent and an unknown domain is scored with the IT keywords.
func Analyze(resume types.ResumeRecord, domain string) types.ATSResult {
	if domain == "" {
		domain = DefaultDomain
	}
	keywords, _ := KeywordsFor(domain)
	a := &analysis{domain: domain, keywords: keywords}

	summary := a.scoreSummary(resume.Summary)
	experience := a.scoreExperience(resume.Experience)
	skills := a.scoreSkills(resume.Skills)
	keywordScore, pct, matched := a.scoreKeywords(resume)
	education := a.scoreEducation(resume.Education)
	formatting := a.scoreContact(resume.Email)

	total := float64(summary) + experience + float64(skills) + float64(keywordScore) +
		float64(education) + float64(formatting)

	if !a.hasMetric {
		a.add(types.ATSIssue{
			Section:  "Overall",
			Type:     types.IssueCritical,
			Severity: types.SeverityHigh,
			Msg:      "No quantifiable metrics found anywhere",
			Fix:      "Add numbers, percentages, or measurable results throughout your resume",
			Impact:   8,
		})
		total -= noMetricsPenalty
	}

	total = math.Max(math.Min(total, MaxScore), MinScore)

	slices.SortStableFunc(a.issues, func(x, y types.ATSIssue) int {
		return severityRank[x.Severity] - severityRank[y.Severity]
	})

	strengths := []string{}
	if total >= strongThreshold {
		strengths = append(strengths, "Strong ATS optimization")
	}

	return types.ATSResult{
		Score:        round(total),
		KeywordScore: pct,
		Issues:       a.issues,
		SectionScores: types.SectionScores{
			Summary:    summary,
			Experience: round(experience),
			Skills:     skills,
			Keywords:   keywordScore,
			Education:  education,
			Formatting: formatting,
		},
		Strengths:       strengths,
		MatchedKeywords: matched,
	}
}

func (a *analysis) scoreSummary(summary string) int {
	if utf8.RuneCountInString(summary) < minSummaryLength {
		a.add(types.ATSIssue{
			Section:  "Summary",
			Type:     types.IssueCritical,
			Severity: types.SeverityHigh,
			Msg:      "Summary too short or missing",
			Fix:      "Add a 80-200 character summary highlighting your role, years of experience, specialization, and key impact",
			Impact:   10,
		})
		return 0
	}

	score := 0
	words := len(strings.Split(summary, " "))
	switch {
	case words >= 15 && words <= 50:
		score += 6
	case words >= 10:
		score += 3
	}

	if HasRoleKeyword(summary) {
		score += 4
	}
	hasMetrics := HasSummaryMetrics(summary)
	if hasMetrics {
		score += 6
		a.hasMetric = true
	}
	if HasSummaryActionVerb(summary) {
		score += 4
	}

	if IsGenericSummary(summary) {
		a.add(types.ATSIssue{
			Section:  "Summary",
			Type:     types.IssueWarning,
			Severity: types.SeverityMedium,
			Msg:      "Generic phrases detected",
			Fix:      `Replace "results-driven" and similar clichés with specific achievements`,
			Impact:   3,
		})
		score -= 3
	}

	if !hasMetrics {
		a.add(types.ATSIssue{
			Section:  "Summary",
			Type:     types.IssueWarning,
			Severity: types.SeverityMedium,
			Msg:      "No measurable impact in summary",
			Fix:      `Add numbers like "5+ years", "30% improvement", or "managed team of 10"`,
			Impact:   6,
		})
	}

	if utf8.RuneCountInString(summary) > longSummaryLength {
		score -= 2
	}
	return score
}

func (a *analysis) scoreExperience(entries []types.Experience) float64 {
	if len(entries) == 0 {
		a.add(types.ATSIssue{
			Section:  "Experience",
			Type:     types.IssueCritical,
			Severity: types.SeverityHigh,
			Msg:      "No experience listed",
			Fix:      "Add at least one role (internship, part-time, or full-time)",
			Impact:   15,
		})
		return 0
	}

	total := 0
	weakReported := false
	for idx, exp := range entries {
		desc := exp.Description
		hasDescription := utf8.RuneCountInString(desc) >= minDescriptionLength
		hasMetrics := desc != "" && HasExperienceMetrics(desc)
		hasWeak := desc != "" && HasWeakVerb(desc)

		score := 0
		if exp.Role != "" && exp.Company != "" {
			score += 3
		}
		if hasDescription {
			score += 4
		}
		if hasMetrics {
			score += 7
			a.hasMetric = true
		}
		if desc != "" && HasExperienceActionVerb(desc) {
			score += 5
		}
		if desc != "" && ContainsDomainKeyword(desc, a.keywords) {
			score += 3
		}
		if hasWeak {
			score -= 2
		}
		total += score

		if idx == 0 && hasDescription && !hasMetrics {
			role := exp.Role
			if role == "" {
				role = fmt.Sprintf("Position %d", idx+1)
			}
			a.add(types.ATSIssue{
				Section:  "Experience",
				Type:     types.IssueWarning,
				Severity: types.SeverityMedium,
				Msg:      role + " lacks quantifiable metrics",
				Fix:      `Add numbers: "Increased efficiency by 25%", "Managed 10 projects", "Reduced costs by $50K"`,
				Impact:   7,
			})
		}

		if hasWeak && !weakReported {
			weakReported = true
			a.add(types.ATSIssue{
				Section:  "Experience",
				Type:     types.IssueInfo,
				Severity: types.SeverityLow,
				Msg:      "Using weak action verbs",
				Fix:      `Replace "helped", "assisted" with "Led", "Developed", "Implemented", "Achieved"`,
				Impact:   3,
			})
		}
	}

	avg := float64(total) / float64(len(entries))
	if len(entries) > 1 {
		avg *= 1.2
	}
	return math.Min(experienceCap, avg)
}

func (a *analysis) scoreSkills(skills []string) int {
	const fix = "Add 8-12 relevant skills (technical, soft, and domain-specific)"
	if len(skills) < 3 {
		a.add(types.ATSIssue{
			Section:  "Skills",
			Type:     types.IssueCritical,
			Severity: types.SeverityHigh,
			Msg:      "Too few skills listed",
			Fix:      fix,
			Impact:   10,
		})
		return 0
	}

	score := 0
	n := len(skills)
	switch {
	case n >= 8 && n <= 15:
		score += 8
	case n >= 5:
		score += 5
	default:
		score += 3
	}

	switch overlap := countSkillOverlap(skills, a.keywords); {
	case overlap >= 3:
		score += 7
	case overlap >= 1:
		score += 4
	}

	if n < 6 {
		a.add(types.ATSIssue{
			Section:  "Skills",
			Type:     types.IssueWarning,
			Severity: types.SeverityMedium,
			Msg:      "Too few skills listed",
			Fix:      fix,
			Impact:   8,
		})
	}

	if n > 20 {
		a.add(types.ATSIssue{
			Section:  "Skills",
			Type:     types.IssueInfo,
			Severity: types.SeverityLow,
			Msg:      "Too many skills may dilute focus",
			Fix:      "Focus on 8-15 most relevant skills for your target role",
			Impact:   3,
		})
		score -= 3
	}
	return score
}

// scoreKeywords returns the section score, the rounded match percentage and
// the matched keywords in dictionary order.
func (a *analysis) scoreKeywords(resume types.ResumeRecord) (int, int, []string) {
	text := resumeText(resume)

	matched := []string{}
	for _, kw := range a.keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			matched = append(matched, kw)
		}
	}

	ratio := float64(len(matched)) / float64(len(a.keywords))
	pct := round(ratio * 100)

	var score int
	switch {
	case ratio >= 0.6:
		score = 25
	case ratio >= 0.45:
		score = 20
	case ratio >= 0.3:
		score = 15
	case ratio >= 0.2:
		score = 10
	default:
		score = 5
	}

	examples := strings.Join(a.keywords[:min(5, len(a.keywords))], ", ")
	switch {
	case ratio < 0.3:
		a.add(types.ATSIssue{
			Section:  "Keywords",
			Type:     types.IssueCritical,
			Severity: types.SeverityHigh,
			Msg:      fmt.Sprintf("Low keyword match for %s (%d%%)", a.domain, pct),
			Fix:      "Add domain-specific terms like: " + examples,
			Impact:   15,
		})
	case ratio < 0.45:
		a.add(types.ATSIssue{
			Section:  "Keywords",
			Type:     types.IssueWarning,
			Severity: types.SeverityMedium,
			Msg:      fmt.Sprintf("Moderate keyword match (%d%%)", pct),
			Fix:      "Increase usage of: " + examples,
			Impact:   10,
		})
	}
	return score, pct, matched
}

func (a *analysis) scoreEducation(education []types.Education) int {
	if len(education) == 0 {
		a.add(types.ATSIssue{
			Section:  "Education",
			Type:     types.IssueWarning,
			Severity: types.SeverityMedium,
			Msg:      "Education section missing",
			Fix:      "Add degree, institution, and graduation year",
			Impact:   10,
		})
		return 0
	}
	return 10
}

func (a *analysis) scoreContact(email string) int {
	switch {
	case email == "":
		a.add(types.ATSIssue{
			Section:  "Contact",
			Type:     types.IssueCritical,
			Severity: types.SeverityHigh,
			Msg:      "Missing email address",
			Fix:      "Add professional email for recruiters to reach you",
			Impact:   5,
		})
		return 0
	case !IsValidEmail(email):
		a.add(types.ATSIssue{
			Section:  "Contact",
			Type:     types.IssueWarning,
			Severity: types.SeverityMedium,
			Msg:      "Invalid email format",
			Fix:      "Ensure email follows standard format: name@domain.com",
			Impact:   3,
		})
		return 2
	}
	return 5
}

// resumeText is the lowercased JSON form of the whole record, keys included
func resumeText(resume types.ResumeRecord) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(resume); err != nil {
		return ""
	}
	return strings.ToLower(buf.String())
}

// round rounds half up, matching how scores are displayed
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}
