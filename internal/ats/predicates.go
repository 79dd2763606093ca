package ats

import (
	"regexp"
	"strings"

	"resumeaudit/internal/utils"
)

// Letters match either ASCII case only, so non-ASCII look-alikes such as
// 'ſ' never count as 's'.
var (
	digitRe             = regexp.MustCompile(`\d`)
	roleKeywordRe       = regexp.MustCompile(utils.FoldASCII(`(manager|developer|designer|engineer|specialist|analyst|coordinator)`))
	summaryActionRe     = regexp.MustCompile(utils.FoldASCII(`(led|managed|developed|achieved|improved|increased|reduced|delivered)`))
	genericPhraseRe     = regexp.MustCompile(utils.FoldASCII(`(results-driven|detail-oriented|team player|hard worker)`))
	experienceMetricsRe = regexp.MustCompile(utils.FoldASCII(`\d+%|\d+ (years?|months?|projects?|people|members|million|thousand|clients?)|\$\d+|increased|decreased|improved|reduced`))
	experienceActionRe  = regexp.MustCompile(utils.FoldASCII(`(led|managed|developed|implemented|achieved|improved|increased|reduced|delivered|created|designed|built|launched|optimized)`))
	weakVerbRe          = regexp.MustCompile(utils.FoldASCII(`helped|assisted|responsible for|worked on|participated|involved in`))
	emailRe             = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// HasSummaryMetrics reports whether text contains any digit
func HasSummaryMetrics(text string) bool { return digitRe.MatchString(text) }

// HasRoleKeyword reports whether text names a job title
func HasRoleKeyword(text string) bool { return roleKeywordRe.MatchString(text) }

// HasSummaryActionVerb reports whether a summary uses an action verb
func HasSummaryActionVerb(text string) bool { return summaryActionRe.MatchString(text) }

// IsGenericSummary reports whether text leans on filler phrases
func IsGenericSummary(text string) bool { return genericPhraseRe.MatchString(text) }

// HasExperienceMetrics reports whether a description quantifies impact:
// percentages, counted units, currency, or change verbs.
func HasExperienceMetrics(text string) bool { return experienceMetricsRe.MatchString(text) }

// HasExperienceActionVerb reports whether a description uses an action verb
func HasExperienceActionVerb(text string) bool { return experienceActionRe.MatchString(text) }

// HasWeakVerb reports whether a description uses a weak verb
func HasWeakVerb(text string) bool { return weakVerbRe.MatchString(text) }

// IsValidEmail is a loose local@domain.tld check
func IsValidEmail(email string) bool { return emailRe.MatchString(email) }

// ContainsDomainKeyword reports whether text contains any of keywords,
// ignoring case.
func ContainsDomainKeyword(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// countSkillOverlap counts keywords found inside at least one skill
func countSkillOverlap(skills, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		for _, s := range skills {
			if strings.Contains(strings.ToLower(s), kw) {
				n++
				break
			}
		}
	}
	return n
}
