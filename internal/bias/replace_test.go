package bias

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"resumeaudit/internal/types"
)

func biasedResume() types.ResumeRecord {
	return types.ResumeRecord{
		Name:    "Sam Rivera",
		Email:   "sam@example.com",
		Summary: "Seasoned Chairman and recent graduate, 24 years old.",
		Experience: []types.Experience{
			{Role: "Sales", Company: "Acme", Description: "Top salesman. Helped with onboarding and worked on pricing."},
		},
		Projects: []types.Project{
			{Title: "Crew", Description: "Responsible for manpower planning; assisted the fireman."},
		},
		ProfileImage: ptr("me.png"),
	}
}

func TestReplaceWords(t *testing.T) {
	original := biasedResume()
	fixed := ReplaceWords(original)

	assert.Equal(t, "experienced chairperson and graduate, 24 .", fixed.Summary)
	assert.Equal(t, "Top salesperson. led onboarding and delivered pricing.", fixed.Experience[0].Description)
	assert.Equal(t, "managed workforce planning; collaborated the firefighter.", fixed.Projects[0].Description)

	assert.Equal(t, "Sam Rivera", fixed.Name)
	assert.Equal(t, "sam@example.com", fixed.Email)
	assert.Equal(t, "Acme", fixed.Experience[0].Company)
	assert.Equal(t, "IT", fixed.Domain)
	assert.Equal(t, "me.png", *fixed.ProfileImage)

	// input untouched
	assert.Equal(t, "Top salesman. Helped with onboarding and worked on pricing.", original.Experience[0].Description)
}

func TestReplaceWords_MatchesAnalyzeOnNonASCIILetters(t *testing.T) {
	r := types.ResumeRecord{Summary: "Top ſalesman and SALESMAN"}

	fixed := ReplaceWords(r)
	assert.Equal(t, "Top ſalesman and salesperson", fixed.Summary)

	// the look-alike spelling is neither flagged nor rewritten
	assert.Equal(t, 1, Analyze(r).Issues)
	assert.Equal(t, 0, Analyze(fixed).Issues)
}

func TestReplaceWords_Idempotent(t *testing.T) {
	once := ReplaceWords(biasedResume())
	twice := ReplaceWords(once)

	assert.Equal(t, once.Summary, twice.Summary)
	assert.Equal(t, once.Experience, twice.Experience)
	assert.Equal(t, once.Projects, twice.Projects)
}

func TestReplaceWords_LeavesOnlyPhotoIssue(t *testing.T) {
	fixed := ReplaceWords(biasedResume())
	result := Analyze(fixed)

	if assert.Len(t, result.IssuesList, 1) {
		assert.Equal(t, types.BiasPhoto, result.IssuesList[0].Type)
	}
	assert.Equal(t, 90, result.Score)
}

func TestDebias(t *testing.T) {
	report := Debias(biasedResume())

	assert.Less(t, report.Before.Score, report.After.Score)
	assert.Equal(t, 1, report.After.Issues)
}
