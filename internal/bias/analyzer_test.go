package bias

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumeaudit/internal/types"
)

func ptr(s string) *string { return &s }

func TestAnalyze_ChairmanWithPhoto(t *testing.T) {
	r := types.ResumeRecord{
		Summary:      "Former chairman of the regional arts council.",
		ProfileImage: ptr("data:image/png;base64,AAAA"),
	}

	result := Analyze(r)

	require.Len(t, result.IssuesList, 2)
	assert.Equal(t, 2, result.Issues)
	assert.Equal(t, types.BiasIssue{
		Word: "chairman", Replacement: "chairperson", Type: types.BiasGender, Severity: types.BiasHigh,
	}, result.IssuesList[0])
	assert.Equal(t, types.BiasPhoto, result.IssuesList[1].Type)
	assert.Equal(t, "Profile Photo", result.IssuesList[1].Word)
	assert.Equal(t, types.BiasModerate, result.IssuesList[1].Severity)
	assert.Equal(t, photoDescription, result.IssuesList[1].Description)
	assert.Equal(t, 75, result.Score)
}

func TestAnalyze_Scores(t *testing.T) {
	tests := []struct {
		name     string
		resume   types.ResumeRecord
		expected int
		words    []string
	}{
		{
			name:     "clean resume is capped at 95",
			resume:   types.ResumeRecord{Summary: "Built payment systems."},
			expected: 95,
		},
		{
			name:     "empty resume",
			resume:   types.ResumeRecord{},
			expected: 95,
		},
		{
			name: "mild and moderate across fields",
			resume: types.ResumeRecord{
				Summary:    "Seasoned cook.",
				Experience: []types.Experience{{Description: "Worked on the grill station."}},
				Projects:   []types.Project{{Description: "Assisted the pastry team."}},
			},
			expected: 100 - 3 - 8 - 3,
			words:    []string{"seasoned", "worked on", "assisted"},
		},
		{
			name: "case insensitive",
			resume: types.ResumeRecord{
				Summary: "Top SALESMAN, Young Professional.",
			},
			expected: 100 - 15 - 8,
			words:    []string{"salesman", "young professional"},
		},
		{
			name: "floor at 40",
			resume: types.ResumeRecord{
				Summary:      "Manpower chairman salesman businessman policeman fireman, 30 years old.",
				ProfileImage: ptr("photo.png"),
			},
			expected: MinScore,
		},
		{
			name:     "empty profile image is absent",
			resume:   types.ResumeRecord{ProfileImage: ptr("")},
			expected: 95,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Analyze(tt.resume)
			assert.Equal(t, tt.expected, result.Score)
			assert.Equal(t, len(result.IssuesList), result.Issues)
			if tt.words != nil {
				got := make([]string, 0, len(result.IssuesList))
				for _, i := range result.IssuesList {
					got = append(got, i.Word)
				}
				assert.Equal(t, tt.words, got)
			}
		})
	}
}

func TestAnalyze_IssueOrderFollowsTables(t *testing.T) {
	r := types.ResumeRecord{
		Summary:      "Assisted a seasoned chairman.",
		ProfileImage: ptr("me.jpg"),
	}

	result := Analyze(r)

	var kinds []string
	for _, i := range result.IssuesList {
		kinds = append(kinds, i.Type)
	}
	assert.Equal(t, []string{types.BiasGender, types.BiasAge, types.BiasPassive, types.BiasPhoto}, kinds)
}

func TestAnalyze_GenderedTermNeverRaisesScore(t *testing.T) {
	summaries := []string{
		"",
		"Built systems.",
		"Seasoned engineer who worked on payments.",
		"Manpower planning lead and chairman.",
	}

	for _, s := range summaries {
		before := Analyze(types.ResumeRecord{Summary: s}).Score
		after := Analyze(types.ResumeRecord{Summary: s + " Former fireman."}).Score
		assert.LessOrEqual(t, after, before, "summary %q", s)
	}
}

func TestNormalize(t *testing.T) {
	r := Normalize(types.ResumeRecord{Name: "Ada"})

	assert.Equal(t, "Ada", r.Name)
	assert.Equal(t, "IT", r.Domain)
	assert.NotNil(t, r.Skills)
	assert.NotNil(t, r.Experience)
	assert.NotNil(t, r.Education)
	assert.NotNil(t, r.Projects)
	assert.Nil(t, r.ProfileImage)
	assert.Nil(t, r.ID)

	kept := Normalize(types.ResumeRecord{Domain: "Music", ID: ptr("abc")})
	assert.Equal(t, "Music", kept.Domain)
	assert.Equal(t, "abc", *kept.ID)
}

func TestPatterns(t *testing.T) {
	assert.Len(t, Patterns(types.BiasGender), 7)
	assert.Len(t, Patterns(types.BiasAge), 4)
	assert.Len(t, Patterns(types.BiasPassive), 4)
	assert.Nil(t, Patterns(types.BiasPhoto))

	for _, c := range categories {
		for _, p := range c.patterns {
			assert.Equal(t, strings.ToLower(p.Word), p.Word, "pattern words are matched against lowercased text")
		}
	}
}
