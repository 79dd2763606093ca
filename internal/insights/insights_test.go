package insights

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"resumeaudit/internal/types"
)

func TestCareer(t *testing.T) {
	tests := []struct {
		domain        string
		wantDomain    string
		firstStrength string
	}{
		{"IT", "IT", "Strong logical and analytical thinking"},
		{"Culinary", "Culinary", "Hands-on creative profession"},
		{"Security", "Security", "Critical organizational role"},
		{"Teaching", "Teaching", "Knowledge sharing and mentorship"},
		{"Education", "Education", "Knowledge sharing and mentorship"},
		{"Dance", "IT", "Strong logical and analytical thinking"},
		{"", "IT", "Strong logical and analytical thinking"},
	}

	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			got := Career(tt.domain)
			assert.Equal(t, tt.wantDomain, got.Domain)
			assert.Len(t, got.Strengths, 4)
			assert.Len(t, got.Improve, 2)
			assert.Equal(t, tt.firstStrength, got.Strengths[0])
		})
	}
}

func TestCareer_ReturnsCopies(t *testing.T) {
	first := Career("Music")
	first.Strengths[0] = "changed"

	assert.Equal(t, "Creative performance career", Career("Music").Strengths[0])
}

func TestEstimateSalary(t *testing.T) {
	tests := []struct {
		name     string
		resume   types.ResumeRecord
		domain   string
		role     string
		min, max float64
		mid      float64
		advanced bool
	}{
		{
			name: "matched role with skill cap",
			resume: types.ResumeRecord{
				Role:       "Senior Software Engineer",
				Experience: make([]types.Experience, 2),
				Skills:     make([]string, 10),
				Education:  []types.Education{{Degree: "MSc Computer Science"}},
			},
			domain: "IT",
			role:   "Software Engineer",
			min:    7.5, max: 31.3, mid: 19.4,
		},
		{
			name: "advanced degree",
			resume: types.ResumeRecord{
				Role:      "Head Chef",
				Education: []types.Education{{Degree: "Master of Culinary Arts"}},
			},
			domain: "Culinary",
			role:   "Head Chef",
			min:    5.5, max: 16.5, mid: 11,
			advanced: true,
		},
		{
			name:   "default role",
			resume: types.ResumeRecord{Role: "Barista"},
			domain: "Culinary",
			role:   "default",
			min:    2.5, max: 8, mid: 5.3,
		},
		{
			name:   "unknown domain falls back to IT",
			resume: types.ResumeRecord{Role: "Data Scientist"},
			domain: "Astronomy",
			role:   "Data Scientist",
			min:    10, max: 35, mid: 22.5,
		},
		{
			name:   "domain taken from resume",
			resume: types.ResumeRecord{Role: "choreographer", Domain: "Dance"},
			role:   "Choreographer",
			min:    3, max: 12, mid: 7.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateSalary(tt.resume, tt.domain)
			assert.Equal(t, tt.role, got.MatchedRole)
			assert.InDelta(t, tt.min, got.Min, 1e-9)
			assert.InDelta(t, tt.max, got.Max, 1e-9)
			assert.InDelta(t, tt.mid, got.Mid, 1e-9)
			assert.Equal(t, tt.advanced, got.Factors.AdvancedDegree)
			assert.Equal(t, Currency, got.Currency)
			assert.Equal(t, Unit, got.Unit)
		})
	}
}

func TestEstimateSalary_FirstMatchingRoleWins(t *testing.T) {
	// "Project Manager" precedes "Program Manager" in the table
	got := EstimateSalary(types.ResumeRecord{Role: "Project Manager / Program Manager"}, "Project Management")
	assert.Equal(t, "Project Manager", got.MatchedRole)
}

func TestJobs(t *testing.T) {
	tests := []struct {
		name       string
		resume     types.ResumeRecord
		domain     string
		wantDomain string
		first      string
		firstMatch int
		lastMatch  int
		url        string
	}{
		{
			name:       "few skills keep table matches",
			resume:     types.ResumeRecord{Role: "Backend Engineer", Skills: []string{"Go"}},
			domain:     "IT",
			wantDomain: "IT",
			first:      "Senior Software Engineer",
			firstMatch: 95, lastMatch: 68,
			url: "https://www.naukri.com/backend-engineer-jobs-in-bangalore",
		},
		{
			name: "more than five skills add a bonus",
			resume: types.ResumeRecord{
				Role: "Pastry  Chef", Location: "New Delhi",
				Skills: []string{"a", "b", "c", "d", "e", "f"},
			},
			domain:     "Culinary",
			wantDomain: "Culinary",
			first:      "Head Chef",
			firstMatch: 100, lastMatch: 70,
			url: "https://www.naukri.com/pastry-chef-jobs-in-new-delhi",
		},
		{
			name:       "domain from resume",
			resume:     types.ResumeRecord{Role: "Dancer", Domain: "Dance"},
			wantDomain: "Dance",
			first:      "Bharatanatyam Instructor",
			firstMatch: 95, lastMatch: 68,
			url: "https://www.naukri.com/dancer-jobs-in-bangalore",
		},
		{
			name:       "unknown domain falls back to IT",
			resume:     types.ResumeRecord{Role: "Nurse"},
			domain:     "Healthcare",
			wantDomain: "IT",
			first:      "Senior Software Engineer",
			firstMatch: 95, lastMatch: 68,
			url: "https://www.naukri.com/nurse-jobs-in-bangalore",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Jobs(tt.resume, tt.domain)
			assert.Equal(t, tt.wantDomain, got.Domain)
			assert.Empty(t, got.Message)
			if assert.Len(t, got.Jobs, 11) {
				assert.Equal(t, tt.first, got.Jobs[0].Title)
				assert.Equal(t, tt.firstMatch, got.Jobs[0].Match)
				assert.Equal(t, tt.lastMatch, got.Jobs[10].Match)
			}
			assert.True(t, slices.IsSortedFunc(got.Jobs, func(a, b types.JobListing) int { return b.Match - a.Match }))
			assert.Equal(t, tt.url, got.SearchURL)
		})
	}
}

func TestJobs_NoRole(t *testing.T) {
	got := Jobs(types.ResumeRecord{Role: "  ", Skills: []string{"Go"}}, "Arts")

	assert.Equal(t, "Arts", got.Domain)
	assert.NotNil(t, got.Jobs)
	assert.Empty(t, got.Jobs)
	assert.Empty(t, got.SearchURL)
	assert.Equal(t, "Add your target role to see relevant job opportunities", got.Message)
}

func TestJobs_DoesNotMutateTable(t *testing.T) {
	six := types.ResumeRecord{Role: "Dev", Skills: make([]string, 6)}
	Jobs(six, "IT")
	Jobs(six, "IT")

	assert.Equal(t, 95, Jobs(types.ResumeRecord{Role: "Dev"}, "IT").Jobs[0].Match)
}
