package ats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetScoreInfo(t *testing.T) {
	tests := []struct {
		score int
		label string
		color string
	}{
		{92, "Strong", "#22C55E"},
		{85, "Strong", "#22C55E"},
		{84, "Good", "#3B82F6"},
		{70, "Good", "#3B82F6"},
		{69, "Needs Improvement", "#F59E0B"},
		{55, "Needs Improvement", "#F59E0B"},
		{54, "Weak", "#EF4444"},
		{20, "Weak", "#EF4444"},
	}

	for _, tt := range tests {
		info := GetScoreInfo(tt.score)
		assert.Equal(t, tt.label, info.Label, "score %d", tt.score)
		assert.Equal(t, tt.color, info.Color, "score %d", tt.score)
		assert.NotEmpty(t, info.Message)
	}
}

func TestKeywordsFor(t *testing.T) {
	kw, ok := KeywordsFor("Culinary")
	assert.True(t, ok)
	assert.Equal(t, "cuisine", kw[0])

	kw, ok = KeywordsFor("Dance")
	assert.False(t, ok)
	assert.Equal(t, "software", kw[0])

	// callers get their own copy
	kw[0] = "mutated"
	again, _ := KeywordsFor("IT")
	assert.Equal(t, "software", again[0])

	assert.Len(t, Domains(), 12)
	assert.True(t, IsKnownDomain("Project Management"))
}

func TestReport_UsesResumeDomain(t *testing.T) {
	r := strongResume()
	r.Domain = "Healthcare"

	report := Report(r, "")
	assert.Equal(t, "Healthcare", report.Domain)
	assert.Equal(t, GetScoreInfo(report.Result.Score), report.Info)

	report = Report(r, "IT")
	assert.Equal(t, "IT", report.Domain)
}
