package ats

import "resumeaudit/internal/types"

// GetScoreInfo maps an ATS score to its display band
func GetScoreInfo(score int) types.ScoreInfo {
	switch {
	case score >= 85:
		return types.ScoreInfo{Label: "Strong", Color: "#22C55E", Message: "ATS-optimized and recruiter-ready"}
	case score >= 70:
		return types.ScoreInfo{Label: "Good", Color: "#3B82F6", Message: "Minor improvements recommended"}
	case score >= 55:
		return types.ScoreInfo{Label: "Needs Improvement", Color: "#F59E0B", Message: "Several areas need attention"}
	default:
		return types.ScoreInfo{Label: "Weak", Color: "#EF4444", Message: "Major improvements required"}
	}
}

// Report runs Analyze and attaches the display band
func Report(resume types.ResumeRecord, domain string) types.ATSReport {
	if domain == "" {
		domain = resume.Domain
	}
	if domain == "" {
		domain = DefaultDomain
	}
	result := Analyze(resume, domain)
	return types.ATSReport{
		Domain: domain,
		Result: result,
		Info:   GetScoreInfo(result.Score),
	}
}
