package bias

import "resumeaudit/internal/types"

// SeverityColor returns the display color for a bias severity
func SeverityColor(severity string) string {
	switch severity {
	case types.BiasHigh:
		return "#ef4444"
	case types.BiasModerate:
		return "#f59e0b"
	default:
		return "#22c55e"
	}
}

// Status summarizes an issue list by its worst severity. It ignores the
// numeric score.
func Status(issues []types.BiasIssue) types.BiasStatus {
	if len(issues) == 0 {
		return types.BiasStatus{
			Label: "Excellent! Your resume is bias-free.",
			Level: types.BiasNone,
			Color: "#22c55e",
		}
	}

	var hasHigh, hasModerate bool
	for _, i := range issues {
		switch i.Severity {
		case types.BiasHigh:
			hasHigh = true
		case types.BiasModerate:
			hasModerate = true
		}
	}

	switch {
	case hasHigh:
		return types.BiasStatus{
			Label: "High bias risk detected. Immediate fixes recommended.",
			Level: types.BiasHigh,
			Color: "#ef4444",
		}
	case hasModerate:
		return types.BiasStatus{
			Label: "Moderate bias detected. Review suggestions below.",
			Level: types.BiasModerate,
			Color: "#f59e0b",
		}
	default:
		return types.BiasStatus{
			Label: "Minor subjective wording detected.",
			Level: types.BiasMild,
			Color: "#818cf8",
		}
	}
}

// ScoreLabel names a bias score band
func ScoreLabel(score int) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 75:
		return "Good"
	case score >= 60:
		return "Moderate"
	default:
		return "High Risk"
	}
}

// Report runs Analyze and attaches its status and score label
func Report(resume types.ResumeRecord) types.BiasReport {
	result := Analyze(resume)
	return types.BiasReport{
		Result:     result,
		Status:     Status(result.IssuesList),
		ScoreLabel: ScoreLabel(result.Score),
	}
}

// Debias rewrites flagged wording and reports the score before and after
func Debias(resume types.ResumeRecord) types.DebiasReport {
	fixed := ReplaceWords(resume)
	return types.DebiasReport{
		Resume: fixed,
		Before: Analyze(resume),
		After:  Analyze(fixed),
	}
}
