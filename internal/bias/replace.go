package bias

import (
	"slices"

	"resumeaudit/internal/types"
)

// ReplaceWords returns a normalized copy of resume with every flagged word
// in the summary, experience and project descriptions replaced, ignoring
// case. The profile image is left alone; removing it is a separate choice.
func ReplaceWords(resume types.ResumeRecord) types.ResumeRecord {
	r := Normalize(resume)

	r.Summary = replaceText(r.Summary)

	r.Experience = slices.Clone(r.Experience)
	for i := range r.Experience {
		r.Experience[i].Description = replaceText(r.Experience[i].Description)
	}

	r.Projects = slices.Clone(r.Projects)
	for i := range r.Projects {
		r.Projects[i].Description = replaceText(r.Projects[i].Description)
	}
	return r
}

func replaceText(text string) string {
	for _, rp := range replacers {
		text = rp.re.ReplaceAllLiteralString(text, rp.replacement)
	}
	return text
}
