package bias

import (
	"regexp"

	"resumeaudit/internal/types"
	"resumeaudit/internal/utils"
)

// Pattern is a flagged word and its neutral replacement
type Pattern struct {
	Word        string
	Replacement string
	Severity    string
}

type category struct {
	kind     string
	patterns []Pattern
}

// categories are checked in this order; issue order follows it.
var categories = []category{
	{types.BiasGender, []Pattern{
		{"manpower", "workforce", types.BiasHigh},
		{"chairman", "chairperson", types.BiasHigh},
		{"salesman", "salesperson", types.BiasHigh},
		{"businessman", "businessperson", types.BiasModerate},
		{"policeman", "police officer", types.BiasModerate},
		{"fireman", "firefighter", types.BiasModerate},
		{"freshman", "first-year student", types.BiasMild},
	}},
	{types.BiasAge, []Pattern{
		{"young professional", "professional", types.BiasModerate},
		{"recent graduate", "graduate", types.BiasMild},
		{"seasoned", "experienced", types.BiasMild},
		{"years old", "", types.BiasHigh},
	}},
	{types.BiasPassive, []Pattern{
		{"helped with", "led", types.BiasModerate},
		{"worked on", "delivered", types.BiasModerate},
		{"responsible for", "managed", types.BiasMild},
		{"assisted", "collaborated", types.BiasMild},
	}},
}

type replacer struct {
	re          *regexp.Regexp
	replacement string
}

// replacers are compiled once, in table order. Words are quoted so they
// are never interpreted as expressions.
var replacers = func() []replacer {
	var out []replacer
	for _, c := range categories {
		for _, p := range c.patterns {
			out = append(out, replacer{
				re:          regexp.MustCompile(utils.FoldASCII(regexp.QuoteMeta(p.Word))),
				replacement: p.Replacement,
			})
		}
	}
	return out
}()

// Patterns returns a copy of the table for one category, or nil
func Patterns(kind string) []Pattern {
	for _, c := range categories {
		if c.kind == kind {
			return append([]Pattern(nil), c.patterns...)
		}
	}
	return nil
}

func penalty(severity string) int {
	switch severity {
	case types.BiasHigh:
		return 15
	case types.BiasModerate:
		return 8
	case types.BiasMild:
		return 3
	}
	return 0
}
