package utils

import "strings"

// LowerASCII lowercases A-Z only. Other letters, including those with
// Unicode case mappings, are left untouched.
func LowerASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}

// FoldASCII rewrites a regular expression so its letters match either ASCII
// case, e.g. "led" becomes "[lL][eE][dD]". Unlike the (?i) flag it does not
// fold non-ASCII runes such as 'ſ' or the Kelvin sign onto ASCII letters.
// Escaped characters and bracket expressions are copied unchanged.
func FoldASCII(pattern string) string {
	var b strings.Builder
	b.Grow(len(pattern) * 2)

	inClass, escaped := false, false
	for _, r := range pattern {
		switch {
		case escaped:
			escaped = false
			b.WriteRune(r)
		case r == '\\':
			escaped = true
			b.WriteRune(r)
		case inClass:
			if r == ']' {
				inClass = false
			}
			b.WriteRune(r)
		case r == '[':
			inClass = true
			b.WriteRune(r)
		case 'a' <= r && r <= 'z':
			b.WriteString("[" + string(r) + string(r-('a'-'A')) + "]")
		case 'A' <= r && r <= 'Z':
			b.WriteString("[" + string(r+('a'-'A')) + string(r) + "]")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
