package common

import (
	"fmt"
	"slices"
	"strings"
)

// ValidateOutputFormat validates format against configured supported formats
func ValidateOutputFormat(format string, supportedFormats []string) error {
	if len(supportedFormats) == 0 {
		return nil // no restrictions configured
	}

	if slices.Contains(supportedFormats, format) {
		return nil
	}

	return fmt.Errorf("unsupported output format '%s'. Supported formats: %v",
		format, supportedFormats)
}

// ResolveOutputFormat picks the requested format, or the configured default
// when none was given, and checks it against the supported list.
// "md" is accepted as shorthand for markdown.
func ResolveOutputFormat(requested, defaultFormat string, supportedFormats []string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(requested))
	switch format {
	case "":
		format = defaultFormat
	case "md":
		format = "markdown"
	}
	if err := ValidateOutputFormat(format, supportedFormats); err != nil {
		return "", err
	}
	return format, nil
}

// ResolveDomain returns the first non-blank of the requested domain, the
// résumé's own domain and the configured default
func ResolveDomain(requested, resumeDomain, defaultDomain string) string {
	for _, d := range []string{requested, resumeDomain, defaultDomain} {
		if d = strings.TrimSpace(d); d != "" {
			return d
		}
	}
	return ""
}
