package logging

import (
	"regexp"
	"strings"
)

const (
	// MaxValueDisplayLength is the maximum length of a record value in
	// report text and log fields
	MaxValueDisplayLength = 100
)

// Record values come straight out of XML exports and can embed newlines,
// tabs and control characters that would break one-line report output.
var controlCharPattern = regexp.MustCompile(`[\x00-\x1f\x7f]+`)

// SanitizeValue flattens control characters and whitespace runs so a
// record value renders on a single report line.
func SanitizeValue(s string) string {
	if s == "" {
		return ""
	}

	sanitized := controlCharPattern.ReplaceAllString(s, " ")
	sanitized = strings.Join(strings.Fields(sanitized), " ")

	return sanitized
}

// TruncateString truncates a string to maxLen and adds ellipsis if needed
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// DisplayValue sanitizes and truncates a record value for report text.
func DisplayValue(s string) string {
	return TruncateString(SanitizeValue(s), MaxValueDisplayLength)
}
