// Package text holds the pure text utilities the extraction pipeline is
// built on: whitespace normalization, Korean monetary amount parsing and
// clean-text composition for the policies table.
package text

import (
	"regexp"
	"strings"
)

var (
	hspaceRE = regexp.MustCompile(`[ \t]+`)
	blankRE  = regexp.MustCompile(`\n{3,}`)
)

// Normalize canonicalizes a raw text blob for stable pattern matching:
// \r and \r\n become \n, runs of horizontal whitespace collapse to one
// space, three or more consecutive newlines collapse to two, and the
// result is trimmed. Empty input yields an empty string.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = hspaceRE.ReplaceAllString(s, " ")
	s = blankRE.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// CleanField normalizes a single-value field: newlines are kept but each
// line is whitespace-squeezed. Missing sentinel values map to "".
func CleanField(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") || s == "__MISSING__" {
		return ""
	}
	return Normalize(s)
}

// Truncate cuts s to at most limit runes.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimRight(string(runes[:limit]), " \n")
}
