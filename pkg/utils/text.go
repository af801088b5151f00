// Package utils provides shared utilities for text and logging.
package utils

import (
	"strings"
	"unicode"
)

// Ellipsis is appended to truncated text.
const Ellipsis = "..."

// Truncate returns s truncated to maxLen runes, with "..." appended if truncated.
// If maxLen is 0 or negative, returns s unchanged.
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if maxLen <= 0 || len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + Ellipsis
}

// TruncateWords truncates s to at most maxLen runes, cutting at the last whitespace
// before the limit when there is one, and appends "..." if anything was cut.
func TruncateWords(s string, maxLen int) string {
	r := []rune(s)
	if maxLen <= 0 || len(r) <= maxLen {
		return s
	}
	cut := r[:maxLen]
	for i := len(cut) - 1; i > 0; i-- {
		if unicode.IsSpace(cut[i]) {
			cut = cut[:i]
			break
		}
	}
	return strings.TrimRightFunc(string(cut), func(c rune) bool {
		return unicode.IsSpace(c) || unicode.IsPunct(c)
	}) + Ellipsis
}

// CollapseSpace trims s and replaces every run of whitespace with a single space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
