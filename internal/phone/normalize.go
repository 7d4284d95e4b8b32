// Package phone canonicalizes raw phone input into the 10-digit key used
// for allow-list membership. The same function must be applied to both the
// allow-list data and user-entered login input, or membership tests will
// silently fail.
package phone

import "strings"

// Normalize strips whitespace, hyphens and the "+91" country code from raw
// input and keeps the rightmost 10 characters. Inputs shorter than 10
// characters pass through unchanged; they simply never match the allow-list.
// Normalizing an already-normalized value is a no-op.
func Normalize(raw string) string {
	s := strings.NewReplacer(" ", "", "\t", "", "-", "").Replace(raw)
	s = strings.TrimSpace(s)
	// Removing a "+91" can assemble another one ("+9+911"), so strip to a
	// fixed point rather than in one pass.
	for strings.Contains(s, "+91") {
		s = strings.ReplaceAll(s, "+91", "")
	}
	if len(s) > 10 {
		s = s[len(s)-10:]
	}
	return s
}
