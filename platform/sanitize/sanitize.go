// Package sanitize strips markup from user-provided text before storage.
package sanitize

import (
	"html"
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Text returns s with HTML tags removed and entities decoded, trimmed of
// surrounding whitespace. Intake forms feed free text straight into stored
// fields, so markup is dropped at the boundary rather than escaped on the
// way out.
func Text(s string) string {
	out := tagPattern.ReplaceAllString(s, "")
	out = html.UnescapeString(out)
	// A tag hidden behind entity encoding survives the first strip.
	out = tagPattern.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}

// TextPtr applies Text through an optional pointer.
func TextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	out := Text(*s)
	return &out
}
