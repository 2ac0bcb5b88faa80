package toplist

import (
	"regexp"
	"strings"
)

var nonAlnumRe = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Slug derives a URL-safe slug from a title.
// Apostrophes are dropped outright ("Don't" becomes "dont"), every other run
// of characters outside [A-Za-z0-9] collapses to a single hyphen, and the
// result is lower-cased with no leading or trailing hyphens.
func Slug(name string) string {
	s := strings.ReplaceAll(name, "'", "")
	s = nonAlnumRe.ReplaceAllString(s, "-")
	s = strings.ToLower(s)
	return strings.Trim(s, "-")
}
