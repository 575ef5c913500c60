// Package slug derives URL-safe identifiers from recipe titles.
package slug

import (
	"regexp"
	"strings"
)

var (
	disallowed = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespace = regexp.MustCompile(`\s+`)
	hyphenRuns = regexp.MustCompile(`-+`)
)

// Make converts a title to a slug.
// "Hello World" -> "hello-world".
// "Chicken & Waffles!" -> "chicken-waffles".
// "Crème brûlée" -> "crme-brle" (non-ASCII letters are dropped, not transliterated).
func Make(title string) string {
	s := strings.TrimSpace(strings.ToLower(title))
	s = disallowed.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// WithSuffix appends a disambiguating suffix; an empty base yields the suffix alone.
func WithSuffix(base, suffix string) string {
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}
