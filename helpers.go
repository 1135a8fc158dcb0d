package stanza

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldMarks strips combining marks after NFD decomposition so that
// "café" slugs to "cafe".
var foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify converts arbitrary text to a URL-safe kebab-case slug.
func Slugify(s string) string {
	if folded, _, err := transform.String(foldMarks, s); err == nil {
		s = folded
	}
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// TagPath returns the route for a tag, e.g. "Ruby on Rails" -> "/tag/ruby-on-rails/".
func TagPath(tag string) string {
	return "/tag/" + Slugify(tag) + "/"
}

// AbsURL joins the site base URL with a site-absolute route path.
func AbsURL(base, route string) string {
	return strings.TrimSuffix(base, "/") + route
}

// FilterEmpty removes empty/whitespace-only strings from a slice.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}
