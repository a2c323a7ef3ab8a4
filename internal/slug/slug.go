// Package slug derives URL-safe lookup keys from event names.
package slug

import (
	"strings"
	"unicode"
)

// transliterations maps the non-ASCII letters we expect in event names to
// ASCII. Anything not listed here and not alphanumeric is dropped.
var transliterations = map[rune]string{
	'á': "a", 'à': "a", 'ä': "a", 'å': "a", 'æ': "ae",
	'ð': "d", 'é': "e", 'è': "e", 'ë': "e", 'í': "i",
	'ì': "i", 'ï': "i", 'ó': "o", 'ò': "o", 'ö': "o",
	'ø': "o", 'ú': "u", 'ù': "u", 'ü': "u", 'ý': "y",
	'þ': "th", 'ß': "ss", 'ñ': "n", 'ç': "c",
}

// Make converts a display name into its slug: lower-cased, transliterated to
// ASCII, with runs of whitespace and punctuation collapsed to single hyphens
// and no leading or trailing hyphen. Make is pure and idempotent: applying it
// to an existing slug returns the slug unchanged.
//
// Make does not guarantee uniqueness. Distinct names can produce the same
// slug ("Go Meetup!" and "Go Meetup?"); only name uniqueness is enforced, so
// slug lookups for such pairs are ambiguous. This is an accepted limitation.
func Make(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	pendingSep := false
	for _, r := range strings.ToLower(name) {
		var chunk string
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			chunk = string(r)
		case unicode.IsLetter(r):
			chunk = transliterations[r]
		}
		if chunk == "" {
			// Whitespace, punctuation, or an untransliterable rune: becomes
			// at most one separator.
			if b.Len() > 0 {
				pendingSep = true
			}
			continue
		}
		if pendingSep {
			b.WriteByte('-')
			pendingSep = false
		}
		b.WriteString(chunk)
	}
	return b.String()
}
