// Package sanitize implements domain.Sanitizer for untrusted form text.
// Sanitize strips script blocks and remaining markup; EscapeAndTrim escapes
// what is left for safe storage and display. Services run structural
// validation on the raw input first, then Sanitize, then EscapeAndTrim, and
// persist only the result.
package sanitize

import (
	"html"
	"regexp"
	"strings"

	"eventsite/internal/domain"
)

var (
	scriptPattern = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	tagPattern    = regexp.MustCompile(`(?s)</?[a-zA-Z][^>]*>`)
)

type htmlSanitizer struct{}

// New returns a Sanitizer that removes script elements and HTML tags.
func New() domain.Sanitizer {
	return htmlSanitizer{}
}

func (htmlSanitizer) Sanitize(text string) string {
	text = scriptPattern.ReplaceAllString(text, "")
	return tagPattern.ReplaceAllString(text, "")
}

func (htmlSanitizer) EscapeAndTrim(text string) string {
	return html.EscapeString(strings.TrimSpace(text))
}
