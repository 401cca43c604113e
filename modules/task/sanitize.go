package task

import (
	"html"
	"strings"
)

// sanitizeText escapes markup-significant characters so stored strings
// cannot be reinterpreted as markup by a downstream renderer. It never
// rejects input, only neutralizes it.
func sanitizeText(s string) string {
	return html.EscapeString(s)
}

// sanitizeTitle trims surrounding whitespace before escaping, so the
// empty check sees the trimmed value.
func sanitizeTitle(s string) string {
	return sanitizeText(strings.TrimSpace(s))
}
