package utils

import (
	"html"
	"strings"
)

// SanitizeString trims whitespace and escapes HTML entities. Applied to
// free-text fields (holder names, reasons, repair notes) before they are
// persisted or forwarded upstream.
func SanitizeString(input string) string {
	trimmed := strings.TrimSpace(input)

	escaped := html.EscapeString(trimmed)

	return escaped
}
