// Package textnorm cleans free-text fields (names, descriptions) coming
// out of the raw destination datasets.
package textnorm

import (
	"strings"
	"unicode"
)

// allowedPunct is the punctuation kept by Clean. Everything else outside
// letters, digits and whitespace is dropped.
const allowedPunct = ".,;:()-/_"

// Clean normalizes a free-text field: newlines, carriage returns and tabs
// become spaces, runs of whitespace collapse to a single space, characters
// outside the allowed set are removed, and the result is trimmed.
// Clean is idempotent.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))

	pendingSpace := false
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = true
		case unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(allowedPunct, r):
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		default:
			// Dropped characters never turn into separators, so removing
			// them cannot create a double space on a second pass.
		}
	}

	return b.String()
}
