// Package isbn normalizes raw identifier input and converts between ISBN forms.
package isbn

import (
	"fmt"
	"strings"

	"github.com/lepinkainen/hondana/internal/book"
	"golang.org/x/text/width"
)

// NormalizeDigits folds full-width digits to ASCII and drops every other
// character. Input without digits yields "".
func NormalizeDigits(s string) string {
	if s == "" {
		return ""
	}

	narrowed := width.Narrow.String(s)

	var b strings.Builder
	b.Grow(len(narrowed))
	for i := 0; i < len(narrowed); i++ {
		if c := narrowed[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// IsValid13 reports whether s is exactly 13 ASCII digits.
func IsValid13(s string) bool {
	if len(s) != 13 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Parse normalizes raw and requires the result to be 13 digits.
func Parse(raw string) (string, error) {
	normalized := NormalizeDigits(raw)
	if !IsValid13(normalized) {
		return "", fmt.Errorf("%w: %q", book.ErrInvalidISBN, raw)
	}
	return normalized, nil
}
