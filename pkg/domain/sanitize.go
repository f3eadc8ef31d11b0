package domain

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxTextSize bounds string preferences such as the filter expressions.
const MaxTextSize = 4096

// SanitizeText enforces MaxTextSize, rejects invalid UTF-8 and strips control
// characters other than newline, tab and carriage return.
func SanitizeText(input string) (string, error) {
	if len(input) > MaxTextSize {
		return "", fmt.Errorf("%w: text of %d bytes exceeds %d", ErrInvalidValue, len(input), MaxTextSize)
	}
	if !utf8.ValidString(input) {
		return "", fmt.Errorf("%w: text is not valid UTF-8", ErrInvalidValue)
	}

	clean := true
	for _, r := range input {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return input, nil
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if !unicode.IsControl(r) || isSafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}
