package http

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Input validation constants
const (
	MaxTitleLength   = 256
	MaxMessageLength = 10000
	MaxNotesLength   = 5000
	MaxBodyLength    = 100000 // template HTML/CSS
	MaxFieldKeyLen   = 64
)

var fieldKeyRe = regexp.MustCompile(`^[A-Z0-9_]+$`)

// ValidFieldKey checks an editable-field key. Keys become {{KEY}} tokens, so
// they are restricted to uppercase identifiers.
func ValidFieldKey(s string) bool {
	return s != "" && len(s) <= MaxFieldKeyLen && fieldKeyRe.MatchString(s)
}

// SanitizeString removes null bytes and invalid UTF-8
func SanitizeString(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")

	if !utf8.ValidString(s) {
		v := make([]rune, 0, len(s))
		for _, r := range s {
			if r != utf8.RuneError {
				v = append(v, r)
			}
		}
		s = string(v)
	}
	return s
}

// ValidateLength checks if string is within bounds
func ValidateLength(s string, min, max int) bool {
	l := len(s)
	return l >= min && l <= max
}
