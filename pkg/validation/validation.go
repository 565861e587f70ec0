package validation

import (
	"strings"
	"unicode"
)

const maxCityNameLength = 100

// IsNotEmpty checks if string is not empty after trimming
func IsNotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// TrimAndValidate trims string and validates it's not empty
func TrimAndValidate(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	return trimmed, trimmed != ""
}

// IsValidCityName reports whether s can be sent as a city query once
// surrounding whitespace is trimmed. Blank input is accepted here; callers
// decide what blank means.
func IsValidCityName(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) > maxCityNameLength {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}
