package domain

import (
	"strings"

	dErrors "doppel/pkg/domain-errors"
)

// ZIPCode is a normalized 5-digit US ZIP code. It is the cache key and the
// upstream query parameter, so it must be normalized before either use.
// Invariant: exactly five ASCII digits.
//
// Usage: construct via ParseZIP at trust boundaries; direct casting bypasses
// validation.
type ZIPCode string

// ParseZIP normalizes and validates external input into a ZIPCode.
// Surrounding whitespace is stripped and a ZIP+4 suffix ("90210-1234") is
// truncated to its 5-digit prefix.
//
// Errors: returns CodeValidation when the value is empty or not a 5-digit
// code; no other errors are expected. No I/O happens here, so malformed input
// fails before any upstream call.
func ParseZIP(s string) (ZIPCode, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '-'); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return "", dErrors.New(dErrors.CodeValidation, "zip code cannot be empty")
	}
	if len(s) != 5 {
		return "", dErrors.New(dErrors.CodeValidation, "zip code must be exactly 5 digits")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return "", dErrors.New(dErrors.CodeValidation, "zip code must contain only digits")
		}
	}
	return ZIPCode(s), nil
}

func (z ZIPCode) String() string {
	return string(z)
}
