package utils

import (
	"net/mail"
	"unicode"
)

// ValidEmail reports whether s parses as a single RFC 5322 address.
func ValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// ValidUsername reports whether the name length falls in the accepted
// [2,50] range.  Length is counted in runes so multi-byte names are not
// penalized.
func ValidUsername(s string) bool {
	n := len([]rune(s))
	return n >= 2 && n <= 50
}

// ValidPassword enforces the registration password policy: at least 8
// characters containing at least one letter and one digit.
func ValidPassword(s string) bool {
	if len(s) < 8 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}
