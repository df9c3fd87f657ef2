package validator

import (
	"regexp"
	"strings"

	"github.com/dmitrymomot/regform/pkg/sanitizer"
)

// space is the whitespace class browsers use for \s, which is wider than
// RE2's ASCII-only one.
const space = `\s\x{000b}\x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`

// emailRegex accepts a dot-separated or quoted local part and either a
// bracketed IPv4 literal or a host name with an alphabetic TLD of at least
// two letters. A quoted local part may not span lines.
var emailRegex = regexp.MustCompile(
	`^(([^<>()\[\]\\.,;:` + space + `@"]+(\.[^<>()\[\]\\.,;:` + space + `@"]+)*)|("[^\n\r\x{2028}\x{2029}]+"))@` +
		`((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\])|(([a-zA-Z\-0-9]+\.)+[a-zA-Z]{2,}))$`,
)

// IsEmail reports whether value is a well-formed email address.
// Matching is case-insensitive; surrounding whitespace is not accepted.
func IsEmail(value string) bool {
	if value == "" || value != sanitizer.Trim(value) {
		return false
	}
	return emailRegex.MatchString(strings.ToLower(value))
}

// ValidEmail fails unless IsEmail accepts value.
func ValidEmail(field, value string) Rule {
	return newRule(field, CodeEmail, "must be a valid email address", func() bool {
		return IsEmail(value)
	})
}
