package sanitizer

import (
	"strings"
	"unicode"
)

// IsSpace reports whether r is whitespace, including the byte order mark
// that browsers strip when trimming form values.
func IsSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// Trim removes leading and trailing whitespace from a string.
func Trim(s string) string {
	return strings.TrimFunc(s, IsSpace)
}

// NormalizeEmail trims and lower-cases an address so that it can be compared.
func NormalizeEmail(email string) string {
	return strings.ToLower(Trim(email))
}
