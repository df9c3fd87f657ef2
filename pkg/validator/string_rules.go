package validator

import (
	"fmt"
	"unicode/utf16"

	"github.com/dmitrymomot/regform/pkg/sanitizer"
)

// Length counts value the way browsers measure form input: in UTF-16 code
// units, so a character outside the Basic Multilingual Plane counts as two.
func Length(value string) int {
	n := 0
	for _, r := range value {
		n += utf16.RuneLen(r)
	}
	return n
}

// Required fails for values that are empty after trimming whitespace.
func Required(field, value string) Rule {
	return newRule(field, CodeRequired, "field is required", func() bool {
		return sanitizer.Trim(value) != ""
	})
}

// MinLen fails for values shorter than min (see Length).
func MinLen(field, value string, min int) Rule {
	return newRule(field, CodeMinLength, fmt.Sprintf("must be at least %d characters long", min), func() bool {
		return Length(value) >= min
	})
}

// MaxLen fails for values longer than max (see Length).
func MaxLen(field, value string, max int) Rule {
	return newRule(field, CodeMaxLength, fmt.Sprintf("must be at most %d characters long", max), func() bool {
		return Length(value) <= max
	})
}

// EqualString fails unless value is byte-identical to other. otherField
// names the field other was read from.
func EqualString(field, value, otherField, other string) Rule {
	return newRule(field, CodeMismatch, "must match "+otherField, func() bool {
		return value == other
	})
}
