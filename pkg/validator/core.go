package validator

import (
	"errors"
	"fmt"
	"strings"
)

// Codes identify which rule failed, independent of the message shown.
const (
	CodeRequired  = "required"
	CodeMinLength = "min_length"
	CodeMaxLength = "max_length"
	CodeEmail     = "email"
	CodeMismatch  = "mismatch"
)

// ValidationError is one failed rule.
type ValidationError struct {
	Field   string
	Code    string
	Message string
}

// ValidationErrors is the error returned by Apply and Bail. It matches
// ErrValidationFailed with errors.Is.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ErrValidationFailed.Error()
	}
	parts := make([]string, len(ve))
	for i, e := range ve {
		parts[i] = e.Field + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s", ErrValidationFailed, strings.Join(parts, "; "))
}

func (ve ValidationErrors) Unwrap() error {
	return ErrValidationFailed
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

func (ve ValidationErrors) Has(field string) bool {
	_, ok := ve.First(field)
	return ok
}

// Get returns every message recorded for field, in rule order.
func (ve ValidationErrors) Get(field string) []string {
	var out []string
	for _, e := range ve {
		if e.Field == field {
			out = append(out, e.Message)
		}
	}
	return out
}

// First returns the first error recorded for field.
func (ve ValidationErrors) First(field string) (ValidationError, bool) {
	for _, e := range ve {
		if e.Field == field {
			return e, true
		}
	}
	return ValidationError{}, false
}

// Fields returns the failing fields in order of first failure.
func (ve ValidationErrors) Fields() []string {
	var out []string
	for i, e := range ve {
		if _, ok := ve[:i].First(e.Field); !ok {
			out = append(out, e.Field)
		}
	}
	return out
}

// Rule is a deferred check with the error it reports.
type Rule struct {
	Check func() bool
	Error ValidationError
}

func newRule(field, code, msg string, check func() bool) Rule {
	return Rule{Check: check, Error: ValidationError{Field: field, Code: code, Message: msg}}
}

// WithMessage returns a copy of the rule reporting msg instead of the default message.
func (r Rule) WithMessage(msg string) Rule {
	r.Error.Message = msg
	return r
}

// Apply runs every rule and collects all failures.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	for _, r := range rules {
		if !r.Check() {
			errs.Add(r.Error)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Bail runs rules in order and stops at the first failing one.
// The returned error, if any, holds exactly one ValidationError.
func Bail(rules ...Rule) error {
	for _, r := range rules {
		if !r.Check() {
			return ValidationErrors{r.Error}
		}
	}
	return nil
}

// ExtractValidationErrors returns the ValidationErrors in err's chain, or nil.
func ExtractValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
