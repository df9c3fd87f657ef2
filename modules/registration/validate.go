package registration

import (
	"fmt"

	"github.com/dmitrymomot/regform/pkg/sanitizer"
	"github.com/dmitrymomot/regform/pkg/validator"
)

// DefaultMinPasswordLength is the minimum password length in characters.
const DefaultMinPasswordLength = 8

// Reason classifies why a field failed.
type Reason string

const (
	ReasonRequired      Reason = "required"
	ReasonInvalidFormat Reason = "invalid_format"
	ReasonTooShort      Reason = "too_short"
	ReasonMismatch      Reason = "mismatch"
)

const (
	msgUsernameRequired = "Username is required"
	msgEmailRequired    = "Email is required"
	msgEmailInvalid     = "Please enter a valid email"
	msgPasswordRequired = "Password is required"
	msgPasswordTooShort = "Password must be at least %d characters long"
	msgConfirmRequired  = "Confirm password is required"
	msgConfirmMismatch  = "Passwords do not match"
)

var reasonByCode = map[string]Reason{
	validator.CodeRequired:  ReasonRequired,
	validator.CodeEmail:     ReasonInvalidFormat,
	validator.CodeMinLength: ReasonTooShort,
	validator.CodeMismatch:  ReasonMismatch,
}

// Input holds the raw submitted values.
type Input struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Trimmed returns a copy with leading and trailing whitespace removed from every value.
func (in Input) Trimmed() Input {
	return Input{
		Username:        sanitizer.Trim(in.Username),
		Email:           sanitizer.Trim(in.Email),
		Password:        sanitizer.Trim(in.Password),
		ConfirmPassword: sanitizer.Trim(in.ConfirmPassword),
	}
}

// Value returns the value submitted for f.
func (in Input) Value(f Field) string {
	switch f {
	case FieldUsername:
		return in.Username
	case FieldEmail:
		return in.Email
	case FieldPassword:
		return in.Password
	case FieldConfirmPassword:
		return in.ConfirmPassword
	default:
		return ""
	}
}

// FieldState is the outcome for one field. A zero Reason means success.
type FieldState struct {
	Field   Field
	Reason  Reason
	Message string
}

func (s FieldState) IsError() bool {
	return s.Reason != ""
}

// Result is the outcome of one validation pass.
type Result struct {
	// Input holds the trimmed values that were validated.
	Input Input
	// States has one entry per field, in Fields order.
	States []FieldState
}

// Valid reports whether every field succeeded.
func (r Result) Valid() bool {
	for _, s := range r.States {
		if s.IsError() {
			return false
		}
	}
	return true
}

// State returns the state of f.
func (r Result) State(f Field) (FieldState, bool) {
	for _, s := range r.States {
		if s.Field == f {
			return s, true
		}
	}
	return FieldState{}, false
}

// FailedFields returns the names of the fields in error.
func (r Result) FailedFields() []string {
	var out []string
	for _, s := range r.States {
		if s.IsError() {
			out = append(out, string(s.Field))
		}
	}
	return out
}

// Submission is what an accepted registration hands on.
type Submission struct {
	Username string
	Email    string
	Password string
}

// Submission returns the accepted values. It is meaningful only when Valid is true.
func (r Result) Submission() Submission {
	return Submission{
		Username: r.Input.Username,
		Email:    r.Input.Email,
		Password: r.Input.Password,
	}
}

// Validator checks registration input.
type Validator struct {
	minPasswordLength int
}

// NewValidator returns a Validator requiring passwords of at least
// minPasswordLength characters. Values below 1 fall back to DefaultMinPasswordLength.
func NewValidator(minPasswordLength int) Validator {
	if minPasswordLength < 1 {
		minPasswordLength = DefaultMinPasswordLength
	}
	return Validator{minPasswordLength: minPasswordLength}
}

// Validate checks in with the default password length.
func Validate(in Input) Result {
	return NewValidator(DefaultMinPasswordLength).Validate(in)
}

// Validate trims every value and evaluates each field on its own.
// Within a field the first failing rule is reported.
func (v Validator) Validate(in Input) Result {
	if v.minPasswordLength < 1 {
		v.minPasswordLength = DefaultMinPasswordLength
	}
	in = in.Trimmed()

	username := string(FieldUsername)
	email := string(FieldEmail)
	password := string(FieldPassword)
	confirm := string(FieldConfirmPassword)

	return Result{
		Input: in,
		States: []FieldState{
			fieldState(FieldUsername, validator.Bail(
				validator.Required(username, in.Username).WithMessage(msgUsernameRequired),
			)),
			fieldState(FieldEmail, validator.Bail(
				validator.Required(email, in.Email).WithMessage(msgEmailRequired),
				validator.ValidEmail(email, in.Email).WithMessage(msgEmailInvalid),
			)),
			fieldState(FieldPassword, validator.Bail(
				validator.Required(password, in.Password).WithMessage(msgPasswordRequired),
				validator.MinLen(password, in.Password, v.minPasswordLength).
					WithMessage(fmt.Sprintf(msgPasswordTooShort, v.minPasswordLength)),
			)),
			fieldState(FieldConfirmPassword, validator.Bail(
				validator.Required(confirm, in.ConfirmPassword).WithMessage(msgConfirmRequired),
				validator.EqualString(confirm, in.ConfirmPassword, password, in.Password).WithMessage(msgConfirmMismatch),
			)),
		},
	}
}

func fieldState(field Field, err error) FieldState {
	first, ok := validator.ExtractValidationErrors(err).First(string(field))
	if !ok {
		return FieldState{Field: field}
	}
	return FieldState{
		Field:   field,
		Reason:  reasonByCode[first.Code],
		Message: first.Message,
	}
}
