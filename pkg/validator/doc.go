// Package validator provides small, composable validation rules for form
// input.
//
// A Rule pairs a boolean Check function with the error it reports: the
// field, a stable Code naming the rule, and a default message. Rules are evaluated with Apply, which aggregates every failure,
// or with Bail, which stops at the first failing rule. Both return a
// ValidationErrors slice that satisfies the error interface.
//
// # Usage
//
//	err := validator.Apply(
//	    validator.Required("username", username),
//	    validator.ValidEmail("email", email),
//	)
//	if errors.Is(err, validator.ErrValidationFailed) {
//	    // err is a validator.ValidationErrors
//	}
//
// Per-field "first failure wins" chains use Bail:
//
//	err := validator.Bail(
//	    validator.Required("password", password).WithMessage("Password is required"),
//	    validator.MinLen("password", password, 8),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    first, _ := verrs.First("password")
//	    _ = first.Code // validator.CodeRequired or validator.CodeMinLength
//	}
//
// Lengths are measured in characters (runes), not bytes. Rules hold no
// global state and are safe for concurrent use.
package validator
