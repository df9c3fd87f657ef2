package account

import "errors"

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrEmailTaken      = errors.New("email already registered")
	ErrHashFailed      = errors.New("failed to hash password")
)

// Messages shown next to the offending form field.
const (
	msgUsernameTaken   = "Username is already taken"
	msgEmailTaken      = "Email is already registered"
	msgPasswordTooLong = "Password must be at most 72 bytes long"
	msgUsernameTooLong = "Username must be at most %d characters long"
	msgEmailTooLong    = "Email must be at most %d characters long"
)

// Column limits for stored values, measured as validator.Length does.
const (
	MaxUsernameLength = 64
	MaxEmailLength    = 254
)
