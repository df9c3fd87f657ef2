package validator

import "errors"

// ErrValidationFailed matches every ValidationErrors value with errors.Is.
var ErrValidationFailed = errors.New("validation failed")
