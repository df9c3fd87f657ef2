package registration

import "errors"

// ErrSubmitFailed wraps errors returned by the OnSubmit hook.
var ErrSubmitFailed = errors.New("registration submit failed")
