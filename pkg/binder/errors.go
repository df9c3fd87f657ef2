package binder

import "errors"

// Common binding errors
var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMissingContentType   = errors.New("missing content type")
	ErrInvalidForm          = errors.New("invalid form data")
	ErrInvalidQuery         = errors.New("invalid query parameter")

	// ErrBinderNotApplicable signals that a binder does not handle this request
	// (e.g. a form binder on a GET request). Handlers skip such binders.
	ErrBinderNotApplicable = errors.New("binder not applicable to request")
)
