package handler

import "net/http"

type errorResponse struct {
	err error
}

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error {
	return e.err
}

// Error creates a response that hands err to the ErrorHandler configured in
// Wrap instead of writing anything itself.
//
//	if err := s.onSubmit(ctx, sub); err != nil {
//		return handler.Error(err)
//	}
func Error(err error) Response {
	if err == nil {
		err = ErrInternalServerError
	}
	return errorResponse{err: err}
}
