package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/regform/pkg/binder"
	"github.com/dmitrymomot/regform/pkg/logger"
	"github.com/dmitrymomot/regform/pkg/requestid"
)

// ErrorPageParams is passed to the error page view.
type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
	RetryURL   string // path of the failed request
}

// ErrorToastParams is passed to the error toast view.
type ErrorToastParams struct {
	Message   string
	Type      string // "warning" for 4xx, "error" for 5xx
	RequestID string
}

// ErrorHandlerConfig configures NewErrorHandler.
type ErrorHandlerConfig struct {
	// ErrorPage renders the page sent to plain requests. Without it the
	// message is written as text/plain.
	ErrorPage func(ErrorPageParams) templ.Component

	// ErrorToast renders the element patched into DataStar clients.
	ErrorToast func(ErrorToastParams) templ.Component

	ToastTarget string                    // default "#toast-container"
	ToastMode   datastar.ElementPatchMode // default PatchPrepend
}

// ErrorInfo is the classification of an error.
type ErrorInfo struct {
	StatusCode int
	Message    string
	Type       string
	LogLevel   slog.Level
}

const defaultErrorMessage = "An error occurred processing your request"

// ClassifyError maps err to a status code, user-facing message and log level.
// A ValidationError anywhere in the chain wins over an HTTPError.
func ClassifyError(err error) ErrorInfo {
	info := ErrorInfo{StatusCode: http.StatusInternalServerError, Message: defaultErrorMessage}

	var (
		httpErr       HTTPError
		validationErr ValidationError
	)
	switch {
	case errors.As(err, &validationErr):
		info.StatusCode = http.StatusBadRequest
		info.Message = validationMessage(validationErr)
	case errors.As(err, &httpErr):
		info.StatusCode, info.Message = httpErr.Code, httpErr.Key
	case errors.Is(err, binder.ErrUnsupportedMediaType):
		info.StatusCode, info.Message = ErrUnsupportedMediaType.Code, ErrUnsupportedMediaType.Key
	case errors.Is(err, binder.ErrMissingContentType),
		errors.Is(err, binder.ErrInvalidForm),
		errors.Is(err, binder.ErrInvalidQuery):
		info.StatusCode, info.Message = ErrBadRequest.Code, ErrBadRequest.Key
	}

	if info.StatusCode < http.StatusInternalServerError {
		info.Type, info.LogLevel = "warning", slog.LevelWarn
	} else {
		info.Type, info.LogLevel = "error", slog.LevelError
	}
	return info
}

// validationMessage lists "field: message" pairs sorted by field.
func validationMessage(v ValidationError) string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	slices.Sort(fields)

	var parts []string
	for _, field := range fields {
		for _, msg := range v[field] {
			parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
		}
	}
	if len(parts) == 0 {
		return "Validation failed"
	}
	return strings.Join(parts, "; ")
}

// NewErrorHandler returns an ErrorHandler that logs every error with the
// request id, then answers plain requests with the error page and DataStar
// requests with a toast patch (status 200, as SSE requires).
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toast-container"
	}
	if cfg.ToastMode == "" {
		cfg.ToastMode = PatchPrepend
	}

	eh := &errorResponder{cfg: cfg, log: log.With(logger.Component("error_handler"))}
	return eh.handle
}

type errorResponder struct {
	cfg ErrorHandlerConfig
	log *slog.Logger
}

func (e *errorResponder) handle(ctx Context, err error) {
	r := ctx.Request()
	rid := requestid.FromContext(r.Context())
	info := ClassifyError(err)
	datastarReq := IsDataStar(r)

	e.log.LogAttrs(r.Context(), info.LogLevel, "request error",
		logger.RequestID(rid),
		logger.Error(err),
		slog.Int("status_code", info.StatusCode),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Bool("is_datastar", datastarReq),
	)

	if datastarReq {
		e.toast(ctx, info, rid)
		return
	}
	e.page(ctx, info, rid)
}

func (e *errorResponder) toast(ctx Context, info ErrorInfo, rid string) {
	if e.cfg.ErrorToast == nil {
		e.log.Warn("no error toast view configured", logger.RequestID(rid))
		return
	}

	c := e.cfg.ErrorToast(ErrorToastParams{Message: info.Message, Type: info.Type, RequestID: rid})
	resp := Templ(c, WithTarget(e.cfg.ToastTarget), WithPatchMode(e.cfg.ToastMode))
	if err := resp.Render(ctx.ResponseWriter(), ctx.Request()); err != nil {
		e.log.Error("failed to render error toast", logger.RequestID(rid), logger.Error(err))
	}
}

func (e *errorResponder) page(ctx Context, info ErrorInfo, rid string) {
	w, r := ctx.ResponseWriter(), ctx.Request()
	if e.cfg.ErrorPage == nil {
		http.Error(w, info.Message, info.StatusCode)
		return
	}

	c := e.cfg.ErrorPage(ErrorPageParams{
		Error:      info.Message,
		StatusCode: info.StatusCode,
		RequestID:  rid,
		RetryURL:   r.URL.Path,
	})
	// Headers are sent before the body; a failure here leaves a partial page.
	if err := renderHTML(w, r, info.StatusCode, c); err != nil {
		e.log.Error("failed to render error page", logger.RequestID(rid), logger.Error(err))
	}
}
