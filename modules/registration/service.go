package registration

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/regform/handler"
	"github.com/dmitrymomot/regform/pkg/binder"
	"github.com/dmitrymomot/regform/pkg/clientip"
	"github.com/dmitrymomot/regform/pkg/logger"
	"github.com/dmitrymomot/regform/pkg/requestid"
	"github.com/dmitrymomot/regform/pkg/sanitizer"
)

// Service serves the registration form.
type Service struct {
	cfg          Config
	validator    Validator
	views        Views
	log          *slog.Logger
	onSubmit     SubmitFunc
	limiter      Limiter
	errorHandler handler.ErrorHandler[handler.Context]
}

func NewService(cfg Config, opts ...Option) *Service {
	cfg = cfg.withDefaults()
	s := &Service{
		cfg:       cfg,
		validator: NewValidator(cfg.MinPasswordLength),
		views:     DefaultViews(),
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.errorHandler == nil {
		s.errorHandler = handler.NewErrorHandler(s.log, handler.ErrorHandlerConfig{
			ErrorPage:  ErrorPage,
			ErrorToast: ErrorToast,
		})
	}
	return s
}

// Handle returns the routes of the service:
// GET and POST /register, GET /register/success.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()

	register := handler.Wrap(s.register,
		handler.WithBinders[handler.Context, RegisterRequest](
			binder.Query(), // pre-fill on GET
			binder.Form(),  // skipped for GET
		),
		handler.WithErrorHandler[handler.Context, RegisterRequest](s.errorHandler),
		handler.WithDecorators(timed[RegisterRequest](s.log, "register")),
	)
	r.Get(RegisterPath, register)
	r.Post(RegisterPath, register)

	r.Get(SuccessPath, handler.Wrap(s.success,
		handler.WithBinders[handler.Context, SuccessRequest](binder.Query()),
		handler.WithErrorHandler[handler.Context, SuccessRequest](s.errorHandler),
		handler.WithDecorators(timed[SuccessRequest](s.log, "register_success")),
	))

	return r
}

// timed logs the time a handler spent building its response.
func timed[R any](log *slog.Logger, name string) handler.Decorator[handler.Context, R] {
	return func(next handler.HandlerFunc[handler.Context, R]) handler.HandlerFunc[handler.Context, R] {
		return func(ctx handler.Context, req R) handler.Response {
			start := time.Now()
			resp := next(ctx, req)
			log.DebugContext(ctx, "handler finished",
				logger.Handler(name),
				logger.Duration(time.Since(start)),
			)
			return resp
		}
	}
}

// RegisterRequest carries the form values. GET requests may pre-fill
// username and email through the query string.
type RegisterRequest struct {
	Username        string `form:"username" query:"username"`
	Email           string `form:"email" query:"email"`
	Password        string `form:"password" query:"-"`
	ConfirmPassword string `form:"cpassword" query:"-"`
}

func (r RegisterRequest) Input() Input {
	return Input{
		Username:        r.Username,
		Email:           r.Email,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
	}
}

type SuccessRequest struct {
	Username string `query:"username"`
}

func (s *Service) register(ctx handler.Context, req RegisterRequest) handler.Response {
	in := req.Input()

	if ctx.Request().Method != http.MethodPost {
		return handler.Templ(s.views.Page(PageParams{
			Form:   NewForm(in.Trimmed()),
			Action: RegisterPath,
		}))
	}

	log := s.log.With(
		logger.Component("registration"),
		logger.RequestID(requestid.FromContext(ctx)),
	)

	if resp := s.throttle(ctx, log); resp != nil {
		return resp
	}

	result := s.validator.Validate(in)
	form := NewForm(result.Input)
	form.Present(result)

	if !result.Valid() {
		return s.reject(ctx, log, form, result.FailedFields())
	}

	sub := result.Submission()
	if s.onSubmit != nil {
		if err := s.onSubmit(ctx, sub); err != nil {
			// Field errors from downstream (e.g. a taken username) are shown
			// on the form like any other rule failure.
			var verr handler.ValidationError
			if errors.As(err, &verr) {
				if failed := applyFieldErrors(form, verr); len(failed) > 0 {
					return s.reject(ctx, log, form, failed)
				}
			}
			return handler.Error(fmt.Errorf("%w: %w", ErrSubmitFailed, err))
		}
	}

	log.InfoContext(ctx, "registration accepted",
		logger.Event("registration_accepted"),
		slog.String("username", sanitizer.MaskString(sub.Username, 1)),
		slog.String("email", sanitizer.MaskEmail(sub.Email)),
	)

	return handler.Redirect(s.successURL(sub.Username))
}

// reject re-renders the form with its current state: the full page with
// 422 for plain requests, one patch per field group for DataStar.
func (s *Service) reject(ctx handler.Context, log *slog.Logger, form *Form, failed []string) handler.Response {
	log.InfoContext(ctx, "registration rejected",
		logger.Event("registration_rejected"),
		logger.Fields(failed...),
	)

	groups := form.Groups()
	patches := make([]handler.TemplPatch, 0, len(groups))
	for _, g := range groups {
		patches = append(patches, handler.Patch(s.views.FieldGroup(g),
			handler.WithTarget("#"+g.Field.GroupID()),
		))
	}
	page := s.views.Page(PageParams{Form: form, Action: RegisterPath})
	return handler.TemplMultiOr(http.StatusUnprocessableEntity, page, patches...)
}

// applyFieldErrors marks the form fields named in verr as errored and
// returns their names. Keys that are not form fields are ignored.
func applyFieldErrors(form *Form, verr handler.ValidationError) []string {
	var failed []string
	for _, field := range Fields {
		if msg := verr.Get(string(field)); msg != "" {
			form.SetError(field, msg)
			failed = append(failed, string(field))
		}
	}
	return failed
}

// throttle returns a non-nil response when the client exceeded its
// submission budget. Limiter failures let the request through.
func (s *Service) throttle(ctx handler.Context, log *slog.Logger) handler.Response {
	if s.limiter == nil {
		return nil
	}

	// Without the clientip middleware no proxy is trusted.
	key := clientip.FromContext(ctx)
	if key == "" {
		key = clientip.FromRequest(ctx.Request())
	}

	res, err := s.limiter.Allow(ctx, "register:"+key)
	if err != nil {
		log.WarnContext(ctx, "rate limiter unavailable", logger.Error(err))
		return nil
	}
	if res.Allowed() {
		return nil
	}

	if retry := int(math.Ceil(res.RetryAfter().Seconds())); retry > 0 {
		ctx.ResponseWriter().Header().Set("Retry-After", strconv.Itoa(retry))
	}
	log.WarnContext(ctx, "registration throttled", logger.Event("registration_throttled"))
	return handler.Error(handler.ErrTooManyRequests)
}

func (s *Service) success(ctx handler.Context, req SuccessRequest) handler.Response {
	return handler.Templ(s.views.SuccessPage(SuccessPageParams{
		Username: sanitizer.Trim(req.Username),
	}))
}

// successURL appends the username to the configured success URL.
// An unparsable URL is used as is.
func (s *Service) successURL(username string) string {
	u, err := url.Parse(s.cfg.SuccessURL)
	if err != nil {
		return s.cfg.SuccessURL
	}
	q := u.Query()
	q.Set("username", username)
	u.RawQuery = q.Encode()
	return u.String()
}
