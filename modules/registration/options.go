package registration

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/regform/handler"
	"github.com/dmitrymomot/regform/pkg/ratelimiter"
)

// SubmitFunc receives an accepted registration. A returned error is passed
// to the error handler and the client is not redirected.
type SubmitFunc func(ctx context.Context, s Submission) error

// Limiter throttles submissions per client address.
type Limiter interface {
	Allow(ctx context.Context, key string) (ratelimiter.Result, error)
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

func WithErrorHandler(h handler.ErrorHandler[handler.Context]) Option {
	return func(s *Service) {
		if h != nil {
			s.errorHandler = h
		}
	}
}

// WithOnSubmit sets the hook that receives accepted registrations.
func WithOnSubmit(fn SubmitFunc) Option {
	return func(s *Service) {
		s.onSubmit = fn
	}
}

// WithViews overrides the default markup. Nil entries keep the defaults.
func WithViews(v Views) Option {
	return func(s *Service) {
		s.views = v.withDefaults()
	}
}

// WithLimiter throttles POST submissions by client address. Rejected
// clients get handler.ErrTooManyRequests.
func WithLimiter(l Limiter) Option {
	return func(s *Service) {
		s.limiter = l
	}
}
