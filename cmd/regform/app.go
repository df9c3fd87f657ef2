package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/regform/handler"
	"github.com/dmitrymomot/regform/modules/registration"
	"github.com/dmitrymomot/regform/pkg/clientip"
	"github.com/dmitrymomot/regform/pkg/environment"
	"github.com/dmitrymomot/regform/pkg/httpserver"
	"github.com/dmitrymomot/regform/pkg/logger"
	"github.com/dmitrymomot/regform/pkg/requestid"
)

var errShuttingDown = errors.New("server is shutting down")

// drain flips readiness off once shutdown begins so load balancers stop
// routing new requests. Until then readiness follows the backing services.
type drain struct {
	stopping atomic.Bool
	deps     []func(context.Context) error
}

func (d *drain) stop(*slog.Logger) {
	d.stopping.Store(true)
}

func (d *drain) check(ctx context.Context) error {
	if d.stopping.Load() {
		return errShuttingDown
	}
	for _, dep := range d.deps {
		if err := dep(ctx); err != nil {
			return err
		}
	}
	return nil
}

func newLogger(cfg appConfig) *slog.Logger {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.AppEnv, cfg.AppName),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			environment.LoggerExtractor(),
		),
	}
	if cfg.LogLevel != "" {
		if level, err := logger.ParseLevel(cfg.LogLevel); err == nil {
			opts = append(opts, logger.WithLevel(level))
		}
	}
	return logger.New(opts...)
}

// newRouter mounts the registration form and health probes.
func newRouter(cfg settings, log *slog.Logger, ready *drain, ips *clientip.Resolver, opts ...registration.Option) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(ips.Middleware)
	r.Use(environment.Middleware(environment.Parse(cfg.App.AppEnv)))

	errorHandler := handler.NewErrorHandler(log, handler.ErrorHandlerConfig{
		ErrorPage:  registration.ErrorPage,
		ErrorToast: registration.ErrorToast,
	})

	svc := registration.NewService(cfg.Registration, append([]registration.Option{
		registration.WithLogger(log),
		registration.WithErrorHandler(errorHandler),
	}, opts...)...)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, registration.RegisterPath, http.StatusFound)
	})
	r.Get("/health/live", httpserver.HealthCheckHandler(log))
	r.Get("/health/ready", httpserver.HealthCheckHandler(log, ready.check))
	r.Mount("/", svc.Handle())

	return r
}
