package registration_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/regform/handler"
	"github.com/dmitrymomot/regform/modules/registration"
	"github.com/dmitrymomot/regform/pkg/clientip"
	"github.com/dmitrymomot/regform/pkg/ratelimiter"
)

type submissions struct {
	mu  sync.Mutex
	got []registration.Submission
	err error
}

func (s *submissions) submit(ctx context.Context, sub registration.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, sub)
	return s.err
}

func newService(t *testing.T, cfg registration.Config, sink *submissions) http.Handler {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return registration.NewService(cfg,
		registration.WithLogger(log),
		registration.WithOnSubmit(sink.submit),
	).Handle()
}

func postForm(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, registration.RegisterPath, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func formValues(username, email, password, confirm string) url.Values {
	return url.Values{
		"username":  {username},
		"email":     {email},
		"password":  {password},
		"cpassword": {confirm},
	}
}

func TestService_GetRegister(t *testing.T) {
	t.Parallel()

	sink := &submissions{}
	h := newService(t, registration.Config{}, sink)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/register?username=alice&email=alice%40example.com", nil))

	body := w.Body.String()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, body, `value="alice"`)
	assert.Contains(t, body, `value="alice@example.com"`)
	assert.NotContains(t, body, "input-control error")
	assert.NotContains(t, body, "input-control success")
	assert.Empty(t, sink.got)
}

func TestService_PostInvalid(t *testing.T) {
	t.Parallel()

	sink := &submissions{}
	h := newService(t, registration.Config{}, sink)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, postForm(formValues("", "", "", "")))

	body := w.Body.String()
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, 4, strings.Count(body, "input-control error"))
	assert.Contains(t, body, "Username is required")
	assert.Contains(t, body, "Email is required")
	assert.Contains(t, body, "Password is required")
	assert.Contains(t, body, "Confirm password is required")
	assert.Empty(t, sink.got, "rejected submission must not be handed on")
}

func TestService_PostMixed(t *testing.T) {
	t.Parallel()

	h := newService(t, registration.Config{}, &submissions{})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, postForm(formValues("alice", "a@b", "password1", "password2")))

	body := w.Body.String()
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, body, `<div class="input-control success" id="username-group">`)
	assert.Contains(t, body, `<div class="input-control error" id="email-group">`)
	assert.Contains(t, body, `<div class="input-control success" id="password-group">`)
	assert.Contains(t, body, `<div class="input-control error" id="cpassword-group">`)
	assert.Contains(t, body, "Please enter a valid email")
	assert.Contains(t, body, "Passwords do not match")
	assert.Contains(t, body, `value="alice"`)
	assert.NotContains(t, body, "password1", "passwords are never echoed")
}

func TestService_PostInvalid_DataStar(t *testing.T) {
	t.Parallel()

	h := newService(t, registration.Config{}, &submissions{})

	req := postForm(formValues("alice", "", "short", "short"))
	req.Header.Set("Datastar-Request", "true")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	body := w.Body.String()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Equal(t, 4, strings.Count(body, "event: datastar-patch-elements"))
	for _, f := range registration.Fields {
		assert.Contains(t, body, "#"+f.GroupID())
	}
	assert.Contains(t, body, "Email is required")
	assert.Contains(t, body, "Password must be at least 8 characters long")
	assert.NotContains(t, body, "<!DOCTYPE html>")
}

func TestService_PostValid(t *testing.T) {
	t.Parallel()

	sink := &submissions{}
	h := newService(t, registration.Config{}, sink)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, postForm(formValues(" alice ", "alice@example.com", "password1", "password1")))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/register/success?username=alice", w.Header().Get("Location"))
	require.Len(t, sink.got, 1)
	assert.Equal(t, registration.Submission{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password1",
	}, sink.got[0])
}

func TestService_PostValid_DataStar(t *testing.T) {
	t.Parallel()

	h := newService(t, registration.Config{SuccessURL: "https://example.com/welcome?ref=signup"}, &submissions{})

	req := postForm(formValues("alice", "alice@example.com", "password1", "password1"))
	req.Header.Set("Datastar-Request", "true")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	body := w.Body.String()
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Contains(t, body, "https://example.com/welcome?ref=signup")
}

func TestService_SubmitHookError(t *testing.T) {
	t.Parallel()

	sink := &submissions{err: handler.NewHTTPError(http.StatusConflict, "already_registered")}
	h := newService(t, registration.Config{}, sink)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, postForm(formValues("alice", "alice@example.com", "password1", "password1")))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already_registered")
	assert.Empty(t, w.Header().Get("Location"))
}

func TestService_SubmitHookFieldErrors(t *testing.T) {
	t.Parallel()

	verr := handler.NewValidationError()
	verr.Add("email", "Email is already registered")
	verr.Add("plan", "ignored: not a form field")
	sink := &submissions{err: fmt.Errorf("create account: %w", verr)}
	h := newService(t, registration.Config{}, sink)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, postForm(formValues("alice", "alice@example.com", "password1", "password1")))

	body := w.Body.String()
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, body, `<div class="input-control success" id="username-group">`)
	assert.Contains(t, body, `<div class="input-control error" id="email-group">`)
	assert.Contains(t, body, "Email is already registered")
	assert.NotContains(t, body, "ignored: not a form field")
	assert.Empty(t, w.Header().Get("Location"))
}

func TestService_SubmitHookUnknownFieldErrors(t *testing.T) {
	t.Parallel()

	verr := handler.NewValidationError()
	verr.Add("plan", "unknown plan")
	h := newService(t, registration.Config{}, &submissions{err: verr})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, postForm(formValues("alice", "alice@example.com", "password1", "password1")))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown plan")
}

func TestService_CustomErrorHandler(t *testing.T) {
	t.Parallel()

	var got error
	sink := &submissions{err: errors.New("db down")}
	h := registration.NewService(registration.Config{},
		registration.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		registration.WithOnSubmit(sink.submit),
		registration.WithErrorHandler(func(ctx handler.Context, err error) {
			got = err
			ctx.ResponseWriter().WriteHeader(http.StatusServiceUnavailable)
		}),
	).Handle()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, postForm(formValues("alice", "alice@example.com", "password1", "password1")))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.ErrorIs(t, got, registration.ErrSubmitFailed)
	assert.ErrorContains(t, got, "db down")
}

func TestService_MinPasswordLengthFromConfig(t *testing.T) {
	t.Parallel()

	h := newService(t, registration.Config{MinPasswordLength: 10}, &submissions{})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, postForm(formValues("alice", "alice@example.com", "password1", "password1")))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Password must be at least 10 characters long")
}

func TestService_UnsupportedMediaType(t *testing.T) {
	t.Parallel()

	h := newService(t, registration.Config{}, &submissions{})

	req := httptest.NewRequest(http.MethodPost, registration.RegisterPath, strings.NewReader(`{"username":"alice"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestService_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	h := newService(t, registration.Config{}, &submissions{})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, registration.RegisterPath, nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestService_SuccessPage(t *testing.T) {
	t.Parallel()

	h := newService(t, registration.Config{}, &submissions{})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/register/success?username=alice", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Welcome, alice!")
}

func TestService_IdenticalSubmissionsRenderIdentically(t *testing.T) {
	t.Parallel()

	h := newService(t, registration.Config{}, &submissions{})

	bodies := make([]string, 2)
	for i := range bodies {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, postForm(formValues("bob", "bob@", "123", "1234")))
		bodies[i] = w.Body.String()
	}
	assert.Equal(t, bodies[0], bodies[1])
}

func TestService_Throttled(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{Capacity: 2, RefillRate: 1, RefillInterval: time.Hour})
	require.NoError(t, err)

	sink := &submissions{}
	h := registration.NewService(registration.Config{},
		registration.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		registration.WithOnSubmit(sink.submit),
		registration.WithLimiter(limiter),
	).Handle()

	send := func(remoteAddr string) *httptest.ResponseRecorder {
		req := postForm(formValues("alice", "alice@example.com", "password1", "password1"))
		req.RemoteAddr = remoteAddr
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusSeeOther, send("192.0.2.1:1000").Code)
	assert.Equal(t, http.StatusSeeOther, send("192.0.2.1:1001").Code)

	w := send("192.0.2.1:1002")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "too_many_requests")
	assert.Len(t, sink.got, 2, "throttled submissions are not handed on")

	assert.Equal(t, http.StatusSeeOther, send("192.0.2.2:1000").Code, "other clients are unaffected")
}

func TestService_ThrottleIgnoresUntrustedForwardingHeaders(t *testing.T) {
	t.Parallel()

	newHandler := func(t *testing.T) http.Handler {
		store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
		limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Hour})
		require.NoError(t, err)
		return registration.NewService(registration.Config{},
			registration.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
			registration.WithLimiter(limiter),
		).Handle()
	}

	send := func(h http.Handler, forwardedFor string) int {
		req := postForm(formValues("alice", "alice@example.com", "password1", "password1"))
		req.RemoteAddr = "192.0.2.1:1000"
		req.Header.Set("X-Forwarded-For", forwardedFor)
		req.Header.Set("X-Real-IP", forwardedFor)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w.Code
	}

	t.Run("without middleware", func(t *testing.T) {
		t.Parallel()

		h := newHandler(t)
		assert.Equal(t, http.StatusSeeOther, send(h, "10.0.0.0"))
		for i := 1; i < 5; i++ {
			assert.Equal(t, http.StatusTooManyRequests, send(h, fmt.Sprintf("10.0.0.%d", i)))
		}
	})

	t.Run("behind resolver trusting other proxies", func(t *testing.T) {
		t.Parallel()

		ips, err := clientip.NewResolver(clientip.Config{TrustedProxies: []string{"10.0.0.0/8"}})
		require.NoError(t, err)

		h := ips.Middleware(newHandler(t))
		assert.Equal(t, http.StatusSeeOther, send(h, "10.0.0.0"))
		for i := 1; i < 5; i++ {
			assert.Equal(t, http.StatusTooManyRequests, send(h, fmt.Sprintf("10.0.0.%d", i)))
		}
	})
}

type fixedLimiter struct {
	res ratelimiter.Result
}

func (l fixedLimiter) Allow(context.Context, string) (ratelimiter.Result, error) {
	return l.res, nil
}

func TestService_RetryAfterRoundsUp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		reset time.Duration
		want  string
	}{
		{"under a second", 400 * time.Millisecond, "1"},
		{"fraction above whole seconds", 90 * time.Second / 60, "2"},
		{"several minutes", 10*time.Minute - 200*time.Millisecond, "600"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := registration.NewService(registration.Config{},
				registration.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
				registration.WithLimiter(fixedLimiter{res: ratelimiter.Result{
					Limit:     1,
					Remaining: -1,
					ResetAt:   time.Now().Add(tt.reset),
				}}),
			).Handle()

			w := httptest.NewRecorder()
			h.ServeHTTP(w, postForm(formValues("alice", "alice@example.com", "password1", "password1")))

			assert.Equal(t, http.StatusTooManyRequests, w.Code)
			assert.Equal(t, tt.want, w.Header().Get("Retry-After"))
		})
	}
}

type brokenLimiter struct{}

func (brokenLimiter) Allow(context.Context, string) (ratelimiter.Result, error) {
	return ratelimiter.Result{}, errors.New("store down")
}

func TestService_LimiterFailureLetsRequestThrough(t *testing.T) {
	t.Parallel()

	h := registration.NewService(registration.Config{},
		registration.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		registration.WithLimiter(brokenLimiter{}),
	).Handle()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, postForm(formValues("alice", "alice@example.com", "password1", "password1")))

	assert.Equal(t, http.StatusSeeOther, w.Code)
}
