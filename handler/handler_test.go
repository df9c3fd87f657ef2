package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/regform/handler"
	"github.com/dmitrymomot/regform/pkg/binder"
)

type signupRequest struct {
	Username string `form:"username" query:"username"`
	Email    string `form:"email" query:"email"`
}

type textResponse string

func (t textResponse) Render(w http.ResponseWriter, r *http.Request) error {
	_, err := w.Write([]byte(t))
	return err
}

type failingResponse struct{}

func (failingResponse) Render(http.ResponseWriter, *http.Request) error {
	return errors.New("render failed")
}

func TestWrap_BindsForm(t *testing.T) {
	t.Parallel()

	h := handler.Wrap[handler.Context, signupRequest](
		func(ctx handler.Context, req signupRequest) handler.Response {
			return textResponse(req.Username + "|" + req.Email)
		},
		handler.WithBinders[handler.Context, signupRequest](binder.Form()),
	)

	form := url.Values{"username": {"alice"}, "email": {"alice@example.com"}}
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	h(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice|alice@example.com", w.Body.String())
}

func TestWrap_SkipsNotApplicableBinder(t *testing.T) {
	t.Parallel()

	h := handler.Wrap[handler.Context, signupRequest](
		func(ctx handler.Context, req signupRequest) handler.Response {
			return textResponse(req.Username)
		},
		handler.WithBinders[handler.Context, signupRequest](binder.Query(), binder.Form()),
	)

	req := httptest.NewRequest(http.MethodGet, "/register?username=bob", nil)
	w := httptest.NewRecorder()

	h(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bob", w.Body.String())
}

func TestWrap_BinderErrorGoesToErrorHandler(t *testing.T) {
	t.Parallel()

	var got error
	h := handler.Wrap[handler.Context, signupRequest](
		func(ctx handler.Context, req signupRequest) handler.Response {
			t.Fatal("handler must not run when binding fails")
			return nil
		},
		handler.WithBinders[handler.Context, signupRequest](binder.Form()),
		handler.WithErrorHandler[handler.Context, signupRequest](func(ctx handler.Context, err error) {
			got = err
			ctx.ResponseWriter().WriteHeader(http.StatusTeapot)
		}),
	)

	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h(w, req)

	require.Error(t, got)
	assert.ErrorIs(t, got, binder.ErrUnsupportedMediaType)
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestWrap_NilResponse(t *testing.T) {
	t.Parallel()

	h := handler.Wrap[handler.Context, struct{}](func(ctx handler.Context, req struct{}) handler.Response {
		return nil
	})

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), handler.ErrNilResponse.Error())
}

func TestWrap_RenderError(t *testing.T) {
	t.Parallel()

	h := handler.Wrap[handler.Context, struct{}](func(ctx handler.Context, req struct{}) handler.Response {
		return failingResponse{}
	})

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "render failed")
}

func TestWrap_DecoratorCanShortCircuit(t *testing.T) {
	t.Parallel()

	h := handler.Wrap[handler.Context, struct{}](
		func(ctx handler.Context, req struct{}) handler.Response { return textResponse("unreachable") },
		handler.WithDecorators[handler.Context, struct{}](func(next handler.HandlerFunc[handler.Context, struct{}]) handler.HandlerFunc[handler.Context, struct{}] {
			return func(ctx handler.Context, req struct{}) handler.Response {
				return handler.RedirectWithCode("/login", http.StatusFound)
			}
		}),
	)

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestWrap_DecoratorOrder(t *testing.T) {
	t.Parallel()

	var order []string
	mark := func(name string) handler.Decorator[handler.Context, struct{}] {
		return func(next handler.HandlerFunc[handler.Context, struct{}]) handler.HandlerFunc[handler.Context, struct{}] {
			return func(ctx handler.Context, req struct{}) handler.Response {
				order = append(order, name)
				return next(ctx, req)
			}
		}
	}

	h := handler.Wrap[handler.Context, struct{}](
		func(ctx handler.Context, req struct{}) handler.Response {
			order = append(order, "handler")
			return textResponse("ok")
		},
		handler.WithDecorators[handler.Context, struct{}](mark("outer"), mark("inner")),
	)

	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

type appContext struct {
	handler.Context
	tenant string
}

func TestWrap_CustomContextFactory(t *testing.T) {
	t.Parallel()

	h := handler.Wrap[*appContext, struct{}](
		func(ctx *appContext, req struct{}) handler.Response {
			return textResponse(ctx.tenant)
		},
		handler.WithContextFactory[*appContext, struct{}](func(w http.ResponseWriter, r *http.Request) *appContext {
			return &appContext{Context: handler.NewContext(w, r), tenant: "acme"}
		}),
	)

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "acme", w.Body.String())
}

func TestWrap_ErrorResponse(t *testing.T) {
	t.Parallel()

	var got error
	h := handler.Wrap[handler.Context, struct{}](
		func(ctx handler.Context, req struct{}) handler.Response {
			return handler.Error(handler.NewHTTPError(http.StatusConflict, "already_registered"))
		},
		handler.WithErrorHandler[handler.Context, struct{}](func(ctx handler.Context, err error) {
			got = err
			http.Error(ctx.ResponseWriter(), err.Error(), http.StatusConflict)
		}),
	)

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodPost, "/", nil))

	var httpErr handler.HTTPError
	require.ErrorAs(t, got, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestError_NilFallsBackToInternal(t *testing.T) {
	t.Parallel()

	err := handler.Error(nil).Render(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, handler.ErrInternalServerError)
}
