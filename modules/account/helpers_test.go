package account_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dmitrymomot/regform/modules/registration"
)

func postRegister(t *testing.T, h http.Handler, username, email string) *httptest.ResponseRecorder {
	t.Helper()

	form := url.Values{
		"username":  {username},
		"email":     {email},
		"password":  {"password1"},
		"cpassword": {"password1"},
	}
	req := httptest.NewRequest(http.MethodPost, registration.RegisterPath, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}
