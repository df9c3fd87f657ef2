// Package handler provides type-safe HTTP handlers for server-rendered pages.
//
// A HandlerFunc receives a Context and a request struct populated by binders,
// and returns a Response that renders itself:
//
//	type RegisterRequest struct {
//		Username string `form:"username"`
//		Email    string `form:"email"`
//	}
//
//	func register(ctx handler.Context, req RegisterRequest) handler.Response {
//		return handler.Templ(views.RegisterPage(req))
//	}
//
//	r.Post("/register", handler.Wrap(register,
//		handler.WithBinders[handler.Context, RegisterRequest](binder.Form()),
//		handler.WithErrorHandler[handler.Context, RegisterRequest](errHandler),
//	))
//
// # DataStar
//
// Requests made by the DataStar client (https://data-star.dev) expect a
// Server-Sent Events stream. Templ, TemplMultiOr and Redirect
// detect such requests with IsDataStar and answer with element patches or a
// client-side redirect; plain requests get HTML or a 303.
//
// # Errors
//
// Binding and rendering failures are passed to the ErrorHandler. The default
// one writes a plain-text response; NewErrorHandler renders templ error pages
// for plain requests and toast patches for DataStar requests, and logs every
// failure with the request id.
package handler
