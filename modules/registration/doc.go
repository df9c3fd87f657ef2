// Package registration implements the sign-up form: username, email,
// password and password confirmation.
//
// Validate checks every field independently and, within a field, reports
// only the first failing rule. Form turns a Result into per-field
// presentation state (error or success class plus message) and the views
// render it as HTML. Service mounts the form on a chi router:
//
//	svc := registration.NewService(cfg,
//		registration.WithLogger(log),
//		registration.WithErrorHandler(errorHandler),
//		registration.WithOnSubmit(accounts.Register),
//	)
//	r.Mount("/", svc.Handle())
//
// A rejected submission is answered with the re-rendered page (status 422)
// or, for DataStar clients, with one element patch per field group. An
// accepted one is handed to the OnSubmit hook and redirected to the
// configured success URL. A hook may return a handler.ValidationError keyed
// by field id to reject the submission on those fields.
package registration
