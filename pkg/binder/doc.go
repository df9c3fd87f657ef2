// Package binder populates request structs from query strings and form bodies.
//
// Each binder reads one struct tag (`query:"name"`, `form:"name"`) and returns
// a function with the handler.Bind signature. Binders that do not apply to a
// request return ErrBinderNotApplicable so that several can be chained:
//
//	handler.Wrap(h,
//		handler.WithBinders[handler.Context, RegisterRequest](
//			binder.Query(), // always applies
//			binder.Form(),  // skipped for GET, applied for POST
//		),
//	)
package binder
