package registration

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/regform/handler"
)

// DataStarScriptURL is the client bundle loaded by the default page.
const DataStarScriptURL = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.5/bundles/datastar.js"

// FormID is the id of the form element.
const FormID = "form"

// PageParams contains data for rendering the registration page.
type PageParams struct {
	Form   *Form
	Action string
}

// SuccessPageParams contains data for rendering the confirmation page.
type SuccessPageParams struct {
	Username string
}

// Views renders the registration screens. Any nil entry falls back to the
// default markup.
type Views struct {
	Page        func(PageParams) templ.Component
	FieldGroup  func(FieldGroup) templ.Component
	SuccessPage func(SuccessPageParams) templ.Component
}

// DefaultViews returns the built-in markup.
func DefaultViews() Views {
	return Views{
		Page:        Page,
		FieldGroup:  FieldGroupView,
		SuccessPage: SuccessPage,
	}
}

func (v Views) withDefaults() Views {
	d := DefaultViews()
	if v.Page == nil {
		v.Page = d.Page
	}
	if v.FieldGroup == nil {
		v.FieldGroup = d.FieldGroup
	}
	if v.SuccessPage == nil {
		v.SuccessPage = d.SuccessPage
	}
	return v
}

// writer collects the first write error so markup can be emitted without
// checking every call.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) printf(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}

func (w *writer) render(ctx context.Context, c templ.Component) {
	if w.err != nil {
		return
	}
	w.err = c.Render(ctx, w.w)
}

func esc(s string) string {
	return templ.EscapeString(s)
}

// FieldGroupView renders one input group. The message slot is always
// present so a later pass can fill or clear it.
func FieldGroupView(g FieldGroup) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := &writer{w: w}
		id := string(g.Field)
		out.printf(`<div class="%s" id="%s">`, esc(g.Class()), esc(g.Field.GroupID()))
		out.printf(`<label for="%s">%s</label>`, esc(id), esc(g.Field.Label()))
		out.printf(`<input id="%s" name="%s" type="%s" value="%s">`,
			esc(id), esc(id), esc(g.Field.InputType()), esc(g.Value))
		out.printf(`<div class="error">%s</div>`, esc(g.Message))
		out.printf(`</div>`)
		return out.err
	})
}

// FormView renders the form element with every field group.
func FormView(p PageParams, group func(FieldGroup) templ.Component) templ.Component {
	if group == nil {
		group = FieldGroupView
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := &writer{w: w}
		out.printf(`<form id="%s" action="%s" method="post" novalidate data-on-submit="@post('%s', {contentType: 'form'})">`,
			FormID, esc(p.Action), esc(p.Action))
		out.printf(`<h1>Registration</h1>`)
		if p.Form != nil {
			for _, g := range p.Form.Groups() {
				out.render(ctx, group(g))
			}
		}
		out.printf(`<button type="submit">Sign Up</button>`)
		out.printf(`</form>`)
		return out.err
	})
}

func layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := &writer{w: w}
		out.printf(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		out.printf(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		out.printf(`<title>%s</title>`, esc(title))
		out.printf(`<script type="module" src="%s"></script>`, esc(DataStarScriptURL))
		out.printf(`</head><body><div class="container"><div id="toast-container"></div>`)
		out.render(ctx, body)
		out.printf(`</div></body></html>`)
		return out.err
	})
}

// Page renders the full registration document.
func Page(p PageParams) templ.Component {
	return layout("Register", FormView(p, FieldGroupView))
}

// SuccessPage renders the confirmation shown after an accepted registration.
func SuccessPage(p SuccessPageParams) templ.Component {
	return layout("Registered", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := &writer{w: w}
		out.printf(`<h1>Registration complete</h1>`)
		if p.Username != "" {
			out.printf(`<p>Welcome, %s!</p>`, esc(p.Username))
		}
		return out.err
	}))
}

// ErrorPage renders a full error document for handler.NewErrorHandler.
func ErrorPage(p handler.ErrorPageParams) templ.Component {
	return layout("Error", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := &writer{w: w}
		out.printf(`<h1>%d</h1><p class="error">%s</p>`, p.StatusCode, esc(p.Error))
		if p.RequestID != "" {
			out.printf(`<p><small>Request ID: %s</small></p>`, esc(p.RequestID))
		}
		if p.RetryURL != "" {
			out.printf(`<a href="%s">Try again</a>`, esc(p.RetryURL))
		}
		return out.err
	}))
}

// ErrorToast renders a toast for handler.NewErrorHandler on DataStar requests.
func ErrorToast(p handler.ErrorToastParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := &writer{w: w}
		out.printf(`<div class="toast toast-%s" role="alert">%s</div>`, esc(p.Type), esc(p.Message))
		return out.err
	})
}
