package handler

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// TemplOption is an alias for datastar's PatchElementOption
type TemplOption = datastar.PatchElementOption

// WithTarget sets the target selector for where the component should be rendered
func WithTarget(selector string) TemplOption {
	return datastar.WithSelector(selector)
}

// WithPatchMode sets how the component should be merged into the DOM
func WithPatchMode(mode datastar.ElementPatchMode) TemplOption {
	return datastar.WithMode(mode)
}

// TemplPatch is a component with its own patch options.
type TemplPatch struct {
	Component templ.Component
	Options   []TemplOption
}

// Patch creates a TemplPatch for use with TemplMultiOr.
func Patch(component templ.Component, opts ...TemplOption) TemplPatch {
	return TemplPatch{Component: component, Options: opts}
}

// renderHTML writes component as an HTML document body with the given status.
// A zero status leaves the implicit 200.
func renderHTML(w http.ResponseWriter, r *http.Request, status int, components ...templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status != 0 {
		w.WriteHeader(status)
	}
	for _, c := range components {
		if err := c.Render(r.Context(), w); err != nil {
			return err
		}
	}
	return nil
}

// renderPatches streams patches as datastar-patch-elements events.
// SSE responses always carry status 200.
func renderPatches(w http.ResponseWriter, r *http.Request, patches ...TemplPatch) error {
	sse := datastar.NewSSE(w, r)
	for _, p := range patches {
		if err := sse.PatchElementTempl(p.Component, p.Options...); err != nil {
			return err
		}
	}
	return nil
}

type templResponse struct {
	component templ.Component
	options   []TemplOption
}

func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		return renderPatches(w, r, Patch(t.component, t.options...))
	}
	return renderHTML(w, r, 0, t.component)
}

// Templ renders component as HTML, or as a single element patch for
// DataStar requests.
//
//	return handler.Templ(views.SuccessPage(p), handler.WithTarget("#register-form"))
func Templ(component templ.Component, opts ...TemplOption) Response {
	return templResponse{component: component, options: opts}
}

type templMultiResponse struct {
	patches []TemplPatch
	full    templ.Component
	status  int
}

func (t templMultiResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		return renderPatches(w, r, t.patches...)
	}
	return renderHTML(w, r, t.status, t.full)
}

// TemplMultiOr sends each patch as a separate SSE event for DataStar
// requests and renders full with the given status for regular requests.
//
//	return handler.TemplMultiOr(http.StatusUnprocessableEntity, views.Page(p),
//		handler.Patch(views.FieldGroup(username), handler.WithTarget("#username-group")),
//		handler.Patch(views.FieldGroup(email), handler.WithTarget("#email-group")),
//	)
func TemplMultiOr(status int, full templ.Component, patches ...TemplPatch) Response {
	return templMultiResponse{patches: patches, full: full, status: status}
}
