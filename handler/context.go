package handler

import (
	"context"
	"net/http"
	"time"
)

// Context is the request context handed to every HandlerFunc. It carries
// the request's cancellation and values, and exposes the request and the
// writer for handlers that need headers (Retry-After, redirects).
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
}

// NewContext binds w and r into a Context.
func NewContext(w http.ResponseWriter, r *http.Request) Context {
	return &requestContext{w: w, r: r}
}

type requestContext struct {
	w http.ResponseWriter
	r *http.Request
}

func (c *requestContext) Request() *http.Request              { return c.r }
func (c *requestContext) ResponseWriter() http.ResponseWriter { return c.w }

// context.Context is answered by the request's context, read on every call
// so that middleware replacing r's context later is still observed.
func (c *requestContext) Deadline() (time.Time, bool) { return c.r.Context().Deadline() }
func (c *requestContext) Done() <-chan struct{}       { return c.r.Context().Done() }
func (c *requestContext) Err() error                  { return c.r.Context().Err() }
func (c *requestContext) Value(key any) any           { return c.r.Context().Value(key) }
