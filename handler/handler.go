package handler

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/soar/pkg/binder"
)

// HandlerFunc is a typed HTTP handler. R is populated by the configured
// binders before the function runs.
//
//	login := handler.HandlerFunc[loginRequest](func(ctx handler.Context, req loginRequest) handler.Response {
//		return handler.Redirect("/dashboard")
//	})
//	r.Post("/login", handler.Wrap(login, handler.WithBinders[loginRequest](binder.Form(), binder.JSON())))
type HandlerFunc[R any] func(ctx Context, req R) Response

// Response renders itself to the client.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// ResponseFunc adapts a function to Response.
type ResponseFunc func(w http.ResponseWriter, r *http.Request) error

func (f ResponseFunc) Render(w http.ResponseWriter, r *http.Request) error { return f(w, r) }

// ErrorHandler writes a response for binding, handler or render errors.
type ErrorHandler func(ctx Context, err error)

type WrapOption[R any] func(*wrapConfig[R])

type wrapConfig[R any] struct {
	binders      []binder.Func
	errorHandler ErrorHandler
}

// WithBinders applies binders in order. Binders returning
// binder.ErrNotApplicable are skipped.
func WithBinders[R any](binders ...binder.Func) WrapOption[R] {
	return func(c *wrapConfig[R]) {
		c.binders = append(c.binders, binders...)
	}
}

func WithErrorHandler[R any](h ErrorHandler) WrapOption[R] {
	return func(c *wrapConfig[R]) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

func defaultErrorHandler(ctx Context, err error) {
	info := Classify(err)
	http.Error(ctx.ResponseWriter(), info.Message, info.StatusCode)
}

// Wrap converts a typed handler into an http.HandlerFunc.
func Wrap[R any](h HandlerFunc[R], opts ...WrapOption[R]) http.HandlerFunc {
	cfg := &wrapConfig[R]{errorHandler: defaultErrorHandler}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := NewContext(w, r)

		var req R
		for _, bind := range cfg.binders {
			if err := bind(r, &req); err != nil {
				if errors.Is(err, binder.ErrNotApplicable) {
					continue
				}
				cfg.errorHandler(ctx, errors.Join(ErrBadRequest, err))
				return
			}
		}

		resp := h(ctx, req)
		if resp == nil {
			cfg.errorHandler(ctx, ErrNilResponse)
			return
		}
		if err := resp.Render(w, r); err != nil {
			cfg.errorHandler(ctx, err)
		}
	}
}
