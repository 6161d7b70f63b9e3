package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/soar/handler"
	"github.com/dmitrymomot/soar/pkg/binder"
	"github.com/dmitrymomot/soar/pkg/toast"
	"github.com/dmitrymomot/soar/svc/auth"
)

type loginResponse struct {
	User       *auth.User `json:"user"`
	RedirectTo string     `json:"redirectTo"`
}

type responseMeta struct {
	Toasts   []toast.Toast `json:"toasts,omitempty"`
	Redirect string        `json:"redirect,omitempty"`
}

// API mirrors the session flow as JSON; mount it under /api/auth.
func (m *Module) API() http.Handler {
	r := chi.NewRouter()

	r.Post("/login", handler.Wrap(m.apiLogin,
		handler.WithBinders[loginRequest](binder.JSON(), binder.Form()),
		handler.WithErrorHandler[loginRequest](m.errorHandler),
	))
	r.Post("/logout", handler.Wrap(m.apiLogout, handler.WithErrorHandler[struct{}](m.errorHandler)))
	r.Get("/me", handler.Wrap(m.apiMe, handler.WithErrorHandler[struct{}](m.errorHandler)))

	return r
}

func (m *Module) apiLogin(ctx handler.Context, req loginRequest) handler.Response {
	f := m.apiFlow(ctx.ResponseWriter(), ctx.Request())
	defer f.release()

	outcome, err := f.ctrl.HandleLogin(ctx, req.credentials(), auth.WithReturnTo(req.From)).Await()
	if err != nil {
		return failure(err)
	}

	if !outcome.Success {
		return handler.JSONFailure(http.StatusUnauthorized, "auth.login_failed", outcome.Error,
			handler.WithMeta(responseMeta{Toasts: f.toasts.Toasts()}))
	}

	redirect := f.redirect(outcome.RedirectTo)
	return handler.JSON(loginResponse{User: outcome.User, RedirectTo: redirect},
		handler.WithMeta(responseMeta{Toasts: f.toasts.Toasts(), Redirect: redirect}))
}

func (m *Module) apiLogout(ctx handler.Context, _ struct{}) handler.Response {
	f := m.apiFlow(ctx.ResponseWriter(), ctx.Request())
	defer f.release()

	outcome, err := f.ctrl.HandleLogout(ctx).Await()
	if err != nil {
		return failure(err)
	}

	meta := responseMeta{Toasts: f.toasts.Toasts()}
	if !outcome.Success {
		return handler.JSONFailure(http.StatusInternalServerError, "auth.logout_error", outcome.Error, handler.WithMeta(meta))
	}
	meta.Redirect = f.redirect(outcome.RedirectTo)
	return handler.JSON(auth.LogoutResult{Success: true}, handler.WithMeta(meta))
}

func (m *Module) apiMe(ctx handler.Context, _ struct{}) handler.Response {
	session := m.sessionFor(ctx.ResponseWriter(), ctx.Request())
	if !session.IsAuthenticated(ctx) {
		return handler.Error(handler.ErrUnauthorized)
	}
	return handler.JSON(session.UserInfo(ctx))
}
