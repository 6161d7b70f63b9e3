package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/soar/handler"
	"github.com/dmitrymomot/soar/pkg/binder"
	"github.com/dmitrymomot/soar/svc/auth"
)

type loginRequest struct {
	Email      string `form:"email" json:"email"`
	Password   string `form:"password" json:"password"`
	RememberMe bool   `form:"remember_me" json:"rememberMe"`
	From       string `form:"from" query:"from" json:"from"`
}

func (r loginRequest) credentials() auth.Credentials {
	return auth.Credentials{Email: r.Email, Password: r.Password, RememberMe: r.RememberMe}
}

// RegisterPages adds the login page (GET /), the login form post
// (POST /login) and logout (POST /logout) to r, outside the guard.
func (m *Module) RegisterPages(r chi.Router) {
	r.Get(auth.LoginPath, handler.Wrap(m.loginPage,
		handler.WithBinders[loginRequest](binder.Query()),
		handler.WithErrorHandler[loginRequest](m.errorHandler),
	))
	r.Post("/login", handler.Wrap(m.login,
		handler.WithBinders[loginRequest](binder.Query(), binder.Form()),
		handler.WithErrorHandler[loginRequest](m.errorHandler),
	))
	r.Post("/logout", handler.Wrap(m.logout, handler.WithErrorHandler[struct{}](m.errorHandler)))
}

func (m *Module) loginPage(_ handler.Context, req loginRequest) handler.Response {
	return handler.Templ(m.views.LoginPage(LoginPageParams{From: req.From}))
}

func (m *Module) login(ctx handler.Context, req loginRequest) handler.Response {
	f := m.browserFlow(ctx.ResponseWriter(), ctx.Request())
	defer f.release()

	outcome, err := f.ctrl.HandleLogin(ctx, req.credentials(), auth.WithReturnTo(req.From)).Await()
	if err != nil {
		return failure(err)
	}

	if outcome.Success {
		f.flash(ctx, m.log)
		return handler.Redirect(f.redirect(outcome.RedirectTo))
	}

	params := LoginPageParams{
		Email:      req.Email,
		RememberMe: req.RememberMe,
		From:       req.From,
		AuthError:  f.ctrl.AuthError(),
		Toasts:     f.toasts.Toasts(),
	}
	if handler.IsDataStar(ctx.Request()) && m.views.LoginForm != nil {
		return handler.Templ(m.views.LoginForm(params), handler.WithTarget("#login-form"))
	}
	return handler.TemplWithStatus(http.StatusUnauthorized, m.views.LoginPage(params))
}

func (m *Module) logout(ctx handler.Context, _ struct{}) handler.Response {
	f := m.browserFlow(ctx.ResponseWriter(), ctx.Request())
	defer f.release()

	outcome, err := f.ctrl.HandleLogout(ctx).Await()
	if err != nil {
		return failure(err)
	}

	f.flash(ctx, m.log)
	if !outcome.Success {
		return handler.Redirect(auth.LandingPath)
	}
	return handler.Redirect(f.redirect(outcome.RedirectTo))
}
