package main

import (
	"context"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/soar/handler"
	"github.com/dmitrymomot/soar/pkg/clientip"
	"github.com/dmitrymomot/soar/pkg/environment"
	"github.com/dmitrymomot/soar/pkg/file"
	"github.com/dmitrymomot/soar/pkg/httpserver"
	"github.com/dmitrymomot/soar/pkg/i18n"
	"github.com/dmitrymomot/soar/pkg/logger"
	"github.com/dmitrymomot/soar/pkg/requestid"
	"github.com/dmitrymomot/soar/pkg/toast"
	"github.com/dmitrymomot/soar/svc/auth"
	"github.com/dmitrymomot/soar/views"
)

// sections are protected pages that only render a placeholder for now.
var sections = []struct{ path, title string }{
	{"/accounts", "Accounts"},
	{"/transactions", "Transactions"},
	{"/investments", "Investments"},
	{"/credit-cards", "Credit Cards"},
	{"/loans", "Loans"},
	{"/services", "Services"},
	{"/my-privileges", "My Privileges"},
}

func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.Middleware(clientip.WithProxyHeaders(a.cfg.App.ProxyHeaders...)),
		environment.Middleware(a.env),
		i18n.Middleware(a.translator),
	)

	r.Get("/health/live", httpserver.Liveness())
	r.Get("/health/ready", httpserver.Readiness(a.log, a.cfg.App.ReadinessTimeout, a.checks...))

	if local, ok := a.files.(*file.LocalStorage); ok {
		prefix := strings.TrimSuffix(a.cfg.File.LocalURL, "/")
		r.Handle(prefix+"/*", http.StripPrefix(prefix, http.FileServer(http.Dir(local.Dir()))))
	}

	guard := auth.RequireAuth(a.account.Resolver(), auth.WithGuardLogger(a.log))

	r.Mount("/api/auth", a.account.API())
	r.Group(func(r chi.Router) {
		r.Use(guard)
		r.Mount("/api/dashboard", a.dashboard.API())
		r.Mount("/api/settings", a.settings.API())
	})

	r.Group(func(r chi.Router) {
		r.Use(toast.Middleware(func(w http.ResponseWriter, r *http.Request) toast.FlashStore {
			return a.cookies.Jar(w, r)
		}))

		a.account.RegisterPages(r)

		r.Group(func(r chi.Router) {
			r.Use(guard)
			r.Get("/dashboard", a.dashboard.Page())
			r.Mount("/settings", a.settings.Pages())
			for _, s := range sections {
				r.Get(s.path, a.page(views.Placeholder(s.title, s.path)))
			}
		})
	})

	r.NotFound(a.notFound)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		a.errorHandler(handler.NewContext(w, r), handler.ErrMethodNotAllowed)
	})

	return r
}

func (a *app) page(build func(context.Context) templ.Component) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := handler.Templ(build(r.Context())).Render(w, r); err != nil {
			a.errorHandler(handler.NewContext(w, r), err)
		}
	}
}

// notFound answers API clients through the error handler and browsers with
// the 404 page.
func (a *app) notFound(w http.ResponseWriter, r *http.Request) {
	if handler.WantsJSON(r) || handler.IsDataStar(r) {
		a.errorHandler(handler.NewContext(w, r), handler.ErrNotFound)
		return
	}
	if err := handler.TemplWithStatus(http.StatusNotFound, views.NotFound()).Render(w, r); err != nil {
		a.log.ErrorContext(r.Context(), "failed to render not found page",
			logger.Route(r.URL.Path),
			logger.Error(err),
		)
	}
}
