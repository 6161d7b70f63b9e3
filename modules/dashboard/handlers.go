package dashboard

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/soar/handler"
	"github.com/dmitrymomot/soar/svc/auth"
)

// PageParams feeds the dashboard page.
type PageParams struct {
	User     *auth.UserInfo
	Overview Overview
	Charts   Charts
}

type Views struct {
	Page func(PageParams) templ.Component
}

// Module exposes the dashboard page and its JSON API.
type Module struct {
	svc          *Service
	views        Views
	errorHandler handler.ErrorHandler
}

func NewModule(svc *Service, views Views, errorHandler handler.ErrorHandler) *Module {
	return &Module{svc: svc, views: views, errorHandler: errorHandler}
}

// API serves the widgets as JSON; mount it under /api/dashboard.
func (m *Module) API() http.Handler {
	r := chi.NewRouter()

	r.Get("/cards", wrap(m, m.svc.Cards))
	r.Get("/transactions", wrap(m, m.svc.Transactions))
	r.Get("/weekly-activity", wrap(m, m.svc.WeeklyActivity))
	r.Get("/expense-statistics", wrap(m, m.svc.ExpenseStatistics))
	r.Get("/quick-transfer", wrap(m, m.svc.QuickTransferContacts))
	r.Get("/balance-history", wrap(m, m.svc.BalanceHistory))
	r.Get("/overview", handler.Wrap(m.overview, handler.WithErrorHandler[struct{}](m.errorHandler)))

	return r
}

// Page renders the dashboard with every widget loaded.
func (m *Module) Page() http.HandlerFunc {
	return handler.Wrap(m.page, handler.WithErrorHandler[struct{}](m.errorHandler))
}

func (m *Module) overview(ctx handler.Context, _ struct{}) handler.Response {
	o, err := m.svc.Overview(ctx)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(o, handler.WithMeta(o.Charts()))
}

func (m *Module) page(ctx handler.Context, _ struct{}) handler.Response {
	o, err := m.svc.Overview(ctx)
	if err != nil {
		return handler.Error(err)
	}
	return handler.Templ(m.views.Page(PageParams{
		User:     auth.UserInfoFromContext(ctx),
		Overview: o,
		Charts:   o.Charts(),
	}))
}

func wrap[T any](m *Module, fetch func(context.Context) ([]T, error)) http.HandlerFunc {
	return handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
		items, err := fetch(ctx)
		if err != nil {
			return handler.Error(err)
		}
		return handler.JSON(items)
	}, handler.WithErrorHandler[struct{}](m.errorHandler))
}
