package views

import (
	"context"
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/soar/handler"
	"github.com/dmitrymomot/soar/svc/auth"
)

// Placeholder is the page for sections that are not built yet.
func Placeholder(title, path string) func(context.Context) templ.Component {
	return func(ctx context.Context) templ.Component {
		return shell(title, path, auth.UserInfoFromContext(ctx), component(func(h *html) {
			h.tagf(`<div class="placeholder">%s Page</div>`, title)
		}))
	}
}

func NotFound() templ.Component {
	return document("Not found", nil, component(func(h *html) {
		h.raw(`<div class="not-found"><h1>404</h1><p>Page not found</p><a href="/dashboard">Back to dashboard</a></div>`)
	}))
}

func ErrorPage(p handler.ErrorPageParams) templ.Component {
	return document(http.StatusText(p.StatusCode), nil, errorBody(p))
}

// ErrorToast is the fragment DataStar requests receive instead of a page.
func ErrorToast(p handler.ErrorPageParams) templ.Component {
	return component(func(h *html) {
		h.tagf(`<div class="toast toast-error">%s</div>`, p.Message)
	})
}

func errorBody(p handler.ErrorPageParams) templ.Component {
	return component(func(h *html) {
		code := strconv.Itoa(p.StatusCode)
		h.tagf(`<div class="error-page" data-status="%s"><h1>%s</h1><p>%s</p>`, code, code, p.Message)
		if p.RequestID != "" {
			h.tagf(`<small>Request ID: %s</small>`, p.RequestID)
		}
		h.raw(`<a href="/dashboard">Back to dashboard</a></div>`)
	})
}
