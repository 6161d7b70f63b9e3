package views

import (
	"github.com/a-h/templ"

	"github.com/dmitrymomot/soar/pkg/toast"
	"github.com/dmitrymomot/soar/svc/auth"
)

type navItem struct {
	Path  string
	Label string
}

var navItems = []navItem{
	{"/dashboard", "Dashboard"},
	{"/transactions", "Transactions"},
	{"/accounts", "Accounts"},
	{"/investments", "Investments"},
	{"/credit-cards", "Credit Cards"},
	{"/loans", "Loans"},
	{"/services", "Services"},
	{"/my-privileges", "My Privileges"},
	{"/settings", "Setting"},
}

// document is the bare HTML page with the toast container.
func document(title string, extra []toast.Toast, body templ.Component) templ.Component {
	return component(func(h *html) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.tagf(`<title>%s · Soar</title>`, title)
		h.raw(`<link rel="stylesheet" href="/assets/app.css">`)
		h.raw(`<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0-RC.5/bundles/datastar.js"></script>`)
		h.raw(`</head><body>`)
		h.render(Toasts(append(toast.Pending(h.ctx), extra...)))
		h.render(body)
		h.raw(`</body></html>`)
	})
}

// Toasts renders the container the error handler prepends to.
func Toasts(toasts []toast.Toast) templ.Component {
	return component(func(h *html) {
		h.raw(`<div id="toast-container" class="toasts" role="status">`)
		for _, t := range toasts {
			h.tagf(`<div class="toast toast-%s" id="toast-%s">%s</div>`, t.Type, t.ID, t.Message)
		}
		h.raw(`</div>`)
	})
}

// shell is the signed-in layout: sidebar, header with the user, content.
func shell(title, active string, user *auth.UserInfo, body templ.Component) templ.Component {
	return document(title, nil, component(func(h *html) {
		h.raw(`<div class="shell"><aside class="sidebar"><a class="brand" href="/dashboard">Soar Task</a><nav>`)
		for _, item := range navItems {
			class := "nav-item"
			if item.Path == active {
				class += " active"
			}
			h.tagf(`<a class="%s" href="%s">%s</a>`, class, item.Path, item.Label)
		}
		h.raw(`</nav></aside><div class="main"><header class="header">`)
		h.tagf(`<h1>%s</h1>`, title)
		if user != nil {
			h.tagf(`<div class="user"><span class="user-name">%s</span><span class="user-role">%s</span>`, user.Name, user.Role)
			h.raw(`<form method="post" action="/logout"><button type="submit" class="logout">Logout</button></form></div>`)
		}
		h.raw(`</header><main class="content">`)
		h.render(body)
		h.raw(`</main></div></div>`)
	}))
}
