package views

import (
	"github.com/a-h/templ"

	"github.com/dmitrymomot/soar/modules/account"
)

func LoginPage(p account.LoginPageParams) templ.Component {
	return document("Login", p.Toasts, component(func(h *html) {
		h.raw(`<div class="login"><section class="login-card"><h1>Soar</h1><p>Sign in to your dashboard</p>`)
		h.render(LoginForm(p))
		h.raw(`</section></div>`)
	}))
}

// LoginForm is the fragment DataStar patches after a failed submission.
func LoginForm(p account.LoginPageParams) templ.Component {
	return component(func(h *html) {
		h.raw(`<form id="login-form" method="post" action="/login">`)
		h.tagf(`<input type="hidden" name="from" value="%s">`, p.From)
		h.tagf(`<label>Email<input type="email" name="email" value="%s" placeholder="soar@soar.com" required></label>`, p.Email)
		h.raw(`<label>Password<input type="password" name="password" placeholder="hire-me" required></label>`)
		checked := ""
		if p.RememberMe {
			checked = " checked"
		}
		h.raw(`<label class="switch"><input type="checkbox" name="remember_me"` + checked + `> Remember me</label>`)
		if p.AuthError != nil {
			h.tagf(`<p class="auth-error" role="alert">%s</p>`, *p.AuthError)
		}
		h.raw(`<button type="submit">Sign in</button></form>`)
	})
}
