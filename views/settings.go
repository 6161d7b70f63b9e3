package views

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/soar/modules/settings"
)

var settingsTabs = []struct{ ID, Label string }{
	{settings.TabProfile, "Edit Profile"},
	{settings.TabPreferences, "Preferences"},
	{settings.TabSecurity, "Security"},
}

func SettingsPage(p settings.PageParams) templ.Component {
	return shell("Setting", "/settings", p.User, component(func(h *html) {
		h.raw(`<section class="settings"><nav class="tabs">`)
		for _, t := range settingsTabs {
			class := "tab"
			if t.ID == p.Tab {
				class += " active"
			}
			h.tagf(`<a class="%s" href="/settings?tab=%s">%s</a>`, class, t.ID, t.Label)
		}
		h.raw(`</nav>`)

		switch p.Tab {
		case settings.TabPreferences:
			h.render(preferencesForm(p))
		case settings.TabSecurity:
			h.render(securityForm(p))
		default:
			h.render(profileForm(p))
		}
		h.raw(`</section>`)
	}))
}

func profileForm(p settings.PageParams) templ.Component {
	s := p.Settings
	return component(func(h *html) {
		h.raw(`<div class="profile"><form class="avatar" method="post" action="/settings/avatar" enctype="multipart/form-data">`)
		h.tagf(`<img src="%s" alt="%s">`, s.ProfilePicture, s.Name)
		h.raw(`<input type="file" name="avatar" accept="image/*" aria-label="Edit profile picture">`)
		for _, name := range []string{"crop_x", "crop_y", "crop_width", "crop_height"} {
			h.tagf(`<input type="hidden" name="%s" value="">`, name)
		}
		h.render(fieldErrors(p.Errors["avatar"]))
		h.render(fieldErrors(p.Errors["crop"]))
		h.raw(`<button type="submit">Upload</button></form>`)

		h.raw(`<form id="profile-form" method="post" action="/settings/profile">`)
		fields := []struct {
			label, name, key, kind, value string
		}{
			{"Your Name", "name", "name", "text", s.Name},
			{"User Name", "user_name", "userName", "text", s.UserName},
			{"Email", "email", "email", "email", s.Email},
			{"Date of Birth", "date_of_birth", "dateOfBirth", "date", s.DateOfBirth},
			{"Present Address", "present_address", "presentAddress", "text", s.PresentAddress},
			{"Permanent Address", "permanent_address", "permanentAddress", "text", s.PermanentAddress},
			{"City", "city", "city", "text", s.City},
			{"Postal Code", "postal_code", "postalCode", "text", s.PostalCode},
			{"Country", "country", "country", "text", s.Country},
		}
		for _, f := range fields {
			h.tagf(`<label>%s<input type="%s" name="%s" value="%s"></label>`, f.label, f.kind, f.name, f.value)
			h.render(fieldErrors(p.Errors[f.key]))
		}
		h.raw(`<button type="submit">Save</button></form></div>`)
	})
}

func preferencesForm(p settings.PageParams) templ.Component {
	prefs := p.Settings.Preferences
	return component(func(h *html) {
		h.raw(`<form id="preferences-form" method="post" action="/settings/preferences">`)
		h.render(toggle("notifications", "Notifications", prefs.Notifications))
		h.render(toggle("dark_mode", "Dark mode", prefs.DarkMode))
		h.raw(`<label>Language<select name="language">`)
		for _, lang := range p.Languages {
			selected := ""
			if lang == prefs.Language {
				selected = " selected"
			}
			h.tagf(`<option value="%s"`, lang)
			h.raw(selected + `>`)
			h.text(lang)
			h.raw(`</option>`)
		}
		h.raw(`</select></label>`)
		h.render(fieldErrors(p.Errors["language"]))
		h.raw(`<button type="submit">Save</button></form>`)
	})
}

func securityForm(p settings.PageParams) templ.Component {
	sec := p.Settings.Security
	return component(func(h *html) {
		h.raw(`<form id="security-form" method="post" action="/settings/security">`)
		h.render(toggle("two_factor_enabled", "Two-factor authentication", sec.TwoFactorEnabled))
		h.tagf(`<p class="last-change">Last password change: <time datetime="%s">%s</time></p>`,
			sec.LastPasswordChange.Format("2006-01-02T15:04:05Z07:00"), sec.LastPasswordChange.Format("Jan 2, 2006"))
		h.raw(`<button type="submit">Save</button></form>`)
	})
}

// toggle posts "off" when unchecked; the checkbox value wins when checked.
func toggle(name, label string, on bool) templ.Component {
	return component(func(h *html) {
		checked := ""
		if on {
			checked = " checked"
		}
		h.tagf(`<label class="switch"><input type="hidden" name="%s" value="off"><input type="checkbox" name="%s"`, name, name)
		h.raw(checked + `> `)
		h.text(label)
		h.raw(`</label>`)
	})
}

func fieldErrors(msgs []string) templ.Component {
	return component(func(h *html) {
		for i, m := range msgs {
			h.tagf(`<p class="field-error" data-index="%s">%s</p>`, strconv.Itoa(i), m)
		}
	})
}
