package settings

import (
	"context"
	"mime/multipart"
	"net/http"
	"slices"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/soar/handler"
	"github.com/dmitrymomot/soar/pkg/binder"
	"github.com/dmitrymomot/soar/pkg/toast"
	"github.com/dmitrymomot/soar/pkg/validator"
	"github.com/dmitrymomot/soar/svc/auth"
)

const (
	TabProfile     = "profile"
	TabPreferences = "preferences"
	TabSecurity    = "security"

	pagePath = "/settings"
)

var tabs = []string{TabProfile, TabPreferences, TabSecurity}

type PageParams struct {
	User      *auth.UserInfo
	Settings  Settings
	Languages []string
	Tab       string
	Errors    map[string][]string
}

type Views struct {
	Page func(PageParams) templ.Component
}

// Translator localizes messages for the request language.
type Translator interface {
	Tc(ctx context.Context, key string, args ...string) string
}

// NotifierFunc builds the request-scoped notifier used after form posts.
type NotifierFunc func(w http.ResponseWriter, r *http.Request) toast.Notifier

type Module struct {
	svc          *Service
	views        Views
	errorHandler handler.ErrorHandler
	notifier     NotifierFunc
	translator   Translator
}

type ModuleOption func(*Module)

func WithNotifier(fn NotifierFunc) ModuleOption {
	return func(m *Module) { m.notifier = fn }
}

func WithTranslator(t Translator) ModuleOption {
	return func(m *Module) { m.translator = t }
}

func NewModule(svc *Service, views Views, errorHandler handler.ErrorHandler, opts ...ModuleOption) *Module {
	m := &Module{svc: svc, views: views, errorHandler: errorHandler}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type pageRequest struct {
	Tab string `query:"tab"`
}

type avatarRequest struct {
	Avatar     *multipart.FileHeader `file:"avatar"`
	CropX      int                   `form:"crop_x"`
	CropY      int                   `form:"crop_y"`
	CropWidth  int                   `form:"crop_width"`
	CropHeight int                   `form:"crop_height"`
}

// options crops only when the client sent a selection.
func (r avatarRequest) options() []AvatarOption {
	if r.CropWidth == 0 && r.CropHeight == 0 {
		return nil
	}
	return []AvatarOption{WithCrop(Crop{X: r.CropX, Y: r.CropY, Width: r.CropWidth, Height: r.CropHeight})}
}

// API serves settings as JSON; mount it under /api/settings.
func (m *Module) API() http.Handler {
	r := chi.NewRouter()

	r.Get("/", handler.Wrap(m.get, handler.WithErrorHandler[struct{}](m.errorHandler)))
	r.Patch("/profile", handler.Wrap(m.updateProfileJSON, bodyOptions[ProfileUpdate](m)...))
	r.Patch("/preferences", handler.Wrap(m.updatePreferencesJSON, bodyOptions[PreferencesUpdate](m)...))
	r.Patch("/security", handler.Wrap(m.updateSecurityJSON, bodyOptions[SecurityUpdate](m)...))
	r.Post("/avatar", handler.Wrap(m.uploadAvatarJSON,
		handler.WithBinders[avatarRequest](binder.Form()),
		handler.WithErrorHandler[avatarRequest](m.errorHandler),
	))

	return r
}

// Pages serves the settings page and its form posts; mount it at /settings.
func (m *Module) Pages() http.Handler {
	r := chi.NewRouter()

	r.Get("/", handler.Wrap(m.page,
		handler.WithBinders[pageRequest](binder.Query()),
		handler.WithErrorHandler[pageRequest](m.errorHandler),
	))
	r.Post("/profile", handler.Wrap(m.submitProfile, formOptions[ProfileUpdate](m)...))
	r.Post("/preferences", handler.Wrap(m.submitPreferences, formOptions[PreferencesUpdate](m)...))
	r.Post("/security", handler.Wrap(m.submitSecurity, formOptions[SecurityUpdate](m)...))
	r.Post("/avatar", handler.Wrap(m.submitAvatar, formOptions[avatarRequest](m)...))

	return r
}

func bodyOptions[R any](m *Module) []handler.WrapOption[R] {
	return []handler.WrapOption[R]{
		handler.WithBinders[R](binder.JSON(), binder.Form()),
		handler.WithErrorHandler[R](m.errorHandler),
	}
}

func formOptions[R any](m *Module) []handler.WrapOption[R] {
	return []handler.WrapOption[R]{
		handler.WithBinders[R](binder.Form()),
		handler.WithErrorHandler[R](m.errorHandler),
	}
}

func (m *Module) get(ctx handler.Context, _ struct{}) handler.Response {
	key, err := userKey(ctx)
	if err != nil {
		return handler.Error(err)
	}
	s, err := m.svc.Get(ctx, key)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(s)
}

func (m *Module) updateProfileJSON(ctx handler.Context, req ProfileUpdate) handler.Response {
	return m.respondJSON(ctx, "toast.profile_updated", func(key string) (Settings, error) {
		return m.svc.UpdateProfile(ctx, key, req)
	})
}

func (m *Module) updatePreferencesJSON(ctx handler.Context, req PreferencesUpdate) handler.Response {
	return m.respondJSON(ctx, "toast.settings_saved", func(key string) (Settings, error) {
		return m.svc.UpdatePreferences(ctx, key, req)
	})
}

func (m *Module) updateSecurityJSON(ctx handler.Context, req SecurityUpdate) handler.Response {
	return m.respondJSON(ctx, "toast.settings_saved", func(key string) (Settings, error) {
		return m.svc.UpdateSecurity(ctx, key, req)
	})
}

func (m *Module) uploadAvatarJSON(ctx handler.Context, req avatarRequest) handler.Response {
	return m.respondJSON(ctx, "toast.profile_updated", func(key string) (Settings, error) {
		return m.svc.UploadAvatar(ctx, key, req.Avatar, req.options()...)
	})
}

func (m *Module) respondJSON(ctx handler.Context, messageKey string, update func(key string) (Settings, error)) handler.Response {
	key, err := userKey(ctx)
	if err != nil {
		return handler.Error(err)
	}
	s, err := update(key)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(s, handler.WithMeta(map[string]string{"message": m.message(ctx, messageKey)}))
}

func (m *Module) page(ctx handler.Context, req pageRequest) handler.Response {
	key, err := userKey(ctx)
	if err != nil {
		return handler.Error(err)
	}
	s, err := m.svc.Get(ctx, key)
	if err != nil {
		return handler.Error(err)
	}
	return handler.Templ(m.views.Page(m.pageParams(ctx, s, req.Tab, nil)))
}

func (m *Module) submitProfile(ctx handler.Context, req ProfileUpdate) handler.Response {
	return m.submit(ctx, TabProfile, "toast.profile_updated", func(key string) (Settings, error) {
		return m.svc.UpdateProfile(ctx, key, req)
	})
}

func (m *Module) submitPreferences(ctx handler.Context, req PreferencesUpdate) handler.Response {
	return m.submit(ctx, TabPreferences, "toast.settings_saved", func(key string) (Settings, error) {
		return m.svc.UpdatePreferences(ctx, key, req)
	})
}

func (m *Module) submitSecurity(ctx handler.Context, req SecurityUpdate) handler.Response {
	return m.submit(ctx, TabSecurity, "toast.settings_saved", func(key string) (Settings, error) {
		return m.svc.UpdateSecurity(ctx, key, req)
	})
}

func (m *Module) submitAvatar(ctx handler.Context, req avatarRequest) handler.Response {
	return m.submit(ctx, TabProfile, "toast.profile_updated", func(key string) (Settings, error) {
		return m.svc.UploadAvatar(ctx, key, req.Avatar, req.options()...)
	})
}

// submit handles a form post: invalid input re-renders the page with field
// errors, success flashes a toast and redirects back to the tab.
func (m *Module) submit(ctx handler.Context, tab, messageKey string, update func(key string) (Settings, error)) handler.Response {
	key, err := userKey(ctx)
	if err != nil {
		return handler.Error(err)
	}

	if _, err := update(key); err != nil {
		ve, ok := validator.Extract(err)
		if !ok {
			return handler.Error(err)
		}
		current, getErr := m.svc.Get(ctx, key)
		if getErr != nil {
			return handler.Error(getErr)
		}
		fields := ve.Fields(func(k string, args ...string) string { return m.translate(ctx, k, args...) })
		return handler.TemplWithStatus(http.StatusUnprocessableEntity, m.views.Page(m.pageParams(ctx, current, tab, fields)))
	}

	if m.notifier != nil {
		m.notifier(ctx.ResponseWriter(), ctx.Request()).Success(ctx, m.message(ctx, messageKey))
	}
	return handler.Redirect(pagePath + "?tab=" + tab)
}

func (m *Module) pageParams(ctx context.Context, s Settings, tab string, errs map[string][]string) PageParams {
	if !slices.Contains(tabs, tab) {
		tab = TabProfile
	}
	return PageParams{
		User:      auth.UserInfoFromContext(ctx),
		Settings:  s,
		Languages: m.svc.Languages(),
		Tab:       tab,
		Errors:    errs,
	}
}

var fallbackMessages = map[string]string{
	"toast.profile_updated": "Profile updated successfully!",
	"toast.settings_saved":  "Settings saved",
}

func (m *Module) message(ctx context.Context, key string) string {
	if msg := m.translate(ctx, key); msg != key {
		return msg
	}
	return fallbackMessages[key]
}

func (m *Module) translate(ctx context.Context, key string, args ...string) string {
	if m.translator == nil {
		return key
	}
	return m.translator.Tc(ctx, key, args...)
}

func userKey(ctx context.Context) (string, error) {
	info := auth.UserInfoFromContext(ctx)
	if info == nil || info.Email == "" {
		return "", handler.ErrUnauthorized
	}
	return info.Email, nil
}
