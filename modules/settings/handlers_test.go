package settings_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/soar/handler"
	"github.com/dmitrymomot/soar/modules/settings"
	"github.com/dmitrymomot/soar/pkg/toast"
	"github.com/dmitrymomot/soar/svc/auth"
)

type testEnv struct {
	svc    *settings.Service
	toasts *toast.Recorder
	router chi.Router
}

func newEnv(t *testing.T, opts ...settings.Option) *testEnv {
	t.Helper()

	svc, _ := newService(t, opts...)
	rec := &toast.Recorder{}
	views := settings.Views{Page: func(p settings.PageParams) templ.Component {
		return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
			_, err := fmt.Fprintf(w, "tab=%s name=%s errors=%v", p.Tab, p.Settings.Name, p.Errors)
			return err
		})
	}}
	m := settings.NewModule(svc, views, handler.NewErrorHandler(nil, handler.ErrorHandlerConfig{}),
		settings.WithNotifier(func(http.ResponseWriter, *http.Request) toast.Notifier { return rec }),
	)

	r := chi.NewRouter()
	r.Mount("/api/settings", m.API())
	r.Mount("/settings", m.Pages())
	return &testEnv{svc: svc, toasts: rec, router: r}
}

func signedIn(r *http.Request) *http.Request {
	return r.WithContext(auth.WithUserInfo(r.Context(), &auth.UserInfo{
		Name: auth.MockUserName, Email: userKey, Role: auth.MockUserRole,
	}))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) handler.Envelope {
	t.Helper()
	var env handler.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func TestAPI_GetRequiresUser(t *testing.T) {
	t.Parallel()
	env := newEnv(t)

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/settings/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPI_UpdateProfile(t *testing.T) {
	t.Parallel()
	env := newEnv(t)

	req := httptest.NewRequest(http.MethodPatch, "/api/settings/profile", strings.NewReader(`{"name":"Jane Doe"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, signedIn(req))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	data := body.Data.(map[string]any)
	assert.Equal(t, "Jane Doe", data["name"])
	assert.Equal(t, "Charlene Reed", data["userName"])
	assert.Equal(t, "Profile updated successfully!", body.Meta.(map[string]any)["message"])

	got, err := env.svc.Get(context.Background(), userKey)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got.Name)
}

func TestAPI_UpdateProfileInvalid(t *testing.T) {
	t.Parallel()
	env := newEnv(t)

	req := httptest.NewRequest(http.MethodPatch, "/api/settings/profile", strings.NewReader(`{"email":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, signedIn(req))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode(t, rec)
	require.NotNil(t, body.Error)
	assert.Equal(t, "errors.validation", body.Error.Code)
	assert.Contains(t, body.Error.Details, "email")
}

func TestAPI_UpdatePreferences(t *testing.T) {
	t.Parallel()
	env := newEnv(t)

	req := httptest.NewRequest(http.MethodPatch, "/api/settings/preferences", strings.NewReader(`{"darkMode":true}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, signedIn(req))

	require.Equal(t, http.StatusOK, rec.Code)
	prefs := decode(t, rec).Data.(map[string]any)["preferences"].(map[string]any)
	assert.Equal(t, true, prefs["darkMode"])
	assert.Equal(t, true, prefs["notifications"])
}

func TestPages_SubmitProfile(t *testing.T) {
	t.Parallel()
	env := newEnv(t)

	form := url.Values{"name": {"Jane Doe"}, "city": {"Lisbon"}}
	req := httptest.NewRequest(http.MethodPost, "/settings/profile", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, signedIn(req))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/settings?tab=profile", rec.Header().Get("Location"))
	assert.Equal(t, []string{"success: Profile updated successfully!"}, env.toasts.Messages())

	got, err := env.svc.Get(context.Background(), userKey)
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", got.City)
}

func TestPages_SubmitProfileInvalid(t *testing.T) {
	t.Parallel()
	env := newEnv(t)

	form := url.Values{"date_of_birth": {"yesterday"}}
	req := httptest.NewRequest(http.MethodPost, "/settings/profile", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, signedIn(req))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "tab=profile")
	assert.Contains(t, rec.Body.String(), "dateOfBirth")
	assert.Empty(t, env.toasts.Messages())
}

func TestPages_SubmitPreferencesCheckbox(t *testing.T) {
	t.Parallel()
	env := newEnv(t)

	// hidden "off" input followed by the checked box
	form := url.Values{"notifications": {"off"}, "dark_mode": {"off", "on"}}
	req := httptest.NewRequest(http.MethodPost, "/settings/preferences", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, signedIn(req))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/settings?tab=preferences", rec.Header().Get("Location"))

	got, err := env.svc.Get(context.Background(), userKey)
	require.NoError(t, err)
	assert.False(t, got.Preferences.Notifications)
	assert.True(t, got.Preferences.DarkMode)
}

func TestPages_Page(t *testing.T) {
	t.Parallel()
	env := newEnv(t)

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, signedIn(httptest.NewRequest(http.MethodGet, "/settings/?tab=bogus", nil)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tab=profile name=Charlene Reed")
}
