package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/soar/modules/settings"
	"github.com/dmitrymomot/soar/pkg/cookie"
	"github.com/dmitrymomot/soar/pkg/file"
	"github.com/dmitrymomot/soar/pkg/logger"
	"github.com/dmitrymomot/soar/svc/auth"
)

func testApp(t *testing.T) http.Handler {
	t.Helper()

	authCfg := auth.DefaultConfig()
	authCfg.LoginLatency, authCfg.LogoutLatency, authCfg.NavigationDelay = 0, 0, 0

	cfg := configs{
		App:      appConfig{Env: "development", Name: "soar", DefaultLanguage: "en"},
		Cookie:   cookie.Config{Secrets: "this-is-a-very-long-secret-key-32-chars-long", Path: "/", HttpOnly: true},
		Auth:     authCfg,
		Settings: settings.DefaultConfig(),
		File:     file.Config{Driver: file.DriverLocal, LocalDir: t.TempDir(), LocalURL: "/uploads"},
	}

	a, err := newApp(context.Background(), cfg, logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { a.close(context.Background()) })
	return a.routes()
}

// session carries cookies between requests like a browser would.
type session struct {
	t       *testing.T
	h       http.Handler
	cookies map[string]*http.Cookie
}

func (s *session) do(req *http.Request) *httptest.ResponseRecorder {
	s.t.Helper()
	for _, c := range s.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.h.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(s.cookies, c.Name)
			continue
		}
		s.cookies[c.Name] = c
	}
	return rec
}

func (s *session) login() {
	form := url.Values{"email": {"soar@soar.com"}, "password": {"hire-me"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := s.do(req)
	require.Equal(s.t, http.StatusSeeOther, rec.Code)
	require.Equal(s.t, "/dashboard", rec.Header().Get("Location"))
}

func newSession(t *testing.T) *session {
	return &session{t: t, h: testApp(t), cookies: map[string]*http.Cookie{}}
}

func TestRoutes_Health(t *testing.T) {
	t.Parallel()
	h := testApp(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestRoutes_GuardRedirectsAnonymous(t *testing.T) {
	t.Parallel()
	h := testApp(t)

	for _, path := range []string{"/dashboard", "/settings", "/loans"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Equal(t, "/?from="+url.QueryEscape(path), rec.Header().Get("Location"))
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard/cards", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redirect":"/?from=%2Fapi%2Fdashboard%2Fcards"`)
}

func TestRoutes_LoginShowsDashboardWithToast(t *testing.T) {
	t.Parallel()
	s := newSession(t)
	s.login()

	rec := s.do(httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, "Overview", doc.Find("header h1").Text())
	assert.Equal(t, "Usuário Soar", doc.Find(".user-name").Text())
	assert.Equal(t, "Login successful!", doc.Find("#toast-container .toast-success").Text())

	// the flash is consumed by the first page
	rec = s.do(httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	doc, err = goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Zero(t, doc.Find("#toast-container .toast").Length())
}

func TestRoutes_PlaceholderSections(t *testing.T) {
	t.Parallel()
	s := newSession(t)
	s.login()

	rec := s.do(httptest.NewRequest(http.MethodGet, "/credit-cards", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, "Credit Cards Page", doc.Find(".placeholder").Text())
	assert.Equal(t, "/credit-cards", doc.Find(".nav-item.active").AttrOr("href", ""))
}

func TestRoutes_LogoutReturnsToLogin(t *testing.T) {
	t.Parallel()
	s := newSession(t)
	s.login()

	rec := s.do(httptest.NewRequest(http.MethodPost, "/logout", nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.NotContains(t, s.cookies, "auth-token")

	rec = s.do(httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Logout successful!")

	rec = s.do(httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestRoutes_SettingsAPI(t *testing.T) {
	t.Parallel()
	s := newSession(t)
	s.login()

	req := httptest.NewRequest(http.MethodPatch, "/api/settings/profile", strings.NewReader(`{"city":"Lisboa"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := s.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"city":"Lisboa"`)
	assert.Contains(t, rec.Body.String(), "Profile updated successfully!")
}

func TestRoutes_NotFound(t *testing.T) {
	t.Parallel()
	h := testApp(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}
