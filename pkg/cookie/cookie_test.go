package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/soar/pkg/cookie"
)

const (
	secret    = "this-is-a-very-long-secret-key-32-chars-long"
	oldSecret = "this-is-old-very-long-secret-key-32-chars-ok"
)

func newManager(t *testing.T, opts ...cookie.Option) *cookie.Manager {
	t.Helper()
	m, err := cookie.New([]string{secret}, opts...)
	require.NoError(t, err)
	return m
}

// replay copies Set-Cookie headers from a recorded response into a new request.
func replay(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		secrets []string
		wantErr error
	}{
		{name: "no secrets", secrets: nil, wantErr: cookie.ErrNoSecret},
		{name: "empty secrets", secrets: []string{"", ""}, wantErr: cookie.ErrNoSecret},
		{name: "secret too short", secrets: []string{"short"}, wantErr: cookie.ErrSecretTooShort},
		{name: "valid secret", secrets: []string{secret}},
		{name: "rotation", secrets: []string{secret, oldSecret}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := cookie.New(tt.secrets)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestManager_SetGet(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	rec := httptest.NewRecorder()
	require.NoError(t, m.Set(rec, "plain", "value"))

	got, err := m.Get(replay(rec), "plain")
	require.NoError(t, err)
	assert.Equal(t, "value", got)

	_, err = m.Get(httptest.NewRequest(http.MethodGet, "/", nil), "plain")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestManager_Defaults(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	rec := httptest.NewRecorder()
	require.NoError(t, m.Set(rec, "c", "v"))

	c := rec.Result().Cookies()[0]
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.HttpOnly)
	assert.False(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
}

func TestManager_Expires(t *testing.T) {
	t.Parallel()

	m := newManager(t, cookie.WithSecure(true))
	rec := httptest.NewRecorder()
	expires := time.Now().Add(24 * time.Hour)
	require.NoError(t, m.Set(rec, "c", "v", cookie.WithExpires(expires)))

	header := rec.Header().Get("Set-Cookie")
	assert.Contains(t, header, "Expires=")
	assert.Contains(t, header, "Secure")

	c := rec.Result().Cookies()[0]
	assert.WithinDuration(t, expires, c.Expires, time.Second)
	assert.InDelta(t, 24*60*60, c.MaxAge, 5)
}

func TestManager_Delete(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	rec := httptest.NewRecorder()
	m.Delete(rec, "gone", cookie.WithPath("/admin"))

	c := rec.Result().Cookies()[0]
	assert.Equal(t, "gone", c.Name)
	assert.Equal(t, "/admin", c.Path)
	assert.Equal(t, -1, c.MaxAge)
	assert.Empty(t, c.Value)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	m, err := cookie.NewFromConfig(cookie.Config{
		Secrets:  " " + secret + " , ," + oldSecret,
		Path:     "/app",
		Secure:   true,
		HttpOnly: false,
		SameSite: http.SameSiteStrictMode,
	})
	require.NoError(t, err)

	d := m.Defaults()
	assert.Equal(t, "/app", d.Path)
	assert.True(t, d.Secure)
	assert.False(t, d.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, d.SameSite)

	_, err = cookie.NewFromConfig(cookie.Config{})
	assert.ErrorIs(t, err, cookie.ErrNoSecret)
}
