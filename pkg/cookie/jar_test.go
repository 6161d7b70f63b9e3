package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/soar/pkg/cookie"
)

func TestJar_ReadsRequestCookies(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "auth-token", Value: "abc"})

	jar := m.Jar(httptest.NewRecorder(), req)
	got, err := jar.Get("auth-token")
	require.NoError(t, err)
	assert.Equal(t, "abc", got)

	_, err = jar.Get("missing")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestJar_OverlaysPendingWrites(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "auth-token", Value: "old"})
	rec := httptest.NewRecorder()
	jar := m.Jar(rec, req)

	require.NoError(t, jar.Set("auth-token", "new"))
	got, err := jar.Get("auth-token")
	require.NoError(t, err)
	assert.Equal(t, "new", got)

	jar.Delete("auth-token")
	_, err = jar.Get("auth-token")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)
	assert.Equal(t, "new", cookies[0].Value)
	assert.Equal(t, -1, cookies[1].MaxAge)
}

func TestJar_Flash(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	rec := httptest.NewRecorder()
	jar := m.Jar(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NoError(t, jar.SetFlash("toasts", []string{"Login successful!"}))

	next := m.Jar(httptest.NewRecorder(), replay(rec))
	var got []string
	require.NoError(t, next.GetFlash("toasts", &got))
	assert.Equal(t, []string{"Login successful!"}, got)

	err := next.GetFlash("toasts", &got)
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestJar_Signed(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	rec := httptest.NewRecorder()
	jar := m.Jar(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, jar.SetSigned("signed", "user-123"))

	got, err := jar.GetSigned("signed")
	require.NoError(t, err)
	assert.Equal(t, "user-123", got, "pending write is visible")

	got, err = m.Jar(httptest.NewRecorder(), replay(rec)).GetSigned("signed")
	require.NoError(t, err)
	assert.Equal(t, "user-123", got)

	t.Run("tampered", func(t *testing.T) {
		t.Parallel()
		value := rec.Result().Cookies()[0].Value
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "signed", Value: strings.Replace(value, value[:4], "AAAA", 1)})

		_, err := m.Jar(httptest.NewRecorder(), req).GetSigned("signed")
		assert.Error(t, err)
	})

	t.Run("unsigned", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "signed", Value: "garbage"})

		_, err := m.Jar(httptest.NewRecorder(), req).GetSigned("signed")
		assert.ErrorIs(t, err, cookie.ErrInvalidFormat)
	})
}

func TestJar_Encrypted(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	rec := httptest.NewRecorder()
	require.NoError(t, m.Jar(rec, httptest.NewRequest(http.MethodGet, "/", nil)).SetEncrypted("secret", "top secret"))

	value := rec.Result().Cookies()[0].Value
	assert.NotContains(t, value, "top secret")

	got, err := m.Jar(httptest.NewRecorder(), replay(rec)).GetEncrypted("secret")
	require.NoError(t, err)
	assert.Equal(t, "top secret", got)
}

func TestJar_SecretRotation(t *testing.T) {
	t.Parallel()

	old, err := cookie.New([]string{oldSecret})
	require.NoError(t, err)
	rotated, err := cookie.New([]string{secret, oldSecret})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	oldJar := old.Jar(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, oldJar.SetSigned("s", "signed-by-old"))
	require.NoError(t, oldJar.SetEncrypted("e", "encrypted-by-old"))

	jar := rotated.Jar(httptest.NewRecorder(), replay(rec))
	s, err := jar.GetSigned("s")
	require.NoError(t, err)
	assert.Equal(t, "signed-by-old", s)

	e, err := jar.GetEncrypted("e")
	require.NoError(t, err)
	assert.Equal(t, "encrypted-by-old", e)

	_, err = newManager(t).Jar(httptest.NewRecorder(), replay(rec)).GetEncrypted("e")
	assert.ErrorIs(t, err, cookie.ErrDecryptionFailed)
}

func TestJar_FlashIsEncryptedAndCleared(t *testing.T) {
	t.Parallel()

	type msg struct {
		Text string `json:"text"`
	}

	m := newManager(t)
	rec := httptest.NewRecorder()
	require.NoError(t, m.Jar(rec, httptest.NewRequest(http.MethodGet, "/", nil)).SetFlash("notice", msg{Text: "hello"}))
	assert.NotContains(t, rec.Result().Cookies()[0].Value, "hello")

	readRec := httptest.NewRecorder()
	var got msg
	require.NoError(t, m.Jar(readRec, replay(rec)).GetFlash("notice", &got))
	assert.Equal(t, "hello", got.Text)

	cleared := readRec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
}
