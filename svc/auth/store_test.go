package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/soar/pkg/cookie"
	"github.com/dmitrymomot/soar/svc/auth"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("expiry", func(t *testing.T) {
		t.Parallel()
		clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
		s := auth.NewMemoryStore(auth.WithClock(clock.Now))

		require.NoError(t, s.Set(ctx, "k", "v", auth.EntryOptions{ExpiresInDays: 1}))
		v, ok := s.Get(ctx, "k")
		assert.True(t, ok)
		assert.Equal(t, "v", v)

		clock.Advance(23 * time.Hour)
		_, ok = s.Get(ctx, "k")
		assert.True(t, ok)

		clock.Advance(time.Hour)
		_, ok = s.Get(ctx, "k")
		assert.False(t, ok)
		assert.Zero(t, s.Len())
	})

	t.Run("remove matches path", func(t *testing.T) {
		t.Parallel()
		s := auth.NewMemoryStore()
		require.NoError(t, s.Set(ctx, "k", "v", auth.EntryOptions{}))

		require.NoError(t, s.Remove(ctx, "k", "/other"))
		_, ok := s.Get(ctx, "k")
		assert.True(t, ok)

		require.NoError(t, s.Remove(ctx, "k", "/"))
		_, ok = s.Get(ctx, "k")
		assert.False(t, ok)

		assert.NoError(t, s.Remove(ctx, "k", "/"))
	})
}

func TestCookieStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	m, err := cookie.New([]string{"this-is-a-very-long-secret-key-32-chars-long"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	s := auth.NewCookieStore(m.Jar(rec, httptest.NewRequest(http.MethodPost, "/login", nil)))

	value := `{"name":"Usuário Soar","email":"soar@soar.com","role":"admin"}`
	require.NoError(t, s.Set(ctx, auth.UserInfoKey, value, auth.EntryOptions{
		ExpiresInDays: 30,
		Path:          "/",
		SameSite:      http.SameSiteLaxMode,
		Secure:        true,
	}))

	got, ok := s.Get(ctx, auth.UserInfoKey)
	require.True(t, ok)
	assert.Equal(t, value, got)

	c := rec.Result().Cookies()[0]
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 30), c.Expires, time.Minute)

	// next request sees the same value
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(c)
	next := auth.NewCookieStore(m.Jar(httptest.NewRecorder(), req))
	got, ok = next.Get(ctx, auth.UserInfoKey)
	require.True(t, ok)
	assert.Equal(t, value, got)

	require.NoError(t, next.Remove(ctx, auth.UserInfoKey, "/"))
	_, ok = next.Get(ctx, auth.UserInfoKey)
	assert.False(t, ok)
}
