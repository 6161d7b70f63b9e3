package auth

import (
	"context"
	"net/url"
	"time"

	"github.com/dmitrymomot/soar/pkg/cookie"
)

// CookieStore keeps entries in browser cookies through a request-scoped jar.
// Values are URL-encoded so JSON survives cookie value rules.
type CookieStore struct {
	jar *cookie.Jar
	now func() time.Time
}

func NewCookieStore(jar *cookie.Jar) *CookieStore {
	return &CookieStore{jar: jar, now: time.Now}
}

func (s *CookieStore) Get(_ context.Context, key string) (string, bool) {
	raw, err := s.jar.Get(key)
	if err != nil || raw == "" {
		return "", false
	}
	v, err := url.QueryUnescape(raw)
	if err != nil {
		return raw, true
	}
	return v, true
}

func (s *CookieStore) Set(_ context.Context, key, value string, opts EntryOptions) error {
	cookieOpts := []cookie.Option{
		cookie.WithPath(normalizePath(opts.Path)),
		cookie.WithSecure(opts.Secure),
	}
	if opts.SameSite != 0 {
		cookieOpts = append(cookieOpts, cookie.WithSameSite(opts.SameSite))
	}
	if opts.ExpiresInDays > 0 {
		cookieOpts = append(cookieOpts, cookie.WithExpires(s.now().AddDate(0, 0, opts.ExpiresInDays)))
	}
	return s.jar.Set(key, url.QueryEscape(value), cookieOpts...)
}

func (s *CookieStore) Remove(_ context.Context, key, path string) error {
	s.jar.Delete(key, cookie.WithPath(normalizePath(path)))
	return nil
}
