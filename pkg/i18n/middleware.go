package i18n

import (
	"net/http"
	"strings"
)

type middlewareConfig struct {
	queryParam string
	cookieName string
}

type MiddlewareOption func(*middlewareConfig)

// WithQueryParam changes the query parameter that forces a language ("lang").
func WithQueryParam(name string) MiddlewareOption {
	return func(c *middlewareConfig) { c.queryParam = name }
}

// WithCookieName changes the cookie that remembers a language ("lang").
func WithCookieName(name string) MiddlewareOption {
	return func(c *middlewareConfig) { c.cookieName = name }
}

// Middleware negotiates the request language and stores it with SetLocale.
// Priority: query parameter, cookie, Accept-Language. Unsupported values fall
// through to the next source.
func Middleware(t *Translator, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{queryParam: "lang", cookieName: "lang"}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := t.Match(
				explicit(t, r.URL.Query().Get(cfg.queryParam)),
				explicit(t, cookieValue(r, cfg.cookieName)),
				r.Header.Get("Accept-Language"),
			)
			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), lang)))
		})
	}
}

// explicit drops values that do not name a supported language exactly, so an
// unsupported ?lang= does not shadow Accept-Language.
func explicit(t *Translator, v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if _, ok := t.catalogs[v]; ok {
		return v
	}
	return ""
}

func cookieValue(r *http.Request, name string) string {
	if name == "" {
		return ""
	}
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
