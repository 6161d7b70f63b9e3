package auth

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/soar/handler"
	"github.com/dmitrymomot/soar/pkg/logger"
)

// Decision is the outcome of a route guard check.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// Decide lets authenticated users through and sends everyone else to the
// login page, remembering location so login can return there.
func Decide(authenticated bool, location string) Decision {
	if authenticated {
		return Decision{Allow: true}
	}
	return Decision{RedirectTo: LoginURL(location)}
}

// LoginURL is the login page with from=location, or the bare login page
// when location is empty or the login page itself.
func LoginURL(location string) string {
	if location == "" || location == LoginPath {
		return LoginPath
	}
	return LoginPath + "?" + url.Values{FromParam: {location}}.Encode()
}

// Session is what the guard needs from a request-scoped Service.
type Session interface {
	IsAuthenticated(ctx context.Context) bool
	UserInfo(ctx context.Context) *UserInfo
}

// SessionResolver builds the Session for one request, typically
// service.WithStore(NewCookieStore(cookies.Jar(w, r))).
type SessionResolver func(w http.ResponseWriter, r *http.Request) Session

type GuardOption func(*guardConfig)

type guardConfig struct {
	log *slog.Logger
}

func WithGuardLogger(l *slog.Logger) GuardOption {
	return func(c *guardConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// RequireAuth checks the session on every request. Browsers get a 302 to
// the login page, API clients a 401 carrying the redirect in meta, and
// DataStar requests an SSE redirect. Allowed requests carry the UserInfo in
// their context.
func RequireAuth(resolve SessionResolver, opts ...GuardOption) func(http.Handler) http.Handler {
	cfg := &guardConfig{log: logger.Discard()}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			session := resolve(w, r)

			d := Decide(session.IsAuthenticated(ctx), r.URL.Path)
			if d.Allow {
				if info := session.UserInfo(ctx); info != nil {
					ctx = WithUserInfo(ctx, info)
				}
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			var resp handler.Response
			switch {
			case handler.IsDataStar(r):
				resp = handler.Redirect(d.RedirectTo)
			case handler.WantsJSON(r):
				resp = handler.JSONError(handler.ErrUnauthorized, nil,
					handler.WithMeta(map[string]string{"redirect": d.RedirectTo}))
			default:
				resp = handler.RedirectWithCode(d.RedirectTo, http.StatusFound)
			}

			if err := resp.Render(w, r); err != nil {
				cfg.log.ErrorContext(ctx, "failed to redirect anonymous request",
					logger.Component("auth_guard"),
					logger.Route(r.URL.Path),
					logger.Error(err),
				)
			}
		})
	}
}
