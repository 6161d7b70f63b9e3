package clientip

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

type contextKey struct{}

func WithContext(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, contextKey{}, ip)
}

func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	ip, _ := ctx.Value(contextKey{}).(string)
	return ip
}

type config struct {
	headers []string
}

type Option func(*config)

// WithProxyHeaders trusts headers in the given order. Comma separated values
// (X-Forwarded-For) yield their first valid address.
func WithProxyHeaders(headers ...string) Option {
	return func(c *config) { c.headers = append(c.headers, headers...) }
}

// Resolve returns the client address, or "" when nothing parses.
func Resolve(r *http.Request, opts ...Option) string {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return resolve(r, cfg.headers)
}

func resolve(r *http.Request, headers []string) string {
	for _, h := range headers {
		for v := range strings.SplitSeq(r.Header.Get(h), ",") {
			if ip := normalize(v); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return normalize(r.RemoteAddr)
	}
	return normalize(host)
}

func normalize(s string) string {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return ""
	}
	return addr.Unmap().WithZone("").String()
}

// Middleware stores the resolved address in the request context.
func Middleware(opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ip := resolve(r, cfg.headers); ip != "" {
				r = r.WithContext(WithContext(r.Context(), ip))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LoggerExtractor adds "client_ip" to log records.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if ip := FromContext(ctx); ip != "" {
			return slog.String("client_ip", ip), true
		}
		return slog.Attr{}, false
	}
}
