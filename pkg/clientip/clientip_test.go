package clientip_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/soar/pkg/clientip"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		remote  string
		headers map[string]string
		opts    []clientip.Option
		want    string
	}{
		{name: "remote addr", remote: "203.0.113.7:5100", want: "203.0.113.7"},
		{name: "remote without port", remote: "203.0.113.7", want: "203.0.113.7"},
		{name: "ipv6 remote", remote: "[2001:db8::1]:443", want: "2001:db8::1"},
		{name: "mapped ipv4", remote: "[::ffff:10.0.0.1]:80", want: "10.0.0.1"},
		{name: "garbage remote", remote: "not-an-ip", want: ""},
		{
			name:    "headers ignored by default",
			remote:  "10.0.0.2:80",
			headers: map[string]string{"X-Forwarded-For": "198.51.100.1"},
			want:    "10.0.0.2",
		},
		{
			name:    "first valid forwarded address",
			remote:  "10.0.0.2:80",
			headers: map[string]string{"X-Forwarded-For": "bogus, 198.51.100.1, 10.0.0.1"},
			opts:    []clientip.Option{clientip.WithProxyHeaders("X-Forwarded-For")},
			want:    "198.51.100.1",
		},
		{
			name:    "header order wins",
			remote:  "10.0.0.2:80",
			headers: map[string]string{"X-Forwarded-For": "198.51.100.1", "X-Real-IP": "198.51.100.9"},
			opts:    []clientip.Option{clientip.WithProxyHeaders("X-Real-IP", "X-Forwarded-For")},
			want:    "198.51.100.9",
		},
		{
			name:    "invalid header falls back to remote",
			remote:  "10.0.0.2:80",
			headers: map[string]string{"X-Real-IP": "<script>"},
			opts:    []clientip.Option{clientip.WithProxyHeaders("X-Real-IP")},
			want:    "10.0.0.2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientip.Resolve(r, tt.opts...))
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got string
	h := clientip.Middleware()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = clientip.FromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.10:1234"
	h.ServeHTTP(httptest.NewRecorder(), r)
	assert.Equal(t, "192.0.2.10", got)

	attr, ok := clientip.LoggerExtractor()(clientip.WithContext(context.Background(), got))
	assert.True(t, ok)
	assert.Equal(t, "client_ip", attr.Key)

	_, ok = clientip.LoggerExtractor()(context.Background())
	assert.False(t, ok)
}
