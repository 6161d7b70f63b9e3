package requestid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/soar/pkg/requestid"
)

func serve(header string) (ctxID, respID string) {
	h := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = requestid.FromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(requestid.Header, header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return ctxID, rec.Header().Get(requestid.Header)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("generates id", func(t *testing.T) {
		t.Parallel()
		ctxID, respID := serve("")
		assert.NotEmpty(t, ctxID)
		assert.Equal(t, ctxID, respID)
	})

	t.Run("reuses valid id", func(t *testing.T) {
		t.Parallel()
		ctxID, respID := serve("abc-123_XYZ")
		assert.Equal(t, "abc-123_XYZ", ctxID)
		assert.Equal(t, "abc-123_XYZ", respID)
	})

	for _, bad := range []string{"a b", "<script>", "a/b", strings.Repeat("x", 129)} {
		t.Run("replaces "+bad[:min(len(bad), 10)], func(t *testing.T) {
			t.Parallel()
			ctxID, _ := serve(bad)
			assert.NotEqual(t, bad, ctxID)
			assert.NotEmpty(t, ctxID)
		})
	}
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	_, ok := requestid.LoggerExtractor()(context.Background())
	assert.False(t, ok)

	attr, ok := requestid.LoggerExtractor()(requestid.WithContext(context.Background(), "id-1"))
	assert.True(t, ok)
	assert.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "id-1", attr.Value.String())
}
