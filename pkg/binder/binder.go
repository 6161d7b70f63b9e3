package binder

import (
	"mime"
	"net/http"
	"strings"
)

// Func decodes a request into v. It returns ErrNotApplicable when the request
// is not in a format the binder understands, so several binders can be tried
// in turn.
type Func func(r *http.Request, v any) error

// DefaultMaxMemory is the multipart memory budget before spilling to disk.
const DefaultMaxMemory = 10 << 20

func mediaType(r *http.Request) string {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(strings.Split(ct, ";")[0]))
	}
	return mt
}
