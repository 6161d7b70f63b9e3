package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/soar/pkg/validator"
)

// Envelope is the body of every JSON response.
type Envelope struct {
	Data  any          `json:"data,omitempty"`
	Meta  any          `json:"meta,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details map[string][]string `json:"details,omitempty"`
}

type JSONOption func(*jsonResponse)

func WithStatus(status int) JSONOption {
	return func(r *jsonResponse) { r.status = status }
}

func WithMeta(meta any) JSONOption {
	return func(r *jsonResponse) { r.body.Meta = meta }
}

type jsonResponse struct {
	status int
	body   Envelope
}

func (j *jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSON wraps v as {"data": v}.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: Envelope{Data: v}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONError renders err as {"error": {...}} with a status derived from it.
// Validation errors carry per-field details, localized by translate when set.
func JSONError(err error, translate func(key string, args ...string) string, opts ...JSONOption) Response {
	info := Classify(err)
	detail := &ErrorDetail{Code: info.Key, Message: info.Message}
	if translate != nil {
		if t := translate(info.Key); t != info.Key {
			detail.Message = t
		}
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		detail.Details = ve.Fields(translate)
	}

	r := &jsonResponse{status: info.StatusCode, body: Envelope{Error: detail}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONFailure renders an error envelope for an expected failure that is not
// a Go error, such as rejected credentials.
func JSONFailure(status int, code, message string, opts ...JSONOption) Response {
	r := &jsonResponse{status: status, body: Envelope{Error: &ErrorDetail{Code: code, Message: message}}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
