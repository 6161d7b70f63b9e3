package binder

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
)

// MaxJSONBody caps JSON request bodies.
const MaxJSONBody = 1 << 20

// JSON decodes application/json (and +json) bodies. Unknown fields are rejected.
func JSON() Func {
	return func(r *http.Request, v any) error {
		mt := mediaType(r)
		if mt != "application/json" && !strings.HasSuffix(mt, "+json") {
			return ErrNotApplicable
		}

		dec := json.NewDecoder(io.LimitReader(r.Body, MaxJSONBody))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				return errors.Join(ErrInvalidJSON, errors.New("empty body"))
			}
			return errors.Join(ErrInvalidJSON, err)
		}
		return nil
	}
}
