package handler

import (
	"errors"
	"net/http"
)

// HTTPError carries a status code and a translation key.
type HTTPError struct {
	Code int
	Key  string
}

func (e HTTPError) Error() string { return e.Key }

func NewHTTPError(code int, key string) HTTPError {
	return HTTPError{Code: code, Key: key}
}

var (
	ErrBadRequest          = HTTPError{Code: http.StatusBadRequest, Key: "errors.bad_request"}
	ErrUnauthorized        = HTTPError{Code: http.StatusUnauthorized, Key: "errors.unauthorized"}
	ErrNotFound            = HTTPError{Code: http.StatusNotFound, Key: "errors.not_found"}
	ErrMethodNotAllowed    = HTTPError{Code: http.StatusMethodNotAllowed, Key: "errors.method_not_allowed"}
	ErrConflict            = HTTPError{Code: http.StatusConflict, Key: "errors.conflict"}
	ErrRequestTooLarge     = HTTPError{Code: http.StatusRequestEntityTooLarge, Key: "errors.request_too_large"}
	ErrUnprocessable       = HTTPError{Code: http.StatusUnprocessableEntity, Key: "errors.validation"}
	ErrInternalServerError = HTTPError{Code: http.StatusInternalServerError, Key: "errors.internal"}
	ErrServiceUnavailable  = HTTPError{Code: http.StatusServiceUnavailable, Key: "errors.unavailable"}
)

var ErrNilResponse = errors.New("handler.nil_response")
