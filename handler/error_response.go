package handler

import "net/http"

// Error returns a response whose Render fails with err, so Wrap hands it to
// the configured error handler.
func Error(err error) Response {
	return ResponseFunc(func(http.ResponseWriter, *http.Request) error { return err })
}
