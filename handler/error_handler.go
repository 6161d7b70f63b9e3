package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/soar/pkg/logger"
	"github.com/dmitrymomot/soar/pkg/requestid"
	"github.com/dmitrymomot/soar/pkg/validator"
)

// ErrorInfo is the client-facing view of an error.
type ErrorInfo struct {
	StatusCode int
	Key        string
	Message    string
	LogLevel   slog.Level
}

// Classify maps an error to a status code and translation key. Unknown
// errors are internal; their text never reaches the client.
func Classify(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: ErrInternalServerError.Code,
		Key:        ErrInternalServerError.Key,
		Message:    "An error occurred processing your request",
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		info.StatusCode = httpErr.Code
		info.Key = httpErr.Key
		info.Message = http.StatusText(httpErr.Code)
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		info.StatusCode = ErrUnprocessable.Code
		info.Key = ErrUnprocessable.Key
		info.Message = ve.Error()
	}

	info.LogLevel = slog.LevelError
	if info.StatusCode < http.StatusInternalServerError {
		info.LogLevel = slog.LevelWarn
	}
	return info
}

// ErrorPageParams feeds the HTML error page.
type ErrorPageParams struct {
	StatusCode int
	Message    string
	RequestID  string
}

type ErrorHandlerConfig struct {
	// ErrorPage renders the full page for browser navigations.
	ErrorPage func(ErrorPageParams) templ.Component
	// ErrorToast is prepended to #toast-container for DataStar requests.
	ErrorToast func(ErrorPageParams) templ.Component
	// Translate localizes error keys; the request context picks the language.
	Translate func(r *http.Request, key string, args ...string) string
}

// NewErrorHandler logs every error once and answers in the caller's format:
// JSON for API clients, an SSE patch for DataStar, an HTML page otherwise.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler {
	if log == nil {
		log = logger.Discard()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		w := ctx.ResponseWriter()
		info := Classify(err)

		log.LogAttrs(r.Context(), info.LogLevel, "request failed",
			logger.Component("error_handler"),
			logger.RequestID(requestid.FromContext(r.Context())),
			logger.Route(r.URL.Path),
			slog.Int("status", info.StatusCode),
			logger.Error(err),
		)

		var translate func(key string, args ...string) string
		message := info.Message
		if cfg.Translate != nil {
			translate = func(key string, args ...string) string { return cfg.Translate(r, key, args...) }
			if t := translate(info.Key); t != info.Key {
				message = t
			}
		}

		var resp Response
		switch {
		case WantsJSON(r):
			resp = JSONError(err, translate)
		case cfg.ErrorToast != nil && IsDataStar(r):
			resp = Templ(cfg.ErrorToast(ErrorPageParams{
				StatusCode: info.StatusCode,
				Message:    message,
				RequestID:  requestid.FromContext(r.Context()),
			}), WithTarget("#toast-container"), WithPatchMode(PatchPrepend))
		case cfg.ErrorPage != nil:
			resp = TemplWithStatus(info.StatusCode, cfg.ErrorPage(ErrorPageParams{
				StatusCode: info.StatusCode,
				Message:    message,
				RequestID:  requestid.FromContext(r.Context()),
			}))
		default:
			http.Error(w, message, info.StatusCode)
			return
		}

		if renderErr := resp.Render(w, r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error response",
				logger.Component("error_handler"),
				logger.Error(renderErr),
			)
		}
	}
}
