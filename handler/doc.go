// Package handler turns typed functions into http.HandlerFuncs.
//
// A HandlerFunc receives a Context and a request struct filled by binders,
// and returns a Response: JSON, Templ, Redirect or Empty. Responses adapt to
// DataStar requests by answering with server-sent events. Errors from
// binding, handling or rendering go to an ErrorHandler; NewErrorHandler
// answers with JSON, an SSE patch or an HTML page depending on the caller.
package handler
