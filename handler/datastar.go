package handler

import (
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

// dataStarQueryParam carries signals on DataStar GET requests.
const dataStarQueryParam = "datastar"

const (
	PatchOuter   = datastar.ElementPatchModeOuter
	PatchInner   = datastar.ElementPatchModeInner
	PatchPrepend = datastar.ElementPatchModePrepend
	PatchAppend  = datastar.ElementPatchModeAppend
)

// IsDataStar reports whether the request came from a DataStar action, which
// expects server-sent events instead of a full page.
func IsDataStar(r *http.Request) bool {
	if r.Header.Get("Datastar-Request") == "true" {
		return true
	}
	if strings.Contains(r.Header.Get("Accept"), "text/event-stream") {
		return true
	}
	return r.URL.Query().Has(dataStarQueryParam)
}

// WantsJSON reports whether the caller is an API client rather than a browser
// navigation.
func WantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}
