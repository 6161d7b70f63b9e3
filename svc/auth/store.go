package auth

import (
	"context"
	"net/http"
)

// EntryOptions mirror the cookie attributes a browser store would apply.
type EntryOptions struct {
	ExpiresInDays int
	Path          string
	SameSite      http.SameSite
	Secure        bool
}

// CredentialStore is a key-value store with native expiry.
// Remove is idempotent; path must match the path the entry was written with.
type CredentialStore interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, opts EntryOptions) error
	Remove(ctx context.Context, key, path string) error
}

func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
