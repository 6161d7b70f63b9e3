package toast

import (
	"context"
	"net/http"
)

type pendingContextKey struct{}

func WithPending(ctx context.Context, toasts []Toast) context.Context {
	return context.WithValue(ctx, pendingContextKey{}, toasts)
}

// Pending returns the toasts popped for the current page render.
func Pending(ctx context.Context) []Toast {
	toasts, _ := ctx.Value(pendingContextKey{}).([]Toast)
	return toasts
}

// Middleware pops flashed toasts into the request context so the layout can
// render them. Mount it on page routes only: every request it sees consumes
// the flash.
func Middleware(store func(w http.ResponseWriter, r *http.Request) FlashStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if toasts := Pop(store(w, r)); len(toasts) > 0 {
				r = r.WithContext(WithPending(r.Context(), toasts))
			}
			next.ServeHTTP(w, r)
		})
	}
}
