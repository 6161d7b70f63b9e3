package auth

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Navigator moves the user to another route. Replace drops the current
// route from history.
type Navigator interface {
	Navigate(ctx context.Context, path string, replace bool)
}

type NavigatorFunc func(ctx context.Context, path string, replace bool)

func (f NavigatorFunc) Navigate(ctx context.Context, path string, replace bool) { f(ctx, path, replace) }

// RecordingNavigator remembers the last navigation so an HTTP handler can
// answer with a redirect.
type RecordingNavigator struct {
	mu      sync.Mutex
	path    string
	replace bool
	calls   int
}

func (n *RecordingNavigator) Navigate(_ context.Context, path string, replace bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.path, n.replace = path, replace
	n.calls++
}

// Target returns the last path, or false if nothing navigated.
func (n *RecordingNavigator) Target() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.path, n.calls > 0
}

func (n *RecordingNavigator) Replace() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.replace
}

func (n *RecordingNavigator) Calls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls
}

// Scheduler runs fn after d.
type Scheduler func(d time.Duration, fn func())

// ScheduleAsync runs fn on a timer goroutine.
func ScheduleAsync(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

// ScheduleInline waits d on the calling goroutine, then runs fn. Request
// handlers use it so the redirect is known before the response is written.
func ScheduleInline(d time.Duration, fn func()) {
	if d > 0 {
		time.Sleep(d)
	}
	fn()
}

// SafeReturnPath accepts local absolute paths only; anything else, including
// protocol-relative URLs and the login page itself, yields LandingPath.
func SafeReturnPath(p string) string {
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return LandingPath
	}
	u, err := url.Parse(p)
	if err != nil || u.IsAbs() || u.Host != "" || u.Path == LoginPath {
		return LandingPath
	}
	return p
}
