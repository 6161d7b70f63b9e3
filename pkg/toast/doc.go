// Package toast delivers short user-facing notifications.
//
// Application code depends on Notifier. A Multi fans toasts out to
// Deliverers: Flash persists them in a one-time cookie for the next page,
// Logger writes them to slog and Recorder keeps them in memory for tests and
// JSON responses.
package toast
