// Package settings stores the signed-in user's profile, preferences and
// security settings.
//
// Users that never saved get Defaults. Updates are partial: only non-nil
// fields of ProfileUpdate, PreferencesUpdate and SecurityUpdate change, and
// text is stripped of markup before it is stored. Persistence is pluggable
// through Store (memory, postgres, redis, mongo); avatars go through
// file.Storage.
//
// Module exposes the JSON API (mount under /api/settings) and the settings
// page with its form posts (mount at /settings). Both expect RequireAuth to
// have put the user into the request context.
package settings
