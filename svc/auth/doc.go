// Package auth implements the mock session layer of the dashboard.
//
// The Service checks a fixed pair of credentials and records the session as
// two entries in a CredentialStore: the opaque token under "auth-token" and
// the JSON user record under "user-info". Presence of the token is the only
// authentication signal.
//
// The Controller drives login and logout as asynchronous operations, one in
// flight per kind, and reports the outcome through a toast.Notifier and a
// Navigator. RequireAuth guards protected routes and redirects anonymous
// visitors to the login page with the requested path in "from".
//
// In HTTP handlers the store is a CookieStore over a request-scoped
// cookie.Jar:
//
//	svc := service.WithStore(auth.NewCookieStore(cookies.Jar(w, r)))
//	if svc.IsAuthenticated(r.Context()) { ... }
package auth
