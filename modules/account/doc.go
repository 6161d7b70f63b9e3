// Package account serves sign-in and sign-out.
//
// RegisterPages adds the login page and its form posts to a router. API
// offers the same flow as JSON under /api/auth. Both drive an
// auth.Controller built per request on top of the request's cookie jar, so
// the auth-token and user-info cookies are the only session state. Resolver
// plugs the same cookies into auth.RequireAuth.
package account
