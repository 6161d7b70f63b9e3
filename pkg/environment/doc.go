// Package environment carries the deployment environment through request
// contexts. Parse normalises configuration values; Middleware stores the
// value on each request so handlers can call IsProduction without plumbing.
package environment
