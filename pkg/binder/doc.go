// Package binder decodes HTTP requests into structs.
//
// JSON, Form and Query each return a Func. JSON and Form report
// ErrNotApplicable for other content types so handlers can accept both an
// HTML form post and a JSON API call with the same request struct.
package binder
