package binder

import "errors"

var (
	ErrNotApplicable = errors.New("binder.not_applicable")
	ErrInvalidJSON   = errors.New("binder.invalid_json")
	ErrInvalidForm   = errors.New("binder.invalid_form")
	ErrInvalidQuery  = errors.New("binder.invalid_query")
	ErrInvalidTarget = errors.New("binder.invalid_target")
)
