package auth

import "errors"

var (
	ErrSaveSession       = errors.New("could not save session")
	ErrClearSession      = errors.New("could not clear session")
	ErrOperationInFlight = errors.New("operation already in progress")
)
