package statemachine

import "errors"

var (
	ErrInvalidTransition = errors.New("statemachine.invalid_transition")
	ErrNoTransition      = errors.New("statemachine.no_transition")
	ErrRejected          = errors.New("statemachine.rejected_by_guard")
	ErrActionFailed      = errors.New("statemachine.action_failed")
)
