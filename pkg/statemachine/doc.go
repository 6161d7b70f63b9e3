// Package statemachine is a small generic finite state machine.
//
// States and events are any string-based types:
//
//	type opState string
//	type opEvent string
//
//	sm := statemachine.MustNew[opState, opEvent]("idle",
//		statemachine.WithTransition[opState, opEvent]("idle", "pending", "start"),
//		statemachine.WithTransition[opState, opEvent]("pending", "idle", "settle"),
//	)
//	err := sm.Fire(ctx, "start", nil)
//
// Fire fails with ErrNoTransition when the current state has no edge for the
// event and with ErrRejected when every candidate edge is blocked by a guard.
package statemachine
