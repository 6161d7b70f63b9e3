package statemachine

import (
	"context"
	"fmt"
	"sync"
)

// Guard decides at fire time whether a transition may proceed.
type Guard[S, E ~string] func(ctx context.Context, from S, event E, data any) bool

// Action runs before the state changes. An error aborts the transition.
type Action[S, E ~string] func(ctx context.Context, from, to S, event E, data any) error

type transition[S, E ~string] struct {
	to      S
	guards  []Guard[S, E]
	actions []Action[S, E]
}

// Machine is a thread-safe finite state machine over string-like states and
// events. Several transitions may share a (from, event) pair; the first one
// whose guards all pass wins.
type Machine[S, E ~string] struct {
	mu          sync.RWMutex
	current     S
	transitions map[S]map[E][]transition[S, E]
}

// New builds a machine starting in initial.
func New[S, E ~string](initial S, opts ...Option[S, E]) (*Machine[S, E], error) {
	m := &Machine[S, E]{
		current:     initial,
		transitions: make(map[S]map[E][]transition[S, E]),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MustNew is New for statically defined machines.
func MustNew[S, E ~string](initial S, opts ...Option[S, E]) *Machine[S, E] {
	m, err := New(initial, opts...)
	if err != nil {
		panic(fmt.Sprintf("statemachine: %v", err))
	}
	return m
}

func (m *Machine[S, E]) Current() S {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Is reports whether the machine is currently in s.
func (m *Machine[S, E]) Is(s S) bool {
	return m.Current() == s
}

// Fire applies event. Actions run while the machine is locked, so they must
// not call back into the same machine.
func (m *Machine[S, E]) Fire(ctx context.Context, event E, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.match(ctx, event, data)
	if err != nil {
		return err
	}

	for _, action := range t.actions {
		if err := action(ctx, m.current, t.to, event, data); err != nil {
			return fmt.Errorf("%w: %s -> %s on %s: %w", ErrActionFailed, m.current, t.to, event, err)
		}
	}

	m.current = t.to
	return nil
}

func (m *Machine[S, E]) add(from, to S, event E, guards []Guard[S, E], actions []Action[S, E]) error {
	if from == "" || to == "" || event == "" {
		return ErrInvalidTransition
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.transitions[from]; !ok {
		m.transitions[from] = make(map[E][]transition[S, E])
	}
	m.transitions[from][event] = append(m.transitions[from][event], transition[S, E]{
		to:      to,
		guards:  guards,
		actions: actions,
	})
	return nil
}

// match must be called with m.mu held.
func (m *Machine[S, E]) match(ctx context.Context, event E, data any) (transition[S, E], error) {
	candidates := m.transitions[m.current][event]
	if len(candidates) == 0 {
		return transition[S, E]{}, fmt.Errorf("%w: %s on %s", ErrNoTransition, m.current, event)
	}

next:
	for _, t := range candidates {
		for _, guard := range t.guards {
			if !guard(ctx, m.current, event, data) {
				continue next
			}
		}
		return t, nil
	}
	return transition[S, E]{}, fmt.Errorf("%w: %s on %s", ErrRejected, m.current, event)
}
