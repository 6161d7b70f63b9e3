package statemachine

// Option configures a Machine during construction.
type Option[S, E ~string] func(*Machine[S, E]) error

// TransitionOption attaches guards and actions to one transition.
type TransitionOption[S, E ~string] func(*transitionConfig[S, E])

type transitionConfig[S, E ~string] struct {
	guards  []Guard[S, E]
	actions []Action[S, E]
}

// WithTransition registers from --event--> to.
func WithTransition[S, E ~string](from, to S, event E, opts ...TransitionOption[S, E]) Option[S, E] {
	return func(m *Machine[S, E]) error {
		cfg := &transitionConfig[S, E]{}
		for _, opt := range opts {
			opt(cfg)
		}
		return m.add(from, to, event, cfg.guards, cfg.actions)
	}
}

// WithTransitionFrom registers the same event and target for several sources.
func WithTransitionFrom[S, E ~string](from []S, to S, event E, opts ...TransitionOption[S, E]) Option[S, E] {
	return func(m *Machine[S, E]) error {
		for _, f := range from {
			if err := WithTransition(f, to, event, opts...)(m); err != nil {
				return err
			}
		}
		return nil
	}
}

func WithGuard[S, E ~string](guard Guard[S, E]) TransitionOption[S, E] {
	return func(cfg *transitionConfig[S, E]) {
		if guard != nil {
			cfg.guards = append(cfg.guards, guard)
		}
	}
}

func WithAction[S, E ~string](action Action[S, E]) TransitionOption[S, E] {
	return func(cfg *transitionConfig[S, E]) {
		if action != nil {
			cfg.actions = append(cfg.actions, action)
		}
	}
}
