package toast

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/soar/pkg/logger"
)

// Multi fans each toast out to every deliverer. Delivery is best effort:
// a failing deliverer is logged and the others still run.
type Multi struct {
	deliverers []Deliverer
	log        *slog.Logger
}

type MultiOption func(*Multi)

func WithLogger(l *slog.Logger) MultiOption {
	return func(m *Multi) {
		if l != nil {
			m.log = l
		}
	}
}

func NewMulti(deliverers []Deliverer, opts ...MultiOption) *Multi {
	m := &Multi{deliverers: deliverers, log: logger.Discard()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Multi) Success(ctx context.Context, message string) {
	m.Notify(ctx, New(TypeSuccess, message))
}

func (m *Multi) Error(ctx context.Context, message string) {
	m.Notify(ctx, New(TypeError, message))
}

func (m *Multi) Info(ctx context.Context, message string) {
	m.Notify(ctx, New(TypeInfo, message))
}

func (m *Multi) Warning(ctx context.Context, message string) {
	m.Notify(ctx, New(TypeWarning, message))
}

func (m *Multi) Notify(ctx context.Context, t Toast) {
	for _, d := range m.deliverers {
		if err := d.Deliver(ctx, t); err != nil {
			m.log.WarnContext(ctx, "toast delivery failed",
				logger.Component("toast"),
				slog.String("toast_id", t.ID),
				logger.Error(err),
			)
		}
	}
}
