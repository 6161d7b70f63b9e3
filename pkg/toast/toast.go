package toast

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeInfo    Type = "info"
	TypeWarning Type = "warning"
)

// Toast is a short, transient message shown to the user.
type Toast struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// New stamps a toast with an id and creation time.
func New(typ Type, message string) Toast {
	return Toast{
		ID:        uuid.NewString(),
		Type:      typ,
		Message:   message,
		CreatedAt: time.Now(),
	}
}

// Notifier is what application code talks to.
type Notifier interface {
	Success(ctx context.Context, message string)
	Error(ctx context.Context, message string)
}

// Deliverer moves a toast to one destination (flash cookie, log, memory).
type Deliverer interface {
	Deliver(ctx context.Context, t Toast) error
}

// DelivererFunc adapts a function to Deliverer.
type DelivererFunc func(ctx context.Context, t Toast) error

func (f DelivererFunc) Deliver(ctx context.Context, t Toast) error { return f(ctx, t) }
