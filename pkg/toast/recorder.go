package toast

import (
	"context"
	"slices"
	"sync"
)

// Recorder keeps toasts in memory. It is both a Deliverer and a Notifier.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

func (r *Recorder) Deliver(_ context.Context, t Toast) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, t)
	return nil
}

func (r *Recorder) Success(ctx context.Context, message string) {
	_ = r.Deliver(ctx, New(TypeSuccess, message))
}

func (r *Recorder) Error(ctx context.Context, message string) {
	_ = r.Deliver(ctx, New(TypeError, message))
}

func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.toasts)
}

// Messages returns "type: message" for each toast, in delivery order.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.toasts))
	for _, t := range r.toasts {
		out = append(out, string(t.Type)+": "+t.Message)
	}
	return out
}
