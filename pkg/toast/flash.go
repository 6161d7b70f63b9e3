package toast

import (
	"context"
	"errors"
	"slices"
	"sync"
)

const flashKey = "toasts"

// FlashStore is satisfied by *cookie.Jar.
type FlashStore interface {
	SetFlash(key string, value any) error
	GetFlash(key string, dest any) error
}

// Flash queues toasts in a one-time cookie so the next rendered page can show
// them. It is request scoped: create one per request around the request's jar.
type Flash struct {
	store FlashStore

	mu     sync.Mutex
	queued []Toast
}

func NewFlash(store FlashStore) *Flash {
	return &Flash{store: store}
}

func (f *Flash) Deliver(_ context.Context, t Toast) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.queued = append(f.queued, t)
	if err := f.store.SetFlash(flashKey, f.queued); err != nil {
		f.queued = f.queued[:len(f.queued)-1]
		return errors.Join(ErrFlash, err)
	}
	return nil
}

// Queued returns toasts delivered through this Flash so far.
func (f *Flash) Queued() []Toast {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.queued)
}

// Pop reads and clears the toasts flashed by a previous request.
// A missing or unreadable flash yields no toasts.
func Pop(store FlashStore) []Toast {
	var toasts []Toast
	if err := store.GetFlash(flashKey, &toasts); err != nil {
		return nil
	}
	return toasts
}
