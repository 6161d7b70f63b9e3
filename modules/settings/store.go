package settings

import (
	"context"
	"sync"
)

// Store persists Settings by user key (the signed-in email).
// Get returns ErrNotFound for users that never saved.
type Store interface {
	Get(ctx context.Context, key string) (Settings, error)
	Save(ctx context.Context, key string, s Settings) error
}

type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]Settings
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]Settings)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.data[key]
	if !ok {
		return Settings{}, ErrNotFound
	}
	return s, nil
}

func (m *MemoryStore) Save(_ context.Context, key string, s Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = s
	return nil
}
