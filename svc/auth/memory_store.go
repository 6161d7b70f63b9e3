package auth

import (
	"context"
	"sync"
	"time"
)

// MemoryEntry is a stored value with the options it was written with.
type MemoryEntry struct {
	Value   string
	Options EntryOptions
	Expires time.Time
}

// MemoryStore is an in-process CredentialStore. Entries disappear once the
// clock passes their expiry.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]MemoryEntry
	now     func() time.Time
}

type MemoryStoreOption func(*MemoryStore)

// WithClock replaces time.Now, mainly to test expiry.
func WithClock(now func() time.Time) MemoryStoreOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]MemoryEntry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool) {
	e, ok := s.Lookup(key)
	if !ok {
		return "", false
	}
	return e.Value, true
}

func (s *MemoryStore) Set(_ context.Context, key, value string, opts EntryOptions) error {
	opts.Path = normalizePath(opts.Path)

	e := MemoryEntry{Value: value, Options: opts}
	if opts.ExpiresInDays > 0 {
		e.Expires = s.now().AddDate(0, 0, opts.ExpiresInDays)
	}

	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, key, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok && e.Options.Path == normalizePath(path) {
		delete(s.entries, key)
	}
	return nil
}

// Lookup returns the live entry for key, including its options.
func (s *MemoryStore) Lookup(key string) (MemoryEntry, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || (!e.Expires.IsZero() && !s.now().Before(e.Expires)) {
		return MemoryEntry{}, false
	}
	return e, true
}

// Len counts live entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	s.mu.RUnlock()

	n := 0
	for _, k := range keys {
		if _, ok := s.Lookup(k); ok {
			n++
		}
	}
	return n
}
