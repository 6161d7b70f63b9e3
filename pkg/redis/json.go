package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrNotFound = errors.New("redis: key not found")

// JSONStore keeps one JSON document per key under a common prefix.
type JSONStore[T any] struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewJSONStore stores values under prefix+key. A zero ttl keeps them forever.
func NewJSONStore[T any](client redis.UniversalClient, prefix string, ttl time.Duration) *JSONStore[T] {
	return &JSONStore[T]{client: client, prefix: prefix, ttl: ttl}
}

func (s *JSONStore[T]) Get(ctx context.Context, key string) (T, error) {
	var v T
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return v, ErrNotFound
	}
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, err
	}
	return v, nil
}

func (s *JSONStore[T]) Set(ctx context.Context, key string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.prefix+key, data, s.ttl).Err()
}
