package settings

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/soar/pkg/redis"
)

// RedisStore keeps one JSON value per user under prefix+"settings:".
type RedisStore struct {
	values *redis.JSONStore[Settings]
}

func NewRedisStore(client goredis.UniversalClient, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{values: redis.NewJSONStore[Settings](client, prefix+"settings:", ttl)}
}

func (s *RedisStore) Get(ctx context.Context, key string) (Settings, error) {
	v, err := s.values.Get(ctx, key)
	if errors.Is(err, redis.ErrNotFound) {
		return Settings{}, ErrNotFound
	}
	return v, err
}

func (s *RedisStore) Save(ctx context.Context, key string, v Settings) error {
	return s.values.Set(ctx, key, v)
}
