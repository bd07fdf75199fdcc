package kv

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	redisc "github.com/subkart/core/internal/pkg/redis"
)

// RedisStore implements Store on top of Redis. Expiry is handled natively by
// the server, so a sweep over a RedisStore finds nothing to do.
type RedisStore struct {
	rc *redisc.Client
}

func NewRedisStore(rc *redisc.Client) *RedisStore {
	return &RedisStore{rc: rc}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.rc.Raw().Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *RedisStore) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return s.rc.Raw().Set(ctx, key, value, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.rc.Raw().Del(ctx, key).Err()
}

func (s *RedisStore) Scan(ctx context.Context, prefix string) ([]string, error) {
	var (
		keys   []string
		cursor uint64
	)
	for {
		batch, next, err := s.rc.Raw().Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, batch...)
		if next == 0 {
			return keys, nil
		}
		cursor = next
	}
}
