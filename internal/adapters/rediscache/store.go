package rediscache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"listing-feed-service/internal/core/domain"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements KVStorePort on Redis, the durable tier in
// multi-node deployments.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects and pings once so misconfiguration fails at
// startup, not on first use.
func NewRedisStore(ctx context.Context, addr, password string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: redis get %s: %v", domain.ErrNetworkUnavailable, key, err)
	}
	return value, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: redis set %s: %v", domain.ErrNetworkUnavailable, key, err)
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: redis del %s: %v", domain.ErrNetworkUnavailable, key, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
