package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/lovenest/storefront/pkg/redis"
)

// Redis keeps snapshots under namespaced keys that expire after ttl.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

var _ Backend = (*Redis)(nil)

func NewRedis(client *redis.Client, ttl time.Duration) (*Redis, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	return &Redis{client: client, ttl: ttl}, nil
}

func (r *Redis) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.GetBytes(ctx, r.client.CartSnapshotKey(key))
	if redis.IsNil(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get snapshot: %w", err)
	}
	return data, nil
}

func (r *Redis) Write(ctx context.Context, key string, data []byte) error {
	if err := r.client.Set(ctx, r.client.CartSnapshotKey(key), data, r.ttl); err != nil {
		return fmt.Errorf("redis set snapshot: %w", err)
	}
	return nil
}

func (r *Redis) Remove(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.client.CartSnapshotKey(key)); err != nil {
		return fmt.Errorf("redis del snapshot: %w", err)
	}
	return nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}
