// Package cache is a small JSON cache over Redis, used by read-heavy
// public endpoints like the home feed. A nil client disables caching
// entirely, which keeps handlers testable without a Redis instance.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache struct {
	client *redis.Client
}

// New wraps a Redis client. Passing nil yields a disabled cache whose
// Get always misses and whose Set is a no-op.
func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Get unmarshals the cached JSON value into dest. The boolean reports a
// hit; cache errors are treated as misses.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil || c.client == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// Set stores value as JSON under key with the given TTL. Failures are
// ignored; the cache is an optimization, never a source of truth.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.client.Set(ctx, key, raw, ttl)
}

// Forget drops a cached key, e.g. after an admin write invalidates the
// home feed.
func (c *Cache) Forget(ctx context.Context, key string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, key)
}
