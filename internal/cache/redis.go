// Package cache provides an optional Redis-backed result cache. The
// application runs fine without it; a nil Cache disables caching.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/apollohq/wireframe-to-code-backend/internal/config"
)

// Cache is a string key/value cache with a fixed TTL.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}

// Key derives a stable cache key from its parts. Inputs are hashed so
// arbitrary user text never appears verbatim in Redis keys.
func Key(namespace string, parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return namespace + ":" + hex.EncodeToString(h.Sum(nil))[:32]
}

// RedisCache implements Cache on a Redis client. Errors are swallowed: a
// cache miss and a cache failure look the same to callers.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedis connects to Redis and verifies the connection with a ping.
func NewRedis(cfg config.RedisConfig) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return &RedisCache{rdb: rdb, ttl: cfg.TTL}, nil
}

// Close releases the underlying client.
func (c *RedisCache) Close() error { return c.rdb.Close() }

// Get returns the cached value for key, if present.
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	v, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return v, true
}

// Set stores value under key for the configured TTL.
func (c *RedisCache) Set(ctx context.Context, key, value string) {
	_ = c.rdb.Set(ctx, key, value, c.ttl).Err()
}
