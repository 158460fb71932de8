// Package cache stores rendered public catalog responses.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/example/voltline/internal/config"
)

// CatalogPrefix namespaces every catalog response key.
const CatalogPrefix = "catalog:"

// Cache is a JSON value cache keyed by string.
type Cache interface {
	// Get decodes the cached value into dst and reports whether it was present.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	InvalidatePrefix(ctx context.Context, prefix string) error
}

// generationKey sits outside CatalogPrefix so invalidation keeps it.
const generationKey = "catalog-generation"

// Key builds a catalog cache key from a generation and a request path.
func Key(generation, path string) string {
	return CatalogPrefix + generation + ":" + path
}

// Generation returns the current catalog generation. It is empty until the
// first Invalidate.
func Generation(ctx context.Context, c Cache) (string, error) {
	var gen string
	if _, err := c.Get(ctx, generationKey, &gen); err != nil {
		return "", err
	}
	return gen, nil
}

// Invalidate starts a new generation and drops the cached catalog responses.
// A response built before the call is stored under the old generation and
// is never served.
func Invalidate(ctx context.Context, c Cache) error {
	if err := c.Set(ctx, generationKey, uuid.NewString()); err != nil {
		return err
	}
	return c.InvalidatePrefix(ctx, CatalogPrefix)
}

// Redis keeps values in Redis with a fixed TTL.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to Redis and verifies the connection.
func NewRedis(ctx context.Context, cfg config.CacheConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Redis{client: client, ttl: cfg.TTL}, nil
}

func (r *Redis) Get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, r.ttl).Err()
}

// InvalidatePrefix deletes every key starting with prefix using SCAN, so
// large keyspaces are not blocked the way KEYS would.
func (r *Redis) InvalidatePrefix(ctx context.Context, prefix string) error {
	iter := r.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 100 {
			if err := r.client.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return r.client.Del(ctx, batch...).Err()
	}
	return nil
}

// Close releases the connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}

// Noop never stores anything. It is used when Redis is not configured.
type Noop struct{}

func (Noop) Get(context.Context, string, any) (bool, error) { return false, nil }

func (Noop) Set(context.Context, string, any) error { return nil }

func (Noop) InvalidatePrefix(context.Context, string) error { return nil }
