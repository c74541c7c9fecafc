package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/allegro/bigcache/v3"
)

// BigCache is a process-local CacheRepository with a single global TTL.
type BigCache struct {
	cache *bigcache.BigCache
}

func NewBigCache(ctx context.Context, ttl time.Duration, maxMB int) (*BigCache, error) {
	config := bigcache.DefaultConfig(ttl)
	config.HardMaxCacheSize = maxMB
	config.CleanWindow = 5 * time.Minute
	if ttl <= 0 {
		// No TTL: keep entries until the size cap evicts them.
		config.CleanWindow = 0
	}
	config.Verbose = false

	cache, err := bigcache.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("init bigcache: %w", err)
	}
	return &BigCache{cache: cache}, nil
}

func (c *BigCache) Get(ctx context.Context, key string) (string, bool) {
	data, err := c.cache.Get(key)
	if err != nil {
		if !errors.Is(err, bigcache.ErrEntryNotFound) {
			slog.WarnContext(ctx, "bigcache get failed", "key", key, "error", err)
		}
		return "", false
	}
	return string(data), true
}

func (c *BigCache) Set(_ context.Context, key string, value string) error {
	return c.cache.Set(key, []byte(value))
}

func (c *BigCache) Close() error {
	return c.cache.Close()
}
