package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guarantor-risk/config"
	"guarantor-risk/repository"
)

func TestNewCache_Backends(t *testing.T) {
	ctx := context.Background()

	cache, deps, closeFn, err := newCache(ctx, config.CacheConfig{Backend: "none"})
	require.NoError(t, err)
	assert.Nil(t, cache)
	assert.Empty(t, deps)
	closeFn()

	cache, _, closeFn, err = newCache(ctx, config.CacheConfig{Backend: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &repository.MockCache{}, cache)
	closeFn()

	cache, _, closeFn, err = newCache(ctx, config.CacheConfig{Backend: "bigcache", TTL: time.Minute, BigCacheMaxMB: 8})
	require.NoError(t, err)
	assert.IsType(t, &repository.BigCache{}, cache)
	closeFn()
}

func TestNewCache_UnknownBackend(t *testing.T) {
	_, _, _, err := newCache(context.Background(), config.CacheConfig{Backend: "memcached"})
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrCacheBackend)
}
