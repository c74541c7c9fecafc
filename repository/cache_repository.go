package repository

import (
	"context"
	"errors"
)

var ErrCacheBackend = errors.New("unknown cache backend")

// CacheRepository memoizes serialized assessments. A miss and a backend
// failure both report ok=false on Get; callers treat the cache as optional.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}
