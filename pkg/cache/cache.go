package cache

import (
	"context"
	"errors"
	"time"
)

var (
	ErrCacheMiss = errors.New("cache: key not found")
)

// Stats is a point-in-time snapshot of the backing store.
type Stats struct {
	Keys   int64
	Hits   int64
	Misses int64
}

// Service defines cache operations interface. Implementations connect
// lazily; callers own the decision of whether a failed operation matters.
type Service interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, keys ...string) (bool, error)
	Stats(ctx context.Context) (Stats, error)
	Close() error
}
