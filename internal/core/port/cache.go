package port

import (
	"context"
	"time"
)

// CacheRepository is a small key/value cache with TTL semantics.
// Get returns (nil, nil) when the key is absent.
type CacheRepository interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
	Close() error
}
