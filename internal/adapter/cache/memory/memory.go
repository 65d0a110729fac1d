package memory

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"todoapi/internal/core/port"
)

// Cache is an in-process CacheRepository used when no Redis URL is
// configured. It is also the backend the tests run against.
type Cache struct {
	store *gocache.Cache
}

func New() port.CacheRepository {
	return &Cache{store: gocache.New(gocache.NoExpiration, 5*time.Minute)}
}

func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.store.Set(key, value, ttl)
	return nil
}

func (c *Cache) Get(_ context.Context, key string) ([]byte, error) {
	value, found := c.store.Get(key)

	if !found {
		return nil, nil
	}

	data, ok := value.([]byte)

	if !ok {
		return nil, nil
	}

	return data, nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.store.Delete(key)
	return nil
}

func (c *Cache) DeleteByPrefix(_ context.Context, prefix string) error {
	for key := range c.store.Items() {
		if strings.HasPrefix(key, prefix) {
			c.store.Delete(key)
		}
	}

	return nil
}

func (c *Cache) Close() error {
	c.store.Flush()
	return nil
}
