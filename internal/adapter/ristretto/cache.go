// Package ristretto provides an in-process cache adapter backed by
// dgraph-io/ristretto.
package ristretto

import (
	"context"
	"time"

	ristretto "github.com/dgraph-io/ristretto/v2"

	"github.com/cquispe/portfolio-agent/internal/port/cache"
)

// Cache implements the cache port with an in-process ristretto store.
type Cache struct {
	store *ristretto.Cache[string, []byte]
	ttl   time.Duration
}

var _ cache.Cache = (*Cache)(nil)

// New creates a cache bounded to maxBytes. defaultTTL applies when Set is
// called with a zero TTL.
func New(maxBytes int64, defaultTTL time.Duration) (*Cache, error) {
	store, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: 1e6,
		MaxCost:     maxBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Cache{store: store, ttl: defaultTTL}, nil
}

func (c *Cache) Get(_ context.Context, key string) ([]byte, bool, error) {
	value, ok := c.store.Get(key)
	if !ok {
		return nil, false, nil
	}
	return value, true, nil
}

func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.ttl
	}
	c.store.SetWithTTL(key, value, int64(len(value)), ttl)
	// Admission is asynchronous; flush so the entry is visible to the next
	// request instead of racing the buffer.
	c.store.Wait()
	return nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.store.Del(key)
	return nil
}

// Close releases the cache's background goroutines.
func (c *Cache) Close() {
	c.store.Close()
}
