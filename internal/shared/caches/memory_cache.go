package caches

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
)

type memoryCache struct {
	client *ristretto.Cache
	ttl    time.Duration
}

// NewMemoryCache keeps entries in process, bounded by cfg.MaxSizeMB.
func NewMemoryCache(cfg Config) (Cache, error) {
	maxCost := int64(cfg.MaxSizeMB) * 1024 * 1024
	client, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxCost / 100,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create memory cache: %w", err)
	}
	return &memoryCache{
		client: client,
		ttl:    time.Duration(cfg.TTLSeconds) * time.Second,
	}, nil
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	value, ok := c.client.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, ok := value.([]byte)
	return b, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte) error {
	// A rejected set only costs a future miss.
	c.client.SetWithTTL(key, value, int64(len(value)), c.ttl)
	c.client.Wait()
	return nil
}

func (c *memoryCache) Close() error {
	c.client.Close()
	return nil
}
