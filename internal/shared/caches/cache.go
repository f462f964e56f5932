package caches

import (
	"context"
	"fmt"
)

const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Cache stores encoded query responses.
//
//go:generate mockgen -source=cache.go -destination=./mocks/cache_mock.go -package=mocks
type Cache interface {
	// Get reports a miss with ok == false and a nil error.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

type Config struct {
	Backend      string
	TTLSeconds   int
	MaxSizeMB    int
	RedisAddress string
}

// New builds the cache selected by cfg.Backend.
func New(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case BackendNone, "":
		return NewNopCache(), nil
	case BackendMemory:
		return NewMemoryCache(cfg)
	case BackendRedis:
		return NewRedisCache(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

type nopCache struct{}

// NewNopCache never stores anything.
func NewNopCache() Cache {
	return nopCache{}
}

func (nopCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (nopCache) Set(context.Context, string, []byte) error { return nil }
func (nopCache) Close() error { return nil }
