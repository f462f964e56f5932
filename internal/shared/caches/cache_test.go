package caches_test

import (
	"context"
	"testing"
	"time"

	"usage-analytics/internal/shared/caches"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_UnknownBackend(t *testing.T) {
	t.Parallel()

	_, err := caches.New(context.Background(), caches.Config{Backend: "memcached"})
	assert.ErrorContains(t, err, `unknown cache backend "memcached"`)
}

func TestNopCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache, err := caches.New(ctx, caches.Config{Backend: caches.BackendNone})
	require.NoError(t, err)
	defer cache.Close()

	require.NoError(t, cache.Set(ctx, "k", []byte("v")))
	value, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, value)
}

func TestMemoryCache_GetSet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache, err := caches.New(ctx, caches.Config{Backend: caches.BackendMemory, TTLSeconds: 60, MaxSizeMB: 1})
	require.NoError(t, err)
	defer cache.Close()

	_, ok, err := cache.Get(ctx, "query:daily:users:2024-03-10:2024-03-10")
	require.NoError(t, err)
	assert.False(t, ok, "empty cache misses")

	require.NoError(t, cache.Set(ctx, "query:daily:users:2024-03-10:2024-03-10", []byte(`{"result":3}`)))
	value, ok, err := cache.Get(ctx, "query:daily:users:2024-03-10:2024-03-10")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"result":3}`), value)
}

func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestRedisCache_GetSet(t *testing.T) {
	t.Parallel()

	s := setupTestRedis(t)
	ctx := context.Background()
	cache, err := caches.New(ctx, caches.Config{Backend: caches.BackendRedis, TTLSeconds: 60, RedisAddress: s.Addr()})
	require.NoError(t, err)
	defer cache.Close()

	_, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "k", []byte("v")))
	value, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), value)
	assert.Equal(t, 60*time.Second, s.TTL("k"))

	s.FastForward(61 * time.Second)
	_, ok, err = cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok, "entry expires after the ttl")
}

func TestRedisCache_Unreachable(t *testing.T) {
	t.Parallel()

	s := setupTestRedis(t)
	addr := s.Addr()
	s.Close()

	_, err := caches.New(context.Background(), caches.Config{Backend: caches.BackendRedis, RedisAddress: addr})
	assert.ErrorContains(t, err, "failed to connect to redis")
}

func TestRedisCache_GetError(t *testing.T) {
	t.Parallel()

	s := setupTestRedis(t)
	ctx := context.Background()
	cache, err := caches.New(ctx, caches.Config{Backend: caches.BackendRedis, RedisAddress: s.Addr()})
	require.NoError(t, err)
	defer cache.Close()

	s.SetError("server busy")
	_, ok, err := cache.Get(ctx, "k")
	assert.Error(t, err)
	assert.False(t, ok)
}
