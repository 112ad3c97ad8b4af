package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis, *test.Hook) {
	t.Helper()
	server := miniredis.RunT(t)
	logger, hook := test.NewNullLogger()

	cache := NewRedisCache(&redis.Options{Addr: server.Addr()}, ttl, logger)
	t.Cleanup(func() { cache.Close() })
	return cache, server, hook
}

func TestRedisCache_SetAppliesTTL(t *testing.T) {
	cache, server, _ := newTestRedisCache(t, 10*time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Ping(ctx))
	require.NoError(t, cache.Set(ctx, "sweep:abc", `{"rows":[]}`))

	val, ok := cache.Get(ctx, "sweep:abc")
	assert.True(t, ok)
	assert.Equal(t, `{"rows":[]}`, val)
	assert.Equal(t, 10*time.Minute, server.TTL("sweep:abc"))

	server.FastForward(11 * time.Minute)
	_, ok = cache.Get(ctx, "sweep:abc")
	assert.False(t, ok)
}

func TestRedisCache_MissIsSilent(t *testing.T) {
	cache, _, hook := newTestRedisCache(t, time.Minute)

	_, ok := cache.Get(context.Background(), "missing")

	assert.False(t, ok)
	assert.Empty(t, hook.AllEntries())
}

func TestRedisCache_ServerErrorIsLogged(t *testing.T) {
	cache, server, hook := newTestRedisCache(t, time.Minute)
	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, "k", "v"))

	server.SetError("ERR server unavailable")
	_, ok := cache.Get(ctx, "k")

	assert.False(t, ok)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "k", hook.LastEntry().Data["key"])
}
