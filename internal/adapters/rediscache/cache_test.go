package rediscache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"german_market/internal/adapters/rediscache"
)

func setupCache(t *testing.T) (*rediscache.Cache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return rediscache.NewFromClient(client), mr
}

func TestCache_RoundTrip(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "tr:en:abc", "Great delivery", 60))

	var got string
	ok, err := c.Get(ctx, "tr:en:abc", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Great delivery", got)
}

func TestCache_MissIsNotAnError(t *testing.T) {
	c, _ := setupCache(t)

	var got string
	ok, err := c.Get(context.Background(), "tr:en:missing", &got)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestCache_TTLExpires(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "tr:en:abc", "value", 30))

	// miniredis exposes virtual time, no sleeping needed
	mr.FastForward(31 * time.Second)

	var got string
	ok, err := c.Get(ctx, "tr:en:abc", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_ZeroTTLNeverExpires(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "tr:en:abc", "value", 0))
	mr.FastForward(24 * time.Hour)

	var got string
	ok, err := c.Get(ctx, "tr:en:abc", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "value", got)
}

func TestCache_Del(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "tr:en:abc", "value", 0))
	require.NoError(t, c.Del(ctx, "tr:en:abc"))

	var got string
	ok, err := c.Get(ctx, "tr:en:abc", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}
