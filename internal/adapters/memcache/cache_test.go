package memcache_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"german_market/internal/adapters/memcache"
)

func TestCache_RoundTrip(t *testing.T) {
	c, err := memcache.New(8)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "tr:en:abc", "Great delivery", 60))

	var got string
	ok, err := c.Get(ctx, "tr:en:abc", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Great delivery", got)
}

func TestCache_MissIsNotAnError(t *testing.T) {
	c, err := memcache.New(8)
	require.NoError(t, err)

	var got string
	ok, err := c.Get(context.Background(), "tr:en:missing", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_EvictsOldestBeyondCapacity(t *testing.T) {
	c, err := memcache.New(2)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k1", "v1", 0))
	require.NoError(t, c.Set(ctx, "k2", "v2", 0))
	require.NoError(t, c.Set(ctx, "k3", "v3", 0))

	var got string
	ok, err := c.Get(ctx, "k1", &got)
	require.NoError(t, err)
	assert.False(t, ok, "oldest entry must be evicted")

	ok, err = c.Get(ctx, "k3", &got)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCache_Del(t *testing.T) {
	c, err := memcache.New(8)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k1", "v1", 0))
	require.NoError(t, c.Del(ctx, "k1"))

	var got string
	ok, err := c.Get(ctx, "k1", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_DefaultSize(t *testing.T) {
	c, err := memcache.New(0)
	require.NoError(t, err)
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		require.NoError(t, c.Set(ctx, fmt.Sprintf("k%d", i), i, 0))
	}
	var got int
	ok, err := c.Get(ctx, "k0", &got)
	require.NoError(t, err)
	assert.True(t, ok, "default capacity must hold well over 100 entries")
	assert.Equal(t, 0, got)
}
