// Package memcache is a bounded in-process cache for single-node runs. LRU
// eviction caps memory; correctness never depends on an entry staying cached.
package memcache

import (
	"context"
	"encoding/json"

	lru "github.com/hashicorp/golang-lru/v2"

	"german_market/internal/adapters/observability"
)

const DefaultSize = 4096

type Cache struct{ c *lru.Cache[string, []byte] }

// New builds an LRU-bounded cache. size <= 0 selects DefaultSize.
func New(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	c, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, err
	}
	return &Cache{c: c}, nil
}

func (m *Cache) Get(_ context.Context, key string, dst any) (bool, error) {
	b, ok := m.c.Get(key)
	if !ok {
		observability.ObserveCache("memory", "miss")
		return false, nil
	}
	observability.ObserveCache("memory", "hit")
	return true, json.Unmarshal(b, dst)
}

// Set stores v as JSON. ttlSec is ignored: entries live until evicted.
func (m *Cache) Set(_ context.Context, key string, v any, _ int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	observability.ObserveCache("memory", "set")
	m.c.Add(key, b)
	return nil
}

func (m *Cache) Del(_ context.Context, key string) error {
	observability.ObserveCache("memory", "del")
	m.c.Remove(key)
	return nil
}
