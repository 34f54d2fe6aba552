// Package translate wraps a translation capability with a process-wide
// read-through cache keyed by content hash. Identical texts (duplicates,
// templated responses) hit the backend once; concurrent requests for the same
// key collapse to a single in-flight call.
package translate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/sync/singleflight"

	"german_market/internal/domain"
)

type Cached struct {
	backend domain.TranslationProvider
	cache   domain.Cache
	ttlSec  int
	group   singleflight.Group
}

// NewCached builds the caching layer. ttlSec <= 0 stores entries without
// expiry; staleness is impossible since the key hashes the immutable text,
// so eviction is purely a capacity concern of the cache implementation.
func NewCached(backend domain.TranslationProvider, cache domain.Cache, ttlSec int) *Cached {
	if ttlSec < 0 {
		ttlSec = 0
	}
	return &Cached{backend: backend, cache: cache, ttlSec: ttlSec}
}

// Translate returns the cached rendering or performs one backend call per
// (text, targetLang) pair. Backend failures surface as
// domain.ErrTranslationUnavailable; nothing is cached on failure.
func (t *Cached) Translate(ctx context.Context, text, targetLang string) (string, error) {
	key := Key(text, targetLang)

	var cached string
	if ok, _ := t.cache.Get(ctx, key, &cached); ok {
		return cached, nil
	}

	v, err, _ := t.group.Do(key, func() (any, error) {
		// a collapsed waiter may arrive after the winner populated the cache
		var again string
		if ok, _ := t.cache.Get(ctx, key, &again); ok {
			return again, nil
		}
		out, err := t.backend.Translate(ctx, text, targetLang)
		if err != nil {
			if errors.Is(err, domain.ErrTranslationUnavailable) {
				return "", err
			}
			return "", fmt.Errorf("%w: %v", domain.ErrTranslationUnavailable, err)
		}
		_ = t.cache.Set(ctx, key, out, t.ttlSec)
		return out, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Key is the cache key for one (text, targetLang) pair.
func Key(text, targetLang string) string {
	sum := sha256.Sum256([]byte(targetLang + "\x00" + text))
	return "tr:" + targetLang + ":" + hex.EncodeToString(sum[:])
}
