// Package cache stores identification results and rendered diagrams between
// CLI runs.
//
// Entries are opaque byte slices addressed by string keys. Keys are built by
// a [Keyer] from a content hash of the model and the options that affect the
// output, so any change to either yields a new key and stale entries are
// never served.
//
// Two implementations are provided: [FileCache] for the CLI and [NullCache]
// for --no-cache. Wrap either with [Instrument] to emit cache hooks.
package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/causalid/pkg/observability"
)

// Cache is a key-value store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// TTLs for cached values. Results are a pure function of their key, so they
// only expire to bound the size of the cache directory.
const (
	TTLIdentify = 30 * 24 * time.Hour
	TTLDiagram  = 7 * 24 * time.Hour
)

// instrumented reports hits, misses and writes to the observability hooks.
type instrumented struct {
	Cache
}

// Instrument wraps c so every Get and Set emits cache hooks. The key type
// reported is the key's prefix up to the first colon.
func Instrument(c Cache) Cache {
	return &instrumented{Cache: c}
}

func (c *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.Cache.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, keyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, keyType(key))
		}
	}
	return data, hit, err
}

func (c *instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.Cache.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	return nil
}

// keyType extracts the key category, skipping a scope prefix added by
// [ScopedKeyer].
func keyType(key string) string {
	parts := strings.Split(key, ":")
	if len(parts) < 2 {
		return "unknown"
	}
	return parts[len(parts)-2]
}
