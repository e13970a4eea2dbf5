// Package cache stores rendered atlas artifacts between runs.
//
// Packing a large icon set means decoding every PNG and compositing the
// canvas; when neither the source files nor the pack options changed, the
// previous result can be reused byte for byte. Keys are content hashes
// computed by a [Keyer], values are opaque byte slices.
//
// Three implementations are provided:
//   - [FileCache]: one JSON file per entry under a cache directory (CLI default)
//   - [BoltCache]: all entries in one bbolt database file
//   - [NullCache]: never stores anything (--no-cache, tests)
package cache

import (
	"context"
	"time"
)

// TTLAtlas is how long a packed atlas stays valid in the cache.
const TTLAtlas = 30 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiration.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
