// Package cache provides pluggable result caching for the viewer.
//
// Laying out a large graph can take seconds; the annotated layout text is
// deterministic for a given source and engine, so it caches well. The
// engine hashes the DOT source and stores the layout output under that
// key. Backends: FileCache for the CLI, RedisCache for the serve command,
// NullCache to disable caching.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL. Zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKey returns the cache key for a layout run: the engine name and
// a hash of the DOT source. Same source, same engine, same key.
func LayoutKey(engine string, src []byte) string {
	return hashKey("layout", engine, Hash(src))
}
