// Package cache provides a file-backed cache for probe results.
//
// Scanning a large asset directory probes thousands of files; most of them
// do not change between runs. The walk command caches each file's probe
// outcome keyed by path, size, and modification time, so unchanged files
// are classified without reopening them.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with optional
// expiration.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
