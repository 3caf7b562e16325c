package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ProbeKey builds the cache key for a file's probe result. Size and
// modification time are part of the key, so a changed file naturally
// misses and gets re-probed; the stale entry expires via its TTL.
func ProbeKey(path string, size int64, modTime time.Time) string {
	return "probe:" + Hash([]byte(fmt.Sprintf("%s|%d|%d", path, size, modTime.UnixNano())))
}
