// Package cache provides result caching for the transformation pipeline.
//
// The source-to-PAD transform is a pure function, so its output is fully
// determined by the source bytes: content-addressed caching is always
// correct and never needs invalidation beyond TTL housekeeping.
//
// Backends:
//   - FileCache: directory of JSON entries for CLI usage
//   - MemoryCache: process-local map for the server and tests
//   - RedisCache: shared cache for multi-instance deployments
//   - NullCache: caching disabled
package cache

import (
	"context"
	"time"
)

// Cache is the interface all backends implement. Get reports a miss with
// hit=false and a nil error; errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// SourceKey generates the cache key for a source text: the SHA-256 of the
// bytes under a fixed namespace. Identical sources share a key; any edit
// produces a different one.
func SourceKey(src []byte) string {
	return "pad:" + Hash(src)
}
