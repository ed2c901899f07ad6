package cache

import (
	"context"
	"time"
)

// NullCache discards everything. It backs the "none" cache backend and
// pipeline runs that must hit the transform every time; the transform is
// cheap enough that running uncached is always safe.
type NullCache struct{}

// NewNullCache returns the no-op cache.
func NewNullCache() NullCache {
	return NullCache{}
}

// Get always misses.
func (NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the value.
func (NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete is a no-op.
func (NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close is a no-op.
func (NullCache) Close() error {
	return nil
}

// Ensure NullCache implements Cache.
var _ Cache = NullCache{}
