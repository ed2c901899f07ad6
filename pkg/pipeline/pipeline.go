// Package pipeline provides the shared execution path for the PAD
// transformation.
//
// Both the CLI and the HTTP server run transforms through a Runner, which
// wraps the pure transformation core with content-addressed result caching
// and logging. Centralizing this keeps cache behavior identical across
// entry points.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, logger)
//	result := runner.Execute(ctx, source, pipeline.Options{})
//	fmt.Println(result.JSON)
//
// Execute cannot fail: the transform encodes its own failures into the
// result JSON, and cache trouble degrades to an uncached transform with a
// logged warning.
package pipeline

import "time"

// DefaultTTL is how long cached transform results are kept. The cache is
// content-addressed, so the TTL only bounds storage, never correctness.
const DefaultTTL = 24 * time.Hour

// Options controls one pipeline execution.
type Options struct {
	// TTL overrides DefaultTTL when positive.
	TTL time.Duration

	// Refresh bypasses the cache lookup; the result is still stored.
	Refresh bool
}

// Result is the outcome of one pipeline execution.
type Result struct {
	// JSON is the PAD diagram wire payload. Always parseable.
	JSON string

	// CacheHit reports whether the result came from the cache.
	CacheHit bool

	// Duration is the total execution time, including cache traffic.
	Duration time.Duration
}

// ttl resolves the effective TTL for the options.
func (o Options) ttl() time.Duration {
	if o.TTL > 0 {
		return o.TTL
	}
	return DefaultTTL
}
