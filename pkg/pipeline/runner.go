package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yanqirenshi/padgen/pkg/cache"
	"github.com/yanqirenshi/padgen/pkg/transform"
)

// Runner executes transforms with caching. It is stateless except for the
// cache and logger, so a single Runner is safe for concurrent use.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If c is nil, a NullCache is used (caching disabled).
// If logger is nil, the default logger is used.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute transforms src into PAD JSON, consulting the cache first.
//
// The transform itself is total, and cache failures only cost the caching:
// Execute always produces a Result whose JSON is parseable.
func (r *Runner) Execute(ctx context.Context, src []byte, opts Options) *Result {
	start := time.Now()
	key := cache.SourceKey(src)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err != nil {
			r.Logger.Warn("cache lookup failed", "err", err)
		} else if hit {
			r.Logger.Debug("cache hit", "key", key)
			return &Result{JSON: string(data), CacheHit: true, Duration: time.Since(start)}
		}
	}

	payload := transform.Source(ctx, src)

	if err := r.Cache.Set(ctx, key, []byte(payload), opts.ttl()); err != nil {
		r.Logger.Warn("cache store failed", "err", err)
	}

	r.Logger.Debug("transformed source",
		"bytes", len(src),
		"duration", time.Since(start).Round(time.Microsecond),
	)
	return &Result{JSON: payload, Duration: time.Since(start)}
}
