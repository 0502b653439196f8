// Package cache stores rendered layout images between requests.
//
// The serve command renders a PNG for every (kind, trust, heights, display)
// combination it is asked about. Rendering is deterministic, so identical
// requests can be answered from a [Cache] keyed by [RenderKey].
//
// Backends:
//   - [NullCache]: never stores anything; the default when caching is off
//   - [FileCache]: one file per entry under a directory, for single hosts
//   - [RedisCache]: shared cache for several serve instances
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
//
// Get reports a miss as (nil, false, nil); an error means the backend itself
// failed. A ttl of zero or less stores the entry without expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
