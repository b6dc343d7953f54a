// Package cache provides byte-oriented caching with pluggable backends.
//
// The [Cache] interface is implemented by three backends:
//   - FileCache: directory-backed storage for CLI usage (the default)
//   - RedisCache: shared storage for multi-instance deployments
//   - NullCache: a no-op backend that disables caching
//
// The cache holds advisory data only (HTTP responses from the search
// index), never artifact working copies, which have their own on-disk
// store. Because a stale search response silently pins yesterday's ranking,
// every stored entry expires: a non-positive TTL selects [DefaultTTL]
// rather than "keep forever".
package cache

import (
	"context"
	"time"
)

// Cache is the interface for byte-oriented cache backends.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive TTL selects DefaultTTL; entries
	// are never stored without an expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// DefaultTTL bounds how long a search response may be served from cache.
// One day keeps repeated rank invocations cheap while star counts and
// descriptions stay reasonably current.
const DefaultTTL = 24 * time.Hour

// applyTTL replaces a non-positive ttl with the default.
func applyTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultTTL
	}
	return ttl
}

// NullCache discards every write and never hits. It backs the
// "cache.backend = none" setting and stands in when a backend fails to
// initialize.
type NullCache struct{}

// NewNullCache creates a cache that caches nothing.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NullCache) Delete(context.Context, string) error { return nil }

func (NullCache) Close() error { return nil }
