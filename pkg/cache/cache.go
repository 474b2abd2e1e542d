// Package cache stores pipeline results keyed by content hash.
//
// Four backends share the [Cache] interface:
//   - [FileCache]: one file per entry under a sharded directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for servers
//   - [MemoryCache]: a fixed-size in-process buffer, for server previews
//   - [None]: stores nothing, for --no-cache
//
// Keys come from a [Keyer], which hashes the inputs that determine an
// entry so that changing any option yields a different key.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// DefaultTTL is how long pipeline results stay cached.
const DefaultTTL = 7 * 24 * time.Hour

// None returns a cache that remembers nothing: every Get misses.
func None() Cache { return noCache{} }

type noCache struct{}

func (noCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (noCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (noCache) Delete(context.Context, string) error                     { return nil }
func (noCache) Close() error                                             { return nil }
