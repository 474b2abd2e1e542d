package cache

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/coocood/freecache"
)

// MemoryCache keeps entries in a fixed-size in-process freecache. The
// whole buffer is allocated up front; entries larger than 1/1024 of it
// are rejected by Set.
type MemoryCache struct {
	fc *freecache.Cache
}

// NewMemoryCache allocates a cache of size bytes (minimum 512 KiB).
func NewMemoryCache(size int) *MemoryCache {
	return &MemoryCache{fc: freecache.NewCache(size)}
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.fc.Get([]byte(key))
	if errors.Is(err, freecache.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores data, rounding ttl up to whole seconds.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	seconds := 0
	if ttl > 0 {
		seconds = int(math.Ceil(ttl.Seconds()))
	}
	return c.fc.Set([]byte(key), data, seconds)
}

func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.fc.Del([]byte(key))
	return nil
}

// Len returns the number of live entries.
func (c *MemoryCache) Len() int64 { return c.fc.EntryCount() }

// Clear drops every entry.
func (c *MemoryCache) Clear() { c.fc.Clear() }

func (c *MemoryCache) Close() error { return nil }

var _ Cache = (*MemoryCache)(nil)
