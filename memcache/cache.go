// Package memcache provides an in-process, time-boxed implementation of
// profilepeek.CountCache.
package memcache

import (
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/profilepeek/profilepeek"
)

// DefaultTTL is the age past which an entry is considered stale.
const DefaultTTL = 300 * time.Second

// Ensure Cache implements profilepeek.CountCache at compile time.
var _ profilepeek.CountCache = (*Cache)(nil)

type entry struct {
	raw     string
	created time.Time
}

// Cache memoizes raw follower counts keyed by a hash of the lower-cased
// target. Entries expire after a fixed TTL and are removed lazily, on
// lookup or by Sweep; there is no size bound, so the map grows freely
// between sweeps. Cache is safe for concurrent use, but lookups are not
// coalesced: concurrent misses for the same target each do their own
// extraction and the last Store wins.
type Cache struct {
	mu      sync.Mutex
	entries map[uint64]entry
	ttl     time.Duration
	now     func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL sets the entry lifetime. Defaults to DefaultTTL.
func WithTTL(d time.Duration) Option {
	return func(c *Cache) {
		c.ttl = d
	}
}

// WithClock overrides the time source. This exists for testing expiry
// without sleeping.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New creates an empty Cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[uint64]entry),
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup returns the cached raw value for the target when the entry is
// younger than the TTL. A stale entry is deleted and reported as a miss.
func (c *Cache) Lookup(target string) (string, bool) {
	k := key(target)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[k]
	if !ok {
		return "", false
	}
	if c.now().Sub(e.created) >= c.ttl {
		delete(c.entries, k)
		return "", false
	}
	return e.raw, true
}

// Store unconditionally overwrites the entry for the target with the new
// value and the current time.
func (c *Cache) Store(target, raw string) {
	k := key(target)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[k] = entry{raw: raw, created: c.now()}
}

// Sweep removes every entry older than the TTL and returns how many were
// removed. No entry older than the TTL survives a sweep.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for k, e := range c.entries {
		if now.Sub(e.created) >= c.ttl {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// Stats counts total, valid and expired entries without evicting.
func (c *Cache) Stats() profilepeek.CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	stats := profilepeek.CacheStats{Total: len(c.entries)}
	for _, e := range c.entries {
		if now.Sub(e.created) >= c.ttl {
			stats.Expired++
		} else {
			stats.Valid++
		}
	}
	return stats
}

// key hashes the lower-cased target so lookups are case-insensitive.
func key(target string) uint64 {
	return xxhash.Sum64String(strings.ToLower(target))
}
