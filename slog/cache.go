package slog

import (
	"log/slog"

	"github.com/profilepeek/profilepeek"
)

// Ensure LoggingCache implements profilepeek.CountCache.
var _ profilepeek.CountCache = (*LoggingCache)(nil)

// LoggingCache wraps a CountCache with hit/miss logging.
type LoggingCache struct {
	next   profilepeek.CountCache
	logger *slog.Logger
}

// NewLoggingCache creates a new LoggingCache.
func NewLoggingCache(next profilepeek.CountCache, logger *slog.Logger) *LoggingCache {
	return &LoggingCache{next: next, logger: logger}
}

// Lookup delegates to the wrapped cache and logs the outcome.
func (c *LoggingCache) Lookup(target string) (string, bool) {
	raw, ok := c.next.Lookup(target)
	c.logger.Debug("cache lookup", "target", target, "hit", ok)
	return raw, ok
}

// Store delegates to the wrapped cache.
func (c *LoggingCache) Store(target, raw string) {
	c.next.Store(target, raw)
	c.logger.Debug("cache store", "target", target, "raw", raw)
}

// Sweep delegates to the wrapped cache and logs removals.
func (c *LoggingCache) Sweep() int {
	removed := c.next.Sweep()
	if removed > 0 {
		c.logger.Debug("cache sweep", "removed", removed)
	}
	return removed
}

// Stats delegates to the wrapped cache.
func (c *LoggingCache) Stats() profilepeek.CacheStats {
	return c.next.Stats()
}
