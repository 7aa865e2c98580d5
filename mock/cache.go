package mock

import "github.com/profilepeek/profilepeek"

var _ profilepeek.CountCache = (*CountCache)(nil)

// CountCache is a mock implementation of profilepeek.CountCache.
type CountCache struct {
	LookupFn func(target string) (string, bool)
	StoreFn  func(target, raw string)
	SweepFn  func() int
	StatsFn  func() profilepeek.CacheStats
}

func (c *CountCache) Lookup(target string) (string, bool) {
	return c.LookupFn(target)
}

func (c *CountCache) Store(target, raw string) {
	c.StoreFn(target, raw)
}

func (c *CountCache) Sweep() int {
	if c.SweepFn == nil {
		return 0
	}
	return c.SweepFn()
}

func (c *CountCache) Stats() profilepeek.CacheStats {
	return c.StatsFn()
}
