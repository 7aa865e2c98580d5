package profilepeek

// CacheStats summarizes the state of a count cache.
type CacheStats struct {
	Total   int `json:"total"`
	Valid   int `json:"valid"`
	Expired int `json:"expired"`
}

// CountCache memoizes raw follower counts per target for a short time.
// Targets are matched case-insensitively. Implementations have no size
// bound; stale entries are only removed by lookups and sweeps.
type CountCache interface {
	// Lookup returns the cached raw value for a target when a fresh
	// entry exists. A stale entry is removed and reported as a miss.
	Lookup(target string) (string, bool)

	// Store unconditionally overwrites the entry for a target.
	Store(target, raw string)

	// Sweep removes every stale entry and returns how many were removed.
	Sweep() int

	// Stats reports entry counts without evicting anything.
	Stats() CacheStats
}
