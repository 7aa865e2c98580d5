package scrape

import (
	"context"
	"sync"

	"github.com/profilepeek/profilepeek"
	"golang.org/x/time/rate"
)

var _ profilepeek.HostLimiter = (*HostLimiter)(nil)

// HostLimiter throttles page loads with one token bucket per target
// host. Hosts never wait on each other; within a host, requests are
// spaced out to the configured rate. Profile scraping only ever hits a
// single host, but the bucket map grows with whatever hosts it is asked
// about.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewHostLimiter creates a HostLimiter allowing rps requests per second
// to each host. Buckets hold a single token, so there is no bursting.
func NewHostLimiter(rps float64) *HostLimiter {
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the host's bucket has a token, or until ctx is
// canceled, whichever comes first.
func (h *HostLimiter) Wait(ctx context.Context, host string) error {
	h.mu.Lock()
	limiter, ok := h.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(h.rps), 1)
		h.limiters[host] = limiter
	}
	h.mu.Unlock()

	return limiter.Wait(ctx)
}
