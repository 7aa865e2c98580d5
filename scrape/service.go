// Package scrape orchestrates follower-count extraction: it normalizes
// the target, consults the cache, and runs the strategy chain until one
// strategy succeeds.
package scrape

import (
	"context"
	"log/slog"
	"time"

	"github.com/profilepeek/profilepeek"
)

// Ensure Service implements profilepeek.FollowerService at compile time.
var _ profilepeek.FollowerService = (*Service)(nil)

// Service resolves usernames to follower counts by running an ordered
// chain of extraction strategies, cheapest first. Every per-strategy
// failure is swallowed; only exhaustion of the whole chain surfaces as
// ENOTFOUND. Successful extractions are stored in the cache and trigger
// an opportunistic background sweep.
type Service struct {
	// Strategies are tried in order; the first success wins.
	Strategies []profilepeek.Strategy

	// Cache memoizes successful extractions. Optional.
	Cache profilepeek.CountCache

	// Limiter throttles extraction work per target host. Optional.
	Limiter profilepeek.HostLimiter

	// Host is the host charged against the limiter.
	Host string

	// Logger records strategy failures and sweep results. Optional.
	Logger *slog.Logger
}

// Followers looks up the follower count for a username. Cache hits skip
// the strategy chain entirely and are marked Cached.
func (s *Service) Followers(ctx context.Context, username string) (*profilepeek.FollowerResult, error) {
	name, err := profilepeek.NormalizeUsername(username)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if raw, ok := s.Cache.Lookup(name); ok {
			return s.result(name, raw, true), nil
		}
	}

	if s.Limiter != nil && s.Host != "" {
		if err := s.Limiter.Wait(ctx, s.Host); err != nil {
			return nil, err
		}
	}

	for _, strategy := range s.Strategies {
		raw, err := strategy.Extract(ctx, name)
		if err != nil {
			s.logger().Debug("strategy produced no value",
				"strategy", strategy.Name(),
				"username", name,
				"error", err,
			)
			continue
		}
		if raw == "" {
			continue
		}

		if s.Cache != nil {
			s.Cache.Store(name, raw)
			go s.sweep()
		}
		return s.result(name, raw, false), nil
	}

	return nil, profilepeek.Errorf(profilepeek.ENOTFOUND, "could not retrieve follower count for %q", name)
}

func (s *Service) result(name, raw string, cached bool) *profilepeek.FollowerResult {
	return &profilepeek.FollowerResult{
		Username:  name,
		Count:     profilepeek.NewFollowerCount(raw),
		Cached:    cached,
		Timestamp: time.Now().UTC(),
	}
}

// sweep removes stale cache entries after a successful request. It runs
// detached from the request and contains its own failures so a sweep can
// never take a request down with it.
func (s *Service) sweep() {
	defer func() {
		if r := recover(); r != nil {
			s.logger().Error("cache sweep panicked", "panic", r)
		}
	}()

	if removed := s.Cache.Sweep(); removed > 0 {
		s.logger().Debug("cache sweep", "removed", removed)
	}
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}
