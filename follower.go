package profilepeek

import (
	"context"
	"time"
)

// FollowerCount holds a raw extracted follower count together with its
// display and numeric forms.
type FollowerCount struct {
	Raw       string `json:"raw"`
	Formatted string `json:"formatted"`
	Numeric   int64  `json:"numeric"`
}

// NewFollowerCount derives the display and numeric forms from a raw value.
func NewFollowerCount(raw string) FollowerCount {
	return FollowerCount{
		Raw:       raw,
		Formatted: FormatCount(raw),
		Numeric:   CountValue(raw),
	}
}

// FollowerResult is the outcome of a follower-count lookup.
type FollowerResult struct {
	Username  string        `json:"username"`
	Count     FollowerCount `json:"followers"`
	Cached    bool          `json:"cached"`
	Timestamp time.Time     `json:"timestamp"`
}

// FollowerService resolves usernames to follower counts.
type FollowerService interface {
	// Followers returns the follower count for a username.
	// Returns EINVALID for a malformed username and ENOTFOUND when no
	// extraction strategy yields a value.
	Followers(ctx context.Context, username string) (*FollowerResult, error)
}

// Strategy is a single follower-count extraction method. Strategies are
// tried in order by the extraction chain; a failure of any kind means
// "this strategy produced no value" and never aborts the chain.
type Strategy interface {
	// Name identifies the strategy in logs (e.g., "api", "selector").
	Name() string

	// Extract attempts to obtain a raw follower count for a normalized
	// username. Returns ENOTFOUND when the strategy cannot produce one.
	Extract(ctx context.Context, username string) (string, error)
}

// HostLimiter throttles outbound page loads per target host.
type HostLimiter interface {
	// Wait blocks until the rate limit allows a request to the host.
	// Returns an error if the context is canceled first.
	Wait(ctx context.Context, host string) error
}
