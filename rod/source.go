package rod

import (
	"context"
	"regexp"
	"strconv"
	"time"

	"github.com/profilepeek/profilepeek"
)

// DefaultSourceTimeout bounds a whole page-source extraction attempt.
const DefaultSourceTimeout = 10 * time.Second

// sourcePatterns scan rendered page source for a follower count, most
// specific first. Each pattern's first capture group is the candidate.
var sourcePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)"followerCount"\s*:\s*"?(\d+)"?`),
	regexp.MustCompile(`(?i)([\d,.]+[KMBkmb]?)\s*Followers`),
	regexp.MustCompile(`(?i)Followers\s*([\d,.]+[KMBkmb]?)`),
}

// largeNumberPattern finds standalone runs of 3+ digits for the legacy
// last-resort guess.
var largeNumberPattern = regexp.MustCompile(`\b\d{3,}\b`)

// Ensure SourceStrategy implements profilepeek.Strategy at compile time.
var _ profilepeek.Strategy = (*SourceStrategy)(nil)

// SourceStrategy extracts a follower count by scanning the full rendered
// page source with an ordered list of regular expressions. It is more
// fragile than the selector strategy and runs after it in the default
// chain.
type SourceStrategy struct {
	manager             *Manager
	timeout             time.Duration
	profileURL          func(username string) string
	largeNumberFallback bool
}

// SourceOption configures a SourceStrategy.
type SourceOption func(*SourceStrategy)

// WithSourceTimeout bounds the page load. Defaults to DefaultSourceTimeout.
func WithSourceTimeout(d time.Duration) SourceOption {
	return func(s *SourceStrategy) {
		s.timeout = d
	}
}

// WithSourceProfileURL overrides how usernames map to page URLs.
func WithSourceProfileURL(fn func(username string) string) SourceOption {
	return func(s *SourceStrategy) {
		s.profileURL = fn
	}
}

// WithLargeNumberFallback enables the legacy guess that accepts the
// first standalone number over 1000 anywhere in the page source. It is
// a known source of false positives and is off by default.
func WithLargeNumberFallback(enabled bool) SourceOption {
	return func(s *SourceStrategy) {
		s.largeNumberFallback = enabled
	}
}

// NewSourceStrategy creates a SourceStrategy backed by the manager's
// shared browser.
func NewSourceStrategy(m *Manager, opts ...SourceOption) *SourceStrategy {
	s := &SourceStrategy{
		manager:    m,
		timeout:    DefaultSourceTimeout,
		profileURL: profilepeek.ProfileURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name identifies the strategy in logs.
func (s *SourceStrategy) Name() string { return "source" }

// Extract renders the profile page and scans its source.
func (s *SourceStrategy) Extract(ctx context.Context, username string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	page, err := openPage(ctx, s.manager)
	if err != nil {
		return "", err
	}
	defer page.Close()

	stop, err := blockHeavyResources(page)
	if err != nil {
		return "", err
	}
	defer stop()

	if err := navigate(page, s.profileURL(username)); err != nil {
		return "", err
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	if raw := ExtractFromSource(html); raw != "" {
		return raw, nil
	}
	if s.largeNumberFallback {
		if raw := LargeNumberGuess(html); raw != "" {
			return raw, nil
		}
	}

	return "", profilepeek.Errorf(profilepeek.ENOTFOUND, "no source pattern matched a follower count for %q", username)
}

// ExtractFromSource scans page source with the known follower-count
// patterns and returns the first capture, or "" when nothing matches.
func ExtractFromSource(html string) string {
	for _, pattern := range sourcePatterns {
		if m := pattern.FindStringSubmatch(html); m != nil {
			return m[1]
		}
	}
	return ""
}

// LargeNumberGuess returns the first standalone number over 1000 found
// in the source. Explicitly the least reliable extraction method.
func LargeNumberGuess(html string) string {
	for _, candidate := range largeNumberPattern.FindAllString(html, -1) {
		n, err := strconv.Atoi(candidate)
		if err != nil {
			continue
		}
		if n > 1000 {
			return candidate
		}
	}
	return ""
}
