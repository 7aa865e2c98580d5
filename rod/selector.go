package rod

import (
	"context"
	"strings"
	"time"

	"github.com/profilepeek/profilepeek"
)

// DefaultSelectorTimeout bounds a whole selector extraction attempt,
// page load included.
const DefaultSelectorTimeout = 30 * time.Second

// Selector pairs a CSS selector with the time budget to wait for it.
type Selector struct {
	Query   string
	Timeout time.Duration
}

// DefaultSelectors list the follower-count selectors in decreasing order
// of reliability, the more reliable ones carrying the longer waits. The
// first element whose trimmed text looks like a rendered count wins.
var DefaultSelectors = []Selector{
	{Query: `[data-e2e="followers-count"]`, Timeout: 8 * time.Second},
	{Query: `strong[data-e2e="followers-count"]`, Timeout: 5 * time.Second},
	{Query: `[title*="Followers" i]`, Timeout: 4 * time.Second},
	{Query: `.number[data-e2e="followers-count"]`, Timeout: 3 * time.Second},
}

// Ensure SelectorStrategy implements profilepeek.Strategy at compile time.
var _ profilepeek.Strategy = (*SelectorStrategy)(nil)

// SelectorStrategy extracts a follower count from the rendered profile
// page by polling an ordered list of CSS selectors, each with its own
// timeout. The whole attempt, page load included, is bounded by an
// overall timeout so a host that never finishes responding cannot pin a
// request. Non-essential resources are blocked to cut load time. The
// page opened for an attempt is closed on every path.
type SelectorStrategy struct {
	manager    *Manager
	selectors  []Selector
	timeout    time.Duration
	profileURL func(username string) string
}

// SelectorOption configures a SelectorStrategy.
type SelectorOption func(*SelectorStrategy)

// WithSelectors overrides the selector list. Defaults to DefaultSelectors.
func WithSelectors(selectors []Selector) SelectorOption {
	return func(s *SelectorStrategy) {
		s.selectors = selectors
	}
}

// WithSelectorTimeout bounds a whole extraction attempt, page load
// included. Defaults to DefaultSelectorTimeout.
func WithSelectorTimeout(d time.Duration) SelectorOption {
	return func(s *SelectorStrategy) {
		s.timeout = d
	}
}

// WithSelectorProfileURL overrides how usernames map to page URLs.
func WithSelectorProfileURL(fn func(username string) string) SelectorOption {
	return func(s *SelectorStrategy) {
		s.profileURL = fn
	}
}

// NewSelectorStrategy creates a SelectorStrategy backed by the manager's
// shared browser.
func NewSelectorStrategy(m *Manager, opts ...SelectorOption) *SelectorStrategy {
	s := &SelectorStrategy{
		manager:    m,
		selectors:  DefaultSelectors,
		timeout:    DefaultSelectorTimeout,
		profileURL: profilepeek.ProfileURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name identifies the strategy in logs.
func (s *SelectorStrategy) Name() string { return "selector" }

// Extract opens the profile page and returns the first selector text
// that looks like a follower count.
func (s *SelectorStrategy) Extract(ctx context.Context, username string) (string, error) {
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

	for _, selector := range s.selectors {
		el, err := page.Timeout(selector.Timeout).Element(selector.Query)
		if err != nil {
			continue // selector did not appear in time, try the next one
		}
		text, err := el.Text()
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if profilepeek.IsRawCount(text) {
			return text, nil
		}
	}

	return "", profilepeek.Errorf(profilepeek.ENOTFOUND, "no selector matched a follower count for %q", username)
}
