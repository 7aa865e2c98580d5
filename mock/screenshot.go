package mock

import (
	"context"

	"github.com/profilepeek/profilepeek"
)

var _ profilepeek.Screenshotter = (*Screenshotter)(nil)

// Screenshotter is a mock implementation of profilepeek.Screenshotter.
type Screenshotter struct {
	CaptureFn func(ctx context.Context, url string) (*profilepeek.Snapshot, error)
}

func (s *Screenshotter) Capture(ctx context.Context, url string) (*profilepeek.Snapshot, error) {
	return s.CaptureFn(ctx, url)
}

var _ profilepeek.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of profilepeek.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html, baseURL string) ([]profilepeek.Link, error)
}

func (e *LinkExtractor) ExtractLinks(html, baseURL string) ([]profilepeek.Link, error) {
	return e.ExtractLinksFn(html, baseURL)
}
