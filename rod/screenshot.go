package rod

import (
	"context"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/profilepeek/profilepeek"
)

// DefaultCaptureTimeout bounds a whole screenshot capture.
const DefaultCaptureTimeout = 30 * time.Second

// Ensure Screenshotter implements profilepeek.Screenshotter at compile time.
var _ profilepeek.Screenshotter = (*Screenshotter)(nil)

// Screenshotter captures full-page screenshots using the manager's
// shared browser. Unlike the extraction strategies it does not block
// any resource types; screenshots should look like the real page.
type Screenshotter struct {
	manager *Manager
	timeout time.Duration
}

// ScreenshotOption configures a Screenshotter.
type ScreenshotOption func(*Screenshotter)

// WithCaptureTimeout bounds a capture. Defaults to DefaultCaptureTimeout.
func WithCaptureTimeout(d time.Duration) ScreenshotOption {
	return func(s *Screenshotter) {
		s.timeout = d
	}
}

// NewScreenshotter creates a Screenshotter backed by the manager's
// shared browser.
func NewScreenshotter(m *Manager, opts ...ScreenshotOption) *Screenshotter {
	s := &Screenshotter{
		manager: m,
		timeout: DefaultCaptureTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Capture navigates to the URL, waits for the load event, and returns a
// full-page PNG along with the document title and rendered HTML.
func (s *Screenshotter) Capture(ctx context.Context, url string) (*profilepeek.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	page, err := openPage(ctx, s.manager)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	if err := page.Navigate(url); err != nil {
		return nil, err
	}
	if err := page.WaitLoad(); err != nil {
		return nil, err
	}

	png, err := page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, err
	}

	info, err := page.Info()
	if err != nil {
		return nil, err
	}

	html, err := page.HTML()
	if err != nil {
		return nil, err
	}

	return &profilepeek.Snapshot{
		URL:   url,
		Title: info.Title,
		PNG:   png,
		HTML:  html,
	}, nil
}
