package rod

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// userAgent is sent on every page load so profile pages serve the same
// markup they serve a desktop browser.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// openPage creates a page bound to ctx with the desktop user agent set.
// The caller must close the returned page on all paths.
func openPage(ctx context.Context, m *Manager) (*rod.Page, error) {
	browser, err := m.Browser()
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("creating page: %w", err)
	}
	page = page.Context(ctx)

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: userAgent}); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("setting user agent: %w", err)
	}
	return page, nil
}

// navigate loads the URL and returns once the DOM reaches content loaded.
func navigate(page *rod.Page, url string) error {
	wait := page.WaitEvent(&proto.PageDomContentEventFired{})
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	wait()
	return nil
}

// blockHeavyResources intercepts requests on the page and drops images,
// fonts, stylesheets and media so profile pages load faster. The
// returned stop function tears the interception down.
func blockHeavyResources(page *rod.Page) (stop func(), err error) {
	router := page.HijackRequests()

	err = router.Add("*", "", func(h *rod.Hijack) {
		switch h.Request.Type() {
		case proto.NetworkResourceTypeImage,
			proto.NetworkResourceTypeFont,
			proto.NetworkResourceTypeStylesheet,
			proto.NetworkResourceTypeMedia:
			h.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
		default:
			h.ContinueRequest(&proto.FetchContinueRequest{})
		}
	})
	if err != nil {
		return nil, fmt.Errorf("installing request interception: %w", err)
	}

	go router.Run()
	return func() { _ = router.Stop() }, nil
}
