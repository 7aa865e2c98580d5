package profilepeek

import "context"

// Link is a hyperlink discovered in a rendered page.
type Link struct {
	HRef string `json:"href"`
	Text string `json:"text"`
}

// Snapshot is a rendered capture of a page.
type Snapshot struct {
	// URL is the normalized address the page was loaded from.
	URL string

	// Title is the document title after rendering.
	Title string

	// PNG is the full-page screenshot.
	PNG []byte

	// HTML is the rendered page source, suitable for link extraction.
	HTML string
}

// Screenshotter renders a page and captures it.
type Screenshotter interface {
	// Capture navigates to the URL, waits for the page to load, and
	// returns a full-page screenshot along with the title and rendered
	// HTML. The context controls timeout and cancellation.
	Capture(ctx context.Context, url string) (*Snapshot, error)
}

// LinkExtractor pulls hyperlinks out of rendered HTML.
type LinkExtractor interface {
	// ExtractLinks returns the anchor links found in the HTML with
	// relative hrefs resolved against baseURL.
	ExtractLinks(html, baseURL string) ([]Link, error)
}
