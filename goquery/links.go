// Package goquery provides link extraction from rendered HTML using CSS
// selection.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/profilepeek/profilepeek"
)

// Ensure Extractor implements profilepeek.LinkExtractor at compile time.
var _ profilepeek.LinkExtractor = (*Extractor)(nil)

// Extractor pulls anchor links out of rendered HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractLinks parses the HTML and returns every anchor as an
// {href, text} pair. Relative hrefs are resolved against baseURL,
// non-HTTP schemes (javascript:, mailto:, tel:, data:) are skipped, and
// duplicate hrefs keep their first occurrence in document order.
func (e *Extractor) ExtractLinks(html, baseURL string) ([]profilepeek.Link, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, profilepeek.Errorf(profilepeek.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, profilepeek.Errorf(profilepeek.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []profilepeek.Link

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}
		if isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true

		links = append(links, profilepeek.Link{
			HRef: resolved,
			Text: strings.TrimSpace(sel.Text()),
		})
	})

	return links, nil
}

// resolveURL resolves a relative URL against a base URL.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
