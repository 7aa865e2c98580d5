// Package profilepeek provides a small HTTP service that extracts data
// from social-media profile pages. It drives a headless browser, waits
// for content to render, and pulls values out via a chain of
// progressively more fragile strategies: a direct API probe, CSS
// selectors over the rendered page, and regular expressions over the
// page source. Successful extractions are memoized in a short-lived
// in-process cache. A second endpoint renders a screenshot of an
// arbitrary URL and lists its hyperlinks.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., rod/,
// resty/, memcache/).
package profilepeek
