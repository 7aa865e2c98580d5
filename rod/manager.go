// Package rod provides browser-backed implementations of the extraction
// strategies and the screenshotter using Chrome automation.
package rod

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// Manager owns the single process-wide browser. The browser is launched
// at construction and reused across requests; Browser probes liveness on
// every acquisition and relaunches a fresh instance when the old one has
// died. There is no pooling; all rendering runs through this one
// instance.
//
// Manager is safe for concurrent use. The liveness probe and a relaunch
// are atomic with respect to each other.
type Manager struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	closed   atomic.Bool
}

// NewManager launches a headless browser and returns a Manager for it.
// Close must be called when the Manager is no longer needed.
func NewManager() (*Manager, error) {
	m := &Manager{}
	if err := m.launchBrowser(); err != nil {
		return nil, err
	}
	return m, nil
}

// Browser returns a live browser instance, relaunching if the current
// one no longer responds. Relaunch failures are not retried.
func (m *Manager) Browser() (*rod.Browser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed.Load() {
		return nil, fmt.Errorf("browser manager is closed")
	}

	if m.browser != nil && alive(m.browser) {
		return m.browser, nil
	}

	m.closeBrowser()
	if err := m.launchBrowser(); err != nil {
		return nil, err
	}
	return m.browser, nil
}

// Healthy reports whether the current browser responds, without
// triggering a relaunch.
func (m *Manager) Healthy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return !m.closed.Load() && m.browser != nil && alive(m.browser)
}

// Close releases browser resources. Close is safe to call multiple times.
func (m *Manager) Close() error {
	if !m.closed.CompareAndSwap(false, true) {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.closeBrowser()
	return nil
}

// alive probes the browser by listing its pages.
func alive(b *rod.Browser) bool {
	_, err := b.Pages()
	return err == nil
}

// launchBrowser starts a new browser with flags tuned for low-resource,
// sandboxed environments. Must be called with mu held (or before the
// Manager is shared).
func (m *Manager) launchBrowser() error {
	lnchr := launcher.New().
		NoSandbox(true).
		Set("single-process").
		Set("disable-setuid-sandbox").
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("disable-background-networking").
		Set("disable-default-apps").
		Set("disable-extensions").
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	m.browser = browser
	m.launcher = lnchr
	return nil
}

// closeBrowser shuts down the current browser and launcher.
// Must be called with mu held.
func (m *Manager) closeBrowser() {
	if m.browser != nil {
		_ = m.browser.Close()
		m.browser = nil
	}
	if m.launcher != nil {
		m.launcher.Kill()
		m.launcher = nil
	}
}
