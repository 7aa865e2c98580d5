//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/profilepeek/profilepeek/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Integration(t *testing.T) {
	t.Parallel()

	m, err := rod.NewManager()
	require.NoError(t, err)
	defer m.Close()

	assert.True(t, m.Healthy())

	b, err := m.Browser()
	require.NoError(t, err)
	assert.NotNil(t, b)

	require.NoError(t, m.Close())
	assert.False(t, m.Healthy())

	_, err = m.Browser()
	assert.Error(t, err, "acquiring from a closed manager must fail")
}

func TestSelectorStrategy_Integration(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><strong data-e2e="followers-count"> 1.5M </strong></body></html>`))
	}))
	defer srv.Close()

	m, err := rod.NewManager()
	require.NoError(t, err)
	defer m.Close()

	strategy := rod.NewSelectorStrategy(m,
		rod.WithSelectors([]rod.Selector{
			{Query: `strong[data-e2e="followers-count"]`, Timeout: 3 * time.Second},
		}),
		rod.WithSelectorProfileURL(func(username string) string {
			return srv.URL + "/@" + username
		}),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	raw, err := strategy.Extract(ctx, "someuser")
	require.NoError(t, err)
	assert.Equal(t, "1.5M", raw)
}

func TestSelectorStrategy_HangingHost_Integration(t *testing.T) {
	t.Parallel()

	// Accepts the connection and never responds.
	stall := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-stall
	}))
	defer srv.Close()
	defer close(stall)

	m, err := rod.NewManager()
	require.NoError(t, err)
	defer m.Close()

	strategy := rod.NewSelectorStrategy(m,
		rod.WithSelectorTimeout(2*time.Second),
		rod.WithSelectorProfileURL(func(username string) string {
			return srv.URL + "/@" + username
		}),
	)

	start := time.Now()
	_, err = strategy.Extract(context.Background(), "someuser")
	elapsed := time.Since(start)

	assert.Error(t, err, "a never-loading page must fail, not hang")
	assert.Less(t, elapsed, 10*time.Second, "extraction must return within its own bound")
}

func TestSourceStrategy_Integration(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><script>var s = {"followerCount":"42000"};</script></body></html>`))
	}))
	defer srv.Close()

	m, err := rod.NewManager()
	require.NoError(t, err)
	defer m.Close()

	strategy := rod.NewSourceStrategy(m,
		rod.WithSourceProfileURL(func(username string) string {
			return srv.URL + "/@" + username
		}),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	raw, err := strategy.Extract(ctx, "someuser")
	require.NoError(t, err)
	assert.Equal(t, "42000", raw)
}

func TestScreenshotter_Integration(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>Test Page</title></head><body><a href="/next">next</a></body></html>`))
	}))
	defer srv.Close()

	m, err := rod.NewManager()
	require.NoError(t, err)
	defer m.Close()

	shooter := rod.NewScreenshotter(m)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	snap, err := shooter.Capture(ctx, srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "Test Page", snap.Title)
	assert.NotEmpty(t, snap.PNG)
	assert.Contains(t, snap.HTML, `href="/next"`)
	// PNG magic bytes
	require.GreaterOrEqual(t, len(snap.PNG), 4)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, snap.PNG[:4])
}
