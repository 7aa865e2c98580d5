package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/profilepeek/profilepeek"
	peekhttp "github.com/profilepeek/profilepeek/http"
	"github.com/profilepeek/profilepeek/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postForm(t *testing.T, ts *httptest.Server, target string) *http.Response {
	t.Helper()
	resp, err := ts.Client().PostForm(ts.URL+"/screenshot", url.Values{"url": {target}})
	require.NoError(t, err)
	return resp
}

func TestServer_Screenshot(t *testing.T) {
	t.Parallel()

	t.Run("serves the form", func(t *testing.T) {
		t.Parallel()

		s := peekhttp.NewServer(peekhttp.DefaultQueueSize)
		ts := httptest.NewServer(s.Handler())
		defer ts.Close()

		resp, err := http.Get(ts.URL + "/screenshot")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), `name="url"`)
	})

	t.Run("prepends https to a bare domain", func(t *testing.T) {
		t.Parallel()

		var captured string
		s := peekhttp.NewServer(peekhttp.DefaultQueueSize)
		s.Screenshots = &mock.Screenshotter{
			CaptureFn: func(_ context.Context, u string) (*profilepeek.Snapshot, error) {
				captured = u
				return &profilepeek.Snapshot{URL: u, Title: "Example"}, nil
			},
		}
		ts := httptest.NewServer(s.Handler())
		defer ts.Close()

		resp := postForm(t, ts, "example.com")
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "https://example.com", captured)
	})

	t.Run("renders the screenshot and extracted links", func(t *testing.T) {
		t.Parallel()

		s := peekhttp.NewServer(peekhttp.DefaultQueueSize)
		s.Screenshots = &mock.Screenshotter{
			CaptureFn: func(_ context.Context, u string) (*profilepeek.Snapshot, error) {
				return &profilepeek.Snapshot{
					URL:   u,
					Title: "Example Domain",
					PNG:   []byte{0x89, 'P', 'N', 'G'},
					HTML:  `<a href="/about">About</a>`,
				}, nil
			},
		}
		s.Links = &mock.LinkExtractor{
			ExtractLinksFn: func(_, _ string) ([]profilepeek.Link, error) {
				return []profilepeek.Link{{HRef: "https://example.com/about", Text: "About"}}, nil
			},
		}
		ts := httptest.NewServer(s.Handler())
		defer ts.Close()

		resp := postForm(t, ts, "https://example.com")
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		assert.Contains(t, string(body), "Example Domain")
		assert.Contains(t, string(body), "data:image/png;base64,")
		assert.Contains(t, string(body), "https://example.com/about")
	})

	t.Run("link extraction failure still renders the screenshot", func(t *testing.T) {
		t.Parallel()

		s := peekhttp.NewServer(peekhttp.DefaultQueueSize)
		s.Screenshots = &mock.Screenshotter{
			CaptureFn: func(_ context.Context, u string) (*profilepeek.Snapshot, error) {
				return &profilepeek.Snapshot{URL: u, Title: "Broken", HTML: "<<"}, nil
			},
		}
		s.Links = &mock.LinkExtractor{
			ExtractLinksFn: func(_, _ string) ([]profilepeek.Link, error) {
				return nil, profilepeek.Errorf(profilepeek.EINVALID, "bad base url")
			},
		}
		ts := httptest.NewServer(s.Handler())
		defer ts.Close()

		resp := postForm(t, ts, "https://example.com")
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "Broken")
	})

	t.Run("renders the error page with the message on capture failure", func(t *testing.T) {
		t.Parallel()

		s := peekhttp.NewServer(peekhttp.DefaultQueueSize)
		s.Screenshots = &mock.Screenshotter{
			CaptureFn: func(_ context.Context, _ string) (*profilepeek.Snapshot, error) {
				return nil, profilepeek.Errorf(profilepeek.EINTERNAL, "navigation timed out after 30s")
			},
		}
		ts := httptest.NewServer(s.Handler())
		defer ts.Close()

		resp := postForm(t, ts, "https://example.com")
		defer resp.Body.Close()

		require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "navigation timed out after 30s")
	})

	t.Run("fails cleanly when no screenshotter is configured", func(t *testing.T) {
		t.Parallel()

		s := peekhttp.NewServer(peekhttp.DefaultQueueSize)
		ts := httptest.NewServer(s.Handler())
		defer ts.Close()

		resp := postForm(t, ts, "https://example.com")
		defer resp.Body.Close()

		require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "screenshot capture is not configured")
	})

	t.Run("rejects an empty url", func(t *testing.T) {
		t.Parallel()

		s := peekhttp.NewServer(peekhttp.DefaultQueueSize)
		s.Screenshots = &mock.Screenshotter{
			CaptureFn: func(_ context.Context, _ string) (*profilepeek.Snapshot, error) {
				t.Fatal("capture should not be called")
				return nil, nil
			},
		}
		ts := httptest.NewServer(s.Handler())
		defer ts.Close()

		resp := postForm(t, ts, "   ")
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(body), "url"))
	})
}
