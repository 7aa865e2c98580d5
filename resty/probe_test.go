package resty_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/profilepeek/profilepeek"
	"github.com/profilepeek/profilepeek/resty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbe_Extract(t *testing.T) {
	t.Parallel()

	t.Run("finds a numeric count at a nested key path", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"userInfo":{"stats":{"followerCount":1523400}}}`))
		}))
		defer srv.Close()

		probe := resty.NewProbe(resty.WithEndpoints([]string{srv.URL + "/api/user/detail/?uniqueId=%s"}))

		raw, err := probe.Extract(context.Background(), "someuser")

		require.NoError(t, err)
		assert.Equal(t, "1523400", raw)
	})

	t.Run("accepts a digit string value", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":{"follower_count":"42000"}}`))
		}))
		defer srv.Close()

		probe := resty.NewProbe(resty.WithEndpoints([]string{srv.URL + "/?user=%s"}))

		raw, err := probe.Extract(context.Background(), "someuser")

		require.NoError(t, err)
		assert.Equal(t, "42000", raw)
	})

	t.Run("rejects non-numeric values at a known path", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":{"follower_count":"lots"}}`))
		}))
		defer srv.Close()

		probe := resty.NewProbe(resty.WithEndpoints([]string{srv.URL + "/?user=%s"}))

		_, err := probe.Extract(context.Background(), "someuser")

		assert.Equal(t, profilepeek.ENOTFOUND, profilepeek.ErrorCode(err))
	})

	t.Run("interpolates the username into the endpoint", func(t *testing.T) {
		t.Parallel()

		var gotQuery string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			_, _ = w.Write([]byte(`{"data":{"follower_count":1}}`))
		}))
		defer srv.Close()

		probe := resty.NewProbe(resty.WithEndpoints([]string{srv.URL + "/?uniqueId=%s"}))

		_, err := probe.Extract(context.Background(), "someuser")

		require.NoError(t, err)
		assert.Equal(t, "uniqueId=someuser", gotQuery)
	})

	t.Run("falls through a failing endpoint to the next one", func(t *testing.T) {
		t.Parallel()

		bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusNotFound)
		}))
		defer bad.Close()

		good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"userInfo":{"stats":{"followerCount":"77"}}}`))
		}))
		defer good.Close()

		probe := resty.NewProbe(resty.WithEndpoints([]string{
			bad.URL + "/?user=%s",
			good.URL + "/?user=%s",
		}))

		raw, err := probe.Extract(context.Background(), "someuser")

		require.NoError(t, err)
		assert.Equal(t, "77", raw)
	})

	t.Run("returns ENOTFOUND when every endpoint fails", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		probe := resty.NewProbe(resty.WithEndpoints([]string{srv.URL + "/?user=%s"}))

		_, err := probe.Extract(context.Background(), "someuser")

		assert.Equal(t, profilepeek.ENOTFOUND, profilepeek.ErrorCode(err))
	})
}
