package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/toplist"
	toplisthttp "github.com/fwojciec/toplist/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>Top 250</body></html>"))
		}))
		defer server.Close()

		fetcher := toplisthttp.NewFetcher()
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>Top 250</body></html>", html)
	})

	t.Run("sends browser user agent and language", func(t *testing.T) {
		t.Parallel()

		headers := make(chan http.Header, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headers <- r.Header.Clone()
		}))
		defer server.Close()

		fetcher := toplisthttp.NewFetcher()
		_, err := fetcher.Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		got := <-headers
		assert.Equal(t, toplisthttp.DefaultUserAgent, got.Get("User-Agent"))
		assert.Contains(t, got.Get("Accept-Language"), "en-US")
	})

	t.Run("respects custom user agent option", func(t *testing.T) {
		t.Parallel()

		userAgents := make(chan string, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userAgents <- r.Header.Get("User-Agent")
		}))
		defer server.Close()

		fetcher := toplisthttp.NewFetcher(toplisthttp.WithUserAgent("toplist-test"))
		_, err := fetcher.Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, "toplist-test", <-userAgents)
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := toplisthttp.NewFetcher(toplisthttp.WithTimeout(10 * time.Millisecond))

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, toplist.ETRANSPORT, toplist.ErrorCode(err))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := toplisthttp.NewFetcher().Fetch(ctx, server.URL)
		require.Error(t, err)
		assert.Equal(t, toplist.ETRANSPORT, toplist.ErrorCode(err))
	})

	t.Run("returns transport error for non-existent host", func(t *testing.T) {
		t.Parallel()

		fetcher := toplisthttp.NewFetcher(toplisthttp.WithTimeout(100 * time.Millisecond))

		_, err := fetcher.Fetch(context.Background(), "http://non-existent-host.invalid/chart/top/")
		require.Error(t, err)
		assert.Equal(t, toplist.ETRANSPORT, toplist.ErrorCode(err))
	})

	t.Run("returns transport error for non-2xx status codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		_, err := toplisthttp.NewFetcher().Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, toplist.ETRANSPORT, toplist.ErrorCode(err))
		assert.Contains(t, err.Error(), "503")
	})

	t.Run("rejects body larger than the limit", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("x", 1025)))
		}))
		defer server.Close()

		fetcher := toplisthttp.NewFetcher(toplisthttp.WithMaxBodySize(1024))
		_, err := fetcher.Fetch(context.Background(), server.URL)

		require.Error(t, err)
		assert.Equal(t, toplist.ETRANSPORT, toplist.ErrorCode(err))
		assert.Contains(t, toplist.ErrorMessage(err), "exceeds 1024 bytes")
	})

	t.Run("accepts body exactly at the limit", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("x", 1024)))
		}))
		defer server.Close()

		fetcher := toplisthttp.NewFetcher(toplisthttp.WithMaxBodySize(1024))
		html, err := fetcher.Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Len(t, html, 1024)
	})

	t.Run("accepts any 2xx status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNonAuthoritativeInfo)
			_, _ = w.Write([]byte("cached"))
		}))
		defer server.Close()

		html, err := toplisthttp.NewFetcher().Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "cached", html)
	})
}
