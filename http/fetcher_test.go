package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/feedclip"
	feedcliphttp "github.com/fwojciec/feedclip/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ feedclip.Fetcher = (*feedcliphttp.Fetcher)(nil)

const feedHTML = `<html><body><div data-urn="urn:li:activity:1">Hi</div></body></html>`

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns the page body", func(t *testing.T) {
		t.Parallel()

		var agent string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			agent = r.Header.Get("User-Agent")
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(feedHTML))
		}))
		defer srv.Close()

		html, err := feedcliphttp.NewFetcher().Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Equal(t, feedHTML, html)
		assert.Contains(t, agent, "feedclip")
	})

	t.Run("truncates oversized pages", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("a", feedcliphttp.MaxPageBytes+10)))
		}))
		defer srv.Close()

		html, err := feedcliphttp.NewFetcher().Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Len(t, html, feedcliphttp.MaxPageBytes)
	})

	t.Run("classifies unsuccessful statuses", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			status int
			code   string
		}{
			{http.StatusNotFound, feedclip.ENOTFOUND},
			{http.StatusGone, feedclip.ENOTFOUND},
			{http.StatusUnauthorized, feedclip.EUNAVAILABLE},
			{http.StatusTooManyRequests, feedclip.EUNAVAILABLE},
			{http.StatusInternalServerError, feedclip.EUNAVAILABLE},
		}
		for _, tt := range tests {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))

			_, err := feedcliphttp.NewFetcher().Fetch(context.Background(), srv.URL)
			srv.Close()

			require.Error(t, err, "status %d", tt.status)
			assert.Equal(t, tt.code, feedclip.ErrorCode(err), "status %d", tt.status)
		}
	})

	t.Run("gives up after the configured timeout", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte(feedHTML))
		}))
		defer srv.Close()

		f := feedcliphttp.NewFetcher(feedcliphttp.WithTimeout(10 * time.Millisecond))
		_, err := f.Fetch(context.Background(), srv.URL)

		require.Error(t, err)
	})

	t.Run("honors a canceled context", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(feedHTML))
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := feedcliphttp.NewFetcher().Fetch(ctx, srv.URL)

		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("returns EINVALID for a malformed URL", func(t *testing.T) {
		t.Parallel()

		_, err := feedcliphttp.NewFetcher().Fetch(context.Background(), "http://[::1")

		require.Error(t, err)
		assert.Equal(t, feedclip.EINVALID, feedclip.ErrorCode(err))
	})
}
