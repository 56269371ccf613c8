package http

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/fwojciec/feedclip"
)

// MaxPageBytes caps how much of a page Fetch reads.
const MaxPageBytes = 10 << 20

// userAgent is sent with page requests; some feeds serve an empty shell
// to clients without one.
const userAgent = "Mozilla/5.0 (compatible; feedclip/1.0)"

// Ensure Fetcher implements feedclip.Fetcher at compile time.
var _ feedclip.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves server-rendered pages over HTTP.
// Unlike rod.Fetcher it does not run scripts, so it only sees feed
// markup that is present in the response.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	o := newOptions(opts)
	return &Fetcher{
		client: &http.Client{Timeout: o.timeout},
	}
}

// Fetch returns the body of the page at url. It returns ENOTFOUND for a
// missing page and EUNAVAILABLE for any other unsuccessful status.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", feedclip.Errorf(feedclip.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return "", feedclip.Errorf(feedclip.ENOTFOUND, "page not found: %s", url)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", feedclip.Errorf(feedclip.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxPageBytes))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", url, err)
	}
	return string(body), nil
}

// Close is a no-op; the underlying http.Client holds no resources
// that need releasing.
func (f *Fetcher) Close() error {
	return nil
}
