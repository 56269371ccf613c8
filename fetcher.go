package feedclip

import "context"

// Fetcher loads the markup of a feed page.
type Fetcher interface {
	// Fetch returns the page's HTML. Browser-backed implementations
	// return the DOM after scripts have run.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any browser or connection held by the Fetcher.
	Close() error
}
