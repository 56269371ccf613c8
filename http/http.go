// Package http provides net/http implementations of feedclip.Fetcher and
// feedclip.Sender.
package http

import "time"

// DefaultTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultTimeout = 10 * time.Second

type options struct {
	timeout time.Duration
}

// Option configures a Fetcher or Sender.
type Option func(*options)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

func newOptions(opts []Option) options {
	o := options{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
