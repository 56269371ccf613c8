// Package rod implements feedclip.Fetcher with a headless Chrome browser,
// for feeds that only render client side.
package rod

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fwojciec/feedclip"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single Fetch, including waiting for the
// feed to render.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements feedclip.Fetcher at compile time.
var _ feedclip.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	closed   atomic.Bool

	timeout      time.Duration
	userDataDir  string
	waitSelector feedclip.Selector
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-fetch timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserDataDir runs Chrome with an existing profile directory so that
// pages behind a login can be fetched with the profile's session.
func WithUserDataDir(dir string) Option {
	return func(f *Fetcher) {
		f.userDataDir = dir
	}
}

// WithWaitSelector makes Fetch wait until an element matching sel exists
// before serializing the page.
func WithWaitSelector(sel feedclip.Selector) Option {
	return func(f *Fetcher) {
		f.waitSelector = sel
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}

	// Finds or downloads Chrome.
	l := launcher.New().Headless(true)
	if f.userDataDir != "" {
		l = l.UserDataDir(f.userDataDir)
	}
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launcher = l
	return f, nil
}

// LauncherPID returns the process ID of the launched browser.
func (f *Fetcher) LauncherPID() int {
	return f.launcher.PID()
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", feedclip.Errorf(feedclip.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	if f.waitSelector != "" {
		if _, err := page.Element(string(f.waitSelector)); err != nil {
			return "", fmt.Errorf("waiting for %s: %w", f.waitSelector, err)
		}
	}

	return page.HTML()
}

// Close releases browser resources. It is safe to call more than once.
func (f *Fetcher) Close() error {
	if f.closed.Swap(true) {
		return nil
	}
	err := f.browser.Close()
	f.launcher.Kill()
	return err
}
