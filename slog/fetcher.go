// Package slog provides log/slog decorators for feedclip services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/feedclip"
)

var _ feedclip.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher logs every page load of the wrapped Fetcher.
type LoggingFetcher struct {
	next   feedclip.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher returns a LoggingFetcher delegating to next.
func NewLoggingFetcher(next feedclip.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the page size on success and the error code on failure.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		if err != nil {
			f.logger.Error("fetch failed",
				"url", url,
				"code", feedclip.ErrorCode(err),
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		f.logger.Info("fetch", "url", url, "bytes", len(html), "duration", time.Since(begin))
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close closes the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
