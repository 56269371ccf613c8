package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/feedclip"
)

// Ensure LoggingExtractor implements feedclip.Extractor.
var _ feedclip.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   feedclip.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next feedclip.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the resolved fields.
func (e *LoggingExtractor) Extract(start feedclip.Node) (rec *feedclip.Record, err error) {
	defer func(begin time.Time) {
		attrs := []any{"duration", time.Since(begin), "err", err}
		if rec != nil {
			attrs = append(attrs,
				"author", rec.Author,
				"url", rec.URL,
				"chars", len([]rune(rec.Text)),
			)
		}
		e.logger.Debug("extract", attrs...)
	}(time.Now())
	return e.next.Extract(start)
}
