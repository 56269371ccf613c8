package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/feedclip"
)

// Ensure LoggingProcessor implements feedclip.RecordProcessor.
var _ feedclip.RecordProcessor = (*LoggingProcessor)(nil)

// LoggingProcessor wraps a RecordProcessor with logging.
type LoggingProcessor struct {
	next   feedclip.RecordProcessor
	logger *slog.Logger
}

// NewLoggingProcessor creates a new LoggingProcessor.
func NewLoggingProcessor(next feedclip.RecordProcessor, logger *slog.Logger) *LoggingProcessor {
	return &LoggingProcessor{next: next, logger: logger}
}

// Process delegates to the wrapped processor and logs the outcome.
func (p *LoggingProcessor) Process(ctx context.Context, rec *feedclip.Record) (receipt *feedclip.Receipt, err error) {
	defer func(begin time.Time) {
		attrs := []any{"author", rec.Author, "url", rec.URL, "duration", time.Since(begin)}
		if receipt != nil {
			attrs = append(attrs,
				"status", receipt.Status,
				"category", receipt.Category,
				"tab", receipt.Tab,
			)
		}
		if err != nil {
			attrs = append(attrs, "code", feedclip.ErrorCode(err), "err", feedclip.ErrorMessage(err))
		}
		p.logger.Info("process", attrs...)
	}(time.Now())
	return p.next.Process(ctx, rec)
}
