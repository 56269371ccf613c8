package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/feedclip"
)

// Ensure LoggingSender implements feedclip.Sender.
var _ feedclip.Sender = (*LoggingSender)(nil)

// LoggingSender wraps a Sender with logging.
type LoggingSender struct {
	next   feedclip.Sender
	logger *slog.Logger
}

// NewLoggingSender creates a new LoggingSender.
func NewLoggingSender(next feedclip.Sender, logger *slog.Logger) *LoggingSender {
	return &LoggingSender{next: next, logger: logger}
}

// Send delegates to the wrapped sender and logs the receipt.
func (s *LoggingSender) Send(ctx context.Context, rec *feedclip.Record) (receipt *feedclip.Receipt, err error) {
	defer func(begin time.Time) {
		if err != nil {
			s.logger.Error("send failed",
				"url", rec.URL,
				"code", feedclip.ErrorCode(err),
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		s.logger.Info("send",
			"url", rec.URL,
			"status", receipt.Status,
			"tab", receipt.Tab,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.Send(ctx, rec)
}
