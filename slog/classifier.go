package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/feedclip"
)

// Ensure LoggingClassifier implements feedclip.Classifier.
var _ feedclip.Classifier = (*LoggingClassifier)(nil)

// LoggingClassifier wraps a Classifier with logging.
type LoggingClassifier struct {
	next   feedclip.Classifier
	logger *slog.Logger
}

// NewLoggingClassifier creates a new LoggingClassifier.
func NewLoggingClassifier(next feedclip.Classifier, logger *slog.Logger) *LoggingClassifier {
	return &LoggingClassifier{next: next, logger: logger}
}

// Classify delegates to the wrapped classifier and logs the category.
// Failures are logged at warn level since they degrade the saved entry.
func (c *LoggingClassifier) Classify(ctx context.Context, rec *feedclip.Record) (cls *feedclip.Classification, err error) {
	defer func(begin time.Time) {
		if err != nil {
			c.logger.Warn("classify", "url", rec.URL, "duration", time.Since(begin), "err", err)
			return
		}
		c.logger.Info("classify",
			"url", rec.URL,
			"category", cls.Category,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return c.next.Classify(ctx, rec)
}
