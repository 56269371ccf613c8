package mock

import (
	"context"

	"github.com/fwojciec/feedclip"
)

var _ feedclip.Classifier = (*Classifier)(nil)

// Classifier is a mock implementation of feedclip.Classifier.
type Classifier struct {
	ClassifyFn func(ctx context.Context, rec *feedclip.Record) (*feedclip.Classification, error)
}

func (c *Classifier) Classify(ctx context.Context, rec *feedclip.Record) (*feedclip.Classification, error) {
	return c.ClassifyFn(ctx, rec)
}
