package mock

import (
	"context"

	"github.com/fwojciec/feedclip"
)

var (
	_ feedclip.Sender          = (*Sender)(nil)
	_ feedclip.RecordProcessor = (*RecordProcessor)(nil)
)

// Sender is a mock implementation of feedclip.Sender.
type Sender struct {
	SendFn func(ctx context.Context, rec *feedclip.Record) (*feedclip.Receipt, error)
}

func (s *Sender) Send(ctx context.Context, rec *feedclip.Record) (*feedclip.Receipt, error) {
	return s.SendFn(ctx, rec)
}

// RecordProcessor is a mock implementation of feedclip.RecordProcessor.
type RecordProcessor struct {
	ProcessFn func(ctx context.Context, rec *feedclip.Record) (*feedclip.Receipt, error)
}

func (p *RecordProcessor) Process(ctx context.Context, rec *feedclip.Record) (*feedclip.Receipt, error) {
	return p.ProcessFn(ctx, rec)
}
