package mock

import "github.com/fwojciec/feedclip"

var _ feedclip.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of feedclip.Extractor.
type Extractor struct {
	ExtractFn func(start feedclip.Node) (*feedclip.Record, error)
}

func (e *Extractor) Extract(start feedclip.Node) (*feedclip.Record, error) {
	return e.ExtractFn(start)
}
