package mock

import (
	"context"

	"github.com/fwojciec/feedclip"
)

var (
	_ feedclip.EntryService = (*EntryService)(nil)
	_ feedclip.SeenFilter   = (*SeenFilter)(nil)
)

// EntryService is a mock implementation of feedclip.EntryService.
type EntryService struct {
	CreateEntryFn func(ctx context.Context, entry *feedclip.Entry) error
	FindEntriesFn func(ctx context.Context, filter feedclip.EntryFilter) ([]*feedclip.Entry, error)
}

func (s *EntryService) CreateEntry(ctx context.Context, entry *feedclip.Entry) error {
	return s.CreateEntryFn(ctx, entry)
}

func (s *EntryService) FindEntries(ctx context.Context, filter feedclip.EntryFilter) ([]*feedclip.Entry, error) {
	return s.FindEntriesFn(ctx, filter)
}

// SeenFilter is a mock implementation of feedclip.SeenFilter.
type SeenFilter struct {
	AddFn  func(hash string)
	TestFn func(hash string) bool
}

func (f *SeenFilter) Add(hash string) {
	f.AddFn(hash)
}

func (f *SeenFilter) Test(hash string) bool {
	return f.TestFn(hash)
}
