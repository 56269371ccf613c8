// Package bloom provides a Bloom filter of saved content hashes.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/feedclip"
)

var _ feedclip.SeenFilter = (*Filter)(nil)

// Filter is a Bloom filter safe for concurrent use.
type Filter struct {
	mu sync.RWMutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a content hash.
func (f *Filter) Add(hash string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.f.AddString(hash)
}

// Test returns true if the hash might have been added.
// False positives are possible; false negatives are not.
func (f *Filter) Test(hash string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.f.TestString(hash)
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return uint(f.f.ApproximatedSize())
}
