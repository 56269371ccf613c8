package feedclip

import (
	"context"
	"time"
)

// Entry is a record filed into the knowledge base.
type Entry struct {
	ID          string    `json:"id"`
	Tab         string    `json:"tab"`
	Link        string    `json:"link"`
	Name        string    `json:"name"`
	Function    string    `json:"function"` // summary of what the post offers
	Category    Category  `json:"category"`
	ContentHash string    `json:"contentHash"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate returns an error if the entry contains invalid fields.
func (e *Entry) Validate() error {
	if e.Tab == "" {
		return Errorf(EINVALID, "entry tab required")
	}
	if e.Link == "" {
		return Errorf(EINVALID, "entry link required")
	}
	if e.Category == "" {
		return Errorf(EINVALID, "entry category required")
	}
	return nil
}

// EntryService represents a service for managing knowledge-base entries.
type EntryService interface {
	// CreateEntry files a new entry.
	CreateEntry(ctx context.Context, entry *Entry) error

	// FindEntries retrieves entries matching the filter, newest first.
	FindEntries(ctx context.Context, filter EntryFilter) ([]*Entry, error)
}

// EntryFilter represents a filter for FindEntries.
type EntryFilter struct {
	Tab         *string `json:"tab"`
	ContentHash *string `json:"contentHash"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// SeenFilter is a probabilistic set of content hashes. Test may report
// false positives but never false negatives.
type SeenFilter interface {
	Add(hash string)
	Test(hash string) bool
}
