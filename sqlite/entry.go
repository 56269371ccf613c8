package sqlite

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/feedclip"
	"github.com/google/uuid"
	"github.com/ncruces/go-sqlite3"
)

// Compile-time interface verification.
var _ feedclip.EntryService = (*EntryService)(nil)

// EntryService implements feedclip.EntryService using SQLite.
type EntryService struct {
	db *DB
}

// NewEntryService creates a new EntryService.
func NewEntryService(db *DB) *EntryService {
	return &EntryService{db: db}
}

// CreateEntry files a new entry. Returns ECONFLICT if an entry with the
// same content hash already exists.
func (s *EntryService) CreateEntry(ctx context.Context, entry *feedclip.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	entry.ID = uuid.New().String()
	entry.CreatedAt = time.Now().UTC().Truncate(time.Second)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entries (id, tab, link, name, function, category, content_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Tab, entry.Link, entry.Name, entry.Function, string(entry.Category),
		entry.ContentHash, entry.CreatedAt.Format(time.RFC3339))

	if errors.Is(err, sqlite3.CONSTRAINT_UNIQUE) {
		return feedclip.Errorf(feedclip.ECONFLICT, "entry with the same content already exists")
	}
	return err
}

// FindEntries retrieves entries matching the filter, newest first.
func (s *EntryService) FindEntries(ctx context.Context, filter feedclip.EntryFilter) ([]*feedclip.Entry, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, tab, link, name, function, category, content_hash, created_at FROM entries WHERE 1=1")

	if filter.Tab != nil {
		query.WriteString(" AND tab = ?")
		args = append(args, *filter.Tab)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*feedclip.Entry
	for rows.Next() {
		var entry feedclip.Entry
		var category, createdAt string

		if err := rows.Scan(&entry.ID, &entry.Tab, &entry.Link, &entry.Name, &entry.Function,
			&category, &entry.ContentHash, &createdAt); err != nil {
			return nil, err
		}

		entry.Category = feedclip.Category(category)
		if entry.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
