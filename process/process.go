// Package process files extracted records into the knowledge base.
// It deduplicates by content, classifies new records within a request
// quota and routes them to the tab of their category.
package process

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/feedclip"
	"golang.org/x/time/rate"
)

// fallbackPrefix starts the summary stored when classification fails.
const fallbackPrefix = "Error processing using AI. Raw text: "

// fallbackRunes is how much of the raw text a fallback summary quotes.
const fallbackRunes = 50

var _ feedclip.RecordProcessor = (*Processor)(nil)

// Processor implements feedclip.RecordProcessor.
type Processor struct {
	// Entries is the knowledge base. A nil value means it is not connected.
	Entries feedclip.EntryService

	// Classifier summarizes and categorizes new records. A nil value
	// files every record with the fallback classification.
	Classifier feedclip.Classifier

	// Seen short-circuits duplicate lookups for content never saved.
	Seen feedclip.SeenFilter

	// Limiter bounds classification calls. Nil means unlimited.
	Limiter *rate.Limiter
}

// NewLimiter returns a limiter allowing rpm classification calls per
// minute, or nil when rpm is not positive.
func NewLimiter(rpm int) *rate.Limiter {
	if rpm <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1)
}

// HashContent returns the hex xxHash of the trimmed record text.
func HashContent(text string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(strings.TrimSpace(text)))
}

// ContentKey returns the duplicate-detection key of rec. Records without
// body text all share the text sentinel, so they are told apart by URL;
// with no URL either they get "" and are never treated as duplicates.
func ContentKey(rec *feedclip.Record) string {
	if rec.Text != feedclip.TextNotFound {
		return HashContent(rec.Text)
	}
	if rec.URL == "" || rec.URL == feedclip.UnknownURL {
		return ""
	}
	return HashContent(rec.Text + "\n" + rec.URL)
}

// LoadSeen adds the hash of every stored entry to the Seen filter and
// returns how many were added.
func (p *Processor) LoadSeen(ctx context.Context) (int, error) {
	if p.Seen == nil || p.Entries == nil {
		return 0, nil
	}

	entries, err := p.Entries.FindEntries(ctx, feedclip.EntryFilter{})
	if err != nil {
		return 0, err
	}

	n := 0
	for _, e := range entries {
		if e.ContentHash != "" {
			p.Seen.Add(e.ContentHash)
			n++
		}
	}
	return n, nil
}

// Process classifies rec and files it. Records whose text was saved
// before are reported as duplicates without being classified again.
func (p *Processor) Process(ctx context.Context, rec *feedclip.Record) (*feedclip.Receipt, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	if p.Entries == nil {
		return nil, feedclip.Errorf(feedclip.EUNAVAILABLE, "knowledge base connection not active")
	}

	hash := ContentKey(rec)
	if existing, err := p.findByHash(ctx, hash); err != nil {
		return nil, feedclip.Errorf(feedclip.EINTERNAL, "failed to query knowledge base: %s", describe(err))
	} else if existing != nil {
		return duplicateReceipt(existing), nil
	}

	cls := p.classify(ctx, rec)

	entry := &feedclip.Entry{
		Tab:         feedclip.TabForCategory(cls.Category),
		Link:        rec.URL,
		Name:        rec.Author,
		Function:    cls.Summary,
		Category:    cls.Category,
		ContentHash: hash,
	}
	if entry.Link == "" {
		entry.Link = feedclip.UnknownURL
	}
	if cls.Author != "" && cls.Author != feedclip.UnknownAuthor {
		entry.Name = cls.Author
	}

	if err := p.Entries.CreateEntry(ctx, entry); err != nil {
		if feedclip.ErrorCode(err) == feedclip.ECONFLICT {
			// Another writer saved it first; the filter may not know yet.
			if existing, ferr := p.lookup(ctx, hash); ferr == nil && existing != nil {
				p.remember(hash)
				return duplicateReceipt(existing), nil
			}
		}
		return nil, feedclip.Errorf(feedclip.EINTERNAL, "failed to save to knowledge base: %s", describe(err))
	}
	p.remember(hash)

	return &feedclip.Receipt{
		Status:   feedclip.StatusSuccess,
		Category: string(entry.Category),
		Summary:  entry.Function,
		Tab:      entry.Tab,
	}, nil
}

// findByHash returns the stored entry with hash, consulting the Seen
// filter first.
func (p *Processor) findByHash(ctx context.Context, hash string) (*feedclip.Entry, error) {
	if hash == "" {
		return nil, nil
	}
	if p.Seen != nil && !p.Seen.Test(hash) {
		return nil, nil
	}
	return p.lookup(ctx, hash)
}

func (p *Processor) lookup(ctx context.Context, hash string) (*feedclip.Entry, error) {
	entries, err := p.Entries.FindEntries(ctx, feedclip.EntryFilter{ContentHash: &hash, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return entries[0], nil
}

func (p *Processor) remember(hash string) {
	if p.Seen != nil && hash != "" {
		p.Seen.Add(hash)
	}
}

// classify never fails: quota waits cut short by ctx and classifier
// errors both yield the fallback classification.
func (p *Processor) classify(ctx context.Context, rec *feedclip.Record) *feedclip.Classification {
	if p.Classifier == nil {
		return fallback(rec)
	}
	if p.Limiter != nil {
		if err := p.Limiter.Wait(ctx); err != nil {
			return fallback(rec)
		}
	}

	cls, err := p.Classifier.Classify(ctx, rec)
	if err != nil || cls == nil {
		return fallback(rec)
	}
	if cls.Category == "" {
		cls.Category = feedclip.CategoryGeneralAI
	}
	return cls
}

func fallback(rec *feedclip.Record) *feedclip.Classification {
	text := []rune(rec.Text)
	if len(text) > fallbackRunes {
		text = text[:fallbackRunes]
	}
	return &feedclip.Classification{
		Summary:  fallbackPrefix + string(text) + "...",
		Category: feedclip.CategoryGeneralAI,
	}
}

func duplicateReceipt(e *feedclip.Entry) *feedclip.Receipt {
	return &feedclip.Receipt{
		Status:   feedclip.StatusDuplicate,
		Category: string(e.Category),
		Summary:  e.Function,
		Tab:      e.Tab,
	}
}

// describe returns the message of an application error or the text of
// any other error.
func describe(err error) string {
	var e *feedclip.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
