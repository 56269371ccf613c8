// Package extract reads one feed item out of a parsed page.
// It finds the item enclosing a user-indicated node and resolves its
// author, body text and canonical URL through ordered fallback chains.
package extract

import (
	"log/slog"

	"github.com/fwojciec/feedclip"
)

var _ feedclip.Extractor = (*Extractor)(nil)

// Extractor resolves feed items using structural patterns.
// It holds no per-call state and is safe for concurrent use.
type Extractor struct {
	// Patterns used to read items. Defaults to feedclip.DefaultPatterns.
	Patterns *feedclip.Patterns

	// PageURLFallback makes the external link search report the page's own
	// address when a region holds no qualifying link, so body and reply
	// tiers succeed with it instead of falling through to the permalink.
	PageURLFallback bool

	// Logger receives reply scan faults. Defaults to discarding.
	Logger *slog.Logger
}

// Extract locates the feed item enclosing start and resolves its fields.
// Returns ENOTFOUND if start is nil or no enclosing item is recognized.
func (e *Extractor) Extract(start feedclip.Node) (*feedclip.Record, error) {
	p := e.patterns()

	container := locate(start, p.Container)
	if container == nil {
		return nil, feedclip.Errorf(feedclip.ENOTFOUND, "could not find post container")
	}

	author := resolveAuthor(container, p.Author)
	return &feedclip.Record{
		Text:   resolveText(container, p.Text),
		Author: author,
		URL:    e.resolveURL(container, author),
	}, nil
}

func (e *Extractor) patterns() *feedclip.Patterns {
	if e.Patterns == nil {
		return feedclip.DefaultPatterns()
	}
	return e.Patterns
}

func (e *Extractor) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}

// locate returns the nearest inclusive ancestor of start matching any of
// sels, or nil.
func locate(start feedclip.Node, sels []feedclip.Selector) feedclip.Node {
	for n := start; n != nil; n = n.Parent() {
		if matchesAny(n, sels) {
			return n
		}
	}
	return nil
}
