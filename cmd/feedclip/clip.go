package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/feedclip"
	"github.com/fwojciec/feedclip/extract"
	"github.com/fwojciec/feedclip/goquery"
	feedclipslog "github.com/fwojciec/feedclip/slog"
)

// Run executes the clip command.
func (c *ClipCmd) Run(deps *Dependencies) error {
	if c.URL == "" && c.File == "" {
		err := feedclip.Errorf(feedclip.EINVALID, "either --url or --file is required")
		fmt.Fprintf(deps.Stderr, "error: %s\n", feedclip.ErrorMessage(err))
		return err
	}

	patterns, err := loadPatterns(c.Patterns)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", feedclip.ErrorMessage(err))
		return err
	}

	doc, err := c.document(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", feedclip.ErrorMessage(err))
		return err
	}

	var extractor feedclip.Extractor = &extract.Extractor{
		Patterns:        patterns,
		PageURLFallback: c.PageURLFallback,
		Logger:          deps.Logger,
	}
	if deps.Logger != nil {
		extractor = feedclipslog.NewLoggingExtractor(extractor, deps.Logger)
	}

	starts, err := c.starts(deps, doc, patterns)
	if err != nil {
		return err
	}

	records := make([]*feedclip.Record, 0, len(starts))
	seen := make(map[feedclip.Record]bool)
	for _, start := range starts {
		rec, err := extractor.Extract(start)
		if err != nil {
			fmt.Fprintln(deps.Stderr, extractMessage(err))
			return err
		}
		// Nested item signatures resolve to the same record.
		if seen[*rec] {
			continue
		}
		seen[*rec] = true
		records = append(records, rec)
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}

	if deps.Sender == nil {
		return nil
	}
	for _, rec := range records {
		receipt, err := deps.Sender.Send(deps.Ctx, rec)
		if err != nil {
			fmt.Fprintln(deps.Stderr, sendMessage(err, c.Endpoint))
			return err
		}
		fmt.Fprintln(deps.Stdout, receiptMessage(receipt))
	}
	return nil
}

func (c *ClipCmd) document(deps *Dependencies) (*goquery.Document, error) {
	var html string
	if c.File != "" {
		b, err := os.ReadFile(c.File)
		if err != nil {
			return nil, feedclip.Errorf(feedclip.EINVALID, "cannot read %s: %v", c.File, err)
		}
		html = string(b)
	} else {
		var err error
		if html, err = deps.Fetcher.Fetch(deps.Ctx, c.URL); err != nil {
			return nil, err
		}
	}
	return goquery.NewDocument(html, c.URL)
}

// starts returns the nodes extraction begins at: every match of the
// target selectors, or every feed item when no target is given.
func (c *ClipCmd) starts(deps *Dependencies, doc *goquery.Document, p *feedclip.Patterns) ([]feedclip.Node, error) {
	if len(c.Target) == 0 {
		items := make([]string, len(p.Container))
		for i, sel := range p.Container {
			items[i] = string(sel)
		}
		nodes, err := doc.Find(feedclip.Selector(strings.Join(items, ", ")))
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", feedclip.ErrorMessage(err))
			return nil, err
		}
		if len(nodes) == 0 {
			err := feedclip.Errorf(feedclip.ENOTFOUND, "no feed items on page")
			fmt.Fprintln(deps.Stderr, extractMessage(err))
			return nil, err
		}
		return nodes, nil
	}

	var starts []feedclip.Node
	for _, target := range c.Target {
		nodes, err := doc.Find(feedclip.Selector(target))
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", feedclip.ErrorMessage(err))
			return nil, err
		}
		if len(nodes) == 0 {
			err := feedclip.Errorf(feedclip.ENOTFOUND, "no element matches %s", target)
			fmt.Fprintf(deps.Stderr, "Error: no element matches %s\n", target)
			return nil, err
		}
		starts = append(starts, nodes...)
	}
	return starts, nil
}
