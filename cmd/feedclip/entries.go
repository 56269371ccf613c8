package main

import (
	"fmt"

	"github.com/fwojciec/feedclip"
	"github.com/fwojciec/feedclip/etree"
)

// Run executes the entries command.
func (c *EntriesCmd) Run(deps *Dependencies) error {
	filter := feedclip.EntryFilter{Limit: c.Limit}
	if c.Tab != "" {
		filter.Tab = &c.Tab
	}

	entries, err := deps.Entries.FindEntries(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", feedclip.ErrorMessage(err))
		return err
	}

	if c.Format == "rss" {
		return etree.WriteRSS(deps.Stdout, "feedclip", entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(deps.Stdout, "No entries found. Use 'feedclip clip --send' to save one.")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s  %s\n",
			e.CreatedAt.Format("2006-01-02 15:04:05"), e.Tab, e.Category, e.Name, e.Link)
		if e.Function != "" {
			fmt.Fprintf(deps.Stdout, "    %s\n", e.Function)
		}
	}
	return nil
}
