// Package etree renders knowledge-base entries as XML feeds.
package etree

import (
	"fmt"
	"io"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/feedclip"
)

// WriteRSS writes entries as a single RSS 2.0 channel, in the order given.
func WriteRSS(w io.Writer, title string, entries []*feedclip.Entry) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rss := doc.CreateElement("rss")
	rss.CreateAttr("version", "2.0")

	channel := rss.CreateElement("channel")
	channel.CreateElement("title").SetText(title)
	channel.CreateElement("description").SetText("Posts saved to the " + title + " knowledge base")
	if len(entries) > 0 {
		channel.CreateElement("lastBuildDate").SetText(entries[0].CreatedAt.Format(time.RFC1123Z))
	}

	for _, e := range entries {
		item := channel.CreateElement("item")
		item.CreateElement("title").SetText(fmt.Sprintf("%s: %s", e.Name, e.Category))
		if e.Link != feedclip.UnknownURL {
			item.CreateElement("link").SetText(e.Link)
		}
		item.CreateElement("description").SetText(e.Function)
		item.CreateElement("category").SetText(e.Tab)

		guid := item.CreateElement("guid")
		guid.CreateAttr("isPermaLink", "false")
		guid.SetText(e.ID)

		item.CreateElement("pubDate").SetText(e.CreatedAt.Format(time.RFC1123Z))
	}

	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("writing rss: %w", err)
	}
	return nil
}
