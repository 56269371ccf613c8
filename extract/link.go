package extract

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fwojciec/feedclip"
)

// resolveURL runs the URL tiers in order: an external link in the body, an
// external link in a reply written by the item's author, then the
// item's permalink.
func (e *Extractor) resolveURL(container feedclip.Node, author string) string {
	p := e.patterns()

	if region := bodyRegion(container, p.Text); region != nil {
		if link, ok := e.firstExternalLink(region); ok {
			return link
		}
	}
	if link, ok := e.replyLink(container, author); ok {
		return link
	}
	return permalink(container, p)
}

// replyLink returns the first external link found in a reply by author.
// Faults while scanning, including panics raised by the node
// implementation, are logged and reported as no link.
func (e *Extractor) replyLink(container feedclip.Node, author string) (link string, ok bool) {
	if author == feedclip.UnknownAuthor {
		return "", false
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger().Debug("reply scan fault", "err", fmt.Sprint(r))
			link, ok = "", false
		}
	}()

	link, err := e.scanReplies(container, author)
	if err != nil {
		e.logger().Debug("reply scan fault", "err", err)
		return "", false
	}
	return link, link != ""
}

func (e *Extractor) scanReplies(container feedclip.Node, author string) (string, error) {
	p := e.patterns()

	list := first(container, p.ReplyList)
	if list == nil {
		return "", nil
	}

	for i, item := range all(list, p.ReplyItem) {
		name, found := replyAuthor(item, p.ReplyAuthor)
		if !found {
			return "", feedclip.Errorf(feedclip.EINVALID, "reply %d has no author element", i)
		}
		if !sameIdentity(author, name) {
			continue
		}

		body := first(item, p.ReplyBody)
		if body == nil {
			return "", feedclip.Errorf(feedclip.EINVALID, "reply %d by %q has no body region", i, name)
		}
		if link, ok := e.firstExternalLink(body); ok {
			return link, nil
		}
	}
	return "", nil
}

// replyAuthor applies the author rule to a reply. found is false when no
// author element exists at all.
func replyAuthor(item feedclip.Node, sels []feedclip.Selector) (name string, found bool) {
	for _, sel := range sels {
		n := first(item, []feedclip.Selector{sel})
		if n == nil {
			continue
		}
		found = true
		if name = firstLine(n.Text()); name != "" {
			return name, true
		}
	}
	return "", found
}

// firstExternalLink returns the first link target under region, in document
// order, that points outside the platform.
func (e *Extractor) firstExternalLink(region feedclip.Node) (string, bool) {
	p := e.patterns()

	var link string
	walk(region, func(n feedclip.Node) bool {
		href, ok := n.Href()
		if ok && isExternal(href, p) {
			link = href
			return false
		}
		return true
	})
	if link != "" {
		return link, true
	}

	if e.PageURLFallback {
		if page := region.PageURL(); page != "" {
			return page, true
		}
	}
	return "", false
}

// isExternal reports whether raw is an http(s) link to a host outside the
// platform domains whose path is not a tag or category page.
func isExternal(raw string, p *feedclip.Patterns) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if scheme := strings.ToLower(u.Scheme); scheme != "http" && scheme != "https" {
		return false
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}
	for _, domain := range p.PlatformDomains {
		domain = strings.ToLower(domain)
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return false
		}
	}
	for _, marker := range p.InternalPaths {
		if marker != "" && strings.Contains(u.Path, marker) {
			return false
		}
	}
	return true
}

// permalink builds the item's canonical address from its identifier
// attribute, else from its timestamp link without tracking parameters.
func permalink(container feedclip.Node, p *feedclip.Patterns) string {
	if p.PermalinkAttr != "" {
		if id, ok := container.Attr(p.PermalinkAttr); ok && strings.TrimSpace(id) != "" {
			return p.PermalinkBase + strings.TrimSpace(id)
		}
	}

	if ts := first(container, p.Timestamp); ts != nil {
		if href, ok := ts.Href(); ok {
			href, _, _ = strings.Cut(href, "?")
			return href
		}
	}
	return feedclip.UnknownURL
}
