// Package goquery exposes parsed HTML documents as feedclip nodes.
package goquery

import (
	"net/url"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/feedclip"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed HTML page whose elements are exposed as feedclip.Node.
// Document is read-only after parsing and safe for concurrent use.
type Document struct {
	doc  *goquery.Document
	base *url.URL

	mu        sync.RWMutex
	selectors map[feedclip.Selector]cascadia.Selector
}

// NewDocument parses rawHTML as the page found at pageURL.
// Relative link targets are resolved against pageURL.
func NewDocument(rawHTML string, pageURL string) (*Document, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, feedclip.Errorf(feedclip.EINVALID, "invalid page URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, feedclip.Errorf(feedclip.EINVALID, "failed to parse HTML: %v", err)
	}
	doc.Url = base

	return &Document{
		doc:       doc,
		base:      base,
		selectors: make(map[feedclip.Selector]cascadia.Selector),
	}, nil
}

// URL returns the page address the document was parsed with.
func (d *Document) URL() string {
	return d.base.String()
}

// Find returns the elements matching sel in document order.
// Returns EINVALID if sel is not a valid CSS selector.
func (d *Document) Find(sel feedclip.Selector) ([]feedclip.Node, error) {
	m, err := d.compile(sel)
	if err != nil {
		return nil, feedclip.Errorf(feedclip.EINVALID, "invalid selector %q: %v", sel, err)
	}

	var nodes []feedclip.Node
	d.doc.FindMatcher(m).Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, d.wrap(s.Get(0)))
	})
	return nodes, nil
}

// First returns the first element matching sel in document order.
// Returns ENOTFOUND if nothing matches and EINVALID if sel is not valid.
func (d *Document) First(sel feedclip.Selector) (feedclip.Node, error) {
	m, err := d.compile(sel)
	if err != nil {
		return nil, feedclip.Errorf(feedclip.EINVALID, "invalid selector %q: %v", sel, err)
	}

	found := d.doc.FindMatcher(m).First()
	if found.Length() == 0 {
		return nil, feedclip.Errorf(feedclip.ENOTFOUND, "no element matches %s", sel)
	}
	return d.wrap(found.Get(0)), nil
}

// compile returns the cached matcher for sel, compiling it on first use.
func (d *Document) compile(sel feedclip.Selector) (cascadia.Selector, error) {
	d.mu.RLock()
	m, ok := d.selectors[sel]
	d.mu.RUnlock()
	if ok {
		return m, nil
	}

	m, err := cascadia.Compile(string(sel))
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	d.selectors[sel] = m
	d.mu.Unlock()
	return m, nil
}

// wrap returns n as a feedclip.Node, or an untyped nil for a nil node.
func (d *Document) wrap(n *html.Node) feedclip.Node {
	if n == nil {
		return nil
	}
	return &node{doc: d, n: n}
}

var _ feedclip.Node = (*node)(nil)

// node is an element of a Document.
type node struct {
	doc *Document
	n   *html.Node
}

func (n *node) Parent() feedclip.Node {
	for p := n.n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return n.doc.wrap(p)
		}
	}
	return nil
}

func (n *node) Children() []feedclip.Node {
	var children []feedclip.Node
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			children = append(children, n.doc.wrap(c))
		}
	}
	return children
}

func (n *node) Matches(sel feedclip.Selector) bool {
	m, err := n.doc.compile(sel)
	if err != nil {
		return false
	}
	return m.Match(n.n)
}

func (n *node) Text() string {
	return visibleText(n.n)
}

func (n *node) Attr(name string) (string, bool) {
	for _, a := range n.n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

func (n *node) Href() (string, bool) {
	if n.n.DataAtom != atom.A && n.n.DataAtom != atom.Area {
		return "", false
	}
	href, ok := n.Attr("href")
	href = strings.TrimSpace(href)
	if !ok || href == "" {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	return n.doc.base.ResolveReference(ref).String(), true
}

func (n *node) PageURL() string {
	return n.doc.URL()
}
