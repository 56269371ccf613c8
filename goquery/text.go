package goquery

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// paragraphElements are separated from surrounding content by a blank line.
var paragraphElements = map[atom.Atom]bool{
	atom.P: true,
}

// blockElements start and end on their own line.
var blockElements = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Dd: true, atom.Details: true, atom.Dialog: true, atom.Div: true,
	atom.Dl: true, atom.Dt: true, atom.Fieldset: true, atom.Figcaption: true,
	atom.Figure: true, atom.Footer: true, atom.Form: true, atom.H1: true,
	atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Header: true, atom.Hgroup: true, atom.Hr: true, atom.Li: true,
	atom.Main: true, atom.Nav: true, atom.Ol: true, atom.Pre: true,
	atom.Section: true, atom.Summary: true, atom.Table: true, atom.Tr: true,
	atom.Ul: true,
}

// skippedElements never contribute visible text.
var skippedElements = map[atom.Atom]bool{
	atom.Head: true, atom.Script: true, atom.Style: true, atom.Noscript: true,
	atom.Template: true, atom.Svg: true, atom.Iframe: true, atom.Object: true,
}

// segment is one piece of the flattened text stream: literal text, a forced
// newline from <br>, or a request for surrounding line breaks.
type segment struct {
	text    string
	newline bool
	breaks  int
}

// visibleText approximates the browser's innerText for n: hidden and
// non-rendered elements are skipped, block elements sit on their own lines,
// paragraphs are separated by a blank line and inline whitespace collapses.
func visibleText(n *html.Node) string {
	var segs []segment
	collectText(n, &segs)
	return strings.TrimRight(renderText(segs), "\n")
}

func collectText(n *html.Node, segs *[]segment) {
	switch n.Type {
	case html.TextNode:
		*segs = append(*segs, segment{text: n.Data})
		return
	case html.ElementNode:
		if skippedElements[n.DataAtom] || isHidden(n) {
			return
		}
		switch n.DataAtom {
		case atom.Br:
			*segs = append(*segs, segment{newline: true})
			return
		case atom.Td, atom.Th:
			*segs = append(*segs, segment{text: " "})
		}
	case html.DocumentNode:
	default:
		return
	}

	breaks := 0
	if paragraphElements[n.DataAtom] {
		breaks = 2
	} else if blockElements[n.DataAtom] {
		breaks = 1
	}

	if breaks > 0 {
		*segs = append(*segs, segment{breaks: breaks})
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, segs)
	}
	if breaks > 0 {
		*segs = append(*segs, segment{breaks: breaks})
	}
}

// renderText joins segments. Adjacent break requests collapse to the largest
// one, and breaks before the first or after the last text are dropped.
func renderText(segs []segment) string {
	var out, line strings.Builder
	pending := 0
	wrote := false

	emitLine := func() {
		out.WriteString(strings.Join(strings.Fields(line.String()), " "))
		line.Reset()
	}
	emitPending := func() {
		if pending > 0 {
			emitLine()
			out.WriteString(strings.Repeat("\n", pending))
			pending = 0
		}
	}

	for _, s := range segs {
		switch {
		case s.breaks > 0:
			if wrote && s.breaks > pending {
				pending = s.breaks
			}
		case s.newline:
			emitPending()
			emitLine()
			out.WriteString("\n")
			wrote = true
		case strings.TrimSpace(s.text) == "":
			line.WriteString(" ")
		default:
			emitPending()
			line.WriteString(s.text)
			wrote = true
		}
	}
	emitLine()

	return out.String()
}

// isHidden reports whether n is removed from rendering by markup alone.
func isHidden(n *html.Node) bool {
	for _, a := range n.Attr {
		switch strings.ToLower(a.Key) {
		case "hidden":
			return true
		case "style":
			style := strings.ReplaceAll(strings.ToLower(a.Val), " ", "")
			if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
				return true
			}
		}
	}
	return false
}
