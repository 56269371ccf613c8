package extract

import (
	"strings"

	"github.com/fwojciec/feedclip"
)

// resolveAuthor tries sels strictly in order and returns the first non-empty
// name, or the unknown-author sentinel.
func resolveAuthor(container feedclip.Node, sels []feedclip.Selector) string {
	for _, sel := range sels {
		n := first(container, []feedclip.Selector{sel})
		if n == nil {
			continue
		}
		if name := firstLine(n.Text()); name != "" {
			return name
		}
	}
	return feedclip.UnknownAuthor
}

// firstLine returns the trimmed first line of s. Name elements often carry
// a hidden "View profile" label on a following line.
func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}
