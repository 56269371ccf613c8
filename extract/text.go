package extract

import (
	"strings"

	"github.com/fwojciec/feedclip"
)

// bodyRegion returns the first descendant matching any body-text selector.
func bodyRegion(container feedclip.Node, sels []feedclip.Selector) feedclip.Node {
	return first(container, sels)
}

// resolveText returns the trimmed visible text of the body region, or the
// text sentinel when the item has none. An empty region yields "".
// Truncated text is returned as displayed.
func resolveText(container feedclip.Node, sels []feedclip.Selector) string {
	region := bodyRegion(container, sels)
	if region == nil {
		return feedclip.TextNotFound
	}
	return strings.TrimSpace(region.Text())
}
