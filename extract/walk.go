package extract

import "github.com/fwojciec/feedclip"

func matchesAny(n feedclip.Node, sels []feedclip.Selector) bool {
	for _, sel := range sels {
		if n.Matches(sel) {
			return true
		}
	}
	return false
}

// first returns the first descendant of root, in document order, matching
// any of sels. The root itself is not considered.
func first(root feedclip.Node, sels []feedclip.Selector) feedclip.Node {
	var found feedclip.Node
	walk(root, func(n feedclip.Node) bool {
		if matchesAny(n, sels) {
			found = n
			return false
		}
		return true
	})
	return found
}

// all returns every descendant of root matching any of sels in document order.
func all(root feedclip.Node, sels []feedclip.Selector) []feedclip.Node {
	var found []feedclip.Node
	walk(root, func(n feedclip.Node) bool {
		if matchesAny(n, sels) {
			found = append(found, n)
		}
		return true
	})
	return found
}

// walk visits the descendants of root in pre-order until fn returns false.
// It reports whether the walk ran to completion.
func walk(root feedclip.Node, fn func(feedclip.Node) bool) bool {
	for _, c := range root.Children() {
		if !fn(c) || !walk(c, fn) {
			return false
		}
	}
	return true
}
