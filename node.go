package feedclip

// Selector is a CSS selector group used as a structural pattern over nodes.
// Lists of selectors are ordered; how the order is used depends on the field
// being resolved.
type Selector string

// Node is a read-only handle into a parsed markup tree.
// Implementations must be safe for concurrent reads.
type Node interface {
	// Parent returns the parent element, or nil at the top of the tree.
	Parent() Node

	// Children returns the element children in document order.
	Children() []Node

	// Matches reports whether the node satisfies the selector.
	// Invalid selectors never match.
	Matches(sel Selector) bool

	// Text returns the node's visible text. Line breaks separate
	// block-level content; runs of inline whitespace are collapsed.
	Text() string

	// Attr returns the value of the named attribute.
	Attr(name string) (string, bool)

	// Href returns the outbound link target, resolved against PageURL,
	// if the node is a hyperlink.
	Href() (string, bool)

	// PageURL returns the address of the document the node belongs to.
	PageURL() string
}
