package host

// Node is an opaque handle to a node in the live document.
type Node interface {
	// Parent returns the containing node, or nil when detached.
	Parent() Node
	// ChildCount returns the number of direct children.
	ChildCount() int
}

// Element is a host element node.
type Element interface {
	Node

	// Tag returns the element's tag name.
	Tag() string

	// SetAttribute sets (or overwrites) an attribute.
	SetAttribute(name, value string)

	// AddEventListener registers handler for event. The handler value is
	// passed through untouched; its calling convention is owned by the host.
	AddEventListener(event string, handler any)
}

// Document creates host nodes and ranges.
type Document interface {
	CreateElement(tag string) Element
	CreateTextNode(text string) Node
	CreateRange() Range
}

// Range is a live span of host content between two boundary points.
type Range interface {
	SetStart(container Node, offset int)
	SetEnd(container Node, offset int)
	SetStartBefore(n Node)
	SetStartAfter(n Node)
	SetEndAfter(n Node)

	StartContainer() Node
	StartOffset() int
	EndContainer() Node
	EndOffset() int

	// Collapsed reports whether start and end are the same point.
	Collapsed() bool

	// DeleteContents removes every node between the boundary points. The
	// range collapses to its start.
	DeleteContents()

	// InsertNode inserts n at the range's start. A collapsed range grows to
	// contain n.
	InsertNode(n Node)
}

// NewRange creates a range on doc spanning children [start, end) of parent.
func NewRange(doc Document, parent Node, start, end int) Range {
	r := doc.CreateRange()
	r.SetStart(parent, start)
	r.SetEnd(parent, end)
	return r
}

// Bracket re-points r so it exactly covers n.
func Bracket(r Range, n Node) {
	r.SetStartBefore(n)
	r.SetEndAfter(n)
}

// ReplaceContents puts n at the start of r, removes everything else r
// covered, and leaves r bracketing n.
func ReplaceContents(r Range, n Node) {
	r.InsertNode(n)
	r.SetStartAfter(n)
	r.DeleteContents()
	Bracket(r, n)
}

// Detacher is implemented by ranges that can stop tracking mutations. The
// reconciler detaches the ranges of subtrees it discards.
type Detacher interface {
	Detach()
}
