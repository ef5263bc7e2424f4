package memhost

import "github.com/vango-dev/toyreact/pkg/host"

// Document owns nodes and the live ranges placed over them.
type Document struct {
	nextID int
	ranges []*Range
}

var _ host.Document = (*Document)(nil)

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{}
}

func (d *Document) newNode(typ NodeType) *Node {
	d.nextID++
	return &Node{doc: d, id: d.nextID, typ: typ}
}

// CreateElement implements host.Document.
func (d *Document) CreateElement(tag string) host.Element {
	return d.NewElement(tag)
}

// NewElement is CreateElement returning the concrete type.
func (d *Document) NewElement(tag string) *Node {
	n := d.newNode(ElementNode)
	n.tag = tag
	return n
}

// CreateTextNode implements host.Document.
func (d *Document) CreateTextNode(text string) host.Node {
	return d.NewText(text)
}

// NewText is CreateTextNode returning the concrete type.
func (d *Document) NewText(text string) *Node {
	n := d.newNode(TextNode)
	n.data = text
	return n
}

// CreateRange implements host.Document. The range starts unpositioned.
func (d *Document) CreateRange() host.Range {
	return d.NewRange()
}

// NewRange is CreateRange returning the concrete type.
func (d *Document) NewRange() *Range {
	r := &Range{doc: d}
	d.ranges = append(d.ranges, r)
	return r
}

// LiveRanges returns the number of ranges still tracking mutations.
func (d *Document) LiveRanges() int {
	return len(d.ranges)
}

func (d *Document) detach(r *Range) {
	for i, other := range d.ranges {
		if other == r {
			d.ranges = append(d.ranges[:i], d.ranges[i+1:]...)
			return
		}
	}
}

// insertChild places c at index in parent and shifts live boundary points
// that sit after the insertion point.
func (d *Document) insertChild(parent, c *Node, index int) {
	if c.contains(parent) {
		panic("memhost: insertion would create a cycle")
	}
	if old := c.parent; old != nil {
		oldIndex := c.Index()
		d.removeChild(old, oldIndex)
		if old == parent && oldIndex < index {
			index--
		}
	}
	if index < 0 || index > len(parent.children) {
		index = len(parent.children)
	}
	parent.children = append(parent.children, nil)
	copy(parent.children[index+1:], parent.children[index:])
	parent.children[index] = c
	c.parent = parent

	for _, r := range d.ranges {
		if r.startC == parent && r.startO > index {
			r.startO++
		}
		if r.endC == parent && r.endO > index {
			r.endO++
		}
	}
}

// removeChild removes parent's child at index. Boundary points inside the
// removed subtree collapse to the removal point; later points shift back.
func (d *Document) removeChild(parent *Node, index int) {
	c := parent.children[index]
	for _, r := range d.ranges {
		if r.startC != nil && c.contains(r.startC) {
			r.startC, r.startO = parent, index
		} else if r.startC == parent && r.startO > index {
			r.startO--
		}
		if r.endC != nil && c.contains(r.endC) {
			r.endC, r.endO = parent, index
		} else if r.endC == parent && r.endO > index {
			r.endO--
		}
	}
	parent.children = append(parent.children[:index], parent.children[index+1:]...)
	c.parent = nil
}
