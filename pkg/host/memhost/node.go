package memhost

import (
	"strings"

	"github.com/vango-dev/toyreact/pkg/host"
)

// NodeType discriminates element and text nodes.
type NodeType uint8

const (
	ElementNode NodeType = iota
	TextNode
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	default:
		return "Unknown"
	}
}

// Attr is a single attribute. Attributes keep the order they were first set in.
type Attr struct {
	Name  string
	Value string
}

type listener struct {
	event   string
	handler any
}

// Node is an element or text node owned by a Document.
type Node struct {
	doc       *Document
	id        int
	typ       NodeType
	tag       string
	data      string
	attrs     []Attr
	listeners []listener
	parent    *Node
	children  []*Node
}

var (
	_ host.Node    = (*Node)(nil)
	_ host.Element = (*Node)(nil)
)

// ID returns the node's document-unique identifier.
func (n *Node) ID() int { return n.id }

// Type returns the node type.
func (n *Node) Type() NodeType { return n.typ }

// Document returns the owning document.
func (n *Node) Document() *Document { return n.doc }

// Parent implements host.Node.
func (n *Node) Parent() host.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// ParentNode returns the parent as a *Node.
func (n *Node) ParentNode() *Node { return n.parent }

// ChildCount implements host.Node.
func (n *Node) ChildCount() int { return len(n.children) }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Child returns the i-th child or nil.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Index returns the node's position in its parent, or -1 when detached.
func (n *Node) Index() int {
	if n.parent == nil {
		return -1
	}
	for i, c := range n.parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

// Tag implements host.Element. Text nodes return "#text".
func (n *Node) Tag() string {
	if n.typ == TextNode {
		return "#text"
	}
	return n.tag
}

// Data returns a text node's content.
func (n *Node) Data() string { return n.data }

// SetData replaces a text node's content.
func (n *Node) SetData(s string) { n.data = s }

// TextContent concatenates the data of all descendant text nodes.
func (n *Node) TextContent() string {
	if n.typ == TextNode {
		return n.data
	}
	var b strings.Builder
	n.appendText(&b)
	return b.String()
}

func (n *Node) appendText(b *strings.Builder) {
	for _, c := range n.children {
		if c.typ == TextNode {
			b.WriteString(c.data)
		} else {
			c.appendText(b)
		}
	}
}

// SetAttribute implements host.Element.
func (n *Node) SetAttribute(name, value string) {
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, Attr{Name: name, Value: value})
}

// Attribute returns the value of the named attribute.
func (n *Node) Attribute(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Attributes returns a copy of the attribute list.
func (n *Node) Attributes() []Attr {
	out := make([]Attr, len(n.attrs))
	copy(out, n.attrs)
	return out
}

// AddEventListener implements host.Element.
func (n *Node) AddEventListener(event string, handler any) {
	n.listeners = append(n.listeners, listener{event: event, handler: handler})
}

// ListenerCount returns how many listeners are registered for event.
func (n *Node) ListenerCount(event string) int {
	count := 0
	for _, l := range n.listeners {
		if l.event == event {
			count++
		}
	}
	return count
}

// Events returns the distinct event names with listeners, in registration order.
func (n *Node) Events() []string {
	var out []string
	seen := make(map[string]bool)
	for _, l := range n.listeners {
		if !seen[l.event] {
			seen[l.event] = true
			out = append(out, l.event)
		}
	}
	return out
}

// AppendChild appends c, detaching it from any previous parent first.
func (n *Node) AppendChild(c *Node) {
	n.doc.insertChild(n, c, len(n.children))
}

// RemoveChild removes c if it is a child of n.
func (n *Node) RemoveChild(c *Node) {
	if i := c.Index(); i >= 0 && c.parent == n {
		n.doc.removeChild(n, i)
	}
}

// contains reports whether other is n or one of its descendants.
func (n *Node) contains(other *Node) bool {
	for p := other; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// path returns child indexes from the tree root down to n.
func (n *Node) path() []int {
	var rev []int
	for p := n; p.parent != nil; p = p.parent {
		rev = append(rev, p.Index())
	}
	out := make([]int, len(rev))
	for i, v := range rev {
		out[len(rev)-1-i] = v
	}
	return out
}

func (n *Node) root() *Node {
	p := n
	for p.parent != nil {
		p = p.parent
	}
	return p
}

// FindByID searches the subtree rooted at n for the node with id.
func (n *Node) FindByID(id int) *Node {
	if n.id == id {
		return n
	}
	for _, c := range n.children {
		if found := c.FindByID(id); found != nil {
			return found
		}
	}
	return nil
}

// ElementsByTag returns the elements below n with tag, in document order.
func (n *Node) ElementsByTag(tag string) []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.typ == ElementNode && c.tag == tag {
			out = append(out, c)
		}
		out = append(out, c.ElementsByTag(tag)...)
	}
	return out
}

// asNode converts a host.Node produced by a memhost Document.
func asNode(n host.Node) *Node {
	if n == nil {
		return nil
	}
	mn, ok := n.(*Node)
	if !ok {
		panic("memhost: foreign host node")
	}
	return mn
}
