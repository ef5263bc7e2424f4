package vdom

import (
	"fmt"
	"reflect"

	"github.com/vango-dev/toyreact/pkg/host"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindComponent              // Component instance
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// TextType is the type tag shared by all text nodes.
const TextType = "#text"

// Props holds attributes and event handlers.
type Props map[string]any

// VNode is a virtual node.
//
// Nodes built by H are descriptions and are never modified by rendering.
// Rendering works on resolved copies: components replaced by their output,
// children resolved recursively. Only resolved nodes are bound to a range.
type VNode struct {
	Kind     VKind     // Node type
	Tag      string    // Element tag name (e.g., "div")
	Props    Props     // Attributes and event handlers
	Children []*VNode  // Child nodes as built
	Text     string    // For KindText
	Comp     Component // For KindComponent

	vchildren []*VNode
	rng       host.Range
	hostNode  host.Node
	owners    []*Base // outermost first
}

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Type returns the node's type tag: the tag name for elements, TextType for
// text, and the component's dynamic Go type for components. Tags are
// comparable with ==.
func (v *VNode) Type() any {
	switch v.Kind {
	case KindText:
		return TextType
	case KindComponent:
		return reflect.TypeOf(v.Comp)
	default:
		return v.Tag
	}
}

// SetAttribute records a prop. Last write wins.
func (v *VNode) SetAttribute(name string, value any) {
	if v.Props == nil {
		v.Props = make(Props)
	}
	v.Props[name] = value
}

// AppendChild appends child to the node's children.
func (v *VNode) AppendChild(child *VNode) {
	v.Children = append(v.Children, child)
}

// Range returns the live range a resolved node is bound to.
func (v *VNode) Range() host.Range { return v.rng }

// HostNode returns the host node a resolved node materialized.
func (v *VNode) HostNode() host.Node { return v.hostNode }

// VChildren returns a resolved node's resolved children.
func (v *VNode) VChildren() []*VNode { return v.vchildren }

// resolve produces the render-time copy of n: components are replaced by
// their output and children are resolved recursively. n is not modified.
func resolve(n *VNode) *VNode {
	switch n.Kind {
	case KindText:
		return &VNode{Kind: KindText, Text: n.Text}
	case KindComponent:
		b := baseOf(n.Comp)
		b.memo = nil
		return b.VDOM()
	default:
		out := &VNode{
			Kind:     KindElement,
			Tag:      n.Tag,
			Props:    n.Props,
			Children: n.Children,
		}
		if len(n.Children) > 0 {
			out.vchildren = make([]*VNode, 0, len(n.Children))
			for _, c := range n.Children {
				if c == nil {
					continue
				}
				out.vchildren = append(out.vchildren, resolve(c))
			}
		}
		return out
	}
}
