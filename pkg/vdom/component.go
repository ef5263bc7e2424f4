package vdom

import (
	"fmt"
	"reflect"

	"github.com/vango-dev/toyreact/internal/errors"
	"github.com/vango-dev/toyreact/pkg/host"
)

// Component is anything that can render to a VNode.
type Component interface {
	Render() *VNode
}

// componentRuntime is the renderer-facing side of a component. It is
// satisfied only by types embedding Base.
type componentRuntime interface {
	runtime() *Base
}

// Base carries a component's inputs and render bookkeeping.
// Embed it in component structs and construct them through H:
//
//	type Counter struct{ vdom.Base }
//
//	func NewCounter() vdom.Component { return &Counter{} }
//
//	func (c *Counter) Render() *vdom.VNode {
//	    n, _ := c.StateMap()["n"].(int)
//	    return vdom.H("button", vdom.Props{
//	        "onClick": func() { c.SetState(map[string]any{"n": n + 1}) },
//	    }, n)
//	}
type Base struct {
	props    Props
	children []*VNode
	state    any

	self      Component
	r         *Renderer
	rng       host.Range
	retained  *VNode
	memo      *VNode
	enclosing *Base
}

func (b *Base) runtime() *Base { return b }

// SetAttribute records a prop. No validation; last write wins.
func (b *Base) SetAttribute(name string, value any) {
	if b.props == nil {
		b.props = make(Props)
	}
	b.props[name] = value
}

// AppendChild appends to the component's children.
func (b *Base) AppendChild(child *VNode) {
	b.children = append(b.children, child)
}

// Props returns the component's props.
func (b *Base) Props() Props { return b.props }

// Prop returns a single prop value.
func (b *Base) Prop(name string) any { return b.props[name] }

// Children returns the children passed to the component.
func (b *Base) Children() []*VNode { return b.children }

// State returns the current state; nil until the first SetState.
func (b *Base) State() any { return b.state }

// StateMap returns the state as a map, or nil when it is not composite.
func (b *Base) StateMap() map[string]any {
	m, _ := asComposite(b.state)
	return m
}

// Range returns the range the component last rendered into.
func (b *Base) Range() host.Range { return b.rng }

// VDOM returns the component's resolved virtual tree. The result is
// computed once and cached until the component re-renders.
func (b *Base) VDOM() *VNode {
	if b.memo != nil {
		return b.memo
	}
	if b.self == nil {
		panic(errors.New("E104").WithSuggestion("construct components with vdom.H(factory, props, children...)"))
	}
	node := b.self.Render()
	if node == nil {
		panic(errors.New("E103").WithDetailf("%s.Render returned nil", b.typeName()))
	}
	tree := resolve(node)
	tree.owners = append([]*Base{b}, tree.owners...)
	b.memo = tree
	return tree
}

// SetState merges partial into the component's state and, when the
// component is on screen, re-renders and patches it before returning.
// Callbacks run afterwards, in order.
//
// A nil or non-map current state is replaced by partial. Otherwise partial's
// keys are merged in recursively; keys it does not mention are kept.
func (b *Base) SetState(partial any, callbacks ...func()) {
	b.state = MergeState(b.state, partial)
	if b.r != nil && b.retained != nil {
		b.r.update(b)
	}
	for _, cb := range callbacks {
		if cb != nil {
			cb()
		}
	}
}

func (b *Base) typeName() string {
	if b.self == nil {
		return "<unbound>"
	}
	return reflect.TypeOf(b.self).String()
}

// baseOf returns the Base embedded in c.
func baseOf(c Component) *Base {
	rt, ok := c.(componentRuntime)
	if !ok || c == nil {
		panic(errors.New("E104").WithDetailf("%T does not embed vdom.Base", c))
	}
	b := rt.runtime()
	if b.self == nil {
		b.self = c
	}
	return b
}

// String describes the component for logs.
func (b *Base) String() string {
	return fmt.Sprintf("%s(state=%v)", b.typeName(), b.state)
}
