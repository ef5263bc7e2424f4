package demo

import "github.com/vango-dev/toyreact/pkg/vdom"

// MyComponent renders a heading and a line of text, then whatever children
// it was given.
type MyComponent struct {
	vdom.Base
}

// NewMyComponent is the factory passed to vdom.H.
func NewMyComponent() vdom.Component { return &MyComponent{} }

func (c *MyComponent) Render() *vdom.VNode {
	return vdom.H("div", nil,
		vdom.H("h1", nil, "Toy React"),
		vdom.H("div", nil, "lalal"),
		c.Children(),
	)
}

// Hello builds MyComponent around a single child.
func Hello() *vdom.VNode {
	return vdom.H(NewMyComponent, nil,
		vdom.H("div", nil, "son, your mother is calling you home for dinner"),
	)
}
