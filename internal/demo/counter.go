package demo

import "github.com/vango-dev/toyreact/pkg/vdom"

// Counter shows a number with buttons to change it. The "step" prop sets the
// increment (default 1).
type Counter struct {
	vdom.Base
}

// NewCounter is the factory passed to vdom.H.
func NewCounter() vdom.Component { return &Counter{} }

// Value returns the current count.
func (c *Counter) Value() int {
	n, _ := c.StateMap()["count"].(int)
	return n
}

func (c *Counter) step() int {
	if s, ok := c.Prop("step").(int); ok && s != 0 {
		return s
	}
	return 1
}

func (c *Counter) add(delta int) {
	c.SetState(map[string]any{"count": c.Value() + delta})
}

func (c *Counter) Render() *vdom.VNode {
	return vdom.H("div", vdom.Props{"className": "counter"},
		vdom.H("button", vdom.Props{"onClick": func() { c.add(-c.step()) }}, "-"),
		vdom.H("span", vdom.Props{"className": "count"}, c.Value()),
		vdom.H("button", vdom.Props{"onClick": func() { c.add(c.step()) }}, "+"),
	)
}
