package vdom

import (
	"strconv"

	"github.com/vango-dev/toyreact/internal/errors"
)

// Factory constructs a component instance. H calls it once per node.
type Factory = func() Component

// attrTarget receives props and children during construction. *VNode and
// *Base both satisfy it.
type attrTarget interface {
	SetAttribute(name string, value any)
	AppendChild(child *VNode)
}

// H creates a virtual node.
//
// typ is a host tag name (string) or a component Factory. Children may be
// nil (skipped), strings and numbers (become text nodes), *VNode, []*VNode
// or []any; slices are flattened recursively. Any other type panics.
func H(typ any, props Props, children ...any) *VNode {
	var (
		node   *VNode
		target attrTarget
		base   *Base
	)

	switch t := typ.(type) {
	case string:
		node = &VNode{Kind: KindElement, Tag: t, Props: make(Props)}
		target = node
	case Factory:
		comp := t()
		if comp == nil {
			panic(errors.New("E104").WithDetail("component factory returned nil"))
		}
		base = baseOf(comp)
		base.self = comp
		if base.props == nil {
			base.props = make(Props)
		}
		node = &VNode{Kind: KindComponent, Comp: comp}
		target = base
	default:
		panic(errors.New("E101").WithDetailf("got %T", typ))
	}

	for name, value := range props {
		target.SetAttribute(name, value)
	}
	appendChildren(target, children)

	if base != nil {
		node.Props = base.props
		node.Children = base.children
	}
	return node
}

// appendChildren flattens children into target.
func appendChildren(target attrTarget, children []any) {
	for _, child := range children {
		switch v := child.(type) {
		case nil:
			continue
		case *VNode:
			if v != nil {
				target.AppendChild(v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					target.AppendChild(c)
				}
			}
		case []any:
			appendChildren(target, v)
		case string:
			target.AppendChild(Text(v))
		default:
			s, ok := formatNumber(child)
			if !ok {
				panic(errors.New("E102").WithDetailf("got %T", child))
			}
			target.AppendChild(Text(s))
		}
	}
}

// formatNumber renders Go numeric kinds in shortest decimal form.
func formatNumber(v any) (string, bool) {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n), true
	case int8:
		return strconv.FormatInt(int64(n), 10), true
	case int16:
		return strconv.FormatInt(int64(n), 10), true
	case int32:
		return strconv.FormatInt(int64(n), 10), true
	case int64:
		return strconv.FormatInt(n, 10), true
	case uint:
		return strconv.FormatUint(uint64(n), 10), true
	case uint8:
		return strconv.FormatUint(uint64(n), 10), true
	case uint16:
		return strconv.FormatUint(uint64(n), 10), true
	case uint32:
		return strconv.FormatUint(uint64(n), 10), true
	case uint64:
		return strconv.FormatUint(n, 10), true
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64), true
	default:
		return "", false
	}
}
