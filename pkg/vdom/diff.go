package vdom

import "reflect"

// SameNode reports whether next may take over prev's host content in place.
//
// Both nodes must have the same kind and type tag, every prop on next must
// equal prev's value for that key (a missing key reads as nil), prev must
// not carry more props than next, and text nodes must have equal content.
// A nil node is never the same as anything.
func SameNode(prev, next *VNode) bool {
	if prev == nil || next == nil {
		return false
	}
	if prev.Kind != next.Kind || prev.Type() != next.Type() {
		return false
	}
	for key, nextVal := range next.Props {
		if !propsEqual(prev.Props[key], nextVal) {
			return false
		}
	}
	if len(prev.Props) > len(next.Props) {
		return false
	}
	if prev.Kind == KindText && prev.Text != next.Text {
		return false
	}
	return true
}

// propsEqual compares two prop values for equality. Distinct functions
// never compare equal.
func propsEqual(a, b any) bool {
	// Fast path for common types
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return av == bv
		}
		return false
	case int:
		if bv, ok := b.(int); ok {
			return av == bv
		}
		return false
	case int64:
		if bv, ok := b.(int64); ok {
			return av == bv
		}
		return false
	case float64:
		if bv, ok := b.(float64); ok {
			return av == bv
		}
		return false
	case bool:
		if bv, ok := b.(bool); ok {
			return av == bv
		}
		return false
	case nil:
		return b == nil
	}
	// Fallback to reflect for complex types
	return reflect.DeepEqual(a, b)
}
