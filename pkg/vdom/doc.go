// Package vdom provides the virtual node model and the reconciler that keeps
// a live host document in step with it.
//
// # Core Types
//
// VNode is the building block: an element, a text node, or a component
// instance. H builds VNode trees the way JSX would:
//
//	H("div", Props{"className": "card"},
//	    H("h1", nil, "Title"),
//	    H(NewCounter, Props{"start": 3}),
//	)
//
// Components embed Base and implement Render. Base holds the inputs and
// state, and SetState re-renders the component in place.
//
// # Reconciliation
//
// Every rendered node owns a host.Range delimiting the live content it
// produced. On update the new tree is compared to the retained one node by
// node, positionally. Nodes that are the same (SameNode) inherit the old
// node's range and have their children compared; anything else is rebuilt
// inside the old range. New trailing children get fresh ranges placed right
// after their previous sibling.
//
// Rendering is synchronous and single threaded. A Renderer and the
// components bound to it must only be used from one goroutine at a time.
package vdom
