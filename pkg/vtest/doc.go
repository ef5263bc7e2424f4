// Package vtest provides testing helpers for toyreact components.
//
// The vtest package reduces boilerplate when testing components by mounting
// them into a fresh in-memory document and asserting on the resulting HTML
// and reconciliation outcomes.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    h := vtest.Mount(t, vdom.H(demo.NewCounter, nil))
//	    h.Click("button", 0)
//	    h.ExpectHTML(`<div><button>+</button><span>1</span></div>`)
//	}
//
// # Observing Updates
//
// Step runs an action and returns the outcome counts it produced:
//
//	delta := h.Step(func() { h.Click("button", 0) })
//	if delta.Removed != 0 {
//	    t.Error("clicking should not remove nodes")
//	}
//
// Records returns every reconciliation outcome since the last ResetRecords.
//
// # Render Assertions
//
// Assert on rendered HTML output without keeping a harness:
//
//	vtest.ExpectContains(t, vdom.H(NewGreeting, nil), "Welcome")
//	vtest.ExpectNotContains(t, vdom.H(NewGreeting, nil), "Login")
//
// # Range Consistency
//
// ExpectConsistent checks that every rendered node's range brackets exactly
// its host node and that no discarded range is still tracking mutations.
package vtest
