package vtest

import (
	"testing"

	"github.com/vango-dev/toyreact/pkg/host/memhost"
	"github.com/vango-dev/toyreact/pkg/vdom"
)

// Harness is a tree mounted into a fresh in-memory document.
type Harness struct {
	T         testing.TB
	Doc       *memhost.Document
	Container *memhost.Node
	Root      *vdom.Root

	records []vdom.Record
}

// Mount renders root into a new <main> container and fails the test if
// mounting errors. The harness installs its own patch observer after opts.
//
// Example:
//
//	h := vtest.Mount(t, vdom.H(NewCounter, nil), vdom.WithKeepStaleChildren(true))
func Mount(t testing.TB, root *vdom.VNode, opts ...vdom.Option) *Harness {
	t.Helper()
	h := &Harness{T: t, Doc: memhost.NewDocument()}
	h.Container = h.Doc.NewElement("main")

	opts = append(opts, vdom.WithObserver(func(rec vdom.Record) {
		h.records = append(h.records, rec)
	}))
	rt, err := vdom.Mount(h.Doc, root, h.Container, opts...)
	if err != nil {
		t.Fatalf("vtest: mount failed: %v", err)
	}
	h.Root = rt
	return h
}

// HTML returns the container's inner HTML.
func (h *Harness) HTML() string {
	return memhost.InnerHTML(h.Container)
}

// Records returns the reconciliation outcomes observed since mount or the
// last ResetRecords.
func (h *Harness) Records() []vdom.Record {
	return h.records
}

// ResetRecords drops the observed records.
func (h *Harness) ResetRecords() {
	h.records = nil
}

// Step runs fn and returns the outcome counts it produced.
func (h *Harness) Step(fn func()) vdom.Stats {
	before := h.Root.Stats()
	fn()
	return h.Root.Stats().Sub(before)
}

// FindAll returns the elements with tag under the container, in document
// order.
func (h *Harness) FindAll(tag string) []*memhost.Node {
	return h.Container.ElementsByTag(tag)
}

// Find returns the index-th element with tag, failing the test when there
// are not enough.
func (h *Harness) Find(tag string, index int) *memhost.Node {
	h.T.Helper()
	all := h.FindAll(tag)
	if index >= len(all) {
		h.T.Fatalf("vtest: want <%s> #%d, found %d", tag, index, len(all))
	}
	return all[index]
}

// Dispatch fires event on n. It fails the test when no listener ran.
func (h *Harness) Dispatch(n *memhost.Node, event string, payload any) {
	h.T.Helper()
	ran, err := n.Dispatch(event, payload)
	if err != nil {
		h.T.Fatalf("vtest: dispatch %s: %v", event, err)
	}
	if ran == 0 {
		h.T.Fatalf("vtest: no %q listener on <%s>", event, n.Tag())
	}
}

// Click dispatches a click on the index-th element with tag.
func (h *Harness) Click(tag string, index int) {
	h.T.Helper()
	h.Dispatch(h.Find(tag, index), "click", nil)
}

// ExpectHTML asserts the container's exact inner HTML.
func (h *Harness) ExpectHTML(want string) {
	h.T.Helper()
	if got := h.HTML(); got != want {
		h.T.Errorf("HTML mismatch\n got: %s\nwant: %s", got, want)
	}
}

// ExpectConsistent asserts that the rendered tree's ranges bracket their
// host nodes and that the document tracks no ranges beyond the tree's.
func (h *Harness) ExpectConsistent() {
	h.T.Helper()
	tree := h.Root.Tree()
	if err := CheckRanges(tree); err != nil {
		h.T.Errorf("vtest: %v", err)
	}
	if got, want := h.Doc.LiveRanges(), CountNodes(tree); got != want {
		h.T.Errorf("vtest: %d live ranges, want %d", got, want)
	}
}
