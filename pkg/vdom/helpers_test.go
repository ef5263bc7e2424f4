package vdom

import (
	"testing"

	"github.com/vango-dev/toyreact/pkg/host/memhost"
)

// fnComp renders through a closure so tests can define components inline.
type fnComp struct {
	Base
	render func(b *Base) *VNode
}

func (c *fnComp) Render() *VNode { return c.render(&c.Base) }

// component returns a factory for fnComp; every instance it creates is
// stored in *latest.
func component(latest **fnComp, render func(b *Base) *VNode) Factory {
	return func() Component {
		c := &fnComp{render: render}
		if latest != nil {
			*latest = c
		}
		return c
	}
}

func mountTest(t *testing.T, root *VNode, opts ...Option) (*memhost.Document, *memhost.Node, *Root) {
	t.Helper()
	doc := memhost.NewDocument()
	container := doc.NewElement("main")
	rt, err := Mount(doc, root, container, opts...)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return doc, container, rt
}

// checkRanges asserts that every resolved node's range brackets exactly the
// host node it materialized. It mirrors vtest.CheckRanges, which these
// tests cannot import: vtest imports vdom.
func checkRanges(t *testing.T, n *VNode) {
	t.Helper()
	rng, hn := n.Range(), n.HostNode()
	if rng == nil || hn == nil {
		t.Fatalf("%s node not bound", recordTag(n))
	}
	if rng.StartContainer() != rng.EndContainer() {
		t.Fatalf("%s range spans containers", recordTag(n))
	}
	if got := rng.EndOffset() - rng.StartOffset(); got != 1 {
		t.Fatalf("%s range covers %d nodes, want 1", recordTag(n), got)
	}
	mn := hn.(*memhost.Node)
	if mn.ParentNode() == nil || rng.StartContainer() != mn.ParentNode() {
		t.Fatalf("%s range container is not the host parent", recordTag(n))
	}
	if mn.Index() != rng.StartOffset() {
		t.Fatalf("%s host node at %d, range starts at %d", recordTag(n), mn.Index(), rng.StartOffset())
	}
	for _, c := range n.VChildren() {
		checkRanges(t, c)
	}
}

func countNodes(n *VNode) int {
	total := 1
	for _, c := range n.VChildren() {
		total += countNodes(c)
	}
	return total
}

func itemsComp(latest **fnComp) Factory {
	return component(latest, func(b *Base) *VNode {
		items, _ := b.StateMap()["items"].([]any)
		var lis []*VNode
		for _, it := range items {
			lis = append(lis, H("li", nil, it))
		}
		return H("ul", nil, lis)
	})
}
