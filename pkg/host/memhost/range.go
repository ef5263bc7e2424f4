package memhost

import (
	"fmt"

	"github.com/vango-dev/toyreact/pkg/host"
)

// Range is a live pair of boundary points over a Document.
type Range struct {
	doc    *Document
	startC *Node
	startO int
	endC   *Node
	endO   int
}

var _ host.Range = (*Range)(nil)

// SetStart implements host.Range. An end point before the new start is
// collapsed onto it.
func (r *Range) SetStart(container host.Node, offset int) {
	r.startC, r.startO = asNode(container), offset
	if r.endC == nil || comparePoints(r.endC, r.endO, r.startC, r.startO) < 0 {
		r.endC, r.endO = r.startC, r.startO
	}
}

// SetEnd implements host.Range. A start point after the new end is
// collapsed onto it.
func (r *Range) SetEnd(container host.Node, offset int) {
	r.endC, r.endO = asNode(container), offset
	if r.startC == nil || comparePoints(r.startC, r.startO, r.endC, r.endO) > 0 {
		r.startC, r.startO = r.endC, r.endO
	}
}

// SetStartBefore implements host.Range.
func (r *Range) SetStartBefore(n host.Node) {
	mn := mustAttached(n)
	r.SetStart(mn.parent, mn.Index())
}

// SetStartAfter implements host.Range.
func (r *Range) SetStartAfter(n host.Node) {
	mn := mustAttached(n)
	r.SetStart(mn.parent, mn.Index()+1)
}

// SetEndBefore moves the end point to just before n.
func (r *Range) SetEndBefore(n host.Node) {
	mn := mustAttached(n)
	r.SetEnd(mn.parent, mn.Index())
}

// SetEndAfter implements host.Range.
func (r *Range) SetEndAfter(n host.Node) {
	mn := mustAttached(n)
	r.SetEnd(mn.parent, mn.Index()+1)
}

// StartContainer implements host.Range.
func (r *Range) StartContainer() host.Node {
	if r.startC == nil {
		return nil
	}
	return r.startC
}

// StartOffset implements host.Range.
func (r *Range) StartOffset() int { return r.startO }

// EndContainer implements host.Range.
func (r *Range) EndContainer() host.Node {
	if r.endC == nil {
		return nil
	}
	return r.endC
}

// EndOffset implements host.Range.
func (r *Range) EndOffset() int { return r.endO }

// Collapsed implements host.Range.
func (r *Range) Collapsed() bool {
	return r.startC == r.endC && r.startO == r.endO
}

// Nodes returns the children the range currently covers.
func (r *Range) Nodes() []*Node {
	if r.startC == nil || r.startC != r.endC {
		return nil
	}
	return r.startC.Children()[r.startO:r.endO]
}

// DeleteContents implements host.Range. Both boundary points must share a
// container, which is always the case for ranges built from sibling
// positions.
func (r *Range) DeleteContents() {
	if r.startC == nil || r.Collapsed() {
		return
	}
	if r.startC != r.endC {
		panic(fmt.Sprintf("memhost: cannot delete across containers (%d:%d .. %d:%d)",
			r.startC.id, r.startO, r.endC.id, r.endO))
	}
	parent, start := r.startC, r.startO
	for n := r.endO - r.startO; n > 0; n-- {
		r.doc.removeChild(parent, start)
	}
}

// InsertNode implements host.Range.
func (r *Range) InsertNode(n host.Node) {
	mn := asNode(n)
	if r.startC == nil {
		panic("memhost: insert into unpositioned range")
	}
	if r.startC.typ == TextNode {
		panic("memhost: insert into text container")
	}
	collapsed := r.Collapsed()
	parent, offset := r.startC, r.startO
	r.doc.insertChild(parent, mn, offset)
	if collapsed {
		r.endC, r.endO = parent, mn.Index()+1
	}
}

// Detach stops the range from tracking mutations.
func (r *Range) Detach() {
	r.doc.detach(r)
}

// String renders the boundary points for debugging.
func (r *Range) String() string {
	if r.startC == nil {
		return "Range(unset)"
	}
	return fmt.Sprintf("Range(%d:%d .. %d:%d)", r.startC.id, r.startO, r.endC.id, r.endO)
}

func mustAttached(n host.Node) *Node {
	mn := asNode(n)
	if mn == nil || mn.parent == nil {
		panic("memhost: boundary relative to a detached node")
	}
	return mn
}

// comparePoints orders two boundary points in tree order: -1, 0 or 1.
// Points in different trees compare equal.
func comparePoints(aC *Node, aO int, bC *Node, bO int) int {
	if aC == bC {
		return compareInts(aO, bO)
	}
	if aC.root() != bC.root() {
		return 0
	}
	a := append(aC.path(), aO)
	b := append(bC.path(), bO)
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := compareInts(a[i], b[i]); c != 0 {
			return c
		}
	}
	return compareInts(len(a), len(b))
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
