package vtest_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/vango-dev/toyreact/pkg/vdom"
	"github.com/vango-dev/toyreact/pkg/vtest"
)

type counter struct{ vdom.Base }

func newCounter() vdom.Component { return &counter{} }

func (c *counter) Render() *vdom.VNode {
	n, _ := c.StateMap()["n"].(int)
	return vdom.H("div", vdom.Props{"className": "counter"},
		vdom.H("button", vdom.Props{"onClick": func() { c.SetState(map[string]any{"n": n + 1}) }}, "+"),
		vdom.H("span", nil, n),
	)
}

// recorder captures failures without stopping the calling test.
type recorder struct {
	testing.TB
	failures []string
}

func (r *recorder) Helper() {}

func (r *recorder) Errorf(format string, args ...any) {
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

func TestRenderToString(t *testing.T) {
	html := vtest.RenderToString(vdom.H(newCounter, nil))

	want := `<div class="counter"><button>+</button><span>0</span></div>`
	if html != want {
		t.Errorf("got %s, want %s", html, want)
	}
	if vtest.RenderToString(nil) != "" {
		t.Error("nil root should render nothing")
	}
}

func TestExpectHelpers_Pass(t *testing.T) {
	node := vdom.H("p", vdom.Props{"id": "x"}, "Hello World")
	rec := &recorder{TB: t}

	vtest.ExpectContains(rec, node, "Hello")
	vtest.ExpectNotContains(rec, node, "Goodbye")
	vtest.ExpectElement(rec, node, "p")
	vtest.ExpectAttribute(rec, node, "id", "x")

	if len(rec.failures) != 0 {
		t.Errorf("unexpected failures: %v", rec.failures)
	}
}

func TestExpectHelpers_Fail(t *testing.T) {
	node := vdom.H("p", nil, strings.Repeat("a", 600))
	rec := &recorder{TB: t}

	vtest.ExpectContains(rec, node, "zzz")
	vtest.ExpectNotContains(rec, node, "aaa")
	vtest.ExpectElement(rec, node, "table")
	vtest.ExpectAttribute(rec, node, "id", "x")

	if len(rec.failures) != 4 {
		t.Fatalf("failures = %d, want 4", len(rec.failures))
	}
	if !strings.Contains(rec.failures[0], "...") {
		t.Error("long output should be truncated")
	}
}

func TestHarnessClick(t *testing.T) {
	h := vtest.Mount(t, vdom.H(newCounter, nil))

	delta := h.Step(func() { h.Click("button", 0) })
	h.Click("button", 0)

	h.ExpectHTML(`<div class="counter"><button>+</button><span>2</span></div>`)
	h.ExpectConsistent()
	if delta.Replaced != 2 || delta.Removed != 0 {
		t.Errorf("delta = %+v, want the button and the count rebuilt", delta)
	}
}

func TestHarnessRecords(t *testing.T) {
	h := vtest.Mount(t, vdom.H(newCounter, nil))

	recs := h.Records()
	if len(recs) != 1 || recs[0].Op != vdom.OpMount || recs[0].Tag != "div" {
		t.Fatalf("mount records = %+v", recs)
	}

	h.ResetRecords()
	h.Click("button", 0)

	var ops []string
	for _, r := range h.Records() {
		ops = append(ops, r.Op.String()+":"+r.Tag)
	}
	want := "Inherit:div Replace:button Inherit:span Replace:#text"
	if got := strings.Join(ops, " "); got != want {
		t.Errorf("ops = %s, want %s", got, want)
	}
}

func TestHarnessFind(t *testing.T) {
	h := vtest.Mount(t, vdom.H("ul", nil,
		vdom.H("li", nil, "a"),
		vdom.H("li", nil, vdom.H("li", nil, "nested")),
	))

	all := h.FindAll("li")
	if len(all) != 3 {
		t.Fatalf("found %d li", len(all))
	}
	if h.Find("li", 2).TextContent() != "nested" {
		t.Error("FindAll should walk in document order")
	}
}

func TestCheckRanges(t *testing.T) {
	h := vtest.Mount(t, vdom.H("div", nil, "a", vdom.H("b", nil, "c")))

	if err := vtest.CheckRanges(h.Root.Tree()); err != nil {
		t.Error(err)
	}
	if n := vtest.CountNodes(h.Root.Tree()); n != 4 {
		t.Errorf("CountNodes = %d, want 4", n)
	}
	if err := vtest.CheckRanges(vdom.H("div", nil)); err == nil {
		t.Error("unbound tree should fail")
	}
}
