package vdom

import (
	"testing"

	"github.com/vango-dev/toyreact/internal/errors"
	"github.com/vango-dev/toyreact/pkg/host/memhost"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestMountEndToEnd(t *testing.T) {
	my := component(nil, func(b *Base) *VNode {
		return H("div", nil,
			H("h1", nil, "Toy React"),
			H("div", nil, "lalal"),
			b.Children(),
		)
	})
	root := H(my, nil,
		H("div", nil, "first child"),
		H("span", nil, "second"),
	)

	doc, container, rt := mountTest(t, root)

	want := `<div><h1>Toy React</h1><div>lalal</div><div>first child</div><span>second</span></div>`
	if got := memhost.InnerHTML(container); got != want {
		t.Errorf("InnerHTML = %s, want %s", got, want)
	}
	checkRanges(t, rt.Tree())
	if doc.LiveRanges() != countNodes(rt.Tree()) {
		t.Errorf("LiveRanges = %d, want %d", doc.LiveRanges(), countNodes(rt.Tree()))
	}
	if rt.Stats().Mounted != 1 {
		t.Errorf("Mounted = %d, want 1", rt.Stats().Mounted)
	}
}

func TestMountClearsContainer(t *testing.T) {
	doc := memhost.NewDocument()
	container := doc.NewElement("main")
	if err := memhost.ParseFragment(container, `<p>old</p>text<b>gone</b>`); err != nil {
		t.Fatal(err)
	}

	if _, err := Mount(doc, H("section", Props{"id": "new"}), container); err != nil {
		t.Fatal(err)
	}

	if got := memhost.InnerHTML(container); got != `<section id="new"></section>` {
		t.Errorf("InnerHTML = %s", got)
	}
}

func TestMountElementTree(t *testing.T) {
	var clicked bool
	root := H("div", Props{"className": "card", "onClick": func() { clicked = true }, "data-n": 3},
		"hello ", 42, nil, []any{" nested", []*VNode{Text("!")}},
	)

	_, container, rt := mountTest(t, root)

	div := container.Child(0)
	if got := memhost.OuterHTML(div); got != `<div class="card" data-n="3">hello 42 nested!</div>` {
		t.Errorf("OuterHTML = %s", got)
	}
	if _, err := div.Dispatch("click", nil); err != nil {
		t.Fatal(err)
	}
	if !clicked {
		t.Error("click listener not registered")
	}
	if rt.Component() != nil {
		t.Error("element root has no component")
	}
	checkRanges(t, rt.Tree())
}

func TestMountErrors(t *testing.T) {
	doc := memhost.NewDocument()
	container := doc.NewElement("main")
	var nilNode *memhost.Node

	tests := []struct {
		name string
		err  func() error
		code string
	}{
		{"nil document", func() error { _, err := Mount(nil, Text("x"), container); return err }, "E203"},
		{"nil root", func() error { _, err := Mount(doc, nil, container); return err }, "E201"},
		{"nil container", func() error { _, err := Mount(doc, Text("x"), nil); return err }, "E202"},
		{"typed nil container", func() error { _, err := Mount(doc, Text("x"), nilNode); return err }, "E202"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.err(); !errors.HasCode(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestReplaceOnTagChange(t *testing.T) {
	var c *fnComp
	root := H(component(&c, func(b *Base) *VNode {
		tag, _ := b.StateMap()["tag"].(string)
		if tag == "" {
			tag = "div"
		}
		return H(tag, Props{"class": "a"}, "X")
	}), nil)
	_, container, rt := mountTest(t, root)
	oldDiv := container.Child(0)

	before := rt.Stats()
	c.SetState(map[string]any{"tag": "span"})
	delta := rt.Stats().Sub(before)

	if got := memhost.InnerHTML(container); got != `<span class="a">X</span>` {
		t.Errorf("InnerHTML = %s", got)
	}
	if container.Child(0).Tag() != "span" {
		t.Errorf("root tag = %s, want span", container.Child(0).Tag())
	}
	if oldDiv.ParentNode() != nil {
		t.Error("old div should be detached")
	}
	if delta.Replaced != 1 || delta.Inherited != 0 {
		t.Errorf("delta = %+v, want one replacement", delta)
	}
	checkRanges(t, rt.Tree())
}

func TestInPlacePatchRebuildsOnlyText(t *testing.T) {
	var c *fnComp
	root := H(component(&c, func(b *Base) *VNode {
		text, _ := b.StateMap()["text"].(string)
		return H("div", Props{"id": "x"}, text)
	}), nil)
	c.SetState(map[string]any{"text": "A"})
	doc, container, rt := mountTest(t, root)
	div := container.Child(0)
	divRange := rt.Tree().Range()
	oldText := div.Child(0)

	before := rt.Stats()
	c.SetState(map[string]any{"text": "B"})
	delta := rt.Stats().Sub(before)

	if container.Child(0) != div {
		t.Error("div host node should be reused")
	}
	if rt.Tree().Range() != divRange {
		t.Error("div should inherit its range")
	}
	if div.Child(0) == oldText || div.TextContent() != "B" {
		t.Errorf("text child not rebuilt: %q", div.TextContent())
	}
	if delta.Inherited != 1 || delta.Replaced != 1 {
		t.Errorf("delta = %+v, want 1 inherit + 1 replace", delta)
	}
	checkRanges(t, rt.Tree())
	if doc.LiveRanges() != countNodes(rt.Tree()) {
		t.Errorf("LiveRanges = %d, want %d", doc.LiveRanges(), countNodes(rt.Tree()))
	}
}

func TestTailAppend(t *testing.T) {
	var c *fnComp
	root := H(itemsComp(&c), nil)
	c.SetState(map[string]any{"items": []any{"A"}})
	doc, container, rt := mountTest(t, root)
	ul := container.Child(0)
	liA := ul.Child(0)
	aRange := rt.Tree().VChildren()[0].Range()

	before := rt.Stats()
	c.SetState(map[string]any{"items": []any{"A", "B"}})
	delta := rt.Stats().Sub(before)

	if got := memhost.InnerHTML(container); got != `<ul><li>A</li><li>B</li></ul>` {
		t.Errorf("InnerHTML = %s", got)
	}
	if ul.Child(0) != liA {
		t.Error("A must keep its host node")
	}
	if aRange.StartOffset() != 0 || aRange.EndOffset() != 1 {
		t.Errorf("A range moved to %d..%d", aRange.StartOffset(), aRange.EndOffset())
	}
	if delta.Appended != 1 || delta.Replaced != 0 || delta.Inherited != 3 {
		t.Errorf("delta = %+v", delta)
	}
	checkRanges(t, rt.Tree())
	if doc.LiveRanges() != countNodes(rt.Tree()) {
		t.Errorf("LiveRanges = %d, want %d", doc.LiveRanges(), countNodes(rt.Tree()))
	}
}

func TestAppendIntoEmptyElement(t *testing.T) {
	var c *fnComp
	root := H(itemsComp(&c), nil)
	_, container, rt := mountTest(t, root)

	c.SetState(map[string]any{"items": []any{"A", "B"}})

	if got := memhost.InnerHTML(container); got != `<ul><li>A</li><li>B</li></ul>` {
		t.Errorf("InnerHTML = %s", got)
	}
	checkRanges(t, rt.Tree())
}

func TestShrinkRemovesStaleChildren(t *testing.T) {
	var c *fnComp
	root := H(itemsComp(&c), nil)
	c.SetState(map[string]any{"items": []any{"A", "B", "C"}})
	var removed []string
	doc, container, rt := mountTest(t, root, WithObserver(func(rec Record) {
		if rec.Op == OpRemove {
			removed = append(removed, rec.Node.VChildren()[0].Text)
		}
	}))

	c.SetState(map[string]any{"items": []any{"A"}})

	if got := memhost.InnerHTML(container); got != `<ul><li>A</li></ul>` {
		t.Errorf("InnerHTML = %s", got)
	}
	if len(removed) != 2 || removed[0] != "B" || removed[1] != "C" {
		t.Errorf("removed = %v", removed)
	}
	checkRanges(t, rt.Tree())
	if doc.LiveRanges() != countNodes(rt.Tree()) {
		t.Errorf("LiveRanges = %d, want %d", doc.LiveRanges(), countNodes(rt.Tree()))
	}
}

func TestShrinkKeepStaleChildren(t *testing.T) {
	var c *fnComp
	root := H(itemsComp(&c), nil)
	c.SetState(map[string]any{"items": []any{"A", "B", "C"}})
	_, container, rt := mountTest(t, root, WithKeepStaleChildren(true))

	c.SetState(map[string]any{"items": []any{"A"}})
	if got := memhost.InnerHTML(container); got != `<ul><li>A</li><li>B</li><li>C</li></ul>` {
		t.Errorf("stale content should remain, got %s", got)
	}
	if rt.Stats().Removed != 0 {
		t.Errorf("Removed = %d, want 0", rt.Stats().Removed)
	}

	// The retained tree no longer knows about B and C, so growth lands
	// directly after A.
	c.SetState(map[string]any{"items": []any{"A", "D"}})
	if got := memhost.InnerHTML(container); got != `<ul><li>A</li><li>D</li><li>B</li><li>C</li></ul>` {
		t.Errorf("InnerHTML = %s", got)
	}
}

func TestPositionalReorder(t *testing.T) {
	var c *fnComp
	root := H(itemsComp(&c), nil)
	c.SetState(map[string]any{"items": []any{"A", "B"}})
	_, container, rt := mountTest(t, root)
	ul := container.Child(0)
	first, second := ul.Child(0), ul.Child(1)

	before := rt.Stats()
	c.SetState(map[string]any{"items": []any{"B", "A"}})
	delta := rt.Stats().Sub(before)

	if got := memhost.InnerHTML(container); got != `<ul><li>B</li><li>A</li></ul>` {
		t.Errorf("InnerHTML = %s", got)
	}
	if ul.Child(0) != first || ul.Child(1) != second {
		t.Error("li elements should be patched in place")
	}
	if delta.Replaced != 2 {
		t.Errorf("Replaced = %d, want 2 text rebuilds", delta.Replaced)
	}
	checkRanges(t, rt.Tree())
}

func TestRedundantUpdateIsIdempotent(t *testing.T) {
	var c *fnComp
	root := H(component(&c, func(b *Base) *VNode {
		s := b.StateMap()
		user, _ := s["user"].(map[string]any)
		return H("div", Props{"className": "profile"},
			H("h2", nil, user["name"]),
			H("p", Props{"title": s["title"]}, "age ", user["age"]),
		)
	}), nil)
	state := map[string]any{"title": "t", "user": map[string]any{"name": "Ada", "age": 36}}
	c.SetState(state)
	_, container, rt := mountTest(t, root)
	snapshot := container.Child(0).Children()

	before := rt.Stats()
	c.SetState(map[string]any{"title": "t", "user": map[string]any{"name": "Ada", "age": 36}})
	delta := rt.Stats().Sub(before)

	if delta.Replaced != 0 || delta.Appended != 0 || delta.Removed != 0 {
		t.Errorf("redundant update mutated the host: %+v", delta)
	}
	if delta.Inherited != countNodes(rt.Tree()) {
		t.Errorf("Inherited = %d, want %d", delta.Inherited, countNodes(rt.Tree()))
	}
	for i, n := range container.Child(0).Children() {
		if n != snapshot[i] {
			t.Errorf("child %d host node changed", i)
		}
	}
}

func TestListenerRebuildAndDispatch(t *testing.T) {
	var c *fnComp
	root := H(component(&c, func(b *Base) *VNode {
		n, _ := b.StateMap()["n"].(int)
		return H("div", nil,
			H("button", Props{"onClick": func() { b.SetState(map[string]any{"n": n + 1}) }}, "+"),
			H("span", nil, n),
		)
	}), nil)
	_, container, rt := mountTest(t, root)

	for i := 0; i < 2; i++ {
		btn := container.Child(0).Child(0)
		if btn.ListenerCount("click") != 1 {
			t.Fatalf("button has %d click listeners", btn.ListenerCount("click"))
		}
		if _, err := btn.Dispatch("click", nil); err != nil {
			t.Fatal(err)
		}
	}

	if got := memhost.InnerHTML(container); got != `<div><button>+</button><span>2</span></div>` {
		t.Errorf("InnerHTML = %s", got)
	}
	checkRanges(t, rt.Tree())
}

func TestSetStateCallbacksAndReentry(t *testing.T) {
	var c *fnComp
	root := H(component(&c, func(b *Base) *VNode {
		return H("p", nil, b.StateMap()["msg"])
	}), nil)
	_, container, _ := mountTest(t, root)

	var seen []string
	c.SetState(map[string]any{"msg": "one"}, func() {
		seen = append(seen, memhost.InnerHTML(container))
		c.SetState(map[string]any{"msg": "two"}, func() {
			seen = append(seen, memhost.InnerHTML(container))
		})
	}, nil)

	if len(seen) != 2 || seen[0] != "<p>one</p>" || seen[1] != "<p>two</p>" {
		t.Errorf("seen = %q", seen)
	}
}

func TestSetStateBeforeMount(t *testing.T) {
	var c *fnComp
	H(component(&c, func(b *Base) *VNode { return Text("x") }), nil)

	called := false
	c.SetState(map[string]any{"a": 1}, func() { called = true })

	if !called {
		t.Error("callback should run")
	}
	if c.Range() != nil {
		t.Error("unmounted component has no range")
	}
	if c.StateMap()["a"] != 1 {
		t.Errorf("state = %v", c.State())
	}
}

func TestNestedComponentUpdate(t *testing.T) {
	var parent, counter *fnComp
	counterFactory := component(&counter, func(b *Base) *VNode {
		n, _ := b.StateMap()["n"].(int)
		return H("span", nil, n)
	})
	root := H(component(&parent, func(b *Base) *VNode {
		title, _ := b.StateMap()["title"].(string)
		return H("div", nil, H("h2", nil, title), H(counterFactory, nil))
	}), nil)
	parent.SetState(map[string]any{"title": "old"})
	doc, container, rt := mountTest(t, root)

	first := counter
	first.SetState(map[string]any{"n": 5})

	if got := memhost.InnerHTML(container); got != `<div><h2>old</h2><span>5</span></div>` {
		t.Errorf("after nested update: %s", got)
	}
	if rt.Tree().VChildren()[1] != first.retained {
		t.Error("parent retained tree should hold the counter's new tree")
	}
	checkRanges(t, rt.Tree())

	parent.SetState(map[string]any{"title": "new"})

	if got := memhost.InnerHTML(container); got != `<div><h2>new</h2><span>0</span></div>` {
		t.Errorf("after parent update: %s", got)
	}
	if counter == first {
		t.Fatal("parent render should construct a fresh counter")
	}
	counter.SetState(map[string]any{"n": 9})
	if got := memhost.InnerHTML(container); got != `<div><h2>new</h2><span>9</span></div>` {
		t.Errorf("fresh counter update: %s", got)
	}
	checkRanges(t, rt.Tree())
	if doc.LiveRanges() != countNodes(rt.Tree()) {
		t.Errorf("LiveRanges = %d, want %d", doc.LiveRanges(), countNodes(rt.Tree()))
	}
}

func TestNestedUpdateUnderElementRoot(t *testing.T) {
	var c *fnComp
	f := component(&c, func(b *Base) *VNode {
		n, _ := b.StateMap()["n"].(int)
		return H("span", Props{"n": n}, n)
	})
	doc, container, rt := mountTest(t, H("div", nil, H(f, nil)))

	c.SetState(map[string]any{"n": 1})

	if got := memhost.InnerHTML(container); got != `<div><span n="1">1</span></div>` {
		t.Fatalf("InnerHTML = %s", got)
	}
	span := rt.Tree().VChildren()[0]
	if span != c.retained {
		t.Error("root tree should hold the component's new tree")
	}
	if got := span.VChildren()[0].Text; got != "1" {
		t.Errorf("retained text = %q, want %q", got, "1")
	}
	checkRanges(t, rt.Tree())

	c.SetState(map[string]any{"n": 2})
	checkRanges(t, rt.Tree())
	if doc.LiveRanges() != countNodes(rt.Tree()) {
		t.Errorf("LiveRanges = %d, want %d", doc.LiveRanges(), countNodes(rt.Tree()))
	}
}

func TestComponentChain(t *testing.T) {
	var outer, inner *fnComp
	innerFactory := component(&inner, func(b *Base) *VNode {
		return H("em", nil, b.StateMap()["v"])
	})
	root := H(component(&outer, func(b *Base) *VNode {
		return H(innerFactory, nil)
	}), nil)
	_, container, rt := mountTest(t, root)

	inner.SetState(map[string]any{"v": "hi"})

	if got := memhost.InnerHTML(container); got != `<em>hi</em>` {
		t.Errorf("InnerHTML = %s", got)
	}
	if outer.retained != inner.retained || rt.Tree() != inner.retained {
		t.Error("chained components should share the retained root")
	}
	if outer.Range() != inner.Range() {
		t.Error("chained components should share the range")
	}
	checkRanges(t, rt.Tree())
}

func TestPersistentChildComponentKeepsState(t *testing.T) {
	var wrapper, child *fnComp
	childNode := H(component(&child, func(b *Base) *VNode {
		return H("b", nil, b.StateMap()["v"])
	}), nil)
	root := H(component(&wrapper, func(b *Base) *VNode {
		label, _ := b.StateMap()["label"].(string)
		return H("div", nil, label, b.Children())
	}), nil, childNode)
	_, container, rt := mountTest(t, root)

	child.SetState(map[string]any{"v": "kept"})
	wrapper.SetState(map[string]any{"label": "L"})

	if got := memhost.InnerHTML(container); got != `<div>L<b>kept</b></div>` {
		t.Errorf("InnerHTML = %s", got)
	}
	checkRanges(t, rt.Tree())
}

func TestObserverRecords(t *testing.T) {
	var c *fnComp
	root := H(itemsComp(&c), nil)
	c.SetState(map[string]any{"items": []any{"A"}})
	var ops []PatchOp
	mountTest(t, root, WithObserver(func(rec Record) { ops = append(ops, rec.Op) }))

	c.SetState(map[string]any{"items": []any{"Z", "B"}})

	want := []PatchOp{OpMount, OpInherit, OpInherit, OpReplace, OpAppend}
	if len(ops) != len(want) {
		t.Fatalf("ops = %v, want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Errorf("ops[%d] = %v, want %v", i, ops[i], want[i])
		}
	}
}

func TestWithTracer(t *testing.T) {
	var c *fnComp
	root := H(component(&c, func(b *Base) *VNode { return Text("t") }), nil)
	tracer := noop.NewTracerProvider().Tracer("test")
	_, container, _ := mountTest(t, root, WithTracer(tracer))

	c.SetState(1)

	if memhost.InnerHTML(container) != "t" {
		t.Errorf("InnerHTML = %s", memhost.InnerHTML(container))
	}
}

func TestRenderNilPanics(t *testing.T) {
	root := H(component(nil, func(b *Base) *VNode { return nil }), nil)
	doc := memhost.NewDocument()

	defer func() {
		rec := recover()
		err, ok := rec.(*errors.Error)
		if !ok || err.Code != "E103" {
			t.Errorf("recover = %v, want E103", rec)
		}
	}()
	_, _ = Mount(doc, root, doc.NewElement("main"))
}
