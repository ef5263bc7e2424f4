package vdom

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/toyreact/internal/errors"
	"github.com/vango-dev/toyreact/pkg/host"
)

// Default tracer name for renderer spans.
const defaultTracerName = "github.com/vango-dev/toyreact/pkg/vdom"

// Renderer materializes virtual trees into a host document and patches them
// on state updates.
type Renderer struct {
	doc       host.Document
	logger    *slog.Logger
	metrics   *Metrics
	tracer    trace.Tracer
	observer  func(Record)
	keepStale bool
	stats     Stats

	// roots mounted from an element. Component roots read the component's
	// retained tree instead.
	roots []*Root
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// WithMetrics records outcomes into m.
func WithMetrics(m *Metrics) Option {
	return func(r *Renderer) {
		r.metrics = m
	}
}

// WithTracer sets the tracer. Default: the global provider's tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Renderer) {
		r.tracer = tracer
	}
}

// WithObserver receives a Record for every reconciliation outcome.
func WithObserver(fn func(Record)) Option {
	return func(r *Renderer) {
		r.observer = fn
	}
}

// WithKeepStaleChildren leaves the host content of trailing children in
// place when a child list shrinks. By default it is removed.
func WithKeepStaleChildren(keep bool) Option {
	return func(r *Renderer) {
		r.keepStale = keep
	}
}

// NewRenderer creates a Renderer over doc.
func NewRenderer(doc host.Document, opts ...Option) *Renderer {
	r := &Renderer{doc: doc}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.tracer == nil {
		r.tracer = otel.Tracer(defaultTracerName)
	}
	return r
}

// Stats returns the cumulative outcome counts.
func (r *Renderer) Stats() Stats { return r.stats }

// Document returns the host document.
func (r *Renderer) Document() host.Document { return r.doc }

// Root is a mounted tree.
type Root struct {
	renderer *Renderer
	node     *VNode
	tree     *VNode
	rng      host.Range
}

// Range returns the range spanning the mounted content.
func (rt *Root) Range() host.Range { return rt.rng }

// Renderer returns the renderer driving the tree.
func (rt *Root) Renderer() *Renderer { return rt.renderer }

// Stats returns the renderer's cumulative outcome counts.
func (rt *Root) Stats() Stats { return rt.renderer.stats }

// Tree returns the resolved tree currently occupying the root range.
func (rt *Root) Tree() *VNode {
	if rt.node.Kind == KindComponent {
		if b := baseOf(rt.node.Comp); b.retained != nil {
			return b.retained
		}
	}
	return rt.tree
}

// Component returns the root component, or nil when the root is not one.
func (rt *Root) Component() Component {
	if rt.node.Kind != KindComponent {
		return nil
	}
	return rt.node.Comp
}

// Mount renders root into container, replacing the container's current
// content. It is a direct materialize, not a diff.
func Mount(doc host.Document, root *VNode, container host.Node, opts ...Option) (*Root, error) {
	if doc == nil {
		return nil, errors.New("E203")
	}
	return NewRenderer(doc, opts...).Mount(root, container)
}

// Mount renders root into container using r.
func (r *Renderer) Mount(root *VNode, container host.Node) (*Root, error) {
	if root == nil {
		return nil, errors.New("E201")
	}
	if isNil(container) {
		return nil, errors.New("E202").WithSuggestion("pass the element the tree should render into")
	}

	_, span := r.tracer.Start(context.Background(), "vdom.Mount", trace.WithAttributes(
		attribute.String("root.kind", root.Kind.String()),
	))
	defer span.End()
	defer recordPanic(span)

	start := time.Now()
	before := r.stats

	rng := host.NewRange(r.doc, container, 0, container.ChildCount())

	var tree *VNode
	if root.Kind == KindComponent {
		tree = baseOf(root.Comp).VDOM()
	} else {
		tree = resolve(root)
	}
	r.materialize(tree, rng, nil, 0)
	r.emit(OpMount, tree, 0)

	delta := r.stats.Sub(before)
	span.SetAttributes(attribute.Int("nodes.mounted", delta.Mounted))
	if r.metrics != nil {
		r.metrics.observeMount()
	}
	r.logger.Debug("mounted tree",
		"root", recordTag(tree),
		"duration", time.Since(start),
	)

	rt := &Root{renderer: r, node: root, tree: tree, rng: rng}
	if root.Kind != KindComponent {
		r.roots = append(r.roots, rt)
	}
	return rt, nil
}

// update re-renders b and patches the result against its retained tree.
func (r *Renderer) update(b *Base) {
	name := b.typeName()
	_, span := r.tracer.Start(context.Background(), "vdom.Update", trace.WithAttributes(
		attribute.String("component", name),
	))
	defer span.End()
	defer recordPanic(span)

	start := time.Now()
	before := r.stats

	prev := b.retained
	b.memo = nil
	next := b.VDOM()
	r.patch(prev, next, b.enclosing, 0)
	r.splice(b, prev, next)

	delta := r.stats.Sub(before)
	elapsed := time.Since(start)
	span.SetAttributes(
		attribute.Int("nodes.inherited", delta.Inherited),
		attribute.Int("nodes.replaced", delta.Replaced),
		attribute.Int("nodes.appended", delta.Appended),
		attribute.Int("nodes.removed", delta.Removed),
	)
	if r.metrics != nil {
		r.metrics.observeUpdate(name, elapsed)
	}
	r.logger.Debug("state update",
		"component", name,
		"inherited", delta.Inherited,
		"replaced", delta.Replaced,
		"appended", delta.Appended,
		"removed", delta.Removed,
		"duration", elapsed,
	)
}

// bind attaches rng to node and to every component that produced it. It
// returns the component that encloses node's children.
func (r *Renderer) bind(node *VNode, rng host.Range, within *Base) *Base {
	node.rng = rng
	enclosing := within
	for _, o := range node.owners {
		o.r = r
		o.rng = rng
		o.retained = node
		o.memo = node
		o.enclosing = enclosing
		enclosing = o
	}
	return enclosing
}

// materialize builds fresh host content for node and places it in rng.
func (r *Renderer) materialize(node *VNode, rng host.Range, within *Base, depth int) {
	inner := r.bind(node, rng, within)

	if node.Kind == KindText {
		tn := r.doc.CreateTextNode(node.Text)
		host.ReplaceContents(rng, tn)
		node.hostNode = tn
		return
	}

	el := r.doc.CreateElement(node.Tag)
	for _, name := range sortedKeys(node.Props) {
		value := node.Props[name]
		if value == nil {
			continue
		}
		if IsEventProp(name) {
			el.AddEventListener(EventName(name), value)
			continue
		}
		el.SetAttribute(AttributeName(name), propToString(value))
	}
	for _, child := range node.vchildren {
		n := el.ChildCount()
		r.materialize(child, host.NewRange(r.doc, el, n, n), inner, depth+1)
	}
	host.ReplaceContents(rng, el)
	node.hostNode = el
}

// patch moves the host content from representing prev to representing next.
func (r *Renderer) patch(prev, next *VNode, within *Base, depth int) {
	if !SameNode(prev, next) {
		r.materialize(next, prev.rng, within, depth)
		r.release(prev, false)
		r.emit(OpReplace, next, depth)
		return
	}

	inner := r.bind(next, prev.rng, within)
	next.hostNode = prev.hostNode
	r.emit(OpInherit, next, depth)

	if next.Kind == KindText {
		return
	}

	oldKids, newKids := prev.vchildren, next.vchildren
	var tail host.Range
	for i, child := range newKids {
		if i < len(oldKids) {
			r.patch(oldKids[i], child, inner, depth+1)
			tail = child.rng
			continue
		}
		var rng host.Range
		if tail != nil {
			rng = host.NewRange(r.doc, tail.EndContainer(), tail.EndOffset(), tail.EndOffset())
		} else {
			n := next.hostNode.ChildCount()
			rng = host.NewRange(r.doc, next.hostNode, n, n)
		}
		r.materialize(child, rng, inner, depth+1)
		r.emit(OpAppend, child, depth+1)
		tail = rng
	}

	if r.keepStale {
		return
	}
	for i := len(newKids); i < len(oldKids); i++ {
		stale := oldKids[i]
		stale.rng.DeleteContents()
		r.release(stale, true)
		r.emit(OpRemove, stale, depth+1)
	}
}

// release detaches the ranges of a discarded subtree. The root's own range
// is kept when it has been handed to a replacement.
func (r *Renderer) release(node *VNode, self bool) {
	if self {
		detach(node.rng)
	}
	for _, c := range node.vchildren {
		r.release(c, true)
	}
}

// splice swaps b's previous tree for next in the trees of the components
// enclosing it, keeping their retained trees in line with the host. When
// no enclosing component holds prev as a child, the element roots are
// searched.
func (r *Renderer) splice(b *Base, prev, next *VNode) {
	if prev == next {
		return
	}
	for e := b.enclosing; e != nil; e = e.enclosing {
		if e.retained == prev {
			e.retained = next
			e.memo = next
			continue
		}
		if e.retained != nil && replaceChild(e.retained, prev, next) {
			r.logger.Debug("spliced nested update",
				"component", b.typeName(),
				"into", e.typeName(),
			)
		}
		return
	}
	for _, rt := range r.roots {
		if rt.tree == prev {
			rt.tree = next
			return
		}
		if replaceChild(rt.tree, prev, next) {
			r.logger.Debug("spliced nested update",
				"component", b.typeName(),
				"into", "root",
			)
			return
		}
	}
}

func replaceChild(root, prev, next *VNode) bool {
	for i, c := range root.vchildren {
		if c == prev {
			root.vchildren[i] = next
			return true
		}
		if replaceChild(c, prev, next) {
			return true
		}
	}
	return false
}

func (r *Renderer) emit(op PatchOp, node *VNode, depth int) {
	r.stats.add(op)
	if r.metrics != nil {
		r.metrics.observeOp(op)
	}
	if r.observer != nil {
		r.observer(Record{Op: op, Kind: node.Kind, Tag: recordTag(node), Depth: depth, Node: node})
	}
}

func detach(rng host.Range) {
	if d, ok := rng.(host.Detacher); ok {
		d.Detach()
	}
}

func sortedKeys(p Props) []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func isNil(n host.Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// recordPanic marks the span failed when rendering panics, then re-panics.
func recordPanic(span trace.Span) {
	if rec := recover(); rec != nil {
		span.SetStatus(codes.Error, fmt.Sprint(rec))
		panic(rec)
	}
}
