package memhost

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributesKeepFirstSetOrder(t *testing.T) {
	doc := NewDocument()
	el := doc.NewElement("a")
	el.SetAttribute("href", "/x")
	el.SetAttribute("class", "btn")
	el.SetAttribute("href", "/y")

	assert.Equal(t, []Attr{{"href", "/y"}, {"class", "btn"}}, el.Attributes())
	v, ok := el.Attribute("class")
	assert.True(t, ok)
	assert.Equal(t, "btn", v)
}

func TestSerialize(t *testing.T) {
	doc := NewDocument()
	root := doc.NewElement("div")
	root.SetAttribute("title", `say "hi"`)
	p := doc.NewElement("p")
	p.AppendChild(doc.NewText("a < b & c"))
	root.AppendChild(p)
	root.AppendChild(doc.NewElement("br"))

	assert.Equal(t, `<div title="say &quot;hi&quot;"><p>a &lt; b &amp; c</p><br></div>`, OuterHTML(root))
	assert.Equal(t, `<p>a &lt; b &amp; c</p><br>`, InnerHTML(root))
}

func TestSerializePrettyWithIDs(t *testing.T) {
	doc := NewDocument()
	root := doc.NewElement("ul")
	li := doc.NewElement("li")
	li.AppendChild(doc.NewText("one"))
	root.AppendChild(li)

	var b strings.Builder
	require.NoError(t, WriteHTML(&b, root, HTMLOptions{Pretty: true, NodeIDs: true}))

	assert.Equal(t, "<ul data-node=\"1\">\n  <li data-node=\"2\">one</li>\n</ul>", b.String())
}

func TestParseFragment(t *testing.T) {
	doc := NewDocument()
	root := doc.NewElement("div")

	require.NoError(t, ParseFragment(root, `<p class="x">hello</p><!-- c -->tail`))

	require.Equal(t, 2, root.ChildCount())
	assert.Equal(t, "p", root.Child(0).Tag())
	assert.Equal(t, "hello", root.Child(0).TextContent())
	assert.Equal(t, "tail", root.Child(1).Data())
	assert.Equal(t, `<p class="x">hello</p>tail`, InnerHTML(root))
}

func TestMinify(t *testing.T) {
	src := "<div>\n    <span>hi</span>\n</div>"
	out := Minify(src)

	assert.Less(t, len(out), len(src))
	assert.Contains(t, out, "hi")
	assert.NotContains(t, out, "\n")
}

func TestDispatch(t *testing.T) {
	doc := NewDocument()
	btn := doc.NewElement("button")
	var calls []string
	btn.AddEventListener("click", func() { calls = append(calls, "plain") })
	btn.AddEventListener("click", func(ev *Event) {
		calls = append(calls, ev.Type+":"+ev.Payload.(string))
	})
	btn.AddEventListener("focus", func() { calls = append(calls, "focus") })

	n, err := btn.Dispatch("click", "p")

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"plain", "click:p"}, calls)
	assert.Equal(t, []string{"click", "focus"}, btn.Events())
	assert.Equal(t, 1, btn.ListenerCount("focus"))
}

func TestDispatchUnsupportedListener(t *testing.T) {
	doc := NewDocument()
	btn := doc.NewElement("button")
	btn.AddEventListener("click", "not a func")

	_, err := btn.Dispatch("click", nil)

	assert.Error(t, err)
}

func TestFindByID(t *testing.T) {
	doc := NewDocument()
	root := doc.NewElement("div")
	inner := doc.NewElement("span")
	root.AppendChild(inner)

	assert.Same(t, inner, root.FindByID(inner.ID()))
	assert.Nil(t, root.FindByID(999))
}

func TestElementsByTag(t *testing.T) {
	doc := NewDocument()
	root := doc.NewElement("main")
	require.NoError(t, ParseFragment(root, `<p>a</p><ul><li><b>b</b></li><li>c</li></ul>`))

	var texts []string
	for _, n := range root.ElementsByTag("li") {
		texts = append(texts, n.TextContent())
	}

	assert.Equal(t, []string{"b", "c"}, texts)
	assert.Len(t, root.ElementsByTag("b"), 1)
	assert.Empty(t, root.ElementsByTag("table"))
}
