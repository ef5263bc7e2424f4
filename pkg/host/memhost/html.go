package memhost

import (
	"bytes"
	"io"
	"strconv"
	"strings"
)

// voidElements are elements serialized without a closing tag.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// HTMLOptions configures serialization.
type HTMLOptions struct {
	// Pretty indents nested elements. Text-only elements stay on one line.
	Pretty bool

	// Indent is the string used per level in pretty mode. Defaults to two spaces.
	Indent string

	// NodeIDs emits a data-node attribute carrying each element's ID, so a
	// client can address elements when dispatching events.
	NodeIDs bool
}

// OuterHTML serializes n including its own tag.
func OuterHTML(n *Node) string {
	var buf bytes.Buffer
	_ = WriteHTML(&buf, n, HTMLOptions{})
	return buf.String()
}

// InnerHTML serializes n's children.
func InnerHTML(n *Node) string {
	var buf bytes.Buffer
	for _, c := range n.children {
		_ = WriteHTML(&buf, c, HTMLOptions{})
	}
	return buf.String()
}

// WriteHTML streams n to w.
func WriteHTML(w io.Writer, n *Node, opts HTMLOptions) error {
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	s := &serializer{w: w, opts: opts}
	s.node(n, 0)
	return s.err
}

type serializer struct {
	w    io.Writer
	opts HTMLOptions
	err  error
}

func (s *serializer) write(str string) {
	if s.err != nil {
		return
	}
	_, s.err = io.WriteString(s.w, str)
}

func (s *serializer) indent(depth int) {
	if s.opts.Pretty && depth > 0 {
		s.write("\n")
		s.write(strings.Repeat(s.opts.Indent, depth))
	}
}

func (s *serializer) node(n *Node, depth int) {
	if n.typ == TextNode {
		s.write(escapeHTML(n.data))
		return
	}

	s.indent(depth)
	s.write("<")
	s.write(n.tag)
	if s.opts.NodeIDs {
		s.write(` data-node="`)
		s.write(strconv.Itoa(n.id))
		s.write(`"`)
	}
	for _, a := range n.attrs {
		s.write(" ")
		s.write(a.Name)
		s.write(`="`)
		s.write(escapeAttr(a.Value))
		s.write(`"`)
	}
	s.write(">")

	if voidElements[n.tag] {
		return
	}

	nested := false
	for _, c := range n.children {
		if c.typ == ElementNode {
			nested = true
		}
		s.node(c, depth+1)
	}
	if nested && s.opts.Pretty {
		s.write("\n")
		s.write(strings.Repeat(s.opts.Indent, depth))
	}
	s.write("</")
	s.write(n.tag)
	s.write(">")
}

// escapeHTML escapes text for inclusion in element content.
func escapeHTML(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}

// escapeAttr escapes text for inclusion in a double-quoted attribute value.
func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\n':
			buf.WriteString("&#10;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}
