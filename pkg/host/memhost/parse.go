package memhost

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseFragment parses src as body content and appends the resulting nodes
// to container. Comments and doctypes are dropped.
func ParseFragment(container *Node, src string) error {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(src), context)
	if err != nil {
		return fmt.Errorf("memhost: parse fragment: %w", err)
	}
	for _, n := range nodes {
		if c := container.doc.convert(n); c != nil {
			container.AppendChild(c)
		}
	}
	return nil
}

func (d *Document) convert(n *html.Node) *Node {
	switch n.Type {
	case html.TextNode:
		return d.NewText(n.Data)
	case html.ElementNode:
		el := d.NewElement(n.Data)
		for _, a := range n.Attr {
			name := a.Key
			if a.Namespace != "" {
				name = a.Namespace + ":" + a.Key
			}
			el.SetAttribute(name, a.Val)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := d.convert(c); child != nil {
				el.AppendChild(child)
			}
		}
		return el
	default:
		return nil
	}
}
