package vtest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/vango-dev/toyreact/pkg/host/memhost"
	"github.com/vango-dev/toyreact/pkg/vdom"
)

// RenderToString mounts node into a fresh document and returns the HTML it
// produced. Mount failures yield an empty string.
//
// Example:
//
//	html := vtest.RenderToString(vdom.H(NewGreeting, nil))
//	if !strings.Contains(html, "expected text") {
//	    t.Error("missing expected text")
//	}
func RenderToString(node *vdom.VNode) string {
	doc := memhost.NewDocument()
	container := doc.NewElement("main")
	if _, err := vdom.Mount(doc, node, container); err != nil {
		return ""
	}
	return memhost.InnerHTML(container)
}

// ExpectContains asserts that rendered output contains expected substring.
//
// Example:
//
//	vtest.ExpectContains(t, vdom.H(NewGreeting, nil), "Welcome Admin")
func ExpectContains(t testing.TB, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t testing.TB, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains a specific tag.
func ExpectElement(t testing.TB, node *vdom.VNode, tag string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, "<"+tag) {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
//
// Example:
//
//	vtest.ExpectAttribute(t, vdom.H(NewButton, nil), "class", "btn-primary")
func ExpectAttribute(t testing.TB, node *vdom.VNode, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// CheckRanges verifies that every node of a rendered memhost tree is bound
// to a range covering exactly its own host node.
func CheckRanges(tree *vdom.VNode) error {
	rng := tree.Range()
	if rng == nil || tree.HostNode() == nil {
		return fmt.Errorf("%s: not bound", describe(tree))
	}
	hn, ok := tree.HostNode().(*memhost.Node)
	if !ok {
		return fmt.Errorf("%s: host node is %T, not *memhost.Node", describe(tree), tree.HostNode())
	}
	if hn.ParentNode() == nil {
		return fmt.Errorf("%s: host node is detached", describe(tree))
	}
	if rng.StartContainer() != hn.Parent() || rng.EndContainer() != hn.Parent() {
		return fmt.Errorf("%s: range is not in the host node's parent", describe(tree))
	}
	if rng.StartOffset() != hn.Index() || rng.EndOffset() != hn.Index()+1 {
		return fmt.Errorf("%s: range %d..%d, host node at %d",
			describe(tree), rng.StartOffset(), rng.EndOffset(), hn.Index())
	}
	for _, c := range tree.VChildren() {
		if err := CheckRanges(c); err != nil {
			return err
		}
	}
	return nil
}

// CountNodes returns the number of nodes in a rendered tree.
func CountNodes(tree *vdom.VNode) int {
	n := 1
	for _, c := range tree.VChildren() {
		n += CountNodes(c)
	}
	return n
}

func describe(n *vdom.VNode) string {
	if n.Kind == vdom.KindText {
		return fmt.Sprintf("text %q", n.Text)
	}
	return "<" + n.Tag + ">"
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
