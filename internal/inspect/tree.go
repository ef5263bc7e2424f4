package inspect

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vango-dev/toyreact/pkg/host/memhost"
)

const (
	ansiGreen  = 2
	ansiYellow = 3
	ansiCyan   = 6
	ansiGray   = 8
)

var (
	tagStyle    = lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(ansiCyan)).Bold(true)
	attrStyle   = lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(ansiYellow))
	textStyle   = lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(ansiGreen))
	branchStyle = lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(ansiGray))
)

// TreeOptions configures Tree.
type TreeOptions struct {
	// NodeIDs appends each element's id, as used by the event route.
	NodeIDs bool

	// Listeners appends the events each element listens for.
	Listeners bool
}

// Tree writes an outline of n and its descendants, one node per line.
func Tree(w io.Writer, n *memhost.Node, opts TreeOptions) error {
	var b strings.Builder
	b.WriteString(label(n, opts))
	b.WriteByte('\n')
	writeChildren(&b, n, "", opts)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeChildren(b *strings.Builder, n *memhost.Node, prefix string, opts TreeOptions) {
	children := n.Children()
	for i, c := range children {
		branch, indent := "├── ", "│   "
		if i == len(children)-1 {
			branch, indent = "└── ", "    "
		}
		b.WriteString(branchStyle.Render(prefix + branch))
		b.WriteString(label(c, opts))
		b.WriteByte('\n')
		writeChildren(b, c, prefix+indent, opts)
	}
}

func label(n *memhost.Node, opts TreeOptions) string {
	if n.Type() == memhost.TextNode {
		return textStyle.Render(strconv.Quote(n.Data()))
	}

	parts := []string{tagStyle.Render(n.Tag())}
	for _, a := range n.Attributes() {
		parts = append(parts, attrStyle.Render(fmt.Sprintf("%s=%q", a.Name, a.Value)))
	}
	if opts.Listeners {
		for _, ev := range n.Events() {
			parts = append(parts, branchStyle.Render("@"+ev))
		}
	}
	if opts.NodeIDs {
		parts = append(parts, branchStyle.Render("#"+strconv.Itoa(n.ID())))
	}
	return strings.Join(parts, " ")
}
