package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/toyreact/internal/demo"
	"github.com/vango-dev/toyreact/internal/errors"
	"github.com/vango-dev/toyreact/internal/inspect"
	"github.com/vango-dev/toyreact/pkg/host/memhost"
	"github.com/vango-dev/toyreact/pkg/vdom"
)

type renderOptions struct {
	pretty    bool
	minify    bool
	tree      bool
	nodeIDs   bool
	keepStale bool
	clicks    []string
}

func renderCmd(a *app) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render [demo]",
		Short: "Mount a demo and print the resulting HTML",
		Long: `Mount a demo into an in-memory document and print its HTML.

Clicks are dispatched in order before printing, so the output shows the
tree after those state updates.

Demos: ` + strings.Join(demo.Names(), ", ") + `

Examples:
  toyreact render hello
  toyreact render counter --click button:1 --click button:1
  toyreact render tictactoe --click button:4 --tree`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "hello"
			if len(args) == 1 {
				name = args[0]
			}
			flags := cmd.Flags()
			if !flags.Changed("pretty") {
				opts.pretty = a.cfg.Render.Pretty
			}
			if !flags.Changed("minify") {
				opts.minify = a.cfg.Render.Minify
			}
			if !flags.Changed("keep-stale") {
				opts.keepStale = a.cfg.Render.KeepStaleChildren
			}
			return a.runRender(cmd.OutOrStdout(), name, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.pretty, "pretty", "p", false, "Indent nested elements")
	cmd.Flags().BoolVarP(&opts.minify, "minify", "m", false, "Minify the HTML output")
	cmd.Flags().BoolVarP(&opts.tree, "tree", "t", false, "Print a tree outline instead of HTML")
	cmd.Flags().BoolVar(&opts.nodeIDs, "node-ids", false, "Include element node ids")
	cmd.Flags().BoolVar(&opts.keepStale, "keep-stale", false, "Leave trailing content in place when a child list shrinks")
	cmd.Flags().StringArrayVar(&opts.clicks, "click", nil, "Dispatch a click on the tag:index element (repeatable)")

	return cmd
}

func (a *app) runRender(out io.Writer, name string, opts renderOptions) error {
	d, err := demo.Lookup(name)
	if err != nil {
		return err
	}

	doc := memhost.NewDocument()
	container := doc.NewElement("main")
	root, err := vdom.Mount(doc, d.Build(), container,
		vdom.WithLogger(a.logger),
		vdom.WithKeepStaleChildren(opts.keepStale),
	)
	if err != nil {
		return err
	}

	for _, target := range opts.clicks {
		if err := click(container, target); err != nil {
			return err
		}
	}

	stats := root.Stats()
	a.logger.Info("rendered",
		"demo", name,
		"clicks", len(opts.clicks),
		"inherited", stats.Inherited,
		"replaced", stats.Replaced,
		"appended", stats.Appended,
		"removed", stats.Removed,
	)

	if opts.tree {
		return inspect.Tree(out, container, inspect.TreeOptions{NodeIDs: opts.nodeIDs, Listeners: true})
	}

	html := renderHTML(container, memhost.HTMLOptions{Pretty: opts.pretty && !opts.minify, NodeIDs: opts.nodeIDs})
	if opts.minify {
		html = memhost.Minify(html)
	}
	_, err = fmt.Fprintln(out, html)
	return err
}

func renderHTML(container *memhost.Node, opts memhost.HTMLOptions) string {
	var b strings.Builder
	for i, c := range container.Children() {
		if i > 0 && opts.Pretty {
			b.WriteByte('\n')
		}
		_ = memhost.WriteHTML(&b, c, opts)
	}
	return b.String()
}

// click dispatches a click on the element named by a tag:index target.
func click(container *memhost.Node, target string) error {
	tag, idx, ok := strings.Cut(target, ":")
	index, err := strconv.Atoi(idx)
	if !ok || tag == "" || err != nil || index < 0 {
		return errors.New("E403").WithDetailf("got %q", target)
	}

	all := container.ElementsByTag(tag)
	if index >= len(all) {
		return errors.New("E404").WithDetailf("%s: only %d <%s> elements", target, len(all), tag)
	}
	ran, err := all[index].Dispatch("click", nil)
	if err != nil {
		return errors.New("E404").Wrap(err)
	}
	if ran == 0 {
		return errors.New("E404").WithDetailf("%s has no click listener", target)
	}
	return nil
}
