// Package demo holds example components that exercise the renderer: a static
// composition, a counter and a tic-tac-toe game.
package demo

import (
	"sort"

	"github.com/vango-dev/toyreact/internal/errors"
	"github.com/vango-dev/toyreact/pkg/vdom"
)

// Demo is a named example tree.
type Demo struct {
	Name        string
	Description string
	Build       func() *vdom.VNode
}

var demos = map[string]Demo{
	"hello": {
		Name:        "hello",
		Description: "Component wrapping the children it is given",
		Build:       Hello,
	},
	"counter": {
		Name:        "counter",
		Description: "Buttons updating a number through SetState",
		Build:       func() *vdom.VNode { return vdom.H(NewCounter, nil) },
	},
	"tictactoe": {
		Name:        "tictactoe",
		Description: "Game, board and squares with move history",
		Build:       func() *vdom.VNode { return vdom.H(NewGame, nil) },
	},
}

// Names returns the registered demo names, sorted.
func Names() []string {
	names := make([]string, 0, len(demos))
	for name := range demos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the demo registered under name.
func Lookup(name string) (Demo, error) {
	d, ok := demos[name]
	if !ok {
		return Demo{}, errors.New("E401").
			WithDetailf("no demo named %q", name).
			WithSuggestion("available demos: hello, counter, tictactoe")
	}
	return d, nil
}
