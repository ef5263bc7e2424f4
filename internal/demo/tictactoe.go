package demo

import (
	"fmt"

	"github.com/vango-dev/toyreact/pkg/vdom"
)

// lines are the winning index triples of a 3x3 board.
var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Winner returns "X" or "O" when a line is complete, or "".
func Winner(squares []string) string {
	for _, l := range lines {
		a, b, c := l[0], l[1], l[2]
		if squares[a] != "" && squares[a] == squares[b] && squares[a] == squares[c] {
			return squares[a]
		}
	}
	return ""
}

// Square is one cell. Props: "value" (string) and "onClick" (func()).
type Square struct {
	vdom.Base
}

func NewSquare() vdom.Component { return &Square{} }

func (s *Square) Render() *vdom.VNode {
	value, _ := s.Prop("value").(string)
	return vdom.H("button", vdom.Props{
		"className": "square",
		"onClick":   s.Prop("onClick"),
	}, value)
}

// Board lays out nine squares. Props: "squares" ([]string) and "onClick"
// (func(int)).
type Board struct {
	vdom.Base
}

func NewBoard() vdom.Component { return &Board{} }

func (b *Board) Render() *vdom.VNode {
	squares, _ := b.Prop("squares").([]string)
	onClick, _ := b.Prop("onClick").(func(int))

	rows := make([]*vdom.VNode, 0, 3)
	for r := 0; r < 3; r++ {
		cells := make([]*vdom.VNode, 0, 3)
		for c := 0; c < 3; c++ {
			i := r*3 + c
			cells = append(cells, vdom.H(NewSquare, vdom.Props{
				"value": squares[i],
				"onClick": func() {
					if onClick != nil {
						onClick(i)
					}
				},
			}))
		}
		rows = append(rows, vdom.H("div", vdom.Props{"className": "board-row"}, cells))
	}
	return vdom.H("div", nil, rows)
}

// Game owns the move history and whose turn it is.
//
// State: "history" ([]any of 9-element []any boards), "step" (int) and
// "xIsNext" (bool).
type Game struct {
	vdom.Base
}

// NewGame returns a game at the empty board with X to move.
func NewGame() vdom.Component {
	g := &Game{}
	g.SetState(map[string]any{
		"history": []any{make([]any, 9)},
		"step":    0,
		"xIsNext": true,
	})
	return g
}

// History returns every board position played, oldest first.
func (g *Game) History() [][]string {
	raw, _ := g.StateMap()["history"].([]any)
	out := make([][]string, len(raw))
	for i, board := range raw {
		cells, _ := board.([]any)
		row := make([]string, 9)
		for j := range row {
			if j < len(cells) {
				row[j], _ = cells[j].(string)
			}
		}
		out[i] = row
	}
	return out
}

// Step returns the index of the position on display.
func (g *Game) Step() int {
	n, _ := g.StateMap()["step"].(int)
	return n
}

func (g *Game) xIsNext() bool {
	x, _ := g.StateMap()["xIsNext"].(bool)
	return x
}

// Current returns the board on display.
func (g *Game) Current() []string {
	return g.History()[g.Step()]
}

// Play marks square i for the player to move. Moves on a won game or an
// occupied square are ignored.
func (g *Game) Play(i int) {
	history := g.History()[:g.Step()+1]
	current := history[len(history)-1]
	if Winner(current) != "" || current[i] != "" {
		return
	}

	next := append([]string(nil), current...)
	if g.xIsNext() {
		next[i] = "X"
	} else {
		next[i] = "O"
	}
	history = append(history, next)

	raw := make([]any, len(history))
	for k, board := range history {
		cells := make([]any, len(board))
		for j, v := range board {
			cells[j] = v
		}
		raw[k] = cells
	}
	g.SetState(map[string]any{
		"history": raw,
		"step":    len(history) - 1,
		"xIsNext": !g.xIsNext(),
	})
}

// JumpTo shows an earlier position. Playing from there discards the
// positions after it.
func (g *Game) JumpTo(step int) {
	g.SetState(map[string]any{
		"step":    step,
		"xIsNext": step%2 == 0,
	})
}

// Status describes the game outcome or the player to move.
func (g *Game) Status() string {
	current := g.Current()
	if w := Winner(current); w != "" {
		return "Winner: " + w
	}
	full := true
	for _, v := range current {
		if v == "" {
			full = false
			break
		}
	}
	if full {
		return "Draw"
	}
	if g.xIsNext() {
		return "Next player: X"
	}
	return "Next player: O"
}

func (g *Game) Render() *vdom.VNode {
	history := g.History()
	moves := make([]*vdom.VNode, 0, len(history))
	for move := range history {
		desc := "Go to game start"
		if move > 0 {
			desc = fmt.Sprintf("Go to move #%d", move)
		}
		moves = append(moves, vdom.H("li", nil,
			vdom.H("button", vdom.Props{"onClick": func() { g.JumpTo(move) }}, desc),
		))
	}

	return vdom.H("div", vdom.Props{"className": "game"},
		vdom.H("div", vdom.Props{"className": "game-board"},
			vdom.H(NewBoard, vdom.Props{"squares": g.Current(), "onClick": g.Play}),
		),
		vdom.H("div", vdom.Props{"className": "game-info"},
			vdom.H("div", vdom.Props{"className": "status"}, g.Status()),
			vdom.H("ol", nil, moves),
		),
	)
}
