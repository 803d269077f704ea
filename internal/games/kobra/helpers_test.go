package kobra

import (
	"strings"
	"testing"

	"golang.org/x/exp/rand"
)

// newTestEngine returns an idle default engine with no apples on the board
// and a CPU that never turns.
func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine(DefaultRules(), Straight{}, rand.New(rand.NewSource(1)))
	e.apples = [appleCount]*Cell{}
	return e
}

// setApple places (or removes, with nil) apple a without spawn checks.
func setApple(e *Engine, a Apple, c *Cell) {
	e.apples[a] = copyCell(c)
}

func cellPtr(x, y int) *Cell {
	return &Cell{X: x, Y: y}
}

// dumpBoard renders the engine state as text for test failure messages.
// P/p player head/body, A/a AI head/body, R red apple, G green apple.
func dumpBoard(e *Engine) string {
	rows := make([][]byte, e.grid.Height)
	for y := range rows {
		rows[y] = []byte(strings.Repeat(".", e.grid.Width))
	}
	if c := e.apples[AppleRed]; c != nil {
		rows[c.Y][c.X] = 'R'
	}
	if c := e.apples[AppleGreen]; c != nil {
		rows[c.Y][c.X] = 'G'
	}
	marks := [2][2]byte{{'P', 'p'}, {'A', 'a'}}
	for i := range e.snakes {
		for j := len(e.snakes[i].Body) - 1; j >= 0; j-- {
			c := e.snakes[i].Body[j]
			mark := marks[i][1]
			if j == 0 {
				mark = marks[i][0]
			}
			rows[c.Y][c.X] = mark
		}
	}
	var b strings.Builder
	b.WriteString("\n")
	for _, r := range rows {
		b.Write(r)
		b.WriteString("\n")
	}
	b.WriteString("status=" + e.status.String() + " reason=" + e.outcome.Reason + "\n")
	return b.String()
}

func cellsEqual(a, b []Cell) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
