package kobra

import (
	"slices"

	"github.com/vovakirdan/kobra/internal/core"
)

// SnakeState is a read-only copy of one snake.
type SnakeState struct {
	Name   string
	Body   []Cell // Head first
	Color  core.Color
	Dir    Direction
	Length int
}

// Head returns the first segment. The zero Cell for an empty snake.
func (s SnakeState) Head() Cell {
	if len(s.Body) == 0 {
		return Cell{}
	}
	return s.Body[0]
}

// Snapshot captures the complete match state for rendering, replay and
// determinism testing. It shares no storage with the engine.
type Snapshot struct {
	Width     int
	Height    int
	Snakes    [2]SnakeState // Indexed by PlayerIndex and CPUIndex
	Red       *Cell         // Nil when absent
	Green     *Cell         // Nil when absent
	Status    Status
	Outcome   Outcome
	Tick      uint64
	WinLength int
	Pending   []Direction // Buffered player turns
}

// Player returns the player snake.
func (s Snapshot) Player() SnakeState {
	return s.Snakes[PlayerIndex]
}

// CPU returns the AI snake.
func (s Snapshot) CPU() SnakeState {
	return s.Snakes[CPUIndex]
}

// Report summarizes a finished match for persistence. ok is false while
// the match is still in progress.
func (s Snapshot) Report() (rep core.MatchReport, ok bool) {
	if s.Status != StatusOver {
		return core.MatchReport{}, false
	}
	rep = core.MatchReport{
		Cause:        string(s.Outcome.Cause),
		Reason:       s.Outcome.Reason,
		PlayerLength: s.Player().Length,
		CPULength:    s.CPU().Length,
		Ticks:        s.Tick,
	}
	switch s.Outcome.Result {
	case ResultPlayerWins:
		rep.Result = core.ResultPlayer
	case ResultAIWins:
		rep.Result = core.ResultCPU
	default:
		rep.Result = core.ResultDraw
	}
	return rep, true
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Width:     e.grid.Width,
		Height:    e.grid.Height,
		Red:       copyCell(e.apples[AppleRed]),
		Green:     copyCell(e.apples[AppleGreen]),
		Status:    e.status,
		Outcome:   e.outcome,
		Tick:      e.ticks,
		WinLength: e.rules.WinLength,
		Pending:   e.input.Pending(),
	}
	for i := range e.snakes {
		s := &e.snakes[i]
		snap.Snakes[i] = SnakeState{
			Name:   s.Name,
			Body:   slices.Clone(s.Body),
			Color:  s.Color,
			Dir:    s.Dir,
			Length: s.Len(),
		}
	}
	return snap
}

func copyCell(c *Cell) *Cell {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
