package kobra

import (
	"slices"

	"github.com/vovakirdan/kobra/internal/core"
)

// Controller decides where a snake's direction comes from.
// Implemented only by PlayerControlled and PolicyControlled.
type Controller interface {
	controller()
}

// PlayerControlled snakes consume directions from the engine's InputBuffer.
type PlayerControlled struct{}

// PolicyControlled snakes ask Policy for a direction every move.
type PolicyControlled struct {
	Policy Policy
}

func (PlayerControlled) controller() {}
func (PolicyControlled) controller() {}

// Snake is one competitor. Body is ordered head first.
type Snake struct {
	Name    string
	Body    []Cell
	Dir     Direction
	Color   core.Color
	Control Controller
}

// Len returns the number of segments.
func (s *Snake) Len() int {
	return len(s.Body)
}

// Head returns the first segment. The zero Cell for an empty snake.
func (s *Snake) Head() Cell {
	if len(s.Body) == 0 {
		return Cell{}
	}
	return s.Body[0]
}

// Occupies reports whether any segment is on c.
func (s *Snake) Occupies(c Cell) bool {
	return slices.Contains(s.Body, c)
}

// clone returns a copy that shares no storage with s.
func (s *Snake) clone() Snake {
	c := *s
	c.Body = slices.Clone(s.Body)
	return c
}

// advance pushes head onto the body and drops the tail unless grow is set.
func (s *Snake) advance(head Cell, grow bool) {
	keep := len(s.Body)
	if !grow {
		keep--
	}
	body := make([]Cell, 0, keep+1)
	body = append(body, head)
	body = append(body, s.Body[:max(0, keep)]...)
	s.Body = body
}

// shrink drops the tail segment when more than one remains.
func (s *Snake) shrink() {
	if len(s.Body) > 1 {
		s.Body = s.Body[:len(s.Body)-1]
	}
}

// Starting layouts. Both snakes face right.
var (
	playerStart = []Cell{{8, 8}, {7, 8}, {6, 8}, {5, 8}}
	cpuStart    = []Cell{{4, 4}, {3, 4}, {2, 4}, {1, 4}}
)
