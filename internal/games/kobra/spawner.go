package kobra

import (
	"errors"

	"golang.org/x/exp/rand"
)

// ErrGridFull is returned when an apple has no free cell to spawn on.
var ErrGridFull = errors.New("kobra: no free cell for apple")

// Apple identifies one of the two apples.
type Apple int

const (
	AppleRed   Apple = iota // Grows the eater
	AppleGreen              // Shrinks the eater's opponent
	appleCount
)

func (a Apple) String() string {
	switch a {
	case AppleRed:
		return "red"
	case AppleGreen:
		return "green"
	default:
		return "unknown"
	}
}

// Spawner picks apple cells uniformly among the free cells of a grid.
type Spawner struct {
	grid Grid
	rng  *rand.Rand
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(grid Grid, rng *rand.Rand) Spawner {
	return Spawner{grid: grid, rng: rng}
}

// FreeCells lists cells for which occupied returns false, in row-major order.
func (s Spawner) FreeCells(occupied func(Cell) bool) []Cell {
	free := make([]Cell, 0, s.grid.Area())
	for y := range s.grid.Height {
		for x := range s.grid.Width {
			c := Cell{X: x, Y: y}
			if !occupied(c) {
				free = append(free, c)
			}
		}
	}
	return free
}

// Pick returns a uniformly chosen free cell, or ErrGridFull.
func (s Spawner) Pick(occupied func(Cell) bool) (Cell, error) {
	free := s.FreeCells(occupied)
	if len(free) == 0 {
		return Cell{}, ErrGridFull
	}
	return free[s.rng.Intn(len(free))], nil
}
