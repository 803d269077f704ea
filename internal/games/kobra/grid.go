// Package kobra implements KObra, a two-snake duel on a toroidal grid.
//
// The rules live in Engine, a deterministic state machine advanced one move
// at a time by Tick. Game adapts the engine to the terminal platform and Env
// drives it headlessly for simulations.
package kobra

// Cell is a position on the grid.
type Cell struct {
	X, Y int
}

// Direction is a unit step on the grid.
type Direction struct {
	DX, DY int
}

// The four movement directions.
var (
	Right = Direction{DX: 1, DY: 0}
	Left  = Direction{DX: -1, DY: 0}
	Down  = Direction{DX: 0, DY: 1}
	Up    = Direction{DX: 0, DY: -1}
)

// Directions lists every movement direction in a fixed order.
var Directions = [4]Direction{Right, Down, Left, Up}

// IsZero reports whether d is the zero (no movement) direction.
func (d Direction) IsZero() bool {
	return d.DX == 0 && d.DY == 0
}

// IsValid reports whether d is one of the four unit directions.
func (d Direction) IsValid() bool {
	return (d.DX == 0) != (d.DY == 0) && d.DX >= -1 && d.DX <= 1 && d.DY >= -1 && d.DY <= 1
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return Direction{DX: -d.DX, DY: -d.DY}
}

// IsOpposite reports whether d exactly reverses other.
func (d Direction) IsOpposite(other Direction) bool {
	return !d.IsZero() && d == other.Opposite()
}

func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case Left:
		return "left"
	case Down:
		return "down"
	case Up:
		return "up"
	case Direction{}:
		return "none"
	default:
		return "invalid"
	}
}

// Wrap maps coord into [0, dim). A non-positive dim yields 0.
func Wrap(coord, dim int) int {
	if dim <= 0 {
		return 0
	}
	return ((coord % dim) + dim) % dim
}

// Grid is a toroidal board: leaving one edge re-enters on the opposite one.
type Grid struct {
	Width, Height int
}

// Step returns the neighbour of c in direction d, wrapped onto the board.
func (g Grid) Step(c Cell, d Direction) Cell {
	return g.Wrap(Cell{X: c.X + d.DX, Y: c.Y + d.DY})
}

// Wrap maps an arbitrary cell onto the board.
func (g Grid) Wrap(c Cell) Cell {
	return Cell{X: Wrap(c.X, g.Width), Y: Wrap(c.Y, g.Height)}
}

// Contains reports whether c lies on the board without wrapping.
func (g Grid) Contains(c Cell) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// Area returns the number of cells.
func (g Grid) Area() int {
	return g.Width * g.Height
}

// Distance is the Manhattan distance between a and b on the torus.
func (g Grid) Distance(a, b Cell) int {
	return torusDelta(a.X, b.X, g.Width) + torusDelta(a.Y, b.Y, g.Height)
}

func torusDelta(a, b, dim int) int {
	d := Wrap(a-b, dim)
	return min(d, dim-d)
}
