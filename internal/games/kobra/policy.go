package kobra

import (
	"fmt"
	"math"

	"github.com/vovakirdan/kobra/internal/config"
)

// Policy steers a snake. Next is called once per move with a view from that
// snake's perspective and returns the direction to take. A zero direction
// keeps the current one; any other result is applied as given.
type Policy interface {
	Next(v View) Direction
}

// View is the board as seen by one snake. Snakes are copies.
type View struct {
	Grid      Grid
	Self      Snake
	Opponent  Snake
	Red       *Cell
	Green     *Cell
	WinLength int
}

// view builds the View for snake i.
func (e *Engine) view(i int) View {
	return View{
		Grid:      e.grid,
		Self:      e.snakes[i].clone(),
		Opponent:  e.snakes[1-i].clone(),
		Red:       copyCell(e.apples[AppleRed]),
		Green:     copyCell(e.apples[AppleGreen]),
		WinLength: e.rules.WinLength,
	}
}

// Straight never turns.
type Straight struct{}

// Next keeps the current direction.
func (Straight) Next(v View) Direction {
	return v.Self.Dir
}

// Greedy heads for the closest useful apple and avoids moves that would
// lose on the next tick. It never reverses.
type Greedy struct{}

// Next picks the safe direction closest to the target apple. Moves that
// could meet the opponent head-on are avoided when any alternative exists.
func (Greedy) Next(v View) Direction {
	target, hasTarget := greedyTarget(v)
	head := v.Self.Head()

	for _, strict := range []bool{true, false} {
		best, bestDist := Direction{}, math.MaxInt
		for _, d := range candidates(v.Self.Dir) {
			next := v.Grid.Step(head, d)
			if !v.safe(next, strict) {
				continue
			}
			dist := 0
			if hasTarget {
				dist = v.Grid.Distance(next, target)
			}
			if dist < bestDist {
				best, bestDist = d, dist
			}
		}
		if !best.IsZero() {
			return best
		}
	}
	return v.Self.Dir
}

// greedyTarget prefers a green apple that would starve the opponent,
// then red, then any green.
func greedyTarget(v View) (Cell, bool) {
	switch {
	case v.Green != nil && v.Opponent.Len() <= 2:
		return *v.Green, true
	case v.Red != nil:
		return *v.Red, true
	case v.Green != nil:
		return *v.Green, true
	default:
		return Cell{}, false
	}
}

// candidates lists the non-reversing directions, current first.
func candidates(cur Direction) []Direction {
	out := make([]Direction, 0, len(Directions))
	if cur.IsValid() {
		out = append(out, cur)
	}
	for _, d := range Directions {
		if d != cur && !d.IsOpposite(cur) {
			out = append(out, d)
		}
	}
	return out
}

// safe reports whether moving the head to next survives the body checks.
// Strict mode also rejects cells the opponent's head could reach.
func (v View) safe(next Cell, strict bool) bool {
	grow := v.Red != nil && *v.Red == next
	body := v.Self.Body
	if !grow && len(body) > 0 {
		body = body[:len(body)-1]
	}
	for _, c := range body {
		if c == next {
			return false
		}
	}
	if v.Opponent.Occupies(next) {
		return false
	}
	if strict && v.Opponent.Len() > 0 {
		for _, d := range candidates(v.Opponent.Dir) {
			if v.Grid.Step(v.Opponent.Head(), d) == next {
				return false
			}
		}
	}
	return true
}

// PolicyByName returns the policy for a config name.
func PolicyByName(name string) (Policy, error) {
	switch name {
	case config.DefaultPolicyName, "":
		return Greedy{}, nil
	case config.StraightPolicyName:
		return Straight{}, nil
	default:
		return nil, fmt.Errorf("kobra: unknown policy %q", name)
	}
}
