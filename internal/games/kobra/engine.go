package kobra

import (
	"golang.org/x/exp/rand"

	"github.com/vovakirdan/kobra/internal/config"
	"github.com/vovakirdan/kobra/internal/core"
)

// Snake indices. The opponent of snake i is snake 1-i.
const (
	PlayerIndex = 0
	CPUIndex    = 1
)

// Status is the engine's lifecycle state.
type Status int

const (
	StatusIdle    Status = iota // Waiting for the first accepted direction
	StatusRunning               // Moving every tick
	StatusOver                  // Finished; only a restart leaves this state
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusOver:
		return "over"
	default:
		return "unknown"
	}
}

// Result names the winner of a finished match.
type Result int

const (
	ResultNone Result = iota
	ResultPlayerWins
	ResultAIWins
	ResultDraw
)

func (r Result) String() string {
	switch r {
	case ResultPlayerWins:
		return "player"
	case ResultAIWins:
		return "ai"
	case ResultDraw:
		return "draw"
	default:
		return "none"
	}
}

// Cause is the machine-readable reason a match ended.
type Cause string

const (
	CauseNone       Cause = ""
	CauseCollision  Cause = "collision"  // A head ran into a body
	CauseHeadOn     Cause = "head-on"    // Both heads entered the same cell
	CauseSwap       Cause = "swap"       // Heads moved through each other
	CauseStarvation Cause = "starvation" // A snake shrank to a single segment
	CauseLength     Cause = "length"     // A snake reached the win length
)

// Outcome texts shown to the player.
const (
	ReasonPlayerWins = "Player is the KObra"
	ReasonAIWins     = "AI is the KObra"
	ReasonDraw       = "Draw - No KObra"
)

// Outcome describes how a match ended. The zero value means still playing.
type Outcome struct {
	Result Result
	Cause  Cause
	Reason string
}

func newOutcome(r Result, c Cause) Outcome {
	o := Outcome{Result: r, Cause: c}
	switch r {
	case ResultPlayerWins:
		o.Reason = ReasonPlayerWins
	case ResultAIWins:
		o.Reason = ReasonAIWins
	case ResultDraw:
		o.Reason = ReasonDraw
	}
	return o
}

// Rules are the fixed parameters of a match.
type Rules struct {
	GridSize    int
	WinLength   int
	PlayerColor core.Color
	CPUColor    core.Color
}

// DefaultRules returns the classic 16x16, first-to-15 duel.
func DefaultRules() Rules {
	return RulesFromConfig(config.DefaultKobraConfig())
}

// RulesFromConfig extracts match rules from a loaded configuration.
func RulesFromConfig(cfg config.KobraConfig) Rules {
	return Rules{
		GridSize:    cfg.Grid.Size,
		WinLength:   cfg.Rules.WinLength,
		PlayerColor: cfg.PlayerColor(),
		CPUColor:    cfg.CPUColor(),
	}
}

// TickResult reports what a single Tick did.
type TickResult struct {
	Moved    bool    // Bodies were advanced
	Over     bool    // The match ended on this tick
	Heads    [2]Cell // Prospective heads, per snake index
	AteRed   [2]bool
	AteGreen [2]bool
	Dead     [2]bool // Set on a death tick
	Outcome  Outcome // Set when Over
	Err      error   // ErrGridFull when an apple could not respawn
}

// Engine owns all match state and applies the duel rules one move at a time.
// It is not safe for concurrent use; the platform drives it from one goroutine.
type Engine struct {
	rules   Rules
	grid    Grid
	spawner Spawner

	controls [2]Controller
	snakes   [2]Snake
	apples   [appleCount]*Cell
	input    InputBuffer

	status  Status
	outcome Outcome
	ticks   uint64
}

// NewEngine creates an engine where the player steers snake 0 through OnDirection
// and cpu steers snake 1.
func NewEngine(rules Rules, cpu Policy, rng *rand.Rand) *Engine {
	return NewWithControllers(rules, PlayerControlled{}, PolicyControlled{Policy: cpu}, rng)
}

// NewWithControllers creates an engine with explicit controllers for both
// snakes. The grid is raised to config.MinGridSize if needed.
func NewWithControllers(rules Rules, player, cpu Controller, rng *rand.Rand) *Engine {
	rules.GridSize = max(rules.GridSize, config.MinGridSize)
	if rules.WinLength <= 0 {
		rules.WinLength = config.DefaultKobraConfig().Rules.WinLength
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	grid := Grid{Width: rules.GridSize, Height: rules.GridSize}
	e := &Engine{
		rules:    rules,
		grid:     grid,
		spawner:  NewSpawner(grid, rng),
		controls: [2]Controller{player, cpu},
	}
	e.reset()
	return e
}

// reset restores the starting layout and spawns both apples.
func (e *Engine) reset() {
	e.snakes = [2]Snake{
		{Name: "Player", Body: append([]Cell(nil), playerStart...), Dir: Right, Color: e.rules.PlayerColor, Control: e.controls[PlayerIndex]},
		{Name: "AI", Body: append([]Cell(nil), cpuStart...), Dir: Right, Color: e.rules.CPUColor, Control: e.controls[CPUIndex]},
	}
	e.input.Clear()
	e.apples = [appleCount]*Cell{}
	e.status = StatusIdle
	e.outcome = Outcome{}
	e.ticks = 0
	// The minimum grid always leaves room for both apples.
	_ = e.respawn(AppleRed, nil)
	_ = e.respawn(AppleGreen, nil)
}

// OnRestart returns the match to its initial layout in StatusIdle.
func (e *Engine) OnRestart() {
	e.reset()
}

// Start moves an idle engine to running without waiting for input.
func (e *Engine) Start() {
	if e.status == StatusIdle {
		e.status = StatusRunning
	}
}

// OnDirection buffers a player turn. The first accepted direction starts
// an idle match. Ignored once the match is over.
func (e *Engine) OnDirection(d Direction) bool {
	if e.status == StatusOver {
		return false
	}
	if !e.input.Enqueue(d, e.snakes[PlayerIndex].Dir) {
		return false
	}
	e.Start()
	return true
}

// Spawn picks a cell for apple a that is off every snake, off the other
// apple and not equal to forbidden. The current apple a is ignored.
func (e *Engine) Spawn(a Apple, forbidden *Cell) (Cell, error) {
	other := e.apples[AppleGreen]
	if a == AppleGreen {
		other = e.apples[AppleRed]
	}
	return e.spawner.Pick(func(c Cell) bool {
		if forbidden != nil && c == *forbidden {
			return true
		}
		if other != nil && c == *other {
			return true
		}
		return e.snakes[PlayerIndex].Occupies(c) || e.snakes[CPUIndex].Occupies(c)
	})
}

// respawn replaces apple a. On ErrGridFull the apple stays absent.
func (e *Engine) respawn(a Apple, forbidden *Cell) error {
	e.apples[a] = nil
	c, err := e.Spawn(a, forbidden)
	if err != nil {
		return err
	}
	e.apples[a] = &c
	return nil
}

// Tick advances both snakes by one cell and resolves the rules.
// It does nothing unless the match is running.
func (e *Engine) Tick() TickResult {
	var res TickResult
	if e.status != StatusRunning {
		return res
	}
	e.ticks++
	e.steer()

	for i := range e.snakes {
		s := &e.snakes[i]
		res.Heads[i] = e.grid.Step(s.Head(), s.Dir)
		res.AteRed[i] = e.appleAt(AppleRed, res.Heads[i])
		res.AteGreen[i] = e.appleAt(AppleGreen, res.Heads[i])
	}

	// Deaths are judged against the bodies before anything moves.
	cause := CauseNone
	for i := range e.snakes {
		if e.hitsBody(i, res.Heads[i], res.AteRed[i]) {
			res.Dead[i] = true
			cause = CauseCollision
		}
	}
	switch {
	case res.Heads[PlayerIndex] == res.Heads[CPUIndex]:
		res.Dead = [2]bool{true, true}
		cause = CauseHeadOn
	case res.Heads[PlayerIndex] == e.snakes[CPUIndex].Head() && res.Heads[CPUIndex] == e.snakes[PlayerIndex].Head():
		res.Dead = [2]bool{true, true}
		cause = CauseSwap
	}
	if res.Dead[PlayerIndex] || res.Dead[CPUIndex] {
		e.finish(deathResult(res.Dead), cause)
		res.Over = true
		res.Outcome = e.outcome
		return res
	}

	for i := range e.snakes {
		e.snakes[i].advance(res.Heads[i], res.AteRed[i])
	}
	for i := range e.snakes {
		if res.AteGreen[i] {
			e.snakes[1-i].shrink()
		}
	}
	for i := range e.snakes {
		head := res.Heads[i]
		if res.AteRed[i] {
			if err := e.respawn(AppleRed, &head); err != nil {
				res.Err = err
			}
		}
		if res.AteGreen[i] {
			if err := e.respawn(AppleGreen, &head); err != nil {
				res.Err = err
			}
		}
	}
	res.Moved = true

	if e.judgeLengths() {
		res.Over = true
		res.Outcome = e.outcome
	}
	return res
}

// Advance runs up to n ticks, stopping early when the match is over or not
// running. Returns the number of moves made.
func (e *Engine) Advance(n int) int {
	moves := 0
	for range n {
		if e.status != StatusRunning {
			break
		}
		if e.Tick().Moved {
			moves++
		}
	}
	return moves
}

// steer sets each snake's direction for this move. Policies all see the
// board as it was before anyone turned.
func (e *Engine) steer() {
	var wanted [2]Direction
	for i := range e.snakes {
		switch c := e.snakes[i].Control.(type) {
		case PlayerControlled:
			if d, ok := e.input.Pop(); ok && !d.IsOpposite(e.snakes[i].Dir) {
				wanted[i] = d
			}
		case PolicyControlled:
			if c.Policy != nil {
				wanted[i] = c.Policy.Next(e.view(i))
			}
		}
	}
	for i, d := range wanted {
		if d.IsValid() {
			e.snakes[i].Dir = d
		}
	}
}

// hitsBody reports whether head lands on any pre-move body segment. Only
// snake i's own tail is exempt, and only when it is not growing.
func (e *Engine) hitsBody(i int, head Cell, grow bool) bool {
	for j := range e.snakes {
		body := e.snakes[j].Body
		if j == i && !grow && len(body) > 0 {
			body = body[:len(body)-1]
		}
		for _, c := range body {
			if c == head {
				return true
			}
		}
	}
	return false
}

func (e *Engine) appleAt(a Apple, c Cell) bool {
	return e.apples[a] != nil && *e.apples[a] == c
}

func deathResult(dead [2]bool) Result {
	switch {
	case dead[PlayerIndex] && dead[CPUIndex]:
		return ResultDraw
	case dead[PlayerIndex]:
		return ResultAIWins
	default:
		return ResultPlayerWins
	}
}

// judgeLengths applies the post-move end conditions: starvation first,
// then the win length. Reports whether the match ended.
func (e *Engine) judgeLengths() bool {
	p, c := e.snakes[PlayerIndex].Len(), e.snakes[CPUIndex].Len()
	win := e.rules.WinLength
	switch {
	case p <= 1 && c <= 1:
		e.finish(ResultDraw, CauseStarvation)
	case p <= 1:
		e.finish(ResultAIWins, CauseStarvation)
	case c <= 1:
		e.finish(ResultPlayerWins, CauseStarvation)
	case p >= win && c >= win:
		e.finish(ResultDraw, CauseLength)
	case p >= win:
		e.finish(ResultPlayerWins, CauseLength)
	case c >= win:
		e.finish(ResultAIWins, CauseLength)
	default:
		return false
	}
	return true
}

func (e *Engine) finish(r Result, c Cause) {
	e.status = StatusOver
	e.outcome = newOutcome(r, c)
	e.input.Clear()
}

// Status returns the lifecycle state.
func (e *Engine) Status() Status {
	return e.status
}

// Outcome returns how the match ended; the zero Outcome while playing.
func (e *Engine) Outcome() Outcome {
	return e.outcome
}

// Ticks returns the number of moves simulated since the last restart.
func (e *Engine) Ticks() uint64 {
	return e.ticks
}
