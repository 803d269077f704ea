package kobra

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/vovakirdan/kobra/internal/config"
	"github.com/vovakirdan/kobra/internal/core"
	"github.com/vovakirdan/kobra/internal/registry"
)

// Game IDs.
const (
	GameID        = "kobra"
	ClassicGameID = "kobra_classic"
)

// Visual characters for rendering
const (
	AppleChar = '●'
	BodyChar  = '█'
	hudHeight = 2
	cellWidth = 2 // Terminal columns per grid cell
)

// Variant selects the CPU opponent.
type Variant int

const (
	VariantStandard Variant = iota // CPU policy from config
	VariantClassic                 // CPU never turns
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names are ignored.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficulty(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// Game adapts Engine to the terminal platform: it maps actions to directions,
// paces moves from platform ticks and draws the board.
type Game struct {
	variant Variant
	cfg     config.KobraConfig
	cfgErr  error
	engine  *Engine

	moveEveryTicks int
	moveTicker     int
	screenW        int
	screenH        int
	paused         bool
	tooSmall       bool
	spawnErr       error
}

// New creates the standard duel.
func New() *Game {
	return &Game{variant: VariantStandard}
}

// NewClassic creates the duel against a CPU that never turns.
func NewClassic() *Game {
	return &Game{variant: VariantClassic}
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
	registry.Register(ClassicGameID, func() registry.Game {
		return NewClassic()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.variant == VariantClassic {
		return ClassicGameID
	}
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.variant == VariantClassic {
		return "KObra (Classic)"
	}
	return "KObra"
}

// Description summarizes the opponent for listings.
func (g *Game) Description() string {
	if g.variant == VariantClassic {
		return "The AI snake never turns"
	}
	return "The AI snake hunts apples and dodges you"
}

// Reset loads configuration and starts a fresh match.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	kcfg, err := config.LoadKobra(configPath)
	if err != nil {
		kcfg = config.DefaultKobraConfig()
	}
	g.cfgErr = err
	if difficultyPreset != "" {
		config.ApplyKobraPreset(&kcfg, difficultyPreset)
	}
	g.cfg = kcfg

	policy, err := PolicyByName(kcfg.CPU.Policy)
	if err != nil || g.variant == VariantClassic {
		policy = Straight{}
	}

	g.engine = NewEngine(RulesFromConfig(kcfg), policy, rand.New(rand.NewSource(uint64(cfg.Seed))))
	g.moveEveryTicks = kcfg.MoveEveryTicks(cfg.TickRate)
	g.moveTicker = 0
	g.paused = false
	g.spawnErr = nil
	g.resize(cfg.ScreenW, cfg.ScreenH)
}

// ConfigError returns the error from loading the config file, if any.
// The game falls back to defaults when it is set.
func (g *Game) ConfigError() error {
	return g.cfgErr
}

// Resize adapts the layout to a new screen size. The board never scales.
func (g *Game) Resize(w, h int) {
	g.resize(w, h)
}

func (g *Game) resize(w, h int) {
	g.screenW, g.screenH = w, h
	boardW, boardH := g.boardSize()
	g.tooSmall = w < boardW || h < boardH+hudHeight
}

// boardSize returns the framed board size in terminal cells.
func (g *Game) boardSize() (int, int) {
	n := g.cfg.Grid.Size
	return n*cellWidth + 2, n + 2
}

// Step advances the game by one platform tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	if g.engine == nil {
		g.Reset(core.DefaultConfig())
	}
	status := g.engine.Status()

	if input.Has(core.ActionRestart) || (status == StatusOver && input.Has(core.ActionConfirm)) {
		g.engine.OnRestart()
		g.moveTicker = 0
		g.paused = false
		g.spawnErr = nil
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) && status == StatusRunning {
		g.paused = !g.paused
	}
	if g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	for _, a := range input.Actions() {
		if d, ok := actionDirection(a); ok {
			g.engine.OnDirection(d)
		}
	}

	if g.engine.Status() != StatusRunning {
		return core.StepResult{State: g.State()}
	}

	g.moveTicker++
	if g.moveTicker < g.moveEveryTicks {
		return core.StepResult{State: g.State()}
	}
	g.moveTicker = 0
	res := g.engine.Tick()
	if res.Err != nil {
		g.spawnErr = res.Err
	}
	return core.StepResult{State: g.State(), Moved: res.Moved}
}

// actionDirection maps a platform action to a grid direction.
func actionDirection(a core.Action) (Direction, bool) {
	switch a {
	case core.ActionUp:
		return Up, true
	case core.ActionDown:
		return Down, true
	case core.ActionLeft:
		return Left, true
	case core.ActionRight:
		return Right, true
	default:
		return Direction{}, false
	}
}

// State returns the platform view of the match. Score is the player's length.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.engine.snakes[PlayerIndex].Len(),
		GameOver: g.engine.Status() == StatusOver,
		Paused:   g.paused,
		Waiting:  g.engine.Status() == StatusIdle,
	}
}

// Report summarizes the finished match. ok is false while still playing.
func (g *Game) Report() (core.MatchReport, bool) {
	if g.engine == nil {
		return core.MatchReport{}, false
	}
	return g.engine.Snapshot().Report()
}

// Render draws the HUD, the board and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.engine == nil {
		return
	}
	if g.tooSmall {
		bw, bh := g.boardSize()
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", bw, bh+hudHeight))
		return
	}

	snap := g.engine.Snapshot()
	g.renderHUD(dst, snap)

	bw, bh := g.boardSize()
	board := core.NewRect((dst.Width()-bw)/2, hudHeight, bw, bh)
	dst.DrawBox(board, core.ColorGray)
	inner := board.Inset(1)

	drawApple := func(c *Cell, color core.Color) {
		if c != nil {
			dst.SetColored(inner.X+c.X*cellWidth, inner.Y+c.Y, AppleChar, color)
		}
	}
	drawApple(snap.Red, core.ColorBrightRed)
	drawApple(snap.Green, core.ColorBrightGreen)
	for _, s := range snap.Snakes {
		g.renderSnake(dst, inner, s)
	}

	switch {
	case snap.Status == StatusOver:
		g.renderOverlay(dst, snap.Outcome.Reason, "Press Enter to restart")
	case snap.Status == StatusIdle:
		g.renderOverlay(dst, g.Title(), "Press an arrow key to start")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws both lengths in the snakes' colors and a separator.
func (g *Game) renderHUD(dst *core.Screen, snap Snapshot) {
	p, c := snap.Player(), snap.CPU()
	left := fmt.Sprintf(" Player: %d", p.Length)
	right := fmt.Sprintf("AI: %d ", c.Length)
	dst.DrawTextColored(0, 0, left, p.Color)
	dst.DrawTextColored(dst.Width()-len(right), 0, right, c.Color)

	mid := fmt.Sprintf("First to %d", snap.WinLength)
	if g.spawnErr != nil {
		mid = "Board full"
	}
	dst.DrawTextCentered(0, mid, core.ColorGray)
	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorGray)
}

// renderSnake draws one snake, head last so it stays visible on overlaps.
func (g *Game) renderSnake(dst *core.Screen, inner core.Rect, s SnakeState) {
	for i := len(s.Body) - 1; i >= 0; i-- {
		c := s.Body[i]
		x, y := inner.X+c.X*cellWidth, inner.Y+c.Y
		if i > 0 {
			dst.SetColored(x, y, BodyChar, s.Color)
			dst.SetColored(x+1, y, BodyChar, s.Color)
			continue
		}
		l, r := headGlyphs(s.Dir)
		dst.SetColored(x, y, l, s.Color)
		dst.SetColored(x+1, y, r, s.Color)
	}
}

// headGlyphs returns the two runes of a head cell facing d.
func headGlyphs(d Direction) (rune, rune) {
	switch d {
	case Left:
		return '◀', BodyChar
	case Up:
		return '▲', '▲'
	case Down:
		return '▼', '▼'
	default:
		return BodyChar, '▶'
	}
}

// renderOverlay draws a centered box with two lines of text.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := core.CenteredRect(dst.Width(), dst.Height(), w, 5)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorDefault)
}
