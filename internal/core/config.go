package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Platform ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score (player length for duels)
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
	Waiting  bool // Whether the game waits for the first input
}

// StepResult is returned by Game.Step() after each platform tick.
type StepResult struct {
	State GameState
	Moved bool // Whether the simulation advanced a move this tick
}

// Match results as recorded by the platform.
const (
	ResultPlayer = "player"
	ResultCPU    = "cpu"
	ResultDraw   = "draw"
)

// MatchReport summarizes a finished duel for persistence.
type MatchReport struct {
	Result       string // ResultPlayer, ResultCPU or ResultDraw
	Cause        string // Machine-readable end cause, e.g. "head-on"
	Reason       string // Human-readable outcome text
	PlayerLength int
	CPULength    int
	Ticks        uint64 // Moves simulated before the end
}
