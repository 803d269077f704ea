// Package registry keeps the playable variants. Variants register a factory
// in init(), so the platform can list and create them by ID without
// importing each one by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/kobra/internal/core"
)

// Game is driven by the platform one fixed tick at a time.
// Implementations hold pure logic: no Bubble Tea, no I/O. The platform
// owns input mapping, timing, persistence and rendering to the terminal.
type Game interface {
	// ID returns the unique variant identifier (e.g., "kobra").
	// Used by CLI commands and as the game_id of recorded matches.
	ID() string

	// Title returns a human-readable name (e.g., "KObra").
	Title() string

	// Reset starts over with the given screen size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one platform tick with the actions
	// collected since the previous tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst.
	Render(dst *core.Screen)

	// State returns the current game state (score, game over, paused).
	State() core.GameState
}

// Reporter is implemented by games that produce a match summary worth
// persisting once the game is over.
type Reporter interface {
	// Report returns the summary of the finished match; ok is false while
	// the match is still in progress.
	Report() (rep core.MatchReport, ok bool)
}

// Resizer is implemented by games that re-layout when the terminal size
// changes instead of requiring a Reset.
type Resizer interface {
	Resize(w, h int)
}

// Configured is implemented by games that load a config file on Reset.
type Configured interface {
	// ConfigError returns the error from the last config load. The game
	// runs on its defaults when it is set.
	ConfigError() error
}

// Describer is implemented by games with a one-line summary for listings.
type Describer interface {
	Description() string
}

// GameInfo contains metadata about a registered variant.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a fresh game instance.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Panics if the ID is empty or already registered.
func Register(id string, f Factory) {
	if id == "" {
		panic("registry: empty game id")
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f

	// Metadata comes from a throwaway instance
	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Description = d.Description()
	}
	infos[id] = info
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Lookup returns the metadata of a registered game.
func Lookup(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	info, ok := infos[id]
	return info, ok
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}
