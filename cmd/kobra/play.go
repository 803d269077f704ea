package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/kobra/internal/config"
	"github.com/vovakirdan/kobra/internal/core"
	"github.com/vovakirdan/kobra/internal/games/kobra"
	"github.com/vovakirdan/kobra/internal/platform/tui"
	"github.com/vovakirdan/kobra/internal/registry"
	"github.com/vovakirdan/kobra/internal/storage"
)

var flagDifficulty string

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a duel",
	Long: `Start a duel against the CPU snake.

Controls:
  Arrows/WASD  - Steer (the first turn starts the match)
  P/Space      - Pause
  Enter        - Restart after the match ends
  R            - Restart at any time
  Esc/B        - Leave (when paused, waiting or over)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower moves, the CPU never turns
  normal - Default speed, greedy CPU
  hard   - Fast moves, greedy CPU
  fixed  - Use the config values unchanged

Examples:
  kobra play
  kobra play kobra_classic
  kobra play --difficulty hard
  kobra play --config ./my-kobra.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// runtimeConfig builds the platform config from the terminal size and global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the match database. Play continues without it on error.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open match database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// applyGameFlags validates the config and difficulty before any game is created.
func applyGameFlags() error {
	if flagConfig != "" {
		if _, err := config.LoadKobra(flagConfig); err != nil {
			return err
		}
	}
	if _, err := config.ParseDifficulty(flagDifficulty); err != nil {
		return err
	}
	kobra.SetDifficultyPreset(flagDifficulty)
	return nil
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := kobra.GameID
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q (run 'kobra list')", gameID)
	}
	if err := applyGameFlags(); err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	logger.Debug("starting game", "game", gameID, "fps", flagFPS, "seed", flagSeed)
	if _, err := tui.Run(game, store, runtimeConfig(), logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
