// kobra is a two-snake duel for the terminal: outgrow the AI snake on a
// wrapping board to become the KObra.
//
// Usage:
//
//	kobra list              - List available variants
//	kobra play [variant]    - Play a duel (default: kobra)
//	kobra menu              - Start menu to pick variants interactively
//	kobra serve             - Start SSH server for remote play
//	kobra results [variant] - Show match history and stats
//	kobra sim               - Run headless matches between CPU policies
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.kobra/kobra.db)
//	--config <path>      - Custom KObra config YAML
//	--log-level <level>  - debug, info, warn or error (default: warn)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/kobra/internal/games/kobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "kobra",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "kobra",
	Short: "KObra - a snake duel in your terminal",
	Long: `KObra is a two-snake duel on a wrapping 16x16 board. You steer one
snake, the computer steers the other. Red apples make you grow, green
apples shrink your opponent. Reach length 15 first to become the KObra.

Available commands:
  list     - Show all variants
  play     - Play a duel directly
  menu     - Interactive variant picker
  serve    - Start SSH server for remote play
  results  - View match history
  sim      - Pit CPU policies against each other

Examples:
  kobra play
  kobra play kobra_classic --difficulty easy
  kobra menu
  kobra serve --ssh :2222
  kobra results
  kobra sim --matches 500`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.kobra/kobra.db", "Path to match database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom KObra config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(simCmd)
}

// setup applies the global flags shared by every command.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger.SetLevel(level)

	if flagFPS <= 0 {
		return fmt.Errorf("invalid --fps %d: must be positive", flagFPS)
	}

	kobra.SetConfigPath(flagConfig)
	return nil
}
