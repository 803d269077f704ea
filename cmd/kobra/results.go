package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/kobra/internal/platform/tui"
	"github.com/vovakirdan/kobra/internal/registry"
	"github.com/vovakirdan/kobra/internal/storage"
)

var (
	flagResultsLimit  int
	flagResultsPlayer string
	flagResultsClear  bool
	flagResultsBoard  bool
)

var resultsCmd = &cobra.Command{
	Use:   "results [variant]",
	Short: "Show match history and stats",
	Long: `Display recent matches and win/loss/draw totals.

Without a variant every variant is summarized.

Examples:
  kobra results
  kobra results kobra_classic --limit 20
  kobra results --player alice
  kobra results --board
  kobra results kobra --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResults,
}

func init() {
	resultsCmd.Flags().IntVar(&flagResultsLimit, "limit", 10, "Number of recent matches to show")
	resultsCmd.Flags().StringVar(&flagResultsPlayer, "player", "", "Only show matches played by this player")
	resultsCmd.Flags().BoolVar(&flagResultsClear, "clear", false, "Delete the recorded matches of the variant")
	resultsCmd.Flags().BoolVar(&flagResultsBoard, "board", false, "Open the interactive results board")
}

func runResults(_ *cobra.Command, args []string) error {
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			return fmt.Errorf("unknown variant %q (run 'kobra list')", gameID)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagResultsClear {
		if gameID == "" {
			return fmt.Errorf("--clear needs a variant")
		}
		if err := store.ClearMatches(gameID); err != nil {
			return err
		}
		logger.Info("matches cleared", "game", gameID)
		return nil
	}

	if flagResultsBoard {
		cfg := runtimeConfig()
		_, err := tui.RunResults(store, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	if err := printStats(store, gameID); err != nil {
		return err
	}
	return printMatches(store, gameID)
}

func printStats(store *storage.Store, gameID string) error {
	var all []*storage.MatchStats
	switch {
	case flagResultsPlayer != "":
		ids := []string{gameID}
		if gameID == "" {
			ids = ids[:0]
			for _, g := range registry.List() {
				ids = append(ids, g.ID)
			}
		}
		for _, id := range ids {
			stats, err := store.StatsByPlayer(id, flagResultsPlayer)
			if err != nil {
				return err
			}
			if stats.Games > 0 || gameID != "" {
				all = append(all, stats)
			}
		}
	case gameID != "":
		stats, err := store.Stats(gameID)
		if err != nil {
			return err
		}
		all = append(all, stats)
	default:
		byGame, err := store.AllStats()
		if err != nil {
			return err
		}
		for _, s := range byGame {
			all = append(all, s)
		}
		sort.Slice(all, func(i, j int) bool { return all[i].GameID < all[j].GameID })
	}

	fmt.Println("Totals")
	fmt.Println()
	if len(all) == 0 || (len(all) == 1 && all[0].Games == 0) {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Run 'kobra play' to challenge the AI!")
		return nil
	}

	fmt.Printf("  %-14s  %5s  %4s  %4s  %4s  %6s  %4s  %s\n", "Variant", "Games", "W", "L", "D", "Win%", "Best", "Last played")
	fmt.Printf("  %-14s  %5s  %4s  %4s  %4s  %6s  %4s  %s\n", "-------", "-----", "-", "-", "-", "----", "----", "-----------")
	for _, s := range all {
		last := "-"
		if !s.LastPlayed.IsZero() {
			last = s.LastPlayed.Format("2006-01-02 15:04")
		}
		fmt.Printf("  %-14s  %5d  %4d  %4d  %4d  %5.1f%%  %4d  %s\n",
			s.GameID, s.Games, s.Wins, s.Losses, s.Draws, s.WinRate()*100, s.BestLength, last)
	}
	fmt.Println()
	return nil
}

func printMatches(store *storage.Store, gameID string) error {
	var (
		matches []storage.MatchRecord
		err     error
	)
	switch {
	case flagResultsPlayer != "" && gameID != "":
		matches, err = store.PlayerMatches(gameID, flagResultsPlayer, flagResultsLimit)
	case flagResultsPlayer != "":
		matches, err = store.MatchesByPlayer(flagResultsPlayer, flagResultsLimit)
	default:
		matches, err = store.RecentMatches(gameID, flagResultsLimit)
	}
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return nil
	}

	fmt.Println("Recent matches")
	fmt.Println()
	fmt.Printf("  %-16s  %-14s  %-6s  %-20s  %3s  %3s  %5s  %s\n", "Date", "Variant", "Result", "Reason", "You", "AI", "Moves", "Player")
	fmt.Printf("  %-16s  %-14s  %-6s  %-20s  %3s  %3s  %5s  %s\n", "----", "-------", "------", "------", "---", "--", "-----", "------")
	for _, m := range matches {
		fmt.Printf("  %-16s  %-14s  %-6s  %-20s  %3d  %3d  %5d  %s\n",
			m.CreatedAt.Format("2006-01-02 15:04"), m.GameID, m.Result, m.Reason,
			m.PlayerLen, m.CPULen, m.Ticks, m.Player)
	}
	return nil
}
