package main

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/kobra/internal/config"
	"github.com/vovakirdan/kobra/internal/games/kobra"
	"github.com/vovakirdan/kobra/internal/storage"
)

var (
	flagSimMatches  int
	flagSimPlayer   string
	flagSimCPU      string
	flagSimMaxTicks int
	flagSimWorkers  int
	flagSimRecord   bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless matches between CPU policies",
	Long: `Play many matches without a terminal UI, with both snakes steered by
CPU policies, and print a win/loss/draw tally from the first snake's
point of view. Match i uses seed --seed+i, so runs are reproducible.

Policies: greedy, straight

Examples:
  kobra sim
  kobra sim --matches 1000 --player greedy --cpu straight
  kobra sim --seed 42 --record`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimMatches, "matches", 100, "Number of matches to play")
	simCmd.Flags().StringVar(&flagSimPlayer, "player", "greedy", "Policy steering the player snake")
	simCmd.Flags().StringVar(&flagSimCPU, "cpu", "greedy", "Policy steering the CPU snake")
	simCmd.Flags().IntVar(&flagSimMaxTicks, "max-ticks", 5000, "Moves before an unfinished match is abandoned")
	simCmd.Flags().IntVar(&flagSimWorkers, "workers", runtime.NumCPU(), "Matches played in parallel")
	simCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Record finished matches in the database")
}

// simTally counts match results from the player snake's point of view.
type simTally struct {
	Wins, Losses, Draws, Unfinished int
	Causes                          map[kobra.Cause]int
	Moves                           uint64
}

func (t *simTally) add(snap kobra.Snapshot) {
	if snap.Status != kobra.StatusOver {
		t.Unfinished++
		return
	}
	switch snap.Outcome.Result {
	case kobra.ResultPlayerWins:
		t.Wins++
	case kobra.ResultAIWins:
		t.Losses++
	default:
		t.Draws++
	}
	t.Causes[snap.Outcome.Cause]++
	t.Moves += snap.Tick
}

// runMatches plays n matches on a pool of workers. Results are returned
// in seed order regardless of scheduling.
func runMatches(rules kobra.Rules, player, cpu kobra.Policy, seed int64, n, maxTicks, workers int) []kobra.Snapshot {
	results := make([]kobra.Snapshot, n)
	jobs := make(chan int)

	var wg sync.WaitGroup
	for range max(1, workers) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = kobra.PlayMatch(rules, player, cpu, seed+int64(i), maxTicks)
			}
		}()
	}
	for i := range n {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func runSim(_ *cobra.Command, _ []string) error {
	if flagSimMatches <= 0 {
		return fmt.Errorf("invalid --matches %d: must be positive", flagSimMatches)
	}
	player, err := kobra.PolicyByName(flagSimPlayer)
	if err != nil {
		return err
	}
	cpu, err := kobra.PolicyByName(flagSimCPU)
	if err != nil {
		return err
	}

	cfg, err := config.LoadKobra(flagConfig)
	if err != nil {
		return err
	}
	rules := kobra.RulesFromConfig(cfg)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger.Info("simulating", "matches", flagSimMatches, "player", flagSimPlayer, "cpu", flagSimCPU, "seed", seed)
	start := time.Now()
	results := runMatches(rules, player, cpu, seed, flagSimMatches, flagSimMaxTicks, flagSimWorkers)
	logger.Info("simulation done", "elapsed", time.Since(start).Round(time.Millisecond))

	tally := simTally{Causes: make(map[kobra.Cause]int)}
	for _, snap := range results {
		tally.add(snap)
	}
	printTally(tally, flagSimMatches)

	if flagSimRecord {
		return recordSim(results)
	}
	return nil
}

func printTally(t simTally, n int) {
	finished := n - t.Unfinished
	fmt.Printf("%s (player) vs %s (cpu), %d matches\n\n", flagSimPlayer, flagSimCPU, n)
	fmt.Printf("  Player wins  %5d  %5.1f%%\n", t.Wins, percent(t.Wins, n))
	fmt.Printf("  CPU wins     %5d  %5.1f%%\n", t.Losses, percent(t.Losses, n))
	fmt.Printf("  Draws        %5d  %5.1f%%\n", t.Draws, percent(t.Draws, n))
	if t.Unfinished > 0 {
		fmt.Printf("  Unfinished   %5d  %5.1f%%\n", t.Unfinished, percent(t.Unfinished, n))
	}
	if finished > 0 {
		fmt.Printf("\n  Avg moves    %7.1f\n", float64(t.Moves)/float64(finished))
	}

	fmt.Println("\n  Endings")
	for _, c := range []kobra.Cause{kobra.CauseLength, kobra.CauseCollision, kobra.CauseHeadOn, kobra.CauseSwap, kobra.CauseStarvation} {
		if t.Causes[c] > 0 {
			fmt.Printf("    %-11s %5d\n", c, t.Causes[c])
		}
	}
}

func percent(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) * 100 / float64(b)
}

// recordSim stores every finished simulated match under a sim player name.
func recordSim(results []kobra.Snapshot) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	gameID := kobra.GameID
	if flagSimCPU == config.StraightPolicyName {
		gameID = kobra.ClassicGameID
	}
	player := "sim:" + flagSimPlayer

	saved := 0
	for _, snap := range results {
		rep, ok := snap.Report()
		if !ok {
			continue
		}
		if _, err := store.SaveMatch(storage.NewMatchRecord(gameID, player, rep)); err != nil {
			return err
		}
		saved++
	}
	logger.Info("recorded simulated matches", "count", saved, "game", gameID, "player", player)
	return nil
}
