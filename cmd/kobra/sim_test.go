package main

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/kobra/internal/games/kobra"
)

func TestRunMatchesIndependentOfWorkers(t *testing.T) {
	rules := kobra.DefaultRules()
	serial := runMatches(rules, kobra.Greedy{}, kobra.Straight{}, 10, 8, 2000, 1)
	parallel := runMatches(rules, kobra.Greedy{}, kobra.Straight{}, 10, 8, 2000, 4)

	if !reflect.DeepEqual(serial, parallel) {
		t.Error("results depend on the number of workers")
	}
	for i, snap := range serial {
		want := kobra.PlayMatch(rules, kobra.Greedy{}, kobra.Straight{}, 10+int64(i), 2000)
		if !reflect.DeepEqual(snap, want) {
			t.Errorf("match %d does not use seed %d", i, 10+i)
		}
	}
}

func TestSimTally(t *testing.T) {
	tally := simTally{Causes: make(map[kobra.Cause]int)}
	over := func(r kobra.Result, c kobra.Cause, ticks uint64) kobra.Snapshot {
		return kobra.Snapshot{Status: kobra.StatusOver, Outcome: kobra.Outcome{Result: r, Cause: c}, Tick: ticks}
	}

	tally.add(over(kobra.ResultPlayerWins, kobra.CauseLength, 100))
	tally.add(over(kobra.ResultAIWins, kobra.CauseCollision, 40))
	tally.add(over(kobra.ResultDraw, kobra.CauseHeadOn, 10))
	tally.add(kobra.Snapshot{Status: kobra.StatusRunning, Tick: 5000})

	if tally.Wins != 1 || tally.Losses != 1 || tally.Draws != 1 || tally.Unfinished != 1 {
		t.Errorf("tally = %+v", tally)
	}
	if tally.Moves != 150 {
		t.Errorf("Moves = %d, expected 150 (unfinished matches excluded)", tally.Moves)
	}
	if tally.Causes[kobra.CauseHeadOn] != 1 {
		t.Errorf("Causes = %v", tally.Causes)
	}
}

func TestPercent(t *testing.T) {
	if got := percent(1, 4); got != 25 {
		t.Errorf("percent(1, 4) = %v", got)
	}
	if got := percent(1, 0); got != 0 {
		t.Errorf("percent(1, 0) = %v", got)
	}
}
