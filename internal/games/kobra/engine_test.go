package kobra

import (
	"errors"
	"reflect"
	"testing"

	"golang.org/x/exp/rand"
)

func TestInitialLayout(t *testing.T) {
	e := NewEngine(DefaultRules(), Straight{}, rand.New(rand.NewSource(7)))
	snap := e.Snapshot()

	if snap.Status != StatusIdle {
		t.Errorf("Status = %v, expected idle", snap.Status)
	}
	if !cellsEqual(snap.Player().Body, playerStart) || snap.Player().Dir != Right {
		t.Errorf("player = %v %v, expected %v right", snap.Player().Body, snap.Player().Dir, playerStart)
	}
	if !cellsEqual(snap.CPU().Body, cpuStart) || snap.CPU().Dir != Right {
		t.Errorf("cpu = %v %v, expected %v right", snap.CPU().Body, snap.CPU().Dir, cpuStart)
	}
	if snap.Red == nil || snap.Green == nil {
		t.Fatalf("both apples should spawn:%s", dumpBoard(e))
	}
	if *snap.Red == *snap.Green {
		t.Errorf("apples share cell %v", *snap.Red)
	}
	for _, c := range []Cell{*snap.Red, *snap.Green} {
		if e.snakes[0].Occupies(c) || e.snakes[1].Occupies(c) {
			t.Errorf("apple spawned on a snake at %v", c)
		}
	}
}

func TestTickDoesNothingUntilStarted(t *testing.T) {
	e := newTestEngine(t)
	before := e.Snapshot()

	if res := e.Tick(); res.Moved || res.Over {
		t.Errorf("idle Tick() = %+v, expected no-op", res)
	}
	if !reflect.DeepEqual(before, e.Snapshot()) {
		t.Error("idle Tick() changed state")
	}
}

func TestOnDirectionStartsMatch(t *testing.T) {
	e := newTestEngine(t)

	if e.OnDirection(Left) {
		t.Error("reversal should be rejected")
	}
	if e.Status() != StatusIdle {
		t.Error("rejected input should not start the match")
	}
	if !e.OnDirection(Up) {
		t.Fatal("Up should be accepted")
	}
	if e.Status() != StatusRunning {
		t.Errorf("Status = %v, expected running", e.Status())
	}
}

func TestFirstMove(t *testing.T) {
	e := newTestEngine(t)
	e.OnDirection(Right)

	res := e.Tick()
	if !res.Moved || res.Over {
		t.Fatalf("Tick() = %+v, expected a plain move:%s", res, dumpBoard(e))
	}
	snap := e.Snapshot()
	if h := snap.Player().Head(); h != (Cell{9, 8}) {
		t.Errorf("player head = %v, expected (9,8)", h)
	}
	if h := snap.CPU().Head(); h != (Cell{5, 4}) {
		t.Errorf("ai head = %v, expected (5,4)", h)
	}
	if snap.Player().Length != 4 || snap.CPU().Length != 4 {
		t.Errorf("lengths = %d/%d, expected 4/4", snap.Player().Length, snap.CPU().Length)
	}
	if snap.Status != StatusRunning {
		t.Errorf("Status = %v, expected running", snap.Status)
	}
}

func TestBufferedTurnsApplyOnePerTick(t *testing.T) {
	e := newTestEngine(t)
	e.OnDirection(Up)
	e.OnDirection(Left)

	e.Tick()
	if d := e.snakes[PlayerIndex].Dir; d != Up {
		t.Errorf("after first tick dir = %v, expected up", d)
	}
	e.Tick()
	if d := e.snakes[PlayerIndex].Dir; d != Left {
		t.Errorf("after second tick dir = %v, expected left", d)
	}
	if h := e.snakes[PlayerIndex].Head(); h != (Cell{7, 7}) {
		t.Errorf("head = %v, expected (7,7)", h)
	}
}

func TestRedAppleGrowsEater(t *testing.T) {
	e := newTestEngine(t)
	setApple(e, AppleRed, cellPtr(9, 8))
	e.OnDirection(Right)

	res := e.Tick()
	if !res.AteRed[PlayerIndex] {
		t.Fatalf("player should eat the red apple:%s", dumpBoard(e))
	}
	if n := e.snakes[PlayerIndex].Len(); n != 5 {
		t.Errorf("player length = %d, expected 5", n)
	}
	if n := e.snakes[CPUIndex].Len(); n != 4 {
		t.Errorf("ai length = %d, expected 4", n)
	}
	red := e.apples[AppleRed]
	if red == nil {
		t.Fatal("red apple should respawn")
	}
	if *red == (Cell{9, 8}) || e.snakes[0].Occupies(*red) || e.snakes[1].Occupies(*red) {
		t.Errorf("red respawned on an occupied cell %v:%s", *red, dumpBoard(e))
	}
}

func TestGreenAppleShrinksOpponent(t *testing.T) {
	e := newTestEngine(t)
	setApple(e, AppleGreen, cellPtr(9, 8))
	e.OnDirection(Right)

	res := e.Tick()
	if !res.AteGreen[PlayerIndex] {
		t.Fatalf("player should eat the green apple:%s", dumpBoard(e))
	}
	if n := e.snakes[PlayerIndex].Len(); n != 4 {
		t.Errorf("green should not grow the eater, length = %d", n)
	}
	if n := e.snakes[CPUIndex].Len(); n != 3 {
		t.Errorf("ai length = %d, expected 3", n)
	}
	if g := e.apples[AppleGreen]; g == nil || *g == (Cell{9, 8}) {
		t.Errorf("green should respawn away from the eater, got %v", g)
	}
}

func TestDeaths(t *testing.T) {
	tests := []struct {
		name   string
		player []Cell
		pdir   Direction
		cpu    []Cell
		cdir   Direction
		red    *Cell
		result Result
		cause  Cause
	}{
		{
			name:   "head-on",
			player: []Cell{{6, 3}, {6, 2}, {6, 1}, {6, 0}},
			pdir:   Down,
			cpu:    []Cell{{5, 4}, {4, 4}, {3, 4}, {2, 4}},
			cdir:   Right,
			result: ResultDraw,
			cause:  CauseHeadOn,
		},
		{
			name:   "swap",
			player: []Cell{{6, 4}, {7, 4}, {8, 4}, {9, 4}},
			pdir:   Left,
			cpu:    []Cell{{5, 4}, {4, 4}, {3, 4}, {2, 4}},
			cdir:   Right,
			result: ResultDraw,
			cause:  CauseSwap,
		},
		{
			name:   "player into ai body",
			player: []Cell{{8, 8}, {7, 8}, {6, 8}, {5, 8}},
			pdir:   Right,
			cpu:    []Cell{{9, 9}, {9, 8}, {9, 7}, {9, 6}},
			cdir:   Down,
			result: ResultAIWins,
			cause:  CauseCollision,
		},
		{
			name:   "ai into player body",
			player: []Cell{{8, 5}, {8, 4}, {8, 3}, {8, 2}},
			pdir:   Down,
			cpu:    []Cell{{7, 4}, {6, 4}, {5, 4}, {4, 4}},
			cdir:   Right,
			result: ResultPlayerWins,
			cause:  CauseCollision,
		},
		{
			name:   "opponent tail is not exempt",
			player: []Cell{{1, 5}, {1, 6}, {1, 7}, {1, 8}},
			pdir:   Up,
			cpu:    []Cell{{4, 4}, {3, 4}, {2, 4}, {1, 4}},
			cdir:   Right,
			result: ResultAIWins,
			cause:  CauseCollision,
		},
		{
			name:   "own tail blocks a growing snake",
			player: []Cell{{5, 8}, {5, 9}, {6, 9}, {6, 8}},
			pdir:   Right,
			cpu:    []Cell{{4, 4}, {3, 4}, {2, 4}, {1, 4}},
			cdir:   Right,
			red:    cellPtr(6, 8),
			result: ResultAIWins,
			cause:  CauseCollision,
		},
		{
			name:   "both crash",
			player: []Cell{{5, 10}, {4, 10}, {3, 10}, {2, 10}},
			pdir:   Left,
			cpu:    []Cell{{5, 2}, {4, 2}, {3, 2}, {2, 2}},
			cdir:   Left,
			result: ResultDraw,
			cause:  CauseCollision,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine(t)
			e.snakes[PlayerIndex].Body = tc.player
			e.snakes[PlayerIndex].Dir = tc.pdir
			e.snakes[CPUIndex].Body = tc.cpu
			e.snakes[CPUIndex].Dir = tc.cdir
			setApple(e, AppleRed, tc.red)
			e.Start()
			before := e.Snapshot()

			res := e.Tick()
			if !res.Over || res.Moved {
				t.Fatalf("Tick() = %+v, expected a death tick:%s", res, dumpBoard(e))
			}
			out := e.Outcome()
			if out.Result != tc.result || out.Cause != tc.cause {
				t.Errorf("outcome = %v/%s, expected %v/%s:%s", out.Result, out.Cause, tc.result, tc.cause, dumpBoard(e))
			}
			after := e.Snapshot()
			for i := range after.Snakes {
				if !cellsEqual(before.Snakes[i].Body, after.Snakes[i].Body) {
					t.Errorf("snake %d body changed on a death tick", i)
				}
			}
			if e.Status() != StatusOver {
				t.Errorf("Status = %v, expected over", e.Status())
			}
		})
	}
}

func TestOwnTailIsExemptWhenNotGrowing(t *testing.T) {
	e := newTestEngine(t)
	e.snakes[PlayerIndex].Body = []Cell{{5, 8}, {5, 9}, {6, 9}, {6, 8}}
	e.Start()

	res := e.Tick()
	if res.Over {
		t.Fatalf("chasing its own tail should be safe:%s", dumpBoard(e))
	}
	want := []Cell{{6, 8}, {5, 8}, {5, 9}, {6, 9}}
	if got := e.snakes[PlayerIndex].Body; !cellsEqual(got, want) {
		t.Errorf("body = %v, expected %v", got, want)
	}
}

func TestStarvation(t *testing.T) {
	tests := []struct {
		name   string
		player []Cell
		cpu    []Cell
		green  Cell
		result Result
	}{
		{
			name:   "player starved",
			player: []Cell{{8, 8}, {7, 8}},
			cpu:    []Cell{{4, 4}, {3, 4}, {2, 4}, {1, 4}},
			green:  Cell{5, 4},
			result: ResultAIWins,
		},
		{
			name:   "ai starved",
			player: []Cell{{8, 8}, {7, 8}, {6, 8}},
			cpu:    []Cell{{4, 4}, {3, 4}},
			green:  Cell{9, 8},
			result: ResultPlayerWins,
		},
		{
			name:   "both starved",
			player: []Cell{{8, 8}, {7, 8}},
			cpu:    []Cell{{4, 4}},
			green:  Cell{5, 4},
			result: ResultDraw,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine(t)
			e.snakes[PlayerIndex].Body = tc.player
			e.snakes[CPUIndex].Body = tc.cpu
			setApple(e, AppleGreen, &tc.green)
			e.Start()

			res := e.Tick()
			if !res.Over || !res.Moved {
				t.Fatalf("Tick() = %+v, expected a move that ends the match:%s", res, dumpBoard(e))
			}
			out := e.Outcome()
			if out.Result != tc.result || out.Cause != CauseStarvation {
				t.Errorf("outcome = %+v, expected %v by starvation", out, tc.result)
			}
		})
	}
}

func TestWinLength(t *testing.T) {
	row := func(y, n int) []Cell {
		body := make([]Cell, n)
		for i := range body {
			body[i] = Cell{X: n - 1 - i, Y: y}
		}
		return body
	}

	t.Run("player reaches target", func(t *testing.T) {
		e := newTestEngine(t)
		e.snakes[PlayerIndex].Body = row(10, 14)
		setApple(e, AppleRed, cellPtr(14, 10))
		e.Start()

		e.Tick()
		out := e.Outcome()
		if out.Result != ResultPlayerWins || out.Cause != CauseLength || out.Reason != ReasonPlayerWins {
			t.Errorf("outcome = %+v:%s", out, dumpBoard(e))
		}
	})

	t.Run("both at target", func(t *testing.T) {
		e := newTestEngine(t)
		e.snakes[PlayerIndex].Body = row(10, 15)
		e.snakes[CPUIndex].Body = row(12, 15)
		e.Start()

		e.Tick()
		out := e.Outcome()
		if out.Result != ResultDraw || out.Cause != CauseLength || out.Reason != ReasonDraw {
			t.Errorf("outcome = %+v:%s", out, dumpBoard(e))
		}
	})
}

func TestTickAfterOverIsNoop(t *testing.T) {
	e := newTestEngine(t)
	e.snakes[PlayerIndex].Dir = Left // straight into its own neck
	e.Start()
	e.Tick()
	if e.Status() != StatusOver {
		t.Fatalf("expected match over:%s", dumpBoard(e))
	}

	before := e.Snapshot()
	if res := e.Tick(); res.Moved || res.Over {
		t.Errorf("Tick() after over = %+v", res)
	}
	if e.OnDirection(Up) {
		t.Error("input after over should be ignored")
	}
	if !reflect.DeepEqual(before, e.Snapshot()) {
		t.Error("state changed after over")
	}
}

func TestRestartRestoresLayout(t *testing.T) {
	e := NewEngine(DefaultRules(), Greedy{}, rand.New(rand.NewSource(3)))
	e.OnDirection(Up)
	e.Advance(500)
	e.OnDirection(Down)

	e.OnRestart()
	snap := e.Snapshot()
	if snap.Status != StatusIdle || snap.Outcome != (Outcome{}) {
		t.Errorf("after restart status=%v outcome=%+v", snap.Status, snap.Outcome)
	}
	if !cellsEqual(snap.Player().Body, playerStart) || !cellsEqual(snap.CPU().Body, cpuStart) {
		t.Errorf("bodies not restored:%s", dumpBoard(e))
	}
	if snap.Player().Dir != Right || snap.CPU().Dir != Right {
		t.Error("directions not restored")
	}
	if len(snap.Pending) != 0 || snap.Tick != 0 {
		t.Errorf("pending=%v tick=%d, expected empty", snap.Pending, snap.Tick)
	}
	if snap.Red == nil || snap.Green == nil {
		t.Error("apples should respawn on restart")
	}
}

// TestMoveInvariants plays random matches and checks every move against
// the growth and wrapping rules.
func TestMoveInvariants(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		e := NewEngine(DefaultRules(), Greedy{}, rand.New(rand.NewSource(seed)))
		e.Start()

		for step := 0; step < 5000 && e.Status() == StatusRunning; step++ {
			e.OnDirection(Directions[rng.Intn(len(Directions))])
			before := e.Snapshot()
			res := e.Tick()
			if !res.Moved {
				break
			}
			after := e.Snapshot()
			for i := range after.Snakes {
				b, a := before.Snakes[i], after.Snakes[i]
				if want := e.grid.Step(b.Head(), a.Dir); a.Head() != want {
					t.Fatalf("seed %d: head %v, expected %v", seed, a.Head(), want)
				}
				if !e.grid.Contains(a.Head()) {
					t.Fatalf("seed %d: head %v off the grid", seed, a.Head())
				}
				want := b.Length
				if res.AteRed[i] {
					want++
				}
				if res.AteGreen[1-i] && want > 1 {
					want--
				}
				if a.Length != want {
					t.Fatalf("seed %d snake %d: length %d, expected %d:%s", seed, i, a.Length, want, dumpBoard(e))
				}
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		e := NewEngine(DefaultRules(), Greedy{}, rand.New(rand.NewSource(12345)))
		e.OnDirection(Down)
		e.Advance(40)
		e.OnDirection(Left)
		e.Advance(200)
		return e.Snapshot()
	}

	if a, b := run(), run(); !reflect.DeepEqual(a, b) {
		t.Errorf("same seed diverged:\n%+v\n%+v", a, b)
	}
}

func TestSpawnerReportsFullGrid(t *testing.T) {
	s := NewSpawner(Grid{Width: 2, Height: 2}, rand.New(rand.NewSource(1)))

	_, err := s.Pick(func(Cell) bool { return true })
	if !errors.Is(err, ErrGridFull) {
		t.Errorf("Pick() error = %v, expected ErrGridFull", err)
	}

	c, err := s.Pick(func(c Cell) bool { return c != Cell{1, 1} })
	if err != nil || c != (Cell{1, 1}) {
		t.Errorf("Pick() = %v, %v; expected the only free cell", c, err)
	}
}

func TestSpawnAvoidsForbiddenAndOtherApple(t *testing.T) {
	e := newTestEngine(t)
	setApple(e, AppleGreen, cellPtr(0, 0))
	forbidden := Cell{1, 0}

	for range 200 {
		c, err := e.Spawn(AppleRed, &forbidden)
		if err != nil {
			t.Fatalf("Spawn() failed: %v", err)
		}
		if c == (Cell{0, 0}) || c == forbidden || e.snakes[0].Occupies(c) || e.snakes[1].Occupies(c) {
			t.Fatalf("Spawn() picked occupied cell %v", c)
		}
	}
}
