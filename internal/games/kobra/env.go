package kobra

import "golang.org/x/exp/rand"

// scripted is a policy whose next direction is set from outside.
type scripted struct {
	dir Direction
}

func (s *scripted) Next(View) Direction {
	return s.dir
}

// Env is a headless environment for agents and simulations: both snakes
// are driven explicitly, one move per Step.
type Env struct {
	rules  Rules
	engine *Engine
	player *scripted
	cpu    *scripted
}

// NewEnv creates an environment and resets it with seed.
func NewEnv(rules Rules, seed int64) *Env {
	env := &Env{rules: rules}
	env.Reset(seed)
	return env
}

// Reset starts a fresh running match and returns its first snapshot.
func (env *Env) Reset(seed int64) Snapshot {
	env.player = &scripted{}
	env.cpu = &scripted{}
	env.engine = NewWithControllers(env.rules,
		PolicyControlled{Policy: env.player},
		PolicyControlled{Policy: env.cpu},
		rand.New(rand.NewSource(uint64(seed))))
	env.engine.Start()
	return env.engine.Snapshot()
}

// Step moves both snakes. A zero direction keeps a snake's heading.
// Reward is +1 when the player wins, -1 when the AI wins, 0 otherwise.
// Once done, further steps change nothing.
func (env *Env) Step(playerDir, aiDir Direction) (Snapshot, int, bool) {
	if env.engine.Status() == StatusOver {
		return env.engine.Snapshot(), 0, true
	}
	env.player.dir = playerDir
	env.cpu.dir = aiDir
	res := env.engine.Tick()

	reward := 0
	if res.Over {
		switch res.Outcome.Result {
		case ResultPlayerWins:
			reward = 1
		case ResultAIWins:
			reward = -1
		}
	}
	return env.engine.Snapshot(), reward, res.Over
}

// Snapshot returns the current state.
func (env *Env) Snapshot() Snapshot {
	return env.engine.Snapshot()
}

// PlayMatch runs one headless match between two policies, snake 0 driven
// by player. It stops after maxTicks moves when no one has won; the
// returned snapshot then has Status running.
func PlayMatch(rules Rules, player, cpu Policy, seed int64, maxTicks int) Snapshot {
	e := NewWithControllers(rules,
		PolicyControlled{Policy: player},
		PolicyControlled{Policy: cpu},
		rand.New(rand.NewSource(uint64(seed))))
	e.Start()
	e.Advance(maxTicks)
	return e.Snapshot()
}
