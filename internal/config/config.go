// Package config provides YAML-based game configuration loading and
// difficulty presets for the terminal platform.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/kobra/internal/core"
)

// Limits enforced by Validate.
const (
	MinGridSize        = 10 // The fixed starting layout reaches x=8
	MaxGridSize        = 64
	MinMoveIntervalMS  = 30
	MaxMoveIntervalMS  = 5000
	MinWinLength       = 5
	DefaultPolicyName  = "greedy"
	StraightPolicyName = "straight"
)

// ErrInvalid is returned (wrapped) when a configuration value is out of range.
var ErrInvalid = errors.New("invalid config")

// KobraConfig contains all configuration for the KObra duel.
type KobraConfig struct {
	Grid   KobraGrid   `yaml:"grid"`
	Timing KobraTiming `yaml:"timing"`
	Rules  KobraRules  `yaml:"rules"`
	CPU    KobraCPU    `yaml:"cpu"`
	Colors KobraColors `yaml:"colors"`
}

// KobraGrid defines the board dimensions.
type KobraGrid struct {
	Size int `yaml:"size"`
}

// KobraTiming defines how often the snakes move.
type KobraTiming struct {
	MoveIntervalMS int `yaml:"move_interval_ms"`
}

// KobraRules defines the win condition.
type KobraRules struct {
	WinLength int `yaml:"win_length"`
}

// KobraCPU selects the opponent's steering policy.
type KobraCPU struct {
	Policy string `yaml:"policy"`
}

// KobraColors names the snake colors (see core.ParseColor).
type KobraColors struct {
	Player string `yaml:"player"`
	CPU    string `yaml:"cpu"`
}

// Validate checks every value against its allowed range.
func (c KobraConfig) Validate() error {
	if c.Grid.Size < MinGridSize || c.Grid.Size > MaxGridSize {
		return fmt.Errorf("%w: grid.size %d not in [%d, %d]", ErrInvalid, c.Grid.Size, MinGridSize, MaxGridSize)
	}
	if c.Timing.MoveIntervalMS < MinMoveIntervalMS || c.Timing.MoveIntervalMS > MaxMoveIntervalMS {
		return fmt.Errorf("%w: timing.move_interval_ms %d not in [%d, %d]",
			ErrInvalid, c.Timing.MoveIntervalMS, MinMoveIntervalMS, MaxMoveIntervalMS)
	}
	// Both snakes must be able to grow to the target without filling the board.
	maxWin := c.Grid.Size * c.Grid.Size / 2
	if c.Rules.WinLength < MinWinLength || c.Rules.WinLength > maxWin {
		return fmt.Errorf("%w: rules.win_length %d not in [%d, %d]", ErrInvalid, c.Rules.WinLength, MinWinLength, maxWin)
	}
	switch c.CPU.Policy {
	case DefaultPolicyName, StraightPolicyName:
	default:
		return fmt.Errorf("%w: cpu.policy %q", ErrInvalid, c.CPU.Policy)
	}
	if _, ok := core.ParseColor(c.Colors.Player); !ok {
		return fmt.Errorf("%w: colors.player %q", ErrInvalid, c.Colors.Player)
	}
	if _, ok := core.ParseColor(c.Colors.CPU); !ok {
		return fmt.Errorf("%w: colors.cpu %q", ErrInvalid, c.Colors.CPU)
	}
	return nil
}

// PlayerColor returns the parsed player color, falling back to orange.
func (c KobraConfig) PlayerColor() core.Color {
	if col, ok := core.ParseColor(c.Colors.Player); ok {
		return col
	}
	return core.ColorOrange
}

// CPUColor returns the parsed CPU color, falling back to teal.
func (c KobraConfig) CPUColor() core.Color {
	if col, ok := core.ParseColor(c.Colors.CPU); ok {
		return col
	}
	return core.ColorTeal
}

// MoveEveryTicks converts the move interval to platform ticks at tickRate.
// Never returns less than 1.
func (c KobraConfig) MoveEveryTicks(tickRate int) int {
	if tickRate <= 0 {
		tickRate = 60
	}
	return max(1, c.Timing.MoveIntervalMS*tickRate/1000)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficulty validates a preset name. Empty means fixed (use config as is).
func ParseDifficulty(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyFixed, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard, fixed)", name)
	}
}
