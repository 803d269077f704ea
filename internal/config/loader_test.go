package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kobra.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := parseKobra(defaultKobraYAML)
	if err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if cfg != DefaultKobraConfig() {
		t.Errorf("embedded default = %+v, expected %+v", cfg, DefaultKobraConfig())
	}
}

func TestLoadKobraCustomPath(t *testing.T) {
	path := writeConfig(t, "grid:\n  size: 20\nrules:\n  win_length: 25\n")

	cfg, err := LoadKobra(path)
	if err != nil {
		t.Fatalf("LoadKobra() failed: %v", err)
	}
	if cfg.Grid.Size != 20 || cfg.Rules.WinLength != 25 {
		t.Errorf("custom values not applied: %+v", cfg)
	}
	// Keys absent from the file keep defaults.
	if cfg.Timing.MoveIntervalMS != 300 || cfg.CPU.Policy != DefaultPolicyName {
		t.Errorf("missing keys should keep defaults: %+v", cfg)
	}
}

func TestLoadKobraMissingFile(t *testing.T) {
	if _, err := LoadKobra(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestLoadKobraRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"grid too small", "grid:\n  size: 4\n"},
		{"grid too large", "grid:\n  size: 500\n"},
		{"interval too short", "timing:\n  move_interval_ms: 1\n"},
		{"win length too small", "rules:\n  win_length: 2\n"},
		{"unknown policy", "cpu:\n  policy: psychic\n"},
		{"unknown color", "colors:\n  player: chartreuse\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadKobra(writeConfig(t, tc.body))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("LoadKobra() error = %v, expected ErrInvalid", err)
			}
		})
	}
}

func TestLoadKobraBadYAML(t *testing.T) {
	_, err := LoadKobra(writeConfig(t, "grid: [unterminated"))
	if err == nil {
		t.Fatal("expected parse error")
	}
	if errors.Is(err, ErrInvalid) {
		t.Error("syntax errors should not be reported as ErrInvalid")
	}
}

func TestApplyKobraPreset(t *testing.T) {
	tests := []struct {
		preset   DifficultyPreset
		interval int
		policy   string
	}{
		{DifficultyEasy, 400, StraightPolicyName},
		{DifficultyNormal, 300, DefaultPolicyName},
		{DifficultyHard, 180, DefaultPolicyName},
		{DifficultyFixed, 250, StraightPolicyName},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultKobraConfig()
			cfg.Timing.MoveIntervalMS = 250
			cfg.CPU.Policy = StraightPolicyName

			ApplyKobraPreset(&cfg, tc.preset)

			if cfg.Timing.MoveIntervalMS != tc.interval || cfg.CPU.Policy != tc.policy {
				t.Errorf("got interval=%d policy=%s, expected %d %s",
					cfg.Timing.MoveIntervalMS, cfg.CPU.Policy, tc.interval, tc.policy)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset produced invalid config: %v", err)
			}
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	if p, err := ParseDifficulty(""); err != nil || p != DifficultyFixed {
		t.Errorf("empty preset = %q, %v; expected fixed", p, err)
	}
	if p, err := ParseDifficulty("hard"); err != nil || p != DifficultyHard {
		t.Errorf("ParseDifficulty(hard) = %q, %v", p, err)
	}
	if _, err := ParseDifficulty("nightmare"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestMoveEveryTicks(t *testing.T) {
	cfg := DefaultKobraConfig()

	if got := cfg.MoveEveryTicks(60); got != 18 {
		t.Errorf("MoveEveryTicks(60) = %d, expected 18", got)
	}
	if got := cfg.MoveEveryTicks(0); got != 18 {
		t.Errorf("MoveEveryTicks(0) should default to 60 fps, got %d", got)
	}

	cfg.Timing.MoveIntervalMS = 30
	if got := cfg.MoveEveryTicks(10); got != 1 {
		t.Errorf("MoveEveryTicks should never drop below 1, got %d", got)
	}
}
