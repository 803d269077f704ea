package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadKobra loads KObra configuration.
// Search order: customPath -> ~/.kobra/configs/kobra.yaml -> ./configs/kobra.yaml -> embedded default
//
// Keys missing from a file keep their default values. Only an explicit
// customPath reports read, parse or validation errors; the implicit
// locations are skipped when unusable.
func LoadKobra(customPath string) (KobraConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return KobraConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseKobra(data)
		if err != nil {
			return KobraConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("kobra.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseKobra(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "kobra.yaml")); err == nil {
		if cfg, err := parseKobra(data); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := parseKobra(defaultKobraYAML); err == nil {
		return cfg, nil
	}
	return DefaultKobraConfig(), nil // Fallback to hardcoded if embed fails
}

// parseKobra overlays YAML onto the defaults and validates the result.
func parseKobra(data []byte) (KobraConfig, error) {
	cfg := DefaultKobraConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return KobraConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return KobraConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".kobra", "configs", filename)
}

// ApplyKobraPreset modifies the config based on a difficulty preset.
// Fixed leaves the loaded values untouched.
func ApplyKobraPreset(cfg *KobraConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Timing.MoveIntervalMS = 400
		cfg.CPU.Policy = StraightPolicyName
	case DifficultyNormal:
		cfg.Timing.MoveIntervalMS = 300
		cfg.CPU.Policy = DefaultPolicyName
	case DifficultyHard:
		cfg.Timing.MoveIntervalMS = 180
		cfg.CPU.Policy = DefaultPolicyName
	}
}
