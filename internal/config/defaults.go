package config

import (
	_ "embed"
)

//go:embed defaults/kobra.yaml
var defaultKobraYAML []byte

// DefaultKobraConfig returns the default KObra configuration.
func DefaultKobraConfig() KobraConfig {
	return KobraConfig{
		Grid: KobraGrid{
			Size: 16,
		},
		Timing: KobraTiming{
			MoveIntervalMS: 300,
		},
		Rules: KobraRules{
			WinLength: 15,
		},
		CPU: KobraCPU{
			Policy: DefaultPolicyName,
		},
		Colors: KobraColors{
			Player: "orange",
			CPU:    "teal",
		},
	}
}
