package config

import (
	_ "embed"

	"github.com/vovakirdan/magicwall/internal/wall"
)

//go:embed defaults/magicwall.yaml
var defaultYAML []byte

// DefaultTickRate is used when the config leaves tick_rate unset.
const DefaultTickRate = 10

// DefaultConfig returns the hardcoded configuration.
// It matches defaults/magicwall.yaml.
func DefaultConfig() Config {
	round := wall.DefaultRoundConfig()
	return Config{
		Round: RoundConfig{
			Width:     round.Width,
			Height:    round.Height,
			CellSize:  round.CellSize,
			DiffCount: round.DiffCount,
			Scheme:    string(round.Scheme),
		},
		Display: DisplayConfig{
			HintsAllowed:  true,
			MouseTracking: true,
			TickRate:      DefaultTickRate,
		},
		Storage: StorageConfig{
			DBPath: "~/.magicwall/magicwall.db",
			User:   "local",
		},
	}
}
