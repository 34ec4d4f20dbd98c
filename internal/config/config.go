// Package config provides YAML-based configuration loading for Magic Wall.
package config

import (
	"time"

	"github.com/vovakirdan/magicwall/internal/wall"
)

// Config contains all configuration for the game.
type Config struct {
	Round   RoundConfig   `yaml:"round"`
	Display DisplayConfig `yaml:"display"`
	Storage StorageConfig `yaml:"storage"`
}

// RoundConfig defines the default custom round.
type RoundConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	CellSize  int    `yaml:"cell_size"`
	DiffCount int    `yaml:"diff_count"`
	Scheme    string `yaml:"scheme"` // "a" (white) or "b" (black)
}

// DisplayConfig defines terminal presentation options.
type DisplayConfig struct {
	HintsAllowed  bool `yaml:"hints_allowed"`
	MouseTracking bool `yaml:"mouse_tracking"` // crosshair follows the pointer
	TickRate      int  `yaml:"tick_rate"`      // timer refreshes per second
}

// StorageConfig defines where saves and records live.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
	User   string `yaml:"user"` // owner of the challenge records for local play
}

// SchemeValue returns the parsed color scheme, falling back to scheme A.
func (r RoundConfig) SchemeValue() wall.Scheme {
	scheme, _ := wall.ParseScheme(r.Scheme)
	return scheme
}

// ToRound converts the file settings into an engine configuration.
func (r RoundConfig) ToRound() wall.RoundConfig {
	return wall.RoundConfig{
		Width:     r.Width,
		Height:    r.Height,
		CellSize:  r.CellSize,
		DiffCount: r.DiffCount,
		Scheme:    r.SchemeValue(),
		Mode:      wall.ModeCustom,
	}
}

// TickInterval returns the timer refresh period.
func (d DisplayConfig) TickInterval() time.Duration {
	if d.TickRate <= 0 {
		return time.Second / time.Duration(DefaultTickRate)
	}
	return time.Second / time.Duration(d.TickRate)
}

// Validate checks the settings that the engine does not own.
// Round settings are checked by wall.RoundConfig.Validate when a round starts.
func (c Config) Validate() error {
	if _, ok := wall.ParseScheme(c.Round.Scheme); !ok {
		return &wall.ConfigError{Field: "scheme", Reason: "unknown scheme " + c.Round.Scheme}
	}
	if c.Display.TickRate < 0 || c.Display.TickRate > 120 {
		return &wall.ConfigError{Field: "tick rate", Value: c.Display.TickRate, Reason: "must be between 0 and 120"}
	}
	return c.Round.ToRound().Validate()
}
