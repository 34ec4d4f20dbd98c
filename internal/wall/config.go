package wall

import "fmt"

// Configuration bounds enforced before a round starts.
const (
	MinSide          = 10
	MaxSide          = 200
	MinCellSize      = 5
	MaxCellSize      = 50
	MaxDiffCount     = 1000
	MaxCells         = 40000
	MaxPanelPixels   = 16384
	MaxChallengeSide = 400
)

// Mode distinguishes free-form rounds from progression rounds.
type Mode string

const (
	ModeCustom    Mode = "custom"
	ModeChallenge Mode = "challenge"
)

// RoundConfig holds the parameters of a single round.
type RoundConfig struct {
	Width     int
	Height    int
	CellSize  int
	DiffCount int
	Scheme    Scheme
	Mode      Mode
	Level     int // 1-based level in challenge mode, 0 otherwise
}

// DefaultRoundConfig mirrors the game's initial custom settings.
func DefaultRoundConfig() RoundConfig {
	return RoundConfig{
		Width:     20,
		Height:    20,
		CellSize:  28,
		DiffCount: 5,
		Scheme:    SchemeA,
		Mode:      ModeCustom,
	}
}

// MaxDiffsFor returns the largest allowed difference count for a w x h wall.
func MaxDiffsFor(w, h int) int {
	return min(w*h, MaxDiffCount)
}

// Validate applies the custom-mode gates. Challenge rounds use
// ValidateChallenge because the level table outgrows the custom limits.
func (c RoundConfig) Validate() error {
	if c.Mode == ModeChallenge {
		return c.ValidateChallenge()
	}
	if err := checkRange("width", c.Width, MinSide, MaxSide); err != nil {
		return err
	}
	if err := checkRange("height", c.Height, MinSide, MaxSide); err != nil {
		return err
	}
	if cells := c.Width * c.Height; cells > MaxCells {
		return &ConfigError{Field: "cell total", Value: cells, Reason: fmt.Sprintf("must not exceed %d", MaxCells)}
	}
	return c.validateCommon()
}

// ValidateChallenge keeps the pixel, cell size and difference gates but
// allows sides up to MaxChallengeSide.
func (c RoundConfig) ValidateChallenge() error {
	if err := checkRange("width", c.Width, 1, MaxChallengeSide); err != nil {
		return err
	}
	if err := checkRange("height", c.Height, 1, MaxChallengeSide); err != nil {
		return err
	}
	return c.validateCommon()
}

func (c RoundConfig) validateCommon() error {
	if err := checkRange("cell size", c.CellSize, MinCellSize, MaxCellSize); err != nil {
		return err
	}
	if px := c.Width * c.CellSize; px > MaxPanelPixels {
		return &ConfigError{Field: "panel width", Value: px, Reason: fmt.Sprintf("must not exceed %d pixels", MaxPanelPixels)}
	}
	if px := c.Height * c.CellSize; px > MaxPanelPixels {
		return &ConfigError{Field: "panel height", Value: px, Reason: fmt.Sprintf("must not exceed %d pixels", MaxPanelPixels)}
	}
	if err := checkRange("difference count", c.DiffCount, 1, MaxDiffsFor(c.Width, c.Height)); err != nil {
		return err
	}
	if _, ok := ParseScheme(string(c.Scheme)); !ok {
		return &ConfigError{Field: "scheme", Value: 0, Reason: fmt.Sprintf("unknown scheme %q", c.Scheme)}
	}
	return nil
}

func checkRange(field string, v, lo, hi int) error {
	if v < lo || v > hi {
		return &ConfigError{Field: field, Value: v, Reason: fmt.Sprintf("must be between %d and %d", lo, hi)}
	}
	return nil
}
