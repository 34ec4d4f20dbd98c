package wall

import "fmt"

// LevelCount is the number of challenge levels.
const LevelCount = 20

// Level defines the parameters of one challenge level.
type Level struct {
	Number    int // 1-based
	Width     int
	Height    int
	CellSize  int
	DiffCount int
}

// Levels is the fixed challenge table: level n is an (n*20) x (n*20) wall,
// cells shrink by one pixel per level down to 5, and every level hides 5
// differences.
var Levels = buildLevels()

func buildLevels() []Level {
	levels := make([]Level, LevelCount)
	for i := range levels {
		n := i + 1
		levels[i] = Level{
			Number:    n,
			Width:     n * 20,
			Height:    n * 20,
			CellSize:  max(MinCellSize, 28-(n-1)),
			DiffCount: 5,
		}
	}
	return levels
}

// DeriveParams returns the parameters for a 1-based level number.
func DeriveParams(level int) (Level, error) {
	if level < 1 || level > len(Levels) {
		return Level{}, fmt.Errorf("%w: %d", ErrUnknownLevel, level)
	}
	return Levels[level-1], nil
}

// RoundConfig builds the configuration used to start this level.
func (l Level) RoundConfig(scheme Scheme) RoundConfig {
	return RoundConfig{
		Width:     l.Width,
		Height:    l.Height,
		CellSize:  l.CellSize,
		DiffCount: l.DiffCount,
		Scheme:    scheme,
		Mode:      ModeChallenge,
		Level:     l.Number,
	}
}

// String returns a short description for level pickers.
func (l Level) String() string {
	return fmt.Sprintf("Level %d - %dx%d", l.Number, l.Width, l.Height)
}
