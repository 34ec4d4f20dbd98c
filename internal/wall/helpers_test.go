package wall_test

import (
	"testing"
	"time"

	"github.com/vovakirdan/magicwall/internal/wall"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// zeroRand always returns 0, which pins every sample to the first option.
type zeroRand struct{}

func (zeroRand) Intn(int) int { return 0 }

func newSession(t *testing.T, seed int64, clock wall.Clock) *wall.Session {
	t.Helper()
	s, err := wall.NewSession(wall.WithSeed(seed), wall.WithClock(clock))
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	return s
}

func customConfig(w, h, diffs int) wall.RoundConfig {
	return wall.RoundConfig{
		Width:     w,
		Height:    h,
		CellSize:  20,
		DiffCount: diffs,
		Scheme:    wall.SchemeA,
		Mode:      wall.ModeCustom,
	}
}

// checkInvariant verifies the difference invariant between two panels.
func checkInvariant(t *testing.T, base, variant *wall.Grid, diffs *wall.DiffSet, rules wall.RuleTable) {
	t.Helper()
	for y := 0; y < base.H; y++ {
		for x := 0; x < base.W; x++ {
			from, to := base.At(x, y), variant.At(x, y)
			if diffs.Has(wall.C(x, y)) {
				if from == to {
					t.Errorf("difference at (%d,%d) has identical colors %s", x, y, from)
				}
				if !rules.IsValidChange(from, to) {
					t.Errorf("difference at (%d,%d) breaks rules: %s -> %s", x, y, from, to)
				}
				continue
			}
			if from != to {
				t.Errorf("non-difference at (%d,%d) differs: %s vs %s", x, y, from, to)
			}
		}
	}
}
