package wall_test

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/magicwall/internal/wall"
)

func TestLevelParams(t *testing.T) {
	tests := []struct {
		level, side, cell int
	}{
		{1, 20, 28},
		{2, 40, 27},
		{10, 200, 19},
		{20, 400, 9},
	}
	for _, tc := range tests {
		lvl, err := wall.DeriveParams(tc.level)
		if err != nil {
			t.Fatalf("DeriveParams(%d) failed: %v", tc.level, err)
		}
		if lvl.Width != tc.side || lvl.Height != tc.side {
			t.Errorf("level %d size = %dx%d, want %dx%d", tc.level, lvl.Width, lvl.Height, tc.side, tc.side)
		}
		if lvl.CellSize != tc.cell {
			t.Errorf("level %d cell size = %d, want %d", tc.level, lvl.CellSize, tc.cell)
		}
		if lvl.DiffCount != 5 {
			t.Errorf("level %d diff count = %d, want 5", tc.level, lvl.DiffCount)
		}
	}

	for _, bad := range []int{0, -1, 21} {
		if _, err := wall.DeriveParams(bad); !errors.Is(err, wall.ErrUnknownLevel) {
			t.Errorf("DeriveParams(%d) error = %v, want ErrUnknownLevel", bad, err)
		}
	}
}

func TestLevelConfig(t *testing.T) {
	lvl, _ := wall.DeriveParams(3)
	cfg := lvl.RoundConfig(wall.SchemeB)
	if cfg.Mode != wall.ModeChallenge || cfg.Level != 3 || cfg.Scheme != wall.SchemeB {
		t.Errorf("RoundConfig() = %+v", cfg)
	}
	if got := lvl.String(); got != "Level 3 - 60x60" {
		t.Errorf("String() = %q", got)
	}
}

func TestProgressionUnlock(t *testing.T) {
	p := wall.NewProgression()
	if p.Current() != 1 || p.MaxUnlocked() != 1 {
		t.Fatalf("new progression at %d/%d, want 1/1", p.Current(), p.MaxUnlocked())
	}

	if err := p.Select(2); !errors.Is(err, wall.ErrLevelLocked) {
		t.Errorf("Select(2) error = %v, want ErrLevelLocked", err)
	}
	if p.Advance() {
		t.Error("Advance() past a locked level succeeded")
	}

	if err := p.CompleteLevel(1, 10*time.Second, 2, 0); err != nil {
		t.Fatalf("CompleteLevel(1) failed: %v", err)
	}
	if p.MaxUnlocked() != 2 {
		t.Errorf("MaxUnlocked() = %d, want 2", p.MaxUnlocked())
	}

	// Replaying an earlier level never unlocks further.
	if err := p.CompleteLevel(1, 5*time.Second, 0, 0); err != nil {
		t.Fatalf("CompleteLevel(1) replay failed: %v", err)
	}
	if p.MaxUnlocked() != 2 {
		t.Errorf("MaxUnlocked() = %d after replay, want 2", p.MaxUnlocked())
	}
	rec, _ := p.Record(1)
	if rec.Time != 5*time.Second {
		t.Errorf("replay record time = %v, want latest 5s", rec.Time)
	}

	if !p.Advance() {
		t.Fatal("Advance() to unlocked level 2 failed")
	}
	if p.Current() != 2 {
		t.Errorf("Current() = %d, want 2", p.Current())
	}
	if err := p.Select(1); err != nil {
		t.Errorf("Select(1) failed: %v", err)
	}
	if err := p.Select(21); !errors.Is(err, wall.ErrUnknownLevel) {
		t.Errorf("Select(21) error = %v, want ErrUnknownLevel", err)
	}
}

func TestProgressionMonotonic(t *testing.T) {
	p := wall.NewProgression()
	prev := p.MaxUnlocked()
	for lvl := 1; lvl <= wall.LevelCount; lvl++ {
		if err := p.CompleteLevel(lvl, time.Second, 0, 0); err != nil {
			t.Fatalf("CompleteLevel(%d) failed: %v", lvl, err)
		}
		if p.MaxUnlocked() < prev {
			t.Fatalf("MaxUnlocked() decreased from %d to %d", prev, p.MaxUnlocked())
		}
		prev = p.MaxUnlocked()
	}
	if p.MaxUnlocked() != wall.LevelCount {
		t.Errorf("MaxUnlocked() = %d, want %d", p.MaxUnlocked(), wall.LevelCount)
	}
	if !p.Finished() {
		t.Error("Finished() = false after completing every level")
	}
}

func TestProgressionSummaryAndReset(t *testing.T) {
	p := wall.NewProgression()
	p.CompleteLevel(1, 10*time.Second, 1, 0)
	p.CompleteLevel(2, 20*time.Second, 2, 3)

	got := p.Summary()
	want := wall.Summary{Completed: 2, Time: 30 * time.Second, Errors: 3, Cheats: 3}
	if got != want {
		t.Errorf("Summary() = %+v, want %+v", got, want)
	}

	p.Reset()
	if p.MaxUnlocked() != 1 || p.Current() != 1 {
		t.Errorf("after Reset at %d/%d, want 1/1", p.Current(), p.MaxUnlocked())
	}
	if s := p.Summary(); s.Completed != 0 {
		t.Errorf("Summary().Completed = %d after Reset, want 0", s.Completed)
	}
}

func TestProgressionRestoreRejects(t *testing.T) {
	p := wall.NewProgression()
	p.CompleteLevel(1, time.Second, 0, 0)

	tests := []struct {
		name              string
		current, unlocked int
	}{
		{"zero unlocked", 1, 0},
		{"unlocked past end", 1, 21},
		{"current past unlocked", 3, 2},
		{"current zero", 0, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := p.Restore(tc.current, tc.unlocked, nil)
			if !errors.Is(err, wall.ErrMalformedSnapshot) {
				t.Errorf("Restore() error = %v, want ErrMalformedSnapshot", err)
			}
			if p.MaxUnlocked() != 2 {
				t.Error("rejected Restore() changed the progression")
			}
		})
	}
}
