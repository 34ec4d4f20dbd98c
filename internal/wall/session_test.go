package wall_test

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/magicwall/internal/wall"
)

// Scenario B: resolving every difference completes the round without errors.
func TestSessionCompleteRound(t *testing.T) {
	clock := newFakeClock()
	s := newSession(t, 42, clock)

	if err := s.Start(customConfig(10, 10, 3)); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if s.State() != wall.StateRunning {
		t.Fatalf("State() = %v, want running", s.State())
	}
	if s.Total() != 3 {
		t.Fatalf("Total() = %d, want 3", s.Total())
	}
	checkInvariant(t, s.Base(), s.Variant(), s.Remaining(), wall.DefaultRules())

	coords := s.Remaining().Sorted()
	for i, c := range coords {
		clock.Advance(time.Second)
		result := s.Attempt(c.X, c.Y)

		want := wall.AttemptHit
		if i == len(coords)-1 {
			want = wall.AttemptCompleted
		}
		if result != want {
			t.Errorf("Attempt(%v) = %v, want %v", c, result, want)
		}
		if s.Variant().At(c.X, c.Y) != s.Base().At(c.X, c.Y) {
			t.Errorf("variant at %v not restored to base color", c)
		}
	}

	if s.State() != wall.StateCompleted {
		t.Errorf("State() = %v, want completed", s.State())
	}
	if s.ErrorCount() != 0 {
		t.Errorf("ErrorCount() = %d, want 0", s.ErrorCount())
	}
	if s.FoundCount() != 3 {
		t.Errorf("FoundCount() = %d, want 3", s.FoundCount())
	}
	if !s.Base().Equal(s.Variant()) {
		t.Error("panels should be identical after completion")
	}

	// Timer stops with the round.
	elapsed := s.Elapsed()
	if elapsed != 3*time.Second {
		t.Errorf("Elapsed() = %v, want 3s", elapsed)
	}
	clock.Advance(time.Minute)
	if s.Elapsed() != elapsed {
		t.Error("elapsed time kept accruing after completion")
	}
}

// Scenario C: a miss counts an error and keeps the round running.
func TestSessionMiss(t *testing.T) {
	s := newSession(t, 7, newFakeClock())
	if err := s.Start(customConfig(10, 10, 3)); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	miss := wall.C(0, 0)
	for s.IsDifference(miss.X, miss.Y) {
		miss.X++
	}

	if got := s.Attempt(miss.X, miss.Y); got != wall.AttemptMiss {
		t.Errorf("Attempt(%v) = %v, want Miss", miss, got)
	}
	if s.ErrorCount() != 1 {
		t.Errorf("ErrorCount() = %d, want 1", s.ErrorCount())
	}
	if s.State() != wall.StateRunning {
		t.Errorf("State() = %v, want running", s.State())
	}
	if s.Remaining().Len() != 3 {
		t.Errorf("Remaining().Len() = %d, want 3", s.Remaining().Len())
	}
}

func TestSessionRepeatHitIsError(t *testing.T) {
	s := newSession(t, 11, newFakeClock())
	if err := s.Start(customConfig(10, 10, 3)); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	c := s.Remaining().Sorted()[0]
	if got := s.Attempt(c.X, c.Y); got != wall.AttemptHit {
		t.Fatalf("first Attempt(%v) = %v, want Hit", c, got)
	}
	for i := 1; i <= 3; i++ {
		if got := s.Attempt(c.X, c.Y); got != wall.AttemptMiss {
			t.Errorf("repeat Attempt(%v) = %v, want Miss", c, got)
		}
		if s.ErrorCount() != i {
			t.Errorf("ErrorCount() = %d, want %d", s.ErrorCount(), i)
		}
	}
	if s.IsDifference(c.X, c.Y) {
		t.Error("resolved difference came back")
	}
	if s.Remaining().Len() != 2 {
		t.Errorf("Remaining().Len() = %d, want 2", s.Remaining().Len())
	}
}

func TestSessionAttemptIgnored(t *testing.T) {
	s := newSession(t, 3, newFakeClock())

	if got := s.Attempt(0, 0); got != wall.AttemptIgnored {
		t.Errorf("Attempt on idle session = %v, want Ignored", got)
	}

	if err := s.Start(customConfig(10, 10, 3)); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	tests := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 0},
		{"negative y", 0, -1},
		{"x past edge", 10, 0},
		{"y past edge", 0, 10},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.Attempt(tc.x, tc.y); got != wall.AttemptIgnored {
				t.Errorf("Attempt(%d, %d) = %v, want Ignored", tc.x, tc.y, got)
			}
		})
	}
	if s.ErrorCount() != 0 {
		t.Errorf("ErrorCount() = %d after out-of-bounds clicks, want 0", s.ErrorCount())
	}
}

func TestSessionCheatCounting(t *testing.T) {
	s := newSession(t, 5, newFakeClock())

	if s.SetHints(true) {
		t.Error("SetHints() should be refused on an idle session")
	}
	if err := s.Start(customConfig(10, 10, 3)); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	coords := s.Remaining().Sorted()
	s.Attempt(coords[0].X, coords[0].Y)

	if !s.SetHints(true) {
		t.Fatal("SetHints() refused on a running session")
	}
	s.Attempt(coords[1].X, coords[1].Y)
	s.SetHints(false)
	s.Attempt(coords[2].X, coords[2].Y)

	if s.CheatCount() != 1 {
		t.Errorf("CheatCount() = %d, want 1", s.CheatCount())
	}
	if !s.Result().Cheated() {
		t.Error("Result().Cheated() = false, want true")
	}
}

func TestSessionStop(t *testing.T) {
	clock := newFakeClock()
	s := newSession(t, 9, clock)

	s.Stop() // no-op when idle
	if s.State() != wall.StateIdle {
		t.Fatalf("State() = %v, want idle", s.State())
	}

	if err := s.Start(customConfig(10, 10, 3)); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	clock.Advance(2 * time.Second)
	s.SetHints(true)
	s.Stop()

	if s.State() != wall.StateIdle {
		t.Errorf("State() = %v, want idle", s.State())
	}
	if s.Base() != nil || s.Variant() != nil {
		t.Error("Stop() should discard the grids")
	}
	if s.Remaining().Len() != 0 {
		t.Error("Stop() should discard the differences")
	}
	if s.Hints() {
		t.Error("Stop() should clear the hint overlay")
	}
	if got := s.Attempt(0, 0); got != wall.AttemptIgnored {
		t.Errorf("Attempt after Stop = %v, want Ignored", got)
	}

	// The timer must not keep running after Stop.
	frozen := s.Elapsed()
	clock.Advance(time.Hour)
	if s.Tick(clock.Now()) != frozen {
		t.Error("Tick() advanced after Stop")
	}

	// A new round starts from zero.
	if err := s.Start(customConfig(10, 10, 3)); err != nil {
		t.Fatalf("second Start() failed: %v", err)
	}
	if s.Elapsed() != 0 {
		t.Errorf("Elapsed() = %v after restart, want 0", s.Elapsed())
	}
}

func TestSessionStartRequiresIdle(t *testing.T) {
	s := newSession(t, 1, newFakeClock())
	if err := s.Start(customConfig(10, 10, 3)); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	base := s.Base()

	if err := s.Start(customConfig(12, 12, 4)); !errors.Is(err, wall.ErrNotIdle) {
		t.Errorf("Start() on running session = %v, want ErrNotIdle", err)
	}
	if s.Base() != base {
		t.Error("rejected Start() replaced the grids")
	}
}

// Scenario D: an oversized configuration is rejected without touching state.
func TestSessionStartRejectsBadConfig(t *testing.T) {
	s := newSession(t, 1, newFakeClock())

	cfg := wall.RoundConfig{Width: 500, Height: 500, CellSize: 50, DiffCount: 5, Scheme: wall.SchemeA}
	err := s.Start(cfg)
	if !errors.Is(err, wall.ErrConfiguration) {
		t.Fatalf("Start() error = %v, want ErrConfiguration", err)
	}
	if s.State() != wall.StateIdle || s.Base() != nil {
		t.Error("rejected Start() changed session state")
	}
}

func TestSessionDegradedRound(t *testing.T) {
	s, err := wall.NewSession(wall.WithRand(zeroRand{}), wall.WithClock(newFakeClock()))
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	if err := s.Start(customConfig(10, 10, 3)); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	if s.Total() != 1 {
		t.Fatalf("Total() = %d, want 1", s.Total())
	}
	if !s.GenStats().Degraded() {
		t.Error("GenStats().Degraded() = false, want true")
	}
	// Completion follows the placed count, not the requested one.
	if got := s.Attempt(0, 0); got != wall.AttemptCompleted {
		t.Errorf("Attempt(0, 0) = %v, want Completed", got)
	}
}

func TestSessionTickTracksClock(t *testing.T) {
	clock := newFakeClock()
	s := newSession(t, 2, clock)
	if err := s.Start(customConfig(10, 10, 3)); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	clock.Advance(1500 * time.Millisecond)
	if got := s.Tick(clock.Now()); got != 1500*time.Millisecond {
		t.Errorf("Tick() = %v, want 1.5s", got)
	}
	if s.State() != wall.StateRunning {
		t.Error("Tick() changed the state")
	}
}

func TestSessionPauseFreezesTimer(t *testing.T) {
	clock := newFakeClock()
	s := newSession(t, 42, clock)
	if err := s.Start(customConfig(10, 10, 3)); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	clock.Advance(2 * time.Second)
	s.Pause()
	if !s.Paused() {
		t.Fatal("Paused() = false after Pause()")
	}
	clock.Advance(10 * time.Second)
	if got := s.Tick(clock.Now()); got != 2*time.Second {
		t.Errorf("elapsed while paused = %v, want 2s", got)
	}

	s.Resume()
	clock.Advance(time.Second)
	if got := s.Elapsed(); got != 3*time.Second {
		t.Errorf("elapsed after resume = %v, want 3s", got)
	}
	if s.Paused() {
		t.Error("Paused() = true after Resume()")
	}
}

func TestSessionPauseOutsideRunningRound(t *testing.T) {
	s := newSession(t, 42, newFakeClock())
	s.Pause()
	s.Resume()
	if s.Paused() || s.State() != wall.StateIdle {
		t.Errorf("idle session changed: paused=%v state=%v", s.Paused(), s.State())
	}
}
