package wall

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// State is the lifecycle state of a Session.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
)

// String returns the persisted name of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// ParseState is the inverse of State.String.
func ParseState(s string) (State, bool) {
	switch s {
	case "idle":
		return StateIdle, true
	case "running":
		return StateRunning, true
	case "completed":
		return StateCompleted, true
	default:
		return StateIdle, false
	}
}

// AttemptResult classifies the outcome of Session.Attempt.
type AttemptResult int

const (
	AttemptIgnored   AttemptResult = iota // Not running, or out of bounds
	AttemptHit                            // Found a difference, more remain
	AttemptMiss                           // Not a difference; error counted
	AttemptCompleted                      // Found the last difference
)

// String returns a human-readable name for the result.
func (r AttemptResult) String() string {
	switch r {
	case AttemptIgnored:
		return "Ignored"
	case AttemptHit:
		return "Hit"
	case AttemptMiss:
		return "Miss"
	case AttemptCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// Session is one game round: the two panels, the remaining differences and
// the counters. It is not safe for concurrent use; all calls are expected to
// come from a single event loop.
type Session struct {
	rules  RuleTable
	rng    Rand
	clock  Clock
	logger *log.Logger

	state   State
	cfg     RoundConfig
	base    *Grid
	variant *Grid
	diffs   *DiffSet
	total   int // Differences actually placed this round
	errors  int
	cheats  int
	hints   bool
	timer   Timer
	stats   GenStats
}

// Option configures a Session.
type Option func(*Session)

// WithRand sets the random source used for generation.
func WithRand(r Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithSeed seeds a math/rand source.
func WithSeed(seed int64) Option {
	return func(s *Session) { s.rng = NewRand(seed) }
}

// WithClock sets the clock used for elapsed time.
func WithClock(c Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithLogger sets the logger for generation diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithRules replaces the color rule table.
func WithRules(r RuleTable) Option {
	return func(s *Session) { s.rules = r }
}

// NewSession creates an idle session.
func NewSession(opts ...Option) (*Session, error) {
	s := &Session{
		rules: DefaultRules(),
		clock: SystemClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = NewRand(0)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if err := s.rules.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Start generates a new round and begins timing it.
// On error the session is left exactly as it was.
func (s *Session) Start(cfg RoundConfig) error {
	if s.state != StateIdle {
		return ErrNotIdle
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeCustom
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	puzzle, err := GeneratePuzzle(cfg, s.rules, s.rng)
	if err != nil {
		return err
	}
	if puzzle.Stats.Degraded() {
		s.logger.Warn("placed fewer differences than requested",
			"requested", puzzle.Stats.Requested,
			"placed", puzzle.Stats.Placed,
			"attempts", puzzle.Stats.Attempts,
		)
	}
	s.logger.Debug("round started",
		"mode", cfg.Mode,
		"level", cfg.Level,
		"size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"diffs", puzzle.Stats.Placed,
	)

	s.timer.Reset()
	s.cfg = cfg
	s.base = puzzle.Base
	s.variant = puzzle.Variant
	s.diffs = puzzle.Diffs
	s.total = puzzle.Stats.Placed
	s.stats = puzzle.Stats
	s.errors = 0
	s.cheats = 0
	s.hints = false

	if s.diffs.Empty() {
		// Nothing could be placed; the round is trivially complete.
		s.state = StateCompleted
		return nil
	}
	s.state = StateRunning
	s.timer.Start(s.clock.Now(), 0)
	return nil
}

// Attempt selects the cell at (x, y).
// It is a no-op outside a running round or outside the grid.
func (s *Session) Attempt(x, y int) AttemptResult {
	if s.state != StateRunning {
		return AttemptIgnored
	}
	c := C(x, y)
	if !s.base.InBounds(c) {
		return AttemptIgnored
	}

	if !s.diffs.Remove(c) {
		s.errors++
		return AttemptMiss
	}

	s.variant.Set(c, s.base.At(x, y))
	if s.hints {
		s.cheats++
	}
	if s.diffs.Empty() {
		s.timer.Stop(s.clock.Now())
		s.state = StateCompleted
		s.logger.Debug("round completed", "errors", s.errors, "cheats", s.cheats, "elapsed", s.timer.Elapsed(s.clock.Now()))
		return AttemptCompleted
	}
	return AttemptHit
}

// Stop abandons or closes the round and discards its grids.
func (s *Session) Stop() {
	if s.state == StateIdle {
		return
	}
	s.timer.Stop(s.clock.Now())
	s.state = StateIdle
	s.base = nil
	s.variant = nil
	s.diffs = nil
	s.hints = false
}

// Pause freezes the round timer, e.g. while a dialog covers the board.
// Attempts are still accepted; only a running round is affected.
func (s *Session) Pause() {
	if s.state == StateRunning {
		s.timer.Stop(s.clock.Now())
	}
}

// Resume restarts the timer of a paused round.
func (s *Session) Resume() {
	if s.state == StateRunning {
		s.timer.Resume(s.clock.Now())
	}
}

// Paused reports whether a running round has its timer frozen.
func (s *Session) Paused() bool {
	return s.state == StateRunning && !s.timer.Running()
}

// SetHints turns the hint overlay on or off. Only a running round accepts it.
func (s *Session) SetHints(on bool) bool {
	if s.state != StateRunning {
		return false
	}
	s.hints = on
	return true
}

// Tick is the periodic timer callback. It returns the elapsed time and
// never changes state.
func (s *Session) Tick(now time.Time) time.Duration {
	return s.timer.Elapsed(now)
}

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Running reports whether the round accepts attempts.
func (s *Session) Running() bool { return s.state == StateRunning }

// Config returns the configuration of the current or last round.
func (s *Session) Config() RoundConfig { return s.cfg }

// Base returns the unmodified panel. Callers must not mutate it.
func (s *Session) Base() *Grid { return s.base }

// Variant returns the panel containing the differences. Callers must not mutate it.
func (s *Session) Variant() *Grid { return s.variant }

// Remaining returns a copy of the unresolved differences.
func (s *Session) Remaining() *DiffSet {
	if s.diffs == nil {
		return NewDiffSet()
	}
	return s.diffs.Clone()
}

// IsDifference reports whether (x, y) is still unresolved.
func (s *Session) IsDifference(x, y int) bool {
	return s.diffs.Has(C(x, y))
}

// Total returns the number of differences placed this round.
func (s *Session) Total() int { return s.total }

// FoundCount returns the number of differences already resolved.
func (s *Session) FoundCount() int { return s.total - s.diffs.Len() }

// ErrorCount returns the number of misses.
func (s *Session) ErrorCount() int { return s.errors }

// CheatCount returns the number of hits made with the hint overlay on.
func (s *Session) CheatCount() int { return s.cheats }

// Hints reports whether the hint overlay is on.
func (s *Session) Hints() bool { return s.hints }

// GenStats returns the generation report of the current round.
func (s *Session) GenStats() GenStats { return s.stats }

// Elapsed returns the round time as of the session clock.
func (s *Session) Elapsed() time.Duration {
	return s.timer.Elapsed(s.clock.Now())
}

// RoundResult summarizes a finished round.
type RoundResult struct {
	Mode    Mode
	Level   int
	Width   int
	Height  int
	Diffs   int
	Errors  int
	Cheats  int
	Elapsed time.Duration
}

// Cheated reports whether any difference was found with hints on.
func (r RoundResult) Cheated() bool {
	return r.Cheats > 0
}

// Result returns the summary of the current round.
func (s *Session) Result() RoundResult {
	return RoundResult{
		Mode:    s.cfg.Mode,
		Level:   s.cfg.Level,
		Width:   s.cfg.Width,
		Height:  s.cfg.Height,
		Diffs:   s.total,
		Errors:  s.errors,
		Cheats:  s.cheats,
		Elapsed: s.Elapsed(),
	}
}
