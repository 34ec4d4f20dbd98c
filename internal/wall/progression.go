package wall

import (
	"fmt"
	"time"
)

// LevelRecord is the outcome of a completed challenge level.
type LevelRecord struct {
	Completed bool
	Time      time.Duration
	Errors    int
	Cheats    int
}

// Progression tracks the current level, the highest unlocked level and the
// per-level records of a challenge run.
type Progression struct {
	current     int
	maxUnlocked int
	records     []LevelRecord
}

// NewProgression returns a fresh run starting at level 1.
func NewProgression() *Progression {
	p := &Progression{}
	p.Reset()
	return p
}

// Reset clears all records and locks every level but the first.
// This is the only way MaxUnlocked can decrease.
func (p *Progression) Reset() {
	p.current = 1
	p.maxUnlocked = 1
	p.records = make([]LevelRecord, len(Levels))
}

// Current returns the selected 1-based level.
func (p *Progression) Current() int { return p.current }

// MaxUnlocked returns the highest level the player may select.
func (p *Progression) MaxUnlocked() int { return p.maxUnlocked }

// CurrentLevel returns the parameters of the selected level.
func (p *Progression) CurrentLevel() Level {
	return Levels[p.current-1]
}

// Select makes level the current one.
func (p *Progression) Select(level int) error {
	if level < 1 || level > len(Levels) {
		return fmt.Errorf("%w: %d", ErrUnknownLevel, level)
	}
	if level > p.maxUnlocked {
		return fmt.Errorf("%w: %d (unlocked up to %d)", ErrLevelLocked, level, p.maxUnlocked)
	}
	p.current = level
	return nil
}

// CompleteLevel stores the outcome of level and unlocks the next one when
// level was the frontier.
func (p *Progression) CompleteLevel(level int, elapsed time.Duration, errors, cheats int) error {
	if level < 1 || level > len(Levels) {
		return fmt.Errorf("%w: %d", ErrUnknownLevel, level)
	}
	p.records[level-1] = LevelRecord{
		Completed: true,
		Time:      elapsed,
		Errors:    errors,
		Cheats:    cheats,
	}
	if level == p.maxUnlocked && level < len(Levels) {
		p.maxUnlocked++
	}
	return nil
}

// Advance moves to the next level if it is unlocked.
func (p *Progression) Advance() bool {
	next := p.current + 1
	if next > len(Levels) || next > p.maxUnlocked {
		return false
	}
	p.current = next
	return true
}

// Finished reports whether the last level has been completed.
func (p *Progression) Finished() bool {
	return p.records[len(p.records)-1].Completed
}

// Record returns the record for a 1-based level.
func (p *Progression) Record(level int) (LevelRecord, bool) {
	if level < 1 || level > len(p.records) {
		return LevelRecord{}, false
	}
	return p.records[level-1], true
}

// Records returns a copy of all level records.
func (p *Progression) Records() []LevelRecord {
	out := make([]LevelRecord, len(p.records))
	copy(out, p.records)
	return out
}

// Summary aggregates the completed levels of a run.
type Summary struct {
	Completed int
	Time      time.Duration
	Errors    int
	Cheats    int
}

// Summary totals time, errors and cheats over completed levels.
func (p *Progression) Summary() Summary {
	var s Summary
	for _, r := range p.records {
		if !r.Completed {
			continue
		}
		s.Completed++
		s.Time += r.Time
		s.Errors += r.Errors
		s.Cheats += r.Cheats
	}
	return s
}

// Restore replaces the progression state after validating it.
// The receiver is untouched on error.
func (p *Progression) Restore(current, maxUnlocked int, records []LevelRecord) error {
	if maxUnlocked < 1 || maxUnlocked > len(Levels) {
		return malformed("max unlocked level %d out of range", maxUnlocked)
	}
	if current < 1 || current > maxUnlocked {
		return malformed("current level %d outside 1..%d", current, maxUnlocked)
	}
	if len(records) > len(Levels) {
		return malformed("%d level records, want at most %d", len(records), len(Levels))
	}
	restored := make([]LevelRecord, len(Levels))
	copy(restored, records)

	p.current = current
	p.maxUnlocked = maxUnlocked
	p.records = restored
	return nil
}
