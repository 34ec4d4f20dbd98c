package wall

import (
	"time"
)

// SnapshotVersion is bumped when the saved-game layout changes.
const SnapshotVersion = 1

// Snapshot is the serializable form of a session and its progression.
// Grids hold color names and differences use the "x,y" key form.
type Snapshot struct {
	Version     int                  `json:"version" yaml:"version"`
	SavedAt     time.Time            `json:"saved_at" yaml:"saved_at"`
	State       string               `json:"state" yaml:"state"`
	Hints       bool                 `json:"hints" yaml:"hints"`
	Base        [][]string           `json:"base,omitempty" yaml:"base,omitempty"`
	Variant     [][]string           `json:"variant,omitempty" yaml:"variant,omitempty"`
	Diffs       []string             `json:"diffs" yaml:"diffs"`
	Stats       SnapshotStats        `json:"stats" yaml:"stats"`
	Settings    SnapshotSettings     `json:"settings" yaml:"settings"`
	Progression *ProgressionSnapshot `json:"progression,omitempty" yaml:"progression,omitempty"`
}

// SnapshotStats holds the round counters.
type SnapshotStats struct {
	Errors    int   `json:"errors" yaml:"errors"`
	Cheats    int   `json:"cheats" yaml:"cheats"`
	Found     int   `json:"found" yaml:"found"`
	Total     int   `json:"total" yaml:"total"`
	ElapsedMS int64 `json:"elapsed_ms" yaml:"elapsed_ms"`
}

// SnapshotSettings holds the round configuration.
type SnapshotSettings struct {
	Width     int    `json:"width" yaml:"width"`
	Height    int    `json:"height" yaml:"height"`
	CellSize  int    `json:"cell_size" yaml:"cell_size"`
	DiffCount int    `json:"diff_count" yaml:"diff_count"`
	Mode      string `json:"mode" yaml:"mode"`
	Level     int    `json:"level" yaml:"level"`
	Scheme    string `json:"scheme" yaml:"scheme"`
}

// ProgressionSnapshot holds the challenge run state.
type ProgressionSnapshot struct {
	Current     int              `json:"current" yaml:"current"`
	MaxUnlocked int              `json:"max_unlocked" yaml:"max_unlocked"`
	Records     []RecordSnapshot `json:"records" yaml:"records"`
}

// RecordSnapshot is the persisted form of a LevelRecord.
type RecordSnapshot struct {
	Completed bool  `json:"completed" yaml:"completed"`
	TimeMS    int64 `json:"time_ms" yaml:"time_ms"`
	Errors    int   `json:"errors" yaml:"errors"`
	Cheats    int   `json:"cheats" yaml:"cheats"`
}

// Snapshot captures the session. Idle sessions carry settings and counters only.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Version: SnapshotVersion,
		SavedAt: s.clock.Now().UTC(),
		State:   s.state.String(),
		Hints:   s.hints,
		Diffs:   []string{},
		Stats: SnapshotStats{
			Errors:    s.errors,
			Cheats:    s.cheats,
			Total:     s.total,
			ElapsedMS: s.Elapsed().Milliseconds(),
		},
		Settings: SnapshotSettings{
			Width:     s.cfg.Width,
			Height:    s.cfg.Height,
			CellSize:  s.cfg.CellSize,
			DiffCount: s.cfg.DiffCount,
			Mode:      string(s.cfg.Mode),
			Level:     s.cfg.Level,
			Scheme:    string(s.cfg.Scheme),
		},
	}
	if s.state == StateIdle {
		return snap
	}

	snap.Stats.Found = s.FoundCount()
	snap.Base = encodeGrid(s.base)
	snap.Variant = encodeGrid(s.variant)
	for _, c := range s.diffs.Sorted() {
		snap.Diffs = append(snap.Diffs, c.Key())
	}
	return snap
}

// Snapshot captures the progression.
func (p *Progression) Snapshot() *ProgressionSnapshot {
	ps := &ProgressionSnapshot{
		Current:     p.current,
		MaxUnlocked: p.maxUnlocked,
		Records:     make([]RecordSnapshot, len(p.records)),
	}
	for i, r := range p.records {
		ps.Records[i] = RecordSnapshot{
			Completed: r.Completed,
			TimeMS:    r.Time.Milliseconds(),
			Errors:    r.Errors,
			Cheats:    r.Cheats,
		}
	}
	return ps
}

// Capture snapshots a session together with its progression.
// p may be nil for custom-mode saves.
func Capture(s *Session, p *Progression) Snapshot {
	snap := s.Snapshot()
	if p != nil {
		snap.Progression = p.Snapshot()
	}
	return snap
}

// Restore loads a snapshot into s and, when both are present, p.
// Everything is validated first; on error neither is modified.
func Restore(snap Snapshot, s *Session, p *Progression) error {
	round, err := decodeRound(snap, s.rules)
	if err != nil {
		return err
	}

	var (
		current, maxUnlocked int
		records              []LevelRecord
	)
	if p != nil && snap.Progression != nil {
		ps := snap.Progression
		records = make([]LevelRecord, 0, len(ps.Records))
		for i, r := range ps.Records {
			if r.TimeMS < 0 || r.Errors < 0 || r.Cheats < 0 {
				return malformed("negative value in level %d record", i+1)
			}
			records = append(records, LevelRecord{
				Completed: r.Completed,
				Time:      time.Duration(r.TimeMS) * time.Millisecond,
				Errors:    r.Errors,
				Cheats:    r.Cheats,
			})
		}
		// Validate on a scratch copy so a failure leaves p alone.
		scratch := NewProgression()
		if err := scratch.Restore(ps.Current, ps.MaxUnlocked, records); err != nil {
			return err
		}
		current, maxUnlocked = ps.Current, ps.MaxUnlocked
	}

	s.commit(round)
	if p != nil && snap.Progression != nil {
		//nolint:errcheck // Validated above
		p.Restore(current, maxUnlocked, records)
	}
	return nil
}

// Restore loads a session-only snapshot.
func (s *Session) Restore(snap Snapshot) error {
	return Restore(snap, s, nil)
}

type decodedRound struct {
	cfg     RoundConfig
	state   State
	hints   bool
	base    *Grid
	variant *Grid
	diffs   *DiffSet
	total   int
	errors  int
	cheats  int
	elapsed time.Duration
}

func decodeRound(snap Snapshot, rules RuleTable) (*decodedRound, error) {
	if snap.Version != SnapshotVersion {
		return nil, malformed("unsupported version %d", snap.Version)
	}
	state, ok := ParseState(snap.State)
	if !ok {
		return nil, malformed("unknown state %q", snap.State)
	}
	scheme, ok := ParseScheme(snap.Settings.Scheme)
	if !ok {
		return nil, malformed("unknown scheme %q", snap.Settings.Scheme)
	}
	mode := Mode(snap.Settings.Mode)
	if mode != ModeCustom && mode != ModeChallenge && mode != "" {
		return nil, malformed("unknown mode %q", snap.Settings.Mode)
	}
	st := snap.Stats
	if st.Errors < 0 || st.Cheats < 0 || st.Found < 0 || st.Total < 0 || st.ElapsedMS < 0 {
		return nil, malformed("negative counter")
	}

	r := &decodedRound{
		cfg: RoundConfig{
			Width:     snap.Settings.Width,
			Height:    snap.Settings.Height,
			CellSize:  snap.Settings.CellSize,
			DiffCount: snap.Settings.DiffCount,
			Scheme:    scheme,
			Mode:      mode,
			Level:     snap.Settings.Level,
		},
		state:   state,
		errors:  st.Errors,
		cheats:  st.Cheats,
		total:   st.Total,
		elapsed: time.Duration(st.ElapsedMS) * time.Millisecond,
	}
	if state == StateIdle {
		if len(snap.Base) > 0 || len(snap.Variant) > 0 || len(snap.Diffs) > 0 {
			return nil, malformed("idle snapshot carries round data")
		}
		return r, nil
	}

	if r.cfg.Mode == "" {
		r.cfg.Mode = ModeCustom
	}
	if err := r.cfg.Validate(); err != nil {
		return nil, malformed("settings: %v", err)
	}

	base, err := decodeGrid(snap.Base, "base")
	if err != nil {
		return nil, err
	}
	variant, err := decodeGrid(snap.Variant, "variant")
	if err != nil {
		return nil, err
	}
	if base.W != r.cfg.Width || base.H != r.cfg.Height {
		return nil, malformed("base is %dx%d, settings say %dx%d", base.W, base.H, r.cfg.Width, r.cfg.Height)
	}
	if variant.W != base.W || variant.H != base.H {
		return nil, malformed("variant is %dx%d, base is %dx%d", variant.W, variant.H, base.W, base.H)
	}

	diffs := NewDiffSet()
	for _, key := range snap.Diffs {
		c, err := ParseCoord(key)
		if err != nil {
			return nil, malformed("%v", err)
		}
		if !base.InBounds(c) {
			return nil, malformed("difference %s out of bounds", c)
		}
		if diffs.Has(c) {
			return nil, malformed("duplicate difference %s", c)
		}
		from, to := base.At(c.X, c.Y), variant.At(c.X, c.Y)
		if from == to || !rules.IsValidChange(from, to) {
			return nil, malformed("difference %s breaks color rules (%s -> %s)", c, from, to)
		}
		diffs.add(c)
	}
	for _, c := range base.Diff(variant) {
		if !diffs.Has(c) {
			return nil, malformed("cell %s differs but is not a difference", c)
		}
	}

	if st.Found+diffs.Len() != st.Total {
		return nil, malformed("found %d + remaining %d != total %d", st.Found, diffs.Len(), st.Total)
	}
	if state == StateRunning && diffs.Empty() {
		return nil, malformed("running round has no differences left")
	}
	if state == StateCompleted && !diffs.Empty() {
		return nil, malformed("completed round still has %d differences", diffs.Len())
	}

	r.hints = snap.Hints && state == StateRunning
	r.base = base
	r.variant = variant
	r.diffs = diffs
	return r, nil
}

func (s *Session) commit(r *decodedRound) {
	s.timer.Reset()
	s.cfg = r.cfg
	s.state = r.state
	s.hints = r.hints
	s.base = r.base
	s.variant = r.variant
	s.diffs = r.diffs
	s.total = r.total
	s.errors = r.errors
	s.cheats = r.cheats
	s.stats = GenStats{Requested: r.cfg.DiffCount, Placed: r.total}

	if r.state == StateRunning {
		s.timer.Start(s.clock.Now(), r.elapsed)
		return
	}
	s.timer.Freeze(r.elapsed)
}

func encodeGrid(g *Grid) [][]string {
	rows := make([][]string, g.H)
	for y := range rows {
		rows[y] = make([]string, g.W)
		for x := range rows[y] {
			rows[y][x] = g.At(x, y).String()
		}
	}
	return rows
}

func decodeGrid(rows [][]string, name string) (*Grid, error) {
	colors := make([][]Color, len(rows))
	for y, row := range rows {
		colors[y] = make([]Color, len(row))
		for x, v := range row {
			c, ok := ParseColor(v)
			if !ok {
				return nil, malformed("%s cell (%d,%d) has unknown color %q", name, x, y, v)
			}
			colors[y][x] = c
		}
	}
	g, ok := GridFromRows(colors)
	if !ok {
		return nil, malformed("%s grid is empty or ragged", name)
	}
	return g, nil
}
