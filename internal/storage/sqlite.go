// Package storage provides SQLite-based persistence for saved rounds,
// challenge records and the completion history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/magicwall/internal/wall"
)

// ErrNoSave is returned when a save slot does not exist.
var ErrNoSave = errors.New("storage: save slot not found")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// SaveInfo describes a stored snapshot without decoding it.
type SaveInfo struct {
	Slot      string
	State     string
	Mode      string
	Level     int
	UpdatedAt time.Time
}

// Result is one completed round in the history.
type Result struct {
	ID        int64
	User      string
	Mode      wall.Mode
	Level     int
	Width     int
	Height    int
	Diffs     int
	Errors    int
	Cheats    int
	Elapsed   time.Duration
	CreatedAt time.Time
}

// ResultFrom converts a finished round into a history entry.
func ResultFrom(user string, r wall.RoundResult) Result {
	return Result{
		User:    user,
		Mode:    r.Mode,
		Level:   r.Level,
		Width:   r.Width,
		Height:  r.Height,
		Diffs:   r.Diffs,
		Errors:  r.Errors,
		Cheats:  r.Cheats,
		Elapsed: r.Elapsed,
	}
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := ExpandPath(dbPath)
	if err != nil {
		return nil, fail("open", "cannot expand home directory", err)
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fail("open", "cannot create directory "+dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fail("open", "cannot open database", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fail("open", "cannot connect to database", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fail("open", "migration failed", err)
	}

	return store, nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS saves (
			slot TEXT PRIMARY KEY,
			state TEXT NOT NULL,
			mode TEXT NOT NULL,
			level INTEGER NOT NULL DEFAULT 0,
			data TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS level_records (
			user TEXT NOT NULL,
			level INTEGER NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0,
			time_ms INTEGER NOT NULL DEFAULT 0,
			errors INTEGER NOT NULL DEFAULT 0,
			cheats INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user, level)
		);

		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user TEXT NOT NULL,
			mode TEXT NOT NULL,
			level INTEGER NOT NULL DEFAULT 0,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			diffs INTEGER NOT NULL,
			errors INTEGER NOT NULL DEFAULT 0,
			cheats INTEGER NOT NULL DEFAULT 0,
			elapsed_ms INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_mode ON results(mode);
		CREATE INDEX IF NOT EXISTS idx_results_top ON results(mode, cheats, elapsed_ms);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSnapshot stores snap under slot, replacing any previous save.
func (s *Store) SaveSnapshot(slot string, snap wall.Snapshot) error {
	if slot == "" {
		return fail("save", "cannot save snapshot", errors.New("empty slot name"))
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fail("save", "cannot encode snapshot", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO saves (slot, state, mode, level, data, updated_at)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(slot) DO UPDATE SET
		   state = excluded.state,
		   mode = excluded.mode,
		   level = excluded.level,
		   data = excluded.data,
		   updated_at = excluded.updated_at`,
		slot, snap.State, snap.Settings.Mode, snap.Settings.Level, string(data),
	)
	if err != nil {
		return fail("save", "cannot save snapshot", err)
	}
	return nil
}

// LoadSnapshot reads the snapshot stored under slot.
// The snapshot is decoded but not validated; wall.Restore does that.
func (s *Store) LoadSnapshot(slot string) (wall.Snapshot, error) {
	var snap wall.Snapshot
	var data string

	err := s.db.QueryRow("SELECT data FROM saves WHERE slot = ?", slot).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return snap, fail("load", "slot "+slot, ErrNoSave)
	}
	if err != nil {
		return snap, fail("load", "cannot query snapshot", err)
	}

	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return snap, fail("load", "cannot decode snapshot", fmt.Errorf("%w: %v", wall.ErrMalformedSnapshot, err))
	}
	return snap, nil
}

// ListSaves returns all save slots, most recent first.
func (s *Store) ListSaves() ([]SaveInfo, error) {
	rows, err := s.db.Query(
		`SELECT slot, state, mode, level, updated_at
		 FROM saves
		 ORDER BY updated_at DESC, slot ASC`,
	)
	if err != nil {
		return nil, fail("load", "cannot query saves", err)
	}
	defer rows.Close()

	var saves []SaveInfo
	for rows.Next() {
		var info SaveInfo
		var updatedAt any
		if err := rows.Scan(&info.Slot, &info.State, &info.Mode, &info.Level, &updatedAt); err != nil {
			return nil, fail("load", "cannot scan row", err)
		}
		info.UpdatedAt = parseTime(updatedAt)
		saves = append(saves, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fail("load", "row iteration error", err)
	}
	return saves, nil
}

// DeleteSave removes a save slot. Deleting a missing slot is not an error.
func (s *Store) DeleteSave(slot string) error {
	if _, err := s.db.Exec("DELETE FROM saves WHERE slot = ?", slot); err != nil {
		return fail("delete", "cannot delete save", err)
	}
	return nil
}

// SaveLevelRecords replaces the challenge records of user.
// records[i] belongs to level i+1.
func (s *Store) SaveLevelRecords(user string, records []wall.LevelRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fail("save", "cannot begin transaction", err)
	}
	//nolint:errcheck // Rollback after Commit is a no-op
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM level_records WHERE user = ?", user); err != nil {
		return fail("save", "cannot clear level records", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO level_records (user, level, completed, time_ms, errors, cheats)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fail("save", "cannot prepare insert", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if !r.Completed {
			continue
		}
		if _, err := stmt.Exec(user, i+1, 1, r.Time.Milliseconds(), r.Errors, r.Cheats); err != nil {
			return fail("save", fmt.Sprintf("cannot save level %d record", i+1), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fail("save", "cannot commit level records", err)
	}
	return nil
}

// LoadLevelRecords returns one record per challenge level for user.
// Levels never completed come back as zero records.
func (s *Store) LoadLevelRecords(user string) ([]wall.LevelRecord, error) {
	rows, err := s.db.Query(
		`SELECT level, completed, time_ms, errors, cheats
		 FROM level_records
		 WHERE user = ?
		 ORDER BY level`,
		user,
	)
	if err != nil {
		return nil, fail("load", "cannot query level records", err)
	}
	defer rows.Close()

	records := make([]wall.LevelRecord, wall.LevelCount)
	for rows.Next() {
		var level, completed, errCount, cheats int
		var timeMS int64
		if err := rows.Scan(&level, &completed, &timeMS, &errCount, &cheats); err != nil {
			return nil, fail("load", "cannot scan row", err)
		}
		if level < 1 || level > wall.LevelCount {
			continue
		}
		records[level-1] = wall.LevelRecord{
			Completed: completed != 0,
			Time:      time.Duration(timeMS) * time.Millisecond,
			Errors:    errCount,
			Cheats:    cheats,
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fail("load", "row iteration error", err)
	}
	return records, nil
}

// SaveResult appends a completed round to the history.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(r Result) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO results
		 (user, mode, level, width, height, diffs, errors, cheats, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.User,
		string(r.Mode),
		r.Level,
		r.Width,
		r.Height,
		r.Diffs,
		r.Errors,
		r.Cheats,
		r.Elapsed.Milliseconds(),
	)
	if err != nil {
		return 0, fail("save", "cannot save result", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fail("save", "cannot get inserted ID", err)
	}
	return id, nil
}

// TopResults returns the best results for mode: clean rounds first, then
// fastest. An empty mode matches every mode.
func (s *Store) TopResults(mode wall.Mode, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, user, mode, level, width, height, diffs, errors, cheats, elapsed_ms, created_at
		 FROM results
		 WHERE ? = '' OR mode = ?
		 ORDER BY cheats ASC, elapsed_ms ASC, errors ASC, id ASC
		 LIMIT ?`,
		string(mode), string(mode), limit,
	)
	if err != nil {
		return nil, fail("load", "cannot query results", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var modeName string
		var elapsedMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.User, &modeName, &r.Level, &r.Width, &r.Height,
			&r.Diffs, &r.Errors, &r.Cheats, &elapsedMS, &createdAt); err != nil {
			return nil, fail("load", "cannot scan row", err)
		}
		r.Mode = wall.Mode(modeName)
		r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fail("load", "row iteration error", err)
	}
	return results, nil
}

// ClearResults deletes the completion history.
func (s *Store) ClearResults() error {
	if _, err := s.db.Exec("DELETE FROM results"); err != nil {
		return fail("delete", "cannot clear results", err)
	}
	return nil
}

// parseTime handles the datetime column as either time.Time or string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// fail wraps err as a persistence failure with the package prefix.
func fail(op, msg string, err error) error {
	return wall.NewPersistenceError(op, fmt.Errorf("storage: %s: %w", msg, err))
}
