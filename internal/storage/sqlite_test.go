package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/magicwall/internal/wall"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// runningSnapshot starts a small round, resolves one difference and
// captures it together with a progression.
func runningSnapshot(t *testing.T) (wall.Snapshot, *wall.Session) {
	t.Helper()
	s, err := wall.NewSession(wall.WithSeed(7))
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	cfg := wall.RoundConfig{Width: 10, Height: 10, CellSize: 20, DiffCount: 3, Scheme: wall.SchemeB}
	if err := s.Start(cfg); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	c := s.Remaining().Sorted()[0]
	s.Attempt(c.X, c.Y)

	p := wall.NewProgression()
	p.CompleteLevel(1, 9*time.Second, 2, 0)
	return wall.Capture(s, p), s
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSnapshotRoundTrip(t *testing.T) {
	store := openTestStore(t)
	snap, src := runningSnapshot(t)

	if err := store.SaveSnapshot("quick", snap); err != nil {
		t.Fatalf("SaveSnapshot() failed: %v", err)
	}

	loaded, err := store.LoadSnapshot("quick")
	if err != nil {
		t.Fatalf("LoadSnapshot() failed: %v", err)
	}

	dst, _ := wall.NewSession()
	prog := wall.NewProgression()
	if err := wall.Restore(loaded, dst, prog); err != nil {
		t.Fatalf("Restore() of stored snapshot failed: %v", err)
	}
	if !dst.Variant().Equal(src.Variant()) || dst.FoundCount() != 1 {
		t.Error("restored session does not match the saved one")
	}
	if prog.MaxUnlocked() != 2 {
		t.Errorf("MaxUnlocked() = %d, want 2", prog.MaxUnlocked())
	}
}

func TestStoreSnapshotOverwrite(t *testing.T) {
	store := openTestStore(t)
	snap, _ := runningSnapshot(t)

	store.SaveSnapshot("slot", snap)
	snap.Stats.Errors = 42
	if err := store.SaveSnapshot("slot", snap); err != nil {
		t.Fatalf("SaveSnapshot() overwrite failed: %v", err)
	}

	loaded, err := store.LoadSnapshot("slot")
	if err != nil {
		t.Fatalf("LoadSnapshot() failed: %v", err)
	}
	if loaded.Stats.Errors != 42 {
		t.Errorf("Errors = %d, want 42", loaded.Stats.Errors)
	}

	saves, err := store.ListSaves()
	if err != nil {
		t.Fatalf("ListSaves() failed: %v", err)
	}
	if len(saves) != 1 {
		t.Errorf("Expected 1 save after overwrite, got %d", len(saves))
	}
}

func TestStoreListAndDeleteSaves(t *testing.T) {
	store := openTestStore(t)
	snap, _ := runningSnapshot(t)

	for _, slot := range []string{"a", "b", "c"} {
		if err := store.SaveSnapshot(slot, snap); err != nil {
			t.Fatalf("SaveSnapshot(%q) failed: %v", slot, err)
		}
	}

	saves, err := store.ListSaves()
	if err != nil {
		t.Fatalf("ListSaves() failed: %v", err)
	}
	if len(saves) != 3 {
		t.Fatalf("Expected 3 saves, got %d", len(saves))
	}
	for _, info := range saves {
		if info.State != "running" || info.Mode != "custom" {
			t.Errorf("save %q: state %q mode %q", info.Slot, info.State, info.Mode)
		}
	}

	if err := store.DeleteSave("b"); err != nil {
		t.Fatalf("DeleteSave() failed: %v", err)
	}
	if err := store.DeleteSave("missing"); err != nil {
		t.Errorf("DeleteSave() of missing slot failed: %v", err)
	}

	_, err = store.LoadSnapshot("b")
	if !errors.Is(err, ErrNoSave) {
		t.Errorf("LoadSnapshot() of deleted slot = %v, want ErrNoSave", err)
	}
	if !errors.Is(err, wall.ErrPersistence) {
		t.Error("missing slot error does not match ErrPersistence")
	}
}

func TestStoreSaveSnapshotEmptySlot(t *testing.T) {
	store := openTestStore(t)
	snap, _ := runningSnapshot(t)

	if err := store.SaveSnapshot("", snap); !errors.Is(err, wall.ErrPersistence) {
		t.Errorf("SaveSnapshot(\"\") = %v, want ErrPersistence", err)
	}
}

func TestStoreCorruptSnapshot(t *testing.T) {
	store := openTestStore(t)

	_, err := store.db.Exec(
		"INSERT INTO saves (slot, state, mode, level, data) VALUES (?, ?, ?, ?, ?)",
		"broken", "running", "custom", 0, "{not json",
	)
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	_, err = store.LoadSnapshot("broken")
	if !errors.Is(err, wall.ErrMalformedSnapshot) {
		t.Errorf("LoadSnapshot() = %v, want ErrMalformedSnapshot", err)
	}
}

func TestStoreLevelRecords(t *testing.T) {
	store := openTestStore(t)

	records := make([]wall.LevelRecord, wall.LevelCount)
	records[0] = wall.LevelRecord{Completed: true, Time: 12500 * time.Millisecond, Errors: 3}
	records[1] = wall.LevelRecord{Completed: true, Time: 40 * time.Second, Cheats: 2}

	if err := store.SaveLevelRecords("alice", records); err != nil {
		t.Fatalf("SaveLevelRecords() failed: %v", err)
	}
	store.SaveLevelRecords("bob", records[:1])

	loaded, err := store.LoadLevelRecords("alice")
	if err != nil {
		t.Fatalf("LoadLevelRecords() failed: %v", err)
	}
	if len(loaded) != wall.LevelCount {
		t.Fatalf("Expected %d records, got %d", wall.LevelCount, len(loaded))
	}
	if loaded[0] != records[0] || loaded[1] != records[1] {
		t.Errorf("loaded records %+v %+v, want %+v %+v", loaded[0], loaded[1], records[0], records[1])
	}
	if loaded[2].Completed {
		t.Error("level 3 should not be completed")
	}

	// Saving again replaces the previous set.
	if err := store.SaveLevelRecords("alice", make([]wall.LevelRecord, wall.LevelCount)); err != nil {
		t.Fatalf("SaveLevelRecords() reset failed: %v", err)
	}
	loaded, _ = store.LoadLevelRecords("alice")
	if loaded[0].Completed {
		t.Error("records were not replaced")
	}

	// Other users are unaffected.
	bob, _ := store.LoadLevelRecords("bob")
	if !bob[0].Completed {
		t.Error("bob's record was lost")
	}
}

func TestStoreLoadLevelRecordsUnknownUser(t *testing.T) {
	store := openTestStore(t)

	records, err := store.LoadLevelRecords("nobody")
	if err != nil {
		t.Fatalf("LoadLevelRecords() failed: %v", err)
	}
	for i, r := range records {
		if r.Completed {
			t.Errorf("level %d completed for unknown user", i+1)
		}
	}
}

func TestStoreResults(t *testing.T) {
	store := openTestStore(t)

	entries := []Result{
		{User: "a", Mode: wall.ModeCustom, Width: 20, Height: 20, Diffs: 5, Elapsed: 30 * time.Second},
		{User: "b", Mode: wall.ModeCustom, Width: 20, Height: 20, Diffs: 5, Elapsed: 10 * time.Second, Cheats: 1},
		{User: "c", Mode: wall.ModeCustom, Width: 20, Height: 20, Diffs: 5, Elapsed: 20 * time.Second},
		{User: "d", Mode: wall.ModeChallenge, Level: 1, Width: 20, Height: 20, Diffs: 5, Elapsed: 5 * time.Second},
	}
	for _, e := range entries {
		if _, err := store.SaveResult(e); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	custom, err := store.TopResults(wall.ModeCustom, 10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(custom) != 3 {
		t.Fatalf("Expected 3 custom results, got %d", len(custom))
	}
	// Clean rounds rank first, then by time.
	want := []string{"c", "a", "b"}
	for i, r := range custom {
		if r.User != want[i] {
			t.Errorf("rank %d = %q, want %q", i+1, r.User, want[i])
		}
	}
	if custom[0].Elapsed != 20*time.Second {
		t.Errorf("Elapsed = %v, want 20s", custom[0].Elapsed)
	}

	all, _ := store.TopResults("", 10)
	if len(all) != 4 {
		t.Errorf("Expected 4 results across modes, got %d", len(all))
	}

	limited, _ := store.TopResults("", 2)
	if len(limited) != 2 {
		t.Errorf("Expected 2 results with limit, got %d", len(limited))
	}

	if err := store.ClearResults(); err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}
	all, _ = store.TopResults("", 10)
	if len(all) != 0 {
		t.Errorf("Expected 0 results after clear, got %d", len(all))
	}
}

func TestResultFrom(t *testing.T) {
	r := ResultFrom("eve", wall.RoundResult{
		Mode: wall.ModeChallenge, Level: 3, Width: 60, Height: 60,
		Diffs: 5, Errors: 1, Cheats: 0, Elapsed: time.Minute,
	})
	if r.User != "eve" || r.Level != 3 || r.Elapsed != time.Minute || r.Mode != wall.ModeChallenge {
		t.Errorf("ResultFrom() = %+v", r)
	}
}
