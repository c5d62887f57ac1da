package storage

import (
	"os"
	"path/filepath"
	"testing"
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

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	entries := []struct {
		name  string
		email string
		score int
	}{
		{"ana", "ana@example.com", 100},
		{"bruno", "bruno@example.com", 50},
		{"carla", "", 200},
	}
	for _, e := range entries {
		if _, err := store.SaveEntry(e.name, e.email, e.score); err != nil {
			t.Fatalf("SaveEntry() failed: %v", err)
		}
	}

	top, err := store.TopEntries(10)
	if err != nil {
		t.Fatalf("TopEntries() failed: %v", err)
	}

	if len(top) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(top))
	}

	// Should be sorted descending
	expected := []string{"carla", "ana", "bruno"}
	for i, name := range expected {
		if top[i].Name != name {
			t.Errorf("entry %d: expected %s, got %s", i, name, top[i].Name)
		}
	}
	if top[1].Email != "ana@example.com" {
		t.Errorf("Email = %q, expected ana@example.com", top[1].Email)
	}
	if top[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be populated")
	}
}

func TestStoreTopEntriesLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 30; i++ {
		if _, err := store.SaveEntry("p", "", i*10); err != nil {
			t.Fatalf("SaveEntry() failed: %v", err)
		}
	}

	top, err := store.TopEntries(5)
	if err != nil {
		t.Fatalf("TopEntries() failed: %v", err)
	}
	if len(top) != 5 {
		t.Errorf("Expected 5 entries, got %d", len(top))
	}
	if top[0].Score != 290 {
		t.Errorf("Expected top score 290, got %d", top[0].Score)
	}

	// Non-positive limit falls back to the default page
	top, err = store.TopEntries(0)
	if err != nil {
		t.Fatalf("TopEntries(0) failed: %v", err)
	}
	if len(top) != 20 {
		t.Errorf("Expected default 20 entries, got %d", len(top))
	}
}

func TestStoreTiesKeepSubmissionOrder(t *testing.T) {
	store := openTestStore(t)

	store.SaveEntry("first", "", 10)
	store.SaveEntry("second", "", 10)

	top, err := store.TopEntries(2)
	if err != nil {
		t.Fatalf("TopEntries() failed: %v", err)
	}
	if top[0].Name != "first" || top[1].Name != "second" {
		t.Errorf("tie order = %s, %s; expected first, second", top[0].Name, top[1].Name)
	}
}

func TestStoreRejectsNegativeScore(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveEntry("cheater", "", -5); err == nil {
		t.Error("expected error for negative score")
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty store, got %d", high)
	}

	store.SaveEntry("a", "", 50)
	store.SaveEntry("b", "", 150)
	store.SaveEntry("c", "", 75)

	high, err = store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 150 {
		t.Errorf("Expected high score 150, got %d", high)
	}
}

func TestStoreClearEntries(t *testing.T) {
	store := openTestStore(t)

	store.SaveEntry("a", "", 100)
	store.SaveEntry("b", "", 200)

	if err := store.ClearEntries(); err != nil {
		t.Fatalf("ClearEntries() failed: %v", err)
	}

	top, err := store.TopEntries(10)
	if err != nil {
		t.Fatalf("TopEntries() failed: %v", err)
	}
	if len(top) != 0 {
		t.Errorf("Expected 0 entries after clear, got %d", len(top))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetStats()
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.Entries != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("unexpected stats for empty store: %+v", stats)
	}

	store.SaveEntry("a", "", 10)
	store.SaveEntry("a", "", 30)
	store.SaveEntry("b", "", 20)

	stats, err = store.GetStats()
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.Entries != 3 || stats.Players != 2 || stats.HighScore != 30 || stats.AvgScore != 20 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/scores/test.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, "scores", "test.db")); err != nil {
		t.Errorf("expected database under HOME: %v", err)
	}
}
