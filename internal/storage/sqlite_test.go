package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
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

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("drift", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	// Different game
	if _, err := store.SaveScore("drift_free", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("drift", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	freeScores, err := store.TopScores("drift_free", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(freeScores) != 1 {
		t.Errorf("Expected 1 drift_free score, got %d", len(freeScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	// Save 5 scores
	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100)
	}

	// Request only top 3
	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	// No scores yet
	high, err := store.HighScore("drift")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("drift", 100)
	store.SaveScore("drift", 300)
	store.SaveScore("drift", 200)

	high, err = store.HighScore("drift")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("drift", 100)
	store.SaveRun(Run{GameID: "drift", Score: 200, Cause: "collision"})
	store.SaveScore("drift_free", 300)

	// Clear only drift scores
	if err := store.ClearScores("drift"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("drift", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 drift scores after clear, got %d", len(scores))
	}
	runs, _ := store.TopRuns("drift", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 drift runs after clear, got %d", len(runs))
	}

	freeScores, _ := store.TopScores("drift_free", 10)
	if len(freeScores) != 1 {
		t.Errorf("drift_free scores should not be affected by clearing drift")
	}
}

func TestStoreSaveRun(t *testing.T) {
	store := openTestStore(t)

	run := Run{
		GameID:     "drift",
		Player:     "pilot",
		Difficulty: "hard",
		Seed:       42,
		Score:      137,
		Distance:   13.7,
		Duration:   21.5,
		Ticks:      1290,
		Hits:       3,
		Thrusts:    17,
		Cause:      "collision",
	}

	id, err := store.SaveRun(run)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("SaveRun() returned non-UUID id %q", id)
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}

	run.ID = id
	run.CreatedAt = got.CreatedAt
	if got != run {
		t.Errorf("RunByID() = %+v, expected %+v", got, run)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be populated")
	}

	// The run also lands on the leaderboard
	high, _ := store.HighScore("drift")
	if high != 137 {
		t.Errorf("Expected high score of 137 after SaveRun, got %d", high)
	}
}

func TestStoreSaveRunKeepsProvidedID(t *testing.T) {
	store := openTestStore(t)

	want := uuid.NewString()
	id, err := store.SaveRun(Run{ID: want, GameID: "drift"})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id != want {
		t.Errorf("SaveRun() id = %q, expected %q", id, want)
	}

	if _, err := store.SaveRun(Run{ID: "not-a-uuid", GameID: "drift"}); err == nil {
		t.Error("SaveRun() should reject malformed IDs")
	}
}

func TestStoreRunByIDMissing(t *testing.T) {
	store := openTestStore(t)

	_, err := store.RunByID(uuid.NewString())
	if !errors.Is(err, ErrRunNotFound) {
		t.Errorf("RunByID() error = %v, expected ErrRunNotFound", err)
	}
}

func TestStoreTopAndRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{30, 90, 60} {
		if _, err := store.SaveRun(Run{GameID: "drift", Score: score}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	store.SaveRun(Run{GameID: "drift_free", Score: 500})

	top, err := store.TopRuns("drift", 2)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 2 || top[0].Score != 90 || top[1].Score != 60 {
		t.Errorf("TopRuns() = %v, expected scores 90, 60", top)
	}

	recent, err := store.RecentRuns("drift", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 recent drift runs, got %d", len(recent))
	}
	// Same-second inserts fall back to insertion order, newest first
	if recent[0].Score != 60 || recent[2].Score != 30 {
		t.Errorf("RecentRuns() order = %d, %d, %d", recent[0].Score, recent[1].Score, recent[2].Score)
	}

	all, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("Expected 4 runs across games, got %d", len(all))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{GameID: "drift", Score: 100, Distance: 10, Duration: 20})
	store.SaveRun(Run{GameID: "drift", Score: 300, Distance: 30, Duration: 40})
	store.SaveRun(Run{GameID: "drift_free", Score: 50, Distance: 5, Duration: 8})

	stats, err := store.GetGameStats("drift")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 {
		t.Errorf("GetGameStats() = %+v", stats)
	}
	if stats.AvgScore != 200 || stats.BestDistance != 30 || stats.TotalTime != 60 {
		t.Errorf("GetGameStats() aggregates = %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	empty, err := store.GetGameStats("unknown")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["drift_free"].HighScore != 50 {
		t.Errorf("GetAllGamesStats() = %v", all)
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

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
