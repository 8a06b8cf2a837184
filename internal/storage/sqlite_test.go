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
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRun(Run{GameID: "timerunner", Score: 42, Cause: "fire"}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("timerunner")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 42 {
		t.Errorf("Expected high score 42 after reopen, got %d", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("timerunner", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	// Different game
	if _, err := store.SaveScore("other", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("timerunner", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
		if scores[i].GameID != "timerunner" {
			t.Errorf("scores[%d].GameID = %q", i, scores[i].GameID)
		}
	}

	other, err := store.TopScores("other", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(other) != 1 {
		t.Errorf("Expected 1 score for other game, got %d", len(other))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100)
	}

	tests := []struct {
		limit int
		want  int
	}{
		{limit: 3, want: 3},
		{limit: 0, want: 5}, // default limit is 10
		{limit: 20, want: 5},
	}
	for _, tt := range tests {
		scores, err := store.TopScores("test", tt.limit)
		if err != nil {
			t.Fatalf("TopScores(%d) failed: %v", tt.limit, err)
		}
		if len(scores) != tt.want {
			t.Errorf("TopScores(%d) returned %d scores, want %d", tt.limit, len(scores), tt.want)
		}
		if scores[0].Score != 500 {
			t.Errorf("TopScores(%d) first score = %d, want 500", tt.limit, scores[0].Score)
		}
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("timerunner")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("timerunner", 100)
	store.SaveScore("timerunner", 300)
	store.SaveScore("timerunner", 200)

	high, err = store.HighScore("timerunner")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{GameID: "timerunner", Score: 100, Cause: "fire"})
	store.SaveScore("timerunner", 200)
	store.SaveScore("other", 300)

	if err := store.ClearScores("timerunner"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("timerunner", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	runs, _ := store.RecentRuns("timerunner", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}

	other, _ := store.TopScores("other", 10)
	if len(other) != 1 {
		t.Errorf("Other game should not be affected by clearing timerunner")
	}
}

func TestStoreSaveRun(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{GameID: "timerunner", Score: 120, Distance: 600, Ticks: 130, Cause: "fire"},
		{GameID: "timerunner", Score: 40, Distance: 200, Ticks: 90, Cause: "fall"},
		{GameID: "timerunner", Score: 310, Distance: 1550, Ticks: 400, Cause: "fire"},
	}
	for _, r := range runs {
		id, err := store.SaveRun(r)
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
		if id <= 0 {
			t.Errorf("SaveRun() returned id %d", id)
		}
	}

	recent, err := store.RecentRuns("timerunner", 2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 recent runs, got %d", len(recent))
	}

	// Newest first
	if recent[0].Score != 310 || recent[0].Distance != 1550 || recent[0].Ticks != 400 || recent[0].Cause != "fire" {
		t.Errorf("Unexpected newest run: %+v", recent[0])
	}
	if recent[1].Cause != "fall" {
		t.Errorf("Expected second run to end by fall, got %q", recent[1].Cause)
	}
	if recent[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not parsed")
	}

	// Runs also land in the score table
	high, _ := store.HighScore("timerunner")
	if high != 310 {
		t.Errorf("Expected high score 310 from runs, got %d", high)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("timerunner")
	if err != nil {
		t.Fatalf("GetGameStats() on empty db failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.HighScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Unexpected stats for empty db: %+v", empty)
	}

	store.SaveRun(Run{GameID: "timerunner", Score: 100, Distance: 500, Ticks: 100, Cause: "fire"})
	store.SaveRun(Run{GameID: "timerunner", Score: 300, Distance: 1500, Ticks: 300, Cause: "fire"})
	store.SaveRun(Run{GameID: "timerunner", Score: 200, Distance: 1000, Ticks: 250, Cause: "fall"})

	stats, err := store.GetGameStats("timerunner")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}

	if stats.GamesCount != 3 {
		t.Errorf("GamesCount = %d, want 3", stats.GamesCount)
	}
	if stats.HighScore != 300 {
		t.Errorf("HighScore = %d, want 300", stats.HighScore)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, want 200", stats.AvgScore)
	}
	if stats.MaxDistance != 1500 {
		t.Errorf("MaxDistance = %d, want 1500", stats.MaxDistance)
	}
	if stats.TotalTicks != 650 {
		t.Errorf("TotalTicks = %d, want 650", stats.TotalTicks)
	}
	if stats.Causes["fire"] != 2 || stats.Causes["fall"] != 1 {
		t.Errorf("Causes = %v", stats.Causes)
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
