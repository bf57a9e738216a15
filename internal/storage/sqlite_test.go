package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath)
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

	games := []GameRecord{
		{Mode: "classic", Difficulty: "normal", Score: 100, HighestTile: 128, Moves: 40},
		{Mode: "classic", Difficulty: "normal", Score: 50, HighestTile: 64, Moves: 25},
		{Mode: "classic", Difficulty: "hard", Score: 200, Won: true, HighestTile: 2048, Moves: 900},
		{Mode: "time_attack", Difficulty: "normal", Score: 500, HighestTile: 512, Moves: 120},
	}
	for _, g := range games {
		if _, err := store.SaveGame(g); err != nil {
			t.Fatalf("SaveGame() failed: %v", err)
		}
	}

	classic, err := store.TopGames("classic", 10)
	if err != nil {
		t.Fatalf("TopGames() failed: %v", err)
	}
	if len(classic) != 3 {
		t.Fatalf("Expected 3 classic games, got %d", len(classic))
	}

	// Should be sorted descending
	if classic[0].Score != 200 || classic[1].Score != 100 || classic[2].Score != 50 {
		t.Errorf("Games not in expected order: %v", classic)
	}
	if !classic[0].Won || classic[0].HighestTile != 2048 {
		t.Errorf("Winning game not round-tripped: %+v", classic[0])
	}

	timed, err := store.TopGames("time_attack", 10)
	if err != nil {
		t.Fatalf("TopGames() failed: %v", err)
	}
	if len(timed) != 1 {
		t.Errorf("Expected 1 time attack game, got %d", len(timed))
	}

	all, err := store.TopGames("", 10)
	if err != nil {
		t.Fatalf("TopGames(all) failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("Expected 4 games across modes, got %d", len(all))
	}
}

func TestStoreTopGamesLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveGame(GameRecord{Mode: "classic", Score: uint64((i + 1) * 100)})
	}

	games, err := store.TopGames("classic", 3)
	if err != nil {
		t.Fatalf("TopGames() failed: %v", err)
	}
	if len(games) != 3 {
		t.Fatalf("Expected 3 games with limit, got %d", len(games))
	}
	if games[0].Score != 500 || games[1].Score != 400 || games[2].Score != 300 {
		t.Errorf("Games not in expected order: %v", games)
	}
}

func TestStoreBestScore(t *testing.T) {
	store := openTestStore(t)

	// No games yet
	best, err := store.BestScore("classic")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected best score of 0 for empty mode, got %d", best)
	}

	store.SaveGame(GameRecord{Mode: "classic", Score: 100})
	store.SaveGame(GameRecord{Mode: "classic", Score: 300})
	store.SaveGame(GameRecord{Mode: "classic", Score: 200})

	best, err = store.BestScore("classic")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 300 {
		t.Errorf("Expected best score of 300, got %d", best)
	}
}

func TestStoreClearGames(t *testing.T) {
	store := openTestStore(t)

	store.SaveGame(GameRecord{Mode: "classic", Score: 100})
	store.SaveGame(GameRecord{Mode: "classic", Score: 200})
	store.SaveGame(GameRecord{Mode: "scenic", Score: 300})

	if err := store.ClearGames("classic"); err != nil {
		t.Fatalf("ClearGames() failed: %v", err)
	}

	classic, _ := store.TopGames("classic", 10)
	if len(classic) != 0 {
		t.Errorf("Expected 0 classic games after clear, got %d", len(classic))
	}

	scenic, _ := store.TopGames("scenic", 10)
	if len(scenic) != 1 {
		t.Errorf("Scenic games should not be affected by clearing classic")
	}
}

func TestStoreSessions(t *testing.T) {
	store := openTestStore(t)

	snapshot := []byte(`{"score":120}`)
	err := store.SaveSession(SessionRecord{
		Name:     "autosave",
		Mode:     "classic",
		Score:    120,
		Snapshot: snapshot,
	})
	if err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	rec, err := store.LoadSession("autosave")
	if err != nil {
		t.Fatalf("LoadSession() failed: %v", err)
	}
	if rec == nil {
		t.Fatal("Expected the saved session back")
	}
	if string(rec.Snapshot) != string(snapshot) || rec.Score != 120 {
		t.Errorf("Session not round-tripped: %+v", rec)
	}

	// Saving under the same name replaces the snapshot
	err = store.SaveSession(SessionRecord{
		Name:     "autosave",
		Mode:     "classic",
		Score:    450,
		Snapshot: []byte(`{"score":450}`),
	})
	if err != nil {
		t.Fatalf("SaveSession() replace failed: %v", err)
	}
	rec, err = store.LoadSession("autosave")
	if err != nil {
		t.Fatalf("LoadSession() failed: %v", err)
	}
	if rec.Score != 450 {
		t.Errorf("Expected the replacing snapshot, got score %d", rec.Score)
	}

	sessions, err := store.ListSessions()
	if err != nil {
		t.Fatalf("ListSessions() failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Errorf("Expected 1 session after replace, got %d", len(sessions))
	}

	if err := store.DeleteSession("autosave"); err != nil {
		t.Fatalf("DeleteSession() failed: %v", err)
	}
	rec, err = store.LoadSession("autosave")
	if err != nil {
		t.Fatalf("LoadSession() after delete failed: %v", err)
	}
	if rec != nil {
		t.Error("Expected nil for a deleted session")
	}
}

func TestStoreModeStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveGame(GameRecord{Mode: "classic", Score: 100})
	store.SaveGame(GameRecord{Mode: "classic", Score: 300, Won: true})
	store.SaveGame(GameRecord{Mode: "scenic", Score: 50})

	stats, err := store.GetModeStats("classic")
	if err != nil {
		t.Fatalf("GetModeStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.Wins != 1 || stats.BestScore != 300 {
		t.Errorf("Unexpected classic stats: %+v", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("Expected avg score 200, got %v", stats.AvgScore)
	}

	all, err := store.GetAllModeStats()
	if err != nil {
		t.Fatalf("GetAllModeStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected stats for 2 modes, got %d", len(all))
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	// Verify nested parent directories are created
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
