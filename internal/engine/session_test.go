package engine

import (
	"bytes"
	"errors"
	"testing"
)

func newTestSession(t *testing.T, mode Mode) State {
	t.Helper()
	s, events := New(DefaultConfig(), mode, 12345)
	if len(events) != 2 {
		t.Fatalf("expected 2 opening spawns, got %d events", len(events))
	}
	return s
}

func hasEvent[T Event](events []Event) bool {
	for _, ev := range events {
		if _, ok := ev.(T); ok {
			return true
		}
	}
	return false
}

func TestNewIsDeterministic(t *testing.T) {
	a, _ := New(DefaultConfig(), Classic(), 42)
	b, _ := New(DefaultConfig(), Classic(), 42)

	if !a.Grid.Equal(b.Grid) {
		t.Error("same seed should produce the same opening board")
	}
	if a.IDCounter != b.IDCounter || a.RNGState != b.RNGState {
		t.Error("same seed should produce identical counters")
	}
}

func TestNoOpMoveLeavesStateByteIdentical(t *testing.T) {
	s := newTestSession(t, Classic())
	s.Grid = gridFromValues([][]int{
		{4, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	before, err := Encode(s)
	if err != nil {
		t.Fatal(err)
	}

	after, events, err := s.Move(DirLeft)
	if err != nil {
		t.Fatal(err)
	}

	resolved, ok := events[0].(MoveResolvedEvent)
	if !ok || resolved.Changed {
		t.Fatalf("expected changed=false move event, got %+v", events[0])
	}

	encoded, err := Encode(after)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, encoded) {
		t.Error("no-op move must leave the state byte-identical, including idCounter")
	}
}

func TestChangedMoveScoresAndSpawns(t *testing.T) {
	s := newTestSession(t, Classic())
	s.Grid = gridFromValues([][]int{
		{2, 2, 4, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	after, events, err := s.Move(DirLeft)
	if err != nil {
		t.Fatal(err)
	}

	resolved := events[0].(MoveResolvedEvent)
	if !resolved.Changed || resolved.ScoreDelta != 4 {
		t.Errorf("expected changed move with delta 4, got %+v", resolved)
	}
	if after.Score != 4 || after.BestScore != 4 {
		t.Errorf("score = %d best = %d, want 4/4", after.Score, after.BestScore)
	}
	if after.MoveCount != 1 {
		t.Errorf("moveCount = %d, want 1", after.MoveCount)
	}
	if !hasEvent[TileSpawnedEvent](events) {
		t.Error("a changed move should spawn a tile")
	}
	if after.Grid.At(0, 0).Value != 4 || after.Grid.At(0, 1).Value != 4 {
		t.Errorf("row after move = %v", valuesFromGrid(after.Grid)[0])
	}
}

func TestScoreIsMonotonic(t *testing.T) {
	s := newTestSession(t, Classic())
	prev := s.Score
	for i := 0; i < 50; i++ {
		for _, dir := range Directions {
			next, _, err := s.Move(dir)
			if err != nil {
				t.Fatal(err)
			}
			if next.Score < prev {
				t.Fatalf("score decreased: %d -> %d", prev, next.Score)
			}
			s, prev = next, next.Score
			if s.GameOver {
				return
			}
		}
	}
}

func TestWinFiresOnce(t *testing.T) {
	s := newTestSession(t, Classic())
	s.Grid = gridFromValues([][]int{
		{1024, 1024, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	after, events, err := s.Move(DirLeft)
	if err != nil {
		t.Fatal(err)
	}
	if !after.Won {
		t.Fatal("merging to 2048 should win")
	}
	if !hasEvent[WinEvent](events) {
		t.Fatal("expected a win event")
	}

	// Continue and build a higher tile: no second win event.
	after, err = after.ContinueAfterWin()
	if err != nil {
		t.Fatal(err)
	}
	after.Grid = gridFromValues([][]int{
		{2048, 2048, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	_, events, err = after.Move(DirLeft)
	if err != nil {
		t.Fatal(err)
	}
	if hasEvent[WinEvent](events) {
		t.Error("win event must not fire twice in one session")
	}
}

func TestContinueAfterWinRequiresWin(t *testing.T) {
	s := newTestSession(t, Classic())
	if _, err := s.ContinueAfterWin(); !errors.Is(err, ErrNotWon) {
		t.Errorf("expected ErrNotWon, got %v", err)
	}
}

func TestGameOverDetection(t *testing.T) {
	s := newTestSession(t, Classic())

	// Full grid, no merge in any direction.
	s.Grid = gridFromValues([][]int{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 4096, 8192},
		{16384, 32768, 65536, 131072},
	})
	if !s.isStuck() {
		t.Error("full grid with no merges should be stuck")
	}

	// Full grid with one mergeable pair.
	s.Grid.Set(0, 1, Numeric(2, 99))
	if s.isStuck() {
		t.Error("full grid with a mergeable pair is not stuck")
	}
}

func TestMoveRejectedAfterGameOver(t *testing.T) {
	s := newTestSession(t, Classic())
	s.GameOver = true

	if _, _, err := s.Move(DirLeft); !errors.Is(err, ErrGameOver) {
		t.Errorf("expected ErrGameOver, got %v", err)
	}
	if _, _, err := s.Tick(1); !errors.Is(err, ErrGameOver) {
		t.Errorf("tick after game over: expected ErrGameOver, got %v", err)
	}
}

func TestPauseBlocksMoveAndTick(t *testing.T) {
	s := newTestSession(t, TimeAttack(180))
	s = s.Pause()
	s = s.Pause() // idempotent

	if _, _, err := s.Move(DirLeft); !errors.Is(err, ErrPaused) {
		t.Errorf("expected ErrPaused, got %v", err)
	}

	ticked, events, err := s.Tick(5)
	if err != nil {
		t.Fatal(err)
	}
	if ticked.Mode.ElapsedSeconds != 0 || len(events) != 0 {
		t.Error("tick while paused must have no effect")
	}

	s = s.Resume()
	ticked, _, err = s.Tick(5)
	if err != nil {
		t.Fatal(err)
	}
	if ticked.Mode.ElapsedSeconds != 5 {
		t.Errorf("elapsed = %v, want 5", ticked.Mode.ElapsedSeconds)
	}
}

func TestTimeAttackExpiry(t *testing.T) {
	s := newTestSession(t, TimeAttack(180))

	after, events, err := s.Tick(181)
	if err != nil {
		t.Fatal(err)
	}
	if !after.GameOver {
		t.Error("tick past the limit must force game over regardless of grid state")
	}
	if !hasEvent[TimeUpEvent](events) {
		t.Error("expected a time-up event")
	}
	if !hasEvent[GameCompletedEvent](events) {
		t.Error("expected a game-completed event")
	}
}

func TestTimeAttackWarning(t *testing.T) {
	s := newTestSession(t, TimeAttack(180))

	s, events, err := s.Tick(169)
	if err != nil {
		t.Fatal(err)
	}
	if hasEvent[TimeWarningEvent](events) {
		t.Error("warning fired too early")
	}

	s, events, err = s.Tick(2)
	if err != nil {
		t.Fatal(err)
	}
	if !hasEvent[TimeWarningEvent](events) {
		t.Error("expected a warning when remaining time crossed the threshold")
	}

	// Crossing again must not re-fire.
	_, events, err = s.Tick(1)
	if err != nil {
		t.Fatal(err)
	}
	if hasEvent[TimeWarningEvent](events) {
		t.Error("warning must fire at most once")
	}
}

func TestTickIgnoredInClassic(t *testing.T) {
	s := newTestSession(t, Classic())
	after, events, err := s.Tick(30)
	if err != nil {
		t.Fatal(err)
	}
	if after.GameOver || len(events) != 0 {
		t.Error("classic mode has no clock to expire")
	}
	if after.DurationSeconds != 30 {
		t.Errorf("duration = %v, want 30", after.DurationSeconds)
	}
}

func TestScenicPlaysLikeClassic(t *testing.T) {
	s := newTestSession(t, Scenic(3))
	s.Grid = gridFromValues([][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	after, _, err := s.Move(DirLeft)
	if err != nil {
		t.Fatal(err)
	}
	if after.Score != 4 {
		t.Errorf("scenic score = %d, want 4", after.Score)
	}
	if after.Mode.BackgroundIndex != 3 {
		t.Error("scenic background index must survive moves")
	}
}

func TestEndEmitsCompletionOnce(t *testing.T) {
	s := newTestSession(t, Classic())
	s.Won = true

	after, events, err := s.End()
	if err != nil {
		t.Fatal(err)
	}
	if !after.GameOver {
		t.Error("End must set game over")
	}
	if !hasEvent[GameCompletedEvent](events) {
		t.Error("End must emit the completion event")
	}

	if _, _, err := after.End(); !errors.Is(err, ErrGameOver) {
		t.Errorf("second End: expected ErrGameOver, got %v", err)
	}
}
