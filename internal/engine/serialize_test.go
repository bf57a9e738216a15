package engine

import "testing"

// buildBusySession drives a session into a state that exercises every
// serialized field: score, move history, active and pending powerups, a
// locked cell, and the undo buffer.
func buildBusySession(t *testing.T) State {
	t.Helper()
	s := newTestSession(t, TimeAttack(180))
	s.Grid = gridFromValues([][]int{
		{2, 2, 0, 0},
		{4, 0, 0, -1},
		{0, 0, 8, 0},
		{0, 0, 0, 0},
	})

	s = unlock(t, s, PowerupMergeBoost)
	s = unlock(t, s, PowerupLockTile)

	s, _, err := s.ActivatePowerup(PowerupMergeBoost)
	if err != nil {
		t.Fatal(err)
	}
	s, _, err = s.ActivatePowerup(PowerupLockTile)
	if err != nil {
		t.Fatal(err)
	}
	s, _, err = s.ApplyTarget(CellTarget(2, 2))
	if err != nil {
		t.Fatal(err)
	}

	s, _, err = s.Move(DirLeft)
	if err != nil {
		t.Fatal(err)
	}
	s, _, err = s.Tick(5)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	s := buildBusySession(t)

	data, err := Encode(s)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	again, err := Encode(decoded)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(again) {
		t.Error("re-encoding a decoded state must be byte-identical")
	}
}

func TestDecodedSessionKeepsPlaying(t *testing.T) {
	s := buildBusySession(t)

	data, err := Encode(s)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}

	// The restored session replays identically to the original.
	a, _, err := s.Move(DirUp)
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := decoded.Move(DirUp)
	if err != nil {
		t.Fatal(err)
	}
	encodedA, _ := Encode(a)
	encodedB, _ := Encode(b)
	if string(encodedA) != string(encodedB) {
		t.Error("decoded session diverged from the original after one move")
	}
}

func TestRoundTripPreservesUndo(t *testing.T) {
	s := newTestSession(t, Classic())
	s.Grid = gridFromValues([][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	s = unlock(t, s, PowerupUndo)
	s, _, err := s.Move(DirLeft)
	if err != nil {
		t.Fatal(err)
	}

	data, err := Encode(s)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}

	restored, _, err := decoded.ActivatePowerup(PowerupUndo)
	if err != nil {
		t.Fatalf("undo after restore: %v", err)
	}
	if restored.Score != 0 {
		t.Errorf("undo after restore left score %d", restored.Score)
	}
}

func TestDecodeRejectsMalformedInput(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"not json", "{"},
		{"empty object", "{}"},
		{"cell count mismatch", `{"config":{"grid_size":4,"base":2,"win_exponent":11,"spawn":{"high_prob":0.1},"blockers":{"base":0,"per_move":0,"cap":0},"warning_seconds":10},"mode":{"kind":0},"grid":{"size":4,"cells":[{}]},"score":0,"best_score":0,"move_count":0,"id_counter":0,"rng_state":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Decode([]byte(tc.data)); err == nil {
				t.Error("expected a decode error")
			}
		})
	}
}
