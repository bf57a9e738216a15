package engine

import (
	"encoding/json"
	"fmt"
)

// Encode serializes a session snapshot. Struct fields marshal in
// declaration order and the powerup sets are kept sorted, so encoding
// the same state twice yields byte-identical output.
func Encode(s State) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("engine: cannot encode state: %w", err)
	}
	return data, nil
}

// Decode restores a session snapshot, including the RNG state, so a
// resumed session continues exactly where it left off.
func Decode(data []byte) (State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("engine: cannot decode state: %w", err)
	}
	if s.Grid.Size <= 0 || len(s.Grid.Cells) != s.Grid.Size*s.Grid.Size {
		return State{}, fmt.Errorf("engine: cannot decode state: malformed grid")
	}
	s.Config = s.Config.normalized()
	return s, nil
}
