package engine

// SpawnConfig controls the value distribution of spawned numeric tiles.
type SpawnConfig struct {
	// HighProb is the probability of spawning base^2 instead of base^1.
	HighProb float64 `json:"high_prob" yaml:"high_prob"`
}

// DefaultSpawnConfig returns the classic 90/10 split.
func DefaultSpawnConfig() SpawnConfig {
	return SpawnConfig{HighProb: 0.10}
}

// BlockerCurve describes how the per-move blocker spawn chance grows
// with the move count. Chance = min(Cap, Base + PerMove*moveCount).
type BlockerCurve struct {
	Base    float64 `json:"base" yaml:"base"`
	PerMove float64 `json:"per_move" yaml:"per_move"`
	Cap     float64 `json:"cap" yaml:"cap"`
}

// DefaultBlockerCurve returns a curve that starts near zero and tops
// out at a 10% chance per move.
func DefaultBlockerCurve() BlockerCurve {
	return BlockerCurve{Base: 0.01, PerMove: 0.0005, Cap: 0.10}
}

// Chance returns the blocker spawn probability at the given move count.
func (c BlockerCurve) Chance(moveCount uint32) float64 {
	chance := c.Base + c.PerMove*float64(moveCount)
	if chance > c.Cap {
		chance = c.Cap
	}
	if chance < 0 {
		chance = 0
	}
	return chance
}

// spawnNumeric places one numeric tile in a uniformly random empty
// cell: base^1 with probability 1-HighProb, base^2 otherwise. It is a
// no-op on a full grid.
func spawnNumeric(g *Grid, base int, cfg SpawnConfig, r *rng, ids *idAllocator) (Event, bool) {
	empty := g.EmptyCells()
	if len(empty) == 0 {
		return nil, false
	}

	at := empty[r.IntN(len(empty))]
	value := base
	if r.Float64() < cfg.HighProb {
		value = base * base
	}

	cell := Numeric(value, ids.alloc())
	g.Set(at.Row, at.Col, cell)
	return TileSpawnedEvent{At: at, Cell: cell}, true
}

// spawnBlocker rolls the blocker curve and, on success, places one
// minimum-strength blocker in a random empty cell. It requires at
// least two empty cells so the board is never bricked by a spawn.
func spawnBlocker(g *Grid, curve BlockerCurve, moveCount uint32, r *rng, ids *idAllocator) (Event, bool) {
	empty := g.EmptyCells()
	if len(empty) < 2 {
		return nil, false
	}
	if r.Float64() >= curve.Chance(moveCount) {
		return nil, false
	}

	at := empty[r.IntN(len(empty))]
	cell := Blocker(1, ids.alloc())
	g.Set(at.Row, at.Col, cell)
	return TileSpawnedEvent{At: at, Cell: cell}, true
}
