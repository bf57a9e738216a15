package engine

// rng is a deterministic pseudo-random number generator (an LCG). The
// single word of state lives in the session snapshot, so a restored
// session continues the exact spawn sequence it was saved with.
type rng struct {
	state uint64
}

// newRNG seeds a generator. A zero seed is remapped to 1 so the LCG
// never degenerates.
func newRNG(seed int64) *rng {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &rng{state: s}
}

// restoreRNG resumes a generator from serialized state.
func restoreRNG(state uint64) *rng {
	if state == 0 {
		state = 1
	}
	return &rng{state: state}
}

// Next generates the next random uint64.
func (r *rng) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// IntN returns a random int in [0, n).
func (r *rng) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n)) //#nosec G115 -- n is always positive
}

// Float64 returns a random float64 in [0, 1).
func (r *rng) Float64() float64 {
	return float64(r.Next()) / float64(1<<64)
}
