// Package synthetic generates deterministic sample datasets (trades, fee
// records, funding payments) for demos, seeding, and analytics tests. The
// same seed always produces the same dataset.
package synthetic

// Next advances the Park-Miller LCG one step: state' = state*16807 mod
// 2147483647. The returned value is uniform in [0, 1). The multiplication
// stays below 2^53, so the sequence is exact in any width >= 53 bits.
func Next(state int64) (float64, int64) {
	state = (state * 16807) % 2147483647
	return float64(state-1) / 2147483646, state
}

// Source is a convenience wrapper carrying LCG state.
type Source struct {
	state int64
}

// NewSource seeds a Source. Seed 0 is a fixed point of the LCG and yields a
// degenerate stream; callers use small positive seeds.
func NewSource(seed int64) *Source {
	return &Source{state: seed}
}

// Float returns the next value in [0, 1) and advances the state.
func (s *Source) Float() float64 {
	v, next := Next(s.state)
	s.state = next
	return v
}
