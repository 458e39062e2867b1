package engine

import "math/rand"

// CountingSource wraps a math/rand.Source64 and counts the Uint64 draws
// that flow through it, so a caller can include "how many RNG draws this
// game consumed" in a replay token (spec §4.9: divergent runs under the
// same seed should hash differently, not silently match).
type CountingSource struct {
	rand.Source64
	Draws uint64
}

// NewCountingSource wraps seed in a counting source usable by rand.New.
func NewCountingSource(seed int64) *CountingSource {
	return &CountingSource{Source64: rand.NewSource(seed).(rand.Source64)}
}

func (c *CountingSource) Uint64() uint64 {
	c.Draws++
	return c.Source64.Uint64()
}

func (c *CountingSource) Int63() int64 {
	return int64(c.Uint64() >> 1)
}
