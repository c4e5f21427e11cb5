// Package rng provides the seeded pseudo-random stream used for decorative
// noise and palette picks.
package rng

// Splitmix32 is a 32-bit splitmix generator. The same seed always yields the
// same sequence. It is not safe for concurrent use; each render owns one.
type Splitmix32 struct {
	state uint32
}

// New returns a generator seeded with seed.
func New(seed int32) *Splitmix32 {
	return &Splitmix32{state: uint32(seed)}
}

// Float64 advances the stream and returns a value in [0, 1).
func (s *Splitmix32) Float64() float64 {
	s.state += 0x9e3779b9
	t := s.state ^ (s.state >> 16)
	t *= 0x21f0aaad
	t ^= t >> 15
	t *= 0x735a2d97
	t ^= t >> 15
	return float64(t) / 4294967296
}

// Intn returns floor(Float64()*n). It panics if n <= 0.
func (s *Splitmix32) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with non-positive n")
	}
	return int(s.Float64() * float64(n))
}
