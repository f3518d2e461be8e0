// Package rng provides the randomness abstraction for the simulation core.
// Components that need randomness (wander-goal sampling) take a Source so
// tests can inject deterministic values.
package rng

import "math/rand/v2"

// Source is the randomness provider for the simulation.
//
// Implementations MUST be safe for use from the single driver goroutine;
// they are never called concurrently.
type Source interface {
	// Float64 returns a random float64 in [0, 1).
	Float64() float64

	// IntN returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	IntN(n int) int
}

type seeded struct {
	r *rand.Rand
}

// New returns a Source seeded deterministically from seed.
//
// Postcondition: Two Sources built from the same seed produce the same
// sequence of values.
func New(seed uint64) Source {
	return &seeded{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *seeded) Float64() float64 { return s.r.Float64() }

func (s *seeded) IntN(n int) int { return s.r.IntN(n) }
