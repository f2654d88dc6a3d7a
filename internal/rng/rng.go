// Package rng provides the random number source used by the RND instruction.
package rng

import (
	"math/rand/v2"

	"github.com/retroenv/chip16emu/internal/cpu"
)

var _ cpu.RNG = (*RNG)(nil)

// RNG implements cpu.RNG using a PCG generator, so that a run can be
// reproduced by reusing its seed.
type RNG struct {
	seed uint64
	rand *rand.Rand
}

// New returns a generator initialized with the given seed.
func New(seed uint64) *RNG {
	return &RNG{
		seed: seed,
		rand: rand.New(rand.NewPCG(seed, seed)),
	}
}

// NextInRange returns a value in the closed interval [0, max].
func (r *RNG) NextInRange(max uint16) uint16 {
	return uint16(r.rand.UintN(uint(max) + 1))
}

// Reset restarts the sequence from the seed.
func (r *RNG) Reset() {
	r.rand = rand.New(rand.NewPCG(r.seed, r.seed))
}

// Seed returns the seed the generator was initialized with.
func (r *RNG) Seed() uint64 {
	return r.seed
}
