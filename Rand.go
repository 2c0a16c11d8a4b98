package Ordered

import (
	_ "runtime"
	_ "unsafe"
)

//go:linkname CheapRandN runtime.cheaprandn
//go:nosplit
func CheapRandN(n uint32) uint32

//go:linkname cheaprand64 runtime.cheaprand64
//go:nosplit
func cheaprand64() int64

// Runtime is a rand/v2 Source backed by the runtime's per-P generator. It
// allocates nothing and needs no seeding; consecutive values are not
// reproducible across runs. The zero value is ready to use.
type Runtime struct{}

func (Runtime) Uint64() uint64 {
	return uint64(cheaprand64())
}

// Rand is a deterministic xorshift* Source. Two Rands created with the same
// seed produce the same sequence, which makes the shapes of the randomized
// containers reproducible. Not safe for concurrent use.
type Rand struct {
	s uint64
}

// NewRand returns a Rand seeded with seed. A zero seed is remapped to a fixed
// nonzero constant since xorshift has 0 as a fixed point.
func NewRand(seed uint64) *Rand {
	if seed == 0 {
		seed = 0x9E3779B97F4A7C15
	}
	return &Rand{s: seed}
}

func (r *Rand) Uint64() uint64 {
	x := r.s
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.s = x
	return x * 2685821657736338717
}
