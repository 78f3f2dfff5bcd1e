package model

import (
	"math/rand/v2"
	"time"
)

// NewRand returns a PCG-backed generator for seeding grids.
// A zero seed picks one from the clock.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), 0))
}
