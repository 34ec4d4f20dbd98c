package wall

import (
	"math/rand"
	"time"
)

// Rand is the random source used by the generators.
// *math/rand.Rand satisfies it; tests may inject a scripted source.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a seeded source. A zero seed uses the current time.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
