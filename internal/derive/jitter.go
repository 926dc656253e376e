package derive

import (
	"math/rand/v2"
	"sync"
)

// Jitter is the random source for owner-interest variation. *rand.Rand
// satisfies it.
type Jitter interface {
	Float64() float64
}

// NewJitter returns a deterministic source for a non-zero seed and a randomly
// seeded one otherwise. The result is safe for concurrent use.
func NewJitter(seed uint64) Jitter {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &lockedJitter{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

type lockedJitter struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (j *lockedJitter) Float64() float64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.r.Float64()
}

// Fixed always returns the same value; Fixed(0.5) yields the unperturbed base.
type Fixed float64

func (f Fixed) Float64() float64 { return float64(f) }
