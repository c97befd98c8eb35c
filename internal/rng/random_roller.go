package rng

import (
	"math/rand"
	"sync"
)

// randomRoller wraps a seeded math/rand source
type randomRoller struct {
	mu  sync.Mutex
	src *rand.Rand
}

// NewRandomRoller creates a roller seeded with seed
func NewRandomRoller(seed int64) Roller {
	return &randomRoller{src: rand.New(rand.NewSource(seed))}
}

func (r *randomRoller) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Float64()
}

func (r *randomRoller) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Intn(n)
}

// Shuffle returns the indexes 0..n-1 in random order drawn from roller.
func Shuffle(roller Roller, n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := roller.Intn(i + 1)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx
}
