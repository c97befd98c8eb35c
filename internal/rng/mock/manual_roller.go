package mockrng

import (
	"fmt"
	"sync"
)

// ManualRoller implements rng.Roller with scripted results.
// Running out of scripted values is a test setup bug and panics.
type ManualRoller struct {
	mu       sync.Mutex
	floats   []float64
	ints     []int
	floatIdx int
	intIdx   int
}

func NewManualRoller() *ManualRoller {
	return &ManualRoller{}
}

// SetFloats replaces the scripted Float64 results
func (m *ManualRoller) SetFloats(values ...float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.floats = values
	m.floatIdx = 0
}

// SetInts replaces the scripted Intn results
func (m *ManualRoller) SetInts(values ...int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ints = values
	m.intIdx = 0
}

func (m *ManualRoller) Float64() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.floatIdx >= len(m.floats) {
		panic(fmt.Sprintf("no more scripted floats (used %d of %d)", m.floatIdx, len(m.floats)))
	}
	v := m.floats[m.floatIdx]
	m.floatIdx++
	return v
}

func (m *ManualRoller) Intn(n int) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.intIdx >= len(m.ints) {
		panic(fmt.Sprintf("no more scripted ints (used %d of %d)", m.intIdx, len(m.ints)))
	}
	v := m.ints[m.intIdx]
	m.intIdx++
	if v < 0 || v >= n {
		panic(fmt.Sprintf("scripted int %d out of range [0,%d)", v, n))
	}
	return v
}
