package catalog

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Picker chooses an index uniformly in [0, n).
type Picker interface {
	Pick(n int) int
}

// RandPicker is a Picker backed by math/rand. Safe for concurrent use.
type RandPicker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandPicker creates a picker from an explicit source. Tests pass a fixed seed.
func NewRandPicker(src rand.Source) *RandPicker {
	return &RandPicker{rng: rand.New(src)}
}

// NewTimeSeededPicker creates a picker seeded from the current time.
func NewTimeSeededPicker() *RandPicker {
	seed := uint64(time.Now().UnixNano())
	return NewRandPicker(rand.NewPCG(seed, seed>>1|1))
}

// Pick returns a random index, or -1 when n is not positive.
func (p *RandPicker) Pick(n int) int {
	if n <= 0 {
		return -1
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.IntN(n)
}

// PickerFunc adapts a function to the Picker interface.
type PickerFunc func(n int) int

// Pick calls f(n).
func (f PickerFunc) Pick(n int) int { return f(n) }
