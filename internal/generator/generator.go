// Package generator picks drill items at random.
package generator

import (
	"math/rand"
	"time"
)

// Generator draws uniformly random indices. It is not safe for concurrent use.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Pick returns a uniformly random index in [0, n), or -1 when n <= 0.
// Consecutive picks may repeat.
func (g *Generator) Pick(n int) int {
	if n <= 0 {
		return -1
	}
	return g.rnd.Intn(n)
}
