package wheel

import "math/rand/v2"

// Selector draws the landing sector. Every sector is equally likely
// regardless of its winning flag; sector contents only determine the prize,
// never the draw.
type Selector struct {
	rng func(int) int // Injectable for testing
}

// NewSelector creates a selector with the default randomness source.
func NewSelector() *Selector {
	return &Selector{rng: rand.IntN}
}

// NewSelectorWithRNG creates a selector with an injected randomness source.
func NewSelectorWithRNG(rng func(int) int) *Selector {
	return &Selector{rng: rng}
}

// Pick returns an index drawn uniformly over [0, table.Len()).
func (s *Selector) Pick(table *SectorTable) int {
	return s.rng(table.Len())
}
