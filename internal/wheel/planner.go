package wheel

import (
	"math"
	"math/rand/v2"
)

// Extra full turns added for visual effect before the wheel lands.
const (
	MinExtraTurns = 5
	MaxExtraTurns = 7
)

// Planner converts a selected sector index into the next total rotation
// angle. Rotation only ever accumulates: the animator tweens linearly from
// the previous total to the returned one, so going backward would spin the
// wheel the wrong way.
type Planner struct {
	rng func(int) int // Injectable for testing
}

// NewPlanner creates a planner with the default randomness source.
func NewPlanner() *Planner {
	return &Planner{rng: rand.IntN}
}

// NewPlannerWithRNG creates a planner with an injected randomness source.
func NewPlannerWithRNG(rng func(int) int) *Planner {
	return &Planner{rng: rng}
}

// Plan computes the next total rotation for landing on index. The pointer is
// fixed at the top and sectors run clockwise from angle 0, so landing on
// sector i means counter-rotating the wheel by i's clockwise offset:
//
//	target = 360 - i*anglePerSector - anglePerSector/2
//
// Plan then adds 5-7 full turns and aligns so that the result modulo 360
// equals target. Guarantees: next >= prev, and next mod 360 lands on the
// sector midpoint no matter how many spins came before.
func (p *Planner) Plan(prev float64, index int, table *SectorTable) float64 {
	anglePerSector := table.AnglePerSector()
	target := 360 - float64(index)*anglePerSector - anglePerSector/2

	turns := MinExtraTurns + p.rng(MaxExtraTurns-MinExtraTurns+1)

	return prev + float64(turns)*360 + target - math.Mod(prev, 360)
}
