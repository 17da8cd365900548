package random

import "math/rand/v2"

// Generator is a seeded source of random numbers used for placing and
// perturbing entities
type Generator struct {
	r *rand.Rand
}

// New creates a deterministic generator for the given seed
func New(seed uint64) *Generator {
	return &Generator{r: rand.New(rand.NewPCG(seed, 0x9e3779b97f4a7c15))}
}

// Real returns a uniformly distributed value in [min, max). If max <= min,
// min is returned.
func (g *Generator) Real(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + g.r.Float64()*(max-min)
}
