package noise

import (
	"github.com/aquilax/go-perlin"
)

// perlinSampler layers gradient noise via go-perlin.
// go-perlin divides each octave by alpha^i, so alpha is the inverse persistence.
type perlinSampler struct {
	gen  *perlin.Perlin
	norm float64
}

func newPerlin(p Params) *perlinSampler {
	return &perlinSampler{
		gen:  perlin.NewPerlin(1/p.Persistence, p.Lacunarity, int32(p.Octaves), p.Seed),
		norm: amplitudeSum(p.Octaves, p.Persistence),
	}
}

func (s *perlinSampler) Sample(nx, ny float64) float64 {
	return s.gen.Noise2D(nx, ny) / s.norm
}
