package noise

import (
	"github.com/ojrac/opensimplex-go"
)

// simplexSampler sums OpenSimplex octaves with the same persistence and
// lacunarity semantics as the Perlin backend.
type simplexSampler struct {
	gen         opensimplex.Noise
	octaves     int
	persistence float64
	lacunarity  float64
	norm        float64
}

func newSimplex(p Params) *simplexSampler {
	return &simplexSampler{
		gen:         opensimplex.New(p.Seed),
		octaves:     p.Octaves,
		persistence: p.Persistence,
		lacunarity:  p.Lacunarity,
		norm:        amplitudeSum(p.Octaves, p.Persistence),
	}
}

func (s *simplexSampler) Sample(nx, ny float64) float64 {
	var sum float64
	amp, freq := 1.0, 1.0
	for range s.octaves {
		sum += s.gen.Eval2(nx*freq, ny*freq) * amp
		amp *= s.persistence
		freq *= s.lacunarity
	}
	return sum / s.norm
}
