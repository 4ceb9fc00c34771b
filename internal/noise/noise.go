// Package noise provides deterministic coherent noise samplers used for heightmap synthesis.
package noise

import (
	"errors"
	"fmt"
	"math"
)

// Kind selects the noise backend.
type Kind string

const (
	KindPerlin  Kind = "perlin"
	KindSimplex Kind = "simplex"
)

// ErrInvalidParams is returned when layered-noise parameters are out of domain.
var ErrInvalidParams = errors.New("invalid noise parameters")

// Params controls layered (fractal) noise.
type Params struct {
	Octaves     int     `yaml:"octaves"`
	Persistence float64 `yaml:"persistence"` // amplitude falloff per octave, (0,1]
	Lacunarity  float64 `yaml:"lacunarity"`  // frequency multiplier per octave, >= 1
	Seed        int64   `yaml:"seed"`
	Kind        Kind    `yaml:"noise"`
}

// Sampler returns a scalar in roughly [-1,1] for continuous 2D coordinates.
// Implementations are deterministic and safe for concurrent use.
type Sampler interface {
	Sample(nx, ny float64) float64
}

// Validate checks that the parameters describe a usable noise field.
func (p Params) Validate() error {
	if p.Octaves < 1 {
		return fmt.Errorf("%w: octaves must be >= 1, got %d", ErrInvalidParams, p.Octaves)
	}
	if !isFinite(p.Persistence) || p.Persistence <= 0 || p.Persistence > 1 {
		return fmt.Errorf("%w: persistence must be in (0,1], got %v", ErrInvalidParams, p.Persistence)
	}
	if !isFinite(p.Lacunarity) || p.Lacunarity < 1 {
		return fmt.Errorf("%w: lacunarity must be >= 1, got %v", ErrInvalidParams, p.Lacunarity)
	}
	switch p.Kind {
	case "", KindPerlin, KindSimplex:
	default:
		return fmt.Errorf("%w: unknown noise kind %q", ErrInvalidParams, p.Kind)
	}
	return nil
}

// New creates a sampler for the given parameters.
func New(p Params) (Sampler, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	switch p.Kind {
	case KindSimplex:
		return newSimplex(p), nil
	default:
		return newPerlin(p), nil
	}
}

// amplitudeSum returns 1 + p + p^2 + ... over the octaves, used to keep
// layered output inside the single-octave range.
func amplitudeSum(octaves int, persistence float64) float64 {
	sum, amp := 0.0, 1.0
	for range octaves {
		sum += amp
		amp *= persistence
	}
	if sum == 0 {
		return 1
	}
	return sum
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
