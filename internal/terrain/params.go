// Package terrain builds heightmaps and textured terrain meshes from layered noise.
package terrain

import (
	"errors"
	"fmt"
	"math"

	"github.com/Faultbox/heightforge/internal/noise"
)

// ErrInvalidParams is returned when generation parameters are out of domain.
var ErrInvalidParams = errors.New("invalid terrain parameters")

// Interactive parameter ranges.
const (
	MinScale       = 10.0
	MaxScale       = 100.0
	MinOctaves     = 1
	MaxOctaves     = 10
	MinPersistence = 0.1
	MaxPersistence = 1.0
	MinLacunarity  = 1.0
	MaxLacunarity  = 4.0
	MinScaleFactor = 100.0
	MaxScaleFactor = 400.0
)

// DefaultAmplitude multiplies raw noise before normalization.
const DefaultAmplitude = 10.0

// Params holds everything needed to regenerate a terrain mesh.
type Params struct {
	Width       int        `yaml:"width"`
	Height      int        `yaml:"height"`
	Scale       float64    `yaml:"scale"`
	Octaves     int        `yaml:"octaves"`
	Persistence float64    `yaml:"persistence"`
	Lacunarity  float64    `yaml:"lacunarity"`
	ScaleFactor float64    `yaml:"scale_factor"`
	Amplitude   float64    `yaml:"amplitude"`
	Seed        int64      `yaml:"seed"`
	Noise       noise.Kind `yaml:"noise"`

	// Workers bounds heightmap parallelism; 0 uses all CPUs.
	Workers int `yaml:"-"`
}

// DefaultParams returns a 200x200 grid with the stock noise settings.
func DefaultParams() Params {
	return Params{
		Width:       200,
		Height:      200,
		Scale:       50,
		Octaves:     5,
		Persistence: 0.5,
		Lacunarity:  2.0,
		ScaleFactor: 200,
		Amplitude:   DefaultAmplitude,
		Noise:       noise.KindPerlin,
	}
}

// NoiseParams extracts the sampler configuration.
func (p Params) NoiseParams() noise.Params {
	return noise.Params{
		Octaves:     p.Octaves,
		Persistence: p.Persistence,
		Lacunarity:  p.Lacunarity,
		Seed:        p.Seed,
		Kind:        p.Noise,
	}
}

// Validate rejects parameters that would produce an empty grid or non-finite heights.
func (p Params) Validate() error {
	if p.Width < 2 || p.Height < 2 {
		return fmt.Errorf("%w: grid must be at least 2x2, got %dx%d", ErrInvalidParams, p.Width, p.Height)
	}
	if !finite(p.Scale) || p.Scale <= 0 {
		return fmt.Errorf("%w: scale must be > 0, got %v", ErrInvalidParams, p.Scale)
	}
	if !finite(p.ScaleFactor) || p.ScaleFactor <= 0 {
		return fmt.Errorf("%w: scale factor must be > 0, got %v", ErrInvalidParams, p.ScaleFactor)
	}
	if !finite(p.Amplitude) {
		return fmt.Errorf("%w: amplitude must be finite, got %v", ErrInvalidParams, p.Amplitude)
	}
	if p.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidParams, p.Workers)
	}
	if err := p.NoiseParams().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	return nil
}

// Clamp forces the interactive parameters into their slider ranges.
// Grid size, seed and amplitude are left alone.
func (p Params) Clamp() Params {
	p.Scale = clamp(p.Scale, MinScale, MaxScale)
	p.Octaves = min(max(p.Octaves, MinOctaves), MaxOctaves)
	p.Persistence = clamp(p.Persistence, MinPersistence, MaxPersistence)
	p.Lacunarity = clamp(p.Lacunarity, MinLacunarity, MaxLacunarity)
	p.ScaleFactor = clamp(p.ScaleFactor, MinScaleFactor, MaxScaleFactor)
	return p
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(math.Max(v, lo), hi)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
