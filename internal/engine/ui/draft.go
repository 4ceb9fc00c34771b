package ui

import (
	"github.com/Faultbox/heightforge/internal/terrain"
)

// Draft holds slider values that have not been applied yet. ImGui widgets
// edit float32 and int32, so the fields mirror terrain.Params in those types.
type Draft struct {
	Scale       float32
	Octaves     int32
	Persistence float32
	Lacunarity  float32
	ScaleFactor float32
	Seed        int32
}

// DraftFrom copies the interactive fields of p.
func DraftFrom(p terrain.Params) Draft {
	return Draft{
		Scale:       float32(p.Scale),
		Octaves:     int32(p.Octaves),
		Persistence: float32(p.Persistence),
		Lacunarity:  float32(p.Lacunarity),
		ScaleFactor: float32(p.ScaleFactor),
		Seed:        int32(p.Seed),
	}
}

// Apply overlays the draft on base and clamps the result to the slider ranges.
// Fields the panel does not expose, such as grid size, come from base.
func (d Draft) Apply(base terrain.Params) terrain.Params {
	p := base
	p.Scale = float64(d.Scale)
	p.Octaves = int(d.Octaves)
	p.Persistence = float64(d.Persistence)
	p.Lacunarity = float64(d.Lacunarity)
	p.ScaleFactor = float64(d.ScaleFactor)
	p.Seed = int64(d.Seed)
	return p.Clamp()
}

// Changed reports whether applying d would alter base. The comparison is made
// at slider precision.
func (d Draft) Changed(base terrain.Params) bool {
	return DraftFrom(d.Apply(base)) != DraftFrom(base)
}
