// Package lighting holds the directional light used to shade terrain.
package lighting

import "math"

// Directional is a sun-style light. Direction points from the surface
// towards the light and does not need to be normalized.
type Directional struct {
	Direction [3]float32
	Ambient   float32
	Diffuse   float32
}

// Default returns a light from (0,1,1) with ambient 0.1 and diffuse 0.8.
func Default() Directional {
	return Directional{
		Direction: [3]float32{0, 1, 1},
		Ambient:   0.1,
		Diffuse:   0.8,
	}
}

// UnitDirection returns Direction normalized, or straight up when it is zero.
func (d Directional) UnitDirection() [3]float32 {
	x, y, z := float64(d.Direction[0]), float64(d.Direction[1]), float64(d.Direction[2])
	l := math.Sqrt(x*x + y*y + z*z)
	if l == 0 {
		return [3]float32{0, 1, 0}
	}
	return [3]float32{float32(x / l), float32(y / l), float32(z / l)}
}

// Intensity returns the Lambert term ambient + diffuse*max(n·l, 0) for a unit normal.
func (d Directional) Intensity(normal [3]float32) float32 {
	l := d.UnitDirection()
	dot := normal[0]*l[0] + normal[1]*l[1] + normal[2]*l[2]
	return d.Ambient + d.Diffuse*max(dot, 0)
}
