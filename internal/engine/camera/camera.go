// Package camera provides the orbit camera used to inspect terrain.
package camera

import (
	gomath "math"

	"github.com/Faultbox/heightforge/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	CenterX, CenterY, CenterZ float32

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32 // radians per pixel
	ZoomStep        float32 // world units per wheel notch

	FovY float32 // radians
}

// NewOrbitCamera creates a camera at distance looking down at pitchDeg, rotated by yawDeg.
func NewOrbitCamera(distance, pitchDeg, yawDeg float32) *OrbitCamera {
	c := &OrbitCamera{
		Distance:        distance,
		MinDistance:     20.0,
		MaxDistance:     5000.0,
		MinPitch:        radians(-89),
		MaxPitch:        radians(89),
		DragSensitivity: 0.005,
		ZoomStep:        20,
		FovY:            radians(45),
	}
	c.Rotate(pitchDeg, yawDeg)
	c.clampDistance()
	return c
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Sin(float64(c.RotationY)))
	y := c.Distance * float32(gomath.Sin(float64(c.RotationX)))
	z := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Cos(float64(c.RotationY)))

	return math.Vec3{
		X: c.CenterX + x,
		Y: c.CenterY + y,
		Z: c.CenterZ + z,
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	center := math.Vec3{X: c.CenterX, Y: c.CenterY, Z: c.CenterZ}
	return math.LookAt(c.Position(), center, math.Vec3{Y: 1})
}

// ProjectionMatrix returns a perspective projection whose far plane follows the orbit distance.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	far := max(c.Distance*4, 1000)
	return math.Perspective(c.FovY, aspect, 1.0, far)
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection(aspect float32) math.Mat4 {
	return c.ProjectionMatrix(aspect).Mul(c.ViewMatrix())
}

// Rotate adds pitch and yaw, in degrees.
func (c *OrbitCamera) Rotate(pitchDeg, yawDeg float32) {
	c.RotationX += radians(pitchDeg)
	c.RotationY += radians(yawDeg)
	c.clampPitch()
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity
	c.clampPitch()
}

// HandleZoom moves toward the center by ZoomStep per wheel notch.
func (c *OrbitCamera) HandleZoom(notches float32) {
	c.Distance -= notches * c.ZoomStep
	c.clampDistance()
}

// FitToBounds centers the camera on the bounding box and makes sure it is outside it.
func (c *OrbitCamera) FitToBounds(min, max [3]float32) {
	c.CenterX = (min[0] + max[0]) / 2
	c.CenterY = (min[1] + max[1]) / 2
	c.CenterZ = (min[2] + max[2]) / 2

	size := max[0] - min[0]
	if d := max[2] - min[2]; d > size {
		size = d
	}
	if c.Distance < size {
		c.Distance = size
	}
	c.clampDistance()
}

// Degrees returns pitch and yaw in degrees.
func (c *OrbitCamera) Degrees() (pitch, yaw float32) {
	return degrees(c.RotationX), degrees(c.RotationY)
}

func (c *OrbitCamera) clampPitch() {
	c.RotationX = min(max(c.RotationX, c.MinPitch), c.MaxPitch)
}

func (c *OrbitCamera) clampDistance() {
	c.Distance = min(max(c.Distance, c.MinDistance), c.MaxDistance)
}

func radians(deg float32) float32 { return deg * gomath.Pi / 180 }

func degrees(rad float32) float32 { return rad * 180 / gomath.Pi }
