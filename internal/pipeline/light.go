package pipeline

import (
	gomath "math"

	"pbr-viewer/core"
	"pbr-viewer/math"
)

// LightOrbit moves the point light on a horizontal circle.
type LightOrbit struct {
	Center math.Vec3
	Radius float32
	Speed  float32 // radians per second
}

// At is the light position t seconds after start.
func (o LightOrbit) At(t float64) math.Vec3 {
	angle := t * float64(o.Speed)
	return o.Center.Add(math.Vec3{
		X: float32(gomath.Cos(angle)) * o.Radius,
		Z: float32(gomath.Sin(angle)) * o.Radius,
	})
}

// LightState is the single point light for one frame.
type LightState struct {
	Position math.Vec3
	Color    core.Color
}

// ModelTransform places the model in the world.
type ModelTransform struct {
	Translation  math.Vec3
	RotationYDeg float32
	Scale        float32
}

// Matrix applies scale, then rotation about Y, then translation.
func (m ModelTransform) Matrix() math.Mat4 {
	s := m.Scale
	if s == 0 {
		s = 1
	}
	return math.Mat4Scale(math.Vec3{X: s, Y: s, Z: s}).
		Mul(math.Mat4RotationY(math.Radians(m.RotationYDeg))).
		Mul(math.Mat4Translation(m.Translation))
}
