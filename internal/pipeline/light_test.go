package pipeline

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"

	"pbr-viewer/math"
)

func TestLightOrbit(t *testing.T) {
	orbit := LightOrbit{Center: math.Vec3{X: 10, Y: 0, Z: -55}, Radius: 10, Speed: 0.5}

	start := orbit.At(0)
	assert.InDelta(t, 20, start.X, 1e-5)
	assert.InDelta(t, -55, start.Z, 1e-5)

	quarter := orbit.At(gomath.Pi) // 0.5 rad/s for pi seconds
	assert.InDelta(t, 10, quarter.X, 1e-4)
	assert.InDelta(t, -45, quarter.Z, 1e-4)

	for _, tm := range []float64{0.3, 7.1, 1234.5} {
		p := orbit.At(tm)
		assert.Equal(t, p, orbit.At(tm), "deterministic in time")
		assert.InDelta(t, 10, p.Sub(orbit.Center).Length(), 1e-3)
		assert.Zero(t, p.Y)
	}
}

func TestModelTransform(t *testing.T) {
	m := ModelTransform{Translation: math.Vec3{X: 25, Z: -25}, RotationYDeg: -60, Scale: 1}.Matrix()

	origin := m.MulVec3(math.Vec3Zero)
	assert.InDelta(t, 25, origin.X, 1e-5)
	assert.InDelta(t, -25, origin.Z, 1e-5)

	// Rotation keeps points on the same radius around the translation.
	p := m.MulVec3(math.Vec3{X: 1})
	assert.InDelta(t, 1, p.Sub(origin).Length(), 1e-5)

	zero := ModelTransform{}.Matrix()
	assert.Equal(t, math.Mat4Identity(), zero, "zero scale means unit scale")
}
