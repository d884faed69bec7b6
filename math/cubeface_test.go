package math

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCubeLookupSelectsFaceOfBasisDirection(t *testing.T) {
	for f, basis := range CubeFaceBases {
		face, s, tc := CubeLookup(basis.Direction)
		assert.Equal(t, CubeFace(f), face, "face %s", CubeFace(f))
		assert.InDelta(t, 0.5, s, tolerance)
		assert.InDelta(t, 0.5, tc, tolerance)
	}
}

func TestCaptureViewsRoundTripThroughCubemapLookup(t *testing.T) {
	samples := [][2]float32{{0, 0}, {-0.5, -0.5}, {0.3, 0.7}, {0.9, -0.2}, {-0.75, 0.25}}

	for eyeName, eye := range map[string]Vec3{"origin": Vec3Zero, "light": NewVec3(20, 0, -55)} {
		views := CaptureViews(eye)
		for f := range views {
			inv := views[f].Inverse()
			for _, ndc := range samples {
				// Point on the near face of the 90 degree frustum.
				world := inv.MulVec3(NewVec3(ndc[0], ndc[1], -1))
				face, s, tc := CubeLookup(world.Sub(eye))

				require.Equal(t, CubeFace(f), face, "%s: face %s sample %v", eyeName, CubeFace(f), ndc)
				assert.InDelta(t, (ndc[0]+1)/2, s, tolerance, "%s: s on %s", eyeName, CubeFace(f))
				assert.InDelta(t, (ndc[1]+1)/2, tc, tolerance, "%s: t on %s", eyeName, CubeFace(f))
			}
		}
	}
}

func TestCaptureViewsLookDownBasisDirection(t *testing.T) {
	views := CaptureViews(Vec3Zero)
	for f, basis := range CubeFaceBases {
		assertVec3InDelta(t, NewVec3(0, 0, -1), views[f].MulDir(basis.Direction))
		assertVec3InDelta(t, NewVec3(0, 1, 0), views[f].MulDir(basis.Up))
	}
}

func TestCaptureTransformsMatchMathGL(t *testing.T) {
	eye := NewVec3(15, 0, -50)
	proj := Mat4Perspective(Radians(90), 1, 0.1, 100)
	got := CaptureTransforms(eye, proj)

	mglProj := mgl32.Perspective(mgl32.DegToRad(90), 1, 0.1, 100)
	e := mgl32.Vec3{eye.X, eye.Y, eye.Z}
	for f, basis := range CubeFaceBases {
		d := mgl32.Vec3{basis.Direction.X, basis.Direction.Y, basis.Direction.Z}
		up := mgl32.Vec3{basis.Up.X, basis.Up.Y, basis.Up.Z}
		want := mglProj.Mul4(mgl32.LookAtV(e, e.Add(d), up))
		assertMatchesMGL(t, want, got[f])
	}
}

func TestCubeFaceString(t *testing.T) {
	assert.Equal(t, "+X", CubeFacePositiveX.String())
	assert.Equal(t, "-Z", CubeFaceNegativeZ.String())
	assert.Equal(t, "invalid", CubeFaceCount.String())
}
