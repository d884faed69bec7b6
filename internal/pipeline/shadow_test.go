package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pbr-viewer/math"
)

func TestShadowTransformsUseCubeFaceTable(t *testing.T) {
	light := math.Vec3{X: 20, Y: 0, Z: -55}
	s := DefaultShadowSettings()
	transforms := ShadowTransforms(light, s)
	views := math.CaptureViews(light)
	proj := ShadowProjection(s)

	for f := math.CubeFace(0); f < math.CubeFaceCount; f++ {
		assert.Equal(t, views[f].Mul(proj), transforms[f], f.String())

		// A point one unit along the face direction lands in the middle
		// of that face's clip space.
		p := light.Add(math.CubeFaceBases[f].Direction)
		clip := p.ToVec4(1).MulMat(transforms[f])
		ndc := clip.ToVec3DivW()
		assert.InDelta(t, 0, ndc.X, 1e-4, f.String())
		assert.InDelta(t, 0, ndc.Y, 1e-4, f.String())
		assert.True(t, ndc.Z > -1 && ndc.Z < 1, f.String())
	}
}
