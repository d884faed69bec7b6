package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pbr-viewer/core"
)

func TestUnitCubeSpansPlusMinusOne(t *testing.T) {
	cube := CreateUnitCube()

	require.Len(t, cube.Vertices, 36)
	require.Len(t, cube.Indices, 36)
	assert.Equal(t, core.DrawTriangles, cube.DrawMode)
	for _, v := range cube.Vertices {
		for _, c := range []float32{v.Position.X, v.Position.Y, v.Position.Z} {
			assert.True(t, c == 1 || c == -1, "corner component %v", c)
		}
	}
}

func TestScreenQuadIsStripCoveringNDC(t *testing.T) {
	quad := CreateScreenQuad()

	require.Len(t, quad.Vertices, 4)
	assert.Equal(t, core.DrawTriangleStrip, quad.DrawMode)
	for _, v := range quad.Vertices {
		assert.Equal(t, (v.Position.X+1)/2, v.UV.X)
		assert.Equal(t, (v.Position.Y+1)/2, v.UV.Y)
	}
}

func TestUVSphereStrip(t *testing.T) {
	sphere := CreateUVSphere(64, 64)

	assert.Len(t, sphere.Vertices, 65*65)
	assert.Len(t, sphere.Indices, 64*65*2)
	assert.Equal(t, core.DrawTriangleStrip, sphere.DrawMode)
	for _, idx := range sphere.Indices {
		require.Less(t, int(idx), len(sphere.Vertices))
	}
	for _, v := range sphere.Vertices {
		assert.InDelta(t, 1, v.Position.Length(), 1e-5)
		assert.InDelta(t, 0, v.Tangent.Dot(v.Normal), 1e-5)
	}
}

func TestUVSphereClampsDegenerateSizes(t *testing.T) {
	sphere := CreateUVSphere(1, 1)
	assert.Len(t, sphere.Vertices, 4*3)
}

func TestCreateMeshFromDataFillsSequentialIndices(t *testing.T) {
	mesh := CreateMeshFromData("tri", make([]core.Vertex, 3), nil)
	assert.Equal(t, []uint32{0, 1, 2}, mesh.Indices)
	assert.NotNil(t, mesh.MaterialOrDefault())
}
