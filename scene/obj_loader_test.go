package scene

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pbr-viewer/core"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writePNG(t *testing.T, dir, name string, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

const quadOBJ = `# quad
mtllib quad.mtl
o Quad
v -1 -1 0
v 1 -1 0
v 1 1 0
v -1 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
usemtl Painted
f 1/1/1 2/2/1 3/3/1 4/4/1
`

const quadMTL = `newmtl Painted
Kd 0.5 0.25 1.0
Pm 0.75
Pr 0.2
map_Kd albedo.png
map_Bump -bm 1.0 normal.png
map_Pr missing.png
`

func TestLoadOBJWithPBRMaterial(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "quad.obj", quadOBJ)
	writeFile(t, dir, "quad.mtl", quadMTL)
	writePNG(t, dir, "albedo.png", color.RGBA{200, 100, 50, 255})
	writePNG(t, dir, "normal.png", color.RGBA{128, 128, 255, 255})

	meshes, err := LoadOBJ(path, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, meshes, 1)

	mesh := meshes[0]
	assert.Equal(t, "Quad", mesh.Name)
	assert.Len(t, mesh.Vertices, 4)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, mesh.Indices, "fan triangulated")

	// V is flipped for top-down image rows.
	assert.Equal(t, float32(1), mesh.Vertices[0].UV.Y)
	assert.InDelta(t, 1, mesh.Vertices[0].Tangent.X, 1e-5)

	mat := mesh.Material
	require.NotNil(t, mat)
	assert.Equal(t, "Painted", mat.Name)
	assert.Equal(t, core.Color{R: 0.5, G: 0.25, B: 1, A: 1}, mat.Albedo)
	assert.Equal(t, float32(0.75), mat.Metallic)
	assert.Equal(t, float32(0.2), mat.Roughness)

	require.NotNil(t, mat.Textures[SlotAlbedo])
	assert.Equal(t, ColorSpaceSRGB, mat.Textures[SlotAlbedo].ColorSpace)
	assert.Equal(t, []byte{200, 100, 50, 255}, mat.Textures[SlotAlbedo].Pixels[:4])
	require.NotNil(t, mat.Textures[SlotNormal])
	assert.Equal(t, ColorSpaceLinear, mat.Textures[SlotNormal].ColorSpace)
	assert.Nil(t, mat.Textures[SlotRoughness], "missing file leaves the slot empty")
	assert.Equal(t, []byte{51, 51, 51, 255}, mat.Texture(SlotRoughness).Pixels)
}

func TestLoadOBJWithoutNormalsOrMaterial(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tri.obj", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")

	meshes, err := LoadOBJ(path, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, meshes, 1)
	for _, v := range meshes[0].Vertices {
		assert.InDelta(t, 1, v.Normal.Z, 1e-6, "generated normal faces +Z")
	}
	assert.Equal(t, "Default", meshes[0].Material.Name)
}

func TestLoadOBJNegativeIndices(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "neg.obj", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\n")

	meshes, err := LoadOBJ(path, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, float32(1), meshes[0].Vertices[1].Position.X)
}

func TestLoadOBJErrors(t *testing.T) {
	_, err := LoadOBJ(filepath.Join(t.TempDir(), "nope.obj"), zerolog.Nop())
	assert.Error(t, err)

	path := writeFile(t, t.TempDir(), "empty.obj", "# nothing\nv 0 0 0\n")
	_, err = LoadOBJ(path, zerolog.Nop())
	assert.Error(t, err)
}

func TestLoadModelDispatchesByExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tri.OBJ", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")

	model, err := LoadModel(path, zerolog.Nop())
	require.NoError(t, err)
	assert.False(t, model.Empty())
	assert.Equal(t, 1, model.Triangles())

	_, err = LoadModel(filepath.Join(dir, "scene.fbx"), zerolog.Nop())
	assert.ErrorContains(t, err, "unsupported extension")

	var none *Model
	assert.True(t, none.Empty())
}
