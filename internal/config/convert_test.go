package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pbr-viewer/internal/pipeline"
	"pbr-viewer/math"
	"pbr-viewer/scene"
)

func TestDefaultsMatchPipelineReferenceValues(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, pipeline.DefaultIBLSettings(), cfg.IBLSettings())
	assert.Equal(t, pipeline.DefaultShadowSettings(), cfg.ShadowSettings())
}

func TestRenderDefaults(t *testing.T) {
	r := DefaultConfig().RenderDefaults()

	assert.True(t, r.Gamma)
	assert.True(t, r.HDR)
	assert.False(t, r.Bloom)
	assert.Equal(t, 10, r.BlurPasses)
	assert.InDelta(t, 0.1, r.HeightScale, 1e-6)
}

func TestLightAndModelConversion(t *testing.T) {
	cfg := DefaultConfig()

	orbit := cfg.LightOrbit()
	assert.Equal(t, math.Vec3{X: 10, Y: 0, Z: -55}, orbit.Center)
	assert.InDelta(t, 10, orbit.Radius, 1e-6)

	c := cfg.LightColor()
	assert.InDelta(t, 5, c.R, 1e-6)
	assert.InDelta(t, 1, c.A, 1e-6)

	mt := cfg.ModelTransform()
	assert.Equal(t, math.Vec3{X: 25, Y: 0, Z: -25}, mt.Translation)
	assert.InDelta(t, -60, mt.RotationYDeg, 1e-6)
}

func TestCameraConversion(t *testing.T) {
	cam := DefaultConfig().CameraConfig()

	assert.Equal(t, math.Vec3{X: 0, Y: 0, Z: 3}, cam.Position)
	assert.InDelta(t, -90, cam.Yaw, 1e-6)
	assert.InDelta(t, 45, cam.Zoom, 1e-6)
}

func TestSkyboxFaces(t *testing.T) {
	cfg := DefaultConfig()
	assert.Nil(t, cfg.SkyboxFaces())

	cfg.Assets.SkyboxFaces = []string{"px.jpg", "nx.jpg", "py.jpg", "ny.jpg", "pz.jpg", "nz.jpg"}
	faces := cfg.SkyboxFaces()
	require.NotNil(t, faces)
	assert.Equal(t, "px.jpg", faces[math.CubeFacePositiveX])
	assert.Equal(t, "nz.jpg", faces[math.CubeFaceNegativeZ])
}

func TestLoggingConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Log.File = "viewer.log"

	lc := cfg.LoggingConfig()
	assert.Equal(t, "info", lc.Level)
	assert.True(t, lc.Console)
	assert.Equal(t, "viewer.log", lc.File)
}

func TestSphereTextures(t *testing.T) {
	cfg := DefaultConfig()
	assert.Nil(t, cfg.SphereTextures())

	cfg.Assets.SphereTextures = map[string]string{"normal": "n.png", "ao": "ao.png"}
	assert.Equal(t, map[scene.TextureSlot]string{
		scene.SlotNormal: "n.png",
		scene.SlotAO:     "ao.png",
	}, cfg.SphereTextures())
}
