package config

import (
	"pbr-viewer/core"
	"pbr-viewer/internal/logging"
	"pbr-viewer/internal/pipeline"
	"pbr-viewer/math"
	"pbr-viewer/scene"
)

// RenderDefaults is the toggle state the first frame starts from.
func (c *Config) RenderDefaults() pipeline.RenderConfig {
	r := c.Render
	return pipeline.RenderConfig{
		Gamma:       r.Gamma,
		Shadows:     r.Shadows,
		Parallax:    r.Parallax,
		HeightScale: r.HeightScale,
		HDR:         r.HDR,
		Bloom:       r.Bloom,
		Exposure:    r.Exposure,
		BlurPasses:  r.BlurPasses,
	}
}

func (c *Config) IBLSettings() pipeline.IBLSettings {
	return pipeline.IBLSettings{
		EnvironmentSize: c.IBL.EnvironmentSize,
		IrradianceSize:  c.IBL.IrradianceSize,
		PrefilterSize:   c.IBL.PrefilterSize,
		PrefilterLevels: c.IBL.PrefilterLevels,
		BRDFSize:        c.IBL.BRDFSize,
	}
}

func (c *Config) ShadowSettings() pipeline.ShadowSettings {
	return pipeline.ShadowSettings{Size: c.Shadow.Size, Near: c.Shadow.Near, Far: c.Shadow.Far}
}

func (c *Config) LightOrbit() pipeline.LightOrbit {
	return pipeline.LightOrbit{Center: math.Vec3FromArray(c.Light.Center), Radius: c.Light.Radius, Speed: c.Light.Speed}
}

// LightColor is HDR radiance; components may exceed 1.
func (c *Config) LightColor() core.Color {
	return core.Color{R: c.Light.Color[0], G: c.Light.Color[1], B: c.Light.Color[2], A: 1}
}

func (c *Config) ModelTransform() pipeline.ModelTransform {
	return pipeline.ModelTransform{
		Translation:  math.Vec3FromArray(c.Model.Translation),
		RotationYDeg: c.Model.RotationYDeg,
		Scale:        c.Model.Scale,
	}
}

func (c *Config) CameraConfig() scene.CameraConfig {
	cam := c.Camera
	return scene.CameraConfig{
		Position:    math.Vec3FromArray(cam.Position),
		Yaw:         cam.Yaw,
		Pitch:       cam.Pitch,
		Speed:       cam.Speed,
		Sensitivity: cam.Sensitivity,
		Zoom:        cam.Zoom,
		Near:        cam.Near,
		Far:         cam.Far,
	}
}

// SkyboxFaces returns the six face paths, or nil when the captured
// environment should be shown. Validate guarantees zero or six entries.
func (c *Config) SkyboxFaces() *[math.CubeFaceCount]string {
	if len(c.Assets.SkyboxFaces) != int(math.CubeFaceCount) {
		return nil
	}
	var faces [math.CubeFaceCount]string
	copy(faces[:], c.Assets.SkyboxFaces)
	return &faces
}

func (c *Config) LoggingConfig() logging.Config {
	return logging.Config{Level: c.Log.Level, Console: c.Log.Console, File: c.Log.File}
}

// SphereTextures resolves the configured slot names. Validate rejects
// unknown names, so none are dropped here.
func (c *Config) SphereTextures() map[scene.TextureSlot]string {
	if len(c.Assets.SphereTextures) == 0 {
		return nil
	}
	out := make(map[scene.TextureSlot]string, len(c.Assets.SphereTextures))
	for name, path := range c.Assets.SphereTextures {
		if slot, ok := scene.ParseTextureSlot(name); ok {
			out[slot] = path
		}
	}
	return out
}
