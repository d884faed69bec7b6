// Package config loads viewer settings from pbrviewer.yaml, PBRVIEWER_*
// environment variables and built-in defaults, in that order of precedence
// below command-line flags.
package config

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"

	"github.com/spf13/viper"

	"pbr-viewer/scene"
)

const (
	configName = "pbrviewer"
	envPrefix  = "PBRVIEWER"
)

type Config struct {
	Window  WindowConfig  `mapstructure:"window" yaml:"window"`
	Assets  AssetsConfig  `mapstructure:"assets" yaml:"assets"`
	Camera  CameraConfig  `mapstructure:"camera" yaml:"camera"`
	Model   ModelConfig   `mapstructure:"model" yaml:"model"`
	Light   LightConfig   `mapstructure:"light" yaml:"light"`
	Shadow  ShadowConfig  `mapstructure:"shadow" yaml:"shadow"`
	IBL     IBLConfig     `mapstructure:"ibl" yaml:"ibl"`
	Render  RenderConfig  `mapstructure:"render" yaml:"render"`
	Shaders ShadersConfig `mapstructure:"shaders" yaml:"shaders"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

type WindowConfig struct {
	Width         int    `mapstructure:"width" yaml:"width"`
	Height        int    `mapstructure:"height" yaml:"height"`
	Title         string `mapstructure:"title" yaml:"title"`
	VSync         bool   `mapstructure:"vsync" yaml:"vsync"`
	CaptureCursor bool   `mapstructure:"capture_cursor" yaml:"capture_cursor"`
}

type AssetsConfig struct {
	Model       string `mapstructure:"model" yaml:"model"`
	Environment string `mapstructure:"environment" yaml:"environment"`
	// SkyboxFaces, when six paths are given (+X -X +Y -Y +Z -Z), replaces
	// the captured environment as the visible background.
	SkyboxFaces    []string `mapstructure:"skybox_faces" yaml:"skybox_faces,omitempty"`
	FallbackSphere bool     `mapstructure:"fallback_sphere" yaml:"fallback_sphere"`
	// SphereTextures maps material slots (albedo, normal, metallic,
	// roughness, ao, height) to image files for the fallback sphere.
	SphereTextures map[string]string `mapstructure:"sphere_textures" yaml:"sphere_textures,omitempty"`
}

type CameraConfig struct {
	Position    [3]float32 `mapstructure:"position" yaml:"position"`
	Yaw         float32    `mapstructure:"yaw" yaml:"yaw"`
	Pitch       float32    `mapstructure:"pitch" yaml:"pitch"`
	Speed       float32    `mapstructure:"speed" yaml:"speed"`
	Sensitivity float32    `mapstructure:"sensitivity" yaml:"sensitivity"`
	Zoom        float32    `mapstructure:"zoom" yaml:"zoom"`
	Near        float32    `mapstructure:"near" yaml:"near"`
	Far         float32    `mapstructure:"far" yaml:"far"`
}

type ModelConfig struct {
	Translation  [3]float32 `mapstructure:"translation" yaml:"translation"`
	RotationYDeg float32    `mapstructure:"rotation_y_deg" yaml:"rotation_y_deg"`
	Scale        float32    `mapstructure:"scale" yaml:"scale"`
}

type LightConfig struct {
	Center      [3]float32 `mapstructure:"center" yaml:"center"`
	Radius      float32    `mapstructure:"radius" yaml:"radius"`
	Speed       float32    `mapstructure:"speed" yaml:"speed"`
	Color       [3]float32 `mapstructure:"color" yaml:"color"`
	MarkerScale float32    `mapstructure:"marker_scale" yaml:"marker_scale"`
}

type ShadowConfig struct {
	Size int     `mapstructure:"size" yaml:"size"`
	Near float32 `mapstructure:"near" yaml:"near"`
	Far  float32 `mapstructure:"far" yaml:"far"`
}

type IBLConfig struct {
	EnvironmentSize int `mapstructure:"environment_size" yaml:"environment_size"`
	IrradianceSize  int `mapstructure:"irradiance_size" yaml:"irradiance_size"`
	PrefilterSize   int `mapstructure:"prefilter_size" yaml:"prefilter_size"`
	PrefilterLevels int `mapstructure:"prefilter_levels" yaml:"prefilter_levels"`
	BRDFSize        int `mapstructure:"brdf_size" yaml:"brdf_size"`
}

// RenderConfig holds the initial toggle values; keys change them at runtime.
type RenderConfig struct {
	Gamma       bool    `mapstructure:"gamma" yaml:"gamma"`
	Shadows     bool    `mapstructure:"shadows" yaml:"shadows"`
	Parallax    bool    `mapstructure:"parallax" yaml:"parallax"`
	HeightScale float32 `mapstructure:"height_scale" yaml:"height_scale"`
	HDR         bool    `mapstructure:"hdr" yaml:"hdr"`
	Bloom       bool    `mapstructure:"bloom" yaml:"bloom"`
	Exposure    float32 `mapstructure:"exposure" yaml:"exposure"`
	BlurPasses  int     `mapstructure:"blur_passes" yaml:"blur_passes"`
}

type ShadersConfig struct {
	// Dir overrides built-in sources with same-named files (pbr.fs, ...).
	Dir       string `mapstructure:"dir" yaml:"dir"`
	HotReload bool   `mapstructure:"hot_reload" yaml:"hot_reload"`
}

type LogConfig struct {
	Level   string `mapstructure:"level" yaml:"level"`
	Console bool   `mapstructure:"console" yaml:"console"`
	File    string `mapstructure:"file" yaml:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:         1600,
			Height:        1200,
			Title:         "PBR Viewer",
			VSync:         true,
			CaptureCursor: true,
		},
		Assets: AssetsConfig{
			Model:          "resources/aircraft/aircraft.obj",
			Environment:    "resources/hdr/small_empty_house_2k.hdr",
			FallbackSphere: true,
		},
		Camera: CameraConfig{
			Position:    [3]float32{0, 0, 3},
			Yaw:         -90,
			Pitch:       0,
			Speed:       2.5,
			Sensitivity: 0.1,
			Zoom:        45,
			Near:        0.1,
			Far:         100,
		},
		Model: ModelConfig{
			Translation:  [3]float32{25, 0, -25},
			RotationYDeg: -60,
			Scale:        1,
		},
		Light: LightConfig{
			Center:      [3]float32{10, 0, -55},
			Radius:      10,
			Speed:       0.5,
			Color:       [3]float32{5, 5, 5},
			MarkerScale: 0.5,
		},
		Shadow: ShadowConfig{Size: 1024, Near: 0.1, Far: 100},
		IBL: IBLConfig{
			EnvironmentSize: 512,
			IrradianceSize:  32,
			PrefilterSize:   128,
			PrefilterLevels: 5,
			BRDFSize:        512,
		},
		Render: RenderConfig{
			Gamma:       true,
			Shadows:     true,
			Parallax:    false,
			HeightScale: 0.1,
			HDR:         true,
			Bloom:       false,
			Exposure:    1,
			BlurPasses:  10,
		},
		Log: LogConfig{Level: "info", Console: true},
	}
}

// Load resolves the configuration. An explicit path must exist; without
// one, pbrviewer.yaml is looked up in . and ./configs and may be absent.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every leaf key so environment variables can
// override values that no config file mentions.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("window.title", d.Window.Title)
	v.SetDefault("window.vsync", d.Window.VSync)
	v.SetDefault("window.capture_cursor", d.Window.CaptureCursor)

	v.SetDefault("assets.model", d.Assets.Model)
	v.SetDefault("assets.environment", d.Assets.Environment)
	v.SetDefault("assets.skybox_faces", d.Assets.SkyboxFaces)
	v.SetDefault("assets.fallback_sphere", d.Assets.FallbackSphere)

	v.SetDefault("camera.position", d.Camera.Position[:])
	v.SetDefault("camera.yaw", d.Camera.Yaw)
	v.SetDefault("camera.pitch", d.Camera.Pitch)
	v.SetDefault("camera.speed", d.Camera.Speed)
	v.SetDefault("camera.sensitivity", d.Camera.Sensitivity)
	v.SetDefault("camera.zoom", d.Camera.Zoom)
	v.SetDefault("camera.near", d.Camera.Near)
	v.SetDefault("camera.far", d.Camera.Far)

	v.SetDefault("model.translation", d.Model.Translation[:])
	v.SetDefault("model.rotation_y_deg", d.Model.RotationYDeg)
	v.SetDefault("model.scale", d.Model.Scale)

	v.SetDefault("light.center", d.Light.Center[:])
	v.SetDefault("light.radius", d.Light.Radius)
	v.SetDefault("light.speed", d.Light.Speed)
	v.SetDefault("light.color", d.Light.Color[:])
	v.SetDefault("light.marker_scale", d.Light.MarkerScale)

	v.SetDefault("shadow.size", d.Shadow.Size)
	v.SetDefault("shadow.near", d.Shadow.Near)
	v.SetDefault("shadow.far", d.Shadow.Far)

	v.SetDefault("ibl.environment_size", d.IBL.EnvironmentSize)
	v.SetDefault("ibl.irradiance_size", d.IBL.IrradianceSize)
	v.SetDefault("ibl.prefilter_size", d.IBL.PrefilterSize)
	v.SetDefault("ibl.prefilter_levels", d.IBL.PrefilterLevels)
	v.SetDefault("ibl.brdf_size", d.IBL.BRDFSize)

	v.SetDefault("render.gamma", d.Render.Gamma)
	v.SetDefault("render.shadows", d.Render.Shadows)
	v.SetDefault("render.parallax", d.Render.Parallax)
	v.SetDefault("render.height_scale", d.Render.HeightScale)
	v.SetDefault("render.hdr", d.Render.HDR)
	v.SetDefault("render.bloom", d.Render.Bloom)
	v.SetDefault("render.exposure", d.Render.Exposure)
	v.SetDefault("render.blur_passes", d.Render.BlurPasses)

	v.SetDefault("shaders.dir", d.Shaders.Dir)
	v.SetDefault("shaders.hot_reload", d.Shaders.HotReload)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.console", d.Log.Console)
	v.SetDefault("log.file", d.Log.File)
}

// Validate rejects settings no render target could be built from.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	sizes := []struct {
		key string
		val int
	}{
		{"shadow.size", c.Shadow.Size},
		{"ibl.environment_size", c.IBL.EnvironmentSize},
		{"ibl.irradiance_size", c.IBL.IrradianceSize},
		{"ibl.prefilter_size", c.IBL.PrefilterSize},
		{"ibl.brdf_size", c.IBL.BRDFSize},
	}
	for _, s := range sizes {
		if s.val <= 0 {
			return fmt.Errorf("config: %s must be positive, got %d", s.key, s.val)
		}
	}
	if limit := MaxMipLevels(c.IBL.PrefilterSize); c.IBL.PrefilterLevels < 1 || c.IBL.PrefilterLevels > limit {
		return fmt.Errorf("config: ibl.prefilter_levels must be in [1, %d], got %d", limit, c.IBL.PrefilterLevels)
	}
	if c.Render.BlurPasses < 0 {
		return fmt.Errorf("config: render.blur_passes must not be negative, got %d", c.Render.BlurPasses)
	}
	if n := len(c.Assets.SkyboxFaces); n != 0 && n != 6 {
		return fmt.Errorf("config: assets.skybox_faces needs 6 paths, got %d", n)
	}
	for slot := range c.Assets.SphereTextures {
		if _, ok := scene.ParseTextureSlot(slot); !ok {
			return fmt.Errorf("config: assets.sphere_textures has unknown slot %q", slot)
		}
	}
	if c.Shadow.Near <= 0 || c.Shadow.Far <= c.Shadow.Near {
		return fmt.Errorf("config: shadow near/far %g/%g out of order", c.Shadow.Near, c.Shadow.Far)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("config: camera near/far %g/%g out of order", c.Camera.Near, c.Camera.Far)
	}
	if c.Render.Exposure < 0 {
		return fmt.Errorf("config: render.exposure must not be negative, got %g", c.Render.Exposure)
	}
	return nil
}

// MaxMipLevels is floor(log2(size)) + 1.
func MaxMipLevels(size int) int {
	if size <= 0 {
		return 0
	}
	return bits.Len(uint(size))
}
