// Package renderer assembles the viewer: window, GPU passes, camera and the
// frame driver.
package renderer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"pbr-viewer/internal/config"
	"pbr-viewer/internal/logging"
	"pbr-viewer/internal/opengl"
	"pbr-viewer/internal/pipeline"
	"pbr-viewer/platform"
	"pbr-viewer/scene"
)

// RenderEngine owns every long-lived object of a viewer session.
type RenderEngine struct {
	window *platform.Window
	gpu    *opengl.Renderer
	driver *pipeline.Driver
	log    zerolog.Logger
}

// cameraViewer adapts the fly camera to the driver.
type cameraViewer struct {
	ctl *scene.CameraController
}

func (v cameraViewer) Update(dt float32) { v.ctl.Update(dt) }

func (v cameraViewer) State(aspect float32) pipeline.CameraState {
	cam := v.ctl.Camera
	return pipeline.CameraState{
		View:       cam.ViewMatrix(),
		Projection: cam.ProjectionMatrix(aspect),
		Position:   cam.Position,
	}
}

// NewRenderEngine opens the window, loads assets and precomputes lighting.
// Asset failures are logged; window, GL and environment failures are
// returned.
func NewRenderEngine(cfg *config.Config, logs *logging.Logger) (*RenderEngine, error) {
	log := logs.Component("engine")

	window, err := platform.NewWindow(platform.WindowConfig{
		Width:         cfg.Window.Width,
		Height:        cfg.Window.Height,
		Title:         cfg.Window.Title,
		VSync:         cfg.Window.VSync,
		CaptureCursor: cfg.Window.CaptureCursor,
	})
	if err != nil {
		return nil, fmt.Errorf("window: %w", err)
	}
	if err := opengl.Init(log); err != nil {
		window.Destroy()
		return nil, err
	}

	model, err := scene.LoadModel(cfg.Assets.Model, logs.Component("assets"))
	if err != nil {
		log.Error().Err(err).Str("path", cfg.Assets.Model).Msg("model failed to load")
	} else {
		log.Info().Str("model", model.Name).Int("meshes", len(model.Meshes)).
			Int("triangles", model.Triangles()).Msg("model loaded")
	}

	width, height := window.FramebufferSize()
	gpu, err := opengl.NewRenderer(opengl.RendererOptions{
		Width:           width,
		Height:          height,
		ShaderDir:       cfg.Shaders.Dir,
		HotReload:       cfg.Shaders.HotReload,
		Model:           model,
		FallbackSphere:  cfg.Assets.FallbackSphere,
		ModelTransform:  cfg.ModelTransform(),
		MarkerScale:     cfg.Light.MarkerScale,
		SphereTextures:  cfg.SphereTextures(),
		EnvironmentPath: cfg.Assets.Environment,
		SkyboxFaces:     cfg.SkyboxFaces(),
		IBL:             cfg.IBLSettings(),
		Shadow:          cfg.ShadowSettings(),
	}, logs.Component("renderer"))
	if err != nil {
		window.Destroy()
		return nil, err
	}

	camera := scene.NewCamera(cfg.CameraConfig())
	viewer := cameraViewer{ctl: scene.NewCameraController(camera, window, platform.DefaultMoveKeys())}

	e := &RenderEngine{window: window, gpu: gpu, log: log}
	e.driver = pipeline.NewDriver(pipeline.DriverOptions{
		Platform:     window,
		Input:        window,
		Passes:       gpu,
		Viewer:       viewer,
		Controls:     pipeline.NewControls(platform.DefaultBindings(), logs.Component("controls")),
		Toggles:      pipeline.NewToggles(cfg.RenderDefaults()),
		Orbit:        cfg.LightOrbit(),
		LightColor:   cfg.LightColor(),
		Logger:       logs.Component("driver"),
		OnFrameStart: gpu.ProcessReloads,
		OnShutdown:   gpu.Destroy,
	})
	return e, nil
}

// Run drives frames until the window closes or ctx is cancelled, then
// releases the GPU and the window.
func (e *RenderEngine) Run(ctx context.Context) error {
	defer e.window.Destroy()
	return e.driver.Run(ctx)
}
