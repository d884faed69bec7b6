package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/rs/zerolog"

	"pbr-viewer/internal/pipeline"
	"pbr-viewer/math"
	"pbr-viewer/scene"
)

// RendererOptions is everything the GPU side needs at startup.
type RendererOptions struct {
	Width, Height int32

	ShaderDir string
	HotReload bool

	// Model may be nil or empty; FallbackSphere then draws the unit sphere.
	Model          *scene.Model
	FallbackSphere bool
	ModelTransform pipeline.ModelTransform
	MarkerScale    float32
	// SphereTextures overrides material slots of the fallback sphere.
	SphereTextures map[scene.TextureSlot]string

	EnvironmentPath string
	// SkyboxFaces, when non-nil, replaces the captured environment as the
	// visible sky.
	SkyboxFaces *[math.CubeFaceCount]string

	IBL    pipeline.IBLSettings
	Shadow pipeline.ShadowSettings
}

// Renderer implements pipeline.Passes on OpenGL 4.1.
type Renderer struct {
	lib      *ShaderLibrary
	prims    *Primitives
	matrices *MatricesBlock
	ibl      IBLMaps
	shadow   *ShadowPass
	lighting *LightingPass
	post     *PostProcess
	model    *GPUModel
	skybox   *Skybox

	modelMatrix   math.Mat4
	width, height int32
	projection    math.Mat4
	log           zerolog.Logger
}

var _ pipeline.Passes = (*Renderer)(nil)

// NewRenderer builds programs, bakes IBL and allocates every target. The GL
// context must be current and Init must have run.
func NewRenderer(opts RendererOptions, log zerolog.Logger) (r *Renderer, err error) {
	r = &Renderer{
		width:       opts.Width,
		height:      opts.Height,
		modelMatrix: opts.ModelTransform.Matrix(),
		log:         log,
	}
	defer func() {
		if err != nil {
			r.Destroy()
			r = nil
		}
	}()

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.TEXTURE_CUBE_MAP_SEAMLESS)

	r.lib = NewShaderLibrary(opts.ShaderDir, log.With().Str("component", "shaders").Logger())
	if failed := r.lib.Failed(); len(failed) > 0 {
		log.Warn().Strs("programs", failed).Msg("continuing with unbuilt programs")
	}
	if opts.HotReload {
		if werr := r.lib.Watch(); werr != nil {
			log.Warn().Err(werr).Msg("shader hot reload disabled")
		}
	}
	r.prims = NewPrimitives()
	r.matrices = NewMatricesBlock()

	if err = r.bakeIBL(opts, log.With().Str("component", "ibl").Logger()); err != nil {
		return r, err
	}

	if r.shadow, err = NewShadowPass(opts.Shadow); err != nil {
		return r, fmt.Errorf("shadow target: %w", err)
	}
	if r.post, err = NewPostProcess(r.lib, r.prims, int(opts.Width), int(opts.Height)); err != nil {
		return r, fmt.Errorf("post targets: %w", err)
	}

	switch {
	case !opts.Model.Empty():
		r.model = NewGPUModel(opts.Model, log)
	case opts.FallbackSphere:
		log.Warn().Msg("no model, drawing fallback sphere")
		r.model = NewGPUModelFromMesh("sphere", r.prims.Sphere, opts.SphereTextures, log)
	default:
		r.model = &GPUModel{}
	}

	r.skybox = NewCapturedSkybox(r.ibl.Environment)
	if opts.SkyboxFaces != nil {
		r.skybox = NewFaceSkybox(LoadCubemap(*opts.SkyboxFaces, log))
	}

	r.lighting = &LightingPass{
		lib:         r.lib,
		prims:       r.prims,
		model:       r.model,
		modelMatrix: r.modelMatrix,
		ibl:         r.ibl,
		shadow:      r.shadow,
		skybox:      r.skybox,
		markerScale: opts.MarkerScale,
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, opts.Width, opts.Height)
	log.Info().Int32("width", opts.Width).Int32("height", opts.Height).Msg("renderer ready")
	return r, nil
}

func (r *Renderer) bakeIBL(opts RendererOptions, log zerolog.Logger) error {
	equirect, err := LoadHDRTexture(opts.EnvironmentPath, log)
	if err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	defer DeleteTexture(&equirect)

	baker, err := NewIBLBaker(r.lib, r.prims, equirect, opts.IBL, log)
	if err != nil {
		return fmt.Errorf("capture target: %w", err)
	}
	defer baker.Destroy()

	if err := pipeline.PrecomputeIBL(baker, opts.IBL, log); err != nil {
		return err
	}
	r.ibl = baker.Maps()
	log.Info().
		Int("environment", opts.IBL.EnvironmentSize).
		Int("irradiance", opts.IBL.IrradianceSize).
		Int("prefilter_levels", r.ibl.PrefilterLevels).
		Msg("ibl baked")
	return nil
}

// ProcessReloads applies pending shader edits; run it at frame start.
func (r *Renderer) ProcessReloads() {
	r.lib.ProcessReloads()
}

// ── pipeline.Passes ──────────────────────────────────────────────────────────

// Resize reallocates the window-sized targets.
func (r *Renderer) Resize(width, height int32) error {
	if width == r.width && height == r.height {
		return nil
	}
	if err := r.post.Resize(int(width), int(height)); err != nil {
		return err
	}
	r.width, r.height = width, height
	r.log.Debug().Int32("width", width).Int32("height", height).Msg("targets resized")
	return nil
}

func (r *Renderer) Shadow(f *pipeline.Frame) {
	r.shadow.Render(&r.lib.depth, f.Light.Position, r.model, r.modelMatrix)
}

// UpdateView uploads the frame's camera. The projection is rewritten only
// when zoom or aspect changed it.
func (r *Renderer) UpdateView(f *pipeline.Frame) {
	if f.Camera.Projection != r.projection {
		r.matrices.SetProjection(f.Camera.Projection)
		r.projection = f.Camera.Projection
	}
	r.matrices.SetView(f.Camera.View)
}

func (r *Renderer) Lighting(f *pipeline.Frame, dst pipeline.Destination) {
	if dst == pipeline.TargetHDR {
		r.post.BindScene()
	} else {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.Viewport(0, 0, f.ViewportWidth, f.ViewportHeight)
	}
	r.lighting.Draw(f)
}

func (r *Renderer) Blur(_ *pipeline.Frame, step pipeline.BlurStep) {
	r.post.Blur(step)
}

func (r *Renderer) Composite(f *pipeline.Frame, bloom pipeline.BlurSource) {
	r.post.Composite(f, bloom)
}

// Destroy releases every GPU resource. Safe on a partially built renderer.
func (r *Renderer) Destroy() {
	if r.model != nil {
		r.model.Destroy()
	}
	if r.skybox != nil {
		r.skybox.Destroy()
	}
	if r.post != nil {
		r.post.Destroy()
	}
	if r.shadow != nil {
		r.shadow.Destroy()
	}
	r.ibl.Destroy()
	if r.matrices != nil {
		r.matrices.Destroy()
	}
	if r.prims != nil {
		r.prims.Destroy()
	}
	if r.lib != nil {
		r.lib.Destroy()
	}
	r.log.Info().Msg("GPU resources released")
}
