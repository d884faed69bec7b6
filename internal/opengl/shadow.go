package opengl

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"

	"pbr-viewer/internal/pipeline"
	"pbr-viewer/math"
)

// ShadowPass renders linear light distance into a depth cubemap in one
// layered draw.
type ShadowPass struct {
	target   *RenderTarget
	settings pipeline.ShadowSettings
}

func NewShadowPass(s pipeline.ShadowSettings) (*ShadowPass, error) {
	target, err := NewRenderTarget(pipeline.ShadowCubeSpec(s.Size))
	if err != nil {
		return nil, err
	}
	return &ShadowPass{target: target, settings: s}, nil
}

// Render draws model depth-only from light. The caller restores the viewport.
func (p *ShadowPass) Render(prog *depthProgram, light math.Vec3, model *GPUModel, modelMatrix math.Mat4) {
	p.target.Bind()
	gl.Clear(gl.DEPTH_BUFFER_BIT)
	if !prog.ready() {
		return
	}
	prog.use()
	prog.SetShadowMatrices(pipeline.ShadowTransforms(light, p.settings))
	prog.SetFarPlane(p.settings.Far)
	prog.SetLightPos(light)
	prog.SetModel(modelMatrix)
	model.Draw(false)
}

// DepthCubemap is the texture the lighting pass samples.
func (p *ShadowPass) DepthCubemap() uint32 {
	return p.target.Texture(pipeline.Depth)
}

func (p *ShadowPass) FarPlane() float32 { return p.settings.Far }

func (p *ShadowPass) Destroy() {
	p.target.Destroy()
}
