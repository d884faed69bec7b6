package opengl

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"

	"pbr-viewer/internal/pipeline"
)

// PostProcess owns the HDR scene target and the two blur buffers.
type PostProcess struct {
	hdr      *RenderTarget
	pingpong [2]*RenderTarget
	lib      *ShaderLibrary
	quad     *GPUMesh
}

func NewPostProcess(lib *ShaderLibrary, prims *Primitives, width, height int) (*PostProcess, error) {
	p := &PostProcess{lib: lib, quad: prims.Quad}
	var err error
	if p.hdr, err = NewRenderTarget(pipeline.HDRSceneSpec(width, height)); err != nil {
		return nil, err
	}
	for i := range p.pingpong {
		if p.pingpong[i], err = NewRenderTarget(pipeline.PingPongSpec(i, width, height)); err != nil {
			p.Destroy()
			return nil, err
		}
	}
	return p, nil
}

// Resize follows the window framebuffer.
func (p *PostProcess) Resize(width, height int) error {
	if err := p.hdr.Resize(width, height); err != nil {
		return err
	}
	for _, t := range p.pingpong {
		if err := t.Resize(width, height); err != nil {
			return err
		}
	}
	return nil
}

// BindScene makes the HDR target current for the lighting pass.
func (p *PostProcess) BindScene() {
	p.hdr.Bind()
}

func (p *PostProcess) source(src pipeline.BlurSource) uint32 {
	if src.Scene {
		return p.hdr.Texture(pipeline.Color1)
	}
	return p.pingpong[src.PingPong].Texture(pipeline.Color0)
}

// Blur runs one separable Gaussian step.
func (p *PostProcess) Blur(step pipeline.BlurStep) {
	prog := &p.lib.blur
	if !prog.ready() {
		return
	}
	p.pingpong[step.Target].Bind()
	prog.use()
	prog.SetHorizontal(step.Horizontal)
	bindUnit(0, gl.TEXTURE_2D, p.source(step.Source))
	p.quad.Draw()
}

// Composite tonemaps the scene onto the default framebuffer, adding bloom
// sampled from src.
func (p *PostProcess) Composite(f *pipeline.Frame, src pipeline.BlurSource) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, f.ViewportWidth, f.ViewportHeight)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	prog := &p.lib.composite
	if !prog.ready() {
		return
	}
	prog.use()
	prog.SetBloom(f.Config.Bloom)
	prog.SetExposure(f.Config.Exposure)
	bindUnit(0, gl.TEXTURE_2D, p.hdr.Texture(pipeline.Color0))
	bindUnit(1, gl.TEXTURE_2D, p.source(src))
	p.quad.Draw()
}

func (p *PostProcess) Destroy() {
	if p.hdr != nil {
		p.hdr.Destroy()
	}
	for _, t := range p.pingpong {
		if t != nil {
			t.Destroy()
		}
	}
}
