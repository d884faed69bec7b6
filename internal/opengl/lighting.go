package opengl

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"

	"pbr-viewer/internal/pipeline"
	"pbr-viewer/math"
)

// LightingPass shades the model, then draws the light marker and the sky
// into whichever framebuffer is bound.
type LightingPass struct {
	lib         *ShaderLibrary
	prims       *Primitives
	model       *GPUModel
	modelMatrix math.Mat4
	ibl         IBLMaps
	shadow      *ShadowPass
	skybox      *Skybox
	markerScale float32
}

func (p *LightingPass) Draw(f *pipeline.Frame) {
	if f.Config.Gamma {
		gl.Enable(gl.FRAMEBUFFER_SRGB)
	} else {
		gl.Disable(gl.FRAMEBUFFER_SRGB)
	}
	gl.ClearColor(0.1, 0.1, 0.1, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	p.drawModel(f)
	p.drawLight(f)
	p.skybox.Draw(&p.lib.skybox, p.prims.Cube, f.Camera.View)
}

func (p *LightingPass) drawModel(f *pipeline.Frame) {
	prog := &p.lib.pbr
	if !prog.ready() {
		return
	}
	prog.use()
	prog.SetModel(p.modelMatrix)
	prog.SetNormalMatrix(p.modelMatrix.NormalMatrix())
	prog.SetViewPos(f.Camera.Position)
	prog.SetLightPos(f.Light.Position)
	prog.SetLightColor(f.Light.Color)
	prog.SetShadows(f.Config.Shadows)
	prog.SetFarPlane(p.shadow.FarPlane())
	prog.SetParallax(f.Config.Parallax)
	prog.SetHeightScale(f.Config.HeightScale)
	prog.SetMaxReflectionLod(p.ibl.MaxReflectionLod())

	bindUnit(unitShadow, gl.TEXTURE_CUBE_MAP, p.shadow.DepthCubemap())
	bindUnit(unitIrradiance, gl.TEXTURE_CUBE_MAP, p.ibl.Irradiance)
	bindUnit(unitPrefilter, gl.TEXTURE_CUBE_MAP, p.ibl.Prefilter)
	bindUnit(unitBRDF, gl.TEXTURE_2D, p.ibl.BRDF)

	p.model.Draw(true)
}

func (p *LightingPass) drawLight(f *pipeline.Frame) {
	prog := &p.lib.light
	if !prog.ready() {
		return
	}
	scale := math.Vec3{X: p.markerScale, Y: p.markerScale, Z: p.markerScale}
	prog.use()
	prog.SetModel(math.Mat4Scale(scale).Mul(math.Mat4Translation(f.Light.Position)))
	prog.SetColor(f.Light.Color)
	p.prims.Cube.Draw()
}

func bindUnit(unit int, target, tex uint32) {
	gl.ActiveTexture(uint32(gl.TEXTURE0 + unit))
	gl.BindTexture(target, tex)
}
