package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"pbr-viewer/core"
	"pbr-viewer/math"
	"pbr-viewer/scene"
)

// shader is a typed program. locate runs after every successful (re)link to
// refresh uniform locations and fixed sampler units.
type shader interface {
	base() *program
	locate()
}

// Texture units outside the material range.
const (
	unitShadow     = 8
	unitIrradiance = 9
	unitPrefilter  = 10
	unitBRDF       = 11
)

// ── depth ────────────────────────────────────────────────────────────────────

// depthProgram renders all six shadow faces in one draw via gl_Layer.
type depthProgram struct {
	program
	shadowMatricesLoc [math.CubeFaceCount]int32
	farPlaneLoc       int32
	lightPosLoc       int32
	modelLoc          int32
}

func (p *depthProgram) locate() {
	for f := range p.shadowMatricesLoc {
		p.shadowMatricesLoc[f] = p.uniform(fmt.Sprintf("shadowMatrices[%d]", f))
	}
	p.farPlaneLoc = p.uniform("far_plane")
	p.lightPosLoc = p.uniform("lightPos")
	p.modelLoc = p.uniform("model")
}

func (p *depthProgram) SetShadowMatrices(m [math.CubeFaceCount]math.Mat4) {
	for f := range m {
		setMat4(p.shadowMatricesLoc[f], m[f])
	}
}

func (p *depthProgram) SetFarPlane(far float32) { gl.Uniform1f(p.farPlaneLoc, far) }
func (p *depthProgram) SetLightPos(pos math.Vec3) { setVec3(p.lightPosLoc, pos) }
func (p *depthProgram) SetModel(model math.Mat4) { setMat4(p.modelLoc, model) }

// ── pbr ──────────────────────────────────────────────────────────────────────

type pbrProgram struct {
	program
	modelLoc            int32
	normalMatrixLoc     int32
	viewPosLoc          int32
	viewPosWorldLoc     int32
	lightPosLoc         int32
	lightPosWorldLoc    int32
	lightColorLoc       int32
	shadowsLoc          int32
	farPlaneLoc         int32
	parallaxLoc         int32
	heightScaleLoc      int32
	maxReflectionLodLoc int32
}

func (p *pbrProgram) locate() {
	p.usesMatrices()
	p.modelLoc = p.uniform("model")
	p.normalMatrixLoc = p.uniform("normalMatrix")
	p.viewPosLoc = p.uniform("viewPos")
	p.viewPosWorldLoc = p.uniform("viewPos_world")
	p.lightPosLoc = p.uniform("lightPos")
	p.lightPosWorldLoc = p.uniform("pointLights[0].position_world")
	p.lightColorLoc = p.uniform("pointLights[0].color")
	p.shadowsLoc = p.uniform("shadows")
	p.farPlaneLoc = p.uniform("far_plane")
	p.parallaxLoc = p.uniform("parallax")
	p.heightScaleLoc = p.uniform("height_scale")
	p.maxReflectionLodLoc = p.uniform("maxReflectionLod")

	p.use()
	for slot := scene.SlotAlbedo; slot < scene.SlotCount; slot++ {
		p.sampler(slot.Sampler(), int32(slot))
	}
	p.sampler("shadowMap", unitShadow)
	p.sampler("irradianceMap", unitIrradiance)
	p.sampler("prefilterMap", unitPrefilter)
	p.sampler("brdfLUT", unitBRDF)
}

func (p *pbrProgram) SetModel(model math.Mat4) {
	setMat4(p.modelLoc, model)
}

func (p *pbrProgram) SetNormalMatrix(m math.Mat4) {
	setMat4(p.normalMatrixLoc, m)
}

// SetViewPos feeds both the tangent-space and world-space camera inputs.
func (p *pbrProgram) SetViewPos(pos math.Vec3) {
	setVec3(p.viewPosLoc, pos)
	setVec3(p.viewPosWorldLoc, pos)
}

func (p *pbrProgram) SetLightPos(pos math.Vec3) {
	setVec3(p.lightPosLoc, pos)
	setVec3(p.lightPosWorldLoc, pos)
}

func (p *pbrProgram) SetLightColor(c core.Color) {
	gl.Uniform3f(p.lightColorLoc, c.R, c.G, c.B)
}

func (p *pbrProgram) SetShadows(on bool) { setBool(p.shadowsLoc, on) }
func (p *pbrProgram) SetFarPlane(far float32) { gl.Uniform1f(p.farPlaneLoc, far) }
func (p *pbrProgram) SetParallax(on bool) { setBool(p.parallaxLoc, on) }
func (p *pbrProgram) SetHeightScale(scale float32) { gl.Uniform1f(p.heightScaleLoc, scale) }
func (p *pbrProgram) SetMaxReflectionLod(lod float32) { gl.Uniform1f(p.maxReflectionLodLoc, lod) }

// ── light marker ─────────────────────────────────────────────────────────────

type lightProgram struct {
	program
	modelLoc int32
	colorLoc int32
}

func (p *lightProgram) locate() {
	p.usesMatrices()
	p.modelLoc = p.uniform("model")
	p.colorLoc = p.uniform("lightColor")
}

func (p *lightProgram) SetModel(model math.Mat4) { setMat4(p.modelLoc, model) }

func (p *lightProgram) SetColor(c core.Color) {
	gl.Uniform3f(p.colorLoc, c.R, c.G, c.B)
}

// ── skybox ───────────────────────────────────────────────────────────────────

type skyboxProgram struct {
	program
	viewLoc int32
}

func (p *skyboxProgram) locate() {
	p.usesMatrices()
	p.viewLoc = p.uniform("view")
	p.use()
	p.sampler("environmentMap", 0)
}

// SetView strips translation so the sky stays centred on the camera.
func (p *skyboxProgram) SetView(view math.Mat4) {
	setMat4(p.viewLoc, view.Rotation())
}

// ── cubemap capture ──────────────────────────────────────────────────────────

// captureProgram serves the equirectangular, irradiance and prefilter
// stages; they share cubemap.vs and differ in the fragment stage.
type captureProgram struct {
	program
	projectionLoc int32
	viewLoc       int32
	roughnessLoc  int32
	resolutionLoc int32
}

func (p *captureProgram) locate() {
	p.projectionLoc = p.uniform("projection")
	p.viewLoc = p.uniform("view")
	p.roughnessLoc = p.uniform("roughness")
	p.resolutionLoc = p.uniform("resolution")
	p.use()
	p.sampler("equirectangularMap", 0)
	p.sampler("environmentMap", 0)
}

func (p *captureProgram) SetProjection(m math.Mat4) { setMat4(p.projectionLoc, m) }
func (p *captureProgram) SetView(m math.Mat4) { setMat4(p.viewLoc, m) }
func (p *captureProgram) SetRoughness(r float32) { gl.Uniform1f(p.roughnessLoc, r) }
func (p *captureProgram) SetResolution(size float32) { gl.Uniform1f(p.resolutionLoc, size) }

// ── brdf ─────────────────────────────────────────────────────────────────────

type brdfProgram struct {
	program
}

func (p *brdfProgram) locate() {}

// ── blur ─────────────────────────────────────────────────────────────────────

type blurProgram struct {
	program
	horizontalLoc int32
}

func (p *blurProgram) locate() {
	p.horizontalLoc = p.uniform("horizontal")
	p.use()
	p.sampler("image", 0)
}

func (p *blurProgram) SetHorizontal(h bool) { setBool(p.horizontalLoc, h) }

// ── composite ────────────────────────────────────────────────────────────────

type compositeProgram struct {
	program
	bloomLoc    int32
	exposureLoc int32
}

func (p *compositeProgram) locate() {
	p.bloomLoc = p.uniform("bloom")
	p.exposureLoc = p.uniform("exposure")
	p.use()
	p.sampler("scene", 0)
	p.sampler("bloomBlur", 1)
}

func (p *compositeProgram) SetBloom(on bool) { setBool(p.bloomLoc, on) }
func (p *compositeProgram) SetExposure(exp float32) { gl.Uniform1f(p.exposureLoc, exp) }
