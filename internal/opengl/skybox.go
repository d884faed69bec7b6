package opengl

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"

	"pbr-viewer/math"
)

// Skybox draws a cubemap behind the scene. The vertex stage writes depth 1
// (xyww), so the depth function is relaxed to LEQUAL for the draw.
type Skybox struct {
	Cubemap uint32
	// owned cubemaps were loaded from face images rather than captured.
	owned bool
}

// NewCapturedSkybox shows the environment cubemap baked for IBL.
func NewCapturedSkybox(environment uint32) *Skybox {
	return &Skybox{Cubemap: environment}
}

// NewFaceSkybox shows a cubemap loaded from six LDR face images.
func NewFaceSkybox(cubemap uint32) *Skybox {
	return &Skybox{Cubemap: cubemap, owned: true}
}

func (s *Skybox) Draw(prog *skyboxProgram, cube *GPUMesh, view math.Mat4) {
	if !prog.ready() || s.Cubemap == 0 {
		return
	}
	gl.DepthFunc(gl.LEQUAL)
	prog.use()
	prog.SetView(view)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, s.Cubemap)
	cube.Draw()
	gl.DepthFunc(gl.LESS)
}

// Destroy frees loaded face cubemaps; captured ones belong to IBLMaps.
func (s *Skybox) Destroy() {
	if s.owned {
		DeleteTexture(&s.Cubemap)
	}
	s.Cubemap = 0
}
