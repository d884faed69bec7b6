package opengl

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/rs/zerolog"

	"pbr-viewer/internal/pipeline"
	"pbr-viewer/math"
)

// IBLMaps are the precomputed image-based lighting inputs.
type IBLMaps struct {
	Environment     uint32 // mipmapped radiance cubemap
	Irradiance      uint32 // diffuse convolution
	Prefilter       uint32 // specular, roughness per mip
	BRDF            uint32 // RG16F split-sum LUT
	PrefilterLevels int
}

// MaxReflectionLod is the prefilter mip sampled at roughness 1.
func (m IBLMaps) MaxReflectionLod() float32 {
	if m.PrefilterLevels <= 1 {
		return 0
	}
	return float32(m.PrefilterLevels - 1)
}

func (m *IBLMaps) Destroy() {
	DeleteTexture(&m.Environment)
	DeleteTexture(&m.Irradiance)
	DeleteTexture(&m.Prefilter)
	DeleteTexture(&m.BRDF)
}

// IBLBaker renders the four precomputation stages through one capture
// target whose colour attachment is swapped per face and mip.
type IBLBaker struct {
	lib      *ShaderLibrary
	cube     *GPUMesh
	quad     *GPUMesh
	capture  *RenderTarget
	equirect uint32

	projection math.Mat4
	views      [math.CubeFaceCount]math.Mat4
	envSize    int
	maps       IBLMaps
	log        zerolog.Logger
}

// NewIBLBaker prepares a capture target for the equirectangular HDR texture
// equirect.
func NewIBLBaker(lib *ShaderLibrary, prims *Primitives, equirect uint32, s pipeline.IBLSettings, log zerolog.Logger) (*IBLBaker, error) {
	capture, err := NewRenderTarget(pipeline.CaptureSpec(s.EnvironmentSize))
	if err != nil {
		return nil, err
	}
	return &IBLBaker{
		lib:        lib,
		cube:       prims.Cube,
		quad:       prims.Quad,
		capture:    capture,
		equirect:   equirect,
		projection: math.Mat4Perspective(math.Radians(90), 1, 0.1, 10),
		views:      math.CaptureViews(math.Vec3{}),
		envSize:    s.EnvironmentSize,
		log:        log,
	}, nil
}

// Maps hands over the baked textures; the baker no longer tracks them.
func (b *IBLBaker) Maps() IBLMaps {
	m := b.maps
	b.maps = IBLMaps{}
	return m
}

// CaptureEnvironment projects the equirectangular map onto a cubemap and
// builds its mip chain.
func (b *IBLBaker) CaptureEnvironment(size int) error {
	prog := &b.lib.equirect
	b.maps.Environment = newCubemap(size, true)
	if !prog.ready() {
		return pipeline.ErrStageSkipped
	}

	prog.use()
	prog.SetProjection(b.projection)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, b.equirect)
	if err := b.renderFaces(prog, b.maps.Environment, size, 0); err != nil {
		return err
	}

	gl.BindTexture(gl.TEXTURE_CUBE_MAP, b.maps.Environment)
	gl.GenerateMipmap(gl.TEXTURE_CUBE_MAP)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return nil
}

// ConvolveIrradiance integrates the environment over the hemisphere.
func (b *IBLBaker) ConvolveIrradiance(size int) error {
	prog := &b.lib.irradiance
	b.maps.Irradiance = newCubemap(size, false)
	if !prog.ready() {
		return pipeline.ErrStageSkipped
	}

	prog.use()
	prog.SetProjection(b.projection)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, b.maps.Environment)
	return b.renderFaces(prog, b.maps.Irradiance, size, 0)
}

// PrefilterLevel renders one roughness level into the prefiltered cubemap,
// allocated at the first level's size.
func (b *IBLBaker) PrefilterLevel(level pipeline.MipLevel) error {
	prog := &b.lib.prefilter
	if b.maps.Prefilter == 0 {
		b.maps.Prefilter = newCubemap(level.Size, true)
	}
	if level.Level+1 > b.maps.PrefilterLevels {
		b.maps.PrefilterLevels = level.Level + 1
	}
	if !prog.ready() {
		return pipeline.ErrStageSkipped
	}
	b.log.Debug().Int("mip", level.Level).Int("size", level.Size).Float32("roughness", level.Roughness).Msg("prefilter level")

	prog.use()
	prog.SetProjection(b.projection)
	prog.SetRoughness(level.Roughness)
	prog.SetResolution(float32(b.envSize))
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, b.maps.Environment)
	return b.renderFaces(prog, b.maps.Prefilter, level.Size, int32(level.Level))
}

// IntegrateBRDF fills the split-sum lookup table.
func (b *IBLBaker) IntegrateBRDF(size int) error {
	prog := &b.lib.brdf
	gl.GenTextures(1, &b.maps.BRDF)
	gl.BindTexture(gl.TEXTURE_2D, b.maps.BRDF)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RG16F, int32(size), int32(size), 0, gl.RG, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	if !prog.ready() {
		return pipeline.ErrStageSkipped
	}

	if err := b.capture.Resize(size, size); err != nil {
		return err
	}
	b.capture.Bind()
	defer gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	b.capture.AttachTexture(pipeline.Color0, b.maps.BRDF)
	if err := b.capture.CheckComplete(); err != nil {
		return err
	}

	prog.use()
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	b.quad.Draw()
	return nil
}

// renderFaces draws the cube once per face into cubemap at mip.
func (b *IBLBaker) renderFaces(prog *captureProgram, cubemap uint32, size int, mip int32) error {
	if err := b.capture.Resize(size, size); err != nil {
		return err
	}
	b.capture.Bind()
	defer gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	for f, view := range b.views {
		b.capture.AttachCubeFace(pipeline.Color0, cubemap, math.CubeFace(f), mip)
		if f == 0 {
			if err := b.capture.CheckComplete(); err != nil {
				return err
			}
		}
		prog.SetView(view)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		b.cube.Draw()
	}
	return nil
}

// Destroy frees the capture target and any maps not yet handed over.
func (b *IBLBaker) Destroy() {
	b.capture.Destroy()
	b.maps.Destroy()
}

// newCubemap allocates an RGB16F cubemap. Mipmapped cubemaps get their full
// chain allocated up front.
func newCubemap(size int, mipmapped bool) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, id)
	for f := 0; f < int(math.CubeFaceCount); f++ {
		gl.TexImage2D(uint32(gl.TEXTURE_CUBE_MAP_POSITIVE_X+f), 0, gl.RGB16F,
			int32(size), int32(size), 0, gl.RGB, gl.FLOAT, nil)
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	if mipmapped {
		gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
		gl.GenerateMipmap(gl.TEXTURE_CUBE_MAP)
	} else {
		gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	}
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return id
}
