package opengl

import (
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/rs/zerolog"

	"pbr-viewer/math"
)

// Init loads the GL function pointers for the current context.
func Init(log zerolog.Logger) error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	log.Info().
		Str("version", gl.GoStr(gl.GetString(gl.VERSION))).
		Str("renderer", gl.GoStr(gl.GetString(gl.RENDERER))).
		Msg("OpenGL ready")
	return nil
}

// ── Shader helpers ────────────────────────────────────────────────────────────

// stageError names the pipeline stage that rejected a program.
type stageError struct {
	stage string
	log   string
}

func (e *stageError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.stage, strings.TrimRight(e.log, "\x00\n "))
}

// newProgram compiles and links a program. geomSrc may be empty.
func newProgram(vertSrc, geomSrc, fragSrc string) (uint32, error) {
	stages := []struct {
		name  string
		src   string
		xtype uint32
	}{
		{"vertex", vertSrc, gl.VERTEX_SHADER},
		{"geometry", geomSrc, gl.GEOMETRY_SHADER},
		{"fragment", fragSrc, gl.FRAGMENT_SHADER},
	}

	var shaders []uint32
	defer func() {
		for _, s := range shaders {
			gl.DeleteShader(s)
		}
	}()
	for _, st := range stages {
		if st.src == "" {
			continue
		}
		shader, err := compileShader(st.src, st.xtype)
		if err != nil {
			return 0, &stageError{stage: st.name, log: err.Error()}
		}
		shaders = append(shaders, shader)
	}

	prog := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(prog, s)
	}
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, &stageError{stage: "link", log: log}
	}
	for _, s := range shaders {
		gl.DetachShader(prog, s)
	}
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%v", log)
	}
	return shader, nil
}

// ── program ──────────────────────────────────────────────────────────────────

// program is the state shared by every typed shader: the GL id and the
// source files it was built from. An id of 0 marks a program that failed
// to build; drawing with it is a no-op.
type program struct {
	name string
	vert string
	geom string
	frag string
	id   uint32
}

func (p *program) base() *program { return p }

func (p *program) use() { gl.UseProgram(p.id) }

func (p *program) ready() bool { return p.id != 0 }

func (p *program) uniform(name string) int32 {
	return gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
}

// sampler binds a sampler uniform to a fixed texture unit.
func (p *program) sampler(name string, unit int32) {
	gl.Uniform1i(p.uniform(name), unit)
}

// usesMatrices attaches the shared camera block to binding 0.
func (p *program) usesMatrices() {
	idx := gl.GetUniformBlockIndex(p.id, gl.Str("Matrices\x00"))
	if idx != gl.INVALID_INDEX {
		gl.UniformBlockBinding(p.id, idx, matricesBinding)
	}
}

func (p *program) sources() []string {
	out := []string{p.vert, p.frag}
	if p.geom != "" {
		out = append(out, p.geom)
	}
	return out
}

func setMat4(loc int32, m math.Mat4) {
	gl.UniformMatrix4fv(loc, 1, false, m.Ptr())
}

func setVec3(loc int32, v math.Vec3) {
	gl.Uniform3f(loc, v.X, v.Y, v.Z)
}

func setBool(loc int32, b bool) {
	var v int32
	if b {
		v = 1
	}
	gl.Uniform1i(loc, v)
}
