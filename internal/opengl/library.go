package opengl

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/rs/zerolog"

	"pbr-viewer/internal/shaderwatch"
)

// ShaderLibrary owns every program the viewer draws with. Sources come from
// the built-in table unless the override directory holds a file of the same
// name.
type ShaderLibrary struct {
	pbr        pbrProgram
	light      lightProgram
	skybox     skyboxProgram
	depth      depthProgram
	equirect   captureProgram
	irradiance captureProgram
	prefilter  captureProgram
	brdf       brdfProgram
	blur       blurProgram
	composite  compositeProgram

	dir     string
	log     zerolog.Logger
	shaders []shader
	watcher *shaderwatch.Watcher
}

// NewShaderLibrary builds every program. A program that fails to build is
// logged and left with id 0; the rest of the library stays usable.
func NewShaderLibrary(dir string, log zerolog.Logger) *ShaderLibrary {
	l := &ShaderLibrary{dir: dir, log: log}

	l.pbr.program = program{name: "pbr", vert: "pbr.vs", frag: "pbr.fs"}
	l.light.program = program{name: "light", vert: "light.vs", frag: "light.fs"}
	l.skybox.program = program{name: "skybox", vert: "skybox.vs", frag: "skybox.fs"}
	l.depth.program = program{name: "shadow_depth", vert: "shadow_depth.vs", geom: "shadow_depth.gs", frag: "shadow_depth.fs"}
	l.equirect.program = program{name: "equirect", vert: "cubemap.vs", frag: "equirect.fs"}
	l.irradiance.program = program{name: "irradiance", vert: "cubemap.vs", frag: "irradiance.fs"}
	l.prefilter.program = program{name: "prefilter", vert: "cubemap.vs", frag: "prefilter.fs"}
	l.brdf.program = program{name: "brdf", vert: "quad.vs", frag: "brdf.fs"}
	l.blur.program = program{name: "blur", vert: "quad.vs", frag: "blur.fs"}
	l.composite.program = program{name: "composite", vert: "quad.vs", frag: "composite.fs"}

	l.shaders = []shader{
		&l.pbr, &l.light, &l.skybox, &l.depth,
		&l.equirect, &l.irradiance, &l.prefilter, &l.brdf,
		&l.blur, &l.composite,
	}
	for _, s := range l.shaders {
		l.build(s)
	}
	return l
}

// source returns the override file when present, else the built-in text.
func (l *ShaderLibrary) source(file string) string {
	if file == "" {
		return ""
	}
	if l.dir != "" {
		data, err := os.ReadFile(filepath.Join(l.dir, file))
		switch {
		case err == nil:
			src := string(data)
			if !strings.HasSuffix(src, "\x00") {
				src += "\x00"
			}
			return src
		case !errors.Is(err, os.ErrNotExist):
			l.log.Warn().Err(err).Str("file", file).Msg("shader override unreadable, using built-in")
		}
	}
	return builtinShaders[file]
}

// build (re)links s. On failure the previous program, if any, stays live.
func (l *ShaderLibrary) build(s shader) bool {
	p := s.base()
	id, err := newProgram(l.source(p.vert), l.source(p.geom), l.source(p.frag))
	if err != nil {
		ev := l.log.Error().Str("program", p.name)
		var se *stageError
		if errors.As(err, &se) {
			ev = ev.Str("stage", se.stage).Str("info_log", strings.TrimRight(se.log, "\x00\n "))
		} else {
			ev = ev.Err(err)
		}
		ev.Msg("shader build failed")
		return false
	}
	if p.id != 0 {
		gl.DeleteProgram(p.id)
	}
	p.id = id
	s.locate()
	l.log.Debug().Str("program", p.name).Uint32("id", id).Msg("shader built")
	return true
}

// Reload rebuilds every program that reads file and returns the names of
// the ones rebuilt.
func (l *ShaderLibrary) Reload(file string) []string {
	var rebuilt []string
	for _, s := range l.shaders {
		p := s.base()
		if !slices.Contains(p.sources(), file) {
			continue
		}
		if l.build(s) {
			rebuilt = append(rebuilt, p.name)
		}
	}
	if len(rebuilt) > 0 {
		l.log.Info().Str("file", file).Strs("programs", rebuilt).Msg("shaders reloaded")
	}
	return rebuilt
}

// Watch starts hot reload on the override directory.
func (l *ShaderLibrary) Watch() error {
	if l.dir == "" || l.watcher != nil {
		return nil
	}
	w, err := shaderwatch.New(l.dir, l.log)
	if err != nil {
		return err
	}
	l.watcher = w
	return nil
}

// ProcessReloads applies queued file edits. Call it on the GL thread at the
// start of a frame; it never blocks.
func (l *ShaderLibrary) ProcessReloads() {
	if l.watcher == nil {
		return
	}
	for _, file := range l.watcher.Drain() {
		l.Reload(file)
	}
}

// Failed lists programs that have never built.
func (l *ShaderLibrary) Failed() []string {
	var names []string
	for _, s := range l.shaders {
		if p := s.base(); p.id == 0 {
			names = append(names, p.name)
		}
	}
	return names
}

func (l *ShaderLibrary) Destroy() {
	if l.watcher != nil {
		if err := l.watcher.Close(); err != nil {
			l.log.Warn().Err(err).Msg("shader watcher close")
		}
		l.watcher = nil
	}
	for _, s := range l.shaders {
		p := s.base()
		if p.id != 0 {
			gl.DeleteProgram(p.id)
			p.id = 0
		}
	}
}
