package opengl

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/rs/zerolog"

	"pbr-viewer/scene"
)

// gpuPart is one mesh with its six material textures, indexed by slot.
type gpuPart struct {
	mesh     *GPUMesh
	textures [scene.SlotCount]uint32
}

// GPUModel is an uploaded scene.Model.
type GPUModel struct {
	Name  string
	parts []gpuPart
	// owned holds each distinct texture once; meshes may share them.
	owned []uint32
	// borrowed meshes belong to Primitives.
	borrowed bool
}

// NewGPUModel uploads every mesh and its material slots. Textures that fail
// to upload are logged and replaced with the material's solid fallback.
func NewGPUModel(model *scene.Model, log zerolog.Logger) *GPUModel {
	g := &GPUModel{}
	if model.Empty() {
		return g
	}
	g.Name = model.Name

	uploaded := make(map[*scene.Texture]uint32)
	upload := func(tex *scene.Texture) uint32 {
		if id, ok := uploaded[tex]; ok {
			return id
		}
		id, err := UploadTexture(tex)
		if err != nil {
			log.Warn().Err(err).Str("texture", tex.Name).Msg("texture upload failed")
			return 0
		}
		uploaded[tex] = id
		g.owned = append(g.owned, id)
		return id
	}

	for _, mesh := range model.Meshes {
		gpu := UploadMesh(mesh)
		if gpu == nil {
			continue
		}
		part := gpuPart{mesh: gpu}
		mat := mesh.MaterialOrDefault()
		for slot := scene.SlotAlbedo; slot < scene.SlotCount; slot++ {
			id := upload(mat.Texture(slot))
			if id == 0 {
				id = upload(mat.FallbackTexture(slot))
			}
			part.textures[slot] = id
		}
		g.parts = append(g.parts, part)
	}
	log.Info().Str("model", g.Name).Int("meshes", len(g.parts)).Int("textures", len(g.owned)).Msg("model uploaded")
	return g
}

// NewGPUModelFromMesh wraps an already uploaded mesh. Slots listed in
// textures load from those files; the rest, and any file that fails to
// load, use the default material's solid fallbacks.
func NewGPUModelFromMesh(name string, mesh *GPUMesh, textures map[scene.TextureSlot]string, log zerolog.Logger) *GPUModel {
	g := &GPUModel{Name: name, borrowed: true}
	if mesh == nil {
		return g
	}
	part := gpuPart{mesh: mesh}
	mat := scene.DefaultMaterial()
	for slot := scene.SlotAlbedo; slot < scene.SlotCount; slot++ {
		var id uint32
		if path, ok := textures[slot]; ok {
			id = LoadTexture2D(path, slot.ColorSpace(), log)
		}
		if id == 0 {
			var err error
			if id, err = UploadTexture(mat.FallbackTexture(slot)); err != nil {
				log.Warn().Err(err).Str("model", name).Stringer("slot", slot).Msg("fallback texture upload failed")
			}
		}
		part.textures[slot] = id
		g.owned = append(g.owned, id)
	}
	g.parts = append(g.parts, part)
	return g
}

// Empty reports whether Draw would issue no draw calls.
func (g *GPUModel) Empty() bool {
	return g == nil || len(g.parts) == 0
}

// Draw issues one draw call per mesh. With materials the six slot textures
// bind to units 0-5; depth-only passes skip them.
func (g *GPUModel) Draw(withMaterials bool) {
	if g == nil {
		return
	}
	for _, part := range g.parts {
		if withMaterials {
			for slot, id := range part.textures {
				gl.ActiveTexture(uint32(gl.TEXTURE0 + slot))
				gl.BindTexture(gl.TEXTURE_2D, id)
			}
		}
		part.mesh.Draw()
	}
}

// Destroy frees textures, and meshes unless they were borrowed.
func (g *GPUModel) Destroy() {
	if g == nil {
		return
	}
	if !g.borrowed {
		for _, part := range g.parts {
			part.mesh.Destroy()
		}
	}
	for i := range g.owned {
		DeleteTexture(&g.owned[i])
	}
	g.parts = nil
	g.owned = nil
}
