package scene

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/rs/zerolog"

	"pbr-viewer/core"
	"pbr-viewer/math"
)

// LoadGLTF opens a .glb or .gltf file and flattens the default scene into
// model-space meshes: each node's world transform is baked into its vertices.
// Metallic-roughness materials map onto the six PBR slots; the packed
// metallic-roughness image is split into separate single-channel textures.
func LoadGLTF(path string, log zerolog.Logger) ([]*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	dir := filepath.Dir(path)

	// ── 1. Images ─────────────────────────────────────────────────────────────
	images := make([]*Texture, len(doc.Textures))
	for i, gt := range doc.Textures {
		if gt.Source == nil || *gt.Source >= len(doc.Images) {
			continue
		}
		tex, err := loadGLTFImage(doc, dir, *gt.Source)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Int("image", *gt.Source).Msg("Texture failed to load at path")
			continue
		}
		images[i] = tex
	}
	image := func(idx int) *Texture {
		if idx >= 0 && idx < len(images) {
			return images[idx]
		}
		return nil
	}

	// ── 2. Materials ─────────────────────────────────────────────────────────
	matCache := make([]*Material, len(doc.Materials))
	for i, gm := range doc.Materials {
		mat := DefaultMaterial()
		mat.Name = gm.Name

		if pbr := gm.PBRMetallicRoughness; pbr != nil {
			cf := pbr.BaseColorFactorOrDefault()
			mat.Albedo = core.Color{
				R: float32(cf[0]), G: float32(cf[1]),
				B: float32(cf[2]), A: float32(cf[3]),
			}
			mat.Metallic = float32(pbr.MetallicFactorOrDefault())
			mat.Roughness = float32(pbr.RoughnessFactorOrDefault())

			if pbr.BaseColorTexture != nil {
				if tex := image(pbr.BaseColorTexture.Index); tex != nil {
					mat.Textures[SlotAlbedo] = tex.WithColorSpace(ColorSpaceSRGB)
				}
			}
			if pbr.MetallicRoughnessTexture != nil {
				if tex := image(pbr.MetallicRoughnessTexture.Index); tex != nil {
					mat.Textures[SlotMetallic], mat.Textures[SlotRoughness] =
						SplitMetallicRoughness(tex, mat.Metallic, mat.Roughness)
				}
			}
		}
		if gm.NormalTexture != nil && gm.NormalTexture.Index != nil {
			if tex := image(*gm.NormalTexture.Index); tex != nil {
				mat.Textures[SlotNormal] = tex.WithColorSpace(ColorSpaceLinear)
			}
		}
		if gm.OcclusionTexture != nil && gm.OcclusionTexture.Index != nil {
			if tex := image(*gm.OcclusionTexture.Index); tex != nil {
				mat.Textures[SlotAO] = tex.WithColorSpace(ColorSpaceLinear)
			}
		}
		matCache[i] = mat
	}

	// ── 3. Mesh primitives ────────────────────────────────────────────────────
	meshPrims := make([][]*Mesh, len(doc.Meshes))
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				log.Debug().Int("mesh", mi).Int("primitive", pi).Msg("skipping non-triangle primitive")
				continue
			}
			m, err := loadGLTFPrimitive(doc, gm.Name, pi, prim)
			if err != nil {
				log.Warn().Err(err).Int("mesh", mi).Int("primitive", pi).Msg("gltf primitive skipped")
				continue
			}
			if prim.Material != nil && *prim.Material < len(matCache) {
				m.Material = matCache[*prim.Material]
			}
			meshPrims[mi] = append(meshPrims[mi], m)
		}
	}

	// ── 4. Nodes, flattened ───────────────────────────────────────────────────
	var meshes []*Mesh
	var visit func(idx int, parent math.Mat4, depth int)
	visit = func(idx int, parent math.Mat4, depth int) {
		if idx < 0 || idx >= len(doc.Nodes) || depth > len(doc.Nodes) {
			return
		}
		gn := doc.Nodes[idx]
		world := nodeLocalMatrix(gn).Mul(parent)

		if gn.Mesh != nil && *gn.Mesh < len(meshPrims) {
			for _, prim := range meshPrims[*gn.Mesh] {
				baked := bakeTransform(prim, world)
				ComputeTangents(baked)
				meshes = append(meshes, baked)
			}
		}
		for _, child := range gn.Children {
			visit(child, world, depth+1)
		}
	}
	for _, root := range sceneRoots(doc) {
		visit(root, math.Mat4Identity(), 0)
	}

	if len(meshes) == 0 {
		return nil, fmt.Errorf("no triangle geometry found in %q", path)
	}
	return meshes, nil
}

func loadGLTFImage(doc *gltf.Document, dir string, idx int) (*Texture, error) {
	img := doc.Images[idx]
	name := img.Name
	if name == "" {
		name = fmt.Sprintf("gltf_img_%d", idx)
	}
	switch {
	case img.BufferView != nil:
		// Binary GLB: image data lives in a buffer view
		raw, err := modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
		if err != nil {
			return nil, fmt.Errorf("bufferview: %w", err)
		}
		return DecodeTextureBytes(name, raw)
	case img.IsEmbeddedResource():
		raw, err := img.MarshalData()
		if err != nil {
			return nil, fmt.Errorf("data uri: %w", err)
		}
		return DecodeTextureBytes(name, raw)
	case img.URI != "":
		return LoadTexture(filepath.Join(dir, img.URI), ColorSpaceLinear)
	}
	return nil, fmt.Errorf("image %d has no source", idx)
}

func sceneRoots(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	// No default scene: every parentless node is a root.
	hasParent := make([]bool, len(doc.Nodes))
	for _, gn := range doc.Nodes {
		for _, c := range gn.Children {
			if c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

var identityMatrix = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

func nodeLocalMatrix(gn *gltf.Node) math.Mat4 {
	if m := gn.MatrixOrDefault(); m != identityMatrix {
		return math.Mat4FromColumnMajor(m)
	}
	t := gn.TranslationOrDefault()
	r := gn.RotationOrDefault() // [x, y, z, w]
	s := gn.ScaleOrDefault()
	return math.Mat4TRS(
		math.Vec3{X: float32(t[0]), Y: float32(t[1]), Z: float32(t[2])},
		math.Quaternion{X: float32(r[0]), Y: float32(r[1]), Z: float32(r[2]), W: float32(r[3])}.Normalize(),
		math.Vec3{X: float32(s[0]), Y: float32(s[1]), Z: float32(s[2])},
	)
}

// bakeTransform copies prim with positions and normals moved into model space.
func bakeTransform(prim *Mesh, world math.Mat4) *Mesh {
	normalMatrix := world.NormalMatrix()
	vertices := make([]core.Vertex, len(prim.Vertices))
	for i, v := range prim.Vertices {
		v.Position = world.MulVec3(v.Position)
		v.Normal = normalMatrix.MulDir(v.Normal).Normalize()
		vertices[i] = v
	}
	indices := append([]uint32(nil), prim.Indices...)
	mesh := CreateMeshFromData(prim.Name, vertices, indices)
	mesh.Material = prim.Material
	return mesh
}

// loadGLTFPrimitive converts one glTF mesh primitive into a scene.Mesh.
func loadGLTFPrimitive(doc *gltf.Document, meshName string, primIdx int, prim *gltf.Primitive) (*Mesh, error) {
	name := fmt.Sprintf("%s_p%d", meshName, primIdx)
	if meshName == "" {
		name = fmt.Sprintf("prim_%d", primIdx)
	}

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	var uvs [][2]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		normals, _ = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
	}
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		uvs, _ = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
	}

	verts := make([]core.Vertex, len(positions))
	for i, p := range positions {
		v := core.Vertex{
			Position: math.Vec3{X: p[0], Y: p[1], Z: p[2]},
			Normal:   math.Vec3Up,
			Color:    core.ColorWhite,
		}
		if i < len(normals) {
			n := normals[i]
			v.Normal = math.Vec3{X: n[0], Y: n[1], Z: n[2]}
		}
		if i < len(uvs) {
			v.UV = math.Vec2{X: uvs[i][0], Y: uvs[i][1]}
		}
		verts[i] = v
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	}
	mesh := CreateMeshFromData(name, verts, indices)
	if len(normals) == 0 {
		generateNormals(mesh.Vertices, mesh.Indices)
	}
	return mesh, nil
}

// SplitMetallicRoughness unpacks the glTF packed texture (G roughness,
// B metallic) into two linear textures, each pre-multiplied by its factor.
func SplitMetallicRoughness(packed *Texture, metallicFactor, roughnessFactor float32) (metallic, roughness *Texture) {
	n := packed.Width * packed.Height
	mPix := make([]byte, n*4)
	rPix := make([]byte, n*4)
	for i := 0; i < n; i++ {
		m := unorm(float32(packed.Pixels[i*4+2]) / 255 * metallicFactor)
		r := unorm(float32(packed.Pixels[i*4+1]) / 255 * roughnessFactor)
		mPix[i*4], mPix[i*4+1], mPix[i*4+2], mPix[i*4+3] = m, m, m, 255
		rPix[i*4], rPix[i*4+1], rPix[i*4+2], rPix[i*4+3] = r, r, r, 255
	}
	metallic = &Texture{Name: packed.Name + "/metallic", Width: packed.Width, Height: packed.Height, Pixels: mPix}
	roughness = &Texture{Name: packed.Name + "/roughness", Width: packed.Width, Height: packed.Height, Pixels: rPix}
	return metallic, roughness
}
