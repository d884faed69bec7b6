package scene

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"pbr-viewer/core"
	remath "pbr-viewer/math"
)

// objFace is an already-triangulated face (three vertex references).
type objFace struct {
	vIdx, vtIdx, vnIdx [3]int // 0-based position / UV / normal indices (-1 = absent)
}

type objVertexRef struct{ v, vt, vn int }

// LoadOBJ parses a Wavefront .obj file and returns one Mesh per object/group.
// A companion .mtl file is loaded if referenced via "mtllib". V texture
// coordinates are flipped because images upload top row first.
func LoadOBJ(path string, log zerolog.Logger) ([]*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj %q: %w", path, err)
	}
	defer f.Close()

	dir := filepath.Dir(path)

	var positions []remath.Vec3
	var normals []remath.Vec3
	var uvs []remath.Vec2

	materials := map[string]*Material{}

	type objObject struct {
		name    string
		matName string
		faces   []objFace
	}

	var objects []objObject
	cur := &objObject{name: "default"}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			if len(fields) >= 4 {
				positions = append(positions, parseVec3(fields[1:4]))
			}

		case "vn":
			if len(fields) >= 4 {
				normals = append(normals, parseVec3(fields[1:4]))
			}

		case "vt":
			if len(fields) >= 3 {
				u, _ := strconv.ParseFloat(fields[1], 32)
				v, _ := strconv.ParseFloat(fields[2], 32)
				uvs = append(uvs, remath.Vec2{X: float32(u), Y: 1 - float32(v)})
			}

		case "o", "g":
			if len(cur.faces) > 0 {
				objects = append(objects, *cur)
			}
			name := "default"
			if len(fields) > 1 {
				name = fields[1]
			}
			cur = &objObject{name: name, matName: cur.matName}

		case "usemtl":
			if len(fields) > 1 {
				// A material switch mid-object starts a new mesh.
				if len(cur.faces) > 0 && fields[1] != cur.matName {
					objects = append(objects, *cur)
					cur = &objObject{name: cur.name, matName: cur.matName}
				}
				cur.matName = fields[1]
			}

		case "mtllib":
			if len(fields) > 1 {
				mtlPath := filepath.Join(dir, strings.Join(fields[1:], " "))
				loaded, err := loadMTL(mtlPath, dir, log)
				if err != nil {
					log.Warn().Err(err).Str("path", mtlPath).Msg("material library failed to load")
				}
				for k, v := range loaded {
					materials[k] = v
				}
			}

		case "f":
			if len(fields) < 4 {
				continue
			}
			fverts := make([]objVertexRef, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				fverts = append(fverts, parseFaceVertex(tok, len(positions), len(uvs), len(normals)))
			}
			// Fan triangulation: 0-1-2, 0-2-3, 0-3-4, ...
			for i := 1; i+1 < len(fverts); i++ {
				f0, f1, f2 := fverts[0], fverts[i], fverts[i+1]
				cur.faces = append(cur.faces, objFace{
					vIdx:  [3]int{f0.v, f1.v, f2.v},
					vtIdx: [3]int{f0.vt, f1.vt, f2.vt},
					vnIdx: [3]int{f0.vn, f1.vn, f2.vn},
				})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan obj %q: %w", path, err)
	}

	if len(cur.faces) > 0 {
		objects = append(objects, *cur)
	}
	if len(objects) == 0 {
		return nil, fmt.Errorf("no geometry found in %q", path)
	}

	meshes := make([]*Mesh, 0, len(objects))
	for _, obj := range objects {
		mesh := buildMeshFromOBJ(obj.name, obj.faces, positions, normals, uvs)
		if mat, ok := materials[obj.matName]; ok {
			mesh.Material = mat
		} else {
			mesh.Material = DefaultMaterial()
		}
		ComputeTangents(mesh)
		meshes = append(meshes, mesh)
	}
	return meshes, nil
}

func parseVec3(fields []string) remath.Vec3 {
	x, _ := strconv.ParseFloat(fields[0], 32)
	y, _ := strconv.ParseFloat(fields[1], 32)
	z, _ := strconv.ParseFloat(fields[2], 32)
	return remath.Vec3{X: float32(x), Y: float32(y), Z: float32(z)}
}

// parseFaceVertex parses one face vertex token: "v", "v/vt", "v//vn", "v/vt/vn".
// Returns 0-based indices (-1 if absent); negative OBJ indices count back
// from the current end of each pool.
func parseFaceVertex(tok string, nv, nvt, nvn int) objVertexRef {
	parseIdx := func(s string, count int) int {
		if s == "" {
			return -1
		}
		n, err := strconv.Atoi(s)
		switch {
		case err != nil || n == 0:
			return -1
		case n > 0:
			return n - 1
		default:
			return count + n
		}
	}
	parts := strings.Split(tok, "/")
	res := objVertexRef{v: -1, vt: -1, vn: -1}
	res.v = parseIdx(parts[0], nv)
	if len(parts) > 1 {
		res.vt = parseIdx(parts[1], nvt)
	}
	if len(parts) > 2 {
		res.vn = parseIdx(parts[2], nvn)
	}
	return res
}

// buildMeshFromOBJ converts parsed face data into a deduplicated Mesh.
func buildMeshFromOBJ(name string, faces []objFace, positions, normals []remath.Vec3, uvs []remath.Vec2) *Mesh {
	vertMap := map[objVertexRef]uint32{}
	var vertices []core.Vertex
	var indices []uint32

	missingNormals := false
	for _, face := range faces {
		for c := 0; c < 3; c++ {
			k := objVertexRef{face.vIdx[c], face.vtIdx[c], face.vnIdx[c]}
			if idx, ok := vertMap[k]; ok {
				indices = append(indices, idx)
				continue
			}
			v := core.Vertex{Normal: remath.Vec3Up, Color: core.ColorWhite}
			if k.v >= 0 && k.v < len(positions) {
				v.Position = positions[k.v]
			}
			if k.vn >= 0 && k.vn < len(normals) {
				v.Normal = normals[k.vn]
			} else {
				missingNormals = true
			}
			if k.vt >= 0 && k.vt < len(uvs) {
				v.UV = uvs[k.vt]
			}
			idx := uint32(len(vertices))
			vertices = append(vertices, v)
			vertMap[k] = idx
			indices = append(indices, idx)
		}
	}

	if missingNormals {
		generateNormals(vertices, indices)
	}
	return CreateMeshFromData(name, vertices, indices)
}

// generateNormals computes area-weighted vertex normals.
func generateNormals(vertices []core.Vertex, indices []uint32) {
	accum := make([]remath.Vec3, len(vertices))
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		p0 := vertices[i0].Position
		n := vertices[i1].Position.Sub(p0).Cross(vertices[i2].Position.Sub(p0))
		accum[i0] = accum[i0].Add(n)
		accum[i1] = accum[i1].Add(n)
		accum[i2] = accum[i2].Add(n)
	}
	for i := range vertices {
		if accum[i].LengthSqr() > 0 {
			vertices[i].Normal = accum[i].Normalize()
		}
	}
}

// ── MTL loader ───────────────────────────────────────────────────────────────

// mtlTextureSlots maps texture statements onto PBR slots. The Pm/Pr/map_Pm/
// map_Pr keys come from the PBR extension to MTL.
var mtlTextureSlots = map[string]TextureSlot{
	"map_Kd":   SlotAlbedo,
	"map_Bump": SlotNormal,
	"map_bump": SlotNormal,
	"bump":     SlotNormal,
	"norm":     SlotNormal,
	"map_Pm":   SlotMetallic,
	"map_Pr":   SlotRoughness,
	"map_Ka":   SlotAO,
	"map_ao":   SlotAO,
	"disp":     SlotHeight,
	"map_disp": SlotHeight,
}

func loadMTL(path, dir string, log zerolog.Logger) (map[string]*Material, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mats := map[string]*Material{}
	var cur *Material

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		if fields[0] == "newmtl" {
			if len(fields) > 1 {
				cur = DefaultMaterial()
				cur.Name = fields[1]
				mats[fields[1]] = cur
			}
			continue
		}
		if cur == nil {
			continue
		}

		switch fields[0] {
		case "Kd":
			if len(fields) >= 4 {
				c := parseVec3(fields[1:4])
				cur.Albedo = core.Color{R: c.X, G: c.Y, B: c.Z, A: cur.Albedo.A}
			}
		case "d":
			if len(fields) >= 2 {
				a, _ := strconv.ParseFloat(fields[1], 32)
				cur.Albedo.A = float32(a)
			}
		case "Pm":
			if len(fields) >= 2 {
				v, _ := strconv.ParseFloat(fields[1], 32)
				cur.Metallic = float32(v)
			}
		case "Pr":
			if len(fields) >= 2 {
				v, _ := strconv.ParseFloat(fields[1], 32)
				cur.Roughness = float32(v)
			}
		default:
			slot, ok := mtlTextureSlots[fields[0]]
			if !ok || len(fields) < 2 {
				continue
			}
			// Options such as "-bm 1.0" precede the file name.
			texPath := filepath.Join(dir, fields[len(fields)-1])
			tex, err := LoadTexture(texPath, slot.ColorSpace())
			if err != nil {
				log.Warn().Err(err).Str("path", texPath).Msg("Texture failed to load at path")
				continue
			}
			cur.Textures[slot] = tex
		}
	}
	return mats, scanner.Err()
}
