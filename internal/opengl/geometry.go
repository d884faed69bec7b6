package opengl

import "pbr-viewer/scene"

const (
	sphereSegments = 64
	sphereRings    = 64
)

// Primitives are the shared meshes every pass draws with. They are uploaded
// once at startup.
type Primitives struct {
	Cube   *GPUMesh // ±1 cube: captures, skybox, light marker
	Quad   *GPUMesh // NDC strip: BRDF LUT, blur, composite
	Sphere *GPUMesh // unit UV sphere: fallback model
}

func NewPrimitives() *Primitives {
	return &Primitives{
		Cube:   UploadMesh(scene.CreateUnitCube()),
		Quad:   UploadMesh(scene.CreateScreenQuad()),
		Sphere: UploadMesh(scene.CreateUVSphere(sphereSegments, sphereRings)),
	}
}

func (p *Primitives) Destroy() {
	p.Cube.Destroy()
	p.Quad.Destroy()
	p.Sphere.Destroy()
}
