package opengl

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"

	"pbr-viewer/math"
)

// matricesBinding is the uniform-buffer binding point of the Matrices block.
const matricesBinding = 0

const mat4Size = 16 * 4

// MatricesBlock is the std140 camera block shared by every program that
// declares `uniform Matrices { mat4 projection; mat4 view; }`.
type MatricesBlock struct {
	UBO uint32
}

func NewMatricesBlock() *MatricesBlock {
	b := &MatricesBlock{}
	gl.GenBuffers(1, &b.UBO)
	gl.BindBuffer(gl.UNIFORM_BUFFER, b.UBO)
	gl.BufferData(gl.UNIFORM_BUFFER, 2*mat4Size, nil, gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
	gl.BindBufferRange(gl.UNIFORM_BUFFER, matricesBinding, b.UBO, 0, 2*mat4Size)
	return b
}

func (b *MatricesBlock) SetProjection(m math.Mat4) {
	b.write(0, m)
}

func (b *MatricesBlock) SetView(m math.Mat4) {
	b.write(mat4Size, m)
}

func (b *MatricesBlock) write(offset int, m math.Mat4) {
	gl.BindBuffer(gl.UNIFORM_BUFFER, b.UBO)
	gl.BufferSubData(gl.UNIFORM_BUFFER, offset, mat4Size, gl.Ptr(m.Ptr()))
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
}

func (b *MatricesBlock) Destroy() {
	if b.UBO != 0 {
		gl.DeleteBuffers(1, &b.UBO)
		b.UBO = 0
	}
}
