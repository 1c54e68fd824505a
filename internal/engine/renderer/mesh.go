package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/tidemirror/internal/engine/scene"
)

// Vertex attribute locations shared by every program.
const (
	attribPosition = 0
	attribUV       = 1
)

// mesh is a geometry uploaded to the GPU.
type mesh struct {
	vao, vbo, ebo uint32
	count         int32
}

// interleave packs positions and, when present, UVs into one buffer.
// stride is in floats.
func interleave(g *scene.Geometry) (data []float32, stride int) {
	n := g.VertexCount()
	hasUV := len(g.UVs) >= n*2
	stride = 3
	if hasUV {
		stride = 5
	}
	data = make([]float32, 0, n*stride)
	for i := 0; i < n; i++ {
		data = append(data, g.Positions[i*3:i*3+3]...)
		if hasUV {
			data = append(data, g.UVs[i*2:i*2+2]...)
		}
	}
	return data, stride
}

func uploadMesh(g *scene.Geometry) *mesh {
	data, stride := interleave(g)
	m := &mesh{count: int32(len(g.Indices))}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	}

	gl.VertexAttribPointerWithOffset(attribPosition, 3, gl.FLOAT, false, int32(stride*4), 0)
	gl.EnableVertexAttribArray(attribPosition)
	if stride == 5 {
		gl.VertexAttribPointerWithOffset(attribUV, 2, gl.FLOAT, false, int32(stride*4), 3*4)
		gl.EnableVertexAttribArray(attribUV)
	}

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	if len(g.Indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, gl.Ptr(g.Indices), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return m
}

func (m *mesh) draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func (m *mesh) destroy() {
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.ebo)
}
