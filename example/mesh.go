package main

import "github.com/go-gl/gl/v4.1-core/gl"

const floatSize = 4

// mesh is static geometry: a VAO, its vertex buffer and an optional
// element buffer.
type mesh struct {
	vao, vbo, ebo uint32
	count         int32
}

// newMesh uploads interleaved float vertices once. sizes gives the component
// count of each attribute, bound to locations 0, 1, 2...
func newMesh(vertices []float32, indices []uint32, sizes ...int32) *mesh {
	var stride int32
	for _, s := range sizes {
		stride += s
	}

	m := &mesh{count: int32(len(vertices)) / stride}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*floatSize, gl.Ptr(vertices), gl.STATIC_DRAW)

	if len(indices) > 0 {
		gl.GenBuffers(1, &m.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
		m.count = int32(len(indices))
	}

	var offset uintptr
	for i, size := range sizes {
		gl.VertexAttribPointerWithOffset(uint32(i), size, gl.FLOAT, false, stride*floatSize, offset)
		gl.EnableVertexAttribArray(uint32(i))
		offset += uintptr(size) * floatSize
	}

	gl.BindVertexArray(0)
	return m
}

func (m *mesh) draw() {
	gl.BindVertexArray(m.vao)
	if m.ebo != 0 {
		gl.DrawElementsWithOffset(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, 0)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, m.count)
	}
	gl.BindVertexArray(0)
}

func (m *mesh) delete() {
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteVertexArrays(1, &m.vao)
}
