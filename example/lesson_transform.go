package main

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/shader"
	"github.com/go-theft-auto/shader/backend/opengl"
)

// transformLesson rotates a colored triangle with a mat4 uniform and pulses
// its brightness over time.
var transformLesson = lesson{
	id:       "transform",
	title:    "rotating triangle",
	sources:  embedded("shaders/triangle.vert", "shaders/triangle.frag"),
	uniforms: []string{"u_transform", "u_tint", "u_time", "u_pulse"},
	run: func(w *opengl.Window, prog *shader.Program) error {
		tri := newMesh([]float32{
			-0.6, -0.5, 0, 1, 0, 0,
			0.6, -0.5, 0, 0, 1, 0,
			0, 0.6, 0, 0, 0, 1,
		}, nil, 3, 3)
		defer tri.delete()

		var elapsed float32
		return w.Run(func(dt float64) error {
			elapsed += float32(dt)
			gl.ClearColor(0.12, 0.12, 0.14, 1.0)
			gl.Clear(gl.COLOR_BUFFER_BIT)

			fw, fh := w.GetFramebufferSize()
			aspect := float32(fw) / float32(max(fh, 1))

			prog.Activate()
			prog.SetMat4("u_transform", mgl32.Scale3D(1/aspect, 1, 1).Mul4(mgl32.HomogRotate3DZ(elapsed)))
			prog.SetVec3("u_tint", mgl32.Vec3{1, 1, 1})
			prog.SetFloat("u_time", elapsed)
			prog.SetBool("u_pulse", true)
			tri.draw()
			return nil
		})
	},
}
