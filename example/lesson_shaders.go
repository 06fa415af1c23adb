package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/shader"
	"github.com/go-theft-auto/shader/backend/opengl"
)

var triangleVertices = []float32{
	-0.5, -0.5, 0.0,
	0.5, -0.5, 0.0,
	0.0, 0.5, 0.0,
}

// Position and color per vertex.
var coloredTriangleVertices = []float32{
	-0.5, -0.5, 0.0, 1.0, 0.0, 0.0,
	0.5, -0.5, 0.0, 0.0, 1.0, 0.0,
	0.0, 0.5, 0.0, 0.0, 0.0, 1.0,
}

var uniformColorLesson = lesson{
	id:    "1_3_1",
	title: "uniform color",
	sources: inline(`#version 410 core
layout (location = 0) in vec3 aPos;

void main() {
    gl_Position = vec4(aPos, 1.0);
}
`, `#version 410 core
out vec4 FragColor;

uniform vec4 ourColor;

void main() {
    FragColor = ourColor;
}
`),
	uniforms: []string{"ourColor"},
	run: func(w *opengl.Window, prog *shader.Program) error {
		tri := newMesh(triangleVertices, nil, 3)
		defer tri.delete()

		var elapsed float64
		return w.Run(func(dt float64) error {
			elapsed += dt
			clearScreen()

			green := float32(math.Sin(elapsed)/2 + 0.5)
			prog.Activate()
			prog.SetVec4("ourColor", mgl32.Vec4{0, green, 0, 1})
			tri.draw()
			return nil
		})
	},
}

var moreAttributesLesson = lesson{
	id:    "1_3_2",
	title: "more attributes",
	sources: inline(`#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;

out vec3 ourColor;

void main() {
    gl_Position = vec4(aPos, 1.0);
    ourColor = aColor;
}
`, `#version 410 core
out vec4 FragColor;
in vec3 ourColor;

void main() {
    FragColor = vec4(ourColor, 1.0);
}
`),
	run: func(w *opengl.Window, prog *shader.Program) error {
		tri := newMesh(coloredTriangleVertices, nil, 3, 3)
		defer tri.delete()

		return w.Run(func(float64) error {
			clearScreen()
			prog.Activate()
			tri.draw()
			return nil
		})
	},
}

// shaderFilesLesson loads its stages from embedded files and slides the
// triangle with a float uniform.
var shaderFilesLesson = lesson{
	id:       "1_3_3",
	title:    "shader files",
	sources:  embedded("shaders/3.3.shader.vs", "shaders/3.3.shader.fs"),
	uniforms: []string{"xOffset", "flipY"},
	run: func(w *opengl.Window, prog *shader.Program) error {
		tri := newMesh(coloredTriangleVertices, nil, 3, 3)
		defer tri.delete()

		var elapsed float64
		return w.Run(func(dt float64) error {
			elapsed += dt
			clearScreen()

			prog.Activate()
			prog.SetFloat("xOffset", float32(math.Sin(elapsed)*0.4))
			prog.SetBool("flipY", math.Mod(elapsed, 4) >= 2)
			tri.draw()
			return nil
		})
	},
}
