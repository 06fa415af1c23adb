package main

import (
	"embed"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/shader"
	"github.com/go-theft-auto/shader/backend/opengl"
)

//go:embed shaders
var shaders embed.FS

// lesson is one runnable scene.
type lesson struct {
	id    string
	title string
	// sources returns the stage text for the lesson's program.
	sources func() (shader.Sources, error)
	// uniforms lists every uniform run sets; each must resolve in the program.
	uniforms []string
	run      func(w *opengl.Window, prog *shader.Program) error
}

var lessons = []lesson{
	uniformColorLesson,
	moreAttributesLesson,
	shaderFilesLesson,
	textureUnitsLesson,
	transformLesson,
}

func findLesson(id string) (lesson, bool) {
	for _, l := range lessons {
		if l.id == id {
			return l, true
		}
	}
	return lesson{}, false
}

func inline(vertex, fragment string) func() (shader.Sources, error) {
	return func() (shader.Sources, error) {
		return shader.Sources{Vertex: vertex, Fragment: fragment}, nil
	}
}

func embedded(vertex, fragment string) func() (shader.Sources, error) {
	return func() (shader.Sources, error) {
		return shader.LoadSources(shaders, vertex, fragment, "")
	}
}

func clearScreen() {
	gl.ClearColor(0.2, 0.3, 0.3, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}
