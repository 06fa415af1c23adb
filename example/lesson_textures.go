package main

import (
	"image"
	"image/color"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/shader"
	"github.com/go-theft-auto/shader/backend/opengl"
)

// Position, color and texture coordinate per corner.
var quadVertices = []float32{
	0.5, 0.5, 0.0, 1.0, 0.0, 0.0, 1.0, 1.0, // top right
	0.5, -0.5, 0.0, 0.0, 1.0, 0.0, 1.0, 0.0, // bottom right
	-0.5, -0.5, 0.0, 0.0, 0.0, 1.0, 0.0, 0.0, // bottom left
	-0.5, 0.5, 0.0, 1.0, 1.0, 0.0, 0.0, 1.0, // top left
}

var quadIndices = []uint32{
	0, 1, 3,
	1, 2, 3,
}

// textureUnitsLesson samples two textures bound to units 0 and 1. The
// textures are generated in memory so no image files are decoded.
var textureUnitsLesson = lesson{
	id:       "1_4_2",
	title:    "texture units",
	sources:  embedded("shaders/4.2.texture_uniform.vs", "shaders/4.2.texture_uniform.fs"),
	uniforms: []string{"texture1", "texture2", "mixValue", "tint"},
	run: func(w *opengl.Window, prog *shader.Program) error {
		quad := newMesh(quadVertices, quadIndices, 3, 3, 2)
		defer quad.delete()

		tex1 := uploadTexture(checkerboard(256, 32))
		tex2 := uploadTexture(rings(256))
		defer gl.DeleteTextures(1, &tex1)
		defer gl.DeleteTextures(1, &tex2)

		// Sampler units are set once; they live in the program.
		prog.Activate()
		prog.SetInt("texture1", 0)
		prog.SetInt("texture2", 1)
		prog.SetFloat("mixValue", 0.2)
		prog.SetVec3("tint", mgl32.Vec3{1, 1, 1})

		return w.Run(func(float64) error {
			clearScreen()
			prog.Activate()

			gl.ActiveTexture(gl.TEXTURE0)
			gl.BindTexture(gl.TEXTURE_2D, tex1)
			gl.ActiveTexture(gl.TEXTURE1)
			gl.BindTexture(gl.TEXTURE_2D, tex2)

			quad.draw()
			return nil
		})
	},
}

func checkerboard(size, cell int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	light := color.RGBA{R: 222, G: 184, B: 135, A: 255}
	dark := color.RGBA{R: 139, G: 90, B: 43, A: 255}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := dark
			if (x/cell+y/cell)%2 == 0 {
				c = light
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func rings(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	mid := size / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := x-mid, y-mid
			v := uint8((dx*dx + dy*dy) / 16 % 256)
			img.SetRGBA(x, y, color.RGBA{R: v, G: 255 - v, B: 255, A: 255})
		}
	}
	return img
}

func uploadTexture(img *image.RGBA) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	b := img.Bounds()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(b.Dx()), int32(b.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}
