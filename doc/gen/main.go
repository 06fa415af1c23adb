// Command gen checks the shader package against the local OpenGL driver and
// saves a screenshot of a rendered triangle to doc/imgs/.
//
// Each check builds programs through opengl.Context and reads results back
// from the driver, so failures here point at the driver or the backend
// rather than the in-memory fake used by the unit tests.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/shader"
	"github.com/go-theft-auto/shader/backend/opengl"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	shader.SetVerbose(true)
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

const (
	shotWidth  = 320
	shotHeight = 240
)

const vertexSource = `#version 410 core
layout (location = 0) in vec2 aPos;
out vec2 vUV;
uniform mat4 u_transform;
void main() {
    gl_Position = u_transform * vec4(aPos, 0.0, 1.0);
    vUV = aPos * 0.5 + 0.5;
}
`

const fragmentSource = `#version 410 core
in vec2 vUV;
out vec4 FragColor;
uniform vec3 u_tint;
uniform float u_time;
void main() {
    FragColor = vec4(vUV, u_time, 1.0) * vec4(u_tint, 1.0);
}
`

// check is one driver-level property of the shader package.
type check struct {
	name string
	run  func(ctx shader.Context) error
}

func run() error {
	window, err := opengl.NewWindow(opengl.WindowConfig{
		Width:  800,
		Height: 600,
		Title:  "shader-check",
		Hidden: true,
	})
	if err != nil {
		return err
	}
	defer window.Close()

	ctx := opengl.Context{}
	checks := []check{
		{"vertex syntax error", checkVertexError},
		{"link mismatch", checkLinkError},
		{"mat4 read-back", checkMat4},
		{"activation scoping", checkActivation},
		{"missing uniform", checkMissingUniform},
	}
	failed := 0
	for _, c := range checks {
		if err := c.run(ctx); err != nil {
			failed++
			fmt.Printf("  FAIL %s: %v\n", c.name, err)
			continue
		}
		fmt.Printf("  ok   %s\n", c.name)
	}

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := capture(ctx, filepath.Join(outDir, "triangle.jpg")); err != nil {
		return fmt.Errorf("capture triangle: %w", err)
	}
	fmt.Printf("\nSaved %s/triangle.jpg (%dx%d)\n", outDir, shotWidth, shotHeight)

	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, len(checks))
	}
	return nil
}

func checkVertexError(ctx shader.Context) error {
	_, err := shader.New(ctx, shader.Sources{
		Vertex:   "#version 410 core\nvoid main() { gl_Position = vec4(0.0) }\n",
		Fragment: fragmentSource,
	})
	var cerr *shader.CompileError
	if !errors.As(err, &cerr) {
		return fmt.Errorf("want CompileError, got %v", err)
	}
	if cerr.Stage != shader.Vertex || cerr.Log == "" {
		return fmt.Errorf("want VERTEX with a log, got %s %q", cerr.Stage, cerr.Log)
	}
	return nil
}

func checkLinkError(ctx shader.Context) error {
	_, err := shader.New(ctx, shader.Sources{
		Vertex: vertexSource,
		Fragment: `#version 410 core
in vec3 vMissing;
out vec4 FragColor;
void main() { FragColor = vec4(vMissing, 1.0); }
`,
	})
	var lerr *shader.LinkError
	if !errors.As(err, &lerr) {
		return fmt.Errorf("want LinkError, got %v", err)
	}
	if lerr.Log == "" {
		return errors.New("empty link log")
	}
	return nil
}

func checkMat4(ctx shader.Context) error {
	prog, err := shader.New(ctx, shader.Sources{Vertex: vertexSource, Fragment: fragmentSource})
	if err != nil {
		return err
	}
	defer prog.Delete()

	m := mgl32.Translate3D(1, 2, 3).Mul4(mgl32.HomogRotate3DZ(0.5))
	prog.Activate()
	prog.SetMat4("u_transform", m)

	got := opengl.ReadMat4(prog.Handle(), prog.Location("u_transform"))
	if got != [16]float32(m) {
		return fmt.Errorf("read back %v, want %v", got, m)
	}
	return nil
}

func readFloat(prog *shader.Program, name string) float32 {
	var v float32
	gl.GetUniformfv(prog.Handle(), prog.Location(name), &v)
	return v
}

func checkActivation(ctx shader.Context) error {
	src := shader.Sources{Vertex: vertexSource, Fragment: fragmentSource}
	a, err := shader.New(ctx, src)
	if err != nil {
		return err
	}
	defer a.Delete()
	b, err := shader.New(ctx, src)
	if err != nil {
		return err
	}
	defer b.Delete()

	a.Activate()
	a.SetFloat("u_time", 1)
	b.Activate()
	a.SetFloat("u_time", 2)

	if got := opengl.CurrentProgram(); got != b.Handle() {
		return fmt.Errorf("current program %d, want %d", got, b.Handle())
	}
	if va, vb := readFloat(a, "u_time"), readFloat(b, "u_time"); va != 1 || vb != 2 {
		return fmt.Errorf("a=%v b=%v, want a=1 b=2", va, vb)
	}
	return nil
}

func checkMissingUniform(ctx shader.Context) error {
	var missing []string
	prog, err := shader.New(ctx, shader.Sources{Vertex: vertexSource, Fragment: fragmentSource},
		shader.WithMissingUniform(func(name string) { missing = append(missing, name) }))
	if err != nil {
		return err
	}
	defer prog.Delete()

	prog.Activate()
	prog.SetFloat("u_absent", 1)
	if e := gl.GetError(); e != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%x", e)
	}
	if len(missing) != 1 {
		return fmt.Errorf("missing hook called %d times, want 1", len(missing))
	}
	return nil
}

func capture(ctx shader.Context, path string) error {
	prog, err := shader.New(ctx, shader.Sources{Vertex: vertexSource, Fragment: fragmentSource})
	if err != nil {
		return err
	}
	defer prog.Delete()

	verts := []float32{-0.8, -0.8, 0.8, -0.8, 0, 0.8}
	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*int(unsafe.Sizeof(verts[0])), gl.Ptr(verts), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(0)
	defer func() {
		gl.DeleteBuffers(1, &vbo)
		gl.DeleteVertexArrays(1, &vao)
	}()

	gl.Viewport(0, 0, shotWidth, shotHeight)
	gl.ClearColor(0.12, 0.12, 0.14, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	prog.Activate()
	prog.SetMat4("u_transform", mgl32.Ident4())
	prog.SetVec3("u_tint", mgl32.Vec3{1, 1, 1})
	prog.SetFloat("u_time", 0.5)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.Finish()

	pixels := make([]byte, shotWidth*shotHeight*4)
	gl.ReadPixels(0, 0, shotWidth, shotHeight, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	// Flip vertically (OpenGL origin is bottom-left)
	rowLen := shotWidth * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < shotHeight/2; y++ {
		top := y * rowLen
		bot := (shotHeight - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}

	img := image.NewRGBA(image.Rect(0, 0, shotWidth, shotHeight))
	copy(img.Pix, pixels)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}
