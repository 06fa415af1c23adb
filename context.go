package shader

// Context is the rendering context a Program is built against.
// It is the only path from this package to the graphics API, and it owns
// the context-wide "current program" slot that Program.Activate writes.
//
// Methods mirror the OpenGL entry points they wrap. Handles are GL names:
// zero means "no object", and UniformLocation returns -1 when a name does
// not resolve.
//
// A Context is not safe for concurrent use. Callers must keep all calls on
// the goroutine (and OS thread) that owns the underlying GL context.
type Context interface {
	CreateShader(stage Stage) uint32
	// CompileShader sets the source of shader and compiles it.
	CompileShader(shader uint32, source string)
	ShaderCompiled(shader uint32) bool
	// ShaderInfoLogLength returns the log length in bytes, including the
	// terminating NUL when the driver reports one.
	ShaderInfoLogLength(shader uint32) int32
	// ShaderInfoLog fills buf with at most len(buf) bytes of the log and
	// returns the number of bytes written, excluding the terminating NUL.
	ShaderInfoLog(shader uint32, buf []byte) int32
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLogLength(program uint32) int32
	ProgramInfoLog(program uint32, buf []byte) int32
	DeleteProgram(program uint32)

	// UseProgram installs program as the current program. Zero unbinds.
	UseProgram(program uint32)
	UniformLocation(program uint32, name string) int32

	// Uniform uploads target whatever program is current.
	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform3f(location int32, v0, v1, v2 float32)
	Uniform4f(location int32, v0, v1, v2, v3 float32)
	// UniformMatrix4fv uploads one column-major 4x4 matrix without transposing.
	UniformMatrix4fv(location int32, m *[16]float32)
}
