// Package opengl implements shader.Context on OpenGL 4.1 core and provides a
// GLFW window to host it.
package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/shader"
)

// Context issues shader calls against the GL context current on the
// calling thread. The zero value is ready to use once gl.Init has run.
type Context struct{}

var _ shader.Context = Context{}

// stageType maps a stage to its GL shader type.
func stageType(s shader.Stage) (uint32, error) {
	switch s {
	case shader.Vertex:
		return gl.VERTEX_SHADER, nil
	case shader.Fragment:
		return gl.FRAGMENT_SHADER, nil
	case shader.Geometry:
		return gl.GEOMETRY_SHADER, nil
	default:
		return 0, fmt.Errorf("no shader type for stage %s", s)
	}
}

func (Context) CreateShader(s shader.Stage) uint32 {
	typ, err := stageType(s)
	if err != nil {
		return 0
	}
	return gl.CreateShader(typ)
}

func (Context) CompileShader(sh uint32, source string) {
	// Explicit length so sources need no NUL terminator.
	csource, free := gl.Strs(source)
	length := int32(len(source))
	gl.ShaderSource(sh, 1, csource, &length)
	free()
	gl.CompileShader(sh)
}

func (Context) ShaderCompiled(sh uint32) bool {
	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (Context) ShaderInfoLogLength(sh uint32) int32 {
	var n int32
	gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &n)
	return n
}

func (Context) ShaderInfoLog(sh uint32, buf []byte) int32 {
	if len(buf) == 0 {
		return 0
	}
	var n int32
	gl.GetShaderInfoLog(sh, int32(len(buf)), &n, &buf[0])
	return n
}

func (Context) DeleteShader(sh uint32) { gl.DeleteShader(sh) }

func (Context) CreateProgram() uint32 { return gl.CreateProgram() }

func (Context) AttachShader(prog, sh uint32) { gl.AttachShader(prog, sh) }

func (Context) LinkProgram(prog uint32) { gl.LinkProgram(prog) }

func (Context) ProgramLinked(prog uint32) bool {
	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (Context) ProgramInfoLogLength(prog uint32) int32 {
	var n int32
	gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &n)
	return n
}

func (Context) ProgramInfoLog(prog uint32, buf []byte) int32 {
	if len(buf) == 0 {
		return 0
	}
	var n int32
	gl.GetProgramInfoLog(prog, int32(len(buf)), &n, &buf[0])
	return n
}

func (Context) DeleteProgram(prog uint32) { gl.DeleteProgram(prog) }

func (Context) UseProgram(prog uint32) { gl.UseProgram(prog) }

func (Context) UniformLocation(prog uint32, name string) int32 {
	if !strings.HasSuffix(name, "\x00") {
		name += "\x00"
	}
	return gl.GetUniformLocation(prog, gl.Str(name))
}

func (Context) Uniform1i(loc int32, v int32) { gl.Uniform1i(loc, v) }

func (Context) Uniform1f(loc int32, v float32) { gl.Uniform1f(loc, v) }

func (Context) Uniform3f(loc int32, v0, v1, v2 float32) { gl.Uniform3f(loc, v0, v1, v2) }

func (Context) Uniform4f(loc int32, v0, v1, v2, v3 float32) { gl.Uniform4f(loc, v0, v1, v2, v3) }

func (Context) UniformMatrix4fv(loc int32, m *[16]float32) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

// CurrentProgram returns the GL name of the program currently installed.
func CurrentProgram() uint32 {
	var prog int32
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &prog)
	return uint32(prog)
}

// ReadMat4 reads back a mat4 uniform of prog. Useful for verifying uploads.
func ReadMat4(prog uint32, loc int32) [16]float32 {
	var m [16]float32
	gl.GetUniformfv(prog, loc, &m[0])
	return m
}
