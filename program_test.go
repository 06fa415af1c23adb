package shader_test

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/shader"
	"github.com/go-theft-auto/shader/shadertest"
)

const vertexSource = `#version 410 core
layout (location = 0) in vec3 aPos;

out vec3 vColor;

uniform mat4 u_transform;

void main() {
    gl_Position = u_transform * vec4(aPos, 1.0);
    vColor = aPos;
}
`

const fragmentSource = `#version 410 core
in vec3 vColor;

out vec4 FragColor;

uniform vec3 u_tint;
uniform float u_time;
uniform bool u_enabled;
uniform int u_mode;

void main() {
    FragColor = vec4(vColor * u_tint * u_time, 1.0);
}
`

func sources() shader.Sources {
	return shader.Sources{Vertex: vertexSource, Fragment: fragmentSource}
}

func TestNewValidProgram(t *testing.T) {
	ctx := shadertest.New()

	prog, err := shader.New(ctx, sources())
	require.NoError(t, err)
	require.NotNil(t, prog)
	assert.NotZero(t, prog.Handle())

	// Stage objects are released once linked.
	assert.Equal(t, 0, ctx.LiveShaders())
	assert.Equal(t, 1, ctx.LivePrograms())

	prog.Activate()
	assert.Equal(t, prog.Handle(), ctx.Current())

	prog.SetBool("u_enabled", true)
	prog.SetInt("u_mode", 3)
	prog.SetFloat("u_time", 0.5)
	prog.SetVec3("u_tint", mgl32.Vec3{1, 0.5, 0.25})
	prog.SetMat4("u_transform", mgl32.Ident4())
	assert.Empty(t, ctx.Errors())

	v, ok := ctx.Value(prog.Handle(), "u_enabled")
	require.True(t, ok)
	assert.Equal(t, int32(1), v)

	v, _ = ctx.Value(prog.Handle(), "u_mode")
	assert.Equal(t, int32(3), v)

	v, _ = ctx.Value(prog.Handle(), "u_time")
	assert.Equal(t, float32(0.5), v)

	v, _ = ctx.Value(prog.Handle(), "u_tint")
	assert.Equal(t, [3]float32{1, 0.5, 0.25}, v)
}

func TestSetVec4(t *testing.T) {
	ctx := shadertest.New()
	prog := shader.MustNew(ctx, shader.Sources{
		Vertex:   "void main() {}",
		Fragment: "uniform vec4 ourColor;\nvoid main() {}",
	})
	prog.Activate()

	prog.SetVec4("ourColor", mgl32.Vec4{0, 0.5, 0, 1})

	v, ok := ctx.Value(prog.Handle(), "ourColor")
	require.True(t, ok)
	assert.Equal(t, [4]float32{0, 0.5, 0, 1}, v)
}

func TestSetBoolFalse(t *testing.T) {
	ctx := shadertest.New()
	prog := shader.MustNew(ctx, sources())
	prog.Activate()

	prog.SetBool("u_enabled", true)
	prog.SetBool("u_enabled", false)

	v, _ := ctx.Value(prog.Handle(), "u_enabled")
	assert.Equal(t, int32(0), v)
}

func TestVertexSyntaxError(t *testing.T) {
	ctx := shadertest.New()
	src := sources()
	src.Vertex = strings.Replace(vertexSource, "}", "", 1)

	prog, err := shader.New(ctx, src)
	require.Error(t, err)
	assert.Nil(t, prog)

	var cerr *shader.CompileError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, shader.Vertex, cerr.Stage)
	assert.Equal(t, "VERTEX", cerr.Stage.String())
	assert.NotEmpty(t, cerr.Log)
	assert.NotContains(t, cerr.Log, "\x00")
	assert.ErrorIs(t, err, shader.ErrCompile)
	assert.NotErrorIs(t, err, shader.ErrLink)

	assert.Equal(t, 0, ctx.LiveShaders())
	assert.Equal(t, 0, ctx.LivePrograms())
	assert.Empty(t, ctx.Errors())
}

func TestFragmentCompileErrorReleasesVertex(t *testing.T) {
	ctx := shadertest.New()
	src := sources()
	src.Fragment = "#version 410 core\n#error broken\nvoid main() {}\n"

	_, err := shader.New(ctx, src)

	var cerr *shader.CompileError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, shader.Fragment, cerr.Stage)
	assert.Equal(t, "0:2: error: #error broken", cerr.Log)
	assert.Contains(t, err.Error(), "FRAGMENT")

	// The vertex stage compiled first and must still be released.
	assert.Equal(t, 0, ctx.LiveShaders())
	assert.Empty(t, ctx.Errors())
}

func TestGeometryStage(t *testing.T) {
	geometry := `#version 410 core
layout (triangles) in;
layout (triangle_strip, max_vertices = 3) out;

in vec3 vColor[];
out vec3 gColor;

void main() {
    for (int i = 0; i < 3; i++) {
        gColor = vColor[i];
        gl_Position = gl_in[i].gl_Position;
        EmitVertex();
    }
    EndPrimitive();
}
`
	fragment := strings.ReplaceAll(fragmentSource, "vColor", "gColor")

	t.Run("links", func(t *testing.T) {
		ctx := shadertest.New()
		prog, err := shader.New(ctx, shader.Sources{Vertex: vertexSource, Fragment: fragment, Geometry: geometry})
		require.NoError(t, err)
		assert.Equal(t, 0, ctx.LiveShaders())
		prog.Delete()
		assert.Equal(t, 0, ctx.LivePrograms())
	})

	t.Run("compile error", func(t *testing.T) {
		ctx := shadertest.New()
		_, err := shader.New(ctx, shader.Sources{Vertex: vertexSource, Fragment: fragment, Geometry: geometry + "}"})

		var cerr *shader.CompileError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, shader.Geometry, cerr.Stage)
		assert.Equal(t, "GEOMETRY", cerr.Stage.String())
		assert.Equal(t, 0, ctx.LiveShaders())
	})
}

func TestLinkFailure(t *testing.T) {
	ctx := shadertest.New()
	src := sources()
	src.Fragment = strings.Replace(fragmentSource, "in vec3 vColor;", "in vec3 vColor;\nin vec3 vNormal;", 1)

	prog, err := shader.New(ctx, src)
	assert.Nil(t, prog)

	var lerr *shader.LinkError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, shader.Link, lerr.Stage())
	assert.Contains(t, lerr.Log, "vNormal")
	assert.ErrorIs(t, err, shader.ErrLink)
	assert.Contains(t, err.Error(), "PROGRAM")

	assert.Equal(t, 0, ctx.LiveShaders())
	assert.Equal(t, 0, ctx.LivePrograms())
	assert.Empty(t, ctx.Errors())
}

func TestEmptyLogIsNotAnError(t *testing.T) {
	ctx := shadertest.New()
	ctx.Compiler = func(shader.Stage, string) (bool, string) { return false, "" }

	_, err := shader.New(ctx, sources())

	var cerr *shader.CompileError
	require.ErrorAs(t, err, &cerr)
	assert.Empty(t, cerr.Log)
	assert.NoError(t, cerr.Err)
	assert.NotErrorIs(t, err, shader.ErrDecodeLog)
}

func TestLongLogIsNotTruncated(t *testing.T) {
	ctx := shadertest.New()
	long := strings.Repeat("0:1: error: x\n", 500) + "end"
	ctx.Compiler = func(shader.Stage, string) (bool, string) { return false, long }

	_, err := shader.New(ctx, sources())

	var cerr *shader.CompileError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, long, cerr.Log)
}

func TestUndecodableLog(t *testing.T) {
	ctx := shadertest.New()
	ctx.Linker = func(map[shader.Stage]string) (bool, string) { return false, "bad \xff\xfe log" }

	_, err := shader.New(ctx, sources())

	var lerr *shader.LinkError
	require.ErrorAs(t, err, &lerr)
	assert.ErrorIs(t, err, shader.ErrDecodeLog)
	assert.ErrorIs(t, err, shader.ErrLink)
	assert.Equal(t, 0, ctx.LivePrograms())
}

func TestResourceErrors(t *testing.T) {
	tests := []struct {
		name   string
		fail   func(shader.Stage) bool
		object string
	}{
		{"vertex", func(shader.Stage) bool { return true }, "VERTEX shader"},
		{"fragment after vertex", func(s shader.Stage) bool { return s == shader.Fragment }, "FRAGMENT shader"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := shadertest.New()
			ctx.FailCreateShader = tt.fail

			_, err := shader.New(ctx, sources())

			var rerr *shader.ResourceError
			require.ErrorAs(t, err, &rerr)
			assert.ErrorIs(t, err, shader.ErrCreateFailed)
			assert.Equal(t, tt.object, rerr.Object)

			// Stages created before the failure are released.
			assert.Equal(t, 0, ctx.LiveShaders())
			assert.Equal(t, 0, ctx.LivePrograms())
			assert.Empty(t, ctx.Errors())
		})
	}

	t.Run("program", func(t *testing.T) {
		ctx := shadertest.New()
		ctx.FailCreateProgram = true

		_, err := shader.New(ctx, sources())

		var rerr *shader.ResourceError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, "program", rerr.Object)
		assert.Equal(t, 0, ctx.LiveShaders())
		assert.Equal(t, 0, ctx.LivePrograms())
	})
}

func TestFailedStage(t *testing.T) {
	ctx := shadertest.New()

	src := sources()
	src.Fragment = "void main() {"
	_, err := shader.New(ctx, src)
	stage, ok := shader.FailedStage(fmt.Errorf("build: %w", err))
	assert.True(t, ok)
	assert.Equal(t, shader.Fragment, stage)
	assert.NotEmpty(t, shader.FailureLog(err))

	src = sources()
	src.Fragment = strings.Replace(fragmentSource, "in vec3 vColor;", "in vec3 vOther;", 1)
	_, err = shader.New(ctx, src)
	stage, ok = shader.FailedStage(err)
	assert.True(t, ok)
	assert.Equal(t, shader.Link, stage)
	assert.Contains(t, shader.FailureLog(err), "vOther")

	_, ok = shader.FailedStage(shader.ErrMissingSource)
	assert.False(t, ok)
	assert.Empty(t, shader.FailureLog(shader.ErrMissingSource))
}

func TestMissingSource(t *testing.T) {
	ctx := shadertest.New()

	_, err := shader.New(ctx, shader.Sources{Vertex: vertexSource})
	assert.ErrorIs(t, err, shader.ErrMissingSource)
	assert.Contains(t, err.Error(), "FRAGMENT")

	_, err = shader.New(ctx, shader.Sources{Fragment: fragmentSource})
	assert.ErrorIs(t, err, shader.ErrMissingSource)

	assert.Equal(t, 0, ctx.LiveShaders())
	assert.Equal(t, 0, ctx.LivePrograms())
}

func TestMissingUniformIsNoOp(t *testing.T) {
	ctx := shadertest.New()
	var missing []string
	prog, err := shader.New(ctx, sources(), shader.WithMissingUniform(func(name string) {
		missing = append(missing, name)
	}))
	require.NoError(t, err)
	prog.Activate()

	assert.NotPanics(t, func() {
		prog.SetFloat("u_nope", 1)
		prog.SetFloat("u_nope", 2)
		prog.SetMat4("u_nope_either", mgl32.Ident4())
	})
	assert.Equal(t, int32(-1), prog.Location("u_nope"))
	assert.Empty(t, ctx.Errors())
	assert.Equal(t, []string{"u_nope", "u_nope_either"}, missing)
}

func TestMissingUniformLogsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ctx := shadertest.New()
	prog, err := shader.New(ctx, sources(), shader.WithLogger(logger))
	require.NoError(t, err)
	prog.Activate()

	prog.SetFloat("u_nope", 1)

	assert.Contains(t, buf.String(), `msg="uniform not found"`)
	assert.Contains(t, buf.String(), "name=u_nope")
}

func TestMat4ColumnMajor(t *testing.T) {
	ctx := shadertest.New()
	prog := shader.MustNew(ctx, sources())
	prog.Activate()

	m := mgl32.Translate3D(1, 2, 3).Mul4(mgl32.Scale3D(4, 5, 6))
	prog.SetMat4("u_transform", m)

	v, ok := ctx.Value(prog.Handle(), "u_transform")
	require.True(t, ok)
	got := v.([16]float32)
	assert.Equal(t, [16]float32(m), got)

	// Translation lives in the last column, elements 12..14.
	assert.Equal(t, []float32{1, 2, 3}, got[12:15])
}

func TestActivationScopesUploads(t *testing.T) {
	ctx := shadertest.New()
	a := shader.MustNew(ctx, sources())
	b := shader.MustNew(ctx, sources())

	a.Activate()
	a.SetFloat("u_time", 1)

	b.Activate()
	a.SetFloat("u_time", 2)

	va, _ := ctx.Value(a.Handle(), "u_time")
	vb, _ := ctx.Value(b.Handle(), "u_time")
	assert.Equal(t, float32(1), va)
	assert.Equal(t, float32(2), vb)
}

func TestSettersDoNotActivate(t *testing.T) {
	ctx := shadertest.New()
	prog := shader.MustNew(ctx, sources())

	prog.SetFloat("u_time", 1)

	assert.Zero(t, ctx.Current())
	_, ok := ctx.Value(prog.Handle(), "u_time")
	assert.False(t, ok)
	assert.Len(t, ctx.Errors(), 1)
}

func TestDeleteTwice(t *testing.T) {
	ctx := shadertest.New()
	prog := shader.MustNew(ctx, sources())
	handle := prog.Handle()

	prog.Delete()
	assert.NotPanics(t, prog.Delete)

	assert.True(t, prog.Deleted())
	assert.Zero(t, prog.Handle())
	assert.Equal(t, 1, ctx.Deletes(handle))
	assert.Equal(t, 0, ctx.LivePrograms())

	// Nothing reaches the context once deleted.
	prog.Activate()
	prog.SetFloat("u_time", 1)
	assert.Equal(t, int32(-1), prog.Location("u_time"))
	assert.Zero(t, ctx.Current())
	assert.Empty(t, ctx.Errors())
}

func TestMustNewPanics(t *testing.T) {
	ctx := shadertest.New()
	assert.Panics(t, func() {
		shader.MustNew(ctx, shader.Sources{Vertex: "void main() {", Fragment: fragmentSource})
	})
}

func TestStageString(t *testing.T) {
	tests := []struct {
		stage shader.Stage
		want  string
	}{
		{shader.Vertex, "VERTEX"},
		{shader.Fragment, "FRAGMENT"},
		{shader.Geometry, "GEOMETRY"},
		{shader.Link, "PROGRAM"},
		{shader.Stage(9), "Stage(9)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.stage.String())
	}
}

func TestErrorsAreDistinct(t *testing.T) {
	cerr := error(&shader.CompileError{Stage: shader.Vertex, Log: "x"})
	assert.True(t, errors.Is(cerr, shader.ErrCompile))
	assert.False(t, errors.Is(cerr, shader.ErrDecodeLog))
}
