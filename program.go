package shader

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

// Sources holds the shader text for each stage of a program.
// Geometry is optional; Vertex and Fragment are required.
type Sources struct {
	Vertex   string
	Fragment string
	Geometry string
}

// stages returns the supplied stages in compile order.
func (s Sources) stages() []stageSource {
	out := []stageSource{{Vertex, s.Vertex}, {Fragment, s.Fragment}}
	if s.Geometry != "" {
		out = append(out, stageSource{Geometry, s.Geometry})
	}
	return out
}

type stageSource struct {
	stage  Stage
	source string
}

// Program owns a linked shader program object.
//
// A Program returned by New is always linked; there is no way to observe
// a partially built one. The zero Program is not usable.
type Program struct {
	ctx    Context
	handle uint32

	// locations caches uniform lookups, including misses (-1).
	locations map[string]int32
	opts      options
}

// New compiles each stage in src, links them into a program and returns it.
//
// Failures are reported as *CompileError (naming the stage), *LinkError or
// *ResourceError. Per-stage objects are released on every path; on failure
// the program object is released too.
func New(ctx Context, src Sources, opts ...Option) (*Program, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if src.Vertex == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingSource, Vertex)
	}
	if src.Fragment == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingSource, Fragment)
	}

	var shaders []uint32
	defer func() {
		for _, sh := range shaders {
			ctx.DeleteShader(sh)
		}
	}()

	for _, s := range src.stages() {
		sh, err := compileStage(ctx, s.stage, s.source)
		if err != nil {
			o.logger.Debug("compile failed", "stage", s.stage, "err", err)
			return nil, err
		}
		shaders = append(shaders, sh)
	}

	handle := ctx.CreateProgram()
	if handle == 0 {
		return nil, &ResourceError{Object: "program"}
	}
	for _, sh := range shaders {
		ctx.AttachShader(handle, sh)
	}
	ctx.LinkProgram(handle)

	if !ctx.ProgramLinked(handle) {
		log, err := readLog(ctx.ProgramInfoLogLength(handle), func(buf []byte) int32 {
			return ctx.ProgramInfoLog(handle, buf)
		})
		ctx.DeleteProgram(handle)
		lerr := &LinkError{Log: log, Err: err}
		o.logger.Debug("link failed", "err", lerr)
		return nil, lerr
	}

	o.logger.Debug("program linked", "handle", handle, "stages", len(shaders))
	return &Program{
		ctx:       ctx,
		handle:    handle,
		locations: make(map[string]int32),
		opts:      o,
	}, nil
}

// MustNew is like New but panics on error.
// Intended for lessons and package-level setup with known-good sources.
func MustNew(ctx Context, src Sources, opts ...Option) *Program {
	p, err := New(ctx, src, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

func compileStage(ctx Context, stage Stage, source string) (uint32, error) {
	sh := ctx.CreateShader(stage)
	if sh == 0 {
		return 0, &ResourceError{Object: stage.String() + " shader"}
	}
	ctx.CompileShader(sh, source)
	if ctx.ShaderCompiled(sh) {
		return sh, nil
	}

	log, err := readLog(ctx.ShaderInfoLogLength(sh), func(buf []byte) int32 {
		return ctx.ShaderInfoLog(sh, buf)
	})
	ctx.DeleteShader(sh)
	return 0, &CompileError{Stage: stage, Log: log, Err: err}
}

// readLog allocates a buffer of exactly n bytes, lets fill write the log
// into it and decodes the result. n <= 0 yields an empty log.
func readLog(n int32, fill func(buf []byte) int32) (string, error) {
	if n <= 0 {
		return "", nil
	}
	buf := make([]byte, n)
	w := fill(buf)
	if w < 0 {
		w = 0
	} else if w > n {
		w = n
	}
	buf = bytes.TrimRight(buf[:w], "\x00")
	if !utf8.Valid(buf) {
		return "", ErrDecodeLog
	}
	return string(buf), nil
}

// Handle returns the GL name of the program, or zero after Delete.
func (p *Program) Handle() uint32 { return p.handle }

// Deleted reports whether Delete has been called.
func (p *Program) Deleted() bool { return p.handle == 0 }

// Activate installs the program as the current program of its context.
// Uniform setters affect whichever program is current, so call Activate
// before setting uniforms. Activate on a deleted program does nothing.
func (p *Program) Activate() {
	if p.handle == 0 {
		return
	}
	p.ctx.UseProgram(p.handle)
}

// Delete releases the program object. Further calls are no-ops.
func (p *Program) Delete() {
	if p.handle == 0 {
		return
	}
	p.ctx.DeleteProgram(p.handle)
	p.opts.logger.Debug("program deleted", "handle", p.handle)
	p.handle = 0
	p.locations = nil
}
