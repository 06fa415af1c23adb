// Package shadertest provides an in-memory shader.Context for tests that
// run without a GPU.
//
// The fake compiles with a pluggable Compiler, links by matching fragment
// inputs against the outputs of the previous stage, discovers uniforms
// from "uniform" declarations, and keeps uploaded values per program so
// tests can read them back. Misuse that a GL driver would flag (deleting
// twice, uploading with no current program) is recorded in Errors.
package shadertest

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/go-theft-auto/shader"
)

// Compiler reports whether source compiles as stage, with its log.
type Compiler func(stage shader.Stage, source string) (ok bool, log string)

// Linker reports whether the compiled stages link, with its log.
type Linker func(stages map[shader.Stage]string) (ok bool, log string)

type fakeShader struct {
	stage    shader.Stage
	source   string
	compiled bool
	log      string
	deleted  bool
}

type fakeProgram struct {
	attached []uint32
	linked   bool
	log      string
	deleted  bool

	locations map[string]int32
	values    map[int32]any
}

// Context is a fake rendering context. The zero value is not usable; use
// New.
type Context struct {
	// Compiler and Linker may be replaced before building programs.
	Compiler Compiler
	Linker   Linker

	// FailCreateShader, when set, makes CreateShader return 0 for the
	// stages it reports true for. FailCreateProgram makes CreateProgram
	// return 0.
	FailCreateShader  func(stage shader.Stage) bool
	FailCreateProgram bool

	next     uint32
	current  uint32
	shaders  map[uint32]*fakeShader
	programs map[uint32]*fakeProgram
	deletes  map[uint32]int
	errors   []string
}

var _ shader.Context = (*Context)(nil)

// New returns a Context using DefaultCompiler and DefaultLinker.
func New() *Context {
	return &Context{
		Compiler: DefaultCompiler,
		Linker:   DefaultLinker,
		shaders:  make(map[uint32]*fakeShader),
		programs: make(map[uint32]*fakeProgram),
		deletes:  make(map[uint32]int),
	}
}

func (c *Context) errorf(format string, args ...any) {
	c.errors = append(c.errors, fmt.Sprintf(format, args...))
}

// Errors returns the misuse recorded so far.
func (c *Context) Errors() []string { return c.errors }

func (c *Context) CreateShader(stage shader.Stage) uint32 {
	if c.FailCreateShader != nil && c.FailCreateShader(stage) {
		return 0
	}
	c.next++
	c.shaders[c.next] = &fakeShader{stage: stage}
	return c.next
}

func (c *Context) shader(sh uint32) *fakeShader {
	s, ok := c.shaders[sh]
	if !ok || s.deleted {
		c.errorf("invalid shader %d", sh)
		return nil
	}
	return s
}

func (c *Context) CompileShader(sh uint32, source string) {
	s := c.shader(sh)
	if s == nil {
		return
	}
	s.source = source
	s.compiled, s.log = c.Compiler(s.stage, source)
}

func (c *Context) ShaderCompiled(sh uint32) bool {
	s := c.shader(sh)
	return s != nil && s.compiled
}

func (c *Context) ShaderInfoLogLength(sh uint32) int32 {
	if s := c.shader(sh); s != nil {
		return logLength(s.log)
	}
	return 0
}

func (c *Context) ShaderInfoLog(sh uint32, buf []byte) int32 {
	if s := c.shader(sh); s != nil {
		return copyLog(buf, s.log)
	}
	return 0
}

func (c *Context) DeleteShader(sh uint32) {
	if sh == 0 {
		return
	}
	c.deletes[sh]++
	if s := c.shader(sh); s != nil {
		s.deleted = true
	}
}

func (c *Context) CreateProgram() uint32 {
	if c.FailCreateProgram {
		return 0
	}
	c.next++
	c.programs[c.next] = &fakeProgram{
		locations: make(map[string]int32),
		values:    make(map[int32]any),
	}
	return c.next
}

func (c *Context) program(prog uint32) *fakeProgram {
	p, ok := c.programs[prog]
	if !ok || p.deleted {
		c.errorf("invalid program %d", prog)
		return nil
	}
	return p
}

func (c *Context) AttachShader(prog, sh uint32) {
	p, s := c.program(prog), c.shader(sh)
	if p == nil || s == nil {
		return
	}
	p.attached = append(p.attached, sh)
}

func (c *Context) LinkProgram(prog uint32) {
	p := c.program(prog)
	if p == nil {
		return
	}
	stages := make(map[shader.Stage]string)
	for _, sh := range p.attached {
		s := c.shaders[sh]
		if !s.compiled {
			p.linked, p.log = false, fmt.Sprintf("error: %s shader %d is not compiled", s.stage, sh)
			return
		}
		stages[s.stage] = s.source
	}
	p.linked, p.log = c.Linker(stages)
	if !p.linked {
		return
	}
	var loc int32
	for _, st := range []shader.Stage{shader.Vertex, shader.Geometry, shader.Fragment} {
		for _, name := range Uniforms(stages[st]) {
			if _, ok := p.locations[name]; !ok {
				p.locations[name] = loc
				loc++
			}
		}
	}
}

func (c *Context) ProgramLinked(prog uint32) bool {
	p := c.program(prog)
	return p != nil && p.linked
}

func (c *Context) ProgramInfoLogLength(prog uint32) int32 {
	if p := c.program(prog); p != nil {
		return logLength(p.log)
	}
	return 0
}

func (c *Context) ProgramInfoLog(prog uint32, buf []byte) int32 {
	if p := c.program(prog); p != nil {
		return copyLog(buf, p.log)
	}
	return 0
}

func (c *Context) DeleteProgram(prog uint32) {
	if prog == 0 {
		return
	}
	c.deletes[prog]++
	if p := c.program(prog); p != nil {
		p.deleted = true
	}
}

func (c *Context) UseProgram(prog uint32) {
	if prog == 0 {
		c.current = 0
		return
	}
	p := c.program(prog)
	if p == nil {
		return
	}
	if !p.linked {
		c.errorf("use of unlinked program %d", prog)
		return
	}
	c.current = prog
}

func (c *Context) UniformLocation(prog uint32, name string) int32 {
	p := c.program(prog)
	if p == nil {
		return -1
	}
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	return -1
}

func (c *Context) upload(loc int32, v any) {
	if loc == -1 {
		return
	}
	if c.current == 0 {
		c.errorf("uniform upload to location %d with no current program", loc)
		return
	}
	p := c.programs[c.current]
	if !p.hasLocation(loc) {
		c.errorf("location %d is not a uniform of program %d", loc, c.current)
		return
	}
	p.values[loc] = v
}

func (p *fakeProgram) hasLocation(loc int32) bool {
	for _, l := range p.locations {
		if l == loc {
			return true
		}
	}
	return false
}

func (c *Context) Uniform1i(loc int32, v int32) { c.upload(loc, v) }

func (c *Context) Uniform1f(loc int32, v float32) { c.upload(loc, v) }

func (c *Context) Uniform3f(loc int32, v0, v1, v2 float32) {
	c.upload(loc, [3]float32{v0, v1, v2})
}

func (c *Context) Uniform4f(loc int32, v0, v1, v2, v3 float32) {
	c.upload(loc, [4]float32{v0, v1, v2, v3})
}

func (c *Context) UniformMatrix4fv(loc int32, m *[16]float32) { c.upload(loc, *m) }

// Current returns the current program, or zero.
func (c *Context) Current() uint32 { return c.current }

// Value returns the value last uploaded to the named uniform of prog.
// Values are int32, float32, [3]float32, [4]float32 or [16]float32.
func (c *Context) Value(prog uint32, name string) (any, bool) {
	p, ok := c.programs[prog]
	if !ok {
		return nil, false
	}
	loc, ok := p.locations[name]
	if !ok {
		return nil, false
	}
	v, ok := p.values[loc]
	return v, ok
}

// Deletes returns how many times the name was passed to a delete call.
func (c *Context) Deletes(name uint32) int { return c.deletes[name] }

// LiveShaders returns the number of shader objects not yet deleted.
func (c *Context) LiveShaders() int {
	n := 0
	for _, s := range c.shaders {
		if !s.deleted {
			n++
		}
	}
	return n
}

// LivePrograms returns the number of program objects not yet deleted.
func (c *Context) LivePrograms() int {
	n := 0
	for _, p := range c.programs {
		if !p.deleted {
			n++
		}
	}
	return n
}

// logLength reports the length GL would: the log plus its NUL, or 0.
func logLength(log string) int32 {
	if log == "" {
		return 0
	}
	return int32(len(log) + 1)
}

// copyLog writes log and a NUL into buf, truncating to fit, and returns
// the bytes written excluding the NUL.
func copyLog(buf []byte, log string) int32 {
	if len(buf) == 0 {
		return 0
	}
	n := copy(buf[:len(buf)-1], log)
	buf[n] = 0
	return int32(n)
}

var (
	uniformDecl = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?uniform\s+(?:\w+\s+)*?\w+\s+(\w+)\s*(?:\[[^\]]*\])?\s*;`)
	varyingDecl = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?(?:(?:flat|smooth|noperspective)\s+)?(in|out)\s+\w+\s+(\w+)\s*(?:\[[^\]]*\])?\s*;`)
)

// Uniforms returns the uniform names declared in source, in order.
func Uniforms(source string) []string {
	var names []string
	for _, m := range uniformDecl.FindAllStringSubmatch(source, -1) {
		names = append(names, m[1])
	}
	return names
}

func varyings(source, dir string) map[string]bool {
	out := make(map[string]bool)
	for _, m := range varyingDecl.FindAllStringSubmatch(source, -1) {
		if m[1] == dir {
			out[m[2]] = true
		}
	}
	return out
}

// DefaultCompiler rejects sources with no main function, with an #error
// directive, or with unbalanced braces or parentheses. Logs follow the
// "0:LINE: error: ..." form most drivers use.
func DefaultCompiler(stage shader.Stage, source string) (bool, string) {
	for i, line := range strings.Split(source, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#error") {
			return false, fmt.Sprintf("0:%d: error: %s", i+1, strings.TrimSpace(line))
		}
	}
	braces, parens := 0, 0
	for _, r := range source {
		switch r {
		case '{':
			braces++
		case '}':
			braces--
		case '(':
			parens++
		case ')':
			parens--
		}
		if braces < 0 || parens < 0 {
			break
		}
	}
	if braces != 0 || parens != 0 {
		lines := strings.Count(source, "\n") + 1
		return false, fmt.Sprintf("0:%d: error: syntax error, unexpected end of file", lines)
	}
	if !strings.Contains(source, "void main") {
		return false, "0:1: error: missing main function"
	}
	return true, ""
}

// DefaultLinker fails when a fragment input has no matching output in the
// geometry stage, or in the vertex stage when there is no geometry stage.
func DefaultLinker(stages map[shader.Stage]string) (bool, string) {
	if _, ok := stages[shader.Vertex]; !ok {
		return false, "error: no vertex shader attached"
	}
	prev := stages[shader.Vertex]
	prevStage := shader.Vertex
	if geom, ok := stages[shader.Geometry]; ok {
		prev, prevStage = geom, shader.Geometry
	}
	outs := varyings(prev, "out")
	var missing []string
	for name := range varyings(stages[shader.Fragment], "in") {
		if !outs[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		// Map order is random; keep the log stable.
		slices.Sort(missing)
		var b strings.Builder
		for _, name := range missing {
			fmt.Fprintf(&b, "error: fragment shader input '%s' has no matching output in %s shader\n", name, strings.ToLower(prevStage.String()))
		}
		return false, strings.TrimSuffix(b.String(), "\n")
	}
	return true, ""
}
