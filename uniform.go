package shader

import "github.com/go-gl/mathgl/mgl32"

// Location returns the cached location of the named uniform, or -1 if the
// name does not resolve to an active uniform of the program.
func (p *Program) Location(name string) int32 {
	if p.handle == 0 {
		return -1
	}
	if loc, ok := p.locations[name]; ok {
		return loc
	}

	loc := p.ctx.UniformLocation(p.handle, name)
	p.locations[name] = loc
	if loc < 0 {
		p.opts.logger.Debug("uniform not found", "handle", p.handle, "name", name)
		if p.opts.missingUniform != nil {
			p.opts.missingUniform(name)
		}
	}
	return loc
}

// The setters below resolve name in p and upload to the current program of
// the context. They do not activate p. An unknown name is a silent no-op.

// SetBool uploads v as an integer 0 or 1.
func (p *Program) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	p.SetInt(name, i)
}

// SetInt uploads a 32-bit integer. Sampler units are set this way.
func (p *Program) SetInt(name string, v int32) {
	if loc := p.Location(name); loc >= 0 {
		p.ctx.Uniform1i(loc, v)
	}
}

// SetFloat uploads a 32-bit float.
func (p *Program) SetFloat(name string, v float32) {
	if loc := p.Location(name); loc >= 0 {
		p.ctx.Uniform1f(loc, v)
	}
}

// SetVec3 uploads a 3-component float vector.
func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	if loc := p.Location(name); loc >= 0 {
		p.ctx.Uniform3f(loc, v[0], v[1], v[2])
	}
}

// SetVec4 uploads a 4-component float vector, such as an RGBA color.
func (p *Program) SetVec4(name string, v mgl32.Vec4) {
	if loc := p.Location(name); loc >= 0 {
		p.ctx.Uniform4f(loc, v[0], v[1], v[2], v[3])
	}
}

// SetMat4 uploads m as stored. mgl32.Mat4 is column-major, which is what
// GL expects, so no transpose is applied.
func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	if loc := p.Location(name); loc >= 0 {
		a := [16]float32(m)
		p.ctx.UniformMatrix4fv(loc, &a)
	}
}
