package warpfx

import (
	"fmt"
	"maps"

	"github.com/hajimehoshi/ebiten/v2"
)

// Uniform names shared by the quad program and the loop.
const (
	UniformTime   = "Time"
	UniformUVRate = "UVRate"
)

// quadShaderSrc samples the bound texture with a cover-fit UV rate so images
// of any aspect fill the plane without stretching.
const quadShaderSrc = `//kage:unit pixels
package main

var Time float
var UVRate vec2

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	origin := imageSrc0Origin()
	size := imageSrc0Size()
	uv := (src - origin) / size
	uv = (uv-0.5)*UVRate + 0.5
	return imageSrc0At(uv*size+origin) * color
}
`

// Program is a shader shared by every material created from it. The source
// is immutable; compilation happens once, on first use.
type Program struct {
	name   string
	src    []byte
	shader *ebiten.Shader
	err    error
}

// NewProgram wraps Kage source. Nothing is compiled until Compile or Shader.
func NewProgram(name string, src []byte) *Program {
	return &Program{name: name, src: src}
}

// Name returns the program's label.
func (p *Program) Name() string {
	return p.name
}

// Compile compiles the program if it has not been compiled yet. A failed
// compilation is remembered and returned on every later call.
func (p *Program) Compile() error {
	if p.shader != nil || p.err != nil {
		return p.err
	}
	s, err := ebiten.NewShader(p.src)
	if err != nil {
		p.err = fmt.Errorf("warpfx: compile program %q: %w", p.name, err)
		return p.err
	}
	p.shader = s
	Logger().Debug("program compiled", "program", p.name)
	return nil
}

// Shader returns the compiled shader, compiling on first use.
// Panics if compilation fails; use Compile to handle the error instead.
func (p *Program) Shader() *ebiten.Shader {
	if err := p.Compile(); err != nil {
		panic(err.Error())
	}
	return p.shader
}

// --- Lazy shared program (no sync.Once — rendering is single-threaded) ---

var quadProgram *Program

// QuadProgram returns the built-in textured-quad program.
func QuadProgram() *Program {
	if quadProgram == nil {
		quadProgram = NewProgram("quad", []byte(quadShaderSrc))
	}
	return quadProgram
}

// Material is a per-instance parameter block over a shared Program: its own
// uniform values and bound texture. Clone a template to give each quad its
// own texture while reusing the compiled shader.
type Material struct {
	program  *Program
	uniforms map[string]any
	Texture  *ebiten.Image
}

// NewMaterial creates a material with Time=0 and UVRate=(1,1).
func NewMaterial(p *Program) *Material {
	m := &Material{
		program:  p,
		uniforms: make(map[string]any, 2),
	}
	m.SetFloat(UniformTime, 0)
	m.SetVec2(UniformUVRate, 1, 1)
	return m
}

// Program returns the shared program.
func (m *Material) Program() *Program {
	return m.program
}

// SetFloat stores a scalar uniform.
func (m *Material) SetFloat(name string, v float64) {
	m.uniforms[name] = float32(v)
}

// Float returns a scalar uniform.
func (m *Material) Float(name string) (float64, bool) {
	v, ok := m.uniforms[name].(float32)
	return float64(v), ok
}

// SetVec2 stores a vec2 uniform, reusing the existing backing slice.
func (m *Material) SetVec2(name string, x, y float64) {
	if s, ok := m.uniforms[name].([]float32); ok && len(s) == 2 {
		s[0], s[1] = float32(x), float32(y)
		return
	}
	m.uniforms[name] = []float32{float32(x), float32(y)}
}

// Vec2 returns a vec2 uniform.
func (m *Material) Vec2(name string) (Vec2, bool) {
	s, ok := m.uniforms[name].([]float32)
	if !ok || len(s) != 2 {
		return Vec2{}, false
	}
	return Vec2{float64(s[0]), float64(s[1])}, true
}

// Uniforms returns the uniform map handed to ebiten. Callers must not keep it.
func (m *Material) Uniforms() map[string]any {
	return m.uniforms
}

// Clone returns a material sharing the program and texture but owning a
// copy of every uniform value.
func (m *Material) Clone() *Material {
	c := &Material{
		program:  m.program,
		uniforms: maps.Clone(m.uniforms),
		Texture:  m.Texture,
	}
	for k, v := range c.uniforms {
		if s, ok := v.([]float32); ok {
			c.uniforms[k] = append([]float32(nil), s...)
		}
	}
	return c
}

// CoverUVRate returns the UV scale that fits an image of imageAspect onto a
// plane of planeAspect without distortion, cropping the excess.
func CoverUVRate(planeAspect, imageAspect float64) Vec2 {
	if planeAspect <= 0 || imageAspect <= 0 {
		return Vec2{1, 1}
	}
	if imageAspect > planeAspect {
		return Vec2{X: planeAspect / imageAspect, Y: 1}
	}
	return Vec2{X: 1, Y: imageAspect / planeAspect}
}
