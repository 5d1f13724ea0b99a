package warpfx

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Filter is the interface for full-buffer effects run by a ShaderPass.
type Filter interface {
	// Apply renders src into dst with the filter effect.
	Apply(src, dst *ebiten.Image)
}

// --- Kage shader sources ---
// All shaders use //kage:unit pixels. UVs are flipped to v-up before the
// math runs and flipped back for sampling, so patterns match the Go
// reference in distortion.go. Sampling clamps to the buffer edge.

const distortionShaderSrc = `//kage:unit pixels
package main

var Time float
var Scale float
var TimeChange float
var CosChange float
var Progress float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	origin := imageSrc0Origin()
	size := imageSrc0Size()
	uv := (src - origin) / size
	uv = vec2(uv.x, 1-uv.y)

	p := 2*uv - 1
	p += CosChange * 0.1 * cos(Scale*3.0*p.yx+TimeChange*1.0*Time+vec2(1.2, 3.4))
	p += CosChange * 0.1 * cos(Scale*3.7*p.yx+TimeChange*1.4*Time+vec2(2.2, 3.4))
	p += CosChange * 0.1 * cos(Scale*5.0*p.yx+TimeChange*2.6*Time+vec2(4.2, 1.4))
	p += CosChange * 0.3 * cos(Scale*7.0*p.yx+TimeChange*3.6*Time+vec2(10.2, 3.4))

	next := vec2(mix(uv.x, length(p), Progress), mix(uv.y, 0.5, Progress))
	next = vec2(next.x, 1-next.y)
	pos := clamp(next*size, vec2(0.5), size-0.5)
	return imageSrc0At(pos + origin)
}
`

const rgbShiftShaderSrc = `//kage:unit pixels
package main

var Offset vec2

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	origin := imageSrc0Origin()
	size := imageSrc0Size()
	off := Offset * size
	lo := origin + 0.5
	hi := origin + size - 0.5
	r := imageSrc0At(clamp(src+off, lo, hi))
	ga := imageSrc0At(src)
	b := imageSrc0At(clamp(src-off, lo, hi))
	return vec4(r.r, ga.g, b.b, ga.a)
}
`

// --- Lazy shader compilation (no sync.Once — rendering is single-threaded) ---

var (
	distortionShader *ebiten.Shader
	rgbShiftShader   *ebiten.Shader
)

func ensureDistortionShader() *ebiten.Shader {
	if distortionShader == nil {
		s, err := ebiten.NewShader([]byte(distortionShaderSrc))
		if err != nil {
			panic("warpfx: failed to compile distortion shader: " + err.Error())
		}
		distortionShader = s
	}
	return distortionShader
}

func ensureRGBShiftShader() *ebiten.Shader {
	if rgbShiftShader == nil {
		s, err := ebiten.NewShader([]byte(rgbShiftShaderSrc))
		if err != nil {
			panic("warpfx: failed to compile rgb shift shader: " + err.Error())
		}
		rgbShiftShader = s
	}
	return rgbShiftShader
}

// --- DistortionFilter ---

// DistortionFilter warps the sampled coordinate of its source by the
// animated domain-warp field; see Warp for the exact math. Time and Params
// are written by the Loop every running frame.
type DistortionFilter struct {
	Time     float64
	Params   Params
	uniforms map[string]any
	shaderOp ebiten.DrawRectShaderOptions
}

// NewDistortionFilter creates a filter at time zero with the given parameters.
func NewDistortionFilter(p Params) *DistortionFilter {
	return &DistortionFilter{
		Params:   p,
		uniforms: make(map[string]any, 5),
	}
}

// SetUniforms copies the clock and a parameter snapshot into the filter.
func (f *DistortionFilter) SetUniforms(time float64, p Params) {
	f.Time = time
	f.Params = p
}

// syncUniforms writes the current fields into the uniform map.
// Scalar float32 boxing is unavoidable with Ebitengine's uniform API.
func (f *DistortionFilter) syncUniforms() {
	f.uniforms["Time"] = float32(f.Time)
	f.uniforms["Scale"] = float32(f.Params.Scale)
	f.uniforms["TimeChange"] = float32(f.Params.TimeChange)
	f.uniforms["CosChange"] = float32(f.Params.CosChange)
	f.uniforms["Progress"] = float32(f.Params.Progress)
}

// Apply renders the distortion from src into dst.
func (f *DistortionFilter) Apply(src, dst *ebiten.Image) {
	shader := ensureDistortionShader()
	f.syncUniforms()
	bounds := src.Bounds()
	f.shaderOp.Images[0] = src
	f.shaderOp.Uniforms = f.uniforms
	dst.DrawRectShader(bounds.Dx(), bounds.Dy(), shader, &f.shaderOp)
}

// --- RGBShiftFilter ---

// DefaultRGBShiftAmount is the shift used when the RGB shift pass is enabled
// without an explicit amount.
const DefaultRGBShiftAmount = 0.0015

// RGBShiftFilter offsets the red and blue channels in opposite directions.
// Amount is a fraction of the buffer size; Angle is in radians.
type RGBShiftFilter struct {
	Amount      float64
	Angle       float64
	uniforms    map[string]any
	offsetF32   [2]float32 // persistent buffer
	offsetSlice []float32  // persistent slice header
	shaderOp    ebiten.DrawRectShaderOptions
}

// NewRGBShiftFilter creates an RGB shift filter along the X axis.
func NewRGBShiftFilter(amount float64) *RGBShiftFilter {
	f := &RGBShiftFilter{
		Amount:   amount,
		uniforms: make(map[string]any, 1),
	}
	f.offsetSlice = f.offsetF32[:]
	f.uniforms["Offset"] = f.offsetSlice
	return f
}

// Apply renders the channel-shifted image from src into dst.
func (f *RGBShiftFilter) Apply(src, dst *ebiten.Image) {
	shader := ensureRGBShiftShader()
	sin, cos := math.Sincos(f.Angle)
	// Offset is flipped on Y so positive angles point up, as in UV space.
	f.offsetF32[0] = float32(f.Amount * cos)
	f.offsetF32[1] = float32(-f.Amount * sin)
	bounds := src.Bounds()
	f.shaderOp.Images[0] = src
	f.shaderOp.Uniforms = f.uniforms
	dst.DrawRectShader(bounds.Dx(), bounds.Dy(), shader, &f.shaderOp)
}
