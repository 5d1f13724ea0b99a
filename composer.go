package warpfx

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Pass is one stage of the composition pipeline. Render reads src (the
// previous pass's output; unused by the first pass) and draws into dst.
type Pass interface {
	Render(src, dst *ebiten.Image)
	Name() string
}

// RenderPass draws a scene.
type RenderPass struct {
	Scene *Scene
}

// NewRenderPass creates a pass that draws s.
func NewRenderPass(s *Scene) *RenderPass {
	return &RenderPass{Scene: s}
}

// Render draws the scene into dst; src is ignored.
func (p *RenderPass) Render(_, dst *ebiten.Image) {
	p.Scene.Draw(dst)
}

// Name returns "render".
func (p *RenderPass) Name() string { return "render" }

// ShaderPass runs a Filter over the previous pass's output.
type ShaderPass struct {
	Filter Filter
	name   string
}

// NewShaderPass wraps f under the given name.
func NewShaderPass(name string, f Filter) *ShaderPass {
	return &ShaderPass{Filter: f, name: name}
}

// Render applies the filter from src into dst.
func (p *ShaderPass) Render(src, dst *ebiten.Image) {
	p.Filter.Apply(src, dst)
}

// Name returns the pass name.
func (p *ShaderPass) Name() string { return p.name }

// Composer runs an ordered, fixed list of passes. Intermediate results
// ping-pong between two offscreen buffers; the last pass draws to the
// target handed to Render.
type Composer struct {
	passes      []Pass
	read, write *RenderTexture
}

// NewComposer creates a composer with buffers of the given size. The pass
// list cannot be changed afterwards.
func NewComposer(w, h int, passes ...Pass) *Composer {
	return &Composer{
		passes: append([]Pass(nil), passes...),
		read:   NewRenderTexture(w, h),
		write:  NewRenderTexture(w, h),
	}
}

// Passes returns a copy of the pass list in execution order.
func (c *Composer) Passes() []Pass {
	return append([]Pass(nil), c.passes...)
}

// Size returns the offscreen buffer size.
func (c *Composer) Size() (w, h int) {
	return c.read.Width(), c.read.Height()
}

// SetSize resizes both offscreen buffers.
func (c *Composer) SetSize(w, h int) {
	r := c.read.Resize(w, h)
	wr := c.write.Resize(w, h)
	if r || wr {
		Logger().Debug("composer resized", "width", w, "height", h)
	}
}

// Render runs every pass in order, the last one into target.
func (c *Composer) Render(target *ebiten.Image) {
	last := len(c.passes) - 1
	for i, p := range c.passes {
		if i == last {
			p.Render(c.read.Image(), target)
			return
		}
		c.write.Clear()
		p.Render(c.read.Image(), c.write.Image())
		c.read, c.write = c.write, c.read
	}
}

// Dispose releases the offscreen buffers.
func (c *Composer) Dispose() {
	c.read.Dispose()
	c.write.Dispose()
}
