package warpfx

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrNoTextures is returned when a quad list is requested for zero images.
var ErrNoTextures = errors.New("warpfx: no textures")

// SlotX returns the horizontal offset of slot i in a row of n quads, one
// world unit apart and centered on the origin.
func SlotX(i, n int) float64 {
	return float64(i) - float64(n-1)/2
}

// BuildQuads creates one quad per texture, in order, and adds them to the
// scene root. Each quad gets its own Clone of template with the texture
// bound and a cover-fit UVRate; the geometry and program are shared.
// Nothing is added to the scene if any texture is nil.
func BuildQuads(s *Scene, template *Material, textures []*ebiten.Image, geom PlaneGeometry) ([]*Node, error) {
	if len(textures) == 0 {
		return nil, ErrNoTextures
	}
	for i, t := range textures {
		if t == nil {
			return nil, fmt.Errorf("warpfx: texture %d is nil", i)
		}
	}

	planeAspect := 1.0
	if geom.Height > 0 {
		planeAspect = geom.Width / geom.Height
	}

	quads := make([]*Node, len(textures))
	for i, t := range textures {
		m := template.Clone()
		m.Texture = t
		b := t.Bounds()
		rate := CoverUVRate(planeAspect, float64(b.Dx())/float64(max(b.Dy(), 1)))
		m.SetVec2(UniformUVRate, rate.X, rate.Y)

		q := NewQuad(fmt.Sprintf("quad-%d", i), geom, m)
		q.X = SlotX(i, len(textures))
		s.Root().AddChild(q)
		quads[i] = q
	}
	return quads, nil
}
