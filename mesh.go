package warpfx

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// PlaneGeometry is a flat rectangle centered on its node's position, lying
// in the node's XY plane. Quads share one geometry value.
type PlaneGeometry struct {
	Width, Height float64
}

// DefaultPlaneGeometry is the 1.9:1 card the planes are laid out with.
var DefaultPlaneGeometry = PlaneGeometry{Width: 1.9 / 2, Height: 1.0 / 2}

// quadIndices triangulates the four corners emitted by projectQuad
// (top-left, top-right, bottom-right, bottom-left).
var quadIndices = []uint16{0, 1, 2, 0, 2, 3}

// projectedCorner is one quad corner in viewport pixels.
type projectedCorner struct {
	x, y, depth float64
}

// projectQuad projects the node's four world-space corners through cam into
// n.projected. Returns the mean depth for sorting; ok is false when any
// corner falls outside the camera's depth range.
func projectQuad(n *Node, cam *Camera) (depth float64, ok bool) {
	hw := n.Geometry.Width * n.worldScaleX / 2
	hh := n.Geometry.Height * n.worldScaleY / 2
	c := n.worldPos
	corners := [4]mgl64.Vec3{
		c.Add(mgl64.Vec3{-hw, hh, 0}),
		c.Add(mgl64.Vec3{hw, hh, 0}),
		c.Add(mgl64.Vec3{hw, -hh, 0}),
		c.Add(mgl64.Vec3{-hw, -hh, 0}),
	}
	sum := 0.0
	for i, p := range corners {
		sx, sy, d, inside := cam.Project(p)
		if !inside {
			return 0, false
		}
		n.projected[i] = projectedCorner{sx, sy, d}
		sum += d
	}
	return sum / 4, true
}

// quadVertices writes the four ebiten vertices for projected corners into dst,
// mapping the full texture (srcW x srcH pixels at srcX, srcY) onto the quad.
// The tint is premultiplied; its alpha already carries the node's world alpha.
func quadVertices(dst []ebiten.Vertex, corners [4]projectedCorner, srcX, srcY, srcW, srcH float32, tint Color) {
	cr := float32(tint.R * tint.A)
	cg := float32(tint.G * tint.A)
	cb := float32(tint.B * tint.A)
	ca := float32(tint.A)
	src := [4][2]float32{
		{srcX, srcY},
		{srcX + srcW, srcY},
		{srcX + srcW, srcY + srcH},
		{srcX, srcY + srcH},
	}
	for i := range corners {
		dst[i] = ebiten.Vertex{
			DstX:   float32(corners[i].x),
			DstY:   float32(corners[i].y),
			SrcX:   src[i][0],
			SrcY:   src[i][1],
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		}
	}
}
