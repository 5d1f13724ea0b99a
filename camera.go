package warpfx

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Default camera placement, matching the framing the planes were laid out for.
var (
	DefaultCameraPosition = mgl64.Vec3{1.377324613945763, -0.02874848137823341, 20.9857456502165847}
	DefaultCameraFOV      = 70.0
	DefaultCameraNear     = 0.001
	DefaultCameraFar      = 1000.0
)

// minOrbitRadius keeps Dolly from collapsing the camera onto its target.
const minOrbitRadius = 0.01

// moveAnim holds active move-to tweens for each camera axis.
type moveAnim struct {
	tweens [3]*gween.Tween
	done   [3]bool
}

// Camera is a perspective camera looking from Position at Target.
type Camera struct {
	// Position is the eye point in world space.
	Position mgl64.Vec3
	// Target is the point the camera looks at and orbits around.
	Target mgl64.Vec3
	// Up is the world-space up hint used to build the view matrix.
	Up mgl64.Vec3
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Near and Far bound the visible depth range.
	Near, Far float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	aspect float64

	// cached matrices
	view, proj mgl64.Mat4
	dirty      bool

	move *moveAnim
}

// NewCamera creates a camera with the default placement and the given viewport.
func NewCamera(viewport Rect) *Camera {
	c := &Camera{
		Position: DefaultCameraPosition,
		Up:       mgl64.Vec3{0, 1, 0},
		FOV:      DefaultCameraFOV,
		Near:     DefaultCameraNear,
		Far:      DefaultCameraFar,
		dirty:    true,
	}
	c.SetViewport(viewport)
	return c
}

// SetViewport sets the screen rectangle and recomputes the aspect ratio.
func (c *Camera) SetViewport(vp Rect) {
	c.Viewport = vp
	if vp.Height > 0 {
		c.aspect = vp.Width / vp.Height
	} else {
		c.aspect = 1
	}
	c.dirty = true
}

// Aspect returns the width/height ratio derived from the viewport.
func (c *Camera) Aspect() float64 {
	return c.aspect
}

// MarkDirty forces the view and projection matrices to be rebuilt. Call after writing
// Position, Target, Up or FOV directly.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

// MoveTo animates Position to pos over duration seconds.
func (c *Camera) MoveTo(pos mgl64.Vec3, duration float32, easeFn ease.TweenFunc) {
	c.move = &moveAnim{tweens: [3]*gween.Tween{
		gween.New(float32(c.Position.X()), float32(pos.X()), duration, easeFn),
		gween.New(float32(c.Position.Y()), float32(pos.Y()), duration, easeFn),
		gween.New(float32(c.Position.Z()), float32(pos.Z()), duration, easeFn),
	}}
}

// Moving reports whether a MoveTo animation is in progress.
func (c *Camera) Moving() bool {
	return c.move != nil
}

// update advances the move animation. Called from App.Update.
func (c *Camera) update(dt float32) {
	if c.move == nil {
		return
	}
	for i, tw := range c.move.tweens {
		if c.move.done[i] {
			continue
		}
		val, done := tw.Update(dt)
		c.Position[i] = float64(val)
		c.move.done[i] = done
	}
	c.dirty = true
	if c.move.done[0] && c.move.done[1] && c.move.done[2] {
		c.move = nil
	}
}

// Orbit rotates Position around Target by yaw (about world Y) and pitch
// (toward the poles), both in radians. Pitch is clamped short of the poles.
func (c *Camera) Orbit(yaw, pitch float64) {
	offset := c.Position.Sub(c.Target)
	radius := offset.Len()
	if radius == 0 {
		return
	}
	theta := math.Atan2(offset.X(), offset.Z())
	phi := math.Acos(mgl64.Clamp(offset.Y()/radius, -1, 1))

	const eps = 1e-6
	theta += yaw
	phi = mgl64.Clamp(phi+pitch, eps, math.Pi-eps)

	sinPhi := math.Sin(phi)
	c.Position = c.Target.Add(mgl64.Vec3{
		radius * sinPhi * math.Sin(theta),
		radius * math.Cos(phi),
		radius * sinPhi * math.Cos(theta),
	})
	c.dirty = true
}

// Dolly scales the distance to Target by factor (<1 moves closer).
func (c *Camera) Dolly(factor float64) {
	if factor <= 0 {
		return
	}
	offset := c.Position.Sub(c.Target)
	radius := offset.Len()
	if radius == 0 {
		return
	}
	next := math.Max(radius*factor, minOrbitRadius)
	c.Position = c.Target.Add(offset.Mul(next / radius))
	c.dirty = true
}

// computeMatrices rebuilds the cached view and projection matrices if dirty.
func (c *Camera) computeMatrices() {
	if !c.dirty {
		return
	}
	c.view = mgl64.LookAtV(c.Position, c.Target, c.Up)
	c.proj = mgl64.Perspective(mgl64.DegToRad(c.FOV), c.aspect, c.Near, c.Far)
	c.dirty = false
}

// ViewProjection returns the combined projection * view matrix.
func (c *Camera) ViewProjection() mgl64.Mat4 {
	c.computeMatrices()
	return c.proj.Mul4(c.view)
}

// Project maps a world-space point to viewport pixels. depth is the distance
// along the view direction. ok is false when the point lies outside
// (Near, Far]; sx and sy are undefined in that case.
func (c *Camera) Project(p mgl64.Vec3) (sx, sy, depth float64, ok bool) {
	c.computeMatrices()
	eye := c.view.Mul4x1(p.Vec4(1))
	depth = -eye.Z()
	if !(depth > c.Near && depth <= c.Far) {
		return 0, 0, depth, false
	}
	clip := c.proj.Mul4x1(eye)
	ndcX := clip.X() / clip.W()
	ndcY := clip.Y() / clip.W()
	vp := c.Viewport
	sx = vp.X + (ndcX+1)*0.5*vp.Width
	sy = vp.Y + (1-ndcY)*0.5*vp.Height
	return sx, sy, depth, true
}
