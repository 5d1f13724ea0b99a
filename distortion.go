package warpfx

import "math"

// warpStage is one additive perturbation of the centered coordinate:
//
//	p += CosChange * Amp * cos(Scale*Freq*p.yx + TimeChange*Speed*time + Phase)
type warpStage struct {
	Amp, Freq, Speed float64
	Phase            Vec2
}

// warpStages is the fixed perturbation table, applied in order.
var warpStages = [4]warpStage{
	{Amp: 0.1, Freq: 3.0, Speed: 1.0, Phase: Vec2{1.2, 3.4}},
	{Amp: 0.1, Freq: 3.7, Speed: 1.4, Phase: Vec2{2.2, 3.4}},
	{Amp: 0.1, Freq: 5.0, Speed: 2.6, Phase: Vec2{4.2, 1.4}},
	{Amp: 0.3, Freq: 7.0, Speed: 3.6, Phase: Vec2{10.2, 3.4}},
}

// WarpField returns the domain-warped centered coordinate for uv: uv is
// remapped to [-1, 1]² and pushed through the four perturbation stages.
func WarpField(uv Vec2, p Params, time float64) Vec2 {
	x := 2*uv.X - 1
	y := 2*uv.Y - 1
	for _, s := range warpStages {
		k := p.Scale * s.Freq
		t := p.TimeChange * s.Speed * time
		a := p.CosChange * s.Amp
		// Both components read the pre-step value (swizzled), so compute
		// the pair before assigning.
		nx := x + a*math.Cos(k*y+t+s.Phase.X)
		ny := y + a*math.Cos(k*x+t+s.Phase.Y)
		x, y = nx, ny
	}
	return Vec2{x, y}
}

// Warp returns the coordinate the distortion pass samples for uv:
// U blends from uv.X toward the warped radial distance, V blends toward 0.5.
// Progress 0 returns uv unchanged. The result is not clamped; sampling
// clamps to the buffer edge.
func Warp(uv Vec2, p Params, time float64) Vec2 {
	d := WarpField(uv, p, time).Length()
	return Vec2{
		X: lerp(uv.X, d, p.Progress),
		Y: lerp(uv.Y, 0.5, p.Progress),
	}
}

// lerp matches GLSL mix: a*(1-t) + b*t.
func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}
