package warpfx

import (
	"math"
	"testing"
)

var warpSamples = []Vec2{
	{0, 0}, {1, 1}, {0.5, 0.5}, {0.25, 0.75}, {0.9, 0.1}, {0.333, 0.666},
}

func TestWarpProgressZeroIsIdentity(t *testing.T) {
	p := DefaultParams
	p.Progress = 0
	for _, time := range []float64{0, 1.37, 250} {
		for _, uv := range warpSamples {
			got := Warp(uv, p, time)
			if got != uv {
				t.Errorf("Warp(%v, t=%v) = %v, want exactly %v", uv, time, got, uv)
			}
		}
	}
}

func TestWarpProgressOne(t *testing.T) {
	p := DefaultParams
	p.Progress = 1
	for _, uv := range warpSamples {
		got := Warp(uv, p, 3.1)
		if got.Y != 0.5 {
			t.Errorf("Warp(%v).Y = %v, want 0.5", uv, got.Y)
		}
		if want := WarpField(uv, p, 3.1).Length(); got.X != want {
			t.Errorf("Warp(%v).X = %v, want %v", uv, got.X, want)
		}
	}
}

func TestWarpDeterministic(t *testing.T) {
	p := Params{Progress: 0.37, Scale: 1.2, TimeChange: 2.5, CosChange: 3}
	for _, uv := range warpSamples {
		a := Warp(uv, p, 12.34)
		b := Warp(uv, p, 12.34)
		if math.Float64bits(a.X) != math.Float64bits(b.X) || math.Float64bits(a.Y) != math.Float64bits(b.Y) {
			t.Errorf("Warp(%v) not bit-identical: %v vs %v", uv, a, b)
		}
	}
}

func TestWarpFieldNoPerturbation(t *testing.T) {
	// CosChange 0 disables every stage: the field is just the centered uv.
	p := Params{Scale: 1, TimeChange: 1, CosChange: 0}
	got := WarpField(Vec2{0.75, 0.25}, p, 9)
	assertNear(t, "x", got.X, 0.5)
	assertNear(t, "y", got.Y, -0.5)
}

func TestWarpFieldSwizzle(t *testing.T) {
	// With Scale 0 every stage adds a constant; x depends on phase.x and y
	// on phase.y of each stage.
	p := Params{Scale: 0, TimeChange: 0, CosChange: 1}
	got := WarpField(Vec2{0.5, 0.5}, p, 0)
	wantX, wantY := 0.0, 0.0
	for _, s := range warpStages {
		wantX += s.Amp * math.Cos(s.Phase.X)
		wantY += s.Amp * math.Cos(s.Phase.Y)
	}
	assertNear(t, "x", got.X, wantX)
	assertNear(t, "y", got.Y, wantY)
}

func TestWarpScenario(t *testing.T) {
	p := Params{Progress: 0.5, Scale: 0.779, TimeChange: 0.4, CosChange: 1.07}
	const time = 2.0

	// Reference evaluation written out stage by stage.
	x, y := 0.0, 0.0 // 2*0.5-1
	stages := []struct{ a, f, s, px, py float64 }{
		{0.1, 3.0, 1.0, 1.2, 3.4},
		{0.1, 3.7, 1.4, 2.2, 3.4},
		{0.1, 5.0, 2.6, 4.2, 1.4},
		{0.3, 7.0, 3.6, 10.2, 3.4},
	}
	for _, s := range stages {
		nx := x + 1.07*s.a*math.Cos(0.779*s.f*y+0.4*s.s*time+s.px)
		ny := y + 1.07*s.a*math.Cos(0.779*s.f*x+0.4*s.s*time+s.py)
		x, y = nx, ny
	}
	d := math.Hypot(x, y)

	got := Warp(Vec2{0.5, 0.5}, p, time)
	assertNear(t, "U", got.X, 0.5*0.5+d*0.5)
	assertNear(t, "V", got.Y, 0.5)
}

func TestWarpUnclamped(t *testing.T) {
	// Large amplitudes push the distance past 1; Warp leaves it there.
	p := Params{Progress: 1, Scale: 0, TimeChange: 0, CosChange: 10}
	got := Warp(Vec2{1, 1}, p, 0)
	if got.X <= 1 {
		t.Errorf("U = %v, expected > 1 with CosChange 10", got.X)
	}
}

func TestLerpEndpoints(t *testing.T) {
	assertNear(t, "t=0", lerp(3, 7, 0), 3)
	assertNear(t, "t=1", lerp(3, 7, 1), 7)
	assertNear(t, "t=0.25", lerp(3, 7, 0.25), 4)
}
