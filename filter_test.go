package warpfx

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestDistortionFilterUniforms(t *testing.T) {
	p := Params{Progress: 0.5, Scale: 0.779, TimeChange: 0.4, CosChange: 1.07}
	f := NewDistortionFilter(DefaultParams)
	f.SetUniforms(2, p)
	f.syncUniforms()

	want := map[string]float32{
		"Time":       2,
		"Scale":      0.779,
		"TimeChange": 0.4,
		"CosChange":  1.07,
		"Progress":   0.5,
	}
	for name, v := range want {
		got, ok := f.uniforms[name].(float32)
		if !ok {
			t.Errorf("uniform %s missing or not float32", name)
			continue
		}
		if got != v {
			t.Errorf("uniform %s = %v, want %v", name, got, v)
		}
	}
}

func TestDistortionFilterSetUniformsCopies(t *testing.T) {
	f := NewDistortionFilter(DefaultParams)
	p := DefaultParams
	f.SetUniforms(1, p)
	p.Progress = 0
	if f.Params.Progress != DefaultParams.Progress {
		t.Error("filter must hold its own copy of the snapshot")
	}
}

func TestRGBShiftFilterDefaults(t *testing.T) {
	f := NewRGBShiftFilter(DefaultRGBShiftAmount)
	assertNear(t, "Amount", f.Amount, 0.0015)
	assertNear(t, "Angle", f.Angle, 0)
	if _, ok := f.uniforms["Offset"].([]float32); !ok {
		t.Error("Offset uniform should be a []float32")
	}
}

func TestFiltersImplementFilter(t *testing.T) {
	var _ Filter = NewDistortionFilter(DefaultParams)
	var _ Filter = NewRGBShiftFilter(0)
}

func TestShadersCompile(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"distortion", distortionShaderSrc},
		{"rgbshift", rgbShiftShaderSrc},
		{"quad", quadShaderSrc},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ebiten.NewShader([]byte(tt.src))
			if err != nil {
				t.Fatalf("NewShader: %v", err)
			}
			s.Deallocate()
		})
	}
}
