package warpfx

import "testing"

func TestNewRenderTextureSize(t *testing.T) {
	rt := NewRenderTexture(64, 32)
	if rt.Width() != 64 || rt.Height() != 32 {
		t.Errorf("size = %dx%d, want 64x32", rt.Width(), rt.Height())
	}
	b := rt.Image().Bounds()
	if b.Dx() != 64 || b.Dy() != 32 {
		t.Errorf("image bounds = %v", b)
	}
}

func TestNewRenderTextureMinimumSize(t *testing.T) {
	rt := NewRenderTexture(0, -5)
	if rt.Width() != 1 || rt.Height() != 1 {
		t.Errorf("size = %dx%d, want 1x1", rt.Width(), rt.Height())
	}
}

func TestRenderTextureResize(t *testing.T) {
	rt := NewRenderTexture(8, 8)
	img := rt.Image()
	if rt.Resize(8, 8) {
		t.Error("Resize to the same size should be a no-op")
	}
	if rt.Image() != img {
		t.Error("image replaced on no-op resize")
	}
	if !rt.Resize(16, 4) {
		t.Error("Resize to a new size should reallocate")
	}
	if rt.Width() != 16 || rt.Height() != 4 || rt.Image().Bounds().Dx() != 16 {
		t.Errorf("size = %dx%d after resize", rt.Width(), rt.Height())
	}
}

func TestRenderTextureDispose(t *testing.T) {
	rt := NewRenderTexture(4, 4)
	rt.Dispose()
	if rt.Image() != nil {
		t.Error("Image() should be nil after Dispose")
	}
}

func TestColorToRGBA(t *testing.T) {
	c := Color{R: 1, G: 0.5, B: 0, A: 1}.toRGBA()
	r, g, b, a := c.RGBA()
	if r>>8 != 255 || g>>8 != 128 || b != 0 || a>>8 != 255 {
		t.Errorf("RGBA() = %d %d %d %d", r>>8, g>>8, b>>8, a>>8)
	}
	if clamp01(2) != 1 || clamp01(-1) != 0 {
		t.Error("clamp01 out of range")
	}
}
