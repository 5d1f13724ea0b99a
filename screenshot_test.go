package warpfx

import "testing"

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"hello", "hello"},
		{"hello world", "hello_world"},
		{"a/b\\c", "a_b_c"},
		{"ok-name.v2", "ok-name.v2"},
		{"", "unlabeled"},
		{"  ", "unlabeled"},
		{"special!@#$%", "special_____"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.input)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestUnpremultiply(t *testing.T) {
	pix := []byte{
		64, 32, 0, 128, // half alpha
		10, 20, 30, 255, // opaque, untouched
		0, 0, 0, 0, // transparent, untouched
	}
	unpremultiply(pix)
	want := []byte{127, 63, 0, 128, 10, 20, 30, 255, 0, 0, 0, 0}
	for i := range want {
		if pix[i] != want[i] {
			t.Fatalf("pix = %v, want %v", pix, want)
		}
	}
}

func TestScreenshotQueue(t *testing.T) {
	a := newTestApp(t, 1)
	a.Screenshot("one")
	a.Screenshot("two")
	if len(a.screenshotQueue) != 2 {
		t.Errorf("queue = %v", a.screenshotQueue)
	}
}
