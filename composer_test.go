package warpfx

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// recordPass logs its calls into a shared journal.
type recordPass struct {
	name    string
	journal *[]passCall
}

type passCall struct {
	name     string
	src, dst *ebiten.Image
}

func (p *recordPass) Render(src, dst *ebiten.Image) {
	*p.journal = append(*p.journal, passCall{p.name, src, dst})
}

func (p *recordPass) Name() string { return p.name }

func TestComposerPassOrder(t *testing.T) {
	var journal []passCall
	c := NewComposer(16, 8,
		&recordPass{"render", &journal},
		&recordPass{"distortion", &journal},
		&recordPass{"rgbshift", &journal},
	)
	target := ebiten.NewImage(16, 8)

	for frame := 0; frame < 2; frame++ {
		journal = journal[:0]
		c.Render(target)
		if len(journal) != 3 {
			t.Fatalf("frame %d: %d calls, want 3", frame, len(journal))
		}
		for i, want := range []string{"render", "distortion", "rgbshift"} {
			if journal[i].name != want {
				t.Errorf("frame %d: call %d = %s, want %s", frame, i, journal[i].name, want)
			}
		}
		// Each pass reads what the previous one wrote; only the last hits target.
		if journal[1].src != journal[0].dst || journal[2].src != journal[1].dst {
			t.Errorf("frame %d: passes not chained", frame)
		}
		if journal[2].dst != target {
			t.Errorf("frame %d: last pass did not draw to target", frame)
		}
		if journal[0].dst == target || journal[1].dst == target {
			t.Errorf("frame %d: intermediate pass drew to target", frame)
		}
	}
}

func TestComposerTwoPasses(t *testing.T) {
	var journal []passCall
	c := NewComposer(4, 4, &recordPass{"render", &journal}, &recordPass{"effect", &journal})
	target := ebiten.NewImage(4, 4)
	c.Render(target)
	if len(journal) != 2 || journal[1].dst != target || journal[1].src != journal[0].dst {
		t.Errorf("unexpected calls: %+v", journal)
	}
}

func TestComposerPassesIsCopy(t *testing.T) {
	var journal []passCall
	c := NewComposer(4, 4, &recordPass{"a", &journal})
	p := c.Passes()
	p[0] = &recordPass{"b", &journal}
	if c.Passes()[0].Name() != "a" {
		t.Error("Passes() must not expose the internal list")
	}
}

func TestComposerSetSize(t *testing.T) {
	c := NewComposer(4, 4)
	c.SetSize(32, 16)
	if w, h := c.Size(); w != 32 || h != 16 {
		t.Errorf("Size() = %dx%d, want 32x16", w, h)
	}
	if c.write.Width() != 32 || c.write.Height() != 16 {
		t.Errorf("write buffer = %dx%d, want 32x16", c.write.Width(), c.write.Height())
	}
}

func TestPassNames(t *testing.T) {
	s := NewScene(Rect{Width: 4, Height: 4})
	if NewRenderPass(s).Name() != "render" {
		t.Error("RenderPass name")
	}
	if NewShaderPass("distortion", NewDistortionFilter(DefaultParams)).Name() != "distortion" {
		t.Error("ShaderPass name")
	}
}
