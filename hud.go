package warpfx

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	hudRefresh = 30 // ticks between text rebuilds
	hudX       = 8
	hudY       = 8
	hudLineH   = 16
	hudCharW   = 6
)

var hudBackground = color.RGBA{0, 0, 0, 128}

// hud is the text overlay: rates, clock, loop state and parameters. The
// text is rebuilt every hudRefresh ticks.
type hud struct {
	lines []string
	ticks int
	bg    *ebiten.Image
}

func (h *hud) update(a *App) {
	if h.ticks > 0 && h.ticks < hudRefresh {
		h.ticks++
		return
	}
	h.ticks = 1
	h.lines = hudLines(a.params.Load(), a.loop, ebiten.ActualFPS(), ebiten.ActualTPS(), a.controls != nil)
}

// hudLines formats the overlay text.
func hudLines(p Params, l *Loop, fps, tps float64, controls bool) []string {
	lines := []string{
		fmt.Sprintf("FPS: %.1f  TPS: %.1f", fps, tps),
		fmt.Sprintf("clock: %.2f  %s", l.Clock(), l.State()),
	}
	for id := ParamID(0); id < paramCount; id++ {
		lines = append(lines, fmt.Sprintf("%-10s %.3f", id, p.Get(id)))
	}
	if controls {
		lines = append(lines,
			"Q/A W/S E/D R/F adjust",
			"space pause  T tween  P shot  H hide")
	}
	return lines
}

func (h *hud) draw(screen *ebiten.Image) {
	if len(h.lines) == 0 {
		return
	}
	width := 0
	for _, l := range h.lines {
		width = max(width, len(l))
	}
	w, ht := width*hudCharW+8, len(h.lines)*hudLineH+4
	if h.bg == nil || h.bg.Bounds().Dx() != w || h.bg.Bounds().Dy() != ht {
		if h.bg != nil {
			h.bg.Deallocate()
		}
		h.bg = ebiten.NewImage(w, ht)
		h.bg.Fill(hudBackground)
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(hudX-4, hudY-4)
	screen.DrawImage(h.bg, &op)
	ebitenutil.DebugPrintAt(screen, strings.Join(h.lines, "\n"), hudX, hudY)
}
