package warpfx

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	defaultDragDeadZone = 4.0 // pixels
	defaultZoomSpeed    = 1.0
	defaultRotateSpeed  = 1.0

	// key repeat timing, in ticks
	repeatDelay    = 15
	repeatInterval = 3
)

// ActionKind identifies a control-panel command.
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	// ActionNudge adds Steps multiples of the parameter's step to Param.
	ActionNudge
	ActionTogglePause
	// ActionTweenProgress eases progress to whichever end it is farther from.
	ActionTweenProgress
	ActionScreenshot
	ActionToggleHUD
	ActionResetParams
	ActionResetCamera
	ActionQuit
)

// Action is one control-panel command, produced by key bindings or a test
// script and applied by App.Apply.
type Action struct {
	Kind  ActionKind
	Param ParamID
	Steps float64
	Label string
}

// KeyBinding maps a key to an action. Repeat bindings fire again while the
// key is held.
type KeyBinding struct {
	Key    ebiten.Key
	Action Action
	Repeat bool
}

func nudge(id ParamID, steps float64) Action {
	return Action{Kind: ActionNudge, Param: id, Steps: steps}
}

// DefaultBindings is the keyboard layout of the control panel. Progress
// moves one step per press; the other sliders move ten.
var DefaultBindings = []KeyBinding{
	{Key: ebiten.KeySpace, Action: Action{Kind: ActionTogglePause}},
	{Key: ebiten.KeyQ, Action: nudge(ParamProgress, 1), Repeat: true},
	{Key: ebiten.KeyA, Action: nudge(ParamProgress, -1), Repeat: true},
	{Key: ebiten.KeyW, Action: nudge(ParamScale, 10), Repeat: true},
	{Key: ebiten.KeyS, Action: nudge(ParamScale, -10), Repeat: true},
	{Key: ebiten.KeyE, Action: nudge(ParamTimeChange, 10), Repeat: true},
	{Key: ebiten.KeyD, Action: nudge(ParamTimeChange, -10), Repeat: true},
	{Key: ebiten.KeyR, Action: nudge(ParamCosChange, 10), Repeat: true},
	{Key: ebiten.KeyF, Action: nudge(ParamCosChange, -10), Repeat: true},
	{Key: ebiten.KeyT, Action: Action{Kind: ActionTweenProgress}},
	{Key: ebiten.KeyP, Action: Action{Kind: ActionScreenshot, Label: "capture"}},
	{Key: ebiten.KeyH, Action: Action{Kind: ActionToggleHUD}},
	{Key: ebiten.KeyBackspace, Action: Action{Kind: ActionResetParams}},
	{Key: ebiten.KeyC, Action: Action{Kind: ActionResetCamera}},
	{Key: ebiten.KeyEscape, Action: Action{Kind: ActionQuit}},
}

// NudgeParam moves field id by steps multiples of its step, clamped to range.
func NudgeParam(p Params, id ParamID, steps float64) Params {
	return p.With(id, p.Get(id)+steps*id.Spec().Step)
}

// dragState tracks one mouse drag.
type dragState struct {
	down     bool
	dragging bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
}

// move feeds one pointer sample and returns the delta since the previous
// sample once the pointer has left the dead zone.
func (d *dragState) move(x, y float64, pressed bool, deadZone float64) (dx, dy float64, ok bool) {
	switch {
	case pressed && !d.down:
		*d = dragState{down: true, startX: x, startY: y, lastX: x, lastY: y}
	case !pressed && d.down:
		*d = dragState{}
	case pressed && d.down:
		if !d.dragging {
			sx, sy := x-d.startX, y-d.startY
			if math.Sqrt(sx*sx+sy*sy) > deadZone {
				d.dragging = true
			}
		}
		if d.dragging && (x != d.lastX || y != d.lastY) {
			dx, dy, ok = x-d.lastX, y-d.lastY, true
		}
		d.lastX, d.lastY = x, y
	}
	return dx, dy, ok
}

// Controls reads the keyboard and mouse. Keys become Actions; left-drag
// orbits the camera and the wheel dollies it.
type Controls struct {
	Bindings     []KeyBinding
	RotateSpeed  float64
	ZoomSpeed    float64
	DragDeadZone float64

	drag dragState
}

// NewControls creates controls with DefaultBindings.
func NewControls() *Controls {
	return &Controls{
		Bindings:     DefaultBindings,
		RotateSpeed:  defaultRotateSpeed,
		ZoomSpeed:    defaultZoomSpeed,
		DragDeadZone: defaultDragDeadZone,
	}
}

func keyFired(k ebiten.Key, repeat bool) bool {
	if inpututil.IsKeyJustPressed(k) {
		return true
	}
	if !repeat {
		return false
	}
	d := inpututil.KeyPressDuration(k)
	return d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0
}

// poll appends the actions fired this tick to buf.
func (c *Controls) poll(buf []Action) []Action {
	for _, b := range c.Bindings {
		if keyFired(b.Key, b.Repeat) {
			buf = append(buf, b.Action)
		}
	}
	return buf
}

// OrbitAngles converts a drag delta in pixels to yaw and pitch radians. A
// drag across the full viewport height turns the camera once.
func OrbitAngles(dx, dy, viewportHeight, rotateSpeed float64) (yaw, pitch float64) {
	if viewportHeight <= 0 {
		return 0, 0
	}
	k := 2 * math.Pi * rotateSpeed / viewportHeight
	return -dx * k, -dy * k
}

// ZoomFactor converts a wheel delta to a Dolly factor. Positive deltas move
// closer.
func ZoomFactor(wheel, zoomSpeed float64) float64 {
	if wheel == 0 {
		return 1
	}
	scale := math.Pow(0.95, zoomSpeed*math.Abs(wheel))
	if wheel > 0 {
		return scale
	}
	return 1 / scale
}

// pointer applies mouse orbit and zoom to cam.
func (c *Controls) pointer(cam *Camera) {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if dx, dy, ok := c.drag.move(float64(mx), float64(my), pressed, c.DragDeadZone); ok {
		cam.Orbit(OrbitAngles(dx, dy, cam.Viewport.Height, c.RotateSpeed))
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		cam.Dolly(ZoomFactor(wy, c.ZoomSpeed))
	}
}
