package warpfx

import "math"

// DefaultClockStep is the frame clock increment per running iteration.
const DefaultClockStep = 0.01

// LoopState is the run state of a Loop.
type LoopState uint8

const (
	LoopRunning LoopState = iota
	LoopPaused
)

// String returns "running" or "paused".
func (s LoopState) String() string {
	if s == LoopPaused {
		return "paused"
	}
	return "running"
}

// Loop advances the frame clock and pushes the clock and the current Params
// snapshot into the quad materials and the distortion filter. It is driven
// by the host's per-frame callback; each Tick runs to completion.
type Loop struct {
	clock  float64
	step   float64
	state  LoopState
	frames uint64

	params   *ParamSource
	template *Material
	quads    []*Node
	effect   *DistortionFilter
}

// NewLoop creates a running loop. step <= 0 uses DefaultClockStep.
// template may be nil when no shared material exists.
func NewLoop(params *ParamSource, template *Material, quads []*Node, effect *DistortionFilter, step float64) *Loop {
	if step <= 0 {
		step = DefaultClockStep
	}
	return &Loop{
		step:     step,
		params:   params,
		template: template,
		quads:    quads,
		effect:   effect,
	}
}

// Clock returns the accumulated time.
func (l *Loop) Clock() float64 { return l.clock }

// Step returns the clock increment.
func (l *Loop) Step() float64 { return l.step }

// Frames returns the number of running iterations so far.
func (l *Loop) Frames() uint64 { return l.frames }

// State returns the current run state.
func (l *Loop) State() LoopState { return l.state }

// Pause stops clock and uniform updates from the next Tick on.
func (l *Loop) Pause() {
	if l.state != LoopPaused {
		l.state = LoopPaused
		Logger().Info("loop paused", "clock", l.clock)
	}
}

// Resume restarts updates.
func (l *Loop) Resume() {
	if l.state != LoopRunning {
		l.state = LoopRunning
		Logger().Info("loop resumed", "clock", l.clock)
	}
}

// Toggle flips between running and paused.
func (l *Loop) Toggle() {
	if l.state == LoopPaused {
		l.Resume()
	} else {
		l.Pause()
	}
}

// QuadDepth returns the Z offset of every quad for a progress value.
func QuadDepth(progress float64) float64 {
	return progress * math.Pi / 2
}

// Tick runs one iteration. It returns false without touching anything when
// the loop is paused.
func (l *Loop) Tick() bool {
	if l.state == LoopPaused {
		return false
	}
	l.clock += l.step
	l.frames++

	p := l.params.Load()
	if l.template != nil {
		l.template.SetFloat(UniformTime, l.clock)
	}
	z := QuadDepth(p.Progress)
	for _, q := range l.quads {
		if q.Material != nil {
			q.Material.SetFloat(UniformTime, l.clock)
		}
		q.SetZ(z)
	}
	if l.effect != nil {
		l.effect.SetUniforms(l.clock, p)
	}
	return true
}
