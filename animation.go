package warpfx

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ParamTween animates one field of a ParamSource. Each Update stores a new
// snapshot with that field replaced, so other fields edited meanwhile are
// kept. Call Update(dt) each frame; there is no global animation manager.
type ParamTween struct {
	tween  *gween.Tween
	id     ParamID
	source *ParamSource
	Done   bool
}

// TweenParam creates a tween of field id from its current value to `to`
// over duration seconds using the easing function. The target is clamped
// to the field's range.
func TweenParam(src *ParamSource, id ParamID, to float64, duration float32, fn ease.TweenFunc) *ParamTween {
	from := src.Load().Get(id)
	to = id.Spec().Range.Clamp(to)
	return &ParamTween{
		tween:  gween.New(float32(from), float32(to), duration, fn),
		id:     id,
		source: src,
	}
}

// Param returns the animated field.
func (t *ParamTween) Param() ParamID {
	return t.id
}

// Update advances the tween by dt seconds and stores the value.
func (t *ParamTween) Update(dt float32) {
	if t.Done {
		return
	}
	val, finished := t.tween.Update(dt)
	t.source.Update(func(p Params) Params {
		return p.With(t.id, float64(val))
	})
	t.Done = finished
}

// tweenSet runs a set of ParamTweens, at most one per field. Starting a
// tween on a field replaces the one already running there.
type tweenSet struct {
	active [paramCount]*ParamTween
}

func (s *tweenSet) start(t *ParamTween) {
	s.active[t.id] = t
}

func (s *tweenSet) update(dt float32) {
	for i, t := range s.active {
		if t == nil {
			continue
		}
		t.Update(dt)
		if t.Done {
			s.active[i] = nil
		}
	}
}

func (s *tweenSet) running() int {
	n := 0
	for _, t := range s.active {
		if t != nil {
			n++
		}
	}
	return n
}
