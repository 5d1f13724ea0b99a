package warpfx

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrParamOutOfRange is returned when a parameter lies outside its range.
var ErrParamOutOfRange = errors.New("warpfx: parameter out of range")

// Params is one snapshot of the effect tunables. Values are copied, never
// shared; replace the whole snapshot to change anything.
type Params struct {
	Progress   float64 `json:"progress"`
	Scale      float64 `json:"scale"`
	TimeChange float64 `json:"timeChange"`
	CosChange  float64 `json:"cosChange"`
}

// DefaultParams is the startup snapshot.
var DefaultParams = Params{
	Progress:   1,
	Scale:      0.779,
	TimeChange: 0.4,
	CosChange:  1.07,
}

// ParamID names one field of Params.
type ParamID uint8

const (
	ParamProgress ParamID = iota
	ParamScale
	ParamTimeChange
	ParamCosChange
	paramCount
)

// ParamSpec describes the editable range and increment of one parameter.
type ParamSpec struct {
	Name  string
	Range Range
	Step  float64
}

var paramSpecs = [paramCount]ParamSpec{
	ParamProgress:   {Name: "progress", Range: Range{0, 1}, Step: 0.01},
	ParamScale:      {Name: "scale", Range: Range{0, 2}, Step: 0.001},
	ParamTimeChange: {Name: "timeChange", Range: Range{0, 10}, Step: 0.001},
	ParamCosChange:  {Name: "cosChange", Range: Range{0, 10}, Step: 0.001},
}

// Spec returns the range and step for id.
func (id ParamID) Spec() ParamSpec {
	return paramSpecs[id]
}

// String returns the parameter's config name.
func (id ParamID) String() string {
	if id >= paramCount {
		return fmt.Sprintf("ParamID(%d)", id)
	}
	return paramSpecs[id].Name
}

// ParseParamID looks up a parameter by its config name.
func ParseParamID(name string) (ParamID, error) {
	for i, s := range paramSpecs {
		if s.Name == name {
			return ParamID(i), nil
		}
	}
	return 0, fmt.Errorf("warpfx: unknown parameter %q", name)
}

// Get returns the value of one field.
func (p Params) Get(id ParamID) float64 {
	switch id {
	case ParamProgress:
		return p.Progress
	case ParamScale:
		return p.Scale
	case ParamTimeChange:
		return p.TimeChange
	case ParamCosChange:
		return p.CosChange
	}
	return 0
}

// With returns a copy of p with one field replaced, clamped to its range.
func (p Params) With(id ParamID, v float64) Params {
	if id >= paramCount {
		return p
	}
	v = paramSpecs[id].Range.Clamp(v)
	switch id {
	case ParamProgress:
		p.Progress = v
	case ParamScale:
		p.Scale = v
	case ParamTimeChange:
		p.TimeChange = v
	case ParamCosChange:
		p.CosChange = v
	}
	return p
}

// Clamp returns p with every field limited to its range.
func (p Params) Clamp() Params {
	for id := ParamID(0); id < paramCount; id++ {
		p = p.With(id, p.Get(id))
	}
	return p
}

// Validate reports the first field outside its range.
func (p Params) Validate() error {
	for id := ParamID(0); id < paramCount; id++ {
		s := paramSpecs[id]
		if v := p.Get(id); !s.Range.Contains(v) {
			return fmt.Errorf("%w: %s=%g not in [%g, %g]", ErrParamOutOfRange, s.Name, v, s.Range.Min, s.Range.Max)
		}
	}
	return nil
}

// ParamSource holds the current Params snapshot. Store and Load are safe
// for concurrent use; readers always see a complete snapshot.
type ParamSource struct {
	cur atomic.Pointer[Params]
}

// NewParamSource creates a source holding p.
func NewParamSource(p Params) *ParamSource {
	s := &ParamSource{}
	s.Store(p)
	return s
}

// Load returns the current snapshot. A zero ParamSource holds Params{}.
func (s *ParamSource) Load() Params {
	if p := s.cur.Load(); p != nil {
		return *p
	}
	return Params{}
}

// Store replaces the snapshot.
func (s *ParamSource) Store(p Params) {
	s.cur.Store(&p)
}

// Update applies fn to the current snapshot and stores the result, retrying
// if another writer got in between.
func (s *ParamSource) Update(fn func(Params) Params) Params {
	for {
		old := s.cur.Load()
		var cur Params
		if old != nil {
			cur = *old
		}
		next := fn(cur)
		if s.cur.CompareAndSwap(old, &next) {
			return next
		}
	}
}
