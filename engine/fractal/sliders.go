package fractal

import (
	"github.com/Carmen-Shannon/oxy-bulb/common"
	"github.com/chewxy/math32"
)

// Sliders is the raw UI state. Every scalar is a normalized position in [0, 1]; out of range
// and NaN values are tolerated and clamped by Clamped.
type Sliders struct {
	// Scale is the base movement speed; larger is faster.
	Scale float32
	// Epsilon is the detail control; 1 is the finest surface tolerance.
	Epsilon float32
	// Iterations scales the iteration budget.
	Iterations float32
	// Power selects the fractal exponent between Tuning.MinPower and Tuning.MaxPower.
	Power float32
	// Bailout selects the escape radius between Tuning.MinBailout and Tuning.MaxBailout.
	Bailout float32

	ColorA common.Color
	ColorB common.Color
}

// DefaultSliders returns the slider state the viewer starts with: power 8 and bailout 1.25
// under the default tuning.
func DefaultSliders() Sliders {
	t := DefaultTuning()
	return Sliders{
		Scale:      0.5,
		Epsilon:    0.5,
		Iterations: 1,
		Power:      (8 - t.MinPower) / (t.MaxPower - t.MinPower),
		Bailout:    (1.25 - t.MinBailout) / (t.MaxBailout - t.MinBailout),
		ColorA:     DefaultColorA,
		ColorB:     DefaultColorB,
	}
}

// Clamped returns a copy of s with every scalar limited to [0, 1] and NaN replaced by 0.
func (s Sliders) Clamped() Sliders {
	unit := func(v float32) float32 {
		if math32.IsNaN(v) {
			return 0
		}
		return common.Clamp(v, 0, 1)
	}
	s.Scale = unit(s.Scale)
	s.Epsilon = unit(s.Epsilon)
	s.Iterations = unit(s.Iterations)
	s.Power = unit(s.Power)
	s.Bailout = unit(s.Bailout)
	return s
}
