package fractal

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-bulb/common"
)

// ErrInvalidParams is returned by Params.Validate for parameters the renderer must never receive.
var ErrInvalidParams = errors.New("invalid fractal parameters")

// Default shading colours for the step-count gradient.
var (
	DefaultColorA = common.Color{R: 1.0, G: 0.55, B: 0.1}
	DefaultColorB = common.Color{R: 0.1, G: 0.25, B: 0.8}
)

// Params is the full parameter vector uploaded to the renderer each time it changes.
type Params struct {
	Epsilon float32
	MaxIter float32
	Power   float32
	Bailout float32
	ColorA  common.Color
	ColorB  common.Color
}

// Validate checks the invariants the renderer relies on: every scalar finite, epsilon, max_iter
// and power strictly positive and bailout above 1.
//
// Returns:
//   - error: nil, or an error wrapping ErrInvalidParams naming the first offending field
func (p Params) Validate() error {
	for name, v := range map[string]float32{
		"epsilon":  p.Epsilon,
		"max_iter": p.MaxIter,
		"power":    p.Power,
		"bailout":  p.Bailout,
	} {
		if !common.Finite(v) || v <= 0 {
			return fmt.Errorf("%w: %s = %v", ErrInvalidParams, name, v)
		}
	}
	if p.Bailout <= 1 {
		return fmt.Errorf("%w: bailout = %v must exceed 1", ErrInvalidParams, p.Bailout)
	}
	return nil
}

// Shape returns the iteration parameters of p.
func (p Params) Shape() Shape {
	return Shape{Power: p.Power, Bailout: p.Bailout, MaxIter: p.MaxIter}
}

// March returns the march parameters for p using the caps from t.
func (p Params) March(t Tuning) MarchParams {
	return MarchParams{
		Shape:        p.Shape(),
		Epsilon:      p.Epsilon,
		MaxRayLength: t.MaxRayLength,
		MaxSteps:     t.MaxSteps,
	}
}

// GPU packs p and the ray caps from t into the uniform layout.
//
// Parameters:
//   - t: tuning supplying MaxRayLength and MaxSteps
//
// Returns:
//   - GPUParams: the uniform value ready to marshal
func (p Params) GPU(t Tuning) GPUParams {
	return GPUParams{
		Epsilon:      p.Epsilon,
		MaxIter:      p.MaxIter,
		Power:        p.Power,
		Bailout:      p.Bailout,
		ColorA:       p.ColorA.Array(),
		MaxRayLength: common.Coalesce(t.MaxRayLength, DefaultMaxRayLength),
		ColorB:       p.ColorB.Array(),
		MaxSteps:     float32(common.Coalesce(t.MaxSteps, DefaultMaxSteps)),
	}
}

func (p Params) String() string {
	return fmt.Sprintf("eps=%.5f iter=%.2f power=%.2f bailout=%.3f", p.Epsilon, p.MaxIter, p.Power, p.Bailout)
}
