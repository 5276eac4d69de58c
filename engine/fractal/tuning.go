package fractal

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-bulb/common"
	"github.com/chewxy/math32"
)

// Tuning holds the bounds and calibration constants of the adaptive parameter derivation.
// The exponents and gains are empirical; they are kept as fields so they can be tuned
// without touching the derivation itself.
type Tuning struct {
	// MaxScale bounds how fast the camera may move: scale never drops below 1/MaxScale.
	MaxScale float32

	MinEpsilon float32
	// ManualMaxEpsilon is the coarsest tolerance reachable with the epsilon slider in manual mode.
	ManualMaxEpsilon float32

	MinIter float32
	MaxIter float32

	MinPower   float32
	MaxPower   float32
	MinBailout float32
	MaxBailout float32

	// scale = distance^-ScaleExponent / (slider + SliderEpsilon)
	ScaleExponent float32
	SliderEpsilon float32

	// epsilon = MinEpsilon + distance^EpsilonExponent * EpsilonGain * (1 - slider) * EpsilonUnit
	EpsilonExponent float32
	EpsilonGain     float32
	EpsilonUnit     float32

	// max_iter = MinIter + log10(IterationReference / distance) * IterationGain * slider
	IterationGain      float32
	IterationReference float32

	// probe settings
	ProbeFloor   float32
	MaxRayLength float32
	MaxSteps     int
}

// DefaultTuning returns the calibrated constants used by the viewer.
func DefaultTuning() Tuning {
	return Tuning{
		MaxScale:           10,
		MinEpsilon:         0.0001,
		ManualMaxEpsilon:   0.01,
		MinIter:            4,
		MaxIter:            24,
		MinPower:           1,
		MaxPower:           16,
		MinBailout:         1.05,
		MaxBailout:         4,
		ScaleExponent:      1.2,
		SliderEpsilon:      1e-6,
		EpsilonExponent:    0.9,
		EpsilonGain:        15,
		EpsilonUnit:        0.0001,
		IterationGain:      7,
		IterationReference: 2,
		ProbeFloor:         DefaultProbeFloor,
		MaxRayLength:       DefaultMaxRayLength,
		MaxSteps:           DefaultMaxSteps,
	}
}

// Derived is the output of one adaptive (or manual) derivation.
type Derived struct {
	// Distance is the probe distance the derivation used (already floored).
	Distance float32
	// Scale is the camera movement divisor.
	Scale  float32
	Params Params
}

func (d Derived) String() string {
	return fmt.Sprintf("dist=%.5f scale=%.3f %s", d.Distance, d.Scale, d.Params)
}

// Derive computes render parameters from the probe distance and the slider state.
//
// Closer to the surface epsilon shrinks, the iteration budget grows logarithmically and the
// movement scale grows (slower flight). Power and bailout are plain slider remaps. Every output
// is clamped to its documented bounds; an invalid distance is replaced by ProbeFloor.
//
// Parameters:
//   - distance: the probe distance from the camera along its forward vector
//   - sliders: UI state
//
// Returns:
//   - Derived: the probe distance, movement scale and parameter vector
func (t Tuning) Derive(distance float32, sliders Sliders) Derived {
	if !common.Finite(distance) || distance <= 0 {
		distance = common.Coalesce(t.ProbeFloor, DefaultProbeFloor)
	}
	s := sliders.Clamped()

	scale := math32.Pow(distance, -t.ScaleExponent) * (1 / (s.Scale + t.SliderEpsilon))
	scale = max(1/t.MaxScale, scale)

	epsilon := t.MinEpsilon + max(math32.Pow(distance, t.EpsilonExponent)*t.EpsilonGain*(1-s.Epsilon)*t.EpsilonUnit, 0)

	maxIter := t.MinIter + math32.Log10(t.IterationReference/distance)*t.IterationGain*s.Iterations
	maxIter = common.Clamp(maxIter, t.MinIter, t.MaxIter)

	return Derived{
		Distance: distance,
		Scale:    scale,
		Params:   t.shapeParams(s, epsilon, maxIter),
	}
}

// Manual computes render parameters from the sliders alone, with no probe: epsilon and the
// iteration budget are remapped directly from their sliders.
//
// Parameters:
//   - sliders: UI state
//
// Returns:
//   - Derived: parameters with Distance left at zero
func (t Tuning) Manual(sliders Sliders) Derived {
	s := sliders.Clamped()
	epsilon := common.Remap(1-s.Epsilon, t.MinEpsilon, t.ManualMaxEpsilon)
	maxIter := common.Remap(s.Iterations, t.MinIter, t.MaxIter)
	scale := max(1/t.MaxScale, 1/(s.Scale+t.SliderEpsilon))

	return Derived{
		Scale:  scale,
		Params: t.shapeParams(s, epsilon, maxIter),
	}
}

func (t Tuning) shapeParams(s Sliders, epsilon, maxIter float32) Params {
	return Params{
		Epsilon: epsilon,
		MaxIter: maxIter,
		Power:   common.Remap(s.Power, t.MinPower, t.MaxPower),
		Bailout: common.Remap(s.Bailout, t.MinBailout, t.MaxBailout),
		ColorA:  s.ColorA,
		ColorB:  s.ColorB,
	}
}
