package fractal

import (
	"github.com/Carmen-Shannon/oxy-bulb/common"
)

// ShadeFraction is the fraction of the step cap at which the gradient reaches ColorB.
// Mirrors SHADE_FRACTION in the fragment shader.
const ShadeFraction float32 = 0.25

// Shade colours a march result the way the fragment shader does: misses are black, hits blend
// from colorA to colorB with the step count, which acts as a cheap occlusion term.
//
// Parameters:
//   - h: the march result
//   - maxSteps: the step cap used for the march
//   - colorA, colorB: gradient end points
//
// Returns:
//   - common.Color: the pixel colour
func Shade(h Hit, maxSteps int, colorA, colorB common.Color) common.Color {
	if !h.Hit {
		return common.Color{}
	}
	limit := float32(common.Coalesce(maxSteps, DefaultMaxSteps)) * ShadeFraction
	ratio := common.Clamp(float32(h.Steps)/limit, 0, 1)
	return colorA.Mix(colorB, ratio)
}
