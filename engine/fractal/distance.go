package fractal

import (
	"github.com/Carmen-Shannon/oxy-bulb/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Shape holds the parameters of the Mandelbulb iteration itself.
// MaxIter is kept as a float so that the adaptive controller can vary it continuously;
// the iteration runs while the loop index is below it, exactly as the fragment shader does.
type Shape struct {
	Power   float32
	Bailout float32
	MaxIter float32
}

// Estimate returns a lower bound on the distance from pos to the Mandelbulb surface.
//
// The point is iterated in spherical coordinates (z -> z^power + pos) until it escapes the
// bailout radius or MaxIter iterations have run, tracking the running derivative dr. The
// estimate is 0.5 * ln(r) * r / dr. Points that do not escape (r < 1) would produce a negative
// value; those, and any non-finite result, return 0 so callers always see a finite, non-negative
// distance.
//
// Parameters:
//   - pos: the point to evaluate
//   - s: power, bailout and iteration budget
//
// Returns:
//   - float32: the estimated distance, >= 0
func Estimate(pos mgl32.Vec3, s Shape) float32 {
	z := pos
	dr := float32(1.0)
	r := z.Len()

	for i := 0; float32(i) < s.MaxIter; i++ {
		r = z.Len()
		if r > s.Bailout {
			break
		}

		theta := math32.Acos(z[2]/r) * s.Power
		phi := math32.Atan2(z[1], z[0]) * s.Power
		dr = math32.Pow(r, s.Power-1)*s.Power*dr + 1

		zr := math32.Pow(r, s.Power)
		sinTheta := math32.Sin(theta)
		z = mgl32.Vec3{
			zr*sinTheta*math32.Cos(phi) + pos[0],
			zr*math32.Sin(phi)*sinTheta + pos[1],
			zr*math32.Cos(theta) + pos[2],
		}
	}

	d := 0.5 * math32.Log(r) * r / dr
	if !common.Finite(d) || d < 0 {
		return 0
	}
	return d
}
