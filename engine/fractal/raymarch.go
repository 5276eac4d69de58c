package fractal

import (
	"github.com/Carmen-Shannon/oxy-bulb/common"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultMaxRayLength is the distance after which a ray counts as a miss.
	DefaultMaxRayLength float32 = 10
	// DefaultMaxSteps caps the number of estimator evaluations per ray.
	DefaultMaxSteps = 200
	// DefaultProbeFloor replaces invalid probe distances.
	DefaultProbeFloor float32 = 1e-5
)

// MarchParams bundles everything a single ray march needs.
// Zero MaxRayLength or MaxSteps fall back to the defaults; neither cap can be disabled.
type MarchParams struct {
	Shape
	Epsilon      float32
	MaxRayLength float32
	MaxSteps     int
}

// Hit is the result of a ray march.
type Hit struct {
	// Distance is the total distance travelled along the ray.
	Distance float32
	// Steps is the number of estimator evaluations, always >= 1.
	Steps int
	// Hit is true when the march converged on the surface before the ray length cap.
	Hit bool
}

// March sphere-traces a ray from origin along dir (expected to be unit length).
//
// The first estimate is always taken; marching then continues while the travelled distance is
// below MaxRayLength, the last estimate is above Epsilon and fewer than MaxSteps evaluations have
// been made. The estimator never returns a negative or non-finite value, so the loop always
// terminates through one of the three conditions.
//
// Parameters:
//   - origin: ray origin
//   - dir: unit ray direction
//   - p: shape, surface tolerance and caps
//
// Returns:
//   - Hit: travelled distance, step count and whether the surface was reached
func March(origin, dir mgl32.Vec3, p MarchParams) Hit {
	maxLength := common.Coalesce(p.MaxRayLength, DefaultMaxRayLength)
	maxSteps := common.Coalesce(p.MaxSteps, DefaultMaxSteps)

	d := Estimate(origin, p.Shape)
	pos := origin.Add(dir.Mul(d))
	distance := d
	steps := 1

	for distance < maxLength && d > p.Epsilon && steps < maxSteps {
		d = Estimate(pos, p.Shape)
		pos = pos.Add(dir.Mul(d))
		distance += d
		steps++
	}

	return Hit{
		Distance: distance,
		Steps:    steps,
		Hit:      d <= p.Epsilon && distance < maxLength,
	}
}

// Probe marches a single ray and returns the travelled distance, substituting floor for a
// distance that is NaN, infinite or not positive. The adaptive controller divides by and takes
// logarithms of this value, so it must never be zero.
//
// Parameters:
//   - origin: ray origin, usually the camera position
//   - dir: unit ray direction, usually the camera forward vector
//   - p: march parameters
//   - floor: replacement for invalid distances; zero selects DefaultProbeFloor
//
// Returns:
//   - float32: a finite, strictly positive distance
func Probe(origin, dir mgl32.Vec3, p MarchParams, floor float32) float32 {
	floor = common.Coalesce(floor, DefaultProbeFloor)
	d := March(origin, dir, p).Distance
	if !common.Finite(d) || d <= 0 {
		return floor
	}
	return d
}

// RayDirection builds the view ray for a point on the screen from the camera basis.
// ndcX and ndcY are in [-1, 1] with +Y up; the image plane sits one unit in front of the eye
// and is stretched horizontally by the aspect ratio. The fragment shader uses the same mapping.
//
// Parameters:
//   - right, up, forward: the camera basis
//   - aspect: viewport width / height
//   - ndcX, ndcY: normalized device coordinates of the pixel
//
// Returns:
//   - mgl32.Vec3: the unit ray direction
func RayDirection(right, up, forward mgl32.Vec3, aspect, ndcX, ndcY float32) mgl32.Vec3 {
	return forward.
		Add(right.Mul(ndcX * aspect)).
		Add(up.Mul(ndcY)).
		Normalize()
}
