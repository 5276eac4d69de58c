package fractal

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-bulb/common"
	"github.com/go-gl/mathgl/mgl32"
)

var bulb = Shape{Power: 8, Bailout: 1.25, MaxIter: 5}

func TestEstimateFarPointEscapesImmediately(t *testing.T) {
	pos := mgl32.Vec3{100, 0, 0}
	got := Estimate(pos, bulb)
	want := float32(0.5 * math.Log(100) * 100)
	if !common.Finite(got) || got <= 0 {
		t.Fatalf("estimate = %v, want finite positive", got)
	}
	if math.Abs(float64(got-want)) > 1e-2 {
		t.Fatalf("estimate = %v, want %v", got, want)
	}
	// escapes before the first iteration, so the budget does not matter
	one := Estimate(pos, Shape{Power: 8, Bailout: 1.25, MaxIter: 1})
	if one != got {
		t.Fatalf("estimate with one iteration = %v, want %v", one, got)
	}
}

func TestEstimateNeverNegative(t *testing.T) {
	for _, pos := range []mgl32.Vec3{
		{0, 0, 0},
		{0.1, 0.1, 0.1},
		{0, -0.5, 0},
		{0, 0, 1e-8},
	} {
		d := Estimate(pos, bulb)
		if !common.Finite(d) || d < 0 {
			t.Fatalf("estimate(%v) = %v", pos, d)
		}
	}
}

func TestEstimateShrinksTowardSurface(t *testing.T) {
	far := Estimate(mgl32.Vec3{0, -3, 0}, bulb)
	near := Estimate(mgl32.Vec3{0, -1.2, 0}, bulb)
	if !(near < far) {
		t.Fatalf("near = %v, far = %v", near, far)
	}
}
