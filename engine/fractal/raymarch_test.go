package fractal

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-bulb/common"
	"github.com/go-gl/mathgl/mgl32"
)

func TestMarchMissFromFarAway(t *testing.T) {
	p := MarchParams{
		Shape:        Shape{Power: 8, Bailout: 1.25, MaxIter: 128},
		Epsilon:      0.001,
		MaxRayLength: 10,
		MaxSteps:     200,
	}
	for _, dir := range []mgl32.Vec3{{1, 0, 0}, {-1, 0, 0}} {
		h := March(mgl32.Vec3{1000, 0, 0}, dir, p)
		if h.Hit {
			t.Fatalf("dir %v: unexpected hit", dir)
		}
		if h.Distance < p.MaxRayLength {
			t.Fatalf("dir %v: distance = %v, want >= %v", dir, h.Distance, p.MaxRayLength)
		}
		if h.Steps != 1 {
			t.Fatalf("dir %v: steps = %d, want 1", dir, h.Steps)
		}
	}
}

func TestMarchDefaultPoseHitsFractal(t *testing.T) {
	// the default camera sits at (0,-3,0) looking along +Y
	p := MarchParams{
		Shape:        bulb,
		Epsilon:      0.0026,
		MaxRayLength: DefaultMaxRayLength,
		MaxSteps:     DefaultMaxSteps,
	}
	h := March(mgl32.Vec3{0, -3, 0}, mgl32.Vec3{0, 1, 0}, p)
	if !h.Hit {
		t.Fatalf("expected hit, got %+v", h)
	}
	if !common.Finite(h.Distance) || h.Distance >= p.MaxRayLength {
		t.Fatalf("distance = %v", h.Distance)
	}
	if h.Steps < 1 {
		t.Fatalf("steps = %d", h.Steps)
	}
	if h.Distance < 1.5 || h.Distance > 2.5 {
		t.Fatalf("surface at distance %v, expected near the unit sphere", h.Distance)
	}
}

func TestMarchRespectsStepCap(t *testing.T) {
	p := MarchParams{Shape: bulb, Epsilon: 1e-9, MaxRayLength: 10, MaxSteps: 3}
	h := March(mgl32.Vec3{0, -3, 0}, mgl32.Vec3{0, 1, 0}, p)
	if h.Steps > 3 {
		t.Fatalf("steps = %d, want <= 3", h.Steps)
	}
}

func TestMarchZeroCapsUseDefaults(t *testing.T) {
	p := MarchParams{Shape: bulb, Epsilon: 1e-12}
	h := March(mgl32.Vec3{0, -3, 0}, mgl32.Vec3{0, 1, 0}, p)
	if h.Steps > DefaultMaxSteps {
		t.Fatalf("steps = %d exceeds default cap", h.Steps)
	}
}

func TestProbeFloorsInvalidDistance(t *testing.T) {
	p := MarchParams{Shape: bulb, Epsilon: 0.001}
	if got := Probe(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, p, 0); got != DefaultProbeFloor {
		t.Fatalf("probe at origin = %v, want %v", got, DefaultProbeFloor)
	}
	if got := Probe(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, p, 0.5); got != 0.5 {
		t.Fatalf("probe with custom floor = %v", got)
	}
	if got := Probe(mgl32.Vec3{0, -3, 0}, mgl32.Vec3{0, 1, 0}, p, 0); got <= DefaultProbeFloor {
		t.Fatalf("probe from default pose = %v", got)
	}
}

func TestRayDirectionCenterIsForward(t *testing.T) {
	right, up, fwd := mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}
	if got := RayDirection(right, up, fwd, 1.5, 0, 0); !got.ApproxEqualThreshold(fwd, 1e-6) {
		t.Fatalf("center ray = %v", got)
	}
	got := RayDirection(right, up, fwd, 1, 1, 0)
	if !mgl32.FloatEqualThreshold(got.Len(), 1, 1e-5) || got[0] >= 0 {
		t.Fatalf("right edge ray = %v", got)
	}
}

func TestShade(t *testing.T) {
	a, b := common.Color{R: 1}, common.Color{B: 1}
	if got := Shade(Hit{Steps: 4}, 200, a, b); got != (common.Color{}) {
		t.Fatalf("miss shaded %v", got)
	}
	if got := Shade(Hit{Hit: true, Steps: 500}, 200, a, b); got != b {
		t.Fatalf("saturated hit = %v, want %v", got, b)
	}
	got := Shade(Hit{Hit: true, Steps: 25}, 200, a, b)
	if !mgl32.FloatEqualThreshold(got.R, 0.5, 1e-5) || !mgl32.FloatEqualThreshold(got.B, 0.5, 1e-5) {
		t.Fatalf("half-way hit = %v", got)
	}
}
