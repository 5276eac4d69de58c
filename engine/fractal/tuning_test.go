package fractal

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestDeriveMonotonicInDistance(t *testing.T) {
	tuning := DefaultTuning()
	sliders := DefaultSliders()

	distances := []float32{2, 1, 0.5, 0.2, 0.1, 0.05, 0.02}
	prev := tuning.Derive(distances[0], sliders)
	for _, d := range distances[1:] {
		cur := tuning.Derive(d, sliders)
		if !(cur.Params.Epsilon < prev.Params.Epsilon) {
			t.Fatalf("distance %v: epsilon %v not below %v", d, cur.Params.Epsilon, prev.Params.Epsilon)
		}
		if !(cur.Params.MaxIter > prev.Params.MaxIter) {
			t.Fatalf("distance %v: max_iter %v not above %v", d, cur.Params.MaxIter, prev.Params.MaxIter)
		}
		if !(cur.Scale > prev.Scale) {
			t.Fatalf("distance %v: scale %v not above %v", d, cur.Scale, prev.Scale)
		}
		prev = cur
	}
}

func TestDeriveClampsToBounds(t *testing.T) {
	tuning := DefaultTuning()
	sliders := DefaultSliders()

	far := tuning.Derive(1e6, sliders)
	if far.Params.MaxIter != tuning.MinIter {
		t.Fatalf("far max_iter = %v, want %v", far.Params.MaxIter, tuning.MinIter)
	}
	if far.Scale != 1/tuning.MaxScale {
		t.Fatalf("far scale = %v, want %v", far.Scale, 1/tuning.MaxScale)
	}

	near := tuning.Derive(1e-9, sliders)
	if near.Params.MaxIter != tuning.MaxIter {
		t.Fatalf("near max_iter = %v, want %v", near.Params.MaxIter, tuning.MaxIter)
	}
	if near.Params.Epsilon < tuning.MinEpsilon {
		t.Fatalf("near epsilon = %v below minimum", near.Params.Epsilon)
	}

	for _, bad := range []float32{0, -1, float32(math.NaN()), float32(math.Inf(1))} {
		d := tuning.Derive(bad, sliders)
		if d.Distance != tuning.ProbeFloor {
			t.Fatalf("distance %v: used %v, want floor", bad, d.Distance)
		}
		if err := d.Params.Validate(); err != nil {
			t.Fatalf("distance %v: %v", bad, err)
		}
	}
}

func TestDeriveShapeFromSliders(t *testing.T) {
	d := DefaultTuning().Derive(1, DefaultSliders())
	if !mgl32.FloatEqualThreshold(d.Params.Power, 8, 1e-4) {
		t.Fatalf("power = %v, want 8", d.Params.Power)
	}
	if !mgl32.FloatEqualThreshold(d.Params.Bailout, 1.25, 1e-4) {
		t.Fatalf("bailout = %v, want 1.25", d.Params.Bailout)
	}

	s := DefaultSliders()
	s.Power = 7
	s.Bailout = float32(math.NaN())
	d = DefaultTuning().Derive(1, s)
	if d.Params.Power != 16 || d.Params.Bailout != 1.05 {
		t.Fatalf("out of range sliders: power %v bailout %v", d.Params.Power, d.Params.Bailout)
	}
}

func TestDeriveFullDetailSliderPinsEpsilon(t *testing.T) {
	tuning := DefaultTuning()
	s := DefaultSliders()
	s.Epsilon = 1
	if got := tuning.Derive(5, s).Params.Epsilon; got != tuning.MinEpsilon {
		t.Fatalf("epsilon = %v, want %v", got, tuning.MinEpsilon)
	}
}

func TestManualRemapsSliders(t *testing.T) {
	tuning := DefaultTuning()
	s := DefaultSliders()
	s.Epsilon, s.Iterations = 1, 0
	d := tuning.Manual(s)
	if d.Params.Epsilon != tuning.MinEpsilon || d.Params.MaxIter != tuning.MinIter {
		t.Fatalf("fine manual = %v", d.Params)
	}
	s.Epsilon, s.Iterations = 0, 1
	d = tuning.Manual(s)
	if !mgl32.FloatEqualThreshold(d.Params.Epsilon, tuning.ManualMaxEpsilon, 1e-7) || d.Params.MaxIter != tuning.MaxIter {
		t.Fatalf("coarse manual = %v", d.Params)
	}
	if d.Distance != 0 {
		t.Fatalf("manual derivation reported distance %v", d.Distance)
	}
}

func TestParamsValidate(t *testing.T) {
	good := Params{Epsilon: 0.001, MaxIter: 5, Power: 8, Bailout: 1.25}
	tests := []struct {
		name  string
		p     Params
		valid bool
	}{
		{"good", good, true},
		{"zero epsilon", Params{MaxIter: 5, Power: 8, Bailout: 1.25}, false},
		{"negative iter", Params{Epsilon: 0.001, MaxIter: -1, Power: 8, Bailout: 1.25}, false},
		{"nan power", Params{Epsilon: 0.001, MaxIter: 5, Power: float32(math.NaN()), Bailout: 1.25}, false},
		{"bailout one", Params{Epsilon: 0.001, MaxIter: 5, Power: 8, Bailout: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.valid && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidParams) {
				t.Fatalf("err = %v, want ErrInvalidParams", err)
			}
		})
	}
}
