package profiler

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestTickReportsOncePerInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(
		WithClock(clock.now),
		WithInterval(time.Second),
		WithHostStats(false),
		WithLogging(false),
	)

	for i := 0; i < 59; i++ {
		clock.t = clock.t.Add(10 * time.Millisecond)
		if p.Tick() {
			t.Fatalf("tick %d reported before the interval elapsed", i)
		}
	}

	clock.t = time.Unix(2, 0)
	if !p.Tick() {
		t.Fatal("expected a report once the interval elapsed")
	}
	if got := p.Last().FPS; got != 30 {
		t.Errorf("expected 60 frames over 2s to give 30 FPS, got %v", got)
	}
	if p.Last().CPUPercent != -1 || p.Last().MemPercent != -1 {
		t.Errorf("host stats disabled, expected -1 figures, got %+v", p.Last())
	}
}

func TestReporterIsCalledWhenLogging(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	calls := 0
	p := NewProfiler(
		WithClock(clock.now),
		WithHostStats(false),
		WithReporter(func() string { calls++; return "eps=0.001" }),
	)

	clock.t = clock.t.Add(time.Second)
	p.Tick()
	if calls != 1 {
		t.Errorf("expected reporter to be called once, got %d", calls)
	}
}
