package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-bulb/common"
	"github.com/Carmen-Shannon/oxy-bulb/engine/camera"
	"github.com/Carmen-Shannon/oxy-bulb/engine/fractal"
	"github.com/Carmen-Shannon/oxy-bulb/engine/recorder"
	"github.com/go-gl/mathgl/mgl32"
)

type fakeBackend struct {
	cameras []camera.GPUCameraUniform
	params  []fractal.GPUParams
	draws   int
	resizes [][2]int
	drawErr error
}

func (b *fakeBackend) WriteCamera(u camera.GPUCameraUniform) { b.cameras = append(b.cameras, u) }
func (b *fakeBackend) WriteParams(p fractal.GPUParams) { b.params = append(b.params, p) }
func (b *fakeBackend) Resize(width, height int) { b.resizes = append(b.resizes, [2]int{width, height}) }
func (b *fakeBackend) Draw() error {
	b.draws++
	return b.drawErr
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) time.Time {
	c.t = c.t.Add(d)
	return c.t
}

func manualConfig() Config {
	cfg := DefaultConfig()
	cfg.Adaptive = false
	return cfg
}

func newTestEngine(cfg Config) (Engine, *fakeBackend, *fakeClock) {
	b := &fakeBackend{}
	clock := &fakeClock{t: time.Unix(1000, 0)}
	e := NewEngine(b, WithConfig(cfg), WithClock(clock.now))
	return e, b, clock
}

func TestFrameUploadsParamsOnlyWhenChanged(t *testing.T) {
	e, b, clock := newTestEngine(manualConfig())

	for i := 0; i < 3; i++ {
		if err := e.Frame(1.0/60, clock.advance(16*time.Millisecond)); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
	}
	if b.draws != 3 || len(b.cameras) != 3 {
		t.Fatalf("expected 3 draws and camera writes, got %d and %d", b.draws, len(b.cameras))
	}
	if len(b.params) != 1 {
		t.Fatalf("expected a single upload for unchanged sliders, got %d", len(b.params))
	}
	if got := e.Controller().State(); got != fractal.UploadClean {
		t.Errorf("expected clean upload state after an unchanged frame, got %s", got)
	}

	s := e.Sliders()
	s.Power = 0.9
	e.SetSliders(s)
	_ = e.Frame(1.0/60, clock.advance(16*time.Millisecond))
	if len(b.params) != 2 {
		t.Fatalf("expected a second upload after a slider change, got %d", len(b.params))
	}
}

func TestFrameMovesCameraOnlyWhenControlEnabled(t *testing.T) {
	e, _, clock := newTestEngine(manualConfig())
	start := e.Camera().Position()

	e.KeyDown(common.KeyW)
	_ = e.Frame(0.1, clock.advance(100*time.Millisecond))
	if got := e.Camera().Position(); got != start {
		t.Fatalf("camera moved while control was disabled: %v", got)
	}

	e.MouseDown(common.MouseButtonLeft)
	if !e.Input().Enabled() {
		t.Fatal("left click should enable camera control")
	}
	_ = e.Frame(0.1, clock.advance(100*time.Millisecond))
	if got := e.Camera().Position(); got.Y() <= start.Y() {
		t.Errorf("expected the camera to move along +Y, from %v to %v", start, got)
	}
}

func TestFrameSetsCameraScaleFromDerivation(t *testing.T) {
	e, _, clock := newTestEngine(DefaultConfig())
	_ = e.Frame(1.0/60, clock.advance(16*time.Millisecond))

	d := e.Controller().Last()
	if d.Scale <= 0 {
		t.Fatalf("expected a positive scale, got %v", d.Scale)
	}
	if got := e.Camera().Scale(); got != d.Scale {
		t.Errorf("camera scale %v does not follow the derivation %v", got, d.Scale)
	}
}

func TestEngineKeys(t *testing.T) {
	e, _, _ := newTestEngine(DefaultConfig())

	e.KeyDown(common.KeyP)
	if !e.Recorder().Recording() {
		t.Error("P should start recording")
	}
	e.KeyDown(common.KeyP)
	if e.Recorder().Recording() {
		t.Error("second P should stop recording")
	}

	e.KeyDown(common.KeyM)
	if e.Adaptive() {
		t.Error("M should switch to manual parameters")
	}

	e.Camera().SetPosition(1, 1, 1)
	e.Camera().SetRotation(-45, 90)
	e.KeyDown(common.KeyR)
	cfg := e.Config()
	if got := e.Camera().Position(); got != cfg.Position {
		t.Errorf("R should restore the configured position, got %v", got)
	}
	if pitch, yaw := e.Camera().Rotation(); pitch != cfg.Pitch || yaw != cfg.Yaw {
		t.Errorf("R should restore the configured rotation, got %v %v", pitch, yaw)
	}

	if e.Input().IsDown(common.KeyR) {
		t.Error("engine keys must not reach the input controller")
	}
	e.KeyDown(common.KeyW)
	if !e.Input().IsDown(common.KeyW) {
		t.Error("movement keys should reach the input controller")
	}
	e.KeyUp(common.KeyW)
	if e.Input().IsDown(common.KeyW) {
		t.Error("key release should reach the input controller")
	}
}

func TestReleasingControlClosesSection(t *testing.T) {
	cfg := manualConfig()
	cfg.Recording = true
	e, _, clock := newTestEngine(cfg)

	e.SetControl(true)
	for i := 0; i < 3; i++ {
		_ = e.Frame(0.5, clock.advance(time.Second))
	}
	e.SetControl(false)

	sections := e.Recorder().Sections()
	if len(sections) != 1 {
		t.Fatalf("expected one section, got %d", len(sections))
	}
	if sections[0].Open() {
		t.Error("releasing control should close the section")
	}
	if len(sections[0].Samples) != 3 {
		t.Errorf("expected 3 samples one second apart, got %d", len(sections[0].Samples))
	}

	// frames without control are not recorded
	_ = e.Frame(0.5, clock.advance(time.Second))
	if got := e.Recorder().Sections(); len(got) != 1 {
		t.Errorf("expected no new section while control is released, got %d sections", len(got))
	}

	e.SetControl(true)
	_ = e.Frame(0.5, clock.advance(time.Second))
	if got := e.Recorder().Sections(); len(got) != 2 {
		t.Errorf("expected a new section after control resumed, got %d sections", len(got))
	}
}

func TestJumpToSample(t *testing.T) {
	e, _, _ := newTestEngine(DefaultConfig())
	s := recorder.Sample{Position: mgl32.Vec3{0.5, -1, 0.25}, Pitch: -60, Yaw: 45}

	e.JumpTo(s)

	if got := e.Camera().Position(); got != s.Position {
		t.Errorf("expected position %v, got %v", s.Position, got)
	}
	if pitch, yaw := e.Camera().Rotation(); pitch != s.Pitch || yaw != s.Yaw {
		t.Errorf("expected rotation (%v, %v), got (%v, %v)", s.Pitch, s.Yaw, pitch, yaw)
	}
}

func TestFrameReturnsDrawErrorAndKeepsState(t *testing.T) {
	e, b, clock := newTestEngine(manualConfig())
	b.drawErr = errors.New("surface lost")

	err := e.Frame(1.0/60, clock.advance(16*time.Millisecond))
	if !errors.Is(err, b.drawErr) {
		t.Fatalf("expected the draw error, got %v", err)
	}
	if len(b.params) != 1 || e.Controller().State() != fractal.UploadUploaded {
		t.Errorf("parameters should still be uploaded, got %d uploads and state %s", len(b.params), e.Controller().State())
	}
}

func TestResize(t *testing.T) {
	e, b, _ := newTestEngine(DefaultConfig())

	e.Resize(0, 600)
	e.Resize(800, 400)

	if len(b.resizes) != 1 || b.resizes[0] != [2]int{800, 400} {
		t.Fatalf("expected one resize to 800x400, got %v", b.resizes)
	}
	if got := e.Camera().Aspect(); got != 2 {
		t.Errorf("expected aspect 2, got %v", got)
	}
}

func TestRunHeadlessStopsOnQuit(t *testing.T) {
	e, b, _ := newTestEngine(DefaultConfig())
	frames := 0
	e.SetFrameCallback(func(FrameInfo) {
		frames++
		if frames == 5 {
			e.Quit()
		}
	})

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Quit")
	}
	if b.draws != 5 {
		t.Errorf("expected 5 frames, got %d", b.draws)
	}
}

func TestQuitIsIdempotent(t *testing.T) {
	e, _, _ := newTestEngine(DefaultConfig())

	e.KeyDown(common.KeyEsc)
	e.Quit()

	select {
	case <-e.Done():
	default:
		t.Fatal("Esc should quit the engine")
	}
}

func TestRunRecoversFromPanic(t *testing.T) {
	e, _, _ := newTestEngine(DefaultConfig())
	e.SetFrameCallback(func(FrameInfo) { panic("boom") })

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after a panicking frame")
	}
}
