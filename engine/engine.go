package engine

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-bulb/common"
	"github.com/Carmen-Shannon/oxy-bulb/engine/camera"
	"github.com/Carmen-Shannon/oxy-bulb/engine/fractal"
	"github.com/Carmen-Shannon/oxy-bulb/engine/profiler"
	"github.com/Carmen-Shannon/oxy-bulb/engine/recorder"
	"github.com/Carmen-Shannon/oxy-bulb/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

// Backend is the rendering side of the frame loop: it receives the camera and parameter
// uniforms and draws one frame. renderer.FractalPass implements it.
type Backend interface {
	WriteCamera(u camera.GPUCameraUniform)
	WriteParams(p fractal.GPUParams)
	Draw() error
	Resize(width, height int)
}

// Config is the frame loop configuration: the initial camera pose, the parameter bounds, the
// initial slider state and whether adaptive parameters and path recording start enabled.
type Config struct {
	Position mgl32.Vec3
	Pitch    float32
	Yaw      float32

	Tuning  fractal.Tuning
	Sliders fractal.Sliders

	Adaptive       bool
	Recording      bool
	RecordInterval time.Duration
}

// DefaultConfig returns the viewer defaults: the camera on -Y looking at the origin, default
// tuning and sliders, adaptive parameters on and recording off.
func DefaultConfig() Config {
	return Config{
		Position:       camera.DefaultPosition,
		Pitch:          camera.DefaultPitch,
		Yaw:            camera.DefaultYaw,
		Tuning:         fractal.DefaultTuning(),
		Sliders:        fractal.DefaultSliders(),
		Adaptive:       true,
		Recording:      false,
		RecordInterval: recorder.DefaultInterval,
	}
}

// engine implements the Engine interface. It is the application context: every piece of
// per-session state the frame loop touches hangs off it.
type engine struct {
	mu *sync.Mutex

	config   Config
	sliders  fractal.Sliders
	adaptive bool

	backend    Backend
	window     window.Window
	camera     camera.Camera
	input      camera.CameraController
	controller fractal.Controller
	recorder   recorder.Recorder

	profiler         *profiler.Profiler
	profilingEnabled bool

	quitChannel chan struct{}
	quitOnce    sync.Once

	now              func() time.Time
	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	frameCallback    func(f FrameInfo)

	lastFrame  time.Time
	lastTitle  time.Time
	drawErrors int
}

// FrameInfo describes one completed frame.
type FrameInfo struct {
	DeltaTime float32
	Derived   fractal.Derived
	Uploaded  bool
	Recorded  bool
}

// Engine is the frame loop. It owns the camera, the input controller, the adaptive parameter
// controller and the path recorder, and drives a Backend once per frame.
type Engine interface {
	// Window returns the window, or nil for a headless engine.
	Window() window.Window

	// Camera returns the camera.
	Camera() camera.Camera

	// Input returns the camera input controller.
	Input() camera.CameraController

	// Controller returns the fractal parameter controller.
	Controller() fractal.Controller

	// Recorder returns the path recorder.
	Recorder() recorder.Recorder

	// Config returns the configuration the engine was built with.
	Config() Config

	// Sliders returns the current slider state.
	Sliders() fractal.Sliders

	// SetSliders replaces the slider state. It takes effect on the next frame.
	//
	// Parameters:
	//   - s: the new slider state
	SetSliders(s fractal.Sliders)

	// Adaptive reports whether parameters follow the probe distance (true) or the sliders alone.
	Adaptive() bool

	// SetAdaptive switches between adaptive and manual parameters.
	//
	// Parameters:
	//   - adaptive: true for adaptive
	SetAdaptive(adaptive bool)

	// KeyDown handles a key press: the engine keys (reset, record, mode, quit) are consumed,
	// everything else is forwarded to the input controller.
	//
	// Parameters:
	//   - key: the key code (see common.Key*)
	KeyDown(key int)

	// KeyUp handles a key release.
	//
	// Parameters:
	//   - key: the key code
	KeyUp(key int)

	// MouseDown handles a mouse button press. The left button toggles camera control and the
	// pointer lock that goes with it.
	//
	// Parameters:
	//   - button: the button (see common.MouseButton*)
	MouseDown(button int)

	// MouseMoved forwards relative pointer motion to the input controller.
	//
	// Parameters:
	//   - dx, dy: motion in pixels
	MouseMoved(dx, dy float32)

	// SetControl enables or disables camera control. Releasing control unlocks the pointer and
	// closes the open recording section.
	//
	// Parameters:
	//   - enabled: the new state
	SetControl(enabled bool)

	// Resize propagates a new framebuffer size to the camera and the backend.
	//
	// Parameters:
	//   - width, height: the new size in pixels
	Resize(width, height int)

	// Frame runs one iteration of the frame loop: consume input, update the camera when
	// control is enabled, derive parameters, write the camera uniform, upload the parameters
	// when they changed, draw and offer a sample to the recorder.
	//
	// Parameters:
	//   - dt: seconds since the previous frame
	//   - now: the frame timestamp
	//
	// Returns:
	//   - error: the backend's draw error, if any; the frame state is still advanced
	Frame(dt float32, now time.Time) error

	// ResetPose moves the camera back to the configured initial pose.
	ResetPose()

	// JumpTo moves the camera to a recorded sample's pose.
	//
	// Parameters:
	//   - s: the sample to jump to
	JumpTo(s recorder.Sample)

	// ToggleRecording starts or stops path recording.
	//
	// Returns:
	//   - bool: true if recording is now active
	ToggleRecording() bool

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// SetFrameCallback registers a function called after every frame.
	//
	// Parameters:
	//   - callback: the function, or nil to disable
	SetFrameCallback(callback func(f FrameInfo))

	// Run drives Frame from the window's message loop on the calling goroutine and blocks until
	// the window closes or Quit is called. Without a window it loops until Quit.
	Run()

	// Quit stops the loop. Safe to call multiple times; subsequent calls are no-ops.
	Quit()

	// Done is closed once Quit has been called.
	Done() <-chan struct{}
}

var _ Engine = &engine{}

// NewEngine creates a new Engine drawing through backend.
// When a window is supplied its input, focus and resize callbacks are wired to the engine.
//
// Parameters:
//   - backend: the rendering backend
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(backend Backend, options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:          &sync.Mutex{},
		config:      DefaultConfig(),
		backend:     backend,
		quitChannel: make(chan struct{}),
		now:         time.Now,
	}
	for _, opt := range options {
		opt(e)
	}

	cfg := e.config
	e.sliders = cfg.Sliders
	e.adaptive = cfg.Adaptive

	if e.camera == nil {
		e.camera = camera.NewCamera(
			camera.WithPosition(cfg.Position.X(), cfg.Position.Y(), cfg.Position.Z()),
			camera.WithRotation(cfg.Pitch, cfg.Yaw),
		)
	}
	if e.input == nil {
		e.input = camera.NewCameraController()
	}
	if e.controller == nil {
		e.controller = fractal.NewController(fractal.WithTuning(cfg.Tuning))
	}
	if e.recorder == nil {
		e.recorder = recorder.NewRecorder(recorder.WithInterval(cfg.RecordInterval))
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithReporter(e.status))
	}

	if cfg.Recording {
		if err := e.recorder.Start(e.now()); err != nil {
			log.Printf("[Engine] could not start recording: %v", err)
		}
	}

	if e.window != nil {
		e.camera.Resized(e.window.Width(), e.window.Height())
		e.window.SetResizeCallback(e.Resize)
		e.window.SetKeyDownCallback(e.KeyDown)
		e.window.SetKeyUpCallback(e.KeyUp)
		e.window.SetMouseDownCallback(e.MouseDown)
		e.window.SetMouseMoveCallback(e.MouseMoved)
		e.window.SetFocusCallback(func(focused bool) {
			if !focused {
				e.input.Release()
				e.SetControl(false)
			}
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Input() camera.CameraController {
	return e.input
}

func (e *engine) Controller() fractal.Controller {
	return e.controller
}

func (e *engine) Recorder() recorder.Recorder {
	return e.recorder
}

func (e *engine) Config() Config {
	return e.config
}

func (e *engine) Sliders() fractal.Sliders {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sliders
}

func (e *engine) SetSliders(s fractal.Sliders) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sliders = s
}

func (e *engine) Adaptive() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.adaptive
}

func (e *engine) SetAdaptive(adaptive bool) {
	e.mu.Lock()
	e.adaptive = adaptive
	e.mu.Unlock()
	log.Printf("[Engine] adaptive parameters: %t", adaptive)
}

func (e *engine) KeyDown(key int) {
	switch key {
	case common.KeyEsc:
		e.Quit()
	case common.KeyR:
		e.ResetPose()
	case common.KeyP:
		e.ToggleRecording()
	case common.KeyM:
		e.SetAdaptive(!e.Adaptive())
	default:
		e.input.KeyDown(key)
	}
}

func (e *engine) KeyUp(key int) {
	e.input.KeyUp(key)
}

func (e *engine) MouseDown(button int) {
	if button != common.MouseButtonLeft {
		return
	}
	e.SetControl(!e.input.Enabled())
}

func (e *engine) MouseMoved(dx, dy float32) {
	e.input.MouseMoved(dx, dy)
}

func (e *engine) SetControl(enabled bool) {
	was := e.input.Enabled()
	e.input.SetEnabled(enabled)
	if e.window != nil {
		e.window.SetCursorLocked(enabled)
	}
	if was && !enabled {
		e.recorder.Pause(e.now())
	}
}

func (e *engine) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	e.camera.Resized(width, height)
	e.backend.Resize(width, height)
}

func (e *engine) Frame(dt float32, now time.Time) error {
	in := e.input.Consume()
	enabled := e.input.Enabled()
	if enabled {
		e.camera.Update(dt, in)
	}

	sliders := e.Sliders()
	var d fractal.Derived
	if e.Adaptive() {
		d = e.controller.Adapt(e.camera.Position(), e.camera.Forward(), sliders)
	} else {
		d = e.controller.Manual(sliders)
	}
	e.camera.SetScale(d.Scale)

	e.backend.WriteCamera(e.camera.Uniform())

	uploaded := false
	if gp, ok := e.controller.Pending(); ok {
		e.backend.WriteParams(gp)
		e.controller.MarkUploaded()
		uploaded = true
	}

	err := e.backend.Draw()
	if err != nil {
		e.drawErrors++
		// the first failure and then one per second at 60 FPS
		if e.drawErrors%60 == 1 {
			log.Printf("[Engine] draw failed (%d so far): %v", e.drawErrors, err)
		}
	}

	recorded := false
	if enabled {
		pitch, yaw := e.camera.Rotation()
		recorded = e.recorder.Observe(recorder.Sample{
			At:       now,
			Position: e.camera.Position(),
			Pitch:    pitch,
			Yaw:      yaw,
			Params:   e.controller.Params(),
		})
	}

	if e.frameCallback != nil {
		e.frameCallback(FrameInfo{DeltaTime: dt, Derived: d, Uploaded: uploaded, Recorded: recorded})
	}
	return err
}

func (e *engine) ResetPose() {
	cfg := e.config
	e.camera.Reset()
	e.camera.SetPosition(cfg.Position.X(), cfg.Position.Y(), cfg.Position.Z())
	e.camera.SetRotation(cfg.Pitch, cfg.Yaw)
}

func (e *engine) JumpTo(s recorder.Sample) {
	e.camera.SetPosition(s.Position.X(), s.Position.Y(), s.Position.Z())
	e.camera.SetRotation(s.Pitch, s.Yaw)
}

func (e *engine) ToggleRecording() bool {
	now := e.now()
	if e.recorder.Recording() {
		if err := e.recorder.Stop(now); err != nil {
			log.Printf("[Engine] stop recording: %v", err)
		}
		return false
	}
	if err := e.recorder.Start(now); err != nil {
		log.Printf("[Engine] start recording: %v", err)
		return false
	}
	return true
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) SetFrameCallback(callback func(f FrameInfo)) {
	e.frameCallback = callback
}

func (e *engine) Run() {
	e.lastFrame = e.now()

	if e.window == nil {
		for {
			select {
			case <-e.quitChannel:
				e.shutdown()
				return
			default:
				e.tick()
			}
		}
	}

	e.window.SetUpdateCallback(func() {
		select {
		case <-e.quitChannel:
			e.window.RequestClose()
		default:
			e.tick()
		}
	})
	e.window.ProcessMessages()
	e.Quit()
	e.shutdown()
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
		if e.window != nil {
			e.window.RequestClose()
		}
	})
}

func (e *engine) Done() <-chan struct{} {
	return e.quitChannel
}

// tick runs one frame with timing, profiling and frame limiting. A panic inside the frame is
// logged and stops the loop.
func (e *engine) tick() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] frame recovered from panic: %v", r)
			e.Quit()
		}
	}()

	start := e.now()
	dt := float32(start.Sub(e.lastFrame).Seconds())
	e.lastFrame = start

	_ = e.Frame(dt, start)

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
	if e.window != nil && start.Sub(e.lastTitle) >= 500*time.Millisecond {
		e.lastTitle = start
		e.window.SetTitle("oxy-bulb | " + e.status())
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - e.now().Sub(start); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

// shutdown closes an active recording and logs the recorded path.
func (e *engine) shutdown() {
	if e.recorder.Recording() {
		if err := e.recorder.Stop(e.now()); err != nil {
			log.Printf("[Engine] stop recording: %v", err)
		}
	}
	if sections := e.recorder.Sections(); len(sections) > 0 {
		log.Printf("[Engine] recorded path: %s\n%s", e.recorder.Summary(),
			recorder.Chart(sections, recorder.MetricRadius, 10, 0))
	}
}

// status is the one-line summary of the adaptive state shown in the title bar and the profiler log.
func (e *engine) status() string {
	d := e.controller.Last()
	mode := "manual"
	if e.Adaptive() {
		mode = "adaptive"
	}
	s := fmt.Sprintf("%s d=%.4f eps=%.6f iter=%.1f scale=%.2f", mode, d.Distance, d.Params.Epsilon, d.Params.MaxIter, d.Scale)
	if e.recorder.Recording() {
		s += " REC"
	}
	return s
}
