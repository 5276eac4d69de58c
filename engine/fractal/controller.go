package fractal

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// UploadState tracks whether the current parameters still need to reach the renderer.
type UploadState int

const (
	// UploadClean means the renderer holds the current parameters and nothing changed since.
	UploadClean UploadState = iota
	// UploadPending means the parameters changed and have not been uploaded yet.
	UploadPending
	// UploadUploaded means the parameters were uploaded this frame.
	UploadUploaded
)

func (s UploadState) String() string {
	switch s {
	case UploadClean:
		return "clean"
	case UploadPending:
		return "pending"
	case UploadUploaded:
		return "uploaded"
	default:
		return "unknown"
	}
}

type controllerImpl struct {
	mu *sync.Mutex

	tuning Tuning
	params Params
	last   Derived
	state  UploadState
	seeded bool
}

// Controller owns the current fractal parameters and their upload state. Each frame the frame
// loop calls Adapt (or Manual), then reads Pending and, after writing the uniform, MarkUploaded.
// Parameters are only staged when they change, so at most one upload happens per frame and none
// while the camera is still.
type Controller interface {
	// Adapt runs one probe from position along forward using the current parameters, derives
	// new parameters from the probe distance and the sliders, and stages them.
	//
	// Parameters:
	//   - position: camera position
	//   - forward: camera forward vector (unit length)
	//   - sliders: UI state
	//
	// Returns:
	//   - Derived: the derivation result, including the movement scale for the camera
	Adapt(position, forward mgl32.Vec3, sliders Sliders) Derived

	// Manual derives parameters from the sliders alone and stages them.
	//
	// Parameters:
	//   - sliders: UI state
	//
	// Returns:
	//   - Derived: the derivation result
	Manual(sliders Sliders) Derived

	// Params returns the current parameters.
	Params() Params

	// Last returns the most recent derivation.
	Last() Derived

	// Tuning returns the tuning constants in use.
	Tuning() Tuning

	// State returns the upload state.
	State() UploadState

	// Pending returns the uniform to upload when the parameters changed since the last upload.
	//
	// Returns:
	//   - GPUParams: the packed parameters
	//   - bool: true when an upload is due
	Pending() (GPUParams, bool)

	// MarkUploaded records that the pending parameters reached the renderer.
	MarkUploaded()
}

var _ Controller = &controllerImpl{}

// NewController creates a new Controller. The initial parameters are derived from the default
// sliders as if the camera sat one unit from the surface and start out pending so the first
// frame uploads them.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewController(options ...ControllerBuilderOption) Controller {
	c := &controllerImpl{
		mu:     &sync.Mutex{},
		tuning: DefaultTuning(),
	}
	for _, option := range options {
		option(c)
	}
	if !c.seeded {
		c.last = c.tuning.Derive(1, DefaultSliders())
		c.params = c.last.Params
	}
	c.state = UploadPending
	return c
}

func (c *controllerImpl) Adapt(position, forward mgl32.Vec3, sliders Sliders) Derived {
	c.mu.Lock()
	defer c.mu.Unlock()

	distance := Probe(position, forward, c.params.March(c.tuning), c.tuning.ProbeFloor)
	d := c.tuning.Derive(distance, sliders)
	c.stage(d)
	return c.last
}

func (c *controllerImpl) Manual(sliders Sliders) Derived {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stage(c.tuning.Manual(sliders))
	return c.last
}

func (c *controllerImpl) Params() Params {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params
}

func (c *controllerImpl) Last() Derived {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

func (c *controllerImpl) Tuning() Tuning {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tuning
}

func (c *controllerImpl) State() UploadState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *controllerImpl) Pending() (GPUParams, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != UploadPending {
		return GPUParams{}, false
	}
	return c.params.GPU(c.tuning), true
}

func (c *controllerImpl) MarkUploaded() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == UploadPending {
		c.state = UploadUploaded
	}
}

// stage records d and moves the upload state: changed parameters become pending, an unchanged
// frame after an upload settles to clean. Parameters failing validation are dropped and the
// previous ones stay in place. Caller must hold the mutex.
func (c *controllerImpl) stage(d Derived) {
	if err := d.Params.Validate(); err != nil {
		return
	}
	c.last = d
	if d.Params != c.params {
		c.params = d.Params
		c.state = UploadPending
		return
	}
	if c.state == UploadUploaded {
		c.state = UploadClean
	}
}
