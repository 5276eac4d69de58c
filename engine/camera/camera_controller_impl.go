package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-bulb/common"
)

// KeyBindings maps camera movement actions to key codes.
type KeyBindings struct {
	Forward int
	Back    int
	Left    int
	Right   int
	Up      int
	Down    int
	Sprint  int
}

// DefaultKeyBindings are WASD for planar movement, Space and C for vertical movement and
// left shift to sprint.
var DefaultKeyBindings = KeyBindings{
	Forward: common.KeyW,
	Back:    common.KeyS,
	Left:    common.KeyA,
	Right:   common.KeyD,
	Up:      common.KeySpace,
	Down:    common.KeyC,
	Sprint:  common.KeyLeftShift,
}

type cameraControllerImpl struct {
	mu *sync.Mutex

	bindings KeyBindings
	held     map[int]bool
	enabled  bool

	// mouse motion accumulated since the last Consume
	mouseX float32
	mouseY float32
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new input controller with the default key bindings.
// The controller starts disabled; the viewer enables it on the first click.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:       &sync.Mutex{},
		bindings: DefaultKeyBindings,
		held:     make(map[int]bool),
	}

	for _, option := range options {
		option(cc)
	}
	return cc
}

func (cc *cameraControllerImpl) KeyDown(key int) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.held[key] = true
}

func (cc *cameraControllerImpl) KeyUp(key int) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	delete(cc.held, key)
}

func (cc *cameraControllerImpl) IsDown(key int) bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.held[key]
}

func (cc *cameraControllerImpl) MouseMoved(dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.enabled {
		return
	}
	cc.mouseX += dx
	cc.mouseY += dy
}

func (cc *cameraControllerImpl) Enabled() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.enabled
}

func (cc *cameraControllerImpl) SetEnabled(enabled bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.setEnabled(enabled)
}

func (cc *cameraControllerImpl) Toggle() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.setEnabled(!cc.enabled)
	return cc.enabled
}

func (cc *cameraControllerImpl) Consume() Input {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	b := cc.bindings
	in := Input{
		Forward: cc.held[b.Forward],
		Back:    cc.held[b.Back],
		Left:    cc.held[b.Left],
		Right:   cc.held[b.Right],
		Up:      cc.held[b.Up],
		Down:    cc.held[b.Down],
		Sprint:  cc.held[b.Sprint],
		MouseX:  cc.mouseX,
		MouseY:  cc.mouseY,
	}
	cc.mouseX = 0
	cc.mouseY = 0
	return in
}

func (cc *cameraControllerImpl) Release() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	clear(cc.held)
	cc.mouseX = 0
	cc.mouseY = 0
}

func (cc *cameraControllerImpl) Bindings() KeyBindings {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.bindings
}

// setEnabled must be called with the mutex held.
func (cc *cameraControllerImpl) setEnabled(enabled bool) {
	cc.enabled = enabled
	if !enabled {
		cc.mouseX = 0
		cc.mouseY = 0
	}
}
