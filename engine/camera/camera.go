package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-bulb/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Default pose and projection settings. The default pose places the camera on the -Y axis
// looking along +Y at the origin, where the fractal is centered.
const (
	DefaultPitch            float32 = -90
	DefaultYaw              float32 = 180
	DefaultSensitivity      float32 = 0.05
	DefaultSpeed            float32 = 2.0
	DefaultSprintMultiplier float32 = 3.0
	DefaultFovDegrees       float32 = 74.34
	DefaultNear             float32 = 0.1
	DefaultFar              float32 = 25
	DefaultMaxDistance      float32 = 3

	// MinPitch and MaxPitch bound the pitch angle in degrees. 0 looks straight down (-Z),
	// -180 would look straight up; the one degree margin keeps the basis from flipping.
	MinPitch float32 = -179
	MaxPitch float32 = 0
)

// DefaultPosition is the reset position of the camera.
var DefaultPosition = mgl32.Vec3{0, -3, 0}

// Input is one frame's worth of camera input: held movement keys plus the mouse motion
// accumulated since the previous frame.
type Input struct {
	Forward, Back bool
	Left, Right   bool
	Up, Down      bool
	Sprint        bool

	// MouseX and MouseY are the accumulated relative pointer motion in pixels.
	MouseX, MouseY float32
}

type cameraImpl struct {
	mu *sync.Mutex

	// true state
	position mgl32.Vec3
	pitch    float32
	yaw      float32
	scale    float32

	// settings
	sensitivity      float32
	speed            float32
	sprintMultiplier float32
	maxDistance      float32

	// projection
	fov    float32
	aspect float32
	near   float32
	far    float32

	// derived state, rebuilt by reconstruct on every write
	right   mgl32.Vec3
	up      mgl32.Vec3
	forward mgl32.Vec3

	viewMatrix           mgl32.Mat4
	projectionMatrix     mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4
}

// Camera is a first-person fly camera. Position and rotation (pitch, yaw in degrees) are the
// only true state; the orthonormal basis and the view/projection matrices are derived from them
// and rebuilt on every mutation, never incrementally rotated.
type Camera interface {
	// Update applies one frame of input. Translation along the camera basis is scaled by
	// speed * (1/scale) * deltaTime (times the sprint multiplier while sprinting), the position
	// is clamped to the bounding sphere when enabled, then the mouse delta is applied to yaw
	// and pitch with pitch clamped to [MinPitch, MaxPitch].
	//
	// Parameters:
	//   - deltaTime: frame time in seconds
	//   - input: the frame's input state
	Update(deltaTime float32, input Input)

	// Resized recomputes the projection for a new viewport. Position and rotation are untouched.
	//
	// Parameters:
	//   - width, height: the viewport size in pixels
	Resized(width, height int)

	// Position returns the world-space camera position.
	Position() mgl32.Vec3

	// Rotation returns pitch and yaw in degrees.
	//
	// Returns:
	//   - pitch: rotation around the world right axis
	//   - yaw: rotation around the world up axis
	Rotation() (pitch, yaw float32)

	// Right returns the camera's right basis vector.
	Right() mgl32.Vec3

	// Up returns the camera's up basis vector.
	Up() mgl32.Vec3

	// Forward returns the camera's forward basis vector (the viewing direction).
	Forward() mgl32.Vec3

	// SetPosition overrides the position and rebuilds the basis. The bounding sphere is not
	// applied here so recorded poses are restored exactly.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetPosition(x, y, z float32)

	// SetRotation overrides pitch and yaw (degrees) and rebuilds the basis. Pitch is clamped
	// to [MinPitch, MaxPitch].
	//
	// Parameters:
	//   - pitch: rotation around the world right axis in degrees
	//   - yaw: rotation around the world up axis in degrees
	SetRotation(pitch, yaw float32)

	// Scale returns the movement speed divisor set by the adaptive controller.
	Scale() float32

	// SetScale sets the movement speed divisor. Non-positive values are ignored.
	//
	// Parameters:
	//   - scale: the new scale
	SetScale(scale float32)

	// Reset restores the default pose and a scale of 1.
	Reset()

	// Aspect returns the current viewport aspect ratio (width / height).
	Aspect() float32

	// ViewMatrix returns the current view matrix (column-major).
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current projection matrix (column-major).
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection * view.
	ViewProjectionMatrix() mgl32.Mat4

	// Uniform builds the GPU camera uniform from the current state.
	//
	// Returns:
	//   - GPUCameraUniform: eye + aspect and the three basis vectors
	Uniform() GPUCameraUniform
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera at the default pose with the default projection settings.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:               &sync.Mutex{},
		position:         DefaultPosition,
		pitch:            DefaultPitch,
		yaw:              DefaultYaw,
		scale:            1.0,
		sensitivity:      DefaultSensitivity,
		speed:            DefaultSpeed,
		sprintMultiplier: DefaultSprintMultiplier,
		maxDistance:      DefaultMaxDistance,
		fov:              mgl32.DegToRad(DefaultFovDegrees),
		aspect:           1.0,
		near:             DefaultNear,
		far:              DefaultFar,
	}
	for _, option := range options {
		option(c)
	}
	c.pitch = common.Clamp(c.pitch, MinPitch, MaxPitch)
	c.reconstruct()
	return c
}

func (c *cameraImpl) Update(deltaTime float32, input Input) {
	c.mu.Lock()
	defer c.mu.Unlock()

	step := c.speed * (1.0 / c.scale) * deltaTime
	if input.Sprint {
		step *= c.sprintMultiplier
	}
	if input.Forward {
		c.position = c.position.Add(c.forward.Mul(step))
	}
	if input.Left {
		c.position = c.position.Sub(c.right.Mul(step))
	}
	if input.Back {
		c.position = c.position.Sub(c.forward.Mul(step))
	}
	if input.Right {
		c.position = c.position.Add(c.right.Mul(step))
	}
	if input.Up {
		c.position = c.position.Add(c.up.Mul(step))
	}
	if input.Down {
		c.position = c.position.Sub(c.up.Mul(step))
	}
	c.position = common.ClampLength(c.position, c.maxDistance)

	c.yaw += input.MouseX * c.sensitivity
	c.pitch -= input.MouseY * c.sensitivity
	c.pitch = common.Clamp(c.pitch, MinPitch, MaxPitch)

	c.reconstruct()
}

func (c *cameraImpl) Resized(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if width <= 0 || height <= 0 {
		return
	}
	c.aspect = float32(width) / float32(height)
	c.reconstruct()
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Rotation() (pitch, yaw float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pitch, c.yaw
}

func (c *cameraImpl) Right() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.right
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Forward() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.forward
}

func (c *cameraImpl) SetPosition(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = mgl32.Vec3{x, y, z}
	c.reconstruct()
}

func (c *cameraImpl) SetRotation(pitch, yaw float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pitch = common.Clamp(pitch, MinPitch, MaxPitch)
	c.yaw = yaw
	c.reconstruct()
}

func (c *cameraImpl) Scale() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scale
}

func (c *cameraImpl) SetScale(scale float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if scale <= 0 || !common.Finite(scale) {
		return
	}
	c.scale = scale
}

func (c *cameraImpl) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = DefaultPosition
	c.pitch = DefaultPitch
	c.yaw = DefaultYaw
	c.scale = 1.0
	c.reconstruct()
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return GPUCameraUniform{
		Eye:     c.position,
		Aspect:  c.aspect,
		Right:   c.right,
		Up:      c.up,
		Forward: c.forward,
	}
}

// reconstruct rebuilds the view matrix from pitch, yaw and position, reads the basis back out
// of its rotation rows and recomputes the projection and view-projection matrices.
// Caller must hold the mutex.
func (c *cameraImpl) reconstruct() {
	v := mgl32.Ident4()
	v = common.Rotate(v, common.WorldRight, mgl32.DegToRad(-c.pitch))
	v = common.Rotate(v, common.WorldUp, mgl32.DegToRad(-c.yaw))
	v = common.Translate(v, c.position.Mul(-1))
	c.viewMatrix = v

	// rows of the rotation part; mgl32 is column-major so row i is (v[i], v[4+i], v[8+i])
	c.right = mgl32.Vec3{v[0], v[4], v[8]}
	c.up = mgl32.Vec3{v[1], v[5], v[9]}
	c.forward = mgl32.Vec3{-v[2], -v[6], -v[10]}

	c.projectionMatrix = common.Perspective(c.fov, c.aspect, c.near, c.far)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}
