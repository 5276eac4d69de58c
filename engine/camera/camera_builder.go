package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the camera's starting position.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's position
func WithPosition(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = mgl32.Vec3{x, y, z}
	}
}

// WithRotation sets the camera's starting pitch and yaw in degrees.
// Pitch is clamped to [MinPitch, MaxPitch] once all options are applied.
//
// Parameters:
//   - pitch: rotation around the world right axis in degrees
//   - yaw: rotation around the world up axis in degrees
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's rotation
func WithRotation(pitch, yaw float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.pitch = pitch
		c.yaw = yaw
	}
}

// WithFov sets the camera's vertical field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithViewport sets the camera's aspect ratio from a viewport size.
// Zero or negative dimensions are ignored.
//
// Parameters:
//   - width, height: the viewport size in pixels
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithViewport(width, height int) CameraBuilderOption {
	return func(c *cameraImpl) {
		if width > 0 && height > 0 {
			c.aspect = float32(width) / float32(height)
		}
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the near plane
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: functional option to set the far plane
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.far = far
	}
}

// WithSensitivity sets the mouse look sensitivity in degrees per pixel.
//
// Parameters:
//   - sensitivity: degrees of rotation per pixel of mouse motion
//
// Returns:
//   - CameraBuilderOption: functional option to set the sensitivity
func WithSensitivity(sensitivity float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.sensitivity = sensitivity
	}
}

// WithSpeed sets the base movement speed in world units per second at scale 1.
//
// Parameters:
//   - speed: movement speed
//
// Returns:
//   - CameraBuilderOption: functional option to set the speed
func WithSpeed(speed float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.speed = speed
	}
}

// WithSprintMultiplier sets the factor applied to movement while sprinting.
//
// Parameters:
//   - multiplier: sprint speed factor
//
// Returns:
//   - CameraBuilderOption: functional option to set the sprint multiplier
func WithSprintMultiplier(multiplier float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.sprintMultiplier = multiplier
	}
}

// WithMaxDistance sets the radius of the sphere the camera position is clamped to.
// Zero disables the clamp.
//
// Parameters:
//   - distance: bounding sphere radius
//
// Returns:
//   - CameraBuilderOption: functional option to set the bounding radius
func WithMaxDistance(distance float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.maxDistance = distance
	}
}
