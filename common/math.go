package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// World-space axes shared by the camera, raymarcher and snapshot renderer.
// The fractal lives in a Z-up world: +X is right, +Y is forward, +Z is up.
var (
	WorldRight   = mgl32.Vec3{1, 0, 0}
	WorldForward = mgl32.Vec3{0, 1, 0}
	WorldUp      = mgl32.Vec3{0, 0, 1}
)

// Perspective creates a perspective projection matrix.
// Uses a finite far plane and the WebGPU clip space depth range [0, 1].
// The matrix is column-major, matching mgl32.Mat4.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / math32.Tan(fovY/2.0)
	var out mgl32.Mat4

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	return out
}

// Rotate post-multiplies m by a rotation of angle radians around axis, returning m * R.
// Successive calls therefore apply rotations in the order they are written when the
// result is used to transform a column vector.
//
// Parameters:
//   - m: the matrix to rotate
//   - axis: rotation axis (normalized internally)
//   - angle: rotation angle in radians (counter-clockwise, right-handed)
//
// Returns:
//   - mgl32.Mat4: the rotated matrix
func Rotate(m mgl32.Mat4, axis mgl32.Vec3, angle float32) mgl32.Mat4 {
	return m.Mul4(mgl32.HomogRotate3D(angle, axis.Normalize()))
}

// Translate post-multiplies m by a translation by v, returning m * T.
//
// Parameters:
//   - m: the matrix to translate
//   - v: translation vector
//
// Returns:
//   - mgl32.Mat4: the translated matrix
func Translate(m mgl32.Mat4, v mgl32.Vec3) mgl32.Mat4 {
	return m.Mul4(mgl32.Translate3D(v[0], v[1], v[2]))
}

// ClampLength radially clamps v onto the sphere of radius maxLength around the origin.
// Vectors already inside the sphere are returned unchanged. A non-positive maxLength disables the clamp.
//
// Parameters:
//   - v: the vector to clamp
//   - maxLength: the sphere radius
//
// Returns:
//   - mgl32.Vec3: the clamped vector
func ClampLength(v mgl32.Vec3, maxLength float32) mgl32.Vec3 {
	if maxLength <= 0 {
		return v
	}
	l := v.Len()
	if l <= maxLength || l == 0 {
		return v
	}
	return v.Mul(maxLength / l)
}

// Finite reports whether x is neither NaN nor an infinity.
func Finite(x float32) bool {
	return !math32.IsNaN(x) && !math32.IsInf(x, 0)
}
