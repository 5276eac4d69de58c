package camera

// CameraController collects raw window input between frames and turns it into the per-frame
// Input consumed by Camera.Update. It tracks which keys are held, accumulates relative mouse
// motion, and owns the enabled flag that gates camera updates (toggled by a mouse click in the
// interactive viewer, paired with pointer lock).
type CameraController interface {
	// KeyDown records a key press.
	//
	// Parameters:
	//   - key: the key code (see common.Key*)
	KeyDown(key int)

	// KeyUp records a key release.
	//
	// Parameters:
	//   - key: the key code (see common.Key*)
	KeyUp(key int)

	// IsDown reports whether a key is currently held.
	//
	// Parameters:
	//   - key: the key code
	//
	// Returns:
	//   - bool: true while the key is held
	IsDown(key int) bool

	// MouseMoved accumulates relative pointer motion. Motion is discarded while the controller
	// is disabled so that re-enabling does not apply a stale jump.
	//
	// Parameters:
	//   - dx, dy: motion in pixels since the previous event
	MouseMoved(dx, dy float32)

	// Enabled reports whether camera updates are currently enabled.
	Enabled() bool

	// SetEnabled sets the enabled flag. Disabling also clears the mouse accumulator.
	//
	// Parameters:
	//   - enabled: the new state
	SetEnabled(enabled bool)

	// Toggle flips the enabled flag.
	//
	// Returns:
	//   - bool: the new state
	Toggle() bool

	// Consume returns the frame's Input and resets the mouse accumulator to zero.
	// Held keys persist across frames until released.
	//
	// Returns:
	//   - Input: the input for this frame
	Consume() Input

	// Release clears every held key and the mouse accumulator, e.g. when the window loses focus.
	Release()

	// Bindings returns the active key bindings.
	Bindings() KeyBindings
}
