package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW     = 87  // W key (ASCII): move forward
	KeyA     = 65  // A key (ASCII): strafe left
	KeyS     = 83  // S key (ASCII): move back
	KeyD     = 68  // D key (ASCII): strafe right
	KeyC     = 67  // C key (ASCII): move down
	KeyP     = 80  // P key (ASCII): toggle path recording
	KeyR     = 82  // R key (ASCII): reset camera pose
	KeyM     = 77  // M key (ASCII): toggle adaptive/manual parameters
	KeySpace = 32  // Spacebar (ASCII): move up
	KeyEsc   = 256 // Escape key (GLFW)
)

// Additional non-printable keys
const (
	KeyLeftShift  = 340 // Left Shift (GLFW): sprint
	KeyRightShift = 344 // Right Shift (GLFW)
)

// Mouse buttons, matching glfw.MouseButton values.
const (
	MouseButtonLeft   = 0
	MouseButtonRight  = 1
	MouseButtonMiddle = 2
)
