package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithKeyBindings replaces the default movement key bindings.
//
// Parameters:
//   - bindings: the key codes to use for each movement action
//
// Returns:
//   - CameraControllerOption: functional option to set the bindings
func WithKeyBindings(bindings KeyBindings) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.bindings = bindings
	}
}

// WithEnabled sets the initial enabled state of the controller.
//
// Parameters:
//   - enabled: true to start with camera updates enabled
//
// Returns:
//   - CameraControllerOption: functional option to set the enabled state
func WithEnabled(enabled bool) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.enabled = enabled
	}
}
