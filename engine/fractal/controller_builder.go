package fractal

// ControllerBuilderOption is a functional option for configuring a Controller.
type ControllerBuilderOption func(*controllerImpl)

// WithTuning replaces the default tuning constants.
//
// Parameters:
//   - tuning: the bounds and calibration constants to use
//
// Returns:
//   - ControllerBuilderOption: functional option to set the tuning
func WithTuning(tuning Tuning) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.tuning = tuning
	}
}

// WithInitialParams sets the parameters the controller starts from. The first probe marches
// with these values.
//
// Parameters:
//   - params: the starting parameters
//
// Returns:
//   - ControllerBuilderOption: functional option to set the initial parameters
func WithInitialParams(params Params) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.params = params
		c.last = Derived{Scale: 1, Params: params}
		c.seeded = true
	}
}
