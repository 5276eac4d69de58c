package recorder

import "time"

// RecorderBuilderOption is a functional option for configuring a Recorder.
type RecorderBuilderOption func(*recorderImpl)

// WithInterval sets the sampling interval. Non-positive values keep the default.
//
// Parameters:
//   - interval: minimum time between two samples
//
// Returns:
//   - RecorderBuilderOption: functional option to set the interval
func WithInterval(interval time.Duration) RecorderBuilderOption {
	return func(r *recorderImpl) {
		if interval > 0 {
			r.interval = interval
		}
	}
}

// WithMaxSamples caps the number of samples per section. Zero means unlimited.
//
// Parameters:
//   - n: maximum samples per section
//
// Returns:
//   - RecorderBuilderOption: functional option to set the cap
func WithMaxSamples(n int) RecorderBuilderOption {
	return func(r *recorderImpl) {
		r.maxSamples = n
	}
}
