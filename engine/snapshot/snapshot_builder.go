package snapshot

import "github.com/Carmen-Shannon/oxy-bulb/engine/fractal"

// SnapshotBuilderOption is a functional option for configuring a Snapshot.
type SnapshotBuilderOption func(*snapshotImpl)

// WithSize sets the output image size. Non-positive dimensions keep the default.
//
// Parameters:
//   - width, height: image size in pixels
//
// Returns:
//   - SnapshotBuilderOption: functional option to set the size
func WithSize(width, height int) SnapshotBuilderOption {
	return func(s *snapshotImpl) {
		if width > 0 && height > 0 {
			s.width = width
			s.height = height
		}
	}
}

// WithWorkers sets the number of pool workers rendering rows in parallel.
//
// Parameters:
//   - n: worker count, at least 1
//
// Returns:
//   - SnapshotBuilderOption: functional option to set the worker count
func WithWorkers(n int) SnapshotBuilderOption {
	return func(s *snapshotImpl) {
		s.workers = max(n, 1)
	}
}

// WithAntialias enables 3x3 supersampling.
//
// Parameters:
//   - enabled: true to supersample every pixel
//
// Returns:
//   - SnapshotBuilderOption: functional option to toggle antialiasing
func WithAntialias(enabled bool) SnapshotBuilderOption {
	return func(s *snapshotImpl) {
		s.antialias = enabled
	}
}

// WithTuning sets the tuning supplying the ray length and step caps.
//
// Parameters:
//   - tuning: the tuning constants
//
// Returns:
//   - SnapshotBuilderOption: functional option to set the tuning
func WithTuning(tuning fractal.Tuning) SnapshotBuilderOption {
	return func(s *snapshotImpl) {
		s.tuning = tuning
	}
}
