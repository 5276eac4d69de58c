package profiler

import "time"

// ProfilerBuilderOption is a functional option applied to a Profiler during construction via NewProfiler.
type ProfilerBuilderOption func(*Profiler)

// WithInterval sets how often stats are measured and logged. Non-positive values are ignored.
//
// Parameters:
//   - d: the interval
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithInterval(d time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if d > 0 {
			p.updateInterval = d
		}
	}
}

// WithHostStats enables or disables the host CPU and memory queries.
//
// Parameters:
//   - enabled: whether to query host stats
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithHostStats(enabled bool) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.hostStats = enabled
	}
}

// WithReporter appends the reporter's line to every logged interval. The engine uses it to log
// the current adaptive parameters.
//
// Parameters:
//   - reporter: function returning a one-line status
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithReporter(reporter func() string) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.reporter = reporter
	}
}

// WithLogging enables or disables log output. Stats are still measured and available from Last.
//
// Parameters:
//   - enabled: whether to log
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithLogging(enabled bool) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.logging = enabled
	}
}

// WithClock replaces the time source.
//
// Parameters:
//   - now: the clock function
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithClock(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		if now != nil {
			p.now = now
		}
	}
}
