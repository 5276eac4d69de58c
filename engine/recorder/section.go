package recorder

import (
	"time"

	"github.com/Carmen-Shannon/oxy-bulb/engine/fractal"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Sample is one recorded camera pose together with the parameters in effect at that moment.
type Sample struct {
	At       time.Time
	Position mgl32.Vec3
	Pitch    float32
	Yaw      float32
	Params   fractal.Params
}

// Section is a contiguous interval of camera-controlled flight. End is zero while the section
// is still open.
type Section struct {
	ID      uuid.UUID
	Start   time.Time
	End     time.Time
	Samples []Sample
}

// Open reports whether the section is still receiving samples.
func (s Section) Open() bool {
	return s.End.IsZero()
}

// Duration returns the length of a closed section, or the time covered by its samples while open.
func (s Section) Duration() time.Duration {
	if !s.Open() {
		return s.End.Sub(s.Start)
	}
	if len(s.Samples) == 0 {
		return 0
	}
	return s.Samples[len(s.Samples)-1].At.Sub(s.Start)
}

// clone returns a deep copy so that callers can never mutate recorded samples.
func (s Section) clone() Section {
	s.Samples = append([]Sample(nil), s.Samples...)
	return s
}
