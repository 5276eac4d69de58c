package recorder

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultInterval is the minimum time between two samples of the same section.
const DefaultInterval = time.Second

var (
	// ErrNotRecording is returned by Stop when no recording is in progress.
	ErrNotRecording = errors.New("recorder: not recording")
	// ErrAlreadyRecording is returned by Start when a recording is already in progress.
	ErrAlreadyRecording = errors.New("recorder: already recording")
)

type recorderImpl struct {
	mu *sync.Mutex

	interval   time.Duration
	maxSamples int
	recording  bool
	sections   []Section
	lastAt     time.Time
}

// Recorder captures the camera path as an ordered list of sections. A section opens on the
// first observed sample after recording starts (or after a pause) and closes when camera
// control is released or recording stops. Sections and samples are only ever appended.
type Recorder interface {
	// Start begins a new recording, discarding the previous path.
	//
	// Parameters:
	//   - now: the current time
	//
	// Returns:
	//   - error: ErrAlreadyRecording if a recording is in progress
	Start(now time.Time) error

	// Stop closes the open section, if any, and ends the recording.
	//
	// Parameters:
	//   - now: the current time, used as the section end
	//
	// Returns:
	//   - error: ErrNotRecording if no recording is in progress
	Stop(now time.Time) error

	// Pause closes the open section without ending the recording; the next observed sample
	// opens a new section. It is a no-op when nothing is open.
	//
	// Parameters:
	//   - now: the current time, used as the section end
	Pause(now time.Time)

	// Observe offers a sample. It is appended when recording and either no section is open
	// (a new one is opened at sample.At) or at least one interval has passed since the previous
	// sample.
	//
	// Parameters:
	//   - sample: the current pose and parameters
	//
	// Returns:
	//   - bool: true when the sample was recorded
	Observe(sample Sample) bool

	// Recording reports whether a recording is in progress.
	Recording() bool

	// Sections returns a copy of the recorded sections in order.
	Sections() []Section

	// Summary returns a short human readable description of the recorded path.
	Summary() string
}

var _ Recorder = &recorderImpl{}

// NewRecorder creates a new idle Recorder.
//
// Parameters:
//   - options: functional options to configure the recorder
//
// Returns:
//   - Recorder: the newly created recorder
func NewRecorder(options ...RecorderBuilderOption) Recorder {
	r := &recorderImpl{
		mu:       &sync.Mutex{},
		interval: DefaultInterval,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

func (r *recorderImpl) Start(now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording {
		return ErrAlreadyRecording
	}
	r.recording = true
	r.sections = nil
	r.lastAt = time.Time{}
	log.Printf("[Recorder] recording started at %s", now.Format(time.TimeOnly))
	return nil
}

func (r *recorderImpl) Stop(now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.recording {
		return ErrNotRecording
	}
	r.closeSection(now)
	r.recording = false
	log.Printf("[Recorder] recording stopped: %s", r.summary())
	return nil
}

func (r *recorderImpl) Pause(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closeSection(now)
}

func (r *recorderImpl) Observe(sample Sample) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.recording {
		return false
	}

	open := r.openSection()
	if open == nil {
		r.sections = append(r.sections, Section{
			ID:      uuid.New(),
			Start:   sample.At,
			Samples: []Sample{sample},
		})
		r.lastAt = sample.At
		return true
	}

	if sample.At.Sub(r.lastAt) < r.interval {
		return false
	}
	if r.maxSamples > 0 && len(open.Samples) >= r.maxSamples {
		return false
	}
	open.Samples = append(open.Samples, sample)
	r.lastAt = sample.At
	return true
}

func (r *recorderImpl) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

func (r *recorderImpl) Sections() []Section {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Section, len(r.sections))
	for i, s := range r.sections {
		out[i] = s.clone()
	}
	return out
}

func (r *recorderImpl) Summary() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.summary()
}

// openSection returns the trailing section if it is still open. Caller must hold the mutex.
func (r *recorderImpl) openSection() *Section {
	if len(r.sections) == 0 {
		return nil
	}
	last := &r.sections[len(r.sections)-1]
	if !last.Open() {
		return nil
	}
	return last
}

// closeSection must be called with the mutex held.
func (r *recorderImpl) closeSection(now time.Time) {
	if open := r.openSection(); open != nil {
		open.End = now
	}
}

func (r *recorderImpl) summary() string {
	samples := 0
	var total time.Duration
	for _, s := range r.sections {
		samples += len(s.Samples)
		total += s.Duration()
	}
	return fmt.Sprintf("%d section(s), %d sample(s), %s", len(r.sections), samples, total.Round(time.Millisecond))
}
