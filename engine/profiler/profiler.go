package profiler

import (
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// Stats is one interval's worth of measurements.
type Stats struct {
	FPS         float64
	HeapMB      float64
	AllocRateMB float64
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
	SysMB       float64

	// CPUPercent and MemPercent are host-wide figures. Both are -1 when host stats are disabled
	// or the platform query failed.
	CPUPercent float64
	MemPercent float64
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	hostStats  bool
	hostLogged bool
	reporter   func() string
	logging    bool
	last       Stats
	now        func() time.Time
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second and host stats are on.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		hostStats:      true,
		logging:        true,
		now:            time.Now,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed: FPS, heap usage, allocation
// rate, GC count and pause times, total memory, host CPU and memory load, and the reporter's line.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval || elapsed <= 0 {
		return false
	}

	s := Stats{
		FPS:        float64(p.frameCount) / elapsed.Seconds(),
		CPUPercent: -1,
		MemPercent: -1,
	}

	runtime.ReadMemStats(&p.memStats)
	// Alloc: live heap bytes. TotalAlloc: cumulative heap bytes. Sys: bytes obtained from the OS.
	s.HeapMB = float64(p.memStats.Alloc) / 1024 / 1024
	s.SysMB = float64(p.memStats.Sys) / 1024 / 1024
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	s.AllocRateMB = float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	s.GCCount = p.memStats.NumGC
	if s.GCCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses
		s.LastPauseUs = p.memStats.PauseNs[(s.GCCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if s.GCCount-startIdx > 256 {
			startIdx = s.GCCount - 256
		}
		for i := startIdx; i < s.GCCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > s.MaxPauseUs {
				s.MaxPauseUs = pause
			}
		}
	}

	if p.hostStats {
		p.readHost(&s)
	}

	if p.logging {
		line := fmt.Sprintf("[Profiler] FPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
			s.FPS, s.HeapMB, s.AllocRateMB, s.GCCount, s.LastPauseUs, s.MaxPauseUs, s.SysMB)
		if s.CPUPercent >= 0 {
			line += fmt.Sprintf(" | Host CPU: %.1f%% | Host Mem: %.1f%%", s.CPUPercent, s.MemPercent)
		}
		if p.reporter != nil {
			if extra := p.reporter(); extra != "" {
				line += " | " + extra
			}
		}
		log.Print(line)
	}

	p.last = s
	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = s.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the stats of the most recent completed interval.
//
// Returns:
//   - Stats: the last measurements, zero before the first interval completes
func (p *Profiler) Last() Stats {
	return p.last
}

// readHost fills the host CPU and memory load. The CPU figure is measured since the previous call.
func (p *Profiler) readHost(s *Stats) {
	if !p.hostLogged {
		p.hostLogged = true
		if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
			logical, _ := cpu.Counts(true)
			if p.logging {
				log.Printf("[Profiler] Host: %s, %d logical cores", infos[0].ModelName, logical)
			}
		}
	}

	if pct, err := cpu.Percent(0, false); err == nil && len(pct) > 0 {
		s.CPUPercent = pct[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		s.MemPercent = vm.UsedPercent
	}
}
