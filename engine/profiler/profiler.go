package profiler

import (
	"log/slog"
	"math"
	"runtime"
	"time"
)

// Stats is one profiling sample covering the frames since the previous sample.
type Stats struct {
	FPS         float64
	HeapMB      float64
	AllocRateMB float64 // MB allocated per second
	NumGC       uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
	SysMB       float64
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Outputs stats to the logger at a configurable interval.
type Profiler struct {
	logger         *slog.Logger
	now            func() time.Time
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats
}

// ProfilerOption configures a Profiler.
type ProfilerOption func(*Profiler)

// WithLogger sets the logger samples are written to. Defaults to slog.Default().
func WithLogger(l *slog.Logger) ProfilerOption {
	return func(p *Profiler) {
		p.logger = l
	}
}

// WithInterval sets how often a sample is taken. Defaults to 1 second.
func WithInterval(d time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if d > 0 {
			p.updateInterval = d
		}
	}
}

// WithNow replaces the wall clock, for tests.
func WithNow(now func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		p.now = now
	}
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		logger:         slog.Default(),
		now:            time.Now,
		updateInterval: time.Second,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics at debug level when the update interval has elapsed.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	// Alloc is live heap, TotalAlloc only grows (churn), Sys is the process footprint.
	s := Stats{
		FPS:         float64(p.frameCount) / elapsed.Seconds(),
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB: float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds(),
		NumGC:       p.memStats.NumGC,
		SysMB:       float64(p.memStats.Sys) / 1024 / 1024,
	}

	if gcCount := s.NumGC; gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses
		s.LastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			s.MaxPauseUs = max(s.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	p.logger.Debug("[Profiler]",
		slog.Float64("fps", round2(s.FPS)),
		slog.Float64("heap_mb", round2(s.HeapMB)),
		slog.Float64("alloc_mb_s", round2(s.AllocRateMB)),
		slog.Uint64("gc", uint64(s.NumGC)),
		slog.Uint64("gc_last_us", s.LastPauseUs),
		slog.Uint64("gc_max_us", s.MaxPauseUs),
		slog.Float64("sys_mb", round2(s.SysMB)),
	)

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = s.NumGC
	p.lastTotalAlloc = p.memStats.TotalAlloc
	p.last = s
	return true
}

// Last returns the most recent sample. It is zero until the first sample is taken.
func (p *Profiler) Last() Stats {
	return p.last
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
