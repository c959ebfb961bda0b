package monitoring

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Phase names accepted by ProfiledFunction. The cast is timed by
// StartRaycast and EndRaycast.
const (
	PhaseMove    = "move"
	PhaseProject = "project"
)

// LowFPSThreshold is the frame rate below which CheckPerformanceAlerts warns
const LowFPSThreshold = 30

// smoothing factor for the running averages
const avgWeight = 0.1

// PerformanceMonitor tracks per-frame timing of the move, cast and project phases
type PerformanceMonitor struct {
	// Frame metrics
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds

	// Phase metrics, nanoseconds of the latest frame
	moveTime    atomic.Uint64
	raycastTime atomic.Uint64
	projectTime atomic.Uint64

	raysCast atomic.Uint64
	strips   atomic.Uint64

	// Statistics
	mutex          sync.RWMutex
	avgFrameTime   float64
	avgRaycastTime float64
	startTime      time.Time

	enableDetailed atomic.Bool
}

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor() *PerformanceMonitor {
	pm := &PerformanceMonitor{startTime: time.Now()}
	pm.enableDetailed.Store(true)
	return pm
}

// FrameTimer helps measure frame timing
type FrameTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartFrame begins frame timing
func (pm *PerformanceMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndFrame completes frame timing
func (ft *FrameTimer) EndFrame() {
	frameTime := time.Since(ft.startTime)
	ft.monitor.frameTime.Store(uint64(frameTime.Nanoseconds()))
	count := ft.monitor.frameCount.Add(1)

	if ft.monitor.enableDetailed.Load() {
		ft.monitor.mutex.Lock()
		ft.monitor.avgFrameTime = runningAverage(ft.monitor.avgFrameTime, float64(frameTime.Nanoseconds()), count)
		ft.monitor.mutex.Unlock()
	}
}

// RaycastTimer helps measure raycasting performance
type RaycastTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartRaycast begins raycast timing
func (pm *PerformanceMonitor) StartRaycast() *RaycastTimer {
	return &RaycastTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndRaycast completes raycast timing for a fan of rays rays
func (rt *RaycastTimer) EndRaycast(rays int) {
	raycastTime := time.Since(rt.startTime)
	rt.monitor.raycastTime.Store(uint64(raycastTime.Nanoseconds()))
	rt.monitor.raysCast.Add(uint64(rays))

	if rt.monitor.enableDetailed.Load() {
		rt.monitor.mutex.Lock()
		rt.monitor.avgRaycastTime = runningAverage(rt.monitor.avgRaycastTime,
			float64(raycastTime.Nanoseconds()), rt.monitor.frameCount.Load()+1)
		rt.monitor.mutex.Unlock()
	}
}

func runningAverage(avg, sample float64, count uint64) float64 {
	if count <= 1 || avg == 0 {
		return sample
	}
	return avg + avgWeight*(sample-avg)
}

// RecordStrips adds the number of strips produced by a projection
func (pm *PerformanceMonitor) RecordStrips(n int) {
	pm.strips.Add(uint64(n))
}

// FrameMetrics is a snapshot of the latest frame
type FrameMetrics struct {
	FrameCount      uint64
	FramesPerSecond float64
	MoveTime        time.Duration
	RaycastTime     time.Duration
	ProjectTime     time.Duration
	RaysCast        uint64
	Strips          uint64
	MemoryUsageMB   uint64
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() FrameMetrics {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return FrameMetrics{
		FrameCount:      pm.frameCount.Load(),
		FramesPerSecond: fps(pm.frameTime.Load()),
		MoveTime:        time.Duration(pm.moveTime.Load()),
		RaycastTime:     time.Duration(pm.raycastTime.Load()),
		ProjectTime:     time.Duration(pm.projectTime.Load()),
		RaysCast:        pm.raysCast.Load(),
		Strips:          pm.strips.Load(),
		MemoryUsageMB:   memStats.Alloc / 1024 / 1024,
	}
}

func fps(frameNanos uint64) float64 {
	if frameNanos == 0 {
		return 0
	}
	return 1000000000.0 / float64(frameNanos)
}

// String formats the metrics for an on-screen debug line
func (m FrameMetrics) String() string {
	return fmt.Sprintf("FPS: %.0f  move %s  cast %s  project %s",
		m.FramesPerSecond, m.MoveTime.Round(time.Microsecond),
		m.RaycastTime.Round(time.Microsecond), m.ProjectTime.Round(time.Microsecond))
}

// GetDetailedStats returns detailed performance statistics
func (pm *PerformanceMonitor) GetDetailedStats() map[string]interface{} {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return map[string]interface{}{
		"uptime_seconds":      time.Since(pm.startTime).Seconds(),
		"frame_count":         pm.frameCount.Load(),
		"avg_frame_time_ms":   pm.avgFrameTime / 1000000,
		"avg_raycast_time_ms": pm.avgRaycastTime / 1000000,
		"current_fps":         fps(pm.frameTime.Load()),
		"rays_cast":           pm.raysCast.Load(),
		"strips_projected":    pm.strips.Load(),
		"memory_alloc_mb":     memStats.Alloc / 1024 / 1024,
		"gc_cycles":           memStats.NumGC,
		"cpu_cores":           runtime.NumCPU(),
		"goroutines":          runtime.NumGoroutine(),
	}
}

// PerformanceAlert represents a performance warning
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
	Timestamp time.Time
}

// CheckPerformanceAlerts checks for performance issues and returns alerts
func (pm *PerformanceMonitor) CheckPerformanceAlerts() []PerformanceAlert {
	alerts := make([]PerformanceAlert, 0)

	if frameTime := pm.frameTime.Load(); frameTime > 0 {
		if rate := fps(frameTime); rate < LowFPSThreshold {
			alerts = append(alerts, PerformanceAlert{
				Type:      "low_fps",
				Message:   fmt.Sprintf("Frame rate is below %d FPS", LowFPSThreshold),
				Value:     rate,
				Threshold: LowFPSThreshold,
				Timestamp: time.Now(),
			})
		}
	}
	return alerts
}

// EnableDetailedLogging enables/disables the running averages reported by
// GetDetailedStats
func (pm *PerformanceMonitor) EnableDetailedLogging(enabled bool) {
	pm.enableDetailed.Store(enabled)
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	pm.moveTime.Store(0)
	pm.raycastTime.Store(0)
	pm.projectTime.Store(0)
	pm.raysCast.Store(0)
	pm.strips.Store(0)

	pm.mutex.Lock()
	pm.avgFrameTime = 0
	pm.avgRaycastTime = 0
	pm.startTime = time.Now()
	pm.mutex.Unlock()
}

// ProfiledFunction wraps a function with performance timing
func (pm *PerformanceMonitor) ProfiledFunction(name string, fn func()) time.Duration {
	start := time.Now()
	fn()
	duration := time.Since(start)

	switch name {
	case PhaseMove:
		pm.moveTime.Store(uint64(duration.Nanoseconds()))
	case PhaseProject:
		pm.projectTime.Store(uint64(duration.Nanoseconds()))
	}

	return duration
}

// String formats the alert for a HUD line
func (a PerformanceAlert) String() string {
	return fmt.Sprintf("%s: %.0f < %.0f", a.Type, a.Value, a.Threshold)
}
