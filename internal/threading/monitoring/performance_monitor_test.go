package monitoring

import (
	"strings"
	"testing"
	"time"
)

func TestNewPerformanceMonitor(t *testing.T) {
	pm := NewPerformanceMonitor()

	if pm == nil {
		t.Fatal("NewPerformanceMonitor returned nil")
	}
	if !pm.enableDetailed.Load() {
		t.Error("Expected enableDetailed to be true")
	}
	if time.Since(pm.startTime) > time.Second {
		t.Error("Start time should be recent")
	}
}

func TestPerformanceMonitorFrameTiming(t *testing.T) {
	pm := NewPerformanceMonitor()

	frameTimer := pm.StartFrame()
	time.Sleep(10 * time.Millisecond)
	frameTimer.EndFrame()

	if pm.frameCount.Load() != 1 {
		t.Errorf("Expected frame count to be 1, got %d", pm.frameCount.Load())
	}

	minExpectedTime := uint64(10 * time.Millisecond)
	if frameTime := pm.frameTime.Load(); frameTime < minExpectedTime {
		t.Errorf("Expected frame time to be at least %d ns, got %d ns", minExpectedTime, frameTime)
	}

	metrics := pm.GetCurrentMetrics()
	if metrics.FramesPerSecond <= 0 || metrics.FramesPerSecond > 100 {
		t.Errorf("Expected FPS in (0, 100] for a 10ms frame, got %f", metrics.FramesPerSecond)
	}
}

func TestPerformanceMonitorPhases(t *testing.T) {
	pm := NewPerformanceMonitor()

	for _, phase := range []string{PhaseMove, PhaseProject} {
		d := pm.ProfiledFunction(phase, func() { time.Sleep(time.Millisecond) })
		if d < time.Millisecond {
			t.Errorf("Expected %s to take at least 1ms, got %v", phase, d)
		}
	}

	rt := pm.StartRaycast()
	time.Sleep(time.Millisecond)
	rt.EndRaycast(60)
	pm.RecordStrips(45)

	m := pm.GetCurrentMetrics()
	if m.MoveTime < time.Millisecond || m.ProjectTime < time.Millisecond || m.RaycastTime < time.Millisecond {
		t.Errorf("Expected phase timings recorded, got move=%v cast=%v project=%v", m.MoveTime, m.RaycastTime, m.ProjectTime)
	}
	if m.RaysCast != 60 || m.Strips != 45 {
		t.Errorf("Expected 60 rays and 45 strips, got %d and %d", m.RaysCast, m.Strips)
	}
	if !strings.HasPrefix(m.String(), "FPS: ") {
		t.Errorf("Unexpected debug line %q", m.String())
	}
}

func TestPerformanceMonitorReset(t *testing.T) {
	pm := NewPerformanceMonitor()
	ft := pm.StartFrame()
	ft.EndFrame()
	pm.RecordStrips(3)

	pm.Reset()

	m := pm.GetCurrentMetrics()
	if m.FrameCount != 0 || m.Strips != 0 || m.FramesPerSecond != 0 {
		t.Errorf("Expected cleared metrics, got %+v", m)
	}
	stats := pm.GetDetailedStats()
	if stats["frame_count"].(uint64) != 0 {
		t.Errorf("Expected frame_count 0, got %v", stats["frame_count"])
	}
}

func TestEnableDetailedLogging(t *testing.T) {
	pm := NewPerformanceMonitor()
	pm.EnableDetailedLogging(false)

	ft := pm.StartFrame()
	time.Sleep(time.Millisecond)
	ft.EndFrame()
	pm.StartRaycast().EndRaycast(4)

	stats := pm.GetDetailedStats()
	if stats["avg_frame_time_ms"].(float64) != 0 || stats["avg_raycast_time_ms"].(float64) != 0 {
		t.Errorf("Expected no running averages while disabled, got %v and %v",
			stats["avg_frame_time_ms"], stats["avg_raycast_time_ms"])
	}
	if stats["frame_count"].(uint64) != 1 || stats["rays_cast"].(uint64) != 4 {
		t.Errorf("Expected counters to keep running, got %v frames and %v rays", stats["frame_count"], stats["rays_cast"])
	}

	pm.EnableDetailedLogging(true)
	ft = pm.StartFrame()
	time.Sleep(time.Millisecond)
	ft.EndFrame()
	if avg := pm.GetDetailedStats()["avg_frame_time_ms"].(float64); avg < 1 {
		t.Errorf("Expected an average of at least 1ms once enabled, got %v", avg)
	}
}

func TestPerformanceAlerts(t *testing.T) {
	pm := NewPerformanceMonitor()
	if alerts := pm.CheckPerformanceAlerts(); len(alerts) != 0 {
		t.Errorf("Expected no alerts before any frame, got %d", len(alerts))
	}

	pm.frameTime.Store(uint64(50 * time.Millisecond))
	alerts := pm.CheckPerformanceAlerts()
	if len(alerts) != 1 || alerts[0].Type != "low_fps" {
		t.Fatalf("Expected one low_fps alert, got %+v", alerts)
	}
	if got := alerts[0].String(); got != "low_fps: 20 < 30" {
		t.Errorf("Expected HUD line %q, got %q", "low_fps: 20 < 30", got)
	}
}

func TestPerformanceMonitorConcurrency(t *testing.T) {
	pm := NewPerformanceMonitor()
	done := make(chan bool, 5)

	for i := 0; i < 5; i++ {
		go func() {
			for j := 0; j < 20; j++ {
				frameTimer := pm.StartFrame()
				pm.StartRaycast().EndRaycast(1)
				pm.RecordStrips(1)
				frameTimer.EndFrame()
			}
			done <- true
		}()
	}
	for i := 0; i < 5; i++ {
		<-done
	}

	if pm.frameCount.Load() != 100 {
		t.Errorf("Expected 100 frames, got %d", pm.frameCount.Load())
	}
	if pm.strips.Load() != 100 {
		t.Errorf("Expected 100 strips, got %d", pm.strips.Load())
	}
}
