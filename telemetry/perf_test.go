package telemetry

import (
	"testing"
	"time"
)

func runSteps(pc *PerfCollector, n int, phases map[string]time.Duration, order []string) {
	for i := 0; i < n; i++ {
		pc.StartStep()
		for _, name := range order {
			pc.StartPhase(name)
			time.Sleep(phases[name])
		}
		pc.EndStep()
	}
}

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)
	runSteps(pc, 5, map[string]time.Duration{
		PhasePressure: 200 * time.Microsecond,
		PhaseVelocity: 100 * time.Microsecond,
	}, []string{PhasePressure, PhaseVelocity})

	stats := pc.Stats()
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average step duration")
	}
	for _, phase := range []string{PhasePressure, PhaseVelocity} {
		if _, ok := stats.PhaseAvg[phase]; !ok {
			t.Errorf("expected %s phase to be tracked", phase)
		}
	}
	if stats.MinTickDuration > stats.MaxTickDuration {
		t.Errorf("min %v > max %v", stats.MinTickDuration, stats.MaxTickDuration)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)
	runSteps(pc, 12, nil, []string{PhaseTracers})

	if pc.count != 5 {
		t.Errorf("expected window to cap at 5 samples, got %d", pc.count)
	}
	stats := pc.Stats()
	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive steps per second")
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)
	runSteps(pc, 5, map[string]time.Duration{
		PhaseDiagnostics: 10 * time.Microsecond,
		PhasePressure:    2 * time.Millisecond,
	}, []string{PhaseDiagnostics, PhasePressure})

	stats := pc.Stats()
	if stats.PhasePct[PhasePressure] <= stats.PhasePct[PhaseDiagnostics] {
		t.Errorf("expected pressure (%v%%) > diagnostics (%v%%)",
			stats.PhasePct[PhasePressure], stats.PhasePct[PhaseDiagnostics])
	}

	var total float64
	for _, pct := range stats.PhasePct {
		total += pct
	}
	if total > 100.5 {
		t.Errorf("phase percentages sum to %v, want <= 100", total)
	}
}

func TestPerfCollector_Empty(t *testing.T) {
	stats := NewPerfCollector(10).Stats()

	if stats.AvgTickDuration != 0 {
		t.Error("expected zero avg step duration for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("expected frame duration >= 15ms, got %v", stats.FrameDuration)
	}
	if stats.FPS <= 0 || stats.FPS > 80 {
		t.Errorf("expected FPS in (0, 80] with 16ms frames, got %v", stats.FPS)
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	s := PerfStats{
		AvgTickDuration: 1500 * time.Microsecond,
		PhasePct:        map[string]float64{PhasePressure: 80, PhaseVelocity: 15},
	}
	rec := s.ToCSV(90)
	if rec.WindowEnd != 90 || rec.AvgStepUS != 1500 {
		t.Errorf("unexpected record %+v", rec)
	}
	if rec.PressurePct != 80 || rec.VelocityPct != 15 || rec.TracersPct != 0 {
		t.Errorf("unexpected phase split %+v", rec)
	}
}
