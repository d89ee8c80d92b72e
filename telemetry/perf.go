package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one solver step. Pressure and velocity match the names
// reported by fluid.Simulation.StepPhases.
const (
	PhasePressure    = "pressure"
	PhaseVelocity    = "velocity"
	PhaseTracers     = "tracers"
	PhaseDiagnostics = "diagnostics"
)

// phaseOrder is the reporting order for log and CSV output.
var phaseOrder = []string{PhasePressure, PhaseVelocity, PhaseTracers, PhaseDiagnostics}

// PerfSample holds timing data for a single step.
type PerfSample struct {
	StepDuration time.Duration
	Phases       map[string]time.Duration
}

// PerfCollector keeps a ring buffer of step timings.
type PerfCollector struct {
	ring  []PerfSample
	next  int
	count int

	phases     map[string]time.Duration
	stepStart  time.Time
	phaseStart time.Time
	phase      string

	// Frame timing (graphics mode)
	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over the last windowSize steps.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		ring:   make([]PerfSample, windowSize),
		phases: make(map[string]time.Duration),
	}
}

// StartStep begins timing a new solver step.
func (p *PerfCollector) StartStep() {
	p.stepStart = time.Now()
	p.phases = make(map[string]time.Duration)
	p.phase = ""
}

// StartPhase closes the running phase, if any, and opens the named one.
// Its signature matches the callback of fluid.Simulation.StepPhases.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phase
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != "" {
		p.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndStep closes the running phase and stores the sample.
func (p *PerfCollector) EndStep() {
	now := time.Now()
	p.closePhase(now)
	p.phase = ""

	p.ring[p.next] = PerfSample{
		StepDuration: now.Sub(p.stepStart),
		Phases:       p.phases,
	}
	p.next = (p.next + 1) % len(p.ring)
	if p.count < len(p.ring) {
		p.count++
	}
}

// RecordFrame records frame timing for graphics mode.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// Phase breakdown: average duration and share of the step
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the samples currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	out := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frame,
	}
	if p.frame > 0 {
		out.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.count == 0 {
		return out
	}

	var total time.Duration
	sums := make(map[string]time.Duration)
	for i, s := range p.ring[:p.count] {
		total += s.StepDuration
		if i == 0 || s.StepDuration < out.MinTickDuration {
			out.MinTickDuration = s.StepDuration
		}
		if s.StepDuration > out.MaxTickDuration {
			out.MaxTickDuration = s.StepDuration
		}
		for phase, d := range s.Phases {
			sums[phase] += d
		}
	}

	n := time.Duration(p.count)
	out.AvgTickDuration = total / n
	for phase, sum := range sums {
		avg := sum / n
		out.PhaseAvg[phase] = avg
		if out.AvgTickDuration > 0 {
			out.PhasePct[phase] = float64(avg) / float64(out.AvgTickDuration) * 100
		}
	}
	if out.AvgTickDuration > 0 {
		out.TicksPerSecond = float64(time.Second) / float64(out.AvgTickDuration)
	}
	return out
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_step_us", s.AvgTickDuration.Microseconds(),
		"min_step_us", s.MinTickDuration.Microseconds(),
		"max_step_us", s.MaxTickDuration.Microseconds(),
		"steps_per_sec", int(s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", float64(int(pct*10))/10)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_step_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_step_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_step_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("steps_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd      int     `csv:"window_end"`
	AvgStepUS      int64   `csv:"avg_step_us"`
	MinStepUS      int64   `csv:"min_step_us"`
	MaxStepUS      int64   `csv:"max_step_us"`
	StepsPerSec    float64 `csv:"steps_per_sec"`
	FPS            float64 `csv:"fps"`
	PressurePct    float64 `csv:"pressure_pct"`
	VelocityPct    float64 `csv:"velocity_pct"`
	TracersPct     float64 `csv:"tracers_pct"`
	DiagnosticsPct float64 `csv:"diagnostics_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:      windowEnd,
		AvgStepUS:      s.AvgTickDuration.Microseconds(),
		MinStepUS:      s.MinTickDuration.Microseconds(),
		MaxStepUS:      s.MaxTickDuration.Microseconds(),
		StepsPerSec:    s.TicksPerSecond,
		FPS:            s.FPS,
		PressurePct:    s.PhasePct[PhasePressure],
		VelocityPct:    s.PhasePct[PhaseVelocity],
		TracersPct:     s.PhasePct[PhaseTracers],
		DiagnosticsPct: s.PhasePct[PhaseDiagnostics],
	}
}
