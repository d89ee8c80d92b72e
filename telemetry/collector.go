package telemetry

import "github.com/pthm-cable/channelflow/fluid"

// Collector accumulates tracer events between flushes and samples the flow
// diagnostics at the end of every window.
type Collector struct {
	windowSteps int
	dt          float32

	windowStart int

	spawned int
	exited  int
	stuck   int
	expired int

	history []WindowStats
}

// NewCollector creates a collector flushing every windowSteps steps.
// dt converts steps to simulated seconds.
func NewCollector(windowSteps int, dt float32) *Collector {
	if windowSteps < 1 {
		windowSteps = 1
	}
	return &Collector{windowSteps: windowSteps, dt: dt}
}

// RecordTracers adds the tracer events of one step.
func (c *Collector) RecordTracers(spawned, exited, stuck, expired int) {
	c.spawned += spawned
	c.exited += exited
	c.stuck += stuck
	c.expired += expired
}

// ShouldFlush returns true once a full window has elapsed since the last flush.
func (c *Collector) ShouldFlush(tick int) bool {
	return tick-c.windowStart >= c.windowSteps
}

// Flush computes the diagnostics of g, resets the event counters and
// appends the record to the history.
func (c *Collector) Flush(tick int, g *fluid.Grid, p fluid.Params, activeTracers int) WindowStats {
	speeds := ComputeSpeedStats(fluid.Speeds(g))

	stats := WindowStats{
		WindowStartTick: c.windowStart,
		WindowEndTick:   tick,
		SimTimeSec:      float64(tick) * float64(c.dt),

		MaxDivergence:   float64(fluid.MaxDivergence(g, p)),
		DragCoefficient: float64(fluid.DragCoefficient(g, p)),
		KineticEnergy:   float64(fluid.KineticEnergy(g)),
		PressureRMS:     float64(fluid.PressureRMS(g)),

		SpeedMean: speeds.Mean,
		SpeedStd:  speeds.Std,
		SpeedP10:  speeds.P10,
		SpeedP50:  speeds.P50,
		SpeedP90:  speeds.P90,
		SpeedMax:  speeds.Max,

		TracersActive:  activeTracers,
		TracersSpawned: c.spawned,
		TracersExited:  c.exited,
		TracersStuck:   c.stuck,
		TracersExpired: c.expired,
	}

	c.windowStart = tick
	c.spawned, c.exited, c.stuck, c.expired = 0, 0, 0, 0
	c.history = append(c.history, stats)

	return stats
}

// History returns every flushed record in order.
func (c *Collector) History() []WindowStats {
	return c.history
}

// WindowSteps returns the number of steps per window.
func (c *Collector) WindowSteps() int {
	return c.windowSteps
}
