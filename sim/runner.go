// Package sim drives the solver together with tracers, telemetry and the viewer.
package sim

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/channelflow/config"
	"github.com/pthm-cable/channelflow/fluid"
	"github.com/pthm-cable/channelflow/renderer"
	"github.com/pthm-cable/channelflow/telemetry"
	"github.com/pthm-cable/channelflow/tracers"
)

// Options configures a Runner beyond what the config file holds.
type Options struct {
	LogStats       bool   // emit diagnostics and perf via slog on every window
	OutputDir      string // CSV, YAML and PNG output; empty disables
	StepsPerUpdate int    // solver steps per Update call
	Headless       bool
}

// Runner owns one simulation and everything observing it.
type Runner struct {
	cfg *config.Config

	sim     *fluid.Simulation
	tracers *tracers.System

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager
	logStats  bool

	stepsPerUpdate int
	paused         bool
	showTracers    bool
	field          renderer.Field
	cmap           *renderer.Colormap
	snapshots      int

	view *viewer // nil in headless mode
}

// New builds the configured initial condition and its observers.
func New(cfg *config.Config, opts Options) (*Runner, error) {
	field, err := renderer.ParseField(cfg.Render.Field)
	if err != nil {
		return nil, err
	}
	cmap, err := renderer.NewColormap(cfg.Render.Colormap)
	if err != nil {
		return nil, err
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	p := cfg.Derived.Params
	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	tr := tracers.New(tracers.Options{
		Max:          cfg.Tracers.Max,
		SpawnPerStep: cfg.Tracers.SpawnPerStep,
		MaxAge:       cfg.Tracers.MaxAge,
		Seed:         cfg.Initial.Seed,
	})

	r := &Runner{
		cfg:            cfg,
		sim:            fluid.NewSimulation(cfg.NewGrid(), fluid.NewSolver(p)),
		tracers:        tr,
		collector:      telemetry.NewCollector(cfg.Telemetry.WindowSteps, p.DT),
		perf:           telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		output:         output,
		logStats:       opts.LogStats,
		stepsPerUpdate: steps,
		showTracers:    true,
		field:          field,
		cmap:           cmap,
	}
	r.sim.SetGlyphThreshold(float32(cfg.Render.GlyphThreshold))
	if !opts.Headless {
		r.view = newViewer(cfg)
	}

	slog.Info("simulation created",
		"width", cfg.Grid.Width,
		"height", cfg.Grid.Height,
		"iterations", p.Iterations,
		"u_max", p.UMax,
		"obstacle_cells", r.sim.Grid().ObstacleCount(),
		"output_dir", output.Dir(),
	)
	return r, nil
}

// UpdateHeadless runs StepsPerUpdate solver steps.
func (r *Runner) UpdateHeadless() {
	for i := 0; i < r.stepsPerUpdate; i++ {
		r.step()
	}
}

// step advances the flow and the tracers once and flushes telemetry when a
// window closes.
func (r *Runner) step() {
	r.perf.StartStep()
	r.sim.StepPhases(r.perf.StartPhase)

	r.perf.StartPhase(telemetry.PhaseTracers)
	counts := r.tracers.Step(r.sim.Grid(), r.sim.Solver().Params())
	r.collector.RecordTracers(counts.Spawned, counts.Exited, counts.Stuck, counts.Expired)

	r.perf.StartPhase(telemetry.PhaseDiagnostics)
	r.flushTelemetry()
	r.perf.EndStep()
}

// flushTelemetry samples diagnostics at the end of each window.
func (r *Runner) flushTelemetry() {
	tick := r.sim.Tick()
	if !r.collector.ShouldFlush(tick) {
		return
	}

	stats := r.collector.Flush(tick, r.sim.Grid(), r.sim.Solver().Params(), r.tracers.Count())
	perfStats := r.perf.Stats()

	if r.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := r.output.WriteDiagnostics(stats); err != nil {
		slog.Error("failed to write diagnostics", "error", err)
	}
	if err := r.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// SetIterations changes the Jacobi sweep budget for subsequent steps.
func (r *Runner) SetIterations(n int) {
	r.sim.Solver().SetIterations(n)
}

// SaveSnapshot writes the current field as a PNG into the output directory
// (or the working directory when output is disabled) and returns its path.
func (r *Runner) SaveSnapshot() (string, error) {
	name := fmt.Sprintf("%s_%06d.png", r.field, r.sim.Tick())
	path := name
	if r.output != nil {
		path = r.output.Path(name)
	}
	if err := renderer.SavePNG(r.cmap.Image(r.sim.Grid(), r.field), path); err != nil {
		return "", err
	}
	r.snapshots++
	slog.Info("snapshot saved", "path", path, "tick", r.sim.Tick())
	return path, nil
}

// Simulation exposes the driven simulation.
func (r *Runner) Simulation() *fluid.Simulation { return r.sim }

// Tracers exposes the tracer system.
func (r *Runner) Tracers() *tracers.System { return r.tracers }

// History returns the diagnostics records flushed so far.
func (r *Runner) History() []telemetry.WindowStats { return r.collector.History() }

// Tick returns the number of completed steps.
func (r *Runner) Tick() int { return r.sim.Tick() }

// Close writes the history plot, closes output files and stops the solver.
func (r *Runner) Close() error {
	if r.view != nil {
		r.view.unload()
	}
	r.sim.Close()

	var firstErr error
	if err := r.output.WriteHistoryPlot(r.collector.History()); err != nil {
		slog.Error("failed to write history plot", "error", err)
		firstErr = err
	}
	if err := r.output.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
