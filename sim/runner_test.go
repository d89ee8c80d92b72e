package sim

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/channelflow/config"
	"github.com/pthm-cable/channelflow/ui"
)

func smallConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Grid.Width, cfg.Grid.Height = 48, 32
	cfg.Obstacle.CenterRow, cfg.Obstacle.CenterCol, cfg.Obstacle.Radius = 17, 16, 4
	cfg.Solver.PressureIterations = 10
	cfg.Solver.Workers = 1
	cfg.Telemetry.WindowSteps = 5
	cfg.Tracers.Max = 50
	cfg.Tracers.SpawnPerStep = 3
	cfg.ComputeDerived()
	return cfg
}

func TestRunnerHeadless(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	r, err := New(smallConfig(t), Options{OutputDir: dir, StepsPerUpdate: 4, Headless: true})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		r.UpdateHeadless()
	}
	assert.Equal(t, 20, r.Tick())
	assert.Len(t, r.History(), 4)
	assert.Greater(t, r.Tracers().Count(), 0)

	path, err := r.SaveSnapshot()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "speed_000020.png"), path)

	require.NoError(t, r.Close())

	for _, name := range []string{"config.yaml", "diagnostics.csv", "perf.csv", "history.png", "speed_000020.png"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	data, err := os.ReadFile(filepath.Join(dir, "diagnostics.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 5) // header + 4 windows
}

func TestRunnerWithoutOutput(t *testing.T) {
	r, err := New(smallConfig(t), Options{Headless: true})
	require.NoError(t, err)
	defer r.Close()

	r.UpdateHeadless()
	assert.Equal(t, 1, r.Tick())
}

func TestRunnerSetIterations(t *testing.T) {
	r, err := New(smallConfig(t), Options{Headless: true})
	require.NoError(t, err)
	defer r.Close()

	r.SetIterations(3)
	assert.Equal(t, 3, r.Simulation().Solver().Params().Iterations)
}

func TestRunnerRejectsBadRenderConfig(t *testing.T) {
	cfg := smallConfig(t)
	cfg.Render.Colormap = "nope"
	_, err := New(cfg, Options{Headless: true})
	assert.Error(t, err)
}

func TestApplyControls(t *testing.T) {
	r, err := New(smallConfig(t), Options{Headless: true})
	require.NoError(t, err)
	defer r.Close()

	before := r.field
	r.applyControls(
		ui.ControlsState{Paused: true, Iterations: 7, StepsPerFrame: 0, ShowTracers: false},
		ui.ControlsActions{StepOnce: true, CycleField: true},
	)

	assert.True(t, r.paused)
	assert.False(t, r.showTracers)
	assert.Equal(t, 1, r.stepsPerUpdate)
	assert.Equal(t, 7, r.Simulation().Solver().Params().Iterations)
	assert.Equal(t, 1, r.Tick())
	assert.NotEqual(t, before, r.field)
}

func TestNudgeIterationsClamps(t *testing.T) {
	r, err := New(smallConfig(t), Options{Headless: true})
	require.NoError(t, err)
	defer r.Close()

	iterations := func() int { return r.Simulation().Solver().Params().Iterations }

	r.SetIterations(1)
	r.nudgeIterations(-1)
	assert.Equal(t, 0, iterations())
	r.nudgeIterations(-1)
	assert.Equal(t, 0, iterations())

	r.SetIterations(ui.MaxIterations)
	r.nudgeIterations(1)
	assert.Equal(t, ui.MaxIterations, iterations())
	r.nudgeIterations(-1)
	assert.Equal(t, ui.MaxIterations-1, iterations())
}

func TestRunnerRenderUsesConfiguredThreshold(t *testing.T) {
	cfg := smallConfig(t)
	cfg.Render.GlyphThreshold = 0
	r, err := New(cfg, Options{Headless: true})
	require.NoError(t, err)
	defer r.Close()

	// Inflow peaks at u_max 30, below the default threshold of 64.
	out := r.Simulation().Render()
	assert.Contains(t, out, "◼")
	assert.NotEqual(t, r.Simulation().Grid().String(), out)
}
