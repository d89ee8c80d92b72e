package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/channelflow/config"
)

func testBase(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	downscale(cfg, 8)
	cfg.Solver.Workers = 1
	cfg.Solver.PressureIterations = 5
	cfg.ComputeDerived()
	return cfg
}

func TestDownscale(t *testing.T) {
	cfg := testBase(t)
	assert.Equal(t, 32, cfg.Grid.Width)
	assert.Equal(t, 32, cfg.Grid.Height)
	assert.InDelta(t, 18.5, cfg.Obstacle.CenterRow, 1e-9)
	assert.InDelta(t, 2.5, cfg.Obstacle.Radius, 1e-9)
	assert.Equal(t, float32(5), cfg.Derived.Params.ObstacleDiameter)
}

func TestParamVectorRoundTrip(t *testing.T) {
	pv := NewParamVector(testBase(t), true)
	require.Equal(t, 2, pv.Dim())

	raw := []float64{30, 0.5}
	back := pv.Denormalize(pv.Normalize(raw))
	assert.InDeltaSlice(t, raw, back, 1e-9)

	assert.Equal(t, []float64{100, 0.01}, pv.Clamp([]float64{1e4, -1}))
}

func TestApplyToConfig(t *testing.T) {
	cfg := testBase(t)
	pv := NewParamVector(cfg, false)

	pv.ApplyToConfig(cfg, []float64{12})
	assert.Equal(t, 12.0, cfg.Inlet.MaxVelocity)
	assert.Equal(t, float32(12), cfg.Derived.Params.UMax)
}

func TestEvaluateDoesNotMutateBase(t *testing.T) {
	base := testBase(t)
	pv := NewParamVector(base, false)
	e := NewFitnessEvaluator(pv, base, 3, 1.0)

	f := e.Evaluate([]float64{10})
	assert.Equal(t, 30.0, base.Inlet.MaxVelocity)
	assert.GreaterOrEqual(t, f, 0.0)
	assert.Equal(t, f, e.Last().Fitness)
	res := e.Last()
	assert.InDelta(t, (res.Drag-1)*(res.Drag-1), f, 1e-9)
}

func TestLogAttrsUseConfigPaths(t *testing.T) {
	pv := NewParamVector(testBase(t), true)
	assert.Equal(t,
		[]any{"inlet.max_velocity", 12.0, "solver.viscosity", 0.25},
		pv.LogAttrs([]float64{12, 0.25}))
}
