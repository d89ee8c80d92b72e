package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/channelflow/fluid"
)

func TestDefaultsMatchReference(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 256, cfg.Grid.Width)
	assert.Equal(t, 256, cfg.Grid.Height)

	p := cfg.Derived.Params
	ref := fluid.DefaultParams()
	assert.Equal(t, ref.DT, p.DT)
	assert.Equal(t, ref.DX, p.DX)
	assert.Equal(t, ref.DY, p.DY)
	assert.Equal(t, ref.Rho, p.Rho)
	assert.Equal(t, ref.Viscosity, p.Viscosity)
	assert.Equal(t, ref.Iterations, p.Iterations)
	assert.Equal(t, ref.UMax, p.UMax)
	assert.Equal(t, ref.ObstacleDiameter, p.ObstacleDiameter)
	assert.Equal(t, fluid.ProfileParabolic, p.Inlet)

	assert.Equal(t, fluid.ShapeCircle, cfg.Derived.Obstacle.Shape)
	assert.Equal(t, float32(148), cfg.Derived.Obstacle.CenterRow)
	assert.Equal(t, float32(0), cfg.Derived.Perturbation.Amplitude)
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	data := []byte("grid:\n  width: 64\nsolver:\n  pressure_iterations: 10\ninlet:\n  profile: uniform\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.Grid.Width)
	assert.Equal(t, 256, cfg.Grid.Height)
	assert.Equal(t, 10, cfg.Derived.Params.Iterations)
	assert.Equal(t, fluid.ProfileUniform, cfg.Derived.Params.Inlet)
	assert.Equal(t, 0.5, cfg.Solver.Viscosity)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		edit func(c *Config)
	}{
		{"zero width", func(c *Config) { c.Grid.Width = 0 }},
		{"negative dt", func(c *Config) { c.Solver.DT = -1 }},
		{"zero dx", func(c *Config) { c.Solver.DX = 0 }},
		{"zero rho", func(c *Config) { c.Solver.Rho = 0 }},
		{"negative viscosity", func(c *Config) { c.Solver.Viscosity = -0.1 }},
		{"negative iterations", func(c *Config) { c.Solver.PressureIterations = -3 }},
		{"unknown profile", func(c *Config) { c.Inlet.Profile = "plug" }},
		{"unknown shape", func(c *Config) { c.Obstacle.Shape = "square" }},
		{"negative radius", func(c *Config) { c.Obstacle.Radius = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)
			tt.edit(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateAcceptsInviscid(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Solver.Viscosity = 0
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Obstacle.Radius = 7
	cfg.Solver.PressureIterations = 12

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, cfg.WriteYAML(path))

	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, float32(14), back.Derived.Params.ObstacleDiameter)
	assert.Equal(t, 12, back.Derived.Params.Iterations)
}

func TestNewGridUsesConfig(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Grid.Width, cfg.Grid.Height = 40, 30
	cfg.Obstacle.CenterRow, cfg.Obstacle.CenterCol, cfg.Obstacle.Radius = 15, 20, 4
	cfg.ComputeDerived()

	g := cfg.NewGrid()
	assert.Equal(t, 40, g.Width())
	assert.Equal(t, 30, g.Height())
	assert.True(t, g.IsObstacle(15, 20))
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() { global = saved }()
	assert.Panics(t, func() { Cfg() })
}
