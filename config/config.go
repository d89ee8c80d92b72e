// Package config provides configuration loading and access for the solver.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/channelflow/fluid"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Grid      GridConfig      `yaml:"grid"`
	Solver    SolverConfig    `yaml:"solver"`
	Inlet     InletConfig     `yaml:"inlet"`
	Obstacle  ObstacleConfig  `yaml:"obstacle"`
	Initial   InitialConfig   `yaml:"initial"`
	Screen    ScreenConfig    `yaml:"screen"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Tracers   TracersConfig   `yaml:"tracers"`
	Render    RenderConfig    `yaml:"render"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// GridConfig holds the fixed domain size in cells.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SolverConfig holds the constants of the explicit scheme.
type SolverConfig struct {
	DT                 float64 `yaml:"dt"`
	DX                 float64 `yaml:"dx"`
	DY                 float64 `yaml:"dy"`
	Rho                float64 `yaml:"rho"`
	Viscosity          float64 `yaml:"viscosity"`
	PressureIterations int     `yaml:"pressure_iterations"` // Jacobi sweeps per step
	Workers            int     `yaml:"workers"`             // 0 = GOMAXPROCS, 1 = serial
}

// InletConfig holds the inflow boundary parameters.
type InletConfig struct {
	Profile     string  `yaml:"profile"` // parabolic | uniform
	MaxVelocity float64 `yaml:"max_velocity"`
}

// ObstacleConfig holds the immersed body geometry in cell units.
type ObstacleConfig struct {
	Shape     string  `yaml:"shape"` // circle | none
	CenterRow float64 `yaml:"center_row"`
	CenterCol float64 `yaml:"center_col"`
	Radius    float64 `yaml:"radius"`
}

// InitialConfig holds the optional perturbation of the initial field.
type InitialConfig struct {
	NoiseAmplitude float64 `yaml:"noise_amplitude"` // 0 disables
	NoiseScale     float64 `yaml:"noise_scale"`
	Seed           int64   `yaml:"seed"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
	CellSize  int `yaml:"cell_size"` // pixels per grid cell
}

// TelemetryConfig holds diagnostics and performance reporting parameters.
type TelemetryConfig struct {
	WindowSteps int `yaml:"window_steps"` // steps between diagnostics records
	PerfWindow  int `yaml:"perf_window"`  // steps averaged by the perf collector
}

// TracersConfig holds passive tracer particle parameters.
type TracersConfig struct {
	Max          int `yaml:"max"`
	SpawnPerStep int `yaml:"spawn_per_step"`
	MaxAge       int `yaml:"max_age"` // steps
}

// RenderConfig holds visualisation parameters.
type RenderConfig struct {
	Colormap       string  `yaml:"colormap"` // viridis | turbo | inferno
	Field          string  `yaml:"field"`    // speed | pressure
	GlyphThreshold float64 `yaml:"glyph_threshold"`
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	Params       fluid.Params
	Obstacle     fluid.Obstacle
	Perturbation fluid.Perturbation
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.ComputeDerived()

	return cfg, nil
}

// Validate rejects configurations the solver cannot run.
func (c *Config) Validate() error {
	if c.Grid.Width < 1 || c.Grid.Height < 1 {
		return fmt.Errorf("grid: width and height must be positive, got %dx%d", c.Grid.Width, c.Grid.Height)
	}
	if c.Solver.DT <= 0 {
		return fmt.Errorf("solver: dt must be positive, got %g", c.Solver.DT)
	}
	if c.Solver.DX <= 0 || c.Solver.DY <= 0 {
		return fmt.Errorf("solver: dx and dy must be positive, got %g, %g", c.Solver.DX, c.Solver.DY)
	}
	if c.Solver.Rho <= 0 {
		return fmt.Errorf("solver: rho must be positive, got %g", c.Solver.Rho)
	}
	if c.Solver.Viscosity < 0 {
		return fmt.Errorf("solver: viscosity must be >= 0, got %g", c.Solver.Viscosity)
	}
	if c.Solver.PressureIterations < 0 {
		return fmt.Errorf("solver: pressure_iterations must be >= 0, got %d", c.Solver.PressureIterations)
	}
	if _, err := parseProfile(c.Inlet.Profile); err != nil {
		return err
	}
	if _, err := parseShape(c.Obstacle.Shape); err != nil {
		return err
	}
	if c.Obstacle.Radius < 0 {
		return fmt.Errorf("obstacle: radius must be >= 0, got %g", c.Obstacle.Radius)
	}
	return nil
}

// ComputeDerived calculates values derived from the loaded config.
// Call it again after editing fields in place.
func (c *Config) ComputeDerived() {
	profile, _ := parseProfile(c.Inlet.Profile)
	shape, _ := parseShape(c.Obstacle.Shape)

	c.Derived.Obstacle = fluid.Obstacle{
		Shape:     shape,
		CenterRow: float32(c.Obstacle.CenterRow),
		CenterCol: float32(c.Obstacle.CenterCol),
		Radius:    float32(c.Obstacle.Radius),
	}

	c.Derived.Params = fluid.Params{
		DT:               float32(c.Solver.DT),
		DX:               float32(c.Solver.DX),
		DY:               float32(c.Solver.DY),
		Rho:              float32(c.Solver.Rho),
		Viscosity:        float32(c.Solver.Viscosity),
		Iterations:       c.Solver.PressureIterations,
		Inlet:            profile,
		UMax:             float32(c.Inlet.MaxVelocity),
		ObstacleDiameter: c.Derived.Obstacle.Diameter(),
		Workers:          c.Solver.Workers,
	}

	c.Derived.Perturbation = fluid.Perturbation{
		Amplitude: float32(c.Initial.NoiseAmplitude),
		Scale:     float32(c.Initial.NoiseScale),
		Seed:      c.Initial.Seed,
	}
}

// NewGrid builds the configured initial condition.
func (c *Config) NewGrid() *fluid.Grid {
	return fluid.NewChannel(c.Grid.Width, c.Grid.Height,
		c.Derived.Params, c.Derived.Obstacle, c.Derived.Perturbation)
}

func parseProfile(s string) (fluid.InletProfile, error) {
	switch s {
	case "", "parabolic":
		return fluid.ProfileParabolic, nil
	case "uniform":
		return fluid.ProfileUniform, nil
	}
	return 0, fmt.Errorf("inlet: unknown profile %q", s)
}

func parseShape(s string) (fluid.ObstacleShape, error) {
	switch s {
	case "", "circle":
		return fluid.ShapeCircle, nil
	case "none":
		return fluid.ShapeNone, nil
	}
	return 0, fmt.Errorf("obstacle: unknown shape %q", s)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
