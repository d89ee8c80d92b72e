package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/channelflow/config"
	"github.com/pthm-cable/channelflow/sim"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output diagnostics via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, plots and config snapshot")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N steps (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Solver steps per update call")
	iterations := flag.Int("iterations", -1, "Jacobi sweeps per step (-1 = use config)")
	dump := flag.Bool("dump", false, "Print the glyph rendering of the final state (headless only)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *iterations >= 0 {
		cfg.Solver.PressureIterations = *iterations
		cfg.ComputeDerived()
	}

	opts := sim.Options{
		LogStats:       *logStats,
		OutputDir:      *outputDir,
		StepsPerUpdate: *stepsPerUpdate,
		Headless:       *headless,
	}

	if *headless {
		if *maxTicks <= 0 {
			slog.Warn("headless run without -max-ticks will not stop on its own")
		}
		r, err := sim.New(cfg, opts)
		if err != nil {
			slog.Error("failed to create simulation", "error", err)
			os.Exit(1)
		}
		defer r.Close()

		slog.Info("starting headless simulation",
			"max_ticks", *maxTicks,
			"steps_per_update", *stepsPerUpdate,
		)

		for *maxTicks <= 0 || r.Tick() < *maxTicks {
			r.UpdateHeadless()
		}
		slog.Info("max ticks reached",
			"tick", r.Tick(),
			"max_divergence", r.Simulation().MaxDivergence(),
			"drag_coefficient", r.Simulation().DragCoefficient(),
		)
		if *dump {
			os.Stdout.WriteString(r.Simulation().Render())
		}
		return
	}

	// Graphical mode
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Channel Flow")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	r, err := sim.New(cfg, opts)
	if err != nil {
		slog.Error("failed to create simulation", "error", err)
		os.Exit(1)
	}
	defer r.Close()

	for !rl.WindowShouldClose() {
		r.Update()
		r.Draw()

		if *maxTicks > 0 && r.Tick() >= *maxTicks {
			break
		}
	}
}
