// Command calibrate searches for the inlet velocity that produces a target
// drag coefficient after a fixed number of steps.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/channelflow/config"
)

// EvalRecord is one row of calibrate_log.csv.
type EvalRecord struct {
	Eval       int     `csv:"eval"`
	Fitness    float64 `csv:"fitness"`
	Drag       float64 `csv:"drag_coefficient"`
	Divergence float64 `csv:"max_divergence"`
	UMax       float64 `csv:"u_max"`
	Viscosity  float64 `csv:"viscosity"`
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	target := flag.Float64("target", 1.0, "Target drag coefficient")
	steps := flag.Int("steps", 500, "Solver steps per evaluation")
	maxEvals := flag.Int("max-evals", 40, "Maximum number of evaluations")
	scale := flag.Int("scale", 2, "Divide grid and obstacle geometry by this factor for faster runs")
	fitViscosity := flag.Bool("fit-viscosity", false, "Also calibrate the viscosity")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if *outputDir == "" {
		slog.Error("--output is required")
		os.Exit(1)
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	base := *config.Cfg()
	downscale(&base, *scale)

	params := NewParamVector(&base, *fitViscosity)
	evaluator := NewFitnessEvaluator(params, &base, *steps, *target)

	logFile, err := os.Create(filepath.Join(*outputDir, "calibrate_log.csv"))
	if err != nil {
		slog.Error("failed to create log file", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	evalCount := 0
	bestFitness := penalty
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(raw)
			evalCount++

			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = raw
			}

			res := evaluator.Last()
			rec := EvalRecord{
				Eval:       evalCount,
				Fitness:    fitness,
				Drag:       res.Drag,
				Divergence: res.Divergence,
				UMax:       raw[0],
				Viscosity:  base.Solver.Viscosity,
			}
			if len(raw) > 1 {
				rec.Viscosity = raw[1]
			}
			if err := writeRecord(logFile, rec, evalCount == 1); err != nil {
				slog.Error("failed to write log row", "error", err)
			}

			attrs := append([]any{"eval", evalCount, "max_evals", *maxEvals}, params.LogAttrs(raw)...)
			slog.Info("evaluation", append(attrs,
				"drag", res.Drag,
				"fitness", fitness,
				"elapsed", time.Since(startTime).Round(time.Second).String(),
			)...)
			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-8,
			Iterations: 20,
		},
	}
	method := &optimize.NelderMead{}

	slog.Info("starting calibration",
		"target", *target,
		"dim", params.Dim(),
		"steps", *steps,
		"grid", fmt.Sprintf("%dx%d", base.Grid.Width, base.Grid.Height),
	)

	result, err := optimize.Minimize(problem, params.Normalize(params.DefaultVector()), settings, method)
	if err != nil {
		slog.Warn("optimization ended", "error", err)
	}
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		slog.Error("no evaluation completed")
		os.Exit(1)
	}

	// Best values go onto the full-size config the user passed in.
	bestCfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to reload config", "error", err)
		os.Exit(1)
	}
	params.ApplyToConfig(bestCfg, bestParams)

	outPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(outPath); err != nil {
		slog.Error("failed to write best config", "error", err)
		os.Exit(1)
	}
	slog.Info("calibration complete",
		"evals", evalCount,
		"best_fitness", bestFitness,
		"u_max", bestCfg.Inlet.MaxVelocity,
		"viscosity", bestCfg.Solver.Viscosity,
		"config", outPath,
		"elapsed", time.Since(startTime).Round(time.Second).String(),
	)
}

// downscale shrinks the grid and obstacle by factor, keeping the geometry ratios.
func downscale(cfg *config.Config, factor int) {
	if factor <= 1 {
		return
	}
	f := float64(factor)
	cfg.Grid.Width = max(cfg.Grid.Width/factor, 3)
	cfg.Grid.Height = max(cfg.Grid.Height/factor, 3)
	cfg.Obstacle.CenterRow /= f
	cfg.Obstacle.CenterCol /= f
	cfg.Obstacle.Radius /= f
	cfg.ComputeDerived()
}

func writeRecord(f *os.File, rec EvalRecord, header bool) error {
	records := []EvalRecord{rec}
	if header {
		return gocsv.Marshal(records, f)
	}
	return gocsv.MarshalWithoutHeaders(records, f)
}
