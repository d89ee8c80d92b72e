package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds the flow diagnostics sampled at the end of a window.
type WindowStats struct {
	WindowStartTick int     `csv:"-"`
	WindowEndTick   int     `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Solver health
	MaxDivergence   float64 `csv:"max_divergence"`
	DragCoefficient float64 `csv:"drag_coefficient"`
	KineticEnergy   float64 `csv:"kinetic_energy"`
	PressureRMS     float64 `csv:"pressure_rms"`

	// Speed distribution over fluid cells
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
	SpeedMax  float64 `csv:"speed_max"`

	// Tracers
	TracersActive  int `csv:"tracers_active"`
	TracersSpawned int `csv:"tracers_spawned"`
	TracersExited  int `csv:"tracers_exited"`
	TracersStuck   int `csv:"tracers_stuck"`
	TracersExpired int `csv:"tracers_expired"`
}

// Percentile returns the p-th empirical quantile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// SpeedStats holds summary statistics of a speed sample.
type SpeedStats struct {
	Mean, Std     float64
	P10, P50, P90 float64
	Max           float64
}

// ComputeSpeedStats calculates mean, standard deviation and percentiles.
// values is sorted in place.
func ComputeSpeedStats(values []float64) SpeedStats {
	if len(values) == 0 {
		return SpeedStats{}
	}

	sort.Float64s(values)
	mean, std := stat.PopMeanStdDev(values, nil)

	return SpeedStats{
		Mean: mean,
		Std:  std,
		P10:  Percentile(values, 0.10),
		P50:  Percentile(values, 0.50),
		P90:  Percentile(values, 0.90),
		Max:  values[len(values)-1],
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartTick),
		slog.Int("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Float64("max_divergence", s.MaxDivergence),
		slog.Float64("drag_coefficient", s.DragCoefficient),
		slog.Float64("kinetic_energy", s.KineticEnergy),
		slog.Float64("pressure_rms", s.PressureRMS),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("speed_max", s.SpeedMax),
		slog.Int("tracers_active", s.TracersActive),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("diagnostics",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"max_divergence", s.MaxDivergence,
		"drag_coefficient", s.DragCoefficient,
		"kinetic_energy", s.KineticEnergy,
		"pressure_rms", s.PressureRMS,
		"speed_mean", s.SpeedMean,
		"speed_std", s.SpeedStd,
		"speed_p10", s.SpeedP10,
		"speed_p50", s.SpeedP50,
		"speed_p90", s.SpeedP90,
		"speed_max", s.SpeedMax,
		"tracers_active", s.TracersActive,
		"tracers_spawned", s.TracersSpawned,
		"tracers_exited", s.TracersExited,
		"tracers_stuck", s.TracersStuck,
		"tracers_expired", s.TracersExpired,
	)
}
