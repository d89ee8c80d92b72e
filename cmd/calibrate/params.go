package main

import "github.com/pthm-cable/channelflow/config"

// ParamDef defines a single tunable parameter.
type ParamDef struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Starting value
	apply   func(cfg *config.Config, v float64)
}

// ParamVector holds the parameters being calibrated.
type ParamVector struct {
	Defs []ParamDef
}

// NewParamVector returns the inlet velocity, plus the viscosity when
// fitViscosity is set, starting from base.
func NewParamVector(base *config.Config, fitViscosity bool) *ParamVector {
	pv := &ParamVector{Defs: []ParamDef{{
		Name:    "u_max",
		Path:    "inlet.max_velocity",
		Min:     1,
		Max:     100,
		Default: base.Inlet.MaxVelocity,
		apply:   func(cfg *config.Config, v float64) { cfg.Inlet.MaxVelocity = v },
	}}}
	if fitViscosity {
		pv.Defs = append(pv.Defs, ParamDef{
			Name:    "viscosity",
			Path:    "solver.viscosity",
			Min:     0.01,
			Max:     2,
			Default: base.Solver.Viscosity,
			apply:   func(cfg *config.Config, v float64) { cfg.Solver.Viscosity = v },
		})
	}
	return pv
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Defs)
}

// DefaultVector returns the starting values.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Defs))
	for i, def := range pv.Defs {
		v[i] = def.Default
	}
	return v
}

// Normalize converts raw values to the [0,1] search space.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	out := make([]float64, len(pv.Defs))
	for i, def := range pv.Defs {
		out[i] = (raw[i] - def.Min) / (def.Max - def.Min)
	}
	return out
}

// Denormalize converts search-space values back to raw values.
func (pv *ParamVector) Denormalize(x []float64) []float64 {
	out := make([]float64, len(pv.Defs))
	for i, def := range pv.Defs {
		out[i] = def.Min + x[i]*(def.Max-def.Min)
	}
	return out
}

// Clamp restricts raw values to their bounds.
func (pv *ParamVector) Clamp(raw []float64) []float64 {
	out := make([]float64, len(pv.Defs))
	for i, def := range pv.Defs {
		out[i] = min(max(raw[i], def.Min), def.Max)
	}
	return out
}

// LogAttrs pairs each config path with its value for slog.
func (pv *ParamVector) LogAttrs(raw []float64) []any {
	attrs := make([]any, 0, 2*len(pv.Defs))
	for i, def := range pv.Defs {
		attrs = append(attrs, def.Path, raw[i])
	}
	return attrs
}

// ApplyToConfig writes clamped values into cfg and refreshes its derived fields.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, raw []float64) {
	for i, v := range pv.Clamp(raw) {
		pv.Defs[i].apply(cfg, v)
	}
	cfg.ComputeDerived()
}
