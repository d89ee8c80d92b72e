package main

import (
	"math"

	"github.com/pthm-cable/channelflow/config"
	"github.com/pthm-cable/channelflow/fluid"
)

// penalty is returned for runs that blow up.
const penalty = 1e6

// Result holds the outcome of one evaluation.
type Result struct {
	Drag       float64
	Divergence float64
	Fitness    float64
}

// FitnessEvaluator runs the solver for a fixed number of steps and scores
// the final drag coefficient against a target.
type FitnessEvaluator struct {
	params *ParamVector
	base   *config.Config
	steps  int
	target float64
	last   Result
}

// NewFitnessEvaluator creates an evaluator.
func NewFitnessEvaluator(params *ParamVector, base *config.Config, steps int, target float64) *FitnessEvaluator {
	return &FitnessEvaluator{params: params, base: base, steps: steps, target: target}
}

// Evaluate returns (C_d - target)^2 for the raw parameter values. Lower is better.
func (e *FitnessEvaluator) Evaluate(raw []float64) float64 {
	cfg := *e.base
	e.params.ApplyToConfig(&cfg, raw)

	s := fluid.NewSimulation(cfg.NewGrid(), fluid.NewSolver(cfg.Derived.Params))
	defer s.Close()
	for i := 0; i < e.steps; i++ {
		s.Step()
	}

	drag := float64(s.DragCoefficient())
	div := float64(s.MaxDivergence())
	fitness := (drag - e.target) * (drag - e.target)
	if math.IsNaN(fitness) || math.IsInf(fitness, 0) {
		fitness = penalty
	}

	e.last = Result{Drag: drag, Divergence: div, Fitness: fitness}
	return fitness
}

// Last returns the most recent evaluation.
func (e *FitnessEvaluator) Last() Result {
	return e.last
}
