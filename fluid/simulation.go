package fluid

// Simulation is the host-facing driver: it exclusively owns a Grid and
// advances it one generation per Step. Views and diagnostics must only be
// read between steps.
type Simulation struct {
	grid   *Grid
	solver *Solver
	tick   int

	glyphThreshold float32
}

// NewSimulation takes ownership of g.
func NewSimulation(g *Grid, s *Solver) *Simulation {
	return &Simulation{grid: g, solver: s, glyphThreshold: DefaultGlyphThreshold}
}

// Step advances the simulation by one generation.
func (s *Simulation) Step() {
	s.solver.Step(s.grid)
	s.tick++
}

// StepPhases is Step with a callback fired before each phase ("pressure",
// then "velocity"), so callers can time them.
func (s *Simulation) StepPhases(onPhase func(phase string)) {
	onPhase(PhasePressure)
	s.solver.Relax(s.grid, s.solver.params.Iterations)
	onPhase(PhaseVelocity)
	s.solver.UpdateVelocity(s.grid)
	s.tick++
}

// Phase names reported by StepPhases.
const (
	PhasePressure = "pressure"
	PhaseVelocity = "velocity"
)

// Tick returns the number of completed steps.
func (s *Simulation) Tick() int { return s.tick }

// Width returns the grid width.
func (s *Simulation) Width() int { return s.grid.width }

// Height returns the grid height.
func (s *Simulation) Height() int { return s.grid.height }

// Velocity returns a read-only view of the velocity field.
func (s *Simulation) Velocity() []Vec { return s.grid.Velocity() }

// Pressure returns a read-only view of the pressure field.
func (s *Simulation) Pressure() []float32 { return s.grid.Pressure() }

// Obstacle returns a read-only view of the obstacle mask.
func (s *Simulation) Obstacle() []bool { return s.grid.Obstacle() }

// MaxDivergence is recomputed on every call.
func (s *Simulation) MaxDivergence() float32 {
	return MaxDivergence(s.grid, s.solver.params)
}

// DragCoefficient is recomputed on every call.
func (s *Simulation) DragCoefficient() float32 {
	return DragCoefficient(s.grid, s.solver.params)
}

// Render returns the textual glyph dump at the simulation's glyph threshold.
func (s *Simulation) Render() string { return s.grid.Render(s.glyphThreshold) }

// SetGlyphThreshold sets the speed above which Render draws GlyphFast.
func (s *Simulation) SetGlyphThreshold(threshold float32) {
	s.glyphThreshold = threshold
}

// Grid exposes the underlying state for read-only consumers.
func (s *Simulation) Grid() *Grid { return s.grid }

// Solver returns the solver driving this simulation.
func (s *Simulation) Solver() *Solver { return s.solver }

// Close releases solver resources.
func (s *Simulation) Close() { s.solver.Close() }
