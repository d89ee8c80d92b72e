package fluid

// Solver advances a Grid with a fixed set of Params. It holds no field
// state of its own beyond the worker pool, so one Solver may drive several
// grids sequentially.
type Solver struct {
	params Params
	pool   *workerPool
}

// NewSolver creates a solver. Call Close to release the worker goroutines.
func NewSolver(p Params) *Solver {
	return &Solver{
		params: p,
		pool:   newWorkerPool(p.Workers),
	}
}

// Params returns the solver parameters.
func (s *Solver) Params() Params { return s.params }

// SetIterations changes the Jacobi sweep budget used by Step.
func (s *Solver) SetIterations(n int) {
	if n < 0 {
		n = 0
	}
	s.params.Iterations = n
}

// Step advances g by one generation: relax the pressure, compute every
// cell's next velocity into the spare buffer, then swap it in.
func (s *Solver) Step(g *Grid) {
	s.Relax(g, s.params.Iterations)
	s.UpdateVelocity(g)
}

// UpdateVelocity runs Advance over every cell against the current pressure
// and swaps the result in. Step calls it after Relax.
func (s *Solver) UpdateVelocity(g *Grid) {
	next := g.nextVelocity
	s.pool.forRows(0, g.height, func(row int) {
		for col := 0; col < g.width; col++ {
			next[g.Index(row, col)] = s.Advance(g, row, col)
		}
	})
	g.velocity, g.nextVelocity = next, g.velocity
}

// Close stops the worker pool.
func (s *Solver) Close() {
	s.pool.stop()
}
