package fluid

// Relax performs iterations Jacobi sweeps of the pressure Poisson equation
// ∇²p = (ρ/Δt)·∇·u over the interior, then applies the pressure boundary
// conditions once. Each sweep reads only the previous sweep's field.
// Grids without interior cells are left untouched.
func (s *Solver) Relax(g *Grid, iterations int) {
	if !g.hasInterior() {
		return
	}

	cur := g.pressure
	next := g.nextPressure
	// Both buffers must agree on the ring, which the sweeps never write.
	copy(next, cur)

	for it := 0; it < iterations; it++ {
		src, dst := cur, next
		s.pool.forRows(1, g.height-1, func(row int) {
			for col := 1; col < g.width-1; col++ {
				dst[g.Index(row, col)] = s.jacobiCell(g, src, row, col)
			}
		})
		cur, next = next, cur
	}

	s.applyPressureBoundary(g, cur)
	g.pressure, g.nextPressure = cur, next
}

// jacobiCell returns the relaxed pressure for one interior cell from the
// pressure field src and the current velocity.
func (s *Solver) jacobiCell(g *Grid, src []float32, row, col int) float32 {
	idx := g.Index(row, col)
	if g.obstacle[idx] {
		return 0
	}

	dx, dy := s.params.DX, s.params.DY
	rho, dt := s.params.Rho, s.params.DT

	uRight := g.velocity[g.Index(row, col+1)]
	uLeft := g.velocity[g.Index(row, col-1)]
	uUp := g.velocity[g.Index(row+1, col)]
	uDown := g.velocity[g.Index(row-1, col)]

	duDx := (uRight.X - uLeft.X) / (2 * dx)
	dvDy := (uUp.Y - uDown.Y) / (2 * dy)
	div := duDx + dvDy

	pRight := src[g.Index(row, col+1)]
	pLeft := src[g.Index(row, col-1)]
	pUp := src[g.Index(row+1, col)]
	pDown := src[g.Index(row-1, col)]

	return ((pRight+pLeft)*dy*dy + (pUp+pDown)*dx*dx - rho*dx*dx*dy*dy*div/dt) /
		(2 * (dx*dx + dy*dy))
}

// applyPressureBoundary fixes the inlet at zero pressure and copies the
// outlet, top and bottom from their interior neighbours. Rows are applied
// after columns, so corners take the row rule.
func (s *Solver) applyPressureBoundary(g *Grid, p []float32) {
	w, h := g.width, g.height

	for row := 0; row < h; row++ {
		p[g.Index(row, 0)] = 0
		p[g.Index(row, w-1)] = p[g.Index(row, w-2)]
	}
	for col := 0; col < w; col++ {
		p[g.Index(0, col)] = p[g.Index(1, col)]
		p[g.Index(h-1, col)] = p[g.Index(h-2, col)]
	}

	// Solid cells on the ring may have picked up a copied value.
	for i, solid := range g.obstacle {
		if solid {
			p[i] = 0
		}
	}
}
