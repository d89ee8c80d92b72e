package fluid

// Advance returns the next velocity at (row, col) computed from the current
// velocity and pressure fields. It never mutates the grid.
//
// Cell classes are checked in order: obstacle (no-slip), inlet (analytic
// profile), outer boundary (zero-gradient copy), interior (full update).
func (s *Solver) Advance(g *Grid, row, col int) Vec {
	if g.obstacle[g.Index(row, col)] {
		return Vec{}
	}

	if col == 0 {
		return s.params.InletVelocity(row, g.height)
	}

	if row == 0 || row == g.height-1 || col == g.width-1 {
		nRow := row
		if row == 0 {
			nRow = 1
		} else if row == g.height-1 {
			nRow = g.height - 2
		}
		nCol := col
		if col == g.width-1 {
			nCol = g.width - 2
		}
		nRow = clampInt(nRow, 0, g.height-1)
		nCol = clampInt(nCol, 0, g.width-1)
		return g.velocity[g.Index(nRow, nCol)]
	}

	return s.interiorStep(g, row, col)
}

// interiorStep integrates -convection + diffusion - ∇p/ρ with forward Euler.
func (s *Solver) interiorStep(g *Grid, row, col int) Vec {
	dt := s.params.DT
	dx, dy := s.params.DX, s.params.DY
	nu := s.params.Viscosity
	rho := s.params.Rho

	cur := g.velocity[g.Index(row, col)]
	u, v := cur.X, cur.Y

	uLeft := g.velocity[g.Index(row, col-1)]
	uRight := g.velocity[g.Index(row, col+1)]
	uDown := g.velocity[g.Index(row-1, col)]
	uUp := g.velocity[g.Index(row+1, col)]

	// Convection, first-order upwind on the sign of the transporting component.
	var duDx, dvDx float32
	if u > 0 {
		duDx = (u - uLeft.X) / dx
		dvDx = (v - uLeft.Y) / dx
	} else {
		duDx = (uRight.X - u) / dx
		dvDx = (uRight.Y - v) / dx
	}
	var duDy, dvDy float32
	if v > 0 {
		duDy = (u - uDown.X) / dy
		dvDy = (v - uDown.Y) / dy
	} else {
		duDy = (uUp.X - u) / dy
		dvDy = (uUp.Y - v) / dy
	}
	convU := u*duDx + v*duDy
	convV := u*dvDx + v*dvDy

	// Diffusion, five-point Laplacian.
	d2uDx2 := (uRight.X - 2*u + uLeft.X) / (dx * dx)
	d2uDy2 := (uUp.X - 2*u + uDown.X) / (dy * dy)
	diffU := nu * (d2uDx2 + d2uDy2)

	d2vDx2 := (uRight.Y - 2*v + uLeft.Y) / (dx * dx)
	d2vDy2 := (uUp.Y - 2*v + uDown.Y) / (dy * dy)
	diffV := nu * (d2vDx2 + d2vDy2)

	// Pressure gradient, central difference.
	pRight := g.pressure[g.Index(row, col+1)]
	pLeft := g.pressure[g.Index(row, col-1)]
	pUp := g.pressure[g.Index(row+1, col)]
	pDown := g.pressure[g.Index(row-1, col)]
	dpDx := (pRight - pLeft) / (2 * dx)
	dpDy := (pUp - pDown) / (2 * dy)

	return Vec{
		X: u + dt*(-convU+diffU-dpDx/rho),
		Y: v + dt*(-convV+diffV-dpDy/rho),
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
