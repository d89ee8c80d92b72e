package fluid

import (
	"math"

	"gonum.org/v1/gonum/blas/blas32"
)

// MaxDivergence returns the largest |du/dx + dv/dy| over the interior using
// central differences. It is 0 for grids without interior cells.
func MaxDivergence(g *Grid, p Params) float32 {
	var maxDiv float32
	for row := 1; row < g.height-1; row++ {
		for col := 1; col < g.width-1; col++ {
			uRight := g.velocity[g.Index(row, col+1)]
			uLeft := g.velocity[g.Index(row, col-1)]
			uUp := g.velocity[g.Index(row+1, col)]
			uDown := g.velocity[g.Index(row-1, col)]

			duDx := (uRight.X - uLeft.X) / (2 * p.DX)
			dvDy := (uUp.Y - uDown.Y) / (2 * p.DY)
			div := float32(math.Abs(float64(duDx + dvDy)))
			if div > maxDiv {
				maxDiv = div
			}
		}
	}
	return maxDiv
}

// DragCoefficient approximates C_d from the pressure on fluid cells touching
// the obstacle: a cell with the obstacle on its left adds its pressure, a
// cell with the obstacle on its right subtracts it. The sum is normalised by
// 0.5·ρ·U∞²·D with U∞ = UMax and D = ObstacleDiameter; a non-positive
// denominator yields 0.
func DragCoefficient(g *Grid, p Params) float32 {
	var force float32
	for row := 1; row < g.height-1; row++ {
		for col := 1; col < g.width-1; col++ {
			idx := g.Index(row, col)
			if g.obstacle[idx] {
				continue
			}
			pr := g.pressure[idx]
			if g.obstacle[g.Index(row, col-1)] {
				force += pr
			}
			if g.obstacle[g.Index(row, col+1)] {
				force -= pr
			}
		}
	}

	dynamic := 0.5 * p.Rho * p.UMax * p.UMax * p.ObstacleDiameter
	if dynamic > 0 {
		return force / dynamic
	}
	return 0
}

// KineticEnergy returns 0.5·Σ|u|² over fluid cells.
func KineticEnergy(g *Grid) float32 {
	comps := make([]float32, 0, 2*len(g.velocity))
	for i, v := range g.velocity {
		if g.obstacle[i] {
			continue
		}
		comps = append(comps, v.X, v.Y)
	}
	if len(comps) == 0 {
		return 0
	}
	x := blas32.Vector{N: len(comps), Inc: 1, Data: comps}
	return 0.5 * blas32.Dot(x, x)
}

// PressureRMS returns the root-mean-square pressure over the whole grid.
func PressureRMS(g *Grid) float32 {
	n := len(g.pressure)
	if n == 0 {
		return 0
	}
	x := blas32.Vector{N: n, Inc: 1, Data: g.pressure}
	return blas32.Nrm2(x) / float32(math.Sqrt(float64(n)))
}

// Speeds returns |u| for every fluid cell, in row-major order.
func Speeds(g *Grid) []float64 {
	out := make([]float64, 0, len(g.velocity))
	for i, v := range g.velocity {
		if g.obstacle[i] {
			continue
		}
		out = append(out, float64(v.Len()))
	}
	return out
}
