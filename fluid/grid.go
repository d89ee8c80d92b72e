// Package fluid implements a fixed-size 2D channel-flow solver: Jacobi
// pressure relaxation, upwind convection, central-difference diffusion and
// forward Euler integration on a uniform Cartesian grid.
package fluid

import "fmt"

// Grid is the authoritative simulation state. Velocity, pressure and the
// obstacle mask are parallel row-major arrays of width*height elements.
type Grid struct {
	width, height int

	velocity []Vec
	pressure []float32
	obstacle []bool // fixed at construction

	// Double buffers for the pressure sweeps and the velocity pass.
	nextVelocity []Vec
	nextPressure []float32
}

// NewGrid creates a grid with zero velocity and pressure. solid marks
// obstacle cells and is evaluated once per cell; nil means no obstacles.
func NewGrid(width, height int, solid func(row, col int) bool) *Grid {
	if width < 1 || height < 1 {
		panic(fmt.Sprintf("fluid: invalid grid size %dx%d", width, height))
	}
	n := width * height
	g := &Grid{
		width:        width,
		height:       height,
		velocity:     make([]Vec, n),
		pressure:     make([]float32, n),
		obstacle:     make([]bool, n),
		nextVelocity: make([]Vec, n),
		nextPressure: make([]float32, n),
	}
	if solid != nil {
		for row := 0; row < height; row++ {
			for col := 0; col < width; col++ {
				g.obstacle[g.Index(row, col)] = solid(row, col)
			}
		}
	}
	return g
}

// Index maps (row, col) to the flat array offset.
func (g *Grid) Index(row, col int) int {
	return row*g.width + col
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Len returns width*height.
func (g *Grid) Len() int { return len(g.velocity) }

// Velocity returns the current velocity field. The slice is owned by the
// grid and must be treated as read-only; it is only valid until the next step.
func (g *Grid) Velocity() []Vec { return g.velocity }

// Pressure returns the current pressure field (read-only, valid until the next step).
func (g *Grid) Pressure() []float32 { return g.pressure }

// Obstacle returns the obstacle mask (read-only).
func (g *Grid) Obstacle() []bool { return g.obstacle }

// VelocityAt returns the velocity at (row, col).
func (g *Grid) VelocityAt(row, col int) Vec {
	g.checkBounds(row, col)
	return g.velocity[g.Index(row, col)]
}

// PressureAt returns the pressure at (row, col).
func (g *Grid) PressureAt(row, col int) float32 {
	g.checkBounds(row, col)
	return g.pressure[g.Index(row, col)]
}

// IsObstacle reports whether (row, col) is solid.
func (g *Grid) IsObstacle(row, col int) bool {
	g.checkBounds(row, col)
	return g.obstacle[g.Index(row, col)]
}

// SetVelocity sets the initial velocity at (row, col). It is meant for
// building initial conditions before the first step.
func (g *Grid) SetVelocity(row, col int, v Vec) {
	g.checkBounds(row, col)
	g.velocity[g.Index(row, col)] = v
}

// ObstacleCount returns the number of solid cells.
func (g *Grid) ObstacleCount() int {
	n := 0
	for _, s := range g.obstacle {
		if s {
			n++
		}
	}
	return n
}

// hasInterior reports whether the grid has cells off the outer ring.
func (g *Grid) hasInterior() bool {
	return g.width >= 3 && g.height >= 3
}

func (g *Grid) checkBounds(row, col int) {
	if row < 0 || row >= g.height {
		panic(fmt.Sprintf("invalid row: %d", row))
	}
	if col < 0 || col >= g.width {
		panic(fmt.Sprintf("invalid column: %d", col))
	}
}
