package fluid

import (
	"math"

	"github.com/ojrac/opensimplex-go"
)

// ObstacleShape selects the immersed body geometry.
type ObstacleShape uint8

const (
	ShapeNone ObstacleShape = iota
	ShapeCircle
)

// Obstacle describes the immersed body. Cells whose centre lies strictly
// within Radius of (CenterRow, CenterCol) are solid.
type Obstacle struct {
	Shape     ObstacleShape
	CenterRow float32
	CenterCol float32
	Radius    float32
}

// Contains reports whether cell (row, col) is inside the obstacle.
func (o Obstacle) Contains(row, col int) bool {
	if o.Shape != ShapeCircle {
		return false
	}
	dy := float32(row) - o.CenterRow
	dx := float32(col) - o.CenterCol
	return float32(math.Sqrt(float64(dx*dx+dy*dy))) < o.Radius
}

// Diameter returns the reference length used for the drag coefficient.
func (o Obstacle) Diameter() float32 {
	if o.Shape != ShapeCircle {
		return 0
	}
	return 2 * o.Radius
}

// Perturbation adds deterministic OpenSimplex noise to the initial
// interior velocity. Amplitude 0 disables it.
type Perturbation struct {
	Amplitude float32
	Scale     float32
	Seed      int64
}

// NewChannel builds the reference initial condition: every cell carries the
// inlet profile for its row, the obstacle mask is stamped once and pressure
// starts at zero.
func NewChannel(width, height int, p Params, obs Obstacle, pert Perturbation) *Grid {
	g := NewGrid(width, height, obs.Contains)

	var noise opensimplex.Noise32
	if pert.Amplitude != 0 {
		noise = opensimplex.New32(pert.Seed)
	}

	for row := 0; row < height; row++ {
		inflow := p.InletVelocity(row, height)
		for col := 0; col < width; col++ {
			i := g.Index(row, col)
			if g.obstacle[i] {
				continue
			}
			v := inflow
			if noise != nil && col > 0 && row > 0 && row < height-1 && col < width-1 {
				x := float32(col) * pert.Scale
				y := float32(row) * pert.Scale
				v.X += pert.Amplitude * noise.Eval2(x, y)
				v.Y += pert.Amplitude * noise.Eval2(x+97.3, y+41.9)
			}
			g.velocity[i] = v
		}
	}
	return g
}
