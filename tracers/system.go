package tracers

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/channelflow/fluid"
)

// Options configures a System.
type Options struct {
	Max          int // cap on live tracers
	SpawnPerStep int
	MaxAge       int // steps; 0 disables expiry
	Seed         int64
}

// StepCounts reports the tracer events of one step.
type StepCounts struct {
	Spawned int
	Exited  int // left the domain
	Stuck   int // entered an obstacle cell
	Expired int
}

// System owns the tracer ECS world.
type System struct {
	world  *ecs.World
	mapper *ecs.Map3[Position, Velocity, Age]
	filter ecs.Filter3[Position, Velocity, Age]

	opts   Options
	rng    *rand.Rand
	active int

	inletRows []int
	toRemove  []ecs.Entity
}

// New creates an empty tracer system.
func New(opts Options) *System {
	world := ecs.NewWorld()
	return &System{
		world:  world,
		mapper: ecs.NewMap3[Position, Velocity, Age](world),
		filter: *ecs.NewFilter3[Position, Velocity, Age](world),
		opts:   opts,
		rng:    rand.New(rand.NewSource(opts.Seed)),
	}
}

// Count returns the number of live tracers.
func (s *System) Count() int { return s.active }

// Step spawns new tracers at the inlet, moves every tracer by the sampled
// velocity times p.DT, and removes those that left the domain, hit an
// obstacle or expired.
func (s *System) Step(g *fluid.Grid, p fluid.Params) StepCounts {
	var counts StepCounts
	counts.Spawned = s.spawn(g)

	dt, dx, dy := p.DT, p.DX, p.DY
	w, h := float32(g.Width()-1), float32(g.Height()-1)

	s.toRemove = s.toRemove[:0]
	query := s.filter.Query()
	for query.Next() {
		pos, vel, age := query.Get()

		v := Sample(g, pos.X, pos.Y)
		vel.X, vel.Y = v.X, v.Y
		pos.X += v.X * dt / dx
		pos.Y += v.Y * dt / dy
		age.Steps++

		switch {
		case !finite(pos.X) || !finite(pos.Y) ||
			pos.X < 0 || pos.X > w || pos.Y < 0 || pos.Y > h:
			counts.Exited++
		case g.IsObstacle(nearest(pos.Y), nearest(pos.X)):
			counts.Stuck++
		case s.opts.MaxAge > 0 && age.Steps >= s.opts.MaxAge:
			counts.Expired++
		default:
			continue
		}
		s.toRemove = append(s.toRemove, query.Entity())
	}

	// Remove after the query has been closed by running to completion.
	for _, e := range s.toRemove {
		s.mapper.Remove(e)
	}
	s.active -= len(s.toRemove)

	return counts
}

// spawn places up to SpawnPerStep tracers on random fluid rows of the inlet.
func (s *System) spawn(g *fluid.Grid) int {
	if s.inletRows == nil {
		s.inletRows = inletRows(g)
	}
	if len(s.inletRows) == 0 {
		return 0
	}

	n := min(s.opts.SpawnPerStep, s.opts.Max-s.active)
	if n <= 0 {
		return 0
	}
	for i := 0; i < n; i++ {
		row := s.inletRows[s.rng.Intn(len(s.inletRows))]
		pos := Position{X: 0, Y: float32(row) + s.rng.Float32() - 0.5}
		vel := Velocity{}
		age := Age{}
		s.mapper.NewEntity(&pos, &vel, &age)
	}
	s.active += n
	return n
}

// inletRows lists interior rows whose inlet cell is fluid.
func inletRows(g *fluid.Grid) []int {
	rows := []int{}
	for row := 1; row < g.Height()-1; row++ {
		if !g.IsObstacle(row, 0) {
			rows = append(rows, row)
		}
	}
	return rows
}

// Each calls fn for every live tracer.
func (s *System) Each(fn func(pos Position, vel Velocity)) {
	query := s.filter.Query()
	for query.Next() {
		pos, vel, _ := query.Get()
		fn(*pos, *vel)
	}
}

// Sample bilinearly interpolates the velocity field at (x, y) in cell
// units. Obstacle cells contribute their zero velocity. Coordinates are
// clamped into the grid; non-finite coordinates sample as zero.
func Sample(g *fluid.Grid, x, y float32) fluid.Vec {
	if !finite(x) || !finite(y) {
		return fluid.Vec{}
	}
	maxX := float32(g.Width() - 1)
	maxY := float32(g.Height() - 1)
	x = clamp(x, 0, maxX)
	y = clamp(y, 0, maxY)

	c0 := int(x)
	r0 := int(y)
	c1 := min(c0+1, g.Width()-1)
	r1 := min(r0+1, g.Height()-1)
	fx := x - float32(c0)
	fy := y - float32(r0)

	v00 := g.VelocityAt(r0, c0)
	v01 := g.VelocityAt(r0, c1)
	v10 := g.VelocityAt(r1, c0)
	v11 := g.VelocityAt(r1, c1)

	return fluid.Vec{
		X: lerp(lerp(v00.X, v01.X, fx), lerp(v10.X, v11.X, fx), fy),
		Y: lerp(lerp(v00.Y, v01.Y, fx), lerp(v10.Y, v11.Y, fx), fy),
	}
}

func lerp(a, b, t float32) float32 { return a + (b-a)*t }

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func nearest(v float32) int {
	return int(math.Floor(float64(v) + 0.5))
}
