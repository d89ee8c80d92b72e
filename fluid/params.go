package fluid

// InletProfile selects the analytic velocity imposed on the inlet column.
type InletProfile uint8

const (
	// ProfileParabolic is fully-developed channel flow: U_max·4·(y/h)·(1-y/h).
	ProfileParabolic InletProfile = iota
	// ProfileUniform imposes U_max on every inlet row.
	ProfileUniform
)

// Params holds the constants of the explicit scheme.
// All arithmetic is single precision.
type Params struct {
	DT        float32 // time step
	DX, DY    float32 // grid spacing
	Rho       float32 // density
	Viscosity float32 // kinematic viscosity ν

	// Iterations is the number of Jacobi sweeps per step. There is no
	// convergence check; this is the cost/quality knob.
	Iterations int

	Inlet InletProfile
	UMax  float32 // inlet peak velocity, also the free-stream velocity for drag

	// ObstacleDiameter is the reference length for the drag coefficient.
	ObstacleDiameter float32

	// Workers caps the solver worker pool (0 = GOMAXPROCS, 1 = serial).
	Workers int
}

// DefaultParams returns the reference configuration: dx=dy=1, dt=0.01,
// ρ=1, ν=0.5, 50 sweeps, parabolic inflow with U_max=30 past a
// cylinder of diameter 40.
func DefaultParams() Params {
	return Params{
		DT:               0.01,
		DX:               1,
		DY:               1,
		Rho:              1,
		Viscosity:        0.5,
		Iterations:       50,
		Inlet:            ProfileParabolic,
		UMax:             30,
		ObstacleDiameter: 40,
	}
}

// InletVelocity returns the imposed inlet velocity for the given row.
func (p Params) InletVelocity(row, height int) Vec {
	if p.Inlet == ProfileUniform {
		return Vec{X: p.UMax}
	}
	y := float32(row)
	h := float32(height)
	yn := y / h
	return Vec{X: p.UMax * 4 * yn * (1 - yn)}
}
