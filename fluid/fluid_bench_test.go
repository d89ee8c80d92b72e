package fluid

import "testing"

func newBenchSimulation(workers int) *Simulation {
	p := DefaultParams()
	p.Workers = workers
	obs := Obstacle{Shape: ShapeCircle, CenterRow: 148, CenterCol: 128, Radius: 20}
	g := NewChannel(256, 256, p, obs, Perturbation{})
	return NewSimulation(g, NewSolver(p))
}

// Reference configuration: 256x256, 50 sweeps per step.
func BenchmarkStepSerial(b *testing.B) {
	sim := newBenchSimulation(1)
	defer sim.Close()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sim.Step()
	}
}

func BenchmarkStepParallel(b *testing.B) {
	sim := newBenchSimulation(0)
	defer sim.Close()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sim.Step()
	}
}

func BenchmarkRelaxSweep(b *testing.B) {
	sim := newBenchSimulation(0)
	defer sim.Close()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sim.solver.Relax(sim.grid, 1)
	}
}

func BenchmarkDiagnostics(b *testing.B) {
	sim := newBenchSimulation(1)
	defer sim.Close()
	sim.Step()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = sim.MaxDivergence()
		_ = sim.DragCoefficient()
	}
}
