package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/channelflow/camera"
	"github.com/pthm-cable/channelflow/tracers"
)

var tracerColor = rl.Color{R: 240, G: 240, B: 255, A: 200}

// DrawTracers draws each tracer as a short streak along its velocity.
func DrawTracers(sys *tracers.System, cam *camera.Camera, dt float32) {
	// Streak length: the distance covered in a few steps.
	const streakSteps = 4

	rl.BeginBlendMode(rl.BlendAdditive)
	sys.Each(func(pos tracers.Position, vel tracers.Velocity) {
		// +0.5 moves from node to cell centre in screen space
		x, y := cam.CellToScreen(pos.X+0.5, pos.Y+0.5)
		tx, ty := cam.CellToScreen(
			pos.X+0.5-vel.X*dt*streakSteps,
			pos.Y+0.5-vel.Y*dt*streakSteps,
		)
		rl.DrawLineEx(rl.Vector2{X: tx, Y: ty}, rl.Vector2{X: x, Y: y}, 1.5, tracerColor)
	})
	rl.EndBlendMode()
}
