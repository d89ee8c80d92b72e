package sim

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/channelflow/camera"
	"github.com/pthm-cable/channelflow/config"
	"github.com/pthm-cable/channelflow/renderer"
	"github.com/pthm-cable/channelflow/ui"
)

const (
	panelWidth = 220
	keyLegend  = "[Space] pause  [N] step  [F] field  [T] tracers  [S] snapshot  [,/.] sweeps  [wheel] zoom  [RMB] pan  [R] reset view"
)

// viewer holds the raylib-side state of a graphical run.
type viewer struct {
	cam      *camera.Camera
	field    *renderer.FieldRenderer
	hud      *ui.HUD
	controls *ui.ControlsPanel
	probe    *ui.ProbePanel

	hasProbe bool
	probeAt  ui.Probe
}

func newViewer(cfg *config.Config) *viewer {
	screenW := float32(cfg.Screen.Width)
	screenH := float32(cfg.Screen.Height)
	cam := camera.New(screenW-panelWidth, screenH, cfg.Grid.Width, cfg.Grid.Height)
	if cfg.Screen.CellSize > 0 {
		cam.SetZoom(float32(cfg.Screen.CellSize))
	}
	return &viewer{
		cam:      cam,
		hud:      ui.NewHUD(),
		controls: ui.NewControlsPanel(int32(screenW)-panelWidth, 10, panelWidth-10),
		probe:    ui.NewProbePanel(int32(screenW)-panelWidth, 0, panelWidth-10),
	}
}

func (v *viewer) unload() {
	if v.field != nil {
		v.field.Unload()
	}
}

// Update handles input and runs the steps for one frame.
func (r *Runner) Update() {
	r.handleInput()
	if r.paused {
		return
	}
	r.UpdateHeadless()
}

// handleInput processes keyboard and mouse input.
func (r *Runner) handleInput() {
	v := r.view

	if rl.IsKeyPressed(rl.KeySpace) {
		r.paused = !r.paused
	}
	if rl.IsKeyPressed(rl.KeyN) && r.paused {
		r.step()
	}
	if rl.IsKeyPressed(rl.KeyF) {
		r.field = r.field.Next()
	}
	if rl.IsKeyPressed(rl.KeyT) {
		r.showTracers = !r.showTracers
	}
	if rl.IsKeyPressed(rl.KeyS) {
		r.saveSnapshotLogged()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		v.cam.Reset()
	}

	// Jacobi sweeps with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		r.nudgeIterations(-1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		r.nudgeIterations(1)
	}

	mouse := rl.GetMousePosition()
	if v.controls.Contains(mouse.X, mouse.Y) {
		v.hasProbe = false
		return
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		factor := float32(1.1)
		if wheel < 0 {
			factor = 1 / factor
		}
		v.cam.ZoomAt(factor, mouse.X, mouse.Y)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		v.cam.Pan(-d.X, -d.Y)
	}

	row, col, ok := v.cam.ScreenToCell(mouse.X, mouse.Y)
	v.hasProbe = ok
	if ok {
		g := r.sim.Grid()
		vel := g.VelocityAt(row, col)
		v.probeAt = ui.Probe{
			Row:      row,
			Col:      col,
			U:        vel.X,
			V:        vel.Y,
			Pressure: g.PressureAt(row, col),
			Obstacle: g.IsObstacle(row, col),
		}
	}
}

// nudgeIterations shifts the sweep budget by delta within [0, ui.MaxIterations].
func (r *Runner) nudgeIterations(delta int) {
	n := r.sim.Solver().Params().Iterations + delta
	r.SetIterations(min(max(n, 0), ui.MaxIterations))
}

func (r *Runner) saveSnapshotLogged() {
	if _, err := r.SaveSnapshot(); err != nil {
		slog.Error("failed to save snapshot", "error", err)
	}
}

// Draw renders one frame.
func (r *Runner) Draw() {
	v := r.view
	r.perf.RecordFrame()

	if v.field == nil {
		v.field = renderer.NewFieldRenderer(r.cmap)
	}
	v.field.Update(r.sim.Grid(), r.field)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	v.field.Draw(v.cam)
	if r.showTracers {
		renderer.DrawTracers(r.tracers, v.cam, r.sim.Solver().Params().DT)
	}

	p := r.sim.Solver().Params()
	v.hud.Draw(ui.HUDData{
		Title:         "Channel flow",
		Tick:          r.sim.Tick(),
		SimTime:       float64(r.sim.Tick()) * float64(p.DT),
		StepsPerFrame: r.stepsPerUpdate,
		FPS:           rl.GetFPS(),
		Paused:        r.paused,
		Divergence:    r.sim.MaxDivergence(),
		Drag:          r.sim.DragCoefficient(),
		Tracers:       r.tracers.Count(),
	})
	v.hud.DrawControls(int32(rl.GetScreenHeight()), keyLegend)

	state := ui.ControlsState{
		Paused:        r.paused,
		Iterations:    p.Iterations,
		StepsPerFrame: r.stepsPerUpdate,
		FieldName:     r.field.String(),
		ShowTracers:   r.showTracers,
	}
	actions := v.controls.Draw(&state)
	r.applyControls(state, actions)

	if v.hasProbe {
		v.probe.SetPosition(v.controls.X(), v.controls.Y()+v.controls.Height()+10)
		v.probe.Draw(v.probeAt)
	}

	rl.EndDrawing()
}

// applyControls copies panel edits back into the runner.
func (r *Runner) applyControls(s ui.ControlsState, a ui.ControlsActions) {
	r.paused = s.Paused
	r.showTracers = s.ShowTracers
	r.stepsPerUpdate = max(s.StepsPerFrame, 1)
	if s.Iterations != r.sim.Solver().Params().Iterations {
		r.SetIterations(s.Iterations)
	}
	if a.StepOnce {
		r.step()
	}
	if a.CycleField {
		r.field = r.field.Next()
	}
	if a.SaveSnapshot {
		r.saveSnapshotLogged()
	}
}
