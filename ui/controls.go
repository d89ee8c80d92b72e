package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Limits of the solver controls.
const (
	MaxIterations    = 200
	MaxStepsPerFrame = 20
)

// ControlsState is the viewer state the panel edits in place.
type ControlsState struct {
	Paused        bool
	Iterations    int
	StepsPerFrame int
	FieldName     string
	ShowTracers   bool
}

// ControlsActions reports one-shot buttons pressed this frame.
type ControlsActions struct {
	StepOnce     bool
	CycleField   bool
	SaveSnapshot bool
}

// ControlsPanel renders the right-side raygui controls.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition moves the panel.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x, c.y = x, y
}

// X returns the panel's left edge.
func (c *ControlsPanel) X() int32 { return c.x }

// Y returns the panel's top edge.
func (c *ControlsPanel) Y() int32 { return c.y }

// Height is the fixed panel height.
func (c *ControlsPanel) Height() int32 {
	return c.renderer.Theme.LineHeight*14 + c.renderer.Theme.Padding*2
}

// Contains reports whether a screen point is over the panel.
func (c *ControlsPanel) Contains(px, py float32) bool {
	return px >= float32(c.x) && px < float32(c.x+c.width) &&
		py >= float32(c.y) && py < float32(c.y+c.Height())
}

// Draw renders the panel, applies slider and toggle edits to s and returns
// the buttons pressed this frame.
func (c *ControlsPanel) Draw(s *ControlsState) ControlsActions {
	var a ControlsActions
	r := c.renderer
	pad := r.Theme.Padding
	lh := float32(r.Theme.LineHeight)

	r.DrawPanel(c.x, c.y, c.width, c.Height())

	x := float32(c.x + pad)
	y := float32(r.DrawSectionHeader(c.x+pad, c.y+pad, "Solver"))
	w := float32(c.width - pad*2)
	half := (w - 6) / 2

	label := "Pause"
	if s.Paused {
		label = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: lh + 4}, label) {
		s.Paused = !s.Paused
	}
	if gui.Button(rl.Rectangle{X: x + half + 6, Y: y, Width: half, Height: lh + 4}, "Step") {
		a.StepOnce = true
	}
	y += lh + 12

	rl.DrawText(fmt.Sprintf("Jacobi sweeps: %d", s.Iterations), int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += lh
	s.Iterations = int(gui.SliderBar(
		rl.Rectangle{X: x + 20, Y: y, Width: w - 50, Height: lh},
		"0", fmt.Sprint(MaxIterations),
		float32(s.Iterations), 0, MaxIterations,
	))
	y += lh + 8

	rl.DrawText(fmt.Sprintf("Steps per frame: %d", s.StepsPerFrame), int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += lh
	s.StepsPerFrame = int(gui.SliderBar(
		rl.Rectangle{X: x + 20, Y: y, Width: w - 50, Height: lh},
		"1", fmt.Sprint(MaxStepsPerFrame),
		float32(s.StepsPerFrame), 1, MaxStepsPerFrame,
	))
	y += lh + 12

	y = float32(r.DrawSectionHeader(int32(x), int32(y), "View"))
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: lh + 4}, "Field: "+s.FieldName) {
		a.CycleField = true
	}
	y += lh + 10
	s.ShowTracers = gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: lh, Height: lh}, "Tracers", s.ShowTracers)
	y += lh + 10
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: lh + 4}, "Save PNG") {
		a.SaveSnapshot = true
	}

	return a
}
