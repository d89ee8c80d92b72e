package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds everything the top-left status block shows.
type HUDData struct {
	Title         string
	Tick          int
	SimTime       float64
	StepsPerFrame int
	FPS           int32
	Paused        bool
	Divergence    float32
	Drag          float32
	Tracers       int
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)
	rl.DrawText(
		fmt.Sprintf("Step: %d | t = %.2f s | %dx | FPS: %d", data.Tick, data.SimTime, data.StepsPerFrame, data.FPS),
		10, 35, 16, rl.LightGray,
	)
	div := fmt.Sprintf("max div: %.4g", data.Divergence)
	rl.DrawText(div, 10, 55, 16, h.renderer.Theme.DivergenceColor(data.Divergence))
	rl.DrawText(
		fmt.Sprintf("| C_d: %.4f | tracers: %d", data.Drag, data.Tracers),
		10+rl.MeasureText(div, 16)+6, 55, 16, rl.LightGray,
	)
	if data.Paused {
		rl.DrawText("PAUSED", 10, 75, 16, rl.Yellow)
	}
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// Probe is the state of the cell under the mouse.
type Probe struct {
	Row, Col int
	U, V     float32
	Pressure float32
	Obstacle bool
}

// ProbeLines formats a probe for display.
func ProbeLines(p Probe) []Line {
	lines := []Line{{"cell", fmt.Sprintf("(%d, %d)", p.Row, p.Col)}}
	if p.Obstacle {
		return append(lines, Line{"state", "solid"})
	}
	speed := math.Hypot(float64(p.U), float64(p.V))
	return append(lines,
		Line{"u", fmt.Sprintf("%.3f", p.U)},
		Line{"v", fmt.Sprintf("%.3f", p.V)},
		Line{"|u|", fmt.Sprintf("%.3f", speed)},
		Line{"p", fmt.Sprintf("%.3f", p.Pressure)},
	)
}

// ProbePanel shows the cell under the mouse.
type ProbePanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewProbePanel creates a new probe panel.
func NewProbePanel(x, y, width int32) *ProbePanel {
	return &ProbePanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition moves the panel.
func (p *ProbePanel) SetPosition(x, y int32) {
	p.x, p.y = x, y
}

// Draw renders the probe panel.
func (p *ProbePanel) Draw(probe Probe) {
	r := p.renderer
	lines := ProbeLines(probe)
	height := r.Theme.LineHeight*int32(len(lines)+1) + r.Theme.Padding*2 + 4
	r.DrawPanel(p.x, p.y, p.width, height)
	y := r.DrawSectionHeader(p.x+r.Theme.Padding, p.y+r.Theme.Padding, "Probe")
	r.DrawLines(p.x+r.Theme.Padding, y, lines)
}
