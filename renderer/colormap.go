// Package renderer turns solver fields into images and draws them.
package renderer

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/mazznoer/colorgrad"

	"github.com/pthm-cable/channelflow/fluid"
)

// Field selects which scalar is visualised.
type Field int

const (
	FieldSpeed Field = iota
	FieldPressure
)

// ParseField maps a config name to a Field.
func ParseField(name string) (Field, error) {
	switch name {
	case "", "speed":
		return FieldSpeed, nil
	case "pressure":
		return FieldPressure, nil
	}
	return 0, fmt.Errorf("render: unknown field %q", name)
}

// String returns the config name of the field.
func (f Field) String() string {
	if f == FieldPressure {
		return "pressure"
	}
	return "speed"
}

// Next cycles through the fields.
func (f Field) Next() Field {
	if f == FieldSpeed {
		return FieldPressure
	}
	return FieldSpeed
}

// ObstacleColor fills obstacle cells.
var ObstacleColor = color.RGBA{R: 40, G: 40, B: 40, A: 255}

const lutSize = 256

// Colormap is a 256-entry lookup table sampled from a gradient.
type Colormap struct {
	name string
	lut  [lutSize]color.RGBA
}

// NewColormap builds a lookup table for a named gradient.
func NewColormap(name string) (*Colormap, error) {
	var grad colorgrad.Gradient
	switch name {
	case "", "viridis":
		grad = colorgrad.Viridis()
	case "turbo":
		grad = colorgrad.Turbo()
	case "inferno":
		grad = colorgrad.Inferno()
	default:
		return nil, fmt.Errorf("render: unknown colormap %q", name)
	}

	cm := &Colormap{name: name}
	for i, c := range grad.Colors(lutSize) {
		cm.lut[i] = color.RGBAModel.Convert(c).(color.RGBA)
		cm.lut[i].A = 255
	}
	return cm, nil
}

// Name returns the gradient name.
func (c *Colormap) Name() string { return c.name }

// At maps t in [0, 1] to a colour; values outside are clamped.
func (c *Colormap) At(t float32) color.RGBA {
	if !(t > 0) { // also catches NaN
		return c.lut[0]
	}
	if t >= 1 {
		return c.lut[lutSize-1]
	}
	return c.lut[int(t*(lutSize-1)+0.5)]
}

// FieldRange returns the bounds used to normalise a field. Speed maps
// [0, max]; pressure maps a symmetric [-m, m] around zero. Obstacle cells
// are ignored.
func FieldRange(g *fluid.Grid, f Field) (lo, hi float32) {
	obstacle := g.Obstacle()
	if f == FieldPressure {
		var m float32
		for i, p := range g.Pressure() {
			if !obstacle[i] {
				m = max(m, float32(math.Abs(float64(p))))
			}
		}
		return -m, m
	}
	for i, v := range g.Velocity() {
		if !obstacle[i] {
			hi = max(hi, v.Len())
		}
	}
	return 0, hi
}

// Paint writes one pixel per cell into dst, which must be at least
// grid-sized. Row 0 is the top image row.
func (c *Colormap) Paint(dst *image.RGBA, g *fluid.Grid, f Field) {
	lo, hi := FieldRange(g, f)
	scale := float32(0)
	if hi > lo {
		scale = 1 / (hi - lo)
	}

	velocity := g.Velocity()
	pressure := g.Pressure()
	obstacle := g.Obstacle()
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			i := g.Index(row, col)
			if obstacle[i] {
				dst.SetRGBA(col, row, ObstacleColor)
				continue
			}
			var v float32
			if f == FieldPressure {
				v = pressure[i]
			} else {
				v = velocity[i].Len()
			}
			dst.SetRGBA(col, row, c.At((v-lo)*scale))
		}
	}
}

// Image allocates a grid-sized image and paints f into it.
func (c *Colormap) Image(g *fluid.Grid, f Field) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width(), g.Height()))
	c.Paint(img, g, f)
	return img
}
