package telemetry

import (
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var (
	divergenceColor = color.RGBA{R: 200, G: 60, B: 40, A: 255}
	dragColor       = color.RGBA{R: 30, G: 90, B: 200, A: 255}
)

// SaveHistoryPlot writes two stacked panels, max divergence and drag
// coefficient against simulated time, to a PNG at path.
func SaveHistoryPlot(history []WindowStats, path string) error {
	div := make(plotter.XYs, len(history))
	drag := make(plotter.XYs, len(history))
	for i, s := range history {
		div[i] = plotter.XY{X: s.SimTimeSec, Y: s.MaxDivergence}
		drag[i] = plotter.XY{X: s.SimTimeSec, Y: s.DragCoefficient}
	}

	top, err := linePlot("Max divergence", "|div u|", div, divergenceColor)
	if err != nil {
		return err
	}
	bottom, err := linePlot("Drag coefficient", "C_d", drag, dragColor)
	if err != nil {
		return err
	}

	const width, height = 8 * vg.Inch, 6 * vg.Inch
	img := vgimg.New(width, height)
	dc := draw.New(img)

	tiles := draw.Tiles{Rows: 2, Cols: 1, PadY: vg.Millimeter * 4}
	plots := [][]*plot.Plot{{top}, {bottom}}
	canvases := plot.Align(plots, tiles, dc)
	top.Draw(canvases[0][0])
	bottom.Draw(canvases[1][0])

	if err := savePNG(img, path); err != nil {
		return fmt.Errorf("writing history plot: %w", err)
	}
	return nil
}

func linePlot(title, ylabel string, pts plotter.XYs, c color.Color) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "t (s)"
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("building %s series: %w", title, err)
	}
	line.Color = c
	line.Width = vg.Points(1.5)
	p.Add(line)
	return p, nil
}

func savePNG(img *vgimg.Canvas, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
