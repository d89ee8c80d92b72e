// Package camera maps between grid cells and screen pixels for the viewer.
package camera

// Camera is a bounded pan/zoom view onto the grid. Positions are in cell
// units: X along columns, Y along rows, cell (row, col) covering
// [col, col+1) x [row, row+1).
type Camera struct {
	// Position is the view centre in cell units
	X, Y float32

	// Zoom is pixels per cell
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Grid dimensions in cells
	GridW, GridH float32

	MinZoom, MaxZoom float32
}

// New creates a camera showing the whole grid.
func New(viewportW, viewportH float32, gridW, gridH int) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		GridW:     float32(gridW),
		GridH:     float32(gridH),
	}
	c.fitZoomLimits()
	c.Reset()
	return c
}

// fitZoomLimits sets MinZoom so the whole grid fits the viewport.
func (c *Camera) fitZoomLimits() {
	c.MinZoom = min(c.ViewportW/c.GridW, c.ViewportH/c.GridH)
	c.MaxZoom = max(c.MinZoom*16, 1)
}

// CellToScreen converts a cell-space position to screen pixels.
func (c *Camera) CellToScreen(x, y float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (x-c.X)*c.Zoom
	sy = c.ViewportH/2 + (y-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToCellPos converts screen pixels to a cell-space position.
func (c *Camera) ScreenToCellPos(sx, sy float32) (x, y float32) {
	x = c.X + (sx-c.ViewportW/2)/c.Zoom
	y = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return x, y
}

// ScreenToCell returns the grid cell under a screen pixel and whether it
// lies inside the grid.
func (c *Camera) ScreenToCell(sx, sy float32) (row, col int, ok bool) {
	x, y := c.ScreenToCellPos(sx, sy)
	if x < 0 || y < 0 || x >= c.GridW || y >= c.GridH {
		return 0, 0, false
	}
	return int(y), int(x), true
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.fitZoomLimits()
	c.SetZoom(c.Zoom)
}

// Pan moves the view by a delta in screen pixels, keeping the centre on the grid.
func (c *Camera) Pan(dx, dy float32) {
	c.X = clamp(c.X+dx/c.Zoom, 0, c.GridW)
	c.Y = clamp(c.Y+dy/c.Zoom, 0, c.GridH)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomAt multiplies the zoom by factor, keeping the cell under the screen
// point (sx, sy) fixed.
func (c *Camera) ZoomAt(factor, sx, sy float32) {
	x, y := c.ScreenToCellPos(sx, sy)
	c.SetZoom(c.Zoom * factor)
	c.X = clamp(x-(sx-c.ViewportW/2)/c.Zoom, 0, c.GridW)
	c.Y = clamp(y-(sy-c.ViewportH/2)/c.Zoom, 0, c.GridH)
}

// Reset centres the grid at the fitting zoom.
func (c *Camera) Reset() {
	c.X = c.GridW / 2
	c.Y = c.GridH / 2
	c.Zoom = c.MinZoom
}

// GridRect returns the screen rectangle covered by the whole grid.
func (c *Camera) GridRect() (x, y, w, h float32) {
	x, y = c.CellToScreen(0, 0)
	return x, y, c.GridW * c.Zoom, c.GridH * c.Zoom
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
