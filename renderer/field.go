package renderer

import (
	"image"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/channelflow/camera"
	"github.com/pthm-cable/channelflow/fluid"
)

// FieldRenderer uploads a colour-mapped field into a grid-sized texture
// and draws it through the camera.
type FieldRenderer struct {
	cmap *Colormap
	img  *image.RGBA
	pix  []color.RGBA
	tex  rl.Texture2D

	initialized bool
}

// NewFieldRenderer creates a renderer; GPU resources are created lazily.
func NewFieldRenderer(cmap *Colormap) *FieldRenderer {
	return &FieldRenderer{cmap: cmap}
}

// Init creates the texture (must be called after the raylib window exists).
func (r *FieldRenderer) Init(gridW, gridH int) {
	if r.initialized {
		return
	}
	img := rl.GenImageColor(gridW, gridH, rl.Black)
	r.tex = rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(r.tex, rl.FilterPoint)
	rl.UnloadImage(img)

	r.img = image.NewRGBA(image.Rect(0, 0, gridW, gridH))
	r.pix = make([]color.RGBA, gridW*gridH)
	r.initialized = true
}

// Update repaints the texture from the current grid state.
func (r *FieldRenderer) Update(g *fluid.Grid, f Field) {
	if !r.initialized {
		r.Init(g.Width(), g.Height())
	}
	r.cmap.Paint(r.img, g, f)
	for i := range r.pix {
		o := i * 4
		r.pix[i] = color.RGBA{R: r.img.Pix[o], G: r.img.Pix[o+1], B: r.img.Pix[o+2], A: r.img.Pix[o+3]}
	}
	rl.UpdateTexture(r.tex, r.pix)
}

// Image returns the last painted frame.
func (r *FieldRenderer) Image() *image.RGBA { return r.img }

// Draw renders the texture into the grid rectangle of cam.
func (r *FieldRenderer) Draw(cam *camera.Camera) {
	if !r.initialized {
		return
	}
	x, y, w, h := cam.GridRect()
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(r.tex.Width), Height: float32(r.tex.Height)}
	dst := rl.Rectangle{X: x, Y: y, Width: w, Height: h}
	rl.DrawTexturePro(r.tex, src, dst, rl.Vector2{}, 0, rl.White)
	rl.DrawRectangleLinesEx(dst, 1, rl.DarkGray)
}

// Unload frees GPU resources.
func (r *FieldRenderer) Unload() {
	if r.initialized {
		rl.UnloadTexture(r.tex)
		r.initialized = false
	}
}
