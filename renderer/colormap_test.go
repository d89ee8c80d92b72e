package renderer

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/channelflow/fluid"
)

func TestNewColormap(t *testing.T) {
	for _, name := range []string{"viridis", "turbo", "inferno", ""} {
		cm, err := NewColormap(name)
		require.NoError(t, err, name)
		assert.Equal(t, uint8(255), cm.At(0).A)
		assert.NotEqual(t, cm.At(0), cm.At(1), name)
	}

	_, err := NewColormap("rainbow")
	assert.Error(t, err)
}

func TestColormapClamps(t *testing.T) {
	cm, err := NewColormap("viridis")
	require.NoError(t, err)

	assert.Equal(t, cm.At(0), cm.At(-3))
	assert.Equal(t, cm.At(1), cm.At(7))
	var nan float32
	nan = nan / nan
	assert.Equal(t, cm.At(0), cm.At(nan))
}

func TestParseField(t *testing.T) {
	f, err := ParseField("pressure")
	require.NoError(t, err)
	assert.Equal(t, FieldPressure, f)
	assert.Equal(t, FieldSpeed, f.Next())
	assert.Equal(t, "speed", f.Next().String())

	_, err = ParseField("vorticity")
	assert.Error(t, err)
}

func testGrid() *fluid.Grid {
	g := fluid.NewGrid(3, 2, func(row, col int) bool { return row == 1 && col == 1 })
	g.SetVelocity(0, 0, fluid.Vec{X: 0})
	g.SetVelocity(0, 1, fluid.Vec{X: 2})
	g.SetVelocity(0, 2, fluid.Vec{X: 4})
	g.SetVelocity(1, 0, fluid.Vec{Y: 3})
	g.SetVelocity(1, 2, fluid.Vec{X: 4})
	return g
}

func TestPaintSpeed(t *testing.T) {
	cm, err := NewColormap("viridis")
	require.NoError(t, err)
	g := testGrid()

	lo, hi := FieldRange(g, FieldSpeed)
	assert.Equal(t, float32(0), lo)
	assert.Equal(t, float32(4), hi)

	img := cm.Image(g, FieldSpeed)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
	assert.Equal(t, cm.At(0), img.RGBAAt(0, 0))
	assert.Equal(t, cm.At(0.5), img.RGBAAt(1, 0))
	assert.Equal(t, cm.At(1), img.RGBAAt(2, 0))
	assert.Equal(t, ObstacleColor, img.RGBAAt(1, 1))
}

func TestPaintPressureSymmetric(t *testing.T) {
	cm, err := NewColormap("turbo")
	require.NoError(t, err)
	g := testGrid()

	// Zero pressure everywhere maps to a degenerate range.
	lo, hi := FieldRange(g, FieldPressure)
	assert.Equal(t, float32(0), lo)
	assert.Equal(t, float32(0), hi)
	img := cm.Image(g, FieldPressure)
	assert.Equal(t, cm.At(0), img.RGBAAt(0, 0))
}

func TestSavePNG(t *testing.T) {
	cm, err := NewColormap("inferno")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "frame.png")

	require.NoError(t, SavePNG(cm.Image(testGrid(), FieldSpeed), path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
