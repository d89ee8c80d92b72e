package fluid

import "strings"

// Debug glyphs for the textual dump.
const (
	GlyphFast  = '◼'
	GlyphSlow  = '◻'
	GlyphSolid = ' '

	// DefaultGlyphThreshold is the speed above which a cell renders as GlyphFast.
	DefaultGlyphThreshold = 64
)

// Render writes one glyph per cell, row-major, each row newline-terminated.
// Obstacle cells are blank; fluid cells faster than threshold are solid blocks.
func (g *Grid) Render(threshold float32) string {
	var sb strings.Builder
	sb.Grow(g.height * (g.width*3 + 1))
	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			i := g.Index(row, col)
			switch {
			case g.obstacle[i]:
				sb.WriteRune(GlyphSolid)
			case g.velocity[i].Len() > threshold:
				sb.WriteRune(GlyphFast)
			default:
				sb.WriteRune(GlyphSlow)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// String renders the grid with DefaultGlyphThreshold.
func (g *Grid) String() string {
	return g.Render(DefaultGlyphThreshold)
}
