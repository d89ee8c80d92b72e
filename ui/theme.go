package ui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// DivergenceWarnLevel is the max divergence above which the HUD flags the
// run as unstable.
const DivergenceWarnLevel = 100

// Theme defines the colours and metrics shared by the panels.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	WarnColor      rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.White,
		WarnColor:      rl.Color{R: 230, G: 120, B: 90, A: 255},
		Padding:        10,
		LineHeight:     18,
		LabelWidth:     90,
		FontSize:       14,
		HeaderFontSize: 16,
	}
}

// DivergenceColor returns WarnColor for a divergence past DivergenceWarnLevel
// or a non-finite one, LightGray otherwise.
func (t Theme) DivergenceColor(div float32) rl.Color {
	d := float64(div)
	if math.IsNaN(d) || math.IsInf(d, 0) || d > DivergenceWarnLevel {
		return t.WarnColor
	}
	return rl.LightGray
}
