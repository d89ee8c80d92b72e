package fluid

import "math"

// Vec is a velocity sample (horizontal, vertical) at a grid point.
type Vec struct {
	X, Y float32
}

// Sub returns v - o componentwise.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Len returns the magnitude of v.
func (v Vec) Len() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}
