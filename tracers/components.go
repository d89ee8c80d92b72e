// Package tracers advects passive marker particles through the flow.
// Tracers read the velocity field and never write to it.
package tracers

// Position is a tracer location in cell units: X along columns, Y along
// rows, with cell (row, col) centred on (col, row).
type Position struct {
	X, Y float32
}

// Velocity is the flow velocity sampled at the tracer's position on the
// last step.
type Velocity struct {
	X, Y float32
}

// Age counts the steps a tracer has been alive.
type Age struct {
	Steps int
}
