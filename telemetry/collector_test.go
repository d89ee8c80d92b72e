package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/channelflow/fluid"
)

func TestCollectorWindowing(t *testing.T) {
	p := fluid.DefaultParams()
	p.Workers = 1
	obs := fluid.Obstacle{Shape: fluid.ShapeCircle, CenterRow: 10, CenterCol: 12, Radius: 3}
	p.ObstacleDiameter = obs.Diameter()
	g := fluid.NewChannel(32, 20, p, obs, fluid.Perturbation{})

	c := NewCollector(3, p.DT)
	assert.False(t, c.ShouldFlush(2))
	assert.True(t, c.ShouldFlush(3))

	c.RecordTracers(5, 1, 0, 0)
	c.RecordTracers(2, 0, 1, 1)
	s := c.Flush(3, g, p, 6)

	assert.Equal(t, 0, s.WindowStartTick)
	assert.Equal(t, 3, s.WindowEndTick)
	assert.InDelta(t, 0.03, s.SimTimeSec, 1e-6)
	assert.Equal(t, 7, s.TracersSpawned)
	assert.Equal(t, 1, s.TracersExited)
	assert.Equal(t, 1, s.TracersStuck)
	assert.Equal(t, 1, s.TracersExpired)
	assert.Equal(t, 6, s.TracersActive)
	assert.InDelta(t, float64(fluid.KineticEnergy(g)), s.KineticEnergy, 1e-3)
	assert.InDelta(t, 30, s.SpeedMax, 1e-3)

	assert.False(t, c.ShouldFlush(5))
	s2 := c.Flush(6, g, p, 0)
	assert.Equal(t, 3, s2.WindowStartTick)
	assert.Zero(t, s2.TracersSpawned)

	require.Len(t, c.History(), 2)
	assert.Equal(t, 6, c.History()[1].WindowEndTick)
}
