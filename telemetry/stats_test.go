package telemetry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentileEmpirical(t *testing.T) {
	quartets := []float64{1, 2, 3, 4}
	deciles := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	cases := map[string]struct {
		sorted []float64
		p      float64
		want   float64
	}{
		"no data":             {nil, 0.5, 0},
		"lone value":          {[]float64{7.5}, 0.3, 7.5},
		"below range clamps":  {quartets, -1, 1},
		"above range clamps":  {quartets, 2, 4},
		"median takes lower":  {quartets, 0.5, 2},
		"just past a quartet": {quartets, 0.26, 2},
		"exact quartet":       {quartets, 0.25, 1},
		"p10":                 {deciles, 0.1, 1},
		"p90":                 {deciles, 0.9, 9},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, tc.want, Percentile(tc.sorted, tc.p), 1e-12)
		})
	}
}

func TestComputeSpeedStats(t *testing.T) {
	values := []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	s := ComputeSpeedStats(values)

	assert.InDelta(t, 5.5, s.Mean, 1e-9)
	// population std of 1..10
	assert.InDelta(t, math.Sqrt(8.25), s.Std, 1e-9)
	assert.Equal(t, 10.0, s.Max)
	assert.Equal(t, 1.0, s.P10)
	assert.Equal(t, 5.0, s.P50)
	assert.Equal(t, 9.0, s.P90)
	assert.Equal(t, 1.0, values[0], "input is sorted in place")
}

func TestComputeSpeedStatsEmpty(t *testing.T) {
	assert.Equal(t, SpeedStats{}, ComputeSpeedStats(nil))
}
