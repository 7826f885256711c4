package engine

import (
	"math"
	"testing"

	"github.com/piwi3910/CycloDisc/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestMinGap_SinglePoint(t *testing.T) {
	// One point at the origin, four pins of radius 1 on radius 10.
	gap := MinGap(Profile{{}}, 4, 10, 1)
	assert.InDelta(t, 9, gap, 1e-12)

	rep := MinGapReport(Profile{{X: 8.5}, {Y: 9.5}}, 4, 10, 1)
	assert.InDelta(t, -0.5, rep.Gap, 1e-12)
	assert.Equal(t, 1, rep.PointIndex)
	assert.Equal(t, 1, rep.PinIndex)
}

func TestMinGap_EmptyProfile(t *testing.T) {
	rep := MinGapReport(nil, 9, 38, 3)
	assert.True(t, math.IsInf(rep.Gap, 1))
	assert.Equal(t, -1, rep.PointIndex)
}

func TestMinGapToRing_EqualsClearance(t *testing.T) {
	p := model.DefaultParameters()
	prof, err := GenerateProfile(p, model.SamplingAdaptive)
	require.NoError(t, err)
	assert.InDelta(t, p.RollerClearance, MinGapToRing(prof, p), 1e-9)
}

func TestMinGapToRing_ExactProfileTouches(t *testing.T) {
	p := model.DefaultParameters()
	p.RollerClearance = 0
	prof, err := GenerateProfile(p, model.SamplingUniform)
	require.NoError(t, err)
	assert.InDelta(t, 0, MinGapToRing(prof, p), 1e-9)
}

func TestRingPinCenters(t *testing.T) {
	pins := RingPinCenters(9, 38)
	require.Len(t, pins, 9)
	assert.Equal(t, r2.Vec{X: 38}, pins[0])
	for _, c := range pins {
		assert.InDelta(t, 38, r2.Norm(c), 1e-12)
	}
}
