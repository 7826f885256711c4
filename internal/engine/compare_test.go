package engine

import (
	"testing"

	"github.com/piwi3910/CycloDisc/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestMaxDeviation_IdenticalProfiles(t *testing.T) {
	prof := sampleDefault(t, model.SamplingAdaptive)
	assert.Equal(t, 0.0, MaxDeviation(prof, prof))
	assert.Equal(t, 0.0, MaxDeviation(nil, prof))
}

func TestMaxDeviation_ShiftedSquare(t *testing.T) {
	square := Profile{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}}
	shifted := Translate(square, r2.Vec{X: 0.5})
	assert.InDelta(t, 0.5, MaxDeviation(square, shifted), 1e-12)
}

func TestSegmentDistance(t *testing.T) {
	a, b := r2.Vec{}, r2.Vec{X: 10}
	assert.InDelta(t, 3, segmentDistance(r2.Vec{X: 5, Y: 3}, a, b), 1e-12)
	assert.InDelta(t, 5, segmentDistance(r2.Vec{X: -3, Y: 4}, a, b), 1e-12)
	// Degenerate segment falls back to point distance.
	assert.InDelta(t, 5, segmentDistance(r2.Vec{X: 3, Y: 4}, a, a), 1e-12)
}

func TestCompareSampling_DeviationShrinksWithDensity(t *testing.T) {
	rows, err := CompareSampling(model.DefaultParameters(), model.DefaultEngineSettings(), []int{40, 120, 400})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, 8*40, rows[0].UniformPoints)
	assert.Equal(t, 8*120, rows[1].UniformPoints)
	assert.Greater(t, rows[0].MaxDeviation, rows[1].MaxDeviation)
	assert.Less(t, rows[0].MaxDeviation, 0.02)
	assert.Less(t, rows[2].MaxDeviation, 1e-6)
	for _, row := range rows {
		assert.LessOrEqual(t, row.MaxChord, 0.25)
		assert.GreaterOrEqual(t, row.AdaptivePoints, row.UniformPoints)
	}
}

func TestCompareSampling_InvalidParameters(t *testing.T) {
	p := model.DefaultParameters()
	p.RingPinCount = 2
	_, err := CompareSampling(p, model.DefaultEngineSettings(), DefaultComparisonDensities())
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestPolylineIndex_ClosestEdgeAwayFromNearestVertex(t *testing.T) {
	// The apex is the nearest vertex, but the base edge is closer.
	tri := Profile{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: -3}}
	idx := newPolylineIndex(tri)
	assert.InDelta(t, 1.0, idx.distance(r2.Vec{X: 5, Y: -1}), 1e-12)
	assert.InDelta(t, 0.0, idx.distance(r2.Vec{X: 2.5, Y: -1.5}), 1e-12)
}

func TestMaxChord_ShortProfiles(t *testing.T) {
	assert.Equal(t, 0.0, MaxChord(nil))
	assert.Equal(t, 0.0, MaxChord(Profile{{X: 1, Y: 2}}))
	assert.InDelta(t, 5.0, MaxChord(Profile{{}, {X: 3, Y: 4}}), 1e-12)
}
