package engine

import (
	"context"
	"testing"

	"github.com/piwi3910/CycloDisc/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

// bowTie is a hexagon whose third and sixth edges cross at (2,2).
var bowTie = Profile{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 4}, {X: 2, Y: 4}, {X: 4, Y: 4}}

func hexagon() Profile {
	return Profile(HolePattern(6, 10))
}

// overlappingDesign is valid but its pins are so large that the inward offset
// folds over itself at every lobe.
func overlappingDesign() model.DriveParameters {
	return model.DriveParameters{RingPinCount: 10, RingPCD: 40, RingPinDiameter: 12, Eccentricity: 1.9, RollerClearance: 0, SamplesPerLobe: 40}
}

func TestSegmentsIntersect(t *testing.T) {
	tests := []struct {
		name       string
		a, b, c, d r2.Vec
		want       bool
	}{
		{"proper crossing", r2.Vec{X: 0, Y: 0}, r2.Vec{X: 2, Y: 2}, r2.Vec{X: 0, Y: 2}, r2.Vec{X: 2, Y: 0}, true},
		{"parallel", r2.Vec{X: 0, Y: 0}, r2.Vec{X: 2, Y: 0}, r2.Vec{X: 0, Y: 1}, r2.Vec{X: 2, Y: 1}, false},
		{"disjoint", r2.Vec{X: 0, Y: 0}, r2.Vec{X: 1, Y: 1}, r2.Vec{X: 3, Y: 0}, r2.Vec{X: 4, Y: 1}, false},
		{"endpoint touches", r2.Vec{X: 0, Y: 0}, r2.Vec{X: 2, Y: 0}, r2.Vec{X: 1, Y: 0}, r2.Vec{X: 1, Y: 3}, true},
		{"collinear overlap", r2.Vec{X: 0, Y: 0}, r2.Vec{X: 2, Y: 0}, r2.Vec{X: 1, Y: 0}, r2.Vec{X: 3, Y: 0}, true},
		{"collinear apart", r2.Vec{X: 0, Y: 0}, r2.Vec{X: 1, Y: 0}, r2.Vec{X: 2, Y: 0}, r2.Vec{X: 3, Y: 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SegmentsIntersect(tt.a, tt.b, tt.c, tt.d))
		})
	}
}

func TestSelfIntersects_SimplePolygons(t *testing.T) {
	assert.False(t, SelfIntersects(hexagon()))
	assert.True(t, SelfIntersects(bowTie))

	i, j, found := FindSelfIntersection(bowTie)
	require.True(t, found)
	assert.Equal(t, 2, i)
	assert.Equal(t, 5, j)
}

func TestSelfIntersects_TooFewPoints(t *testing.T) {
	// A crossed quadrilateral is below the scan threshold.
	quad := Profile{{X: 0, Y: 0}, {X: 2, Y: 2}, {X: 2, Y: 0}, {X: 0, Y: 2}}
	assert.False(t, SelfIntersects(quad))
}

func TestSelfIntersects_ExactProfileIsDeterministic(t *testing.T) {
	p := model.DefaultParameters()
	p.RollerClearance = 0

	var first bool
	for run := 0; run < 3; run++ {
		prof, err := GenerateProfile(p, model.SamplingAdaptive)
		require.NoError(t, err)
		world := Translate(prof, r2.Vec{X: p.Eccentricity})
		got := SelfIntersects(world)
		if run == 0 {
			first = got
			continue
		}
		assert.Equal(t, first, got, "run %d", run)
	}
	assert.False(t, first)
}

func TestSelfIntersects_LargePinsFold(t *testing.T) {
	prof, err := GenerateProfile(overlappingDesign(), model.SamplingAdaptive)
	require.NoError(t, err)
	assert.True(t, SelfIntersects(prof))
}

func TestSelfIntersectsParallel_MatchesSequential(t *testing.T) {
	good, err := GenerateProfile(model.DefaultParameters(), model.SamplingAdaptive)
	require.NoError(t, err)
	bad, err := GenerateProfile(overlappingDesign(), model.SamplingAdaptive)
	require.NoError(t, err)

	for _, prof := range []Profile{good, bad, bowTie, hexagon()} {
		_, _, want := FindSelfIntersection(prof)
		for _, workers := range []int{0, 1, 4} {
			got, err := SelfIntersectsParallel(context.Background(), prof, workers)
			require.NoError(t, err)
			assert.Equal(t, want, got, "workers=%d points=%d", workers, len(prof))
		}
	}
}

func TestSelfIntersectsParallel_Cancelled(t *testing.T) {
	prof, err := GenerateProfile(model.DefaultParameters(), model.SamplingAdaptive)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	found, err := SelfIntersectsParallel(ctx, prof, 2)
	assert.False(t, found)
	assert.ErrorIs(t, err, context.Canceled)
}
