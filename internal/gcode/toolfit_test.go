package gcode

import (
	"math"
	"testing"

	"github.com/piwi3910/CycloDisc/internal/engine"
	"github.com/piwi3910/CycloDisc/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestCheckToolFit_DefaultDesignFits(t *testing.T) {
	d := newTestDesign()
	issues := CheckToolFit(generateResult(t, d), d.Machining)
	assert.Empty(t, issues)
}

func TestCheckToolFit_OffsetHolesThinDiscTwoWeb(t *testing.T) {
	// With the same world holes, disc 2's holes sit 2E off its own center.
	d := newTestDesign()
	d.Machining.ToolDiameter = 6
	res := generateResult(t, d)
	issues := CheckToolFit(res, d.Machining)
	require.Len(t, issues, 2)
	for _, is := range issues {
		assert.Equal(t, 1, is.DiscIndex)
	}
	assert.Equal(t, FitBoreWeb, issues[0].Kind)
	// No hole sits opposite the offset; the nearest pair is at 160 and 200 degrees.
	disc := res.Discs[1]
	bore := disc.Bore()
	want := math.Inf(1)
	for _, h := range disc.Holes() {
		want = math.Min(want, r2.Norm(r2.Sub(h.Center, bore.Center))-h.Radius-bore.Radius)
	}
	assert.InDelta(t, want, issues[0].Value, 1e-9)
	assert.InDelta(t, 3.7078, issues[0].Value, 1e-4)
	assert.Equal(t, FitProfileWeb, issues[1].Kind)
	assert.InDelta(t, 5.63, issues[1].Value, 0.01)

	d.Options.SameHolesWorld = false
	assert.Empty(t, CheckToolFit(generateResult(t, d), d.Machining))
}

func TestCheckToolFit_LargeTool(t *testing.T) {
	d := newTestDesign()
	d.Machining.ToolDiameter = 8
	issues := CheckToolFit(generateResult(t, d), d.Machining)
	require.Len(t, issues, 8)

	kinds := []FitKind{FitHole, FitHoleWeb, FitBoreWeb, FitProfileWeb}
	for i, is := range issues {
		assert.Equal(t, kinds[i%4], is.Kind, "issue %d", i)
		assert.Equal(t, i/4, is.DiscIndex)
		assert.Equal(t, 8.0, is.Limit)
	}
	assert.InDelta(t, 7.9, issues[0].Value, 1e-12)
	assert.InDelta(t, 7.05, issues[2].Value, 1e-9)
}

func TestCheckToolFit_SkipsFeaturesNotCut(t *testing.T) {
	d := newTestDesign()
	d.Machining.ToolDiameter = 8
	d.Machining.CutHoles = false
	d.Machining.CutBore = false
	assert.Empty(t, CheckToolFit(generateResult(t, d), d.Machining))

	d.Machining.ToolDiameter = 0
	assert.Nil(t, CheckToolFit(generateResult(t, d), d.Machining))
}

func TestCheckToolFit_BoreTooSmall(t *testing.T) {
	d := newTestDesign()
	d.Options.BoreDiameter = 2
	issues := CheckToolFit(generateResult(t, d), d.Machining)
	require.NotEmpty(t, issues)
	assert.Equal(t, FitBore, issues[0].Kind)
	assert.InDelta(t, 2.0, issues[0].Value, 1e-12)
}

func TestHoleWeb(t *testing.T) {
	holes := []engine.Circle{
		{Center: r2.Vec{X: 0}, Radius: 1},
		{Center: r2.Vec{X: 5}, Radius: 1},
		{Center: r2.Vec{X: 20}, Radius: 2},
	}
	assert.InDelta(t, 3.0, holeWeb(holes), 1e-12)
	assert.InDelta(t, 2.0, boreWeb(holes[:1], engine.Circle{Center: r2.Vec{Y: 5}, Radius: 2}), 1e-12)
}

func TestDeduplicateIssues(t *testing.T) {
	issues := []ToolFitIssue{
		{DiscIndex: 0, Kind: FitHole},
		{DiscIndex: 0, Kind: FitHole},
		{DiscIndex: 1, Kind: FitHole},
	}
	assert.Len(t, deduplicateIssues(issues), 2)
}

func TestFormatToolFitWarnings(t *testing.T) {
	msgs := FormatToolFitWarnings([]ToolFitIssue{
		{Suffix: "Disc1", Kind: FitHole, Value: 7.9, Limit: 8},
		{Suffix: "Disc2_phase22.50", Kind: FitProfileWeb, Value: 5.63, Limit: 6},
	})
	require.Len(t, msgs, 2)
	assert.Equal(t, "Disc1: tool Ø 8.00 mm does not fit the hole Ø 7.90 mm", msgs[0])
	assert.Equal(t, "Disc2_phase22.50: hole-profile web 5.63 mm is thinner than the tool Ø 6.00 mm", msgs[1])
}

func TestCheckToolFit_DesignWithoutHoles(t *testing.T) {
	d := newTestDesign()
	d.Options.OutputHoleCount = 0
	res := generateResult(t, d)
	assert.Empty(t, CheckToolFit(res, model.DefaultMachiningSettings()))
}
