package gcode

import (
	"strings"
	"testing"

	"github.com/piwi3910/CycloDisc/internal/engine"
	"github.com/piwi3910/CycloDisc/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

// newTestDesign returns the default design cut in a single 6 mm pass.
func newTestDesign() model.Design {
	d := model.NewDesign()
	d.Machining.PassDepth = 6.0
	d.Machining.GCodeProfile = "Generic"
	return d
}

func generateResult(t *testing.T, d model.Design) engine.Result {
	t.Helper()
	res, err := engine.GenerateDesign(d)
	require.NoError(t, err)
	return res
}

func countPrefix(code, prefix string) int {
	n := 0
	for _, line := range strings.Split(code, "\n") {
		if strings.HasPrefix(line, prefix) {
			n++
		}
	}
	return n
}

// signedArea is positive for counter-clockwise polygons.
func signedArea(pts []r2.Vec) float64 {
	var a float64
	for i := range pts {
		a += r2.Cross(pts[i], pts[(i+1)%len(pts)])
	}
	return a / 2
}

func TestGenerateAll_OneProgramPerDisc(t *testing.T) {
	d := newTestDesign()
	codes, err := NewForDesign(d).GenerateAll(generateResult(t, d))
	require.NoError(t, err)
	require.Len(t, codes, 2)
	assert.Contains(t, codes[0], "CycloDisc GCode, Disc1")
	assert.Contains(t, codes[1], "CycloDisc GCode, Disc2_phase22.50")
	assert.Contains(t, codes[0], "Ratio 8:1")
}

func TestGenerateDisc_ClimbUsesCCWCircles(t *testing.T) {
	d := newTestDesign()
	code, err := NewForDesign(d).GenerateDisc(generateResult(t, d), 0)
	require.NoError(t, err)

	// Bore plus nine holes, one pass each.
	assert.Equal(t, 10, countPrefix(code, "G3 "))
	assert.Equal(t, 0, countPrefix(code, "G2 "))
	assert.Contains(t, code, "--- Bore: center (1.800, 0.000), tool path r=9.500 ---")
	assert.Contains(t, code, "--- Hole 1: center (23.800, 0.000), tool path r=2.450 ---")
	assert.Contains(t, code, "G3 X26.250 Y0.000 I-2.450 J0.000 F600.000")
	assert.Contains(t, code, "M3 S18000")
	assert.NotContains(t, code, "WARNING")
}

func TestGenerateDisc_Conventional(t *testing.T) {
	d := newTestDesign()
	d.Machining.UseClimb = false
	code, err := NewForDesign(d).GenerateDisc(generateResult(t, d), 0)
	require.NoError(t, err)
	assert.Equal(t, 10, countPrefix(code, "G2 "))
	assert.Equal(t, 0, countPrefix(code, "G3 "))
}

func TestGenerateDisc_MultiplePasses(t *testing.T) {
	d := newTestDesign()
	d.Machining.PassDepth = 2.5
	code, err := NewForDesign(d).GenerateDisc(generateResult(t, d), 0)
	require.NoError(t, err)

	assert.Equal(t, 30, countPrefix(code, "G3 "))
	assert.Contains(t, code, "Pass 3/3, depth=6.00mm")
	assert.Contains(t, code, "G1 Z-2.500 F200.000")
	assert.Contains(t, code, "G1 Z-6.000 F200.000")
}

func TestPassDepths(t *testing.T) {
	tests := []struct {
		cut, pass float64
		want      []float64
	}{
		{6, 6, []float64{6}},
		{6, 2, []float64{2, 4, 6}},
		{6, 2.5, []float64{2.5, 5, 6}},
		{6, 0, []float64{6}},
		{6, 10, []float64{6}},
	}
	for _, tt := range tests {
		s := model.DefaultMachiningSettings()
		s.CutDepth, s.PassDepth = tt.cut, tt.pass
		assert.Equal(t, tt.want, New(s).passDepths(), "cut %.1f pass %.1f", tt.cut, tt.pass)
	}
}

func TestDiscToolpaths_ContourKeepsToolRadius(t *testing.T) {
	d := newTestDesign()
	res := generateResult(t, d)
	g := NewForDesign(d)

	for _, disc := range res.Discs {
		paths, warnings, err := g.DiscToolpaths(res, disc)
		require.NoError(t, err)
		assert.Empty(t, warnings)
		require.Len(t, paths, 11)

		assert.Equal(t, PathCircle, paths[0].Kind)
		assert.InDelta(t, 9.5, paths[0].Radius, 1e-12)
		contour := paths[len(paths)-1]
		require.Equal(t, PathContour, contour.Kind)

		// Tool center stays one tool radius outside the disc edge.
		assert.InDelta(t, 1.5, engine.MaxDeviation(contour.Points, disc.WorldProfile), 0.01)
		// Climb cutting outside runs clockwise.
		assert.Less(t, signedArea(contour.Points), 0.0)
	}
}

func TestDiscToolpaths_ConventionalRunsCounterClockwise(t *testing.T) {
	d := newTestDesign()
	d.Machining.UseClimb = false
	res := generateResult(t, d)
	paths, _, err := NewForDesign(d).DiscToolpaths(res, res.Discs[0])
	require.NoError(t, err)
	assert.Greater(t, signedArea(paths[len(paths)-1].Points), 0.0)
}

func TestDiscToolpaths_SkipsHolesSmallerThanTool(t *testing.T) {
	d := newTestDesign()
	d.Machining.ToolDiameter = 8
	res := generateResult(t, d)
	paths, warnings, err := NewForDesign(d).DiscToolpaths(res, res.Discs[0])
	require.NoError(t, err)

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "holes Ø 7.900 mm are smaller than the tool")
	// Bore and profile remain.
	assert.Len(t, paths, 2)

	code, err := NewForDesign(d).GenerateDisc(res, 0)
	require.NoError(t, err)
	assert.Contains(t, code, "; WARNING: Disc1 holes")
}

func TestDiscToolpaths_OptionalFeatures(t *testing.T) {
	d := newTestDesign()
	d.Machining.CutBore = false
	d.Machining.CutHoles = false
	res := generateResult(t, d)
	paths, _, err := NewForDesign(d).DiscToolpaths(res, res.Discs[0])
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, PathContour, paths[0].Kind)
}

func TestGenerateDisc_Errors(t *testing.T) {
	d := newTestDesign()
	res := generateResult(t, d)

	_, err := NewForDesign(d).GenerateDisc(res, 2)
	assert.ErrorContains(t, err, "out of range")

	d.Machining.ToolDiameter = 0
	_, err = NewForDesign(d).GenerateDisc(res, 0)
	assert.ErrorContains(t, err, "tool diameter")
}

func TestGenerateDisc_Mach3Comments(t *testing.T) {
	d := newTestDesign()
	d.Machining.GCodeProfile = "Mach3"
	code, err := NewForDesign(d).GenerateDisc(generateResult(t, d), 0)
	require.NoError(t, err)
	assert.Contains(t, code, "( === Job complete ===)")
	assert.NotContains(t, code, ";")
}

func TestGenerateDisc_ParsesBackWithinDisc(t *testing.T) {
	d := newTestDesign()
	res := generateResult(t, d)
	code, err := NewForDesign(d).GenerateDisc(res, 0)
	require.NoError(t, err)

	moves := ParseGCode(code)
	minX, minY, maxX, maxY, ok := Bounds(moves)
	require.True(t, ok)

	// Disc 1 is centered on (1.8, 0); its profile spans R ± (E + d_eff) at most.
	reach := res.Params.Radius() + res.Params.Eccentricity - res.DEff + 1.5
	assert.LessOrEqual(t, maxX, 1.8+reach+1e-3)
	assert.GreaterOrEqual(t, minX, 1.8-reach-1e-3)
	assert.LessOrEqual(t, maxY, reach+1e-3)
	assert.GreaterOrEqual(t, minY, -reach-1e-3)
	assert.Greater(t, maxX, 30.0)
}

func TestFormat_NoNegativeZero(t *testing.T) {
	g := New(model.DefaultMachiningSettings())
	assert.Equal(t, "0.000", g.format(-1e-9))
	assert.Equal(t, "-1.250", g.format(-1.25))
}

func TestWithProfile_LeavesOriginalAlone(t *testing.T) {
	d := newTestDesign()
	res := generateResult(t, d)
	g := NewForDesign(d)

	fanuc := model.GetProfile("Mach3")
	fanuc.Name = "Shop Fanuc"
	fanuc.ArcCCW = "G03"
	code, err := g.WithProfile(fanuc).GenerateDisc(res, 0)
	require.NoError(t, err)
	assert.Contains(t, code, "( Profile: Shop Fanuc)")
	assert.Equal(t, 10, countPrefix(code, "G03 "))

	plain, err := g.GenerateDisc(res, 0)
	require.NoError(t, err)
	assert.Contains(t, plain, "; Profile: Generic")
	assert.Equal(t, 0, countPrefix(plain, "G03 "))
}

func TestPreview_SinglePassShortContour(t *testing.T) {
	d := newTestDesign()
	d.Machining.PassDepth = 2
	res := generateResult(t, d)

	code, err := NewForDesign(d).Preview(res, 1, 5)
	require.NoError(t, err)
	assert.Contains(t, code, "CycloDisc GCode, Disc2_phase22.50")
	assert.Contains(t, code, "Pass 1/1, depth=6.00mm")
	assert.NotContains(t, code, "Pass 1/3")
	assert.Equal(t, 10, countPrefix(code, "G3 "), "bore and holes are kept")
	assert.Contains(t, code, "preview: Profile Disc2_phase22.50 shows 5 of")

	// Four feeds along the contour plus the closing move.
	assert.Equal(t, 5, countPrefix(code, "G1 X"))
}

func TestPreview_Errors(t *testing.T) {
	d := newTestDesign()
	res := generateResult(t, d)
	_, err := NewForDesign(d).Preview(res, 2, 10)
	assert.Error(t, err)

	d.Machining.ToolDiameter = 0
	_, err = NewForDesign(d).Preview(res, 0, 10)
	assert.Error(t, err)
}
