package engine

import (
	"strings"
	"testing"

	"github.com/piwi3910/CycloDisc/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_DefaultDesign(t *testing.T) {
	s := SummarizeDesign(model.NewDesign())
	require.True(t, s.Valid)
	assert.Equal(t, "Safe", s.Mode())
	assert.InDelta(t, 3.12, s.EffectiveOffset, 1e-12)
	assert.InDelta(t, 85.84, s.EstimatedDiameter, 1e-9)

	lines := strings.Split(s.StatusText(), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "OK (Safe)", lines[0])
	assert.Equal(t, "Ratio: 8:1 | Lobes: 8 | Phase: 22.50°", lines[1])
	assert.Equal(t, "E: 1.800 mm | Pin Ø: 6.000 mm", lines[2])
	assert.Equal(t, "Roller clearance: 0.100 mm | Est. disc Ø: ~85.8 mm", lines[3])
	assert.Equal(t, "Hole r: 3.950 mm | Bore r: 11.000 mm", lines[4])
}

func TestSummarize_ExactAndManualPhase(t *testing.T) {
	opts := model.DefaultDiscOptions()
	opts.ExactGeometry = true
	opts.PhaseDeg = model.ManualPhase(15)

	s := Summarize(model.DefaultParameters(), opts)
	assert.Equal(t, "Exact", s.Mode())
	assert.Equal(t, 15.0, s.PhaseDeg)
	assert.InDelta(t, 3.1, s.EffectiveOffset, 1e-12)
	assert.True(t, strings.HasPrefix(s.StatusText(), "OK (Exact)\n"))
}

func TestSummarize_Invalid(t *testing.T) {
	p := model.DefaultParameters()
	p.Eccentricity = 0
	s := Summarize(p, model.DefaultDiscOptions())
	assert.False(t, s.Valid)
	assert.Equal(t, "Invalid\neccentricity must be > 0", s.StatusText())
}
