package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/piwi3910/CycloDisc/internal/model"
)

// Summary is the status readout shown next to the parameter form.
type Summary struct {
	Valid             bool    `json:"valid"`
	Message           string  `json:"message,omitempty"`
	Exact             bool    `json:"exact"`
	Lobes             int     `json:"lobes"`
	PhaseDeg          float64 `json:"phase_deg"`
	Eccentricity      float64 `json:"eccentricity"`
	PinDiameter       float64 `json:"pin_diameter"`
	Clearance         float64 `json:"clearance"`
	EffectiveOffset   float64 `json:"effective_offset"`
	EstimatedDiameter float64 `json:"estimated_diameter"` // 2(R + E + d_eff)
	HoleRadius        float64 `json:"hole_radius"`
	BoreRadius        float64 `json:"bore_radius"`
}

// Ratio returns the reduction ratio as "lobes:1".
func (s Summary) Ratio() string { return fmt.Sprintf("%d:1", s.Lobes) }

// Mode names the wanted-gap mode.
func (s Summary) Mode() string {
	if s.Exact {
		return "Exact"
	}
	return "Safe"
}

// Summarize derives the readout from a parameter snapshot before generation.
// Outside exact mode the estimate includes the safe gap as guard.
func Summarize(p model.DriveParameters, opts model.DiscOptions) Summary {
	guard := model.SafeGap
	if opts.ExactGeometry {
		guard = 0
	}
	return summarize(p, opts, guard)
}

// summarize builds the readout for the guard actually used.
func summarize(p model.DriveParameters, opts model.DiscOptions, guard float64) Summary {
	v := ValidateParameters(p)
	phase := model.AutoPhaseDeg(p.RingPinCount)
	if opts.PhaseDeg != nil {
		phase = *opts.PhaseDeg
	}
	dEff := p.EffectiveOffset(guard)
	return Summary{
		Valid:             v.OK,
		Message:           v.Message,
		Exact:             opts.ExactGeometry,
		Lobes:             p.Lobes(),
		PhaseDeg:          phase,
		Eccentricity:      p.Eccentricity,
		PinDiameter:       p.RingPinDiameter,
		Clearance:         math.Max(0, p.RollerClearance),
		EffectiveOffset:   dEff,
		EstimatedDiameter: 2 * (p.Radius() + p.Eccentricity + math.Max(0, dEff)),
		HoleRadius:        HoleRadius(opts.OutputPinDiameter, p.Eccentricity, opts.HoleExtraDiameter),
		BoreRadius:        BoreRadius(opts.BoreDiameter),
	}
}

// SummarizeDesign is Summarize for a whole design before generation.
func SummarizeDesign(d model.Design) Summary {
	return Summarize(d.Params, d.Options)
}

// StatusText renders the multi-line readout.
func (s Summary) StatusText() string {
	if !s.Valid {
		return "Invalid\n" + s.Message
	}
	var b strings.Builder
	fmt.Fprintf(&b, "OK (%s)\n", s.Mode())
	fmt.Fprintf(&b, "Ratio: %s | Lobes: %d | Phase: %.2f°\n", s.Ratio(), s.Lobes, s.PhaseDeg)
	fmt.Fprintf(&b, "E: %.3f mm | Pin Ø: %.3f mm\n", s.Eccentricity, s.PinDiameter)
	fmt.Fprintf(&b, "Roller clearance: %.3f mm | Est. disc Ø: ~%.1f mm\n", s.Clearance, s.EstimatedDiameter)
	fmt.Fprintf(&b, "Hole r: %.3f mm | Bore r: %.3f mm", s.HoleRadius, s.BoreRadius)
	return b.String()
}
