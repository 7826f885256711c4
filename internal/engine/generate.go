package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/piwi3910/CycloDisc/internal/model"
)

// ErrInfeasible is wrapped by Generate under the strict infeasibility policy
// when the profile overlaps a ring pin or crosses itself.
var ErrInfeasible = errors.New("infeasible profile")

// gapTolerance absorbs rounding when an exact profile touches the pins.
const gapTolerance = 1e-9

// GenerateProfile validates p and returns the disc-local parallel curve at
// d_eff = pin radius + clearance using the default sampler settings.
func GenerateProfile(p model.DriveParameters, mode model.SamplingMode) (Profile, error) {
	if err := ValidateParameters(p).Err(); err != nil {
		return nil, err
	}
	cfg := DefaultSamplerConfig(p.SamplesPerLobe)
	cfg.Mode = mode
	return Sample(p.RingPinCount, p.Radius(), p.Eccentricity, p.EffectiveOffset(0), cfg)
}

// Result is everything one generation pass produces.
type Result struct {
	Params         model.DriveParameters `json:"params"`
	Options        model.DiscOptions     `json:"options"`
	Profile        Profile               `json:"profile"` // disc-local
	DEff           float64               `json:"d_eff"`
	Guard          float64               `json:"guard"`
	Gap            GapReport             `json:"gap"`
	SelfIntersects bool                  `json:"self_intersects"`
	Iterations     int                   `json:"iterations"`
	Discs          []PlacedDisc          `json:"discs"`
	RingPins       []Circle              `json:"ring_pins,omitempty"`
	OutputPins     []Circle              `json:"output_pins,omitempty"`
	Summary        Summary               `json:"summary"`
	Warnings       []string              `json:"warnings,omitempty"`
}

// MinGap returns the signed minimum gap of disc 1 to the ring pins.
func (r Result) MinGap() float64 { return r.Gap.Gap }

// Generator builds disc geometry under one set of engine settings.
type Generator struct {
	Settings model.EngineSettings
}

func New(settings model.EngineSettings) *Generator {
	return &Generator{Settings: settings}
}

// GenerateDesign runs a generator configured from the design itself.
func GenerateDesign(d model.Design) (Result, error) {
	return New(d.Engine).Generate(d.Params, d.Options)
}

// Generate validates p, samples the profile, applies the guard policy, and
// places the discs. Invalid parameters return a *ValidationError and no
// geometry.
func (g *Generator) Generate(p model.DriveParameters, opts model.DiscOptions) (Result, error) {
	if err := ValidateParameters(p).Err(); err != nil {
		return Result{}, err
	}
	cfg := SamplerConfigFrom(g.Settings, p.SamplesPerLobe)
	wanted := model.SafeGap
	if opts.ExactGeometry {
		wanted = 0
	}

	res := Result{Params: p, Options: opts}
	if err := g.profileWithGuard(&res, cfg, wanted); err != nil {
		return Result{}, err
	}

	discs, err := PlaceDiscs(res.Profile, p, opts)
	if err != nil {
		return Result{}, err
	}
	res.Discs = discs
	if opts.DrawRingPins {
		for _, c := range RingPinCenters(p.RingPinCount, p.Radius()) {
			res.RingPins = append(res.RingPins, Circle{Center: c, Radius: p.PinRadius()})
		}
	}
	if opts.DrawOutputPins {
		for _, c := range HolePattern(opts.OutputHoleCount, opts.OutputPCD) {
			res.OutputPins = append(res.OutputPins, Circle{Center: c, Radius: opts.OutputPinDiameter / 2})
		}
	}
	res.Summary = summarize(p, opts, res.Guard)

	if err := g.applyInfeasibility(&res, wanted); err != nil {
		return Result{}, err
	}
	return res, nil
}

// profileWithGuard samples until the guard policy is satisfied. Under
// GuardNone it samples exactly once.
func (g *Generator) profileWithGuard(res *Result, cfg SamplerConfig, wanted float64) error {
	p := res.Params
	maxSteps := 0
	if g.Settings.GuardPolicy == model.GuardIterative {
		if !(g.Settings.GuardStep > 0) {
			return fmt.Errorf("guard step must be > 0 (got %g)", g.Settings.GuardStep)
		}
		maxSteps = int(math.Floor(g.Settings.GuardMax/g.Settings.GuardStep + 1e-9))
	}

	for k := 0; ; k++ {
		guard := float64(k) * g.Settings.GuardStep
		if maxSteps == 0 {
			guard = 0
		}
		dEff := p.EffectiveOffset(guard)
		prof, err := Sample(p.RingPinCount, p.Radius(), p.Eccentricity, dEff, cfg)
		if err != nil {
			return fmt.Errorf("generating profile: %w", err)
		}
		if len(prof) < minIntersectPoints {
			return fmt.Errorf("generating profile: only %d usable samples", len(prof))
		}

		c1, _ := DiscCenters(p.Eccentricity, false)
		world := Translate(prof, c1)
		res.Profile = prof
		res.DEff = dEff
		res.Guard = guard
		res.Iterations = k + 1
		res.Gap = MinGapReport(world, p.RingPinCount, p.Radius(), p.PinRadius())
		res.SelfIntersects = SelfIntersects(world)

		satisfied := res.Gap.Gap >= wanted-gapTolerance && !res.SelfIntersects
		if satisfied || k >= maxSteps {
			if !satisfied && maxSteps > 0 {
				res.Warnings = append(res.Warnings, fmt.Sprintf("guard limit %.3f mm reached without meeting the wanted gap of %.3f mm", guard, wanted))
			}
			return nil
		}
	}
}

// applyInfeasibility turns the diagnostics into warnings or, under the strict
// policy, an ErrInfeasible error.
func (g *Generator) applyInfeasibility(res *Result, wanted float64) error {
	var problems []string
	if res.Gap.Gap < -gapTolerance {
		problems = append(problems, fmt.Sprintf("profile overlaps ring pin %d by %.4f mm", res.Gap.PinIndex, -res.Gap.Gap))
	}
	if res.SelfIntersects {
		problems = append(problems, "profile self-intersects")
	}

	if len(problems) > 0 && g.Settings.Infeasibility == model.InfeasibleStrict {
		return fmt.Errorf("%w: %s", ErrInfeasible, problems[0])
	}
	res.Warnings = append(res.Warnings, problems...)
	if len(problems) == 0 && res.Gap.Gap < wanted-gapTolerance {
		res.Warnings = append(res.Warnings, fmt.Sprintf("ring gap %.4f mm is below the wanted %.3f mm", res.Gap.Gap, wanted))
	}
	return nil
}
