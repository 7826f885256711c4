package gcode

import (
	"fmt"
	"math"

	"github.com/piwi3910/CycloDisc/internal/engine"
	"github.com/piwi3910/CycloDisc/internal/model"
	"gonum.org/v1/gonum/spatial/r2"
)

// FitKind names the feature pair a tool-fit issue concerns.
type FitKind string

const (
	FitHole       FitKind = "hole"         // Tool larger than an output hole
	FitBore       FitKind = "bore"         // Tool larger than the bore
	FitHoleWeb    FitKind = "hole-hole"    // Web between adjacent holes
	FitBoreWeb    FitKind = "hole-bore"    // Web between holes and the bore
	FitProfileWeb FitKind = "hole-profile" // Web between holes and the outer profile
)

// ToolFitIssue is one advisory finding for one disc.
type ToolFitIssue struct {
	DiscIndex int
	Suffix    string
	Kind      FitKind
	Value     float64 // hole/bore diameter or web width, mm
	Limit     float64 // tool diameter, mm
}

// CheckToolFit reports features the configured tool cannot cut and webs
// thinner than the tool diameter. The checks only look at features that
// are actually cut.
func CheckToolFit(res engine.Result, settings model.MachiningSettings) []ToolFitIssue {
	tool := settings.ToolDiameter
	if !(tool > 0) {
		return nil
	}

	var issues []ToolFitIssue
	for i, disc := range res.Discs {
		add := func(kind FitKind, value float64) {
			issues = append(issues, ToolFitIssue{DiscIndex: i, Suffix: disc.Suffix, Kind: kind, Value: value, Limit: tool})
		}

		holes := disc.Holes()
		if settings.CutBore && 2*disc.BoreRadius <= tool {
			add(FitBore, 2*disc.BoreRadius)
		}
		if !settings.CutHoles || len(holes) == 0 {
			continue
		}
		if 2*disc.HoleRadius <= tool {
			add(FitHole, 2*disc.HoleRadius)
		}
		if w := holeWeb(holes); w < tool {
			add(FitHoleWeb, w)
		}
		if settings.CutBore {
			if w := boreWeb(holes, disc.Bore()); w < tool {
				add(FitBoreWeb, w)
			}
		}
		if w := profileWeb(holes, disc.WorldProfile); w < tool {
			add(FitProfileWeb, w)
		}
	}
	return deduplicateIssues(issues)
}

// holeWeb returns the thinnest material between any two holes.
func holeWeb(holes []engine.Circle) float64 {
	web := math.Inf(1)
	for i := range holes {
		for j := i + 1; j < len(holes); j++ {
			d := r2.Norm(r2.Sub(holes[i].Center, holes[j].Center)) - holes[i].Radius - holes[j].Radius
			web = math.Min(web, d)
		}
	}
	return web
}

// boreWeb returns the thinnest material between a hole and the bore.
func boreWeb(holes []engine.Circle, bore engine.Circle) float64 {
	web := math.Inf(1)
	for _, h := range holes {
		web = math.Min(web, r2.Norm(r2.Sub(h.Center, bore.Center))-h.Radius-bore.Radius)
	}
	return web
}

// profileWeb returns the thinnest material between a hole and the profile
// vertices. Vertices are at most one chord apart, so this slightly
// overestimates the true web.
func profileWeb(holes []engine.Circle, profile engine.Profile) float64 {
	web := math.Inf(1)
	for _, h := range holes {
		for _, p := range profile {
			web = math.Min(web, r2.Norm(r2.Sub(p, h.Center))-h.Radius)
		}
	}
	return web
}

// deduplicateIssues keeps at most one issue per (disc, kind) pair.
func deduplicateIssues(issues []ToolFitIssue) []ToolFitIssue {
	type key struct {
		disc int
		kind FitKind
	}
	seen := make(map[key]bool)
	var result []ToolFitIssue

	for _, is := range issues {
		k := key{is.DiscIndex, is.Kind}
		if !seen[k] {
			seen[k] = true
			result = append(result, is)
		}
	}
	return result
}

// FormatToolFitWarnings produces human-readable warning messages.
func FormatToolFitWarnings(issues []ToolFitIssue) []string {
	var warnings []string
	for _, is := range issues {
		var msg string
		switch is.Kind {
		case FitHole, FitBore:
			msg = fmt.Sprintf("%s: tool Ø %.2f mm does not fit the %s Ø %.2f mm", is.Suffix, is.Limit, is.Kind, is.Value)
		default:
			msg = fmt.Sprintf("%s: %s web %.2f mm is thinner than the tool Ø %.2f mm", is.Suffix, is.Kind, is.Value, is.Limit)
		}
		warnings = append(warnings, msg)
	}
	return warnings
}
