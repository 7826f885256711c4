package importer

import (
	"math"
	"strings"

	"github.com/piwi3910/CycloDisc/internal/engine"
)

// ProfileDeviation reports how far a generated disc is from the closest
// outline of a drawing.
type ProfileDeviation struct {
	Disc      string
	Layer     string
	Deviation float64
	Found     bool
}

// CompareDrawing matches each disc of res against the non-circle outlines of
// drawing. Outlines on a layer ending with the disc suffix are preferred;
// without one, every outline is a candidate and the closest wins.
func CompareDrawing(res engine.Result, drawing DXFResult) []ProfileDeviation {
	var candidates []DXFOutline
	for _, o := range drawing.Outlines {
		if !o.Circle {
			candidates = append(candidates, o)
		}
	}

	reports := make([]ProfileDeviation, 0, len(res.Discs))
	for _, disc := range res.Discs {
		pool := candidates
		var named []DXFOutline
		for _, o := range candidates {
			if strings.HasSuffix(o.Layer, disc.Suffix) {
				named = append(named, o)
			}
		}
		if len(named) > 0 {
			pool = named
		}

		report := ProfileDeviation{Disc: disc.Suffix, Deviation: math.Inf(1)}
		for _, o := range pool {
			if d := engine.MaxDeviation(disc.WorldProfile, o.Points()); d < report.Deviation {
				report.Deviation = d
				report.Layer = o.Layer
				report.Found = true
			}
		}
		reports = append(reports, report)
	}
	return reports
}
