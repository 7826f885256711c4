package engine

import (
	"math"

	"github.com/piwi3910/CycloDisc/internal/model"
	"gonum.org/v1/gonum/spatial/r2"
)

// GapReport locates the tightest point between a profile and the ring pins.
type GapReport struct {
	Gap        float64 `json:"gap"`         // signed, negative means overlap
	PointIndex int     `json:"point_index"` // -1 for an empty profile
	PinIndex   int     `json:"pin_index"`
}

// RingPinCenters returns the N pin centers on radius r, starting on +X.
func RingPinCenters(n int, r float64) []r2.Vec {
	return HolePattern(n, 2*r)
}

// MinGapReport computes min(|p − c_i| − pinRadius) over every profile point
// and every ring pin center.
func MinGapReport(pts Profile, n int, r, pinRadius float64) GapReport {
	rep := GapReport{Gap: math.Inf(1), PointIndex: -1, PinIndex: -1}
	pins := RingPinCenters(n, r)
	for i, p := range pts {
		for k, c := range pins {
			if g := r2.Norm(r2.Sub(p, c)) - pinRadius; g < rep.Gap {
				rep = GapReport{Gap: g, PointIndex: i, PinIndex: k}
			}
		}
	}
	return rep
}

// MinGap returns the signed minimum gap between pts and the ring pins.
// pts must already be in world coordinates.
func MinGap(pts Profile, n int, r, pinRadius float64) float64 {
	return MinGapReport(pts, n, r, pinRadius).Gap
}

// MinGapToRing places a disc-local profile at disc 1's center (E,0) and
// returns its gap to the ring described by p.
func MinGapToRing(local Profile, p model.DriveParameters) float64 {
	world := Translate(local, r2.Vec{X: p.Eccentricity})
	return MinGap(world, p.RingPinCount, p.Radius(), p.PinRadius())
}
