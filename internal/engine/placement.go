package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/CycloDisc/internal/model"
	"gonum.org/v1/gonum/spatial/r2"
)

// DiscPlacement maps disc-local coordinates to world coordinates: rotate
// about the local origin, then translate to Center.
type DiscPlacement struct {
	Center   r2.Vec  `json:"center"`
	Rotation float64 `json:"rotation"` // radians
}

// Apply transforms local points into world coordinates.
func (pl DiscPlacement) Apply(local []r2.Vec) []r2.Vec {
	return Translate(Rotate(local, pl.Rotation), pl.Center)
}

// Circle is a world-space circle handed to the drawing adapters.
type Circle struct {
	Center r2.Vec  `json:"center"`
	Radius float64 `json:"radius"`
}

// PlacedDisc is one disc ready for drawing.
type PlacedDisc struct {
	Suffix       string        `json:"suffix"` // "Disc1" or "Disc2_phase%.2f"
	Placement    DiscPlacement `json:"placement"`
	WorldProfile Profile       `json:"world_profile"`
	HolesLocal   []r2.Vec      `json:"holes_local"`
	HolesWorld   []r2.Vec      `json:"holes_world"`
	HoleRadius   float64       `json:"hole_radius"`
	BoreRadius   float64       `json:"bore_radius"`
}

// Bore returns the center bore as a world circle.
func (d PlacedDisc) Bore() Circle {
	return Circle{Center: d.Placement.Center, Radius: d.BoreRadius}
}

// Holes returns the output holes as world circles.
func (d PlacedDisc) Holes() []Circle {
	out := make([]Circle, len(d.HolesWorld))
	for i, c := range d.HolesWorld {
		out[i] = Circle{Center: c, Radius: d.HoleRadius}
	}
	return out
}

// Rotate returns pts rotated by theta about the origin.
func Rotate(pts []r2.Vec, theta float64) []r2.Vec {
	s, c := math.Sincos(theta)
	out := make([]r2.Vec, len(pts))
	for i, p := range pts {
		out[i] = r2.Vec{X: p.X*c - p.Y*s, Y: p.X*s + p.Y*c}
	}
	return out
}

// Translate returns pts shifted by v.
func Translate(pts []r2.Vec, v r2.Vec) []r2.Vec {
	out := make([]r2.Vec, len(pts))
	for i, p := range pts {
		out[i] = r2.Add(p, v)
	}
	return out
}

// DiscCenters returns the world centers of disc 1 and disc 2.
func DiscCenters(eccentricity float64, opposed bool) (c1, c2 r2.Vec) {
	c1 = r2.Vec{X: eccentricity}
	if opposed {
		return c1, r2.Vec{X: -eccentricity}
	}
	return c1, c1
}

// PlaceSecondDisc rotates the local profile by phase (radians) and moves it to
// (−E,0) when opposed, otherwise (E,0).
func PlaceSecondDisc(local Profile, phase float64, opposed bool, eccentricity float64) (r2.Vec, Profile) {
	_, c2 := DiscCenters(eccentricity, opposed)
	pl := DiscPlacement{Center: c2, Rotation: phase}
	return c2, pl.Apply(local)
}

// PlaceDiscs lays out disc 1, and disc 2 when opts.Dual is set, with their
// output holes and bores. The phase is opts.PhaseDeg or 180/lobes.
func PlaceDiscs(profile Profile, p model.DriveParameters, opts model.DiscOptions) ([]PlacedDisc, error) {
	if len(profile) < 3 {
		return nil, fmt.Errorf("place discs: profile has %d points, need at least 3", len(profile))
	}
	if opts.OutputHoleCount < 0 {
		return nil, fmt.Errorf("place discs: output hole count must be >= 0 (got %d)", opts.OutputHoleCount)
	}
	if opts.OutputPCD < 0 || opts.OutputPinDiameter < 0 || opts.BoreDiameter < 0 {
		return nil, fmt.Errorf("place discs: output PCD, output pin and bore diameters must be >= 0")
	}

	holeR := HoleRadius(opts.OutputPinDiameter, p.Eccentricity, opts.HoleExtraDiameter)
	boreR := BoreRadius(opts.BoreDiameter)
	holesLocal := HolePattern(opts.OutputHoleCount, opts.OutputPCD)
	c1, c2 := DiscCenters(p.Eccentricity, opts.Opposed)

	disc1 := PlacedDisc{
		Suffix:       "Disc1",
		Placement:    DiscPlacement{Center: c1},
		WorldProfile: Translate(profile, c1),
		HolesLocal:   holesLocal,
		HolesWorld:   Translate(holesLocal, c1),
		HoleRadius:   holeR,
		BoreRadius:   boreR,
	}
	if !opts.Dual {
		return []PlacedDisc{disc1}, nil
	}

	phaseDeg := model.AutoPhaseDeg(p.RingPinCount)
	if opts.PhaseDeg != nil {
		phaseDeg = *opts.PhaseDeg
	}
	_, world2 := PlaceSecondDisc(profile, phaseDeg*math.Pi/180, opts.Opposed, p.Eccentricity)

	disc2 := PlacedDisc{
		Suffix:       fmt.Sprintf("Disc2_phase%.2f", phaseDeg),
		Placement:    DiscPlacement{Center: c2, Rotation: phaseDeg * math.Pi / 180},
		WorldProfile: world2,
		HoleRadius:   holeR,
		BoreRadius:   boreR,
	}
	if opts.SameHolesWorld {
		disc2.HolesWorld = append([]r2.Vec(nil), disc1.HolesWorld...)
		disc2.HolesLocal = Translate(disc1.HolesWorld, r2.Scale(-1, c2))
	} else {
		disc2.HolesLocal = holesLocal
		disc2.HolesWorld = Translate(holesLocal, c2)
	}
	return []PlacedDisc{disc1, disc2}, nil
}
