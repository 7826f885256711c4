package engine

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// MinBoreRadius keeps the center bore from collapsing to a point.
const MinBoreRadius = 0.01

// HolePattern returns count points evenly spaced on a circle of diameter pcd,
// point i at angle 2πi/count. A non-positive count yields no points.
func HolePattern(count int, pcd float64) []r2.Vec {
	if count <= 0 {
		return nil
	}
	r := pcd / 2.0
	pts := make([]r2.Vec, count)
	for i := range pts {
		s, c := math.Sincos(2 * math.Pi * float64(i) / float64(count))
		pts[i] = r2.Vec{X: r * c, Y: r * s}
	}
	return pts
}

// HoleRadius sizes an output hole so a pin orbiting by the eccentricity
// stays engaged: pin radius + E + half the diametral slack.
func HoleRadius(outputPinDiameter, eccentricity, extraDiameter float64) float64 {
	return outputPinDiameter/2.0 + eccentricity + extraDiameter/2.0
}

// BoreRadius returns boreDiameter/2, floored at MinBoreRadius.
func BoreRadius(boreDiameter float64) float64 {
	return math.Max(MinBoreRadius, boreDiameter/2.0)
}
