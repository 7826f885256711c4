package engine

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultEpsilon is the tangent magnitude below which a sample is a cusp.
const DefaultEpsilon = 1e-12

// cuspNudge is the parameter perturbation used to step off a cusp.
const cuspNudge = 1e-6

// ParametricSample is one evaluated point of the base trochoid.
type ParametricSample struct {
	P        float64
	Position r2.Vec
	Tangent  r2.Vec // unit
	Normal   r2.Vec // unit, tangent rotated +90°
}

// Evaluate returns the trochoid point at parameter p and its first derivative:
//
//	x = R·cos(p) − E·cos(N·p)    dx = −R·sin(p) + E·N·sin(N·p)
//	y = R·sin(p) − E·sin(N·p)    dy =  R·cos(p) − E·N·cos(N·p)
func Evaluate(p, r float64, n int, e float64) (pos, tangent r2.Vec) {
	fn := float64(n)
	sp, cp := math.Sincos(p)
	snp, cnp := math.Sincos(fn * p)
	pos = r2.Vec{X: r*cp - e*cnp, Y: r*sp - e*snp}
	tangent = r2.Vec{X: -r*sp + e*fn*snp, Y: r*cp - e*fn*cnp}
	return pos, tangent
}

// Degenerate reports whether tangent is too short to normalize.
func Degenerate(tangent r2.Vec, eps float64) bool {
	return r2.Norm(tangent) < eps
}

// trochoid evaluates unit frames on one base curve.
type trochoid struct {
	r   float64
	n   int
	e   float64
	eps float64
}

// frame evaluates the curve at p. A cusp is retried at p+nudge then p-nudge;
// ok is false only when all three are degenerate.
func (c trochoid) frame(p float64) (ParametricSample, bool) {
	for _, q := range [...]float64{p, p + cuspNudge, p - cuspNudge} {
		pos, d := Evaluate(q, c.r, c.n, c.e)
		s := r2.Norm(d)
		if s < c.eps {
			continue
		}
		t := r2.Scale(1/s, d)
		return ParametricSample{
			P:        q,
			Position: pos,
			Tangent:  t,
			Normal:   r2.Vec{X: -t.Y, Y: t.X},
		}, true
	}
	return ParametricSample{}, false
}
