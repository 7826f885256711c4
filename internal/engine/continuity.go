package engine

import "gonum.org/v1/gonum/spatial/r2"

// NormalResolver keeps offset normals on one side of the base curve by
// flipping any candidate that points against the previous accepted normal.
// The zero value accepts its first candidate unchanged.
type NormalResolver struct {
	prev r2.Vec
	set  bool
}

// Resolve returns candidate, possibly negated, and records it as the new reference.
func (nr *NormalResolver) Resolve(candidate r2.Vec) r2.Vec {
	if nr.set {
		candidate = alignNormal(candidate, nr.prev)
	}
	nr.prev = candidate
	nr.set = true
	return candidate
}

// alignNormal negates candidate when it opposes ref.
func alignNormal(candidate, ref r2.Vec) r2.Vec {
	if r2.Dot(candidate, ref) < 0 {
		return r2.Scale(-1, candidate)
	}
	return candidate
}
