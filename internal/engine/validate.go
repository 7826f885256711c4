// Package engine computes the 2D geometry of cycloidal reducer discs: the
// trochoidal lobe profile offset by the ring pin radius, diagnostics against
// the ring, and the placement of a second phase-shifted disc with its output
// holes and center bore.
//
// All lengths are millimetres and all angles are radians unless a name says
// otherwise (PhaseDeg). Every function is a pure function of its arguments.
package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/CycloDisc/internal/model"
)

// pitchCrowding is the fraction of the ring pin pitch a pin may occupy.
const pitchCrowding = 0.98

// ValidationResult reports whether a parameter set is mechanically feasible.
// Message names the first violated constraint and is empty when OK.
type ValidationResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// Err returns nil for a passing result, otherwise a *ValidationError.
func (r ValidationResult) Err() error {
	if r.OK {
		return nil
	}
	return &ValidationError{Message: r.Message}
}

// ValidationError is returned by every generator entry point when the
// parameters fail validation. No geometry is produced alongside it.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "invalid drive parameters: " + e.Message
}

func fail(format string, args ...any) ValidationResult {
	return ValidationResult{OK: false, Message: fmt.Sprintf(format, args...)}
}

// Validate checks a parameter set against the feasibility constraints in a
// fixed order and stops at the first failure.
func Validate(n int, ringPCD, pinDiameter, eccentricity, clearance float64) ValidationResult {
	if n < 3 {
		return fail("ring pin count must be >= 3 (got %d)", n)
	}
	if !(ringPCD > 0) || !(pinDiameter > 0) {
		return fail("ring PCD and pin diameter must be > 0")
	}
	if !(eccentricity > 0) {
		return fail("eccentricity must be > 0")
	}
	if !(clearance >= 0) {
		return fail("roller clearance must be >= 0")
	}
	for _, x := range [...]float64{ringPCD, pinDiameter, eccentricity, clearance} {
		if math.IsInf(x, 0) {
			return fail("lengths must be finite")
		}
	}

	r := ringPCD / 2.0
	en := eccentricity * float64(n)
	if en >= r {
		return fail("need E*N < R: E*N=%.3f mm, R=%.3f mm", en, r)
	}

	pitch := 2.0 * math.Pi * r / float64(n)
	if pinDiameter >= pitchCrowding*pitch {
		return fail("ring pins too large for this PCD (pitch crowding): pin %.3f mm >= %.3f mm", pinDiameter, pitchCrowding*pitch)
	}

	if pinDiameter/2.0+clearance >= r {
		return fail("clearance too large vs ring radius (degenerate profile)")
	}
	return ValidationResult{OK: true}
}

// ValidateParameters is Validate applied to a parameter set.
func ValidateParameters(p model.DriveParameters) ValidationResult {
	return Validate(p.RingPinCount, p.RingPCD, p.RingPinDiameter, p.Eccentricity, p.RollerClearance)
}
