package model

import (
	"fmt"
	"strings"
)

// Unit is a length unit accepted at the input boundary. The engine itself
// only ever sees millimetres.
type Unit string

const (
	UnitMM   Unit = "mm"
	UnitCM   Unit = "cm"
	UnitInch Unit = "in"
)

// Units lists the supported units for UI dropdowns.
var Units = []Unit{UnitMM, UnitCM, UnitInch}

func (u Unit) mmPerUnit() float64 {
	switch u {
	case UnitCM:
		return 10.0
	case UnitInch:
		return 25.4
	default:
		return 1.0
	}
}

// ToMM converts v from u to millimetres.
func (u Unit) ToMM(v float64) float64 { return v * u.mmPerUnit() }

// FromMM converts v from millimetres to u.
func (u Unit) FromMM(v float64) float64 { return v / u.mmPerUnit() }

// ParseUnit accepts "mm", "cm", "in", "inch" or "inches".
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mm", "millimeters", "millimetres":
		return UnitMM, nil
	case "cm":
		return UnitCM, nil
	case "in", "inch", "inches":
		return UnitInch, nil
	}
	return "", fmt.Errorf("unknown unit %q", s)
}

// ToMM returns a copy of p with every length converted from unit u to mm.
func (p DriveParameters) ToMM(u Unit) DriveParameters {
	p.RingPCD = u.ToMM(p.RingPCD)
	p.RingPinDiameter = u.ToMM(p.RingPinDiameter)
	p.Eccentricity = u.ToMM(p.Eccentricity)
	p.RollerClearance = u.ToMM(p.RollerClearance)
	return p
}

// FromMM returns a copy of p with every length converted from mm to unit u.
func (p DriveParameters) FromMM(u Unit) DriveParameters {
	p.RingPCD = u.FromMM(p.RingPCD)
	p.RingPinDiameter = u.FromMM(p.RingPinDiameter)
	p.Eccentricity = u.FromMM(p.Eccentricity)
	p.RollerClearance = u.FromMM(p.RollerClearance)
	return p
}

// ToMM returns a copy of o with every length converted from unit u to mm.
func (o DiscOptions) ToMM(u Unit) DiscOptions {
	o.OutputPinDiameter = u.ToMM(o.OutputPinDiameter)
	o.OutputPCD = u.ToMM(o.OutputPCD)
	o.HoleExtraDiameter = u.ToMM(o.HoleExtraDiameter)
	o.BoreDiameter = u.ToMM(o.BoreDiameter)
	return o
}
