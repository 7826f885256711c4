package model

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Point2D represents a 2D coordinate in mm.
type Point2D struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Outline represents a closed polygon as a sequence of 2D points.
// The outline is implicitly closed: the last point connects back to the first.
type Outline []Point2D

// BoundingBox returns the min and max corners of the outline.
func (o Outline) BoundingBox() (min, max Point2D) {
	if len(o) == 0 {
		return Point2D{}, Point2D{}
	}
	min, max = o[0], o[0]
	for _, p := range o[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

// Translate shifts all points by dx, dy.
func (o Outline) Translate(dx, dy float64) Outline {
	result := make(Outline, len(o))
	for i, p := range o {
		result[i] = Point2D{X: p.X + dx, Y: p.Y + dy}
	}
	return result
}

// Perimeter returns the length of the closed outline.
func (o Outline) Perimeter() float64 {
	if len(o) < 2 {
		return 0
	}
	var total float64
	for i := range o {
		j := (i + 1) % len(o)
		total += math.Hypot(o[j].X-o[i].X, o[j].Y-o[i].Y)
	}
	return total
}

// DriveParameters describes the ring of fixed pins and the eccentric that the
// disc profile is generated for. All lengths are in mm.
type DriveParameters struct {
	RingPinCount    int     `json:"ring_pin_count" yaml:"ring_pin_count"`       // N, number of fixed ring pins
	RingPCD         float64 `json:"ring_pcd" yaml:"ring_pcd"`                   // Pitch circle diameter of the ring pins
	RingPinDiameter float64 `json:"ring_pin_diameter" yaml:"ring_pin_diameter"` // Diameter of each ring pin (or roller)
	Eccentricity    float64 `json:"eccentricity" yaml:"eccentricity"`           // E, input shaft offset
	RollerClearance float64 `json:"roller_clearance" yaml:"roller_clearance"`   // Extra offset added to the pin radius
	SamplesPerLobe  int     `json:"samples_per_lobe" yaml:"samples_per_lobe"`   // Sampling density
}

// Sampling density limits exposed in the UI.
const (
	MinSamplesPerLobe = 40
	MaxSamplesPerLobe = 600
)

// Radius returns the ring pitch radius R.
func (p DriveParameters) Radius() float64 { return p.RingPCD / 2.0 }

// PinRadius returns the ring pin radius.
func (p DriveParameters) PinRadius() float64 { return p.RingPinDiameter / 2.0 }

// Lobes returns the number of lobes on the disc, N-1.
func (p DriveParameters) Lobes() int { return p.RingPinCount - 1 }

// EffectiveOffset returns the parallel-curve offset for a given guard margin.
// A negative clearance contributes nothing.
func (p DriveParameters) EffectiveOffset(guard float64) float64 {
	return p.PinRadius() + math.Max(0, p.RollerClearance) + guard
}

// DefaultParameters returns the stock 8:1 drive.
func DefaultParameters() DriveParameters {
	return DriveParameters{
		RingPinCount:    9,
		RingPCD:         76.0,
		RingPinDiameter: 6.0,
		Eccentricity:    1.8,
		RollerClearance: 0.10,
		SamplesPerLobe:  120,
	}
}

// DiscOptions controls how discs, holes, and reference geometry are laid out.
type DiscOptions struct {
	OutputHoleCount   int     `json:"output_hole_count" yaml:"output_hole_count"`
	OutputPinDiameter float64 `json:"output_pin_diameter" yaml:"output_pin_diameter"`
	OutputPCD         float64 `json:"output_pcd" yaml:"output_pcd"`
	HoleExtraDiameter float64 `json:"hole_extra_diameter" yaml:"hole_extra_diameter"` // Diametral slack added to each output hole
	BoreDiameter      float64 `json:"bore_diameter" yaml:"bore_diameter"`

	Dual           bool     `json:"dual" yaml:"dual"`                               // Generate a second, phase-shifted disc
	Opposed        bool     `json:"opposed" yaml:"opposed"`                         // Second disc centered at (-E,0) instead of (E,0)
	PhaseDeg       *float64 `json:"phase_deg,omitempty" yaml:"phase_deg,omitempty"` // nil = auto (180/lobes)
	SameHolesWorld bool     `json:"same_holes_world" yaml:"same_holes_world"`       // Disc 2 holes at the same world positions as disc 1

	ExactGeometry  bool `json:"exact_geometry" yaml:"exact_geometry"` // Wanted gap 0 instead of the safe 0.02 mm
	DrawRingPins   bool `json:"draw_ring_pins" yaml:"draw_ring_pins"`
	DrawOutputPins bool `json:"draw_output_pins" yaml:"draw_output_pins"`
}

// ManualPhase returns a pointer suitable for DiscOptions.PhaseDeg.
func ManualPhase(deg float64) *float64 { return &deg }

// DefaultDiscOptions returns a dual, opposed layout with nine output pins.
func DefaultDiscOptions() DiscOptions {
	return DiscOptions{
		OutputHoleCount:   9,
		OutputPinDiameter: 4.0,
		OutputPCD:         44.0,
		HoleExtraDiameter: 0.30,
		BoreDiameter:      22.0,
		Dual:              true,
		Opposed:           true,
		SameHolesWorld:    true,
		DrawRingPins:      true,
		DrawOutputPins:    true,
	}
}

// SamplingMode selects how the parameter domain is walked.
type SamplingMode string

const (
	SamplingUniform  SamplingMode = "uniform"  // Fixed step count
	SamplingAdaptive SamplingMode = "adaptive" // Chord-bounded recursive bisection
)

// GuardPolicy decides whether the offset is grown when diagnostics fail.
type GuardPolicy string

const (
	GuardNone      GuardPolicy = "none"
	GuardIterative GuardPolicy = "iterative-guard"
)

// InfeasibilityPolicy decides what a negative ring gap or self-intersection means.
type InfeasibilityPolicy string

const (
	InfeasibleAdvisory InfeasibilityPolicy = "advisory" // Reported as warnings
	InfeasibleStrict   InfeasibilityPolicy = "strict"   // Reported as errors
)

// SafeGap is the wanted minimum ring gap outside exact-geometry mode.
const SafeGap = 0.02

// EngineSettings holds the numeric knobs of the profile generator.
type EngineSettings struct {
	Mode          SamplingMode        `json:"mode" yaml:"mode"`
	MaxSegment    float64             `json:"max_segment" yaml:"max_segment"` // Adaptive chord bound in mm
	MaxDepth      int                 `json:"max_depth" yaml:"max_depth"`     // Adaptive recursion bound
	Epsilon       float64             `json:"epsilon" yaml:"epsilon"`         // Degenerate tangent threshold
	GuardPolicy   GuardPolicy         `json:"guard_policy" yaml:"guard_policy"`
	GuardStep     float64             `json:"guard_step" yaml:"guard_step"`
	GuardMax      float64             `json:"guard_max" yaml:"guard_max"`
	Infeasibility InfeasibilityPolicy `json:"infeasibility" yaml:"infeasibility"`
}

// DefaultEngineSettings returns adaptive sampling with no guard growth.
func DefaultEngineSettings() EngineSettings {
	return EngineSettings{
		Mode:          SamplingAdaptive,
		MaxSegment:    0.25,
		MaxDepth:      12,
		Epsilon:       1e-12,
		GuardPolicy:   GuardNone,
		GuardStep:     0.01,
		GuardMax:      0.5,
		Infeasibility: InfeasibleAdvisory,
	}
}

// MachiningSettings holds CNC configuration for cutting discs from plate.
type MachiningSettings struct {
	ToolDiameter float64 `json:"tool_diameter" yaml:"tool_diameter"` // End mill diameter in mm
	FeedRate     float64 `json:"feed_rate" yaml:"feed_rate"`         // Cutting feed rate mm/min
	PlungeRate   float64 `json:"plunge_rate" yaml:"plunge_rate"`     // Plunge feed rate mm/min
	SpindleSpeed int     `json:"spindle_speed" yaml:"spindle_speed"` // RPM
	SafeZ        float64 `json:"safe_z" yaml:"safe_z"`               // Safe retract height mm
	CutDepth     float64 `json:"cut_depth" yaml:"cut_depth"`         // Disc thickness mm
	PassDepth    float64 `json:"pass_depth" yaml:"pass_depth"`       // Depth per pass mm
	UseClimb     bool    `json:"use_climb" yaml:"use_climb"`         // Climb vs conventional milling
	CutHoles     bool    `json:"cut_holes" yaml:"cut_holes"`         // Mill output holes
	CutBore      bool    `json:"cut_bore" yaml:"cut_bore"`           // Mill center bore

	GCodeProfile string `json:"gcode_profile" yaml:"gcode_profile"` // Name of the GCode profile to use
}

// DefaultMachiningSettings returns settings for a 3 mm end mill in 6 mm plate.
func DefaultMachiningSettings() MachiningSettings {
	return MachiningSettings{
		ToolDiameter: 3.0,
		FeedRate:     600.0,
		PlungeRate:   200.0,
		SpindleSpeed: 18000,
		SafeZ:        5.0,
		CutDepth:     6.0,
		PassDepth:    1.0,
		UseClimb:     true,
		CutHoles:     true,
		CutBore:      true,
		GCodeProfile: "Generic",
	}
}

// Design ties everything together for save/load.
type Design struct {
	ID        string            `json:"id" yaml:"id"`
	Name      string            `json:"name" yaml:"name"`
	CreatedAt string            `json:"created_at" yaml:"created_at"`
	Params    DriveParameters   `json:"params" yaml:"params"`
	Options   DiscOptions       `json:"options" yaml:"options"`
	Engine    EngineSettings    `json:"engine" yaml:"engine"`
	Machining MachiningSettings `json:"machining" yaml:"machining"`
}

// NewDesign returns a design populated with defaults.
func NewDesign() Design {
	return Design{
		ID:        uuid.New().String()[:8],
		Name:      "Untitled",
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Params:    DefaultParameters(),
		Options:   DefaultDiscOptions(),
		Engine:    DefaultEngineSettings(),
		Machining: DefaultMachiningSettings(),
	}
}

// PhaseDeg returns the phase between disc 1 and disc 2 in degrees: the manual
// override when set, otherwise 180/lobes.
func (d Design) PhaseDeg() float64 {
	if d.Options.PhaseDeg != nil {
		return *d.Options.PhaseDeg
	}
	return AutoPhaseDeg(d.Params.RingPinCount)
}

// WantedGap returns the minimum ring gap the guard policy aims for.
func (d Design) WantedGap() float64 {
	if d.Options.ExactGeometry {
		return 0
	}
	return SafeGap
}

// AutoPhaseDeg returns 180/lobes, or 0 when there are no lobes.
func AutoPhaseDeg(ringPinCount int) float64 {
	lobes := ringPinCount - 1
	if lobes <= 0 {
		return 0
	}
	return 180.0 / float64(lobes)
}
