package model

import "github.com/google/uuid"

// ToolProfile represents a reusable cutting tool configuration.
type ToolProfile struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	ToolDiameter float64 `json:"tool_diameter"`
	FeedRate     float64 `json:"feed_rate"`
	PlungeRate   float64 `json:"plunge_rate"`
	SpindleSpeed int     `json:"spindle_speed"`
	PassDepth    float64 `json:"pass_depth"`
}

// NewToolProfile creates a new ToolProfile with a generated ID.
func NewToolProfile(name string, diameter, feedRate, plungeRate float64, spindleSpeed int, passDepth float64) ToolProfile {
	return ToolProfile{
		ID:           uuid.New().String()[:8],
		Name:         name,
		ToolDiameter: diameter,
		FeedRate:     feedRate,
		PlungeRate:   plungeRate,
		SpindleSpeed: spindleSpeed,
		PassDepth:    passDepth,
	}
}

// ApplyToSettings copies this tool's parameters into s.
func (tp ToolProfile) ApplyToSettings(s *MachiningSettings) {
	s.ToolDiameter = tp.ToolDiameter
	s.FeedRate = tp.FeedRate
	s.PlungeRate = tp.PlungeRate
	s.SpindleSpeed = tp.SpindleSpeed
	s.PassDepth = tp.PassDepth
}

// PlatePreset is a stock plate the discs are cut from.
type PlatePreset struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Thickness float64 `json:"thickness"`
	Material  string  `json:"material"`
}

// NewPlatePreset creates a new PlatePreset with a generated ID.
func NewPlatePreset(name string, thickness float64, material string) PlatePreset {
	return PlatePreset{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Thickness: thickness,
		Material:  material,
	}
}

// ApplyToSettings sets the cut depth to the plate thickness.
func (pp PlatePreset) ApplyToSettings(s *MachiningSettings) {
	s.CutDepth = pp.Thickness
}

// Inventory holds the user's saved tools and plate presets.
type Inventory struct {
	Tools  []ToolProfile `json:"tools"`
	Plates []PlatePreset `json:"plates"`
}

// DefaultInventory returns an inventory populated with common defaults.
func DefaultInventory() Inventory {
	return Inventory{
		Tools: []ToolProfile{
			NewToolProfile("3mm End Mill", 3.0, 600, 200, 18000, 1.0),
			NewToolProfile("2mm End Mill", 2.0, 400, 150, 20000, 0.6),
			NewToolProfile("1/8\" End Mill (3.175mm)", 3.175, 600, 200, 18000, 1.0),
			NewToolProfile("6mm End Mill", 6.0, 900, 300, 16000, 1.5),
		},
		Plates: []PlatePreset{
			NewPlatePreset("Aluminium 6mm", 6.0, "Aluminium"),
			NewPlatePreset("Aluminium 8mm", 8.0, "Aluminium"),
			NewPlatePreset("POM 6mm", 6.0, "POM"),
			NewPlatePreset("Steel 5mm", 5.0, "Steel"),
		},
	}
}

// FindToolByID returns a pointer to the tool with the given ID, or nil.
func (inv *Inventory) FindToolByID(id string) *ToolProfile {
	for i := range inv.Tools {
		if inv.Tools[i].ID == id {
			return &inv.Tools[i]
		}
	}
	return nil
}

// FindToolByName returns a pointer to the first tool with the given name, or nil.
func (inv *Inventory) FindToolByName(name string) *ToolProfile {
	for i := range inv.Tools {
		if inv.Tools[i].Name == name {
			return &inv.Tools[i]
		}
	}
	return nil
}

// FindPlateByName returns a pointer to the first plate with the given name, or nil.
func (inv *Inventory) FindPlateByName(name string) *PlatePreset {
	for i := range inv.Plates {
		if inv.Plates[i].Name == name {
			return &inv.Plates[i]
		}
	}
	return nil
}

// ToolNames returns tool names for UI dropdowns.
func (inv *Inventory) ToolNames() []string {
	names := make([]string, len(inv.Tools))
	for i, t := range inv.Tools {
		names[i] = t.Name
	}
	return names
}

// PlateNames returns plate names for UI dropdowns.
func (inv *Inventory) PlateNames() []string {
	names := make([]string, len(inv.Plates))
	for i, p := range inv.Plates {
		names[i] = p.Name
	}
	return names
}

// RemoveTool deletes a tool by ID. Returns true if found and removed.
func (inv *Inventory) RemoveTool(id string) bool {
	for i := range inv.Tools {
		if inv.Tools[i].ID == id {
			inv.Tools = append(inv.Tools[:i], inv.Tools[i+1:]...)
			return true
		}
	}
	return false
}
