package model

import (
	"time"

	"github.com/google/uuid"
)

// DesignTemplate is a named, reusable drive configuration. It stores the
// parameters and layout options but not machining settings, which follow the
// user's tool inventory.
type DesignTemplate struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
	Params      DriveParameters `json:"params"`
	Options     DiscOptions     `json:"options"`
	Engine      EngineSettings  `json:"engine"`
}

// NewDesignTemplate captures d under a new name.
func NewDesignTemplate(name, description string, d Design) DesignTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return DesignTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Params:      d.Params,
		Options:     copyOptions(d.Options),
		Engine:      d.Engine,
	}
}

// ToDesign creates a fresh design from this template.
func (t DesignTemplate) ToDesign(name string, machining MachiningSettings) Design {
	d := NewDesign()
	d.Name = name
	d.Params = t.Params
	d.Options = copyOptions(t.Options)
	d.Engine = t.Engine
	d.Machining = machining
	return d
}

// copyOptions detaches the optional phase pointer.
func copyOptions(o DiscOptions) DiscOptions {
	if o.PhaseDeg != nil {
		o.PhaseDeg = ManualPhase(*o.PhaseDeg)
	}
	return o
}

// BuiltInTemplates returns a few common reducer layouts.
func BuiltInTemplates() []DesignTemplate {
	compact := NewDesign()
	compact.Params = DriveParameters{RingPinCount: 11, RingPCD: 60, RingPinDiameter: 4, Eccentricity: 1.0, RollerClearance: 0.05, SamplesPerLobe: 120}
	compact.Options.OutputHoleCount = 6
	compact.Options.OutputPinDiameter = 3
	compact.Options.OutputPCD = 34
	compact.Options.BoreDiameter = 14

	highRatio := NewDesign()
	highRatio.Params = DriveParameters{RingPinCount: 31, RingPCD: 120, RingPinDiameter: 5, Eccentricity: 1.2, RollerClearance: 0.1, SamplesPerLobe: 80}
	highRatio.Options.OutputHoleCount = 8
	highRatio.Options.OutputPinDiameter = 5
	highRatio.Options.OutputPCD = 70
	highRatio.Options.BoreDiameter = 30

	return []DesignTemplate{
		NewDesignTemplate("Standard 8:1", "9 ring pins on 76 mm PCD", NewDesign()),
		NewDesignTemplate("Compact 10:1", "11 ring pins on 60 mm PCD", compact),
		NewDesignTemplate("High ratio 30:1", "31 ring pins on 120 mm PCD", highRatio),
	}
}

// TemplateStore holds a collection of design templates.
type TemplateStore struct {
	Templates []DesignTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{Templates: []DesignTemplate{}}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t DesignTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *DesignTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *DesignTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns a list of template names for UI dropdowns.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}
