package model

// AppConfig holds application-wide preferences and the defaults applied to new designs.
type AppConfig struct {
	// Machining defaults
	DefaultToolDiameter float64 `json:"default_tool_diameter"`
	DefaultFeedRate     float64 `json:"default_feed_rate"`
	DefaultPlungeRate   float64 `json:"default_plunge_rate"`
	DefaultSpindleSpeed int     `json:"default_spindle_speed"`
	DefaultSafeZ        float64 `json:"default_safe_z"`
	DefaultCutDepth     float64 `json:"default_cut_depth"`
	DefaultPassDepth    float64 `json:"default_pass_depth"`
	DefaultGCodeProfile string  `json:"default_gcode_profile"`

	// Engine defaults
	DefaultSamplingMode SamplingMode        `json:"default_sampling_mode"`
	DefaultMaxSegment   float64             `json:"default_max_segment"`
	DefaultMaxDepth     int                 `json:"default_max_depth"`
	DefaultGuardPolicy  GuardPolicy         `json:"default_guard_policy"`
	DefaultInfeasible   InfeasibilityPolicy `json:"default_infeasibility"`
	DefaultExact        bool                `json:"default_exact_geometry"`

	// Application preferences
	InputUnit     Unit     `json:"input_unit"`
	RecentDesigns []string `json:"recent_designs"`
	Theme         string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig matching NewDesign's defaults.
func DefaultAppConfig() AppConfig {
	m := DefaultMachiningSettings()
	e := DefaultEngineSettings()
	return AppConfig{
		DefaultToolDiameter: m.ToolDiameter,
		DefaultFeedRate:     m.FeedRate,
		DefaultPlungeRate:   m.PlungeRate,
		DefaultSpindleSpeed: m.SpindleSpeed,
		DefaultSafeZ:        m.SafeZ,
		DefaultCutDepth:     m.CutDepth,
		DefaultPassDepth:    m.PassDepth,
		DefaultGCodeProfile: m.GCodeProfile,
		DefaultSamplingMode: e.Mode,
		DefaultMaxSegment:   e.MaxSegment,
		DefaultMaxDepth:     e.MaxDepth,
		DefaultGuardPolicy:  e.GuardPolicy,
		DefaultInfeasible:   e.Infeasibility,
		InputUnit:           UnitMM,
		RecentDesigns:       []string{},
		Theme:               "system",
	}
}

// ApplyToDesign copies the configured defaults into d. It is used when creating
// a new design so it inherits the user's saved preferences.
func (c AppConfig) ApplyToDesign(d *Design) {
	d.Machining.ToolDiameter = c.DefaultToolDiameter
	d.Machining.FeedRate = c.DefaultFeedRate
	d.Machining.PlungeRate = c.DefaultPlungeRate
	d.Machining.SpindleSpeed = c.DefaultSpindleSpeed
	d.Machining.SafeZ = c.DefaultSafeZ
	d.Machining.CutDepth = c.DefaultCutDepth
	d.Machining.PassDepth = c.DefaultPassDepth
	d.Machining.GCodeProfile = c.DefaultGCodeProfile

	if c.DefaultSamplingMode != "" {
		d.Engine.Mode = c.DefaultSamplingMode
	}
	if c.DefaultMaxSegment > 0 {
		d.Engine.MaxSegment = c.DefaultMaxSegment
	}
	if c.DefaultMaxDepth > 0 {
		d.Engine.MaxDepth = c.DefaultMaxDepth
	}
	if c.DefaultGuardPolicy != "" {
		d.Engine.GuardPolicy = c.DefaultGuardPolicy
	}
	if c.DefaultInfeasible != "" {
		d.Engine.Infeasibility = c.DefaultInfeasible
	}
	d.Options.ExactGeometry = c.DefaultExact
}

// AddRecent moves path to the front of the recent designs list, keeping at most max entries.
func (c *AppConfig) AddRecent(path string, max int) {
	recent := []string{path}
	for _, p := range c.RecentDesigns {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > max {
		recent = recent[:max]
	}
	c.RecentDesigns = recent
}
