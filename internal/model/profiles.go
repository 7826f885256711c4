package model

import "fmt"

// GCodeProfile defines a post-processor configuration for different CNC controllers.
type GCodeProfile struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Units       string `json:"units"` // "mm" or "inches"

	StartCode    []string `json:"start_code"`
	SpindleStart string   `json:"spindle_start"` // e.g. "M3 S%d"
	SpindleStop  string   `json:"spindle_stop"`
	HomeAll      string   `json:"home_all"`

	AbsoluteMode string `json:"absolute_mode"`
	FeedMode     string `json:"feed_mode"`
	RapidMove    string `json:"rapid_move"`
	FeedMove     string `json:"feed_move"`
	ArcCW        string `json:"arc_cw"`  // G2 or equivalent
	ArcCCW       string `json:"arc_ccw"` // G3 or equivalent

	EndCode []string `json:"end_code"` // "[SafeZ]" is replaced with the configured height

	CommentPrefix string `json:"comment_prefix"`
	CommentSuffix string `json:"comment_suffix"` // e.g. ")" for Fanuc-style comments

	DecimalPlaces int `json:"decimal_places"`
}

// GCodeProfiles lists the built-in post-processors.
var GCodeProfiles = []GCodeProfile{
	{
		Name:          "Grbl",
		Description:   "Grbl 1.1 (Arduino CNC shields)",
		Units:         "mm",
		StartCode:     []string{"G90", "G21", "G17"},
		SpindleStart:  "M3 S%d",
		SpindleStop:   "M5",
		HomeAll:       "$H",
		AbsoluteMode:  "G90",
		FeedMode:      "G94",
		RapidMove:     "G0",
		FeedMove:      "G1",
		ArcCW:         "G2",
		ArcCCW:        "G3",
		EndCode:       []string{"G0 Z[SafeZ]", "G0 X0 Y0", "M5", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 3,
	},
	{
		Name:          "Mach3",
		Description:   "Mach3 CNC control software",
		Units:         "mm",
		StartCode:     []string{"G90", "G21", "G17", "G94"},
		SpindleStart:  "M3 S%d",
		SpindleStop:   "M5",
		HomeAll:       "G28 X0 Y0 Z0",
		AbsoluteMode:  "G90",
		FeedMode:      "G94",
		RapidMove:     "G0",
		FeedMove:      "G1",
		ArcCW:         "G2",
		ArcCCW:        "G3",
		EndCode:       []string{"G0 Z[SafeZ]", "G28 X0 Y0", "M5", "M30"},
		CommentPrefix: "(",
		CommentSuffix: ")",
		DecimalPlaces: 4,
	},
	{
		Name:          "LinuxCNC",
		Description:   "LinuxCNC (formerly EMC2)",
		Units:         "mm",
		StartCode:     []string{"G90", "G21", "G17", "G94", "G64 P0.01"},
		SpindleStart:  "M3 S%d",
		SpindleStop:   "M5",
		HomeAll:       "G28",
		AbsoluteMode:  "G90",
		FeedMode:      "G94",
		RapidMove:     "G0",
		FeedMove:      "G1",
		ArcCW:         "G2",
		ArcCCW:        "G3",
		EndCode:       []string{"G0 Z[SafeZ]", "M5", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 4,
	},
	{
		Name:          "Generic",
		Description:   "Generic standard GCode",
		Units:         "mm",
		StartCode:     []string{"G90", "G21"},
		SpindleStart:  "M3 S%d",
		SpindleStop:   "M5",
		HomeAll:       "G28 X0 Y0 Z0",
		AbsoluteMode:  "G90",
		FeedMode:      "G94",
		RapidMove:     "G0",
		FeedMove:      "G1",
		ArcCW:         "G2",
		ArcCCW:        "G3",
		EndCode:       []string{"G0 Z[SafeZ]", "G0 X0 Y0", "M5", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 3,
	},
}

// CustomProfiles holds user-defined profiles loaded from disk.
var CustomProfiles []GCodeProfile

// AllProfiles returns built-in profiles followed by custom ones.
func AllProfiles() []GCodeProfile {
	all := make([]GCodeProfile, 0, len(GCodeProfiles)+len(CustomProfiles))
	all = append(all, GCodeProfiles...)
	return append(all, CustomProfiles...)
}

// GetProfile returns a GCode profile by name, or the Generic profile if not found.
func GetProfile(name string) GCodeProfile {
	for _, p := range AllProfiles() {
		if p.Name == name {
			return p
		}
	}
	return GCodeProfiles[len(GCodeProfiles)-1]
}

// GetProfileNames returns a list of all available profile names.
func GetProfileNames() []string {
	var names []string
	for _, p := range AllProfiles() {
		names = append(names, p.Name)
	}
	return names
}

// IsBuiltInProfile reports whether name belongs to a built-in profile.
func IsBuiltInProfile(name string) bool {
	for _, p := range GCodeProfiles {
		if p.Name == name {
			return true
		}
	}
	return false
}

// AddCustomProfile adds p, replacing any custom profile with the same name.
func AddCustomProfile(p GCodeProfile) error {
	if p.Name == "" {
		return fmt.Errorf("profile name must not be empty")
	}
	if IsBuiltInProfile(p.Name) {
		return fmt.Errorf("cannot overwrite built-in profile %q", p.Name)
	}
	for i := range CustomProfiles {
		if CustomProfiles[i].Name == p.Name {
			CustomProfiles[i] = p
			return nil
		}
	}
	CustomProfiles = append(CustomProfiles, p)
	return nil
}

// RemoveCustomProfile deletes the named custom profile.
func RemoveCustomProfile(name string) error {
	if IsBuiltInProfile(name) {
		return fmt.Errorf("cannot remove built-in profile %q", name)
	}
	for i := range CustomProfiles {
		if CustomProfiles[i].Name == name {
			CustomProfiles = append(CustomProfiles[:i], CustomProfiles[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("profile %q not found", name)
}
