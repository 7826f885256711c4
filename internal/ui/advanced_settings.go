package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/CycloDisc/internal/model"
)

// showAdvancedSettings opens a dialog with the engine and machining settings
// that are not shown in the parameter panel. Edits apply to a copy and land
// in the design as one undo step.
func (a *App) showAdvancedSettings() {
	engineSettings := a.design.Engine
	machining := a.design.Machining
	e, s := &engineSettings, &machining

	// Helper to create a bound float entry
	floatEntry := func(val *float64) *widget.Entry {
		entry := widget.NewEntry()
		entry.SetText(formatNumber(*val))
		entry.OnChanged = func(text string) {
			if v, err := parseNumber(text); err == nil {
				*val = v
			}
		}
		return entry
	}

	intEntry := func(val *int) *widget.Entry {
		entry := widget.NewEntry()
		entry.SetText(fmt.Sprintf("%d", *val))
		entry.OnChanged = func(text string) {
			if v, err := strconv.Atoi(text); err == nil {
				*val = v
			}
		}
		return entry
	}

	check := func(val *bool) *widget.Check {
		c := widget.NewCheck("", func(b bool) { *val = b })
		c.Checked = *val
		return c
	}

	// --- Sampling ---
	samplingSection := widget.NewCard("Sampling",
		"Adaptive subdivision bounds",
		container.NewGridWithColumns(2,
			widget.NewLabel("Max Segment (mm)"), floatEntry(&e.MaxSegment),
			widget.NewLabel("Max Depth"), intEntry(&e.MaxDepth),
			widget.NewLabel("Degenerate Tangent Epsilon"), floatEntry(&e.Epsilon),
		))

	// --- Clearance Guard ---
	infeasibleSelect := widget.NewSelect(
		[]string{string(model.InfeasibleAdvisory), string(model.InfeasibleStrict)},
		func(selected string) { e.Infeasibility = model.InfeasibilityPolicy(selected) })
	infeasibleSelect.SetSelected(string(e.Infeasibility))

	guardSection := widget.NewCard("Clearance Guard",
		"Offset growth used by the iterative guard policy",
		container.NewGridWithColumns(2,
			widget.NewLabel("Guard Step (mm)"), floatEntry(&e.GuardStep),
			widget.NewLabel("Guard Max (mm)"), floatEntry(&e.GuardMax),
			widget.NewLabel("Infeasible Gap"), infeasibleSelect,
		))

	// --- GCode Profile ---
	profileSelect := widget.NewSelect(model.GetProfileNames(), func(selected string) {
		s.GCodeProfile = selected
	})
	profileSelect.SetSelected(s.GCodeProfile)

	manageProfileBtn := widget.NewButtonWithIcon("Manage Profiles", theme.SettingsIcon(), func() {
		a.showProfileManager()
	})

	profileSection := widget.NewCard("GCode Profile", "",
		container.NewGridWithColumns(2,
			widget.NewLabel("Active Profile"), container.NewBorder(nil, nil, nil, manageProfileBtn, profileSelect),
		))

	// --- Machining ---
	machiningSection := widget.NewCard("Machining", "",
		container.NewGridWithColumns(2,
			widget.NewLabel("Tool Diameter (mm)"), floatEntry(&s.ToolDiameter),
			widget.NewLabel("Feed Rate (mm/min)"), floatEntry(&s.FeedRate),
			widget.NewLabel("Plunge Rate (mm/min)"), floatEntry(&s.PlungeRate),
			widget.NewLabel("Spindle Speed (RPM)"), intEntry(&s.SpindleSpeed),
			widget.NewLabel("Safe Z (mm)"), floatEntry(&s.SafeZ),
			widget.NewLabel("Disc Thickness (mm)"), floatEntry(&s.CutDepth),
			widget.NewLabel("Pass Depth (mm)"), floatEntry(&s.PassDepth),
		))

	// --- Toolpath Features ---
	featureSection := widget.NewCard("Toolpath Features", "",
		container.NewGridWithColumns(2,
			widget.NewLabel("Climb Milling"), check(&s.UseClimb),
			widget.NewLabel("Mill Output Holes"), check(&s.CutHoles),
			widget.NewLabel("Mill Center Bore"), check(&s.CutBore),
		))

	content := container.NewVScroll(container.NewVBox(
		samplingSection,
		guardSection,
		profileSection,
		machiningSection,
		featureSection,
	))

	d := dialog.NewCustomConfirm("Advanced Settings", "Apply", "Cancel", content, func(ok bool) {
		if !ok {
			return
		}
		a.lastChange = ""
		a.applyChange("Advanced settings", func(d *model.Design) {
			d.Engine = engineSettings
			d.Machining = machining
		})
		a.reloadForm()
	}, a.window)
	d.Resize(fyne.NewSize(600, 700))
	d.Show()
}
