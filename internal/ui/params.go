package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/CycloDisc/internal/engine"
	"github.com/piwi3910/CycloDisc/internal/model"
)

// ─── Parameter Panel ───────────────────────────────────────

// applyChange records an undo snapshot and mutates the design. Consecutive
// edits of the same field share one snapshot so typing "76.5" is one step.
func (a *App) applyChange(field string, mutate func(d *model.Design)) {
	if field != a.lastChange {
		a.history.Push(MakeSnapshot(a.design, field))
		a.lastChange = field
	}
	mutate(&a.design)
	a.refreshUndoButtons()
	a.onDesignChanged()
}

// bind registers a function that copies the design into a widget. All bound
// widgets are refreshed by reloadForm after undo, load or unit changes.
func (a *App) bind(refresh func()) {
	a.bindings = append(a.bindings, refresh)
}

// reloadForm pushes the current design into every bound widget without
// triggering change handlers.
func (a *App) reloadForm() {
	a.loading = true
	for _, refresh := range a.bindings {
		refresh()
	}
	a.loading = false
	a.onDesignChanged()
}

func (a *App) inputError(field string, err error) {
	a.statusLabel.SetText(fmt.Sprintf("Invalid\n%s: %v", field, err))
}

// lengthEntry binds a millimetre field shown in the display unit.
func (a *App) lengthEntry(field string, get func(model.Design) float64, set func(*model.Design, float64)) *widget.Entry {
	e := widget.NewEntry()
	a.bind(func() { e.SetText(formatLength(get(a.design), a.unit)) })
	e.OnChanged = func(text string) {
		if a.loading {
			return
		}
		v, err := parseLength(text, a.unit)
		if err != nil {
			a.inputError(field, err)
			return
		}
		a.applyChange(field, func(d *model.Design) { set(d, v) })
	}
	return e
}

func (a *App) countEntry(field string, get func(model.Design) int, set func(*model.Design, int)) *widget.Entry {
	e := widget.NewEntry()
	a.bind(func() { e.SetText(fmt.Sprintf("%d", get(a.design))) })
	e.OnChanged = func(text string) {
		if a.loading {
			return
		}
		v, err := parseCount(text)
		if err != nil {
			a.inputError(field, err)
			return
		}
		a.applyChange(field, func(d *model.Design) { set(d, v) })
	}
	return e
}

func (a *App) boolCheck(field string, get func(model.Design) bool, set func(*model.Design, bool)) *widget.Check {
	c := widget.NewCheck(field, nil)
	a.bind(func() { c.SetChecked(get(a.design)) })
	c.OnChanged = func(b bool) {
		if a.loading {
			return
		}
		a.lastChange = ""
		a.applyChange(field, func(d *model.Design) { set(d, b) })
	}
	return c
}

// lengthRow returns a label that follows the display unit, plus its entry.
func (a *App) lengthRow(base string, entry *widget.Entry) []fyne.CanvasObject {
	label := widget.NewLabel(unitLabel(base, a.unit))
	a.bind(func() { label.SetText(unitLabel(base, a.unit)) })
	return []fyne.CanvasObject{label, entry}
}

func (a *App) buildParameterPanel() fyne.CanvasObject {
	a.bindings = nil

	// Unit selector
	unitNames := make([]string, len(model.Units))
	for i, u := range model.Units {
		unitNames[i] = string(u)
	}
	unitSelect := widget.NewSelect(unitNames, func(selected string) {
		u, err := model.ParseUnit(selected)
		if err != nil || u == a.unit {
			return
		}
		a.unit = u
		a.config.InputUnit = u
		if err := a.saveConfig(); err != nil {
			a.log.Warn("saving unit preference failed", "err", err)
		}
		a.reloadForm()
	})
	unitSelect.SetSelected(string(a.unit))

	pins := a.countEntry("Ring pins", func(d model.Design) int { return d.Params.RingPinCount },
		func(d *model.Design, v int) { d.Params.RingPinCount = v })
	pcd := a.lengthEntry("Ring PCD", func(d model.Design) float64 { return d.Params.RingPCD },
		func(d *model.Design, v float64) { d.Params.RingPCD = v })
	pinD := a.lengthEntry("Ring pin Ø", func(d model.Design) float64 { return d.Params.RingPinDiameter },
		func(d *model.Design, v float64) { d.Params.RingPinDiameter = v })
	ecc := a.lengthEntry("Eccentricity", func(d model.Design) float64 { return d.Params.Eccentricity },
		func(d *model.Design, v float64) { d.Params.Eccentricity = v })
	clearance := a.lengthEntry("Roller clearance", func(d model.Design) float64 { return d.Params.RollerClearance },
		func(d *model.Design, v float64) { d.Params.RollerClearance = v })

	// Sampling density slider
	densityLabel := widget.NewLabel("")
	density := widget.NewSlider(model.MinSamplesPerLobe, model.MaxSamplesPerLobe)
	density.Step = 10
	a.bind(func() {
		density.SetValue(float64(a.design.Params.SamplesPerLobe))
		densityLabel.SetText(fmt.Sprintf("%d / lobe", a.design.Params.SamplesPerLobe))
	})
	density.OnChanged = func(v float64) {
		densityLabel.SetText(fmt.Sprintf("%d / lobe", int(v)))
		if a.loading {
			return
		}
		a.applyChange("Sampling density", func(d *model.Design) { d.Params.SamplesPerLobe = int(v) })
	}

	driveCard := widget.NewCard("Drive", "", container.NewVBox(
		container.NewGridWithColumns(2,
			widget.NewLabel("Input unit"), unitSelect,
			widget.NewLabel("Ring pins (N)"), pins,
		),
		container.NewGridWithColumns(2, a.lengthRow("Ring PCD", pcd)...),
		container.NewGridWithColumns(2, a.lengthRow("Ring pin Ø", pinD)...),
		container.NewGridWithColumns(2, a.lengthRow("Eccentricity (E)", ecc)...),
		container.NewGridWithColumns(2, a.lengthRow("Roller clearance", clearance)...),
		container.NewGridWithColumns(2,
			widget.NewLabel("Sampling density"), container.NewBorder(nil, nil, nil, densityLabel, density),
		),
	))

	holes := a.countEntry("Output holes", func(d model.Design) int { return d.Options.OutputHoleCount },
		func(d *model.Design, v int) { d.Options.OutputHoleCount = v })
	outPinD := a.lengthEntry("Output pin Ø", func(d model.Design) float64 { return d.Options.OutputPinDiameter },
		func(d *model.Design, v float64) { d.Options.OutputPinDiameter = v })
	outPCD := a.lengthEntry("Output PCD", func(d model.Design) float64 { return d.Options.OutputPCD },
		func(d *model.Design, v float64) { d.Options.OutputPCD = v })
	holeExtra := a.lengthEntry("Hole extra Ø", func(d model.Design) float64 { return d.Options.HoleExtraDiameter },
		func(d *model.Design, v float64) { d.Options.HoleExtraDiameter = v })
	bore := a.lengthEntry("Bore Ø", func(d model.Design) float64 { return d.Options.BoreDiameter },
		func(d *model.Design, v float64) { d.Options.BoreDiameter = v })

	holesCard := widget.NewCard("Output Holes", "", container.NewVBox(
		container.NewGridWithColumns(2, widget.NewLabel("Hole count"), holes),
		container.NewGridWithColumns(2, a.lengthRow("Output pin Ø", outPinD)...),
		container.NewGridWithColumns(2, a.lengthRow("Output PCD", outPCD)...),
		container.NewGridWithColumns(2, a.lengthRow("Hole extra Ø", holeExtra)...),
		container.NewGridWithColumns(2, a.lengthRow("Center bore Ø", bore)...),
	))

	return container.NewVScroll(container.NewVBox(
		driveCard,
		holesCard,
		a.buildLayoutCard(),
		a.buildEngineCard(),
	))
}

// buildLayoutCard holds the dual-disc and phase options.
func (a *App) buildLayoutCard() fyne.CanvasObject {
	dual := a.boolCheck("Dual disc", func(d model.Design) bool { return d.Options.Dual },
		func(d *model.Design, b bool) { d.Options.Dual = b })
	opposed := a.boolCheck("Opposed eccentric", func(d model.Design) bool { return d.Options.Opposed },
		func(d *model.Design, b bool) { d.Options.Opposed = b })
	sameHoles := a.boolCheck("Holes at same world positions", func(d model.Design) bool { return d.Options.SameHolesWorld },
		func(d *model.Design, b bool) { d.Options.SameHolesWorld = b })
	exact := a.boolCheck("Exact geometry (no safe gap)", func(d model.Design) bool { return d.Options.ExactGeometry },
		func(d *model.Design, b bool) { d.Options.ExactGeometry = b })
	ringPins := a.boolCheck("Draw ring pins", func(d model.Design) bool { return d.Options.DrawRingPins },
		func(d *model.Design, b bool) { d.Options.DrawRingPins = b })
	outputPins := a.boolCheck("Draw output pins", func(d model.Design) bool { return d.Options.DrawOutputPins },
		func(d *model.Design, b bool) { d.Options.DrawOutputPins = b })

	// Phase: auto (180/lobes) or a manual angle in degrees.
	phaseEntry := widget.NewEntry()
	autoPhase := widget.NewCheck("Auto phase", nil)
	a.bind(func() {
		auto := a.design.Options.PhaseDeg == nil
		autoPhase.SetChecked(auto)
		phaseEntry.SetText(formatNumber(a.design.PhaseDeg()))
		if auto {
			phaseEntry.Disable()
		} else {
			phaseEntry.Enable()
		}
	})
	autoPhase.OnChanged = func(auto bool) {
		if a.loading {
			return
		}
		a.lastChange = ""
		a.applyChange("Phase mode", func(d *model.Design) {
			if auto {
				d.Options.PhaseDeg = nil
			} else {
				d.Options.PhaseDeg = model.ManualPhase(d.PhaseDeg())
			}
		})
		a.reloadForm()
	}
	phaseEntry.OnChanged = func(text string) {
		if a.loading || a.design.Options.PhaseDeg == nil {
			return
		}
		v, err := parseNumber(text)
		if err != nil {
			a.inputError("Phase", err)
			return
		}
		a.applyChange("Phase", func(d *model.Design) { d.Options.PhaseDeg = model.ManualPhase(v) })
	}

	return widget.NewCard("Layout", "", container.NewVBox(
		container.NewGridWithColumns(2, dual, opposed),
		sameHoles,
		container.NewGridWithColumns(2, autoPhase, container.NewBorder(nil, nil, nil, widget.NewLabel("°"), phaseEntry)),
		exact,
		container.NewGridWithColumns(2, ringPins, outputPins),
	))
}

// buildEngineCard exposes the sampling mode and guard policy. The remaining
// numeric knobs live in the advanced settings dialog.
func (a *App) buildEngineCard() fyne.CanvasObject {
	modeSelect := widget.NewSelect([]string{string(model.SamplingAdaptive), string(model.SamplingUniform)}, nil)
	a.bind(func() { modeSelect.SetSelected(string(a.design.Engine.Mode)) })
	modeSelect.OnChanged = func(s string) {
		if a.loading || model.SamplingMode(s) == a.design.Engine.Mode {
			return
		}
		a.lastChange = ""
		a.applyChange("Sampling mode", func(d *model.Design) { d.Engine.Mode = model.SamplingMode(s) })
	}

	guardSelect := widget.NewSelect([]string{string(model.GuardNone), string(model.GuardIterative)}, nil)
	a.bind(func() { guardSelect.SetSelected(string(a.design.Engine.GuardPolicy)) })
	guardSelect.OnChanged = func(s string) {
		if a.loading || model.GuardPolicy(s) == a.design.Engine.GuardPolicy {
			return
		}
		a.lastChange = ""
		a.applyChange("Guard policy", func(d *model.Design) { d.Engine.GuardPolicy = model.GuardPolicy(s) })
	}

	return widget.NewCard("Engine", "", container.NewGridWithColumns(2,
		widget.NewLabel("Sampling"), modeSelect,
		widget.NewLabel("Guard policy"), guardSelect,
	))
}

// onDesignChanged recomputes the status readout from the current snapshot
// and regenerates the preview when the parameters are valid.
func (a *App) onDesignChanged() {
	summary := engine.SummarizeDesign(a.design)
	a.statusLabel.SetText(summary.StatusText())
	if summary.Valid {
		a.generate()
	} else {
		a.clearResult(summary.Message)
	}
}
