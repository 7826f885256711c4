package ui

import (
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/CycloDisc/internal/engine"
	"github.com/piwi3910/CycloDisc/internal/gcode"
	"github.com/piwi3910/CycloDisc/internal/model"
	"github.com/piwi3910/CycloDisc/internal/project"
	"github.com/piwi3910/CycloDisc/internal/ui/widgets"
)

const maxRecentDesigns = 10

// App holds all application state and UI references.
type App struct {
	app    fyne.App
	window fyne.Window
	log    *slog.Logger

	design     model.Design
	designPath string
	result     *engine.Result

	history    *History
	lastChange string

	config        model.AppConfig
	inventory     model.Inventory
	inventoryPath string
	templates     model.TemplateStore
	unit          model.Unit

	// loading suppresses change handlers while reloadForm copies the
	// design into the widgets.
	loading  bool
	bindings []func()

	// UI references for dynamic updates
	tabs             *container.AppTabs
	statusLabel      *widget.Label
	diagLabel        *widget.Label
	discCanvas       *widgets.DiscCanvas
	toolpathSelect   *widget.Select
	toolpathView     *fyne.Container
	comparisonView   *fyne.Container
	undoBtn, redoBtn *widget.Button
	recentMenu       *fyne.MenuItem
}

// NewApp loads the persisted preferences, inventory, presets and custom
// GCode profiles and starts with a new design built from the defaults.
func NewApp(application fyne.App, window fyne.Window, log *slog.Logger) *App {
	a := &App{
		app:     application,
		window:  window,
		log:     log,
		history: NewHistory(),
	}

	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		log.Warn("loading config failed, using defaults", "err", err)
		config = model.DefaultAppConfig()
	}
	a.config = config
	a.unit = config.InputUnit
	if a.unit == "" {
		a.unit = model.UnitMM
	}

	inv, invPath, err := project.LoadOrCreateInventory()
	if err != nil {
		log.Warn("loading inventory failed, using defaults", "err", err)
		inv = model.DefaultInventory()
	}
	a.inventory = inv
	a.inventoryPath = invPath

	templates, err := project.LoadDefaultTemplates()
	if err != nil {
		log.Warn("loading design presets failed", "err", err)
		templates = model.NewTemplateStore()
	}
	a.templates = templates

	profiles, err := project.LoadCustomProfilesFromDefault()
	if err != nil {
		log.Warn("loading custom GCode profiles failed", "err", err)
	}
	for _, p := range profiles {
		if err := model.AddCustomProfile(p); err != nil {
			log.Warn("skipping custom GCode profile", "name", p.Name, "err", err)
		}
	}

	a.design = a.newDesignFromConfig()
	a.app.Settings().SetTheme(themeForName(a.config.Theme))
	return a
}

func (a *App) newDesignFromConfig() model.Design {
	d := model.NewDesign()
	a.config.ApplyToDesign(&d)
	return d
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	a.recentMenu = fyne.NewMenuItem("Open Recent", nil)
	a.refreshRecentMenu()

	// File Menu
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Design", func() {
			a.newDesign()
		}),
		fyne.NewMenuItem("Open Design...", func() {
			a.openDesign()
		}),
		a.recentMenu,
		fyne.NewMenuItem("Save Design", func() {
			a.saveDesign()
		}),
		fyne.NewMenuItem("Save Design As...", func() {
			a.saveDesignAs()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Designs from CSV...", func() {
			a.importCSV()
		}),
		fyne.NewMenuItem("Import Designs from Excel...", func() {
			a.importExcel()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export DXF...", func() {
			a.exportDXF()
		}),
		fyne.NewMenuItem("Export PDF Drawing...", func() {
			a.exportPDF()
		}),
		fyne.NewMenuItem("Export Plot Image...", func() {
			a.exportPlot()
		}),
		fyne.NewMenuItem("Export Coordinates (XLSX)...", func() {
			a.exportCoordinates()
		}),
		fyne.NewMenuItem("Export GCode...", func() {
			a.exportGCode()
		}),
		fyne.NewMenuItem("Export Label...", func() {
			a.exportLabel()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	// Edit Menu
	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", func() {
			a.undo()
		}),
		fyne.NewMenuItem("Redo", func() {
			a.redo()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Reset to Defaults", func() {
			a.resetDesign()
		}),
	)

	// Tools Menu
	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Generate", func() {
			a.generate()
			a.tabs.SelectIndex(0)
		}),
		fyne.NewMenuItem("Compare Sampling Modes", func() {
			a.runComparison()
			a.tabs.SelectIndex(2)
		}),
		fyne.NewMenuItem("Check DXF Against Design...", func() {
			a.checkDXF()
		}),
	)

	// Admin Menu
	adminMenu := fyne.NewMenu("Admin",
		fyne.NewMenuItem("Settings...", func() {
			a.showSettingsDialog()
		}),
		fyne.NewMenuItem("Advanced Settings...", func() {
			a.showAdvancedSettings()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Tool Inventory...", func() {
			a.showToolInventory()
		}),
		fyne.NewMenuItem("Plate Presets...", func() {
			a.showPlateInventory()
		}),
		fyne.NewMenuItem("GCode Profiles...", func() {
			a.showProfileManager()
		}),
		fyne.NewMenuItem("Design Presets...", func() {
			a.showPresetsDialog()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import/Export Data...", func() {
			a.showImportExportDialog()
		}),
	)

	// Help Menu
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	mainMenu := fyne.NewMainMenu(
		fileMenu,
		editMenu,
		toolsMenu,
		adminMenu,
		helpMenu,
	)
	a.window.SetMainMenu(mainMenu)
	a.setupShortcuts()
}

func (a *App) setupShortcuts() {
	undo := &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}
	redo := &desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault}
	save := &desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault}
	a.window.Canvas().AddShortcut(undo, func(fyne.Shortcut) { a.undo() })
	a.window.Canvas().AddShortcut(redo, func(fyne.Shortcut) { a.redo() })
	a.window.Canvas().AddShortcut(save, func(fyne.Shortcut) { a.saveDesign() })
}

func (a *App) refreshRecentMenu() {
	if a.recentMenu == nil {
		return
	}
	var items []*fyne.MenuItem
	for _, path := range a.config.RecentDesigns {
		path := path
		items = append(items, fyne.NewMenuItem(path, func() {
			a.loadDesignFrom(path)
		}))
	}
	if len(items) == 0 {
		none := fyne.NewMenuItem("(none)", nil)
		none.Disabled = true
		items = append(items, none)
	}
	a.recentMenu.ChildMenu = fyne.NewMenu("", items...)
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About CycloDisc",
		"CycloDisc: Cycloidal Disc Generator\n\n"+
			"Generates cycloidal reducer disc profiles with output holes\n"+
			"and exports them as DXF, PDF, XLSX and CNC-ready GCode.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.statusLabel = widget.NewLabel("")
	a.statusLabel.Wrapping = fyne.TextWrapWord
	a.diagLabel = widget.NewLabel("")
	a.diagLabel.Wrapping = fyne.TextWrapWord

	params := a.buildParameterPanel()

	a.discCanvas = widgets.NewDiscCanvas(720, 560)
	previewTab := container.NewTabItem("Preview", container.NewScroll(a.discCanvas))
	toolpathTab := container.NewTabItem("Toolpath", a.buildToolpathPanel())
	samplingTab := container.NewTabItem("Sampling", a.buildSamplingPanel())

	a.tabs = container.NewAppTabs(previewTab, toolpathTab, samplingTab)
	a.tabs.SetTabLocation(container.TabLocationTop)
	a.tabs.OnSelected = func(item *container.TabItem) {
		if item == toolpathTab {
			a.refreshToolpath()
		}
	}

	right := container.NewBorder(
		a.buildToolbar(),
		container.NewVBox(widget.NewSeparator(), a.diagLabel),
		nil, nil,
		a.tabs,
	)
	left := container.NewBorder(
		nil,
		widget.NewCard("Status", "", a.statusLabel),
		nil, nil,
		params,
	)

	split := container.NewHSplit(left, right)
	split.Offset = 0.36

	a.reloadForm()
	a.refreshUndoButtons()
	return split
}

func (a *App) buildToolbar() fyne.CanvasObject {
	a.undoBtn = widget.NewButtonWithIcon("", theme.ContentUndoIcon(), func() { a.undo() })
	a.redoBtn = widget.NewButtonWithIcon("", theme.ContentRedoIcon(), func() { a.redo() })

	return container.NewHBox(
		newIconButtonWithTooltip(theme.MediaPlayIcon(), "Generate profile", func() { a.generate() }),
		a.undoBtn,
		a.redoBtn,
		widget.NewSeparator(),
		newIconButtonWithTooltip(theme.DocumentSaveIcon(), "Save design", func() { a.saveDesign() }),
		newIconButtonWithTooltip(theme.DownloadIcon(), "Export DXF", func() { a.exportDXF() }),
		newIconButtonWithTooltip(theme.DocumentPrintIcon(), "Export PDF drawing", func() { a.exportPDF() }),
		newIconButtonWithTooltip(theme.SearchIcon(), "Check DXF against design", func() { a.checkDXF() }),
	)
}

// ─── Generation ────────────────────────────────────────────

// generate runs the engine on the current design and refreshes every view
// that depends on the result.
func (a *App) generate() {
	res, err := engine.GenerateDesign(a.design)
	if err != nil {
		a.log.Debug("generation failed", "err", err)
		a.clearResult(err.Error())
		return
	}
	a.result = &res
	a.statusLabel.SetText(res.Summary.StatusText())
	a.discCanvas.SetResult(a.result)

	fit := gcode.FormatToolFitWarnings(gcode.CheckToolFit(res, a.design.Machining))
	a.diagLabel.SetText(diagnosticsText(res, fit))

	names := make([]string, len(res.Discs))
	for i, disc := range res.Discs {
		names[i] = disc.Suffix
	}
	a.toolpathSelect.Options = names
	if a.toolpathSelect.SelectedIndex() < 0 || a.toolpathSelect.SelectedIndex() >= len(names) {
		a.toolpathSelect.SetSelectedIndex(0)
	} else {
		a.toolpathSelect.Refresh()
	}
	if a.tabs != nil && a.tabs.SelectedIndex() == 1 {
		a.refreshToolpath()
	}
}

func (a *App) clearResult(msg string) {
	a.result = nil
	if a.discCanvas != nil {
		a.discCanvas.SetMessage(msg)
	}
	if a.diagLabel != nil {
		a.diagLabel.SetText(msg)
	}
}

// requireResult reports whether a generated result is available and tells
// the user otherwise.
func (a *App) requireResult() bool {
	if a.result == nil || len(a.result.Discs) == 0 {
		dialog.ShowInformation("Nothing to export", "The current parameters do not produce a disc. Fix the inputs first.", a.window)
		return false
	}
	return true
}

// ─── Toolpath Panel ────────────────────────────────────────

func (a *App) buildToolpathPanel() fyne.CanvasObject {
	a.toolpathView = container.NewStack(widget.NewLabel("Generate a design to preview its toolpath."))
	a.toolpathSelect = widget.NewSelect(nil, func(string) {
		a.refreshToolpath()
	})
	top := container.NewHBox(widget.NewLabel("Disc:"), a.toolpathSelect)
	return container.NewBorder(top, nil, nil, nil, container.NewScroll(a.toolpathView))
}

// refreshToolpath regenerates the GCode for the selected disc. It only runs
// while the toolpath tab is visible.
func (a *App) refreshToolpath() {
	if a.toolpathView == nil || a.result == nil || a.tabs.SelectedIndex() != 1 {
		return
	}
	idx := a.toolpathSelect.SelectedIndex()
	if idx < 0 || idx >= len(a.result.Discs) {
		return
	}
	code, err := gcode.NewForDesign(a.design).GenerateDisc(*a.result, idx)
	a.toolpathView.RemoveAll()
	if err != nil {
		a.toolpathView.Add(widget.NewLabel(fmt.Sprintf("Toolpath unavailable: %v", err)))
	} else {
		a.toolpathView.Add(widgets.RenderGCodePreview(a.result.Discs[idx], code))
	}
	a.toolpathView.Refresh()
}

// ─── Sampling Panel ────────────────────────────────────────

func (a *App) buildSamplingPanel() fyne.CanvasObject {
	a.comparisonView = container.NewStack(widget.NewLabel(
		"Compare uniform and adaptive sampling at several densities."))
	run := widget.NewButtonWithIcon("Compare", theme.ViewRefreshIcon(), func() {
		a.runComparison()
	})
	return container.NewBorder(container.NewHBox(run), nil, nil, nil, container.NewScroll(a.comparisonView))
}

func (a *App) runComparison() {
	rows, err := engine.CompareSampling(a.design.Params, a.design.Engine, engine.DefaultComparisonDensities())
	a.comparisonView.RemoveAll()
	if err != nil {
		a.comparisonView.Add(widget.NewLabel(fmt.Sprintf("Comparison failed: %v", err)))
		a.comparisonView.Refresh()
		return
	}
	table := comparisonRows(rows, a.unit)
	grid := container.NewGridWithColumns(len(table[0]))
	for i, row := range table {
		for _, cell := range row {
			lbl := widget.NewLabel(cell)
			if i == 0 {
				lbl.TextStyle = fyne.TextStyle{Bold: true}
			}
			grid.Add(lbl)
		}
	}
	a.comparisonView.Add(grid)
	a.comparisonView.Refresh()
}

// ─── Undo / Redo ───────────────────────────────────────────

func (a *App) undo() {
	snap, ok := a.history.Undo(MakeSnapshot(a.design, "current"))
	if !ok {
		return
	}
	a.restore(snap)
}

func (a *App) redo() {
	snap, ok := a.history.Redo(MakeSnapshot(a.design, "current"))
	if !ok {
		return
	}
	a.restore(snap)
}

func (a *App) restore(snap Snapshot) {
	a.design = snap.Design
	a.lastChange = ""
	a.refreshUndoButtons()
	a.reloadForm()
}

func (a *App) refreshUndoButtons() {
	if a.undoBtn == nil {
		return
	}
	if a.history.CanUndo() {
		a.undoBtn.Enable()
	} else {
		a.undoBtn.Disable()
	}
	if a.history.CanRedo() {
		a.redoBtn.Enable()
	} else {
		a.redoBtn.Disable()
	}
}

// replaceDesign swaps in a loaded or new design and clears the undo history.
func (a *App) replaceDesign(d model.Design, path string) {
	a.design = d
	a.designPath = path
	a.history.Clear()
	a.lastChange = ""
	a.refreshUndoButtons()
	a.reloadForm()
	a.updateTitle()
}

func (a *App) updateTitle() {
	title := "CycloDisc"
	if a.design.Name != "" {
		title += " - " + a.design.Name
	}
	a.window.SetTitle(title)
}

func (a *App) newDesign() {
	a.replaceDesign(a.newDesignFromConfig(), "")
}

func (a *App) resetDesign() {
	dialog.ShowConfirm("Reset Design", "Reset all parameters to their defaults?", func(ok bool) {
		if !ok {
			return
		}
		a.history.Push(MakeSnapshot(a.design, "Reset"))
		fresh := a.newDesignFromConfig()
		fresh.ID = a.design.ID
		fresh.Name = a.design.Name
		a.design = fresh
		a.lastChange = ""
		a.refreshUndoButtons()
		a.reloadForm()
	}, a.window)
}
