package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/CycloDisc/internal/model"
	"github.com/piwi3910/CycloDisc/internal/project"
)

// showSettingsDialog displays the application settings editor. The defaults
// apply to new designs; the open design is not changed.
func (a *App) showSettingsDialog() {
	cfg := a.config

	// Helper to create a float entry bound to a pointer
	floatEntry := func(val *float64) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(formatNumber(*val))
		e.OnChanged = func(text string) {
			if v, err := parseNumber(text); err == nil {
				*val = v
			}
		}
		return e
	}

	intEntry := func(val *int) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf("%d", *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.Atoi(text); err == nil {
				*val = v
			}
		}
		return e
	}

	// GCode profile selector
	profileSelect := widget.NewSelect(model.GetProfileNames(), func(selected string) {
		cfg.DefaultGCodeProfile = selected
	})
	profileSelect.SetSelected(cfg.DefaultGCodeProfile)

	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	unitNames := make([]string, len(model.Units))
	for i, u := range model.Units {
		unitNames[i] = string(u)
	}
	unitSelect := widget.NewSelect(unitNames, func(selected string) {
		if u, err := model.ParseUnit(selected); err == nil {
			cfg.InputUnit = u
		}
	})
	unitSelect.SetSelected(string(cfg.InputUnit))

	modeSelect := widget.NewSelect([]string{string(model.SamplingAdaptive), string(model.SamplingUniform)}, func(s string) {
		cfg.DefaultSamplingMode = model.SamplingMode(s)
	})
	modeSelect.SetSelected(string(cfg.DefaultSamplingMode))

	guardSelect := widget.NewSelect([]string{string(model.GuardNone), string(model.GuardIterative)}, func(s string) {
		cfg.DefaultGuardPolicy = model.GuardPolicy(s)
	})
	guardSelect.SetSelected(string(cfg.DefaultGuardPolicy))

	exactCheck := widget.NewCheck("", func(b bool) { cfg.DefaultExact = b })
	exactCheck.SetChecked(cfg.DefaultExact)

	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("Input Unit", unitSelect),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Default Sampling", modeSelect),
		widget.NewFormItem("Default Max Segment (mm)", floatEntry(&cfg.DefaultMaxSegment)),
		widget.NewFormItem("Default Max Depth", intEntry(&cfg.DefaultMaxDepth)),
		widget.NewFormItem("Default Guard Policy", guardSelect),
		widget.NewFormItem("Exact Geometry by Default", exactCheck),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Default Tool Diameter (mm)", floatEntry(&cfg.DefaultToolDiameter)),
		widget.NewFormItem("Default Feed Rate (mm/min)", floatEntry(&cfg.DefaultFeedRate)),
		widget.NewFormItem("Default Plunge Rate (mm/min)", floatEntry(&cfg.DefaultPlungeRate)),
		widget.NewFormItem("Default Spindle Speed (RPM)", intEntry(&cfg.DefaultSpindleSpeed)),
		widget.NewFormItem("Default Safe Z (mm)", floatEntry(&cfg.DefaultSafeZ)),
		widget.NewFormItem("Default Cut Depth (mm)", floatEntry(&cfg.DefaultCutDepth)),
		widget.NewFormItem("Default Pass Depth (mm)", floatEntry(&cfg.DefaultPassDepth)),
		widget.NewFormItem("Default GCode Profile", profileSelect),
	}

	d := dialog.NewForm("Settings", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			themeChanged := cfg.Theme != a.config.Theme
			unitChanged := cfg.InputUnit != a.unit
			a.config = cfg
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
				return
			}
			if themeChanged {
				a.app.Settings().SetTheme(themeForName(cfg.Theme))
			}
			if unitChanged {
				a.unit = cfg.InputUnit
				a.reloadForm()
			}
			dialog.ShowInformation("Settings Saved", "Application settings have been saved.", a.window)
		},
		a.window,
	)
	d.Resize(fyne.NewSize(500, 650))
	d.Show()
}

// showImportExportDialog displays the import/export data dialog.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			defer writer.Close()
			path := writer.URI().Path()
			backup := project.NewBackup(a.config, a.inventory, a.templates, model.CustomProfiles)
			if err := project.ExportAllData(path, backup); err != nil {
				dialog.ShowError(err, a.window)
			} else {
				dialog.ShowInformation("Export Complete",
					fmt.Sprintf("All application data exported to:\n%s", path), a.window)
			}
		}, a.window)
		d.SetFileName("cyclodisc-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		dialog.ShowConfirm("Import Data",
			"Importing data will replace your settings, tool inventory, design presets\nand custom GCode profiles.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					defer reader.Close()
					backup, err := project.ImportAllData(reader.URI().Path())
					if err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					if err := a.applyBackup(backup); err != nil {
						dialog.ShowError(fmt.Errorf("failed to save imported data: %w", err), a.window)
						return
					}
					dialog.ShowInformation("Import Complete",
						fmt.Sprintf("Data imported successfully from backup created at %s.", backup.CreatedAt), a.window)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export all application data (settings, tools, plates, presets and\ncustom GCode profiles) to a backup file, or import a previous backup."),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("Import / Export Data", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 250))
	d.Show()
}

// applyBackup replaces every persisted store with the backup contents and
// writes each one back to its default location.
func (a *App) applyBackup(backup project.BackupData) error {
	a.config = backup.Config
	a.inventory = backup.Inventory
	a.templates = backup.Templates

	existing := append([]model.GCodeProfile(nil), model.CustomProfiles...)
	for _, p := range existing {
		if err := model.RemoveCustomProfile(p.Name); err != nil {
			a.log.Warn("removing custom profile failed", "name", p.Name, "err", err)
		}
	}
	for _, p := range backup.Profiles {
		if err := model.AddCustomProfile(p); err != nil {
			a.log.Warn("skipping imported profile", "name", p.Name, "err", err)
		}
	}

	if err := a.saveConfig(); err != nil {
		return err
	}
	if err := a.saveInventory(); err != nil {
		return err
	}
	if err := project.SaveDefaultTemplates(a.templates); err != nil {
		return err
	}
	if err := project.SaveCustomProfilesToDefault(model.CustomProfiles); err != nil {
		return err
	}

	a.app.Settings().SetTheme(themeForName(a.config.Theme))
	if a.config.InputUnit != "" {
		a.unit = a.config.InputUnit
	}
	a.refreshRecentMenu()
	a.reloadForm()
	return nil
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() error {
	return project.SaveAppConfig(project.DefaultConfigPath(), a.config)
}
