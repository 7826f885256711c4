package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/CycloDisc/internal/engine"
	"github.com/piwi3910/CycloDisc/internal/model"
	"github.com/piwi3910/CycloDisc/internal/project"
)

// ─── Design Presets Dialog ─────────────────────────────────

// showPresetsDialog lists the built-in layouts followed by the user's saved
// presets. Applying a preset keeps the current machining settings.
func (a *App) showPresetsDialog() {
	builtIn := model.BuiltInTemplates()
	presetList := container.NewVBox()
	var refreshList func()

	addRow := func(t model.DesignTemplate, custom bool) {
		summary := engine.Summarize(t.Params, t.Options)
		info := fmt.Sprintf("%s | N %d | PCD %.1f mm", summary.Ratio(), t.Params.RingPinCount, t.Params.RingPCD)

		apply := widget.NewButton("Apply", func() {
			a.applyPreset(t)
		})
		var remove fyne.CanvasObject = widget.NewLabel("built-in")
		if custom {
			id := t.ID
			remove = widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
				a.templates.Remove(id)
				a.persistTemplates()
				refreshList()
			})
		}
		presetList.Add(container.NewGridWithColumns(4,
			widget.NewLabelWithStyle(t.Name, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabel(info),
			apply,
			remove,
		))
		if t.Description != "" {
			desc := widget.NewLabel(t.Description)
			desc.TextStyle = fyne.TextStyle{Italic: true}
			presetList.Add(desc)
		}
	}

	refreshList = func() {
		presetList.RemoveAll()
		for _, t := range builtIn {
			addRow(t, false)
		}
		if len(a.templates.Templates) > 0 {
			presetList.Add(widget.NewSeparator())
		}
		for _, t := range a.templates.Templates {
			addRow(t, true)
		}
		presetList.Refresh()
	}
	refreshList()

	saveBtn := widget.NewButtonWithIcon("Save Current as Preset", theme.ContentAddIcon(), func() {
		a.showSavePresetDialog(refreshList)
	})

	content := container.NewBorder(
		container.NewHBox(saveBtn, layout.NewSpacer()),
		nil, nil, nil,
		container.NewVScroll(presetList),
	)

	d := dialog.NewCustom("Design Presets", "Close", content, a.window)
	d.Resize(fyne.NewSize(720, 480))
	d.Show()
}

func (a *App) showSavePresetDialog(onDone func()) {
	nameEntry := widget.NewEntry()
	nameEntry.SetText(a.design.Name)
	descEntry := widget.NewEntry()
	descEntry.SetPlaceHolder("optional")

	form := dialog.NewForm("Save Preset", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Description", descEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			name := strings.TrimSpace(nameEntry.Text)
			if name == "" {
				dialog.ShowError(fmt.Errorf("preset name cannot be empty"), a.window)
				return
			}
			if existing := a.templates.FindByName(name); existing != nil {
				a.templates.Remove(existing.ID)
			}
			a.templates.Add(model.NewDesignTemplate(name, descEntry.Text, a.design))
			a.persistTemplates()
			onDone()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 200))
	form.Show()
}

// applyPreset replaces the drive parameters with the preset's as one undo step.
func (a *App) applyPreset(t model.DesignTemplate) {
	a.history.Push(MakeSnapshot(a.design, "Preset: "+t.Name))
	d := t.ToDesign(a.design.Name, a.design.Machining)
	d.ID = a.design.ID
	d.CreatedAt = a.design.CreatedAt
	a.design = d
	a.lastChange = ""
	a.refreshUndoButtons()
	a.reloadForm()
}

func (a *App) persistTemplates() {
	if err := project.SaveDefaultTemplates(a.templates); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save presets: %w", err), a.window)
	}
}
