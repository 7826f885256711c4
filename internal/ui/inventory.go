package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/CycloDisc/internal/model"
	"github.com/piwi3910/CycloDisc/internal/project"
)

// ─── Tool Inventory Dialog ─────────────────────────────────

func (a *App) showToolInventory() {
	toolList := container.NewVBox()
	var refreshList func()

	refreshList = func() {
		toolList.RemoveAll()

		if len(a.inventory.Tools) == 0 {
			toolList.Add(widget.NewLabel("No tool profiles defined."))
			return
		}

		header := container.NewGridWithColumns(7,
			widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Diameter", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Feed Rate", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("RPM", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabel(""),
			widget.NewLabel(""),
			widget.NewLabel(""),
		)
		toolList.Add(header)
		toolList.Add(widget.NewSeparator())

		for i := range a.inventory.Tools {
			t := a.inventory.Tools[i]
			row := container.NewGridWithColumns(7,
				widget.NewLabel(t.Name),
				widget.NewLabel(fmt.Sprintf("%.3f mm", t.ToolDiameter)),
				widget.NewLabel(fmt.Sprintf("%.0f mm/min", t.FeedRate)),
				widget.NewLabel(fmt.Sprintf("%d", t.SpindleSpeed)),
				widget.NewButton("Use", func() {
					a.applyChange("Tool: "+t.Name, func(d *model.Design) {
						t.ApplyToSettings(&d.Machining)
					})
				}),
				widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
					a.showToolDialog(t.ID, refreshList)
				}),
				widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
					a.inventory.RemoveTool(t.ID)
					a.persistInventory()
					refreshList()
				}),
			)
			toolList.Add(row)
		}
	}

	refreshList()

	addBtn := widget.NewButtonWithIcon("Add Tool Profile", theme.ContentAddIcon(), func() {
		a.showToolDialog("", refreshList)
	})

	a.showInventoryDialog("Tool Inventory", toolList, addBtn, refreshList)
}

// showToolDialog adds a tool when id is empty, otherwise edits the tool
// with that ID.
func (a *App) showToolDialog(id string, onDone func()) {
	t := model.NewToolProfile("New End Mill", 3.0, 600, 200, 18000, 1.0)
	title, confirm := "Add Tool Profile", "Add"
	if existing := a.inventory.FindToolByID(id); existing != nil {
		t = *existing
		title, confirm = "Edit Tool Profile", "Save"
	}

	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Tool profile name")
	nameEntry.SetText(t.Name)

	diameterEntry := widget.NewEntry()
	diameterEntry.SetText(formatNumber(t.ToolDiameter))

	feedEntry := widget.NewEntry()
	feedEntry.SetText(formatNumber(t.FeedRate))

	plungeEntry := widget.NewEntry()
	plungeEntry.SetText(formatNumber(t.PlungeRate))

	rpmEntry := widget.NewEntry()
	rpmEntry.SetText(fmt.Sprintf("%d", t.SpindleSpeed))

	passDepthEntry := widget.NewEntry()
	passDepthEntry.SetText(formatNumber(t.PassDepth))

	form := dialog.NewForm(title, confirm, "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Tool Diameter (mm)", diameterEntry),
			widget.NewFormItem("Feed Rate (mm/min)", feedEntry),
			widget.NewFormItem("Plunge Rate (mm/min)", plungeEntry),
			widget.NewFormItem("Spindle Speed (RPM)", rpmEntry),
			widget.NewFormItem("Pass Depth (mm)", passDepthEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			diameter, _ := parseNumber(diameterEntry.Text)
			feed, _ := parseNumber(feedEntry.Text)
			plunge, _ := parseNumber(plungeEntry.Text)
			rpm, _ := strconv.Atoi(rpmEntry.Text)
			passDepth, _ := parseNumber(passDepthEntry.Text)

			if diameter <= 0 || feed <= 0 || rpm <= 0 {
				dialog.ShowError(fmt.Errorf("diameter, feed rate, and RPM must be > 0"), a.window)
				return
			}

			t.Name = nameEntry.Text
			t.ToolDiameter = diameter
			t.FeedRate = feed
			t.PlungeRate = plunge
			t.SpindleSpeed = rpm
			t.PassDepth = passDepth

			if existing := a.inventory.FindToolByID(t.ID); existing != nil {
				*existing = t
			} else {
				a.inventory.Tools = append(a.inventory.Tools, t)
			}
			a.persistInventory()
			onDone()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(450, 420))
	form.Show()
}

// ─── Plate Presets Dialog ──────────────────────────────────

func (a *App) showPlateInventory() {
	plateList := container.NewVBox()
	var refreshList func()

	refreshList = func() {
		plateList.RemoveAll()

		if len(a.inventory.Plates) == 0 {
			plateList.Add(widget.NewLabel("No plate presets defined."))
			return
		}

		header := container.NewGridWithColumns(6,
			widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Thickness", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Material", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabel(""),
			widget.NewLabel(""),
			widget.NewLabel(""),
		)
		plateList.Add(header)
		plateList.Add(widget.NewSeparator())

		for i := range a.inventory.Plates {
			idx := i
			p := a.inventory.Plates[idx]
			row := container.NewGridWithColumns(6,
				widget.NewLabel(p.Name),
				widget.NewLabel(fmt.Sprintf("%.2f mm", p.Thickness)),
				widget.NewLabel(p.Material),
				widget.NewButton("Use", func() {
					a.applyChange("Plate: "+p.Name, func(d *model.Design) {
						p.ApplyToSettings(&d.Machining)
					})
				}),
				widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
					a.showPlateDialog(idx, refreshList)
				}),
				widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
					a.inventory.Plates = append(a.inventory.Plates[:idx], a.inventory.Plates[idx+1:]...)
					a.persistInventory()
					refreshList()
				}),
			)
			plateList.Add(row)
		}
	}

	refreshList()

	addBtn := widget.NewButtonWithIcon("Add Plate Preset", theme.ContentAddIcon(), func() {
		a.showPlateDialog(-1, refreshList)
	})

	a.showInventoryDialog("Plate Presets", plateList, addBtn, refreshList)
}

// showPlateDialog adds a plate when idx is negative, otherwise edits it.
func (a *App) showPlateDialog(idx int, onDone func()) {
	p := model.NewPlatePreset("New Plate", 6.0, "Aluminium")
	title, confirm := "Add Plate Preset", "Add"
	if idx >= 0 && idx < len(a.inventory.Plates) {
		p = a.inventory.Plates[idx]
		title, confirm = "Edit Plate Preset", "Save"
	}

	nameEntry := widget.NewEntry()
	nameEntry.SetText(p.Name)

	thicknessEntry := widget.NewEntry()
	thicknessEntry.SetText(formatNumber(p.Thickness))

	materialEntry := widget.NewEntry()
	materialEntry.SetPlaceHolder("e.g., Aluminium, POM, Steel")
	materialEntry.SetText(p.Material)

	form := dialog.NewForm(title, confirm, "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Thickness (mm)", thicknessEntry),
			widget.NewFormItem("Material", materialEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			thickness, err := parseNumber(thicknessEntry.Text)
			if err != nil || thickness <= 0 {
				dialog.ShowError(fmt.Errorf("thickness must be > 0"), a.window)
				return
			}
			p.Name = nameEntry.Text
			p.Thickness = thickness
			p.Material = materialEntry.Text
			if idx >= 0 && idx < len(a.inventory.Plates) {
				a.inventory.Plates[idx] = p
			} else {
				a.inventory.Plates = append(a.inventory.Plates, p)
			}
			a.persistInventory()
			onDone()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 300))
	form.Show()
}

// showInventoryDialog wraps a list with the shared add/import/export toolbar.
func (a *App) showInventoryDialog(title string, list *fyne.Container, addBtn *widget.Button, refreshList func()) {
	importBtn := widget.NewButtonWithIcon("Import...", theme.FolderOpenIcon(), func() {
		a.importInventory(refreshList)
	})

	exportBtn := widget.NewButtonWithIcon("Export...", theme.DocumentSaveIcon(), func() {
		a.exportInventory()
	})

	toolbar := container.NewHBox(addBtn, layout.NewSpacer(), importBtn, exportBtn)

	content := container.NewBorder(
		toolbar,
		nil, nil, nil,
		container.NewVScroll(list),
	)

	d := dialog.NewCustom(title, "Close", content, a.window)
	d.Resize(fyne.NewSize(760, 500))
	d.Show()
}

// ─── Import / Export ───────────────────────────────────────

func (a *App) importInventory(onDone func()) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		merged, err := project.ImportInventory(reader.URI().Path(), a.inventory)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}

		a.inventory = merged
		a.persistInventory()
		onDone()
		dialog.ShowInformation("Import Complete",
			fmt.Sprintf("Inventory now contains %d tools and %d plate presets.",
				len(a.inventory.Tools), len(a.inventory.Plates)),
			a.window)
	}, a.window)
}

func (a *App) exportInventory() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()

		if err := project.ExportInventory(writer.URI().Path(), a.inventory); err != nil {
			dialog.ShowError(err, a.window)
		} else {
			dialog.ShowInformation("Export Complete",
				fmt.Sprintf("Inventory exported to %s", writer.URI().Path()),
				a.window)
		}
	}, a.window)
	d.SetFileName("inventory.json")
	d.Show()
}

// saveInventory persists the current inventory to its file, resolving the
// default location when the inventory was never loaded from disk.
func (a *App) saveInventory() error {
	if a.inventoryPath == "" {
		path, err := project.DefaultInventoryPath()
		if err != nil {
			return err
		}
		a.inventoryPath = path
	}
	return project.SaveInventory(a.inventoryPath, a.inventory)
}

func (a *App) persistInventory() {
	if err := a.saveInventory(); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save inventory: %w", err), a.window)
	}
}
