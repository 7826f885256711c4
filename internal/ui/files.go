package ui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"github.com/piwi3910/CycloDisc/internal/export"
	"github.com/piwi3910/CycloDisc/internal/gcode"
	"github.com/piwi3910/CycloDisc/internal/importer"
	"github.com/piwi3910/CycloDisc/internal/model"
	"github.com/piwi3910/CycloDisc/internal/project"
)

// ─── Design Files ──────────────────────────────────────────

func (a *App) openDesign() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.loadDesignFrom(reader.URI().Path())
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{project.DesignExt, ".json", ".yaml", ".yml"}))
	d.Show()
}

func (a *App) loadDesignFrom(path string) {
	d, err := project.LoadDesign(path)
	if err != nil {
		a.log.Error("loading design failed", "path", path, "err", err)
		dialog.ShowError(err, a.window)
		return
	}
	a.replaceDesign(d, path)
	a.rememberRecent(path)
}

// saveDesign writes to the current path, or asks for one.
func (a *App) saveDesign() {
	if a.designPath == "" {
		a.saveDesignAs()
		return
	}
	a.writeDesign(a.designPath)
}

func (a *App) saveDesignAs() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) == "" {
			path += project.DesignExt
		}
		a.writeDesign(path)
	}, a.window)
	d.SetFileName(export.FileBase(a.design.Name) + project.DesignExt)
	d.Show()
}

func (a *App) writeDesign(path string) {
	if err := project.SaveDesign(path, a.design); err != nil {
		a.log.Error("saving design failed", "path", path, "err", err)
		dialog.ShowError(err, a.window)
		return
	}
	a.designPath = path
	a.rememberRecent(path)
	a.updateTitle()
}

func (a *App) rememberRecent(path string) {
	a.config.AddRecent(path, maxRecentDesigns)
	if err := a.saveConfig(); err != nil {
		a.log.Warn("saving recent designs failed", "err", err)
	}
	a.refreshRecentMenu()
}

// ─── Exports ───────────────────────────────────────────────

// exportTo asks for a target file and runs fn on it. ext is appended when
// the chosen name has no extension.
func (a *App) exportTo(defaultName, ext string, fn func(path string) error) {
	if !a.requireResult() {
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) == "" {
			path += ext
		}
		if err := fn(path); err != nil {
			a.log.Error("export failed", "path", path, "err", err)
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}

func (a *App) exportDXF() {
	a.exportTo(export.FileBase(a.design.Name)+".dxf", ".dxf", func(path string) error {
		return export.ExportDXF(path, *a.result)
	})
}

func (a *App) exportPDF() {
	a.exportTo(export.FileBase(a.design.Name)+".pdf", ".pdf", func(path string) error {
		return export.ExportPDF(path, *a.result, a.design)
	})
}

func (a *App) exportPlot() {
	a.exportTo(export.FileBase(a.design.Name)+".png", ".png", func(path string) error {
		return export.ExportPlot(path, *a.result, a.design.Name)
	})
}

func (a *App) exportCoordinates() {
	a.exportTo(export.FileBase(a.design.Name)+".xlsx", ".xlsx", func(path string) error {
		return export.ExportCoordinates(path, *a.result)
	})
}

func (a *App) exportLabel() {
	a.exportTo(export.FileBase(a.design.Name)+"_label.pdf", ".pdf", func(path string) error {
		return export.ExportLabels(path, []model.Design{a.design})
	})
}

// exportGCode saves one program per disc. Dual designs open one save dialog
// per disc.
func (a *App) exportGCode() {
	if !a.requireResult() {
		return
	}
	codes, err := gcode.NewForDesign(a.design).GenerateAll(*a.result)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	base := export.FileBase(a.design.Name)
	for i, code := range codes {
		name := base + ".nc"
		if len(codes) > 1 {
			name = fmt.Sprintf("%s_%s.nc", base, a.result.Discs[i].Suffix)
		}
		a.saveGCodeFile(code, name)
	}
}

func (a *App) saveGCodeFile(code, defaultName string) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		if err := project.ExportGCode(writer.URI().Path(), code); err != nil {
			dialog.ShowError(err, a.window)
		} else {
			dialog.ShowInformation("Export Complete",
				fmt.Sprintf("GCode saved to %s", writer.URI().Path()), a.window)
		}
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}

// ─── Import Functions ───────────────────────────────────────

func (a *App) importCSV() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.handleImportResult(importer.ImportCSV(reader.URI().Path()))
	}, a.window)
}

func (a *App) importExcel() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.handleImportResult(importer.ImportExcel(reader.URI().Path()))
	}, a.window)
}

// handleImportResult opens a single imported design in the editor. Several
// designs are exported as a batch into a folder the user picks.
func (a *App) handleImportResult(result importer.ImportResult) {
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(errors.New(errorMsg), a.window)
	}
	if len(result.Warnings) > 0 {
		a.log.Warn("import warnings", "warnings", result.Warnings)
	}

	// Rows carry geometry only; machining and engine defaults come from the
	// settings. The exact-geometry column wins over the default.
	designs := result.Designs
	for i := range designs {
		exact := designs[i].Options.ExactGeometry
		a.config.ApplyToDesign(&designs[i])
		designs[i].Options.ExactGeometry = exact
	}

	switch len(designs) {
	case 0:
		return
	case 1:
		a.replaceDesign(designs[0], "")
		return
	}

	dialog.ShowConfirm("Batch Export",
		fmt.Sprintf("Imported %d designs.\n\nExport DXF, PDF and G-code for each into a folder?", len(designs)),
		func(ok bool) {
			if !ok {
				return
			}
			dialog.ShowFolderOpen(func(dir fyne.ListableURI, err error) {
				if err != nil || dir == nil {
					return
				}
				a.runBatch(dir.Path(), designs)
			}, a.window)
		}, a.window)
}

func (a *App) runBatch(dir string, designs []model.Design) {
	out := export.Outputs{DXF: true, PDF: true, GCode: true}
	results, err := export.Batch(context.Background(), dir, designs, out, runtime.NumCPU())
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	var failed []string
	ok := 0
	for _, r := range results {
		if r.Err != nil {
			a.log.Warn("batch design failed", "name", r.Design.Name, "err", r.Err)
			failed = append(failed, fmt.Sprintf("%s: %v", r.Design.Name, r.Err))
			continue
		}
		ok++
	}
	if err := export.ExportLabels(filepath.Join(dir, "labels.pdf"), designs); err != nil {
		failed = append(failed, fmt.Sprintf("labels: %v", err))
	}

	msg := fmt.Sprintf("Exported %d of %d designs to %s.", ok, len(designs), dir)
	if len(failed) > 0 {
		msg += "\n\nFailures:\n" + strings.Join(failed, "\n")
	}
	dialog.ShowInformation("Batch Export", msg, a.window)
}

// ─── Drawing Check ─────────────────────────────────────────

// checkDXF reads a drawing back and reports how far each generated disc is
// from the closest outline in it.
func (a *App) checkDXF() {
	if !a.requireResult() {
		return
	}
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		drawing := importer.ImportDXF(reader.URI().Path())
		if len(drawing.Errors) > 0 {
			dialog.ShowError(errors.New(strings.Join(drawing.Errors, "\n")), a.window)
			return
		}

		var b strings.Builder
		for _, r := range importer.CompareDrawing(*a.result, drawing) {
			if !r.Found {
				fmt.Fprintf(&b, "%s: no matching outline\n", r.Disc)
				continue
			}
			fmt.Fprintf(&b, "%s: max deviation %.5f %s (layer %s)\n",
				r.Disc, a.unit.FromMM(r.Deviation), a.unit, r.Layer)
		}
		for _, w := range drawing.Warnings {
			fmt.Fprintf(&b, "\n%s", w)
		}
		dialog.ShowInformation("Drawing Check", b.String(), a.window)
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".dxf"}))
	d.Show()
}
