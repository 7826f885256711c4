package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/CycloDisc/internal/engine"
	"github.com/piwi3910/CycloDisc/internal/gcode"
	"github.com/piwi3910/CycloDisc/internal/model"
)

// Outputs selects the files WriteDesign produces.
type Outputs struct {
	DXF   bool
	PDF   bool
	PNG   bool
	SVG   bool
	XLSX  bool
	GCode bool
}

// Any reports whether at least one output is selected.
func (o Outputs) Any() bool {
	return o.DXF || o.PDF || o.PNG || o.SVG || o.XLSX || o.GCode
}

// FileBase turns a design name into a file name stem. Characters outside
// letters, digits, '-' and '_' become underscores.
func FileBase(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	s := strings.Trim(b.String(), "_")
	if s == "" {
		return "disc"
	}
	return s
}

// WriteDesign writes the selected outputs for an already generated result
// into dir as base.dxf, base.pdf and so on. G-code is written per disc as
// base_<suffix>.nc. It returns the written paths in a stable order.
func WriteDesign(dir, base string, d model.Design, res engine.Result, out Outputs) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var files []string
	write := func(ext string, fn func(path string) error) error {
		path := filepath.Join(dir, base+ext)
		if err := fn(path); err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		files = append(files, path)
		return nil
	}

	if out.DXF {
		if err := write(".dxf", func(p string) error { return ExportDXF(p, res) }); err != nil {
			return files, err
		}
	}
	if out.PDF {
		if err := write(".pdf", func(p string) error { return ExportPDF(p, res, d) }); err != nil {
			return files, err
		}
	}
	if out.PNG {
		if err := write(".png", func(p string) error { return ExportPlot(p, res, d.Name) }); err != nil {
			return files, err
		}
	}
	if out.SVG {
		if err := write(".svg", func(p string) error { return ExportPlot(p, res, d.Name) }); err != nil {
			return files, err
		}
	}
	if out.XLSX {
		if err := write(".xlsx", func(p string) error { return ExportCoordinates(p, res) }); err != nil {
			return files, err
		}
	}
	if out.GCode {
		codes, err := gcode.NewForDesign(d).GenerateAll(res)
		if err != nil {
			return files, fmt.Errorf("gcode: %w", err)
		}
		for i, code := range codes {
			name := fmt.Sprintf("%s_%s.nc", base, res.Discs[i].Suffix)
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, []byte(code), 0644); err != nil {
				return files, fmt.Errorf("%s: %w", name, err)
			}
			files = append(files, path)
		}
	}
	return files, nil
}

// BatchResult is the outcome for one design of a batch run.
type BatchResult struct {
	Design   model.Design
	Files    []string
	Warnings []string
	Err      error
}

// Batch generates every design and writes its outputs into dir, running at
// most workers designs at once. A failing design is recorded in its result
// and does not stop the others; only context cancellation aborts the run.
// Results keep the order of designs.
func Batch(ctx context.Context, dir string, designs []model.Design, out Outputs, workers int) ([]BatchResult, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]BatchResult, len(designs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, d := range designs {
		i, d := i, d
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i].Design = d
			res, err := engine.GenerateDesign(d)
			if err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Warnings = res.Warnings
			base := fmt.Sprintf("%03d_%s", i+1, FileBase(d.Name))
			results[i].Files, results[i].Err = WriteDesign(dir, base, d, res, out)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
