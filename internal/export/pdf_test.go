package export

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/piwi3910/CycloDisc/internal/engine"
)

func TestExportPDF_CreatesFile(t *testing.T) {
	res, d := buildTestResult(t)
	path := filepath.Join(t.TempDir(), "discs.pdf")

	if err := ExportPDF(path, res, d); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertFile(t, path, 1000)
}

func TestExportPDF_EmptyResult(t *testing.T) {
	_, d := buildTestResult(t)
	path := filepath.Join(t.TempDir(), "empty.pdf")

	if err := ExportPDF(path, engine.Result{}, d); err == nil {
		t.Error("expected error for empty result")
	}
}

func TestExportPDF_WithWarnings(t *testing.T) {
	res, d := buildTestResult(t)
	res.Warnings = []string{"profile overlaps ring pin 5 by 1.1970 mm", "profile self-intersects"}
	path := filepath.Join(t.TempDir(), "warnings.pdf")

	if err := ExportPDF(path, res, d); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertFile(t, path, 1000)
}

func TestExportPDF_SingleDiscNoReferences(t *testing.T) {
	_, d := buildTestResult(t)
	d.Options.Dual = false
	d.Options.DrawRingPins = false
	d.Options.DrawOutputPins = false
	res, err := engine.GenerateDesign(d)
	if err != nil {
		t.Fatalf("GenerateDesign returned error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "single.pdf")
	if err := ExportPDF(path, res, d); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertFile(t, path, 1000)
}

func TestFitTransform(t *testing.T) {
	tr := fitTransform(bounds{minX: -50, minY: -50, maxX: 50, maxY: 50})

	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	if math.Abs(tr.scale-drawHeight/100) > 1e-12 {
		t.Errorf("expected height-limited scale %f, got %f", drawHeight/100, tr.scale)
	}
	// Top-left of the world box maps to the drawing origin.
	if math.Abs(tr.y(50)-drawAreaTop) > 1e-9 {
		t.Errorf("expected top at %f, got %f", drawAreaTop, tr.y(50))
	}
	// Centered horizontally.
	mid := (tr.x(-50) + tr.x(50)) / 2
	if math.Abs(mid-pageWidth/2) > 1e-9 {
		t.Errorf("expected horizontal center %f, got %f", pageWidth/2, mid)
	}
	// Y grows downward on the page.
	if tr.y(-50) <= tr.y(50) {
		t.Error("expected flipped Y axis")
	}
}
