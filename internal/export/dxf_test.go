package export

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/CycloDisc/internal/engine"
	"github.com/piwi3910/CycloDisc/internal/importer"
)

func TestExportDXF_RoundTrip(t *testing.T) {
	res, _ := buildTestResult(t)
	path := filepath.Join(t.TempDir(), "discs.dxf")

	if err := ExportDXFWithPrefix(path, res, "CY_TEST"); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}
	assertFile(t, path, 1000)

	back := importer.ImportDXF(path)
	if len(back.Errors) > 0 {
		t.Fatalf("re-import errors: %v", back.Errors)
	}

	if n := len(back.OnLayer("CY_TEST_RingPins")); n != 9 {
		t.Errorf("expected 9 ring pins, got %d", n)
	}
	if n := len(back.OnLayer("CY_TEST_OutputPins")); n != 9 {
		t.Errorf("expected 9 output pins, got %d", n)
	}

	for _, disc := range res.Discs {
		outlines := back.OnLayer("CY_TEST_" + disc.Suffix)
		// Profile, bore and nine holes.
		if len(outlines) != 11 {
			t.Fatalf("%s: expected 11 outlines, got %d", disc.Suffix, len(outlines))
		}
		var profile *importer.DXFOutline
		circles := 0
		for i := range outlines {
			if outlines[i].Circle {
				circles++
			} else {
				profile = &outlines[i]
			}
		}
		if circles != 10 || profile == nil {
			t.Fatalf("%s: expected 10 circles and a profile, got %d circles", disc.Suffix, circles)
		}
		if len(profile.Outline) != len(disc.WorldProfile) {
			t.Errorf("%s: expected %d profile points, got %d", disc.Suffix, len(disc.WorldProfile), len(profile.Outline))
		}
		if dev := engine.MaxDeviation(profile.Points(), disc.WorldProfile); dev > 1e-5 {
			t.Errorf("%s: re-imported profile deviates by %g mm", disc.Suffix, dev)
		}
	}
}

func TestExportDXF_WithoutReferencePins(t *testing.T) {
	_, d := buildTestResult(t)
	d.Options.DrawRingPins = false
	d.Options.DrawOutputPins = false
	d.Options.Dual = false
	res, err := engine.GenerateDesign(d)
	if err != nil {
		t.Fatalf("GenerateDesign returned error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "single.dxf")
	if err := ExportDXFWithPrefix(path, res, "CY_X"); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}

	back := importer.ImportDXF(path)
	if len(back.Outlines) != 11 {
		t.Errorf("expected 11 outlines for one disc, got %d", len(back.Outlines))
	}
	if len(back.OnLayer("CY_X_RingPins")) != 0 {
		t.Error("expected no ring pin layer")
	}
}

func TestExportDXF_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.dxf")
	if err := ExportDXF(path, engine.Result{}); err == nil {
		t.Error("expected error for empty result")
	}
}
