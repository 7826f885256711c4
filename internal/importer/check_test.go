package importer

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/CycloDisc/internal/engine"
	"github.com/piwi3910/CycloDisc/internal/model"
	"github.com/yofu/dxf"
)

func writeProfileDXF(t *testing.T, layer string, profile engine.Profile) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "check.dxf")

	d := dxf.NewDrawing()
	if _, err := d.AddLayer(layer, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		t.Fatalf("failed to add layer: %v", err)
	}
	verts := make([][]float64, len(profile))
	for i, p := range profile {
		verts[i] = []float64{p.X, p.Y}
	}
	if _, err := d.LwPolyline(true, verts...); err != nil {
		t.Fatalf("failed to add polyline: %v", err)
	}
	if _, err := d.Circle(0, 0, 0, 5); err != nil {
		t.Fatalf("failed to add circle: %v", err)
	}
	if err := d.SaveAs(path); err != nil {
		t.Fatalf("failed to save DXF: %v", err)
	}
	return path
}

func TestCompareDrawing(t *testing.T) {
	res, err := engine.GenerateDesign(model.NewDesign())
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(res.Discs) != 2 {
		t.Fatalf("expected 2 discs, got %d", len(res.Discs))
	}

	drawing := ImportDXF(writeProfileDXF(t, "CY_120000_Disc1", res.Discs[0].WorldProfile))
	if len(drawing.Errors) > 0 {
		t.Fatalf("import errors: %v", drawing.Errors)
	}

	reports := CompareDrawing(res, drawing)
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}

	if !reports[0].Found || reports[0].Layer != "CY_120000_Disc1" {
		t.Errorf("disc 1 should match its own layer, got %+v", reports[0])
	}
	if reports[0].Deviation > 1e-5 {
		t.Errorf("disc 1 deviation too large: %g", reports[0].Deviation)
	}

	// Disc 2 has no layer of its own and falls back to the closest outline.
	if !reports[1].Found {
		t.Fatal("disc 2 should fall back to the disc 1 outline")
	}
	if reports[1].Deviation < 0.1 {
		t.Errorf("disc 2 is rotated and shifted, expected a large deviation, got %g", reports[1].Deviation)
	}
}

func TestCompareDrawing_NoOutlines(t *testing.T) {
	res, err := engine.GenerateDesign(model.NewDesign())
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	reports := CompareDrawing(res, DXFResult{Outlines: []DXFOutline{{Layer: "Pins", Circle: true}}})
	for _, r := range reports {
		if r.Found {
			t.Errorf("circles must not be used as profiles: %+v", r)
		}
	}
}
