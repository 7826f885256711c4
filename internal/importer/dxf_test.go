package importer

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/piwi3910/CycloDisc/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
)

func writeTestDXF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "disc.dxf")

	d := dxf.NewDrawing()
	if _, err := d.AddLayer("Disc1", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		t.Fatalf("failed to add layer: %v", err)
	}
	if _, err := d.LwPolyline(true, []float64{0, 0}, []float64{10, 0}, []float64{10, 10}, []float64{0, 10}); err != nil {
		t.Fatalf("failed to add polyline: %v", err)
	}
	if _, err := d.Circle(5, 5, 0, 2); err != nil {
		t.Fatalf("failed to add circle: %v", err)
	}

	if _, err := d.AddLayer("Disc2_phase22.50", color.Red, dxf.DefaultLineType, true); err != nil {
		t.Fatalf("failed to add layer: %v", err)
	}
	// A triangle drawn as loose lines.
	lines := [][4]float64{{20, 0, 30, 0}, {30, 0, 25, 8}, {25, 8, 20, 0}}
	for _, l := range lines {
		if _, err := d.Line(l[0], l[1], 0, l[2], l[3], 0); err != nil {
			t.Fatalf("failed to add line: %v", err)
		}
	}

	if err := d.SaveAs(path); err != nil {
		t.Fatalf("failed to save DXF: %v", err)
	}
	return path
}

func TestImportDXF_ShapesAndLayers(t *testing.T) {
	result := ImportDXF(writeTestDXF(t))

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Outlines) != 3 {
		t.Fatalf("expected 3 outlines, got %d", len(result.Outlines))
	}

	disc1 := result.OnLayer("Disc1")
	if len(disc1) != 2 {
		t.Fatalf("expected 2 outlines on Disc1, got %d", len(disc1))
	}
	if len(disc1[0].Outline) != 4 || disc1[0].Circle {
		t.Errorf("expected the square first, got %d points", len(disc1[0].Outline))
	}
	if !disc1[1].Circle || len(disc1[1].Outline) != 64 {
		t.Errorf("expected a 64-point circle, got %+v", disc1[1])
	}

	disc2 := result.OnLayer("Disc2")
	if len(disc2) != 1 || len(disc2[0].Outline) != 3 {
		t.Fatalf("expected one chained triangle on Disc2, got %+v", disc2)
	}
}

func TestImportDXF_KeepsDrawingCoordinates(t *testing.T) {
	result := ImportDXF(writeTestDXF(t))
	if len(result.Outlines) == 0 {
		t.Fatalf("no outlines: %v", result.Errors)
	}

	min, max := result.OnLayer("Disc2")[0].Outline.BoundingBox()
	if min.X != 20 || max.X != 30 || max.Y != 8 {
		t.Errorf("expected triangle bounds (20,0)-(30,8), got %+v-%+v", min, max)
	}

	pts := result.OnLayer("Disc1")[1].Points()
	for _, p := range pts {
		if r := math.Hypot(p.X-5, p.Y-5); math.Abs(r-2) > 1e-6 {
			t.Fatalf("circle point %v off radius: %f", p, r)
		}
	}
}

func TestImportDXF_FileNotFound(t *testing.T) {
	result := ImportDXF("/nonexistent/disc.dxf")
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestBulgeArcPoints_Semicircle(t *testing.T) {
	pts := bulgeArcPoints(model.Point2D{X: 0, Y: 0}, model.Point2D{X: 2, Y: 0}, 1, 8)
	if len(pts) != 9 {
		t.Fatalf("expected 9 points, got %d", len(pts))
	}
	for _, p := range pts {
		if r := math.Hypot(p.X-1, p.Y); math.Abs(r-1) > 1e-9 {
			t.Errorf("point %+v not on unit circle", p)
		}
	}
}

func TestChainSegments(t *testing.T) {
	segs := []segment{
		{start: model.Point2D{X: 0, Y: 0}, end: model.Point2D{X: 1, Y: 0}},
		{start: model.Point2D{X: 1, Y: 1}, end: model.Point2D{X: 1, Y: 0}}, // reversed
		{start: model.Point2D{X: 1, Y: 1}, end: model.Point2D{X: 0, Y: 1}},
		{start: model.Point2D{X: 0, Y: 1}, end: model.Point2D{X: 0, Y: 0.005}},
	}
	outlines := chainSegments(segs, 0.01)
	if len(outlines) != 1 {
		t.Fatalf("expected 1 outline, got %d", len(outlines))
	}
	if len(outlines[0]) != 4 {
		t.Errorf("expected 4 points after closing, got %d", len(outlines[0]))
	}
	if a := outlineArea(outlines[0]); math.Abs(a-1) > 0.01 {
		t.Errorf("expected area ~1, got %f", a)
	}
}
