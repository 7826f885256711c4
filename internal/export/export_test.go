package export

import (
	"math"
	"os"
	"testing"
	"time"

	"github.com/piwi3910/CycloDisc/internal/engine"
	"github.com/piwi3910/CycloDisc/internal/model"
)

// buildTestResult generates the stock dual-disc design.
func buildTestResult(t *testing.T) (engine.Result, model.Design) {
	t.Helper()
	d := model.NewDesign()
	d.Name = "Stock 8:1"
	res, err := engine.GenerateDesign(d)
	if err != nil {
		t.Fatalf("GenerateDesign returned error: %v", err)
	}
	return res, d
}

// assertFile checks that path exists and holds at least minSize bytes.
func assertFile(t *testing.T, path string, minSize int64) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("file was not created: %v", err)
	}
	if info.Size() < minSize {
		t.Errorf("file seems too small: %d bytes", info.Size())
	}
}

func TestEntityPrefix(t *testing.T) {
	ts := time.Date(2026, 3, 4, 9, 5, 7, 0, time.UTC)
	if got := EntityPrefix(ts); got != "CY_090507" {
		t.Errorf("expected CY_090507, got %s", got)
	}
	if got := EntityName("CY_090507", "Disc2_phase22.50"); got != "CY_090507_Disc2_phase22.50" {
		t.Errorf("unexpected entity name %s", got)
	}
}

func TestResultBounds(t *testing.T) {
	res, _ := buildTestResult(t)
	b, ok := resultBounds(res)
	if !ok {
		t.Fatal("expected bounds")
	}
	// The extent must cover every ring pin as placed, not R + r on each side.
	pinR := res.Params.PinRadius()
	for i, c := range engine.RingPinCenters(res.Params.RingPinCount, res.Params.Radius()) {
		if c.X-pinR < b.minX-1e-9 || c.X+pinR > b.maxX+1e-9 ||
			c.Y-pinR < b.minY-1e-9 || c.Y+pinR > b.maxY+1e-9 {
			t.Errorf("ring pin %d at %+v falls outside bounds %+v", i, c, b)
		}
	}
	// N=9 puts a pin at 0 degrees but none at 270 degrees.
	want := res.Params.Radius() + pinR
	if math.Abs(b.maxX-want) > 1e-9 {
		t.Errorf("expected maxX %.3f, got %.3f", want, b.maxX)
	}
	if b.minY < -want {
		t.Errorf("minY %.3f reaches below the ring", b.minY)
	}

	if _, ok := resultBounds(engine.Result{}); ok {
		t.Error("expected no bounds for an empty result")
	}
}
