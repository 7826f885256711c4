package widgets

import (
	"testing"

	"github.com/piwi3910/CycloDisc/internal/engine"
	"github.com/piwi3910/CycloDisc/internal/model"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestFitViewFlipsY(t *testing.T) {
	var e extent
	e.addPoints([]r2.Vec{{X: -10, Y: -5}, {X: 10, Y: 5}})

	v := fitView(e, 220, 120, 10)
	if v.scale != 10 {
		t.Fatalf("expected scale 10, got %f", v.scale)
	}

	topLeft := v.pos(r2.Vec{X: -10, Y: 5})
	if topLeft.X != 10 || topLeft.Y != 10 {
		t.Errorf("world (-10,5) should map to (10,10), got %v", topLeft)
	}
	bottomRight := v.pos(r2.Vec{X: 10, Y: -5})
	if bottomRight.X != 210 || bottomRight.Y != 110 {
		t.Errorf("world (10,-5) should map to (210,110), got %v", bottomRight)
	}
}

func TestFitViewDegenerateExtent(t *testing.T) {
	var e extent
	e.addPoint(r2.Vec{X: 1, Y: 1})
	if v := fitView(e, 100, 100, 5); v.scale != 1 {
		t.Errorf("expected unit scale for a point extent, got %f", v.scale)
	}
}

func TestResultExtentIncludesRingPins(t *testing.T) {
	res, err := engine.GenerateDesign(model.NewDesign())
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	e := resultExtent(res)
	if !e.ok {
		t.Fatal("expected a non-empty extent")
	}
	// The first ring pin sits at (38, 0) with a 3 mm radius.
	if e.max.X < 40.99 {
		t.Errorf("extent should reach the outer pin edge, got max %v", e.max)
	}
}
