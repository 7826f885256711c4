package widgets

import (
	"math"

	"fyne.io/fyne/v2"

	"github.com/piwi3910/CycloDisc/internal/engine"
	"gonum.org/v1/gonum/spatial/r2"
)

// extent is a world-space bounding box in mm.
type extent struct {
	min, max r2.Vec
	ok       bool
}

func (e *extent) addPoint(p r2.Vec) {
	if !e.ok {
		e.min, e.max, e.ok = p, p, true
		return
	}
	e.min = r2.Vec{X: math.Min(e.min.X, p.X), Y: math.Min(e.min.Y, p.Y)}
	e.max = r2.Vec{X: math.Max(e.max.X, p.X), Y: math.Max(e.max.Y, p.Y)}
}

func (e *extent) addCircle(c engine.Circle) {
	e.addPoint(r2.Vec{X: c.Center.X - c.Radius, Y: c.Center.Y - c.Radius})
	e.addPoint(r2.Vec{X: c.Center.X + c.Radius, Y: c.Center.Y + c.Radius})
}

func (e *extent) addPoints(pts []r2.Vec) {
	for _, p := range pts {
		e.addPoint(p)
	}
}

// resultExtent covers every disc, hole, bore and reference pin of res.
func resultExtent(res engine.Result) extent {
	var e extent
	for _, d := range res.Discs {
		e.addPoints(d.WorldProfile)
		if d.BoreRadius > 0 {
			e.addCircle(d.Bore())
		}
		for _, h := range d.Holes() {
			e.addCircle(h)
		}
	}
	for _, c := range res.RingPins {
		e.addCircle(c)
	}
	for _, c := range res.OutputPins {
		e.addCircle(c)
	}
	return e
}

// viewTransform maps world mm onto widget pixels with Y pointing up.
type viewTransform struct {
	scale   float32
	originX float32 // pixel x of world min.X
	originY float32 // pixel y of world max.Y
	minX    float64
	maxY    float64
}

// fitView scales e uniformly into a maxW x maxH box with a pixel margin.
func fitView(e extent, maxW, maxH, margin float32) viewTransform {
	w := float32(e.max.X - e.min.X)
	h := float32(e.max.Y - e.min.Y)
	scale := float32(1)
	if w > 0 && h > 0 {
		scale = min((maxW-2*margin)/w, (maxH-2*margin)/h)
	}
	if scale <= 0 {
		scale = 1
	}
	return viewTransform{
		scale:   scale,
		originX: margin,
		originY: margin,
		minX:    e.min.X,
		maxY:    e.max.Y,
	}
}

func (v viewTransform) pos(p r2.Vec) fyne.Position {
	return fyne.NewPos(
		v.originX+float32(p.X-v.minX)*v.scale,
		v.originY+float32(v.maxY-p.Y)*v.scale,
	)
}

func (v viewTransform) length(mm float64) float32 {
	return float32(mm) * v.scale
}
