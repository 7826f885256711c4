// Package export writes generated disc geometry to drawing and data formats:
// DXF, PDF drawing sheets, QR-coded design labels, PNG/SVG plots and XLSX
// coordinate tables.
package export

import (
	"fmt"
	"time"

	"github.com/piwi3910/CycloDisc/internal/engine"
)

// rgb is a drawing color shared by the PDF and plot exporters.
type rgb struct {
	R, G, B uint8
}

// discColors mirrors the color scheme used by the UI disc canvas.
var discColors = []rgb{
	{R: 33, G: 150, B: 243}, // blue
	{R: 244, G: 67, B: 54},  // red
	{R: 76, G: 175, B: 80},  // green
	{R: 156, G: 39, B: 176}, // purple
}

var (
	ringPinColor   = rgb{R: 120, G: 120, B: 120}
	outputPinColor = rgb{R: 255, G: 152, B: 0}
)

func discColor(i int) rgb { return discColors[i%len(discColors)] }

// EntityPrefix returns the "CY_hhmmss" prefix used to name exported entities.
func EntityPrefix(t time.Time) string {
	return "CY_" + t.Format("150405")
}

// Entity name suffixes for the reference geometry groups.
const (
	SuffixRingPins   = "RingPins"
	SuffixOutputPins = "OutputPins"
)

// EntityName joins a prefix and a group suffix, e.g. "CY_101500_Disc1".
func EntityName(prefix, suffix string) string {
	return fmt.Sprintf("%s_%s", prefix, suffix)
}

// bounds is an axis-aligned extent of world geometry in mm.
type bounds struct {
	minX, minY, maxX, maxY float64
}

func (b bounds) width() float64  { return b.maxX - b.minX }
func (b bounds) height() float64 { return b.maxY - b.minY }

func (b *bounds) addCircle(c engine.Circle) {
	b.minX = min(b.minX, c.Center.X-c.Radius)
	b.minY = min(b.minY, c.Center.Y-c.Radius)
	b.maxX = max(b.maxX, c.Center.X+c.Radius)
	b.maxY = max(b.maxY, c.Center.Y+c.Radius)
}

// resultBounds covers every disc profile and reference circle of res.
func resultBounds(res engine.Result) (bounds, bool) {
	b := bounds{minX: 1e300, minY: 1e300, maxX: -1e300, maxY: -1e300}
	ok := false
	for _, d := range res.Discs {
		for _, p := range d.WorldProfile {
			b.addCircle(engine.Circle{Center: p})
			ok = true
		}
	}
	for _, c := range res.RingPins {
		b.addCircle(c)
		ok = true
	}
	for _, c := range res.OutputPins {
		b.addCircle(c)
		ok = true
	}
	return b, ok
}
