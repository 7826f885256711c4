package widgets

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/CycloDisc/internal/engine"
	"github.com/piwi3910/CycloDisc/internal/gcode"
	"gonum.org/v1/gonum/spatial/r2"
)

// Toolpath colors for different move types.
var (
	colorRapid   = color.NRGBA{R: 255, G: 60, B: 60, A: 200}   // Red for rapid moves
	colorFeed    = color.NRGBA{R: 30, G: 120, B: 255, A: 230}  // Blue for cutting moves
	colorPlunge  = color.NRGBA{R: 50, G: 200, B: 50, A: 220}   // Green for plunge
	colorRetract = color.NRGBA{R: 180, G: 180, B: 0, A: 180}   // Yellow for retract
	colorPart    = color.NRGBA{R: 120, G: 120, B: 120, A: 160} // Finished disc outline
)

// GCodePreview is a custom Fyne widget that renders a visual preview
// of GCode toolpath movements overlaid on the finished disc outline.
type GCodePreview struct {
	widget.BaseWidget
	moves     []gcode.GCodeMove
	disc      engine.PlacedDisc
	maxWidth  float32
	maxHeight float32
}

// NewGCodePreview creates a new GCode preview widget.
func NewGCodePreview(moves []gcode.GCodeMove, disc engine.PlacedDisc, maxW, maxH float32) *GCodePreview {
	gp := &GCodePreview{
		moves:     moves,
		disc:      disc,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	gp.ExtendBaseWidget(gp)
	return gp
}

// CreateRenderer implements fyne.Widget.
func (gp *GCodePreview) CreateRenderer() fyne.WidgetRenderer {
	r := &gcodePreviewRenderer{gp: gp}
	r.rebuild()
	return r
}

type gcodePreviewRenderer struct {
	gp      *GCodePreview
	objects []fyne.CanvasObject
}

// previewExtent covers the disc outline and every cutting move.
func (gp *GCodePreview) previewExtent() extent {
	var e extent
	e.addPoints(gp.disc.WorldProfile)
	if minX, minY, maxX, maxY, ok := gcode.Bounds(gp.moves); ok {
		e.addPoint(r2.Vec{X: minX, Y: minY})
		e.addPoint(r2.Vec{X: maxX, Y: maxY})
	}
	return e
}

func (r *gcodePreviewRenderer) rebuild() {
	r.objects = nil
	gp := r.gp

	bg := canvas.NewRectangle(colorBackground)
	bg.Resize(fyne.NewSize(gp.maxWidth, gp.maxHeight))
	r.objects = append(r.objects, bg)

	e := gp.previewExtent()
	if !e.ok {
		return
	}
	view := fitView(e, gp.maxWidth, gp.maxHeight, canvasMargin)

	pts := gp.disc.WorldProfile
	for i := range pts {
		line := canvas.NewLine(colorPart)
		line.StrokeWidth = 1
		line.Position1 = view.pos(pts[i])
		line.Position2 = view.pos(pts[(i+1)%len(pts)])
		r.objects = append(r.objects, line)
	}

	for _, m := range gp.moves {
		from := view.pos(r2.Vec{X: m.FromX, Y: m.FromY})
		to := view.pos(r2.Vec{X: m.ToX, Y: m.ToY})

		// Z-only moves are drawn as markers, not lines.
		xyDist := math.Hypot(m.ToX-m.FromX, m.ToY-m.FromY)

		switch m.Type {
		case gcode.MoveRapid:
			if xyDist < 0.01 {
				continue
			}
			line := canvas.NewLine(colorRapid)
			line.StrokeWidth = 1
			line.Position1 = from
			line.Position2 = to
			r.objects = append(r.objects, line)
			r.drawDashedOverlay(from, to)

		case gcode.MoveFeed:
			if xyDist < 0.001 {
				continue
			}
			line := canvas.NewLine(colorFeed)
			line.StrokeWidth = 2
			line.Position1 = from
			line.Position2 = to
			r.objects = append(r.objects, line)

		case gcode.MovePlunge:
			r.addMarker(from, colorPlunge, 4)

		case gcode.MoveRetract:
			if xyDist < 0.01 {
				r.addMarker(from, colorRetract, 3)
			} else {
				line := canvas.NewLine(colorRetract)
				line.StrokeWidth = 1
				line.Position1 = from
				line.Position2 = to
				r.objects = append(r.objects, line)
			}
		}
	}
}

func (r *gcodePreviewRenderer) addMarker(at fyne.Position, col color.Color, size float32) {
	marker := canvas.NewCircle(col)
	marker.Resize(fyne.NewSize(size, size))
	marker.Move(fyne.NewPos(at.X-size/2, at.Y-size/2))
	r.objects = append(r.objects, marker)
}

// drawDashedOverlay adds alternating gaps along a rapid move line for dashed appearance.
func (r *gcodePreviewRenderer) drawDashedOverlay(from, to fyne.Position) {
	dx := to.X - from.X
	dy := to.Y - from.Y
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length < 8 {
		return
	}

	dashLen := float32(6)
	gapLen := float32(4)
	nx := dx / length
	ny := dy / length

	cursor := dashLen
	for cursor+gapLen < length {
		gap := canvas.NewLine(colorBackground)
		gap.StrokeWidth = 2.5
		gap.Position1 = fyne.NewPos(from.X+nx*cursor, from.Y+ny*cursor)
		gap.Position2 = fyne.NewPos(from.X+nx*(cursor+gapLen), from.Y+ny*(cursor+gapLen))
		r.objects = append(r.objects, gap)

		cursor += dashLen + gapLen
	}
}

func (r *gcodePreviewRenderer) Layout(size fyne.Size)        {}
func (r *gcodePreviewRenderer) Refresh()                     { r.rebuild() }
func (r *gcodePreviewRenderer) Destroy()                     {}
func (r *gcodePreviewRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *gcodePreviewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(r.gp.maxWidth, r.gp.maxHeight)
}

// RenderGCodePreview creates a complete preview panel for one disc's GCode
// output, including the toolpath visualization and a color legend.
func RenderGCodePreview(disc engine.PlacedDisc, gcodeStr string) fyne.CanvasObject {
	moves := gcode.ParseGCode(gcodeStr)
	preview := NewGCodePreview(moves, disc, 640, 440)

	legendItem := func(text string, col color.Color) fyne.CanvasObject {
		t := canvas.NewText(text, col)
		t.TextSize = 11
		t.TextStyle = fyne.TextStyle{Bold: true}
		return t
	}
	legend := container.NewHBox(
		legendItem("Rapid", colorRapid),
		legendItem("Cut", colorFeed),
		legendItem("Plunge", colorPlunge),
		legendItem("Retract", colorRetract),
		legendItem("Disc outline", colorPart),
	)

	return container.NewBorder(nil, legend, nil, nil, container.NewCenter(preview))
}
