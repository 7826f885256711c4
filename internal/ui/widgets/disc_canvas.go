package widgets

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/CycloDisc/internal/engine"
	"gonum.org/v1/gonum/spatial/r2"
)

// Disc colors, cycled per placed disc.
var discColors = []color.NRGBA{
	{R: 33, G: 150, B: 243, A: 230}, // blue
	{R: 244, G: 67, B: 54, A: 230},  // red
	{R: 76, G: 175, B: 80, A: 230},  // green
	{R: 156, G: 39, B: 176, A: 230}, // purple
}

var (
	colorBackground = color.NRGBA{R: 250, G: 250, B: 246, A: 255}
	colorFrame      = color.NRGBA{R: 120, G: 120, B: 120, A: 255}
	colorRingPin    = color.NRGBA{R: 0, G: 150, B: 170, A: 220}
	colorOutputPin  = color.NRGBA{R: 200, G: 150, B: 0, A: 220}
	colorCenter     = color.NRGBA{R: 90, G: 90, B: 90, A: 200}
)

const (
	canvasMargin    = 12
	centerMarkPx    = 5
	profileStrokePx = 1.5
)

// DiscCanvas draws the placed discs with their holes and bores on top of
// the ring pins and output pins.
type DiscCanvas struct {
	widget.BaseWidget
	result    *engine.Result
	message   string
	maxWidth  float32
	maxHeight float32
}

// NewDiscCanvas creates an empty canvas that fits drawings into maxW x maxH.
func NewDiscCanvas(maxW, maxH float32) *DiscCanvas {
	dc := &DiscCanvas{
		message:   "No geometry yet.",
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	dc.ExtendBaseWidget(dc)
	return dc
}

// SetResult replaces the drawn geometry. A nil result clears the canvas.
func (dc *DiscCanvas) SetResult(res *engine.Result) {
	dc.result = res
	dc.Refresh()
}

// SetMessage sets the text shown while there is no result.
func (dc *DiscCanvas) SetMessage(msg string) {
	dc.message = msg
	dc.Refresh()
}

func (dc *DiscCanvas) CreateRenderer() fyne.WidgetRenderer {
	r := &discCanvasRenderer{dc: dc}
	r.rebuild()
	return r
}

type discCanvasRenderer struct {
	dc      *DiscCanvas
	objects []fyne.CanvasObject
}

func (r *discCanvasRenderer) rebuild() {
	r.objects = nil
	dc := r.dc

	bg := canvas.NewRectangle(colorBackground)
	bg.StrokeColor = colorFrame
	bg.StrokeWidth = 1
	bg.Resize(fyne.NewSize(dc.maxWidth, dc.maxHeight))
	r.objects = append(r.objects, bg)

	if dc.result == nil || len(dc.result.Discs) == 0 {
		msg := canvas.NewText(dc.message, colorFrame)
		msg.TextSize = 12
		msg.Move(fyne.NewPos(canvasMargin, canvasMargin))
		r.objects = append(r.objects, msg)
		return
	}

	res := dc.result
	view := fitView(resultExtent(*res), dc.maxWidth, dc.maxHeight, canvasMargin)

	for _, c := range res.RingPins {
		r.addCircle(view, c, colorRingPin, 1)
	}
	for _, c := range res.OutputPins {
		r.addCircle(view, c, colorOutputPin, 1)
	}

	for i, d := range res.Discs {
		col := discColors[i%len(discColors)]
		r.addPolygon(view, d.WorldProfile, col)
		if d.BoreRadius > 0 {
			r.addCircle(view, d.Bore(), col, 1)
		}
		for _, h := range d.Holes() {
			r.addCircle(view, h, col, 1)
		}
		r.addCenterMark(view, d.Placement.Center)

		label := canvas.NewText(d.Suffix, col)
		label.TextSize = 11
		label.TextStyle = fyne.TextStyle{Bold: true}
		label.Move(fyne.NewPos(canvasMargin, canvasMargin+float32(i)*14))
		r.objects = append(r.objects, label)
	}
}

// addPolygon draws a closed polyline.
func (r *discCanvasRenderer) addPolygon(view viewTransform, pts []r2.Vec, col color.Color) {
	for i := range pts {
		line := canvas.NewLine(col)
		line.StrokeWidth = profileStrokePx
		line.Position1 = view.pos(pts[i])
		line.Position2 = view.pos(pts[(i+1)%len(pts)])
		r.objects = append(r.objects, line)
	}
}

func (r *discCanvasRenderer) addCircle(view viewTransform, c engine.Circle, col color.Color, stroke float32) {
	circle := canvas.NewCircle(color.Transparent)
	circle.StrokeColor = col
	circle.StrokeWidth = stroke
	rad := view.length(c.Radius)
	center := view.pos(c.Center)
	circle.Move(fyne.NewPos(center.X-rad, center.Y-rad))
	circle.Resize(fyne.NewSize(2*rad, 2*rad))
	r.objects = append(r.objects, circle)
}

func (r *discCanvasRenderer) addCenterMark(view viewTransform, c r2.Vec) {
	p := view.pos(c)
	h := canvas.NewLine(colorCenter)
	h.Position1 = fyne.NewPos(p.X-centerMarkPx, p.Y)
	h.Position2 = fyne.NewPos(p.X+centerMarkPx, p.Y)
	v := canvas.NewLine(colorCenter)
	v.Position1 = fyne.NewPos(p.X, p.Y-centerMarkPx)
	v.Position2 = fyne.NewPos(p.X, p.Y+centerMarkPx)
	r.objects = append(r.objects, h, v)
}

func (r *discCanvasRenderer) Layout(size fyne.Size)        {}
func (r *discCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *discCanvasRenderer) Destroy()                     {}
func (r *discCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *discCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(r.dc.maxWidth, r.dc.maxHeight)
}
