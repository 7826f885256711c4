package export

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strings"

	"github.com/piwi3910/CycloDisc/internal/engine"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// circleSegments is the polygon resolution used to plot circles.
const circleSegments = 72

// plotSize is the side length of the square plot.
const plotSize = 6 * vg.Inch

// ExportPlot renders the discs, holes and reference pins of res to a PNG or
// SVG file chosen by the path extension. Both axes span the same range so
// the discs are not distorted.
func ExportPlot(path string, res engine.Result, title string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".png" && ext != ".svg" {
		return fmt.Errorf("unsupported plot format %q (want .png or .svg)", ext)
	}
	p, err := NewPlot(res, title)
	if err != nil {
		return err
	}
	if err := p.Save(plotSize, plotSize, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}

// NewPlot builds the preview plot for res without saving it.
func NewPlot(res engine.Result, title string) (*plot.Plot, error) {
	if len(res.Discs) == 0 {
		return nil, fmt.Errorf("no discs to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x (mm)"
	p.Y.Label.Text = "y (mm)"
	p.Add(plotter.NewGrid())

	addCircles := func(circles []engine.Circle, col rgb, width vg.Length) (*plotter.Line, error) {
		var first *plotter.Line
		for _, c := range circles {
			l, err := plotter.NewLine(circleXYs(c))
			if err != nil {
				return nil, err
			}
			l.LineStyle.Color = col.color()
			l.LineStyle.Width = width
			p.Add(l)
			if first == nil {
				first = l
			}
		}
		return first, nil
	}

	if l, err := addCircles(res.RingPins, ringPinColor, vg.Points(0.75)); err != nil {
		return nil, err
	} else if l != nil {
		p.Legend.Add("ring pins", l)
	}
	if l, err := addCircles(res.OutputPins, outputPinColor, vg.Points(0.75)); err != nil {
		return nil, err
	} else if l != nil {
		p.Legend.Add("output pins", l)
	}

	for i, disc := range res.Discs {
		col := discColor(i)
		l, err := plotter.NewLine(closedXYs(disc.WorldProfile))
		if err != nil {
			return nil, err
		}
		l.LineStyle.Color = col.color()
		l.LineStyle.Width = vg.Points(1.25)
		p.Add(l)
		p.Legend.Add(disc.Suffix, l)

		if _, err := addCircles(append([]engine.Circle{disc.Bore()}, disc.Holes()...), col, vg.Points(0.75)); err != nil {
			return nil, err
		}

		center, err := plotter.NewScatter(plotter.XYs{{X: disc.Placement.Center.X, Y: disc.Placement.Center.Y}})
		if err != nil {
			return nil, err
		}
		center.GlyphStyle.Color = col.color()
		center.GlyphStyle.Shape = draw.CrossGlyph{}
		p.Add(center)
	}

	if b, ok := resultBounds(res); ok {
		equalAxes(p, b)
	}
	p.Legend.Top = true
	return p, nil
}

// equalAxes sets both axes to the same span centered on b, with a small margin.
func equalAxes(p *plot.Plot, b bounds) {
	span := math.Max(b.width(), b.height()) * 1.05
	cx := (b.minX + b.maxX) / 2
	cy := (b.minY + b.maxY) / 2
	p.X.Min, p.X.Max = cx-span/2, cx+span/2
	p.Y.Min, p.Y.Max = cy-span/2, cy+span/2
}

func closedXYs(pts engine.Profile) plotter.XYs {
	xys := make(plotter.XYs, 0, len(pts)+1)
	for _, v := range pts {
		xys = append(xys, plotter.XY{X: v.X, Y: v.Y})
	}
	if len(pts) > 0 {
		xys = append(xys, plotter.XY{X: pts[0].X, Y: pts[0].Y})
	}
	return xys
}

func circleXYs(c engine.Circle) plotter.XYs {
	xys := make(plotter.XYs, circleSegments+1)
	for i := range xys {
		a := 2 * math.Pi * float64(i) / circleSegments
		xys[i] = plotter.XY{X: c.Center.X + c.Radius*math.Cos(a), Y: c.Center.Y + c.Radius*math.Sin(a)}
	}
	return xys
}

func (c rgb) color() color.Color {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}
