package export

import (
	"fmt"
	"math"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/CycloDisc/internal/engine"
	"github.com/piwi3910/CycloDisc/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a drawing sheet for a generated design: one A4
// landscape page with every disc fitted to the page, followed by a summary
// page with the drive parameters and diagnostics.
func ExportPDF(path string, res engine.Result, d model.Design) error {
	if len(res.Discs) == 0 {
		return fmt.Errorf("no discs to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	prefix := EntityPrefix(time.Now())

	pdf.AddPage()
	renderDrawingPage(pdf, tr, res, d, prefix)

	pdf.AddPage()
	renderSummaryPage(pdf, tr, res, d)

	return pdf.OutputFileAndClose(path)
}

// pageTransform maps world mm to page mm with the Y axis flipped.
type pageTransform struct {
	scale, originX, originY float64
	b                       bounds
}

func (t pageTransform) x(wx float64) float64 { return t.originX + (wx-t.b.minX)*t.scale }
func (t pageTransform) y(wy float64) float64 { return t.originY + (t.b.maxY-wy)*t.scale }

// fitTransform centers b inside the drawing area.
func fitTransform(b bounds) pageTransform {
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	scale := math.Min(drawWidth/b.width(), drawHeight/b.height())
	canvasW := b.width() * scale
	canvasH := b.height() * scale
	return pageTransform{
		scale:   scale,
		originX: marginLeft + (drawWidth-canvasW)/2,
		originY: drawAreaTop + (drawHeight-canvasH)/2,
		b:       b,
	}
}

// renderDrawingPage draws all discs and reference circles on the current page.
func renderDrawingPage(pdf *fpdf.Fpdf, tr func(string) string, res engine.Result, d model.Design, prefix string) {
	sum := res.Summary

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s: %s cycloidal disc (%d ring pins, PCD %.1f mm)", d.Name, sum.Ratio(), res.Params.RingPinCount, res.Params.RingPCD)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, tr(title), "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("E: %.3f mm | Pin Ø: %.3f mm | d_eff: %.3f mm | Min gap: %.3f mm | Phase: %.2f°",
		res.Params.Eccentricity, res.Params.RingPinDiameter, res.DEff, res.MinGap(), sum.PhaseDeg)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, tr(stats), "", 0, "L", false, 0, "")

	b, ok := resultBounds(res)
	if !ok || b.width() <= 0 || b.height() <= 0 {
		return
	}
	t := fitTransform(b)

	pdf.SetLineWidth(0.2)
	setDraw(pdf, ringPinColor)
	for _, c := range res.RingPins {
		pdf.Circle(t.x(c.Center.X), t.y(c.Center.Y), c.Radius*t.scale, "D")
	}
	setDraw(pdf, outputPinColor)
	for _, c := range res.OutputPins {
		pdf.Circle(t.x(c.Center.X), t.y(c.Center.Y), c.Radius*t.scale, "D")
	}

	pdf.SetLineWidth(0.35)
	for i, disc := range res.Discs {
		setDraw(pdf, discColor(i))
		pts := make([]fpdf.PointType, len(disc.WorldProfile))
		for j, p := range disc.WorldProfile {
			pts[j] = fpdf.PointType{X: t.x(p.X), Y: t.y(p.Y)}
		}
		pdf.Polygon(pts, "D")

		for _, c := range append([]engine.Circle{disc.Bore()}, disc.Holes()...) {
			if c.Radius > 0 {
				pdf.Circle(t.x(c.Center.X), t.y(c.Center.Y), c.Radius*t.scale, "D")
			}
		}
		// Center mark
		cx, cy := t.x(disc.Placement.Center.X), t.y(disc.Placement.Center.Y)
		pdf.Line(cx-1.5, cy, cx+1.5, cy)
		pdf.Line(cx, cy-1.5, cx, cy+1.5)
	}

	drawScaleAnnotation(pdf, t)
	drawLegend(pdf, tr, res, prefix, pageHeight-marginBottom-legendHeight+5)
}

func setDraw(pdf *fpdf.Fpdf, c rgb) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

// drawScaleAnnotation prints the drawing scale below the geometry.
func drawScaleAnnotation(pdf *fpdf.Fpdf, t pageTransform) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	label := fmt.Sprintf("Extent %.1f x %.1f mm, scale %.2f:1", t.b.width(), t.b.height(), t.scale)
	w := pdf.GetStringWidth(label)
	pdf.SetXY(t.originX+(t.b.width()*t.scale-w)/2, t.originY+t.b.height()*t.scale+1)
	pdf.CellFormat(w, 4, label, "", 0, "C", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
}

// drawLegend renders one swatch per entity group at the bottom of the page.
func drawLegend(pdf *fpdf.Fpdf, tr func(string) string, res engine.Result, prefix string, startY float64) {
	type entry struct {
		name string
		col  rgb
	}
	var entries []entry
	if len(res.RingPins) > 0 {
		entries = append(entries, entry{EntityName(prefix, SuffixRingPins), ringPinColor})
	}
	if len(res.OutputPins) > 0 {
		entries = append(entries, entry{EntityName(prefix, SuffixOutputPins), outputPinColor})
	}
	for i, disc := range res.Discs {
		entries = append(entries, entry{EntityName(prefix, disc.Suffix), discColor(i)})
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(20, 4, "Entities:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 22
	maxX := pageWidth - marginRight

	for _, e := range entries {
		labelW := pdf.GetStringWidth(e.name) + 6
		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(int(e.col.R), int(e.col.G), int(e.col.B))
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, tr(e.name), "", 0, "L", false, 0, "")
		xPos += labelW + 2
	}
}

// renderSummaryPage draws the parameter, diagnostics and per-disc tables.
func renderSummaryPage(pdf *fpdf.Fpdf, tr func(string) string, res engine.Result, d model.Design) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, tr(d.Name+" Summary"), "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	sum := res.Summary
	gapPin := "-"
	if res.Gap.PinIndex >= 0 {
		gapPin = fmt.Sprintf("%d", res.Gap.PinIndex)
	}

	y = renderItems(pdf, tr, "Drive Parameters", marginLeft, y, []summaryItem{
		{"Mode", sum.Mode()},
		{"Ratio", sum.Ratio()},
		{"Ring pins", fmt.Sprintf("%d on PCD %.3f mm", res.Params.RingPinCount, res.Params.RingPCD)},
		{"Pin Ø", fmt.Sprintf("%.3f mm", res.Params.RingPinDiameter)},
		{"Eccentricity", fmt.Sprintf("%.3f mm", res.Params.Eccentricity)},
		{"Roller clearance", fmt.Sprintf("%.3f mm", res.Params.RollerClearance)},
		{"Samples per lobe", fmt.Sprintf("%d", res.Params.SamplesPerLobe)},
		{"Phase", fmt.Sprintf("%.2f°", sum.PhaseDeg)},
	})

	renderItems(pdf, tr, "Diagnostics", pageWidth/2, marginTop+18, []summaryItem{
		{"Effective offset", fmt.Sprintf("%.3f mm", res.DEff)},
		{"Guard", fmt.Sprintf("%.3f mm (%d iterations)", res.Guard, res.Iterations)},
		{"Min ring gap", fmt.Sprintf("%.4f mm at pin %s", res.MinGap(), gapPin)},
		{"Self-intersection", yesNo(res.SelfIntersects)},
		{"Profile points", fmt.Sprintf("%d", len(res.Profile))},
		{"Est. disc Ø", fmt.Sprintf("%.1f mm", sum.EstimatedDiameter)},
		{"Hole r", fmt.Sprintf("%.3f mm", sum.HoleRadius)},
		{"Bore r", fmt.Sprintf("%.3f mm", sum.BoreRadius)},
	})

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Discs", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{50, 50, 35, 30, 30, 40}
	headers := []string{"Disc", "Center", "Rotation", "Points", "Holes", "Hole / Bore r"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, disc := range res.Discs {
		xPos = marginLeft
		rowData := []string{
			disc.Suffix,
			fmt.Sprintf("(%.3f, %.3f)", disc.Placement.Center.X, disc.Placement.Center.Y),
			fmt.Sprintf("%.2f°", disc.Placement.Rotation*180/math.Pi),
			fmt.Sprintf("%d", len(disc.WorldProfile)),
			fmt.Sprintf("%d", len(disc.HolesWorld)),
			fmt.Sprintf("%.3f / %.3f", disc.HoleRadius, disc.BoreRadius),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, tr(cell), "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	if len(res.Warnings) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNINGS", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, w := range res.Warnings {
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(260, 5, tr("- "+w), "", 0, "L", false, 0, "")
			y += 5
		}
	}

	y += 8
	m := d.Machining
	renderItems(pdf, tr, "Machining", marginLeft, y, []summaryItem{
		{"Tool Ø", fmt.Sprintf("%.2f mm", m.ToolDiameter)},
		{"Plate thickness", fmt.Sprintf("%.2f mm", m.CutDepth)},
		{"Pass depth", fmt.Sprintf("%.2f mm", m.PassDepth)},
		{"Feed / plunge", fmt.Sprintf("%.0f / %.0f mm/min", m.FeedRate, m.PlungeRate)},
	})

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by CycloDisc - Cycloidal Disc Generator", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

type summaryItem struct {
	label string
	value string
}

// renderItems draws a titled label/value list and returns the next free y.
func renderItems(pdf *fpdf.Fpdf, tr func(string) string, title string, x, y float64, items []summaryItem) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(x, y)
	pdf.CellFormat(100, 7, title, "", 0, "L", false, 0, "")
	y += 9

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.SetXY(x+5, y)
		pdf.CellFormat(45, 6, tr(item.label+":"), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(70, 6, tr(item.value), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}
	return y
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
