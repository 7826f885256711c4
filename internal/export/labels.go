package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/CycloDisc/internal/engine"
	"github.com/piwi3910/CycloDisc/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each design label's QR code: enough
// to regenerate the disc profile.
type LabelInfo struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	RingPinCount    int      `json:"n"`
	RingPCD         float64  `json:"pcd_mm"`
	RingPinDiameter float64  `json:"pin_d_mm"`
	Eccentricity    float64  `json:"e_mm"`
	RollerClearance float64  `json:"clearance_mm"`
	PhaseDeg        *float64 `json:"phase_deg,omitempty"`
	Exact           bool     `json:"exact"`
	Ratio           string   `json:"ratio"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels, one per design. Each
// label shows the design name and key dimensions next to a QR code holding
// the parameters as JSON. Labels are laid out on a standard label sheet
// format (Avery 5160 / 3 columns x 10 rows on US Letter).
func ExportLabels(path string, designs []model.Design) error {
	labels := CollectLabelInfos(designs)
	if len(labels) == 0 {
		return fmt.Errorf("no designs to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, tr, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.Name, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, tr func(string) string, x, y float64, idx int, info LabelInfo) error {
	// Draw light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d_%s", idx, info.ID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	// Place QR code on the right side of the label
	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	name := info.Name
	if pdf.GetStringWidth(name) > textW {
		for len(name) > 0 && pdf.GetStringWidth(name+"...") > textW {
			name = name[:len(name)-1]
		}
		name += "..."
	}
	pdf.CellFormat(textW, 4.5, tr(name), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("Ratio %s | N %d", info.Ratio, info.RingPinCount), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	dims := fmt.Sprintf("PCD %.2f | Pin Ø %.2f | E %.3f", info.RingPCD, info.RingPinDiameter, info.Eccentricity)
	pdf.CellFormat(textW, 3, tr(dims), "", 1, "L", false, 0, "")

	if info.Exact {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, "Exact geometry", "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)

	return nil
}

// CollectLabelInfos extracts label information from designs for use in
// testing or alternative export formats.
func CollectLabelInfos(designs []model.Design) []LabelInfo {
	var labels []LabelInfo
	for _, d := range designs {
		p := d.Params
		labels = append(labels, LabelInfo{
			ID:              d.ID,
			Name:            d.Name,
			RingPinCount:    p.RingPinCount,
			RingPCD:         p.RingPCD,
			RingPinDiameter: p.RingPinDiameter,
			Eccentricity:    p.Eccentricity,
			RollerClearance: p.RollerClearance,
			PhaseDeg:        d.Options.PhaseDeg,
			Exact:           d.Options.ExactGeometry,
			Ratio:           engine.SummarizeDesign(d).Ratio(),
		})
	}
	return labels
}

// ToParameters rebuilds the drive parameters a label encodes, using the
// default sampling density.
func (l LabelInfo) ToParameters() model.DriveParameters {
	p := model.DefaultParameters()
	p.RingPinCount = l.RingPinCount
	p.RingPCD = l.RingPCD
	p.RingPinDiameter = l.RingPinDiameter
	p.Eccentricity = l.Eccentricity
	p.RollerClearance = l.RollerClearance
	return p
}
