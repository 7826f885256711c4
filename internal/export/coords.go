package export

import (
	"fmt"
	"math"

	"github.com/piwi3910/CycloDisc/internal/engine"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	holesSheet   = "Holes"
)

// ExportCoordinates writes an XLSX workbook with a Summary sheet, one sheet
// of profile vertices per disc (index, x, y) and a Holes sheet listing every
// bore and output hole in world coordinates.
func ExportCoordinates(path string, res engine.Result) error {
	if len(res.Discs) == 0 {
		return fmt.Errorf("no discs to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return fmt.Errorf("failed to name summary sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	sum := res.Summary
	rows := [][]interface{}{
		{"Parameter", "Value"},
		{"Ratio", sum.Ratio()},
		{"Mode", sum.Mode()},
		{"Ring pin count", res.Params.RingPinCount},
		{"Ring PCD (mm)", res.Params.RingPCD},
		{"Pin diameter (mm)", res.Params.RingPinDiameter},
		{"Eccentricity (mm)", res.Params.Eccentricity},
		{"Roller clearance (mm)", res.Params.RollerClearance},
		{"Effective offset (mm)", res.DEff},
		{"Guard (mm)", res.Guard},
		{"Min ring gap (mm)", res.MinGap()},
		{"Self-intersects", res.SelfIntersects},
		{"Phase (deg)", sum.PhaseDeg},
		{"Hole radius (mm)", sum.HoleRadius},
		{"Bore radius (mm)", sum.BoreRadius},
	}
	for _, w := range res.Warnings {
		rows = append(rows, []interface{}{"Warning", w})
	}
	if err := writeRows(f, summarySheet, rows); err != nil {
		return err
	}
	_ = f.SetCellStyle(summarySheet, "A1", "B1", bold)
	_ = f.SetColWidth(summarySheet, "A", "A", 24)

	holes := [][]interface{}{{"Disc", "Feature", "Index", "X (mm)", "Y (mm)", "Radius (mm)"}}
	for _, disc := range res.Discs {
		if err := writeProfileSheet(f, disc, bold); err != nil {
			return err
		}
		if disc.BoreRadius > 0 {
			c := disc.Bore()
			holes = append(holes, []interface{}{disc.Suffix, "bore", 0, round6(c.Center.X), round6(c.Center.Y), c.Radius})
		}
		for i, c := range disc.Holes() {
			holes = append(holes, []interface{}{disc.Suffix, "hole", i + 1, round6(c.Center.X), round6(c.Center.Y), c.Radius})
		}
	}

	if _, err := f.NewSheet(holesSheet); err != nil {
		return fmt.Errorf("failed to add holes sheet: %w", err)
	}
	if err := writeRows(f, holesSheet, holes); err != nil {
		return err
	}
	_ = f.SetCellStyle(holesSheet, "A1", "F1", bold)

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeProfileSheet(f *excelize.File, disc engine.PlacedDisc, headerStyle int) error {
	if _, err := f.NewSheet(disc.Suffix); err != nil {
		return fmt.Errorf("failed to add sheet %s: %w", disc.Suffix, err)
	}
	rows := make([][]interface{}, 0, len(disc.WorldProfile)+1)
	rows = append(rows, []interface{}{"Index", "X (mm)", "Y (mm)"})
	for i, p := range disc.WorldProfile {
		rows = append(rows, []interface{}{i, round6(p.X), round6(p.Y)})
	}
	if err := writeRows(f, disc.Suffix, rows); err != nil {
		return err
	}
	_ = f.SetCellStyle(disc.Suffix, "A1", "C1", headerStyle)
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// round6 drops float noise below a micrometre fraction.
func round6(v float64) float64 {
	r := math.Round(v*1e6) / 1e6
	if r == 0 {
		return 0
	}
	return r
}
