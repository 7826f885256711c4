// Package importer reads batch parameter sets from CSV and Excel files and
// disc outlines back from DXF drawings. CSV import detects the delimiter
// and maps columns by case-insensitive header aliases.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/CycloDisc/internal/engine"
	"github.com/piwi3910/CycloDisc/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Designs  []model.Design
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
// -1 means the column is absent and the default applies.
type ColumnMapping struct {
	Name         int
	Pins         int
	PCD          int
	PinDiameter  int
	Eccentricity int
	Clearance    int
	Density      int
	Holes        int
	OutputPin    int
	OutputPCD    int
	HoleExtra    int
	Bore         int
	Phase        int
	Exact        int
	Unit         int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"name":         {"name", "label", "design", "description", "desc"},
	"pins":         {"pins", "n", "ring_pin_count", "ring pins", "pin count", "ring_pins"},
	"pcd":          {"pcd", "ring_pcd", "ring pcd", "pitch diameter"},
	"pin_diameter": {"pin_d", "pin diameter", "ring_pin_diameter", "pin_dia", "pin ø", "pin"},
	"eccentricity": {"e", "ecc", "eccentricity"},
	"clearance":    {"clearance", "c", "roller_clearance", "roller clearance"},
	"density":      {"density", "samples", "samples_per_lobe", "spl"},
	"holes":        {"holes", "output_holes", "output_hole_count", "hole count"},
	"output_pin":   {"out_pin_d", "output_pin_diameter", "output pin", "out pin"},
	"output_pcd":   {"out_pcd", "output_pcd", "output pcd"},
	"hole_extra":   {"hole_extra", "hole_extra_diameter", "extra"},
	"bore":         {"bore", "bore_d", "bore_diameter"},
	"phase":        {"phase", "phase_deg"},
	"exact":        {"exact", "exact_geometry"},
	"unit":         {"unit", "units"},
}

// slot returns the mapping field for a canonical role.
func (m *ColumnMapping) slot(role string) *int {
	switch role {
	case "name":
		return &m.Name
	case "pins":
		return &m.Pins
	case "pcd":
		return &m.PCD
	case "pin_diameter":
		return &m.PinDiameter
	case "eccentricity":
		return &m.Eccentricity
	case "clearance":
		return &m.Clearance
	case "density":
		return &m.Density
	case "holes":
		return &m.Holes
	case "output_pin":
		return &m.OutputPin
	case "output_pcd":
		return &m.OutputPCD
	case "hole_extra":
		return &m.HoleExtra
	case "bore":
		return &m.Bore
	case "phase":
		return &m.Phase
	case "exact":
		return &m.Exact
	case "unit":
		return &m.Unit
	}
	return nil
}

func emptyMapping() ColumnMapping {
	return ColumnMapping{-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1}
}

// positionalMapping is used for header-less files:
// name, pins, pcd, pin diameter, eccentricity, clearance, density.
func positionalMapping() ColumnMapping {
	m := emptyMapping()
	m.Name, m.Pins, m.PCD, m.PinDiameter, m.Eccentricity, m.Clearance, m.Density = 0, 1, 2, 3, 4, 5, 6
	return m
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping and false if no known column name was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := emptyMapping()

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				if s := mapping.slot(role); *s == -1 {
					*s = i
				}
			}
		}
	}

	if !isHeader {
		return positionalMapping(), false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// rowParser accumulates the first error for one row.
type rowParser struct {
	row      []string
	label    string
	unit     model.Unit
	err      string
	warnings []string
}

// length parses a length cell in the row's unit and stores it in mm.
func (rp *rowParser) length(idx int, field string, dst *float64) {
	var v float64
	if getCell(rp.row, idx) == "" {
		return
	}
	rp.float(idx, field, &v)
	if rp.err == "" {
		*dst = rp.unit.ToMM(v)
	}
}

func (rp *rowParser) float(idx int, field string, dst *float64) {
	s := getCell(rp.row, idx)
	if s == "" || rp.err != "" {
		return
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		rp.err = fmt.Sprintf("%s: Invalid %s '%s'", rp.label, field, s)
		return
	}
	*dst = v
}

func (rp *rowParser) int(idx int, field string, dst *int) {
	s := getCell(rp.row, idx)
	if s == "" || rp.err != "" {
		return
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		rp.err = fmt.Sprintf("%s: Invalid %s '%s'", rp.label, field, s)
		return
	}
	*dst = v
}

func (rp *rowParser) require(idx int, field string) {
	if rp.err == "" && getCell(rp.row, idx) == "" {
		rp.err = fmt.Sprintf("%s: Missing %s value", rp.label, field)
	}
}

// parseBool accepts the usual spreadsheet spellings.
func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "x", "on":
		return true, true
	case "", "0", "false", "no", "n", "-", "off":
		return false, true
	}
	return false, false
}

// parseRow extracts a Design from a row using the given column mapping.
// Returns the design, any error message, and any warning messages.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, designCount int) (model.Design, string, []string) {
	rp := &rowParser{row: row, label: rowLabel, unit: model.UnitMM}
	d := model.NewDesign()

	if s := getCell(row, mapping.Unit); s != "" {
		u, err := model.ParseUnit(s)
		if err != nil {
			return model.Design{}, fmt.Sprintf("%s: %v", rowLabel, err), nil
		}
		rp.unit = u
	}

	d.Name = getCell(row, mapping.Name)
	if d.Name == "" {
		d.Name = fmt.Sprintf("Design %d", designCount+1)
	}

	rp.require(mapping.Pins, "pin count")
	rp.require(mapping.PCD, "PCD")
	rp.require(mapping.PinDiameter, "pin diameter")
	rp.require(mapping.Eccentricity, "eccentricity")

	rp.int(mapping.Pins, "pin count", &d.Params.RingPinCount)
	rp.length(mapping.PCD, "PCD", &d.Params.RingPCD)
	rp.length(mapping.PinDiameter, "pin diameter", &d.Params.RingPinDiameter)
	rp.length(mapping.Eccentricity, "eccentricity", &d.Params.Eccentricity)
	rp.length(mapping.Clearance, "clearance", &d.Params.RollerClearance)
	rp.int(mapping.Density, "density", &d.Params.SamplesPerLobe)
	rp.int(mapping.Holes, "hole count", &d.Options.OutputHoleCount)
	rp.length(mapping.OutputPin, "output pin diameter", &d.Options.OutputPinDiameter)
	rp.length(mapping.OutputPCD, "output PCD", &d.Options.OutputPCD)
	rp.length(mapping.HoleExtra, "hole extra", &d.Options.HoleExtraDiameter)
	rp.length(mapping.Bore, "bore diameter", &d.Options.BoreDiameter)
	if rp.err != "" {
		return model.Design{}, rp.err, nil
	}

	if s := getCell(row, mapping.Phase); s != "" && !strings.EqualFold(s, "auto") {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return model.Design{}, fmt.Sprintf("%s: Invalid phase '%s'", rowLabel, s), nil
		}
		d.Options.PhaseDeg = model.ManualPhase(v)
	}

	if s := getCell(row, mapping.Exact); s != "" {
		exact, ok := parseBool(s)
		if !ok {
			rp.warnings = append(rp.warnings, fmt.Sprintf("%s: Unknown exact flag '%s', defaulting to safe mode", rowLabel, s))
		}
		d.Options.ExactGeometry = exact
	}

	if n := d.Params.SamplesPerLobe; n < model.MinSamplesPerLobe || n > model.MaxSamplesPerLobe {
		clamped := min(max(n, model.MinSamplesPerLobe), model.MaxSamplesPerLobe)
		rp.warnings = append(rp.warnings, fmt.Sprintf("%s: Density %d clamped to %d", rowLabel, n, clamped))
		d.Params.SamplesPerLobe = clamped
	}

	if v := engine.ValidateParameters(d.Params); !v.OK {
		return model.Design{}, fmt.Sprintf("%s: %s", rowLabel, v.Message), nil
	}

	return d, "", rp.warnings
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports parameter sets from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports parameter sets from a CSV reader with a specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports parameter sets from the first sheet of an .xlsx file.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into a design.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Pins == -1 {
			missing = append(missing, "Pins")
		}
		if mapping.PCD == -1 {
			missing = append(missing, "PCD")
		}
		if mapping.PinDiameter == -1 {
			missing = append(missing, "Pin diameter")
		}
		if mapping.Eccentricity == -1 {
			missing = append(missing, "Eccentricity")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 2 {
		// An unrecognized header still has a non-numeric pin count column.
		if _, err := strconv.Atoi(strings.TrimSpace(rows[0][1])); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		d, errMsg, warnings := parseRow(row, mapping, rowLabel, len(result.Designs))

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)
		result.Designs = append(result.Designs, d)
	}

	return result
}
