package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/piwi3910/CycloDisc/internal/engine"
	"github.com/piwi3910/CycloDisc/internal/model"
)

// formatNumber rounds to four decimals and drops trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e4)/1e4, 'f', -1, 64)
}

// formatLength shows a millimetre value in the display unit.
func formatLength(mm float64, u model.Unit) string {
	return formatNumber(u.FromMM(mm))
}

// parseNumber accepts a decimal comma and rejects NaN and infinities.
func parseNumber(text string) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a number", text)
	}
	return v, nil
}

// parseLength reads a value typed in the display unit and returns mm.
func parseLength(text string, u model.Unit) (float64, error) {
	v, err := parseNumber(text)
	if err != nil {
		return 0, err
	}
	return u.ToMM(v), nil
}

func parseCount(text string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", text)
	}
	return v, nil
}

// unitLabel appends the display unit to a form label.
func unitLabel(base string, u model.Unit) string {
	return fmt.Sprintf("%s (%s)", base, u)
}

// diagnosticsText renders the post-generation readout shown under the preview.
func diagnosticsText(res engine.Result, fitWarnings []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Min ring gap: %.4f mm (point %d, pin %d)\n", res.Gap.Gap, res.Gap.PointIndex, res.Gap.PinIndex)
	if res.SelfIntersects {
		b.WriteString("Self-intersection: YES\n")
	} else {
		b.WriteString("Self-intersection: no\n")
	}
	fmt.Fprintf(&b, "Effective offset: %.4f mm | Guard: %.3f mm", res.DEff, res.Guard)
	if res.Iterations > 1 {
		fmt.Fprintf(&b, " after %d passes", res.Iterations)
	}
	fmt.Fprintf(&b, "\nProfile points: %d | Discs: %d", len(res.Profile), len(res.Discs))

	warnings := append(append([]string{}, res.Warnings...), fitWarnings...)
	if len(warnings) > 0 {
		b.WriteString("\n\nWarnings:")
		for _, w := range warnings {
			b.WriteString("\n- " + w)
		}
	}
	return b.String()
}

// comparisonRows formats the sampling comparison table, header first.
func comparisonRows(rows []engine.SamplingComparison, u model.Unit) [][]string {
	out := [][]string{{
		"Samples/lobe",
		"Uniform pts",
		"Adaptive pts",
		unitLabel("Max deviation", u),
		unitLabel("Longest chord", u),
	}}
	for _, r := range rows {
		out = append(out, []string{
			strconv.Itoa(r.Density),
			strconv.Itoa(r.UniformPoints),
			strconv.Itoa(r.AdaptivePoints),
			fmt.Sprintf("%.5f", u.FromMM(r.MaxDeviation)),
			fmt.Sprintf("%.4f", u.FromMM(r.MaxChord)),
		})
	}
	return out
}
