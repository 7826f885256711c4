package ui

import (
	"math"
	"strings"
	"testing"

	"github.com/piwi3910/CycloDisc/internal/engine"
	"github.com/piwi3910/CycloDisc/internal/model"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{76, "76"},
		{1.8, "1.8"},
		{0.100000001, "0.1"},
		{2.99213, "2.9921"},
		{-0.5, "-0.5"},
	}
	for _, tt := range tests {
		if got := formatNumber(tt.in); got != tt.want {
			t.Errorf("formatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatLength(t *testing.T) {
	if got := formatLength(25.4, model.UnitInch); got != "1" {
		t.Errorf("expected 1 inch, got %q", got)
	}
	if got := formatLength(76, model.UnitCM); got != "7.6" {
		t.Errorf("expected 7.6 cm, got %q", got)
	}
}

func TestParseLength(t *testing.T) {
	v, err := parseLength("3", model.UnitInch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(v-76.2) > 1e-9 {
		t.Errorf("expected 76.2 mm, got %f", v)
	}

	v, err = parseLength(" 1,8 ", model.UnitMM)
	if err != nil || v != 1.8 {
		t.Errorf("decimal comma: got %f, %v", v, err)
	}

	for _, bad := range []string{"", "abc", "NaN", "Inf"} {
		if _, err := parseLength(bad, model.UnitMM); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestParseCount(t *testing.T) {
	if n, err := parseCount(" 9 "); err != nil || n != 9 {
		t.Errorf("got %d, %v", n, err)
	}
	if _, err := parseCount("9.5"); err == nil {
		t.Error("expected error for a fractional count")
	}
}

func TestUnitLabel(t *testing.T) {
	if got := unitLabel("Ring PCD", model.UnitInch); got != "Ring PCD (in)" {
		t.Errorf("unexpected label %q", got)
	}
}

func TestDiagnosticsText(t *testing.T) {
	res, err := engine.GenerateDesign(model.NewDesign())
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	text := diagnosticsText(res, nil)
	if !strings.Contains(text, "Self-intersection: no") {
		t.Errorf("expected clean intersection line, got:\n%s", text)
	}
	if strings.Contains(text, "Warnings:") {
		t.Errorf("default design should have no warnings, got:\n%s", text)
	}

	text = diagnosticsText(res, []string{"tool too large"})
	if !strings.Contains(text, "Warnings:\n- tool too large") {
		t.Errorf("expected tool fit warning, got:\n%s", text)
	}
}

func TestComparisonRows(t *testing.T) {
	rows := comparisonRows([]engine.SamplingComparison{
		{Density: 40, UniformPoints: 320, AdaptivePoints: 400, MaxDeviation: 0.0254, MaxChord: 2.54},
	}, model.UnitInch)

	if len(rows) != 2 {
		t.Fatalf("expected header plus one row, got %d", len(rows))
	}
	if rows[0][3] != "Max deviation (in)" {
		t.Errorf("unexpected header %q", rows[0][3])
	}
	if rows[1][3] != "0.00100" || rows[1][4] != "0.1000" {
		t.Errorf("expected values converted to inches, got %v", rows[1])
	}
}
