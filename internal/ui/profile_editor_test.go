package ui

import (
	"strings"
	"testing"

	"github.com/piwi3910/CycloDisc/internal/engine"
	"github.com/piwi3910/CycloDisc/internal/model"
)

func TestProfilePreview_RendersCurrentDisc(t *testing.T) {
	d := model.NewDesign()
	res, err := engine.GenerateDesign(d)
	if err != nil {
		t.Fatalf("GenerateDesign: %v", err)
	}

	p := model.GetProfile("Mach3")
	p.Name = "Shop Mach3"
	got := profilePreview(&res, d, 1, p)

	for _, want := range []string{
		"( Profile: Shop Mach3)",
		"CycloDisc GCode, Disc2_phase22.50",
		"--- Bore: center",
		"--- Hole 9: center",
		"shows 6 of",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("preview is missing %q", want)
		}
	}
	if strings.Contains(got, "Pass 2/") {
		t.Error("preview should cut a single pass")
	}

	// Out-of-range disc falls back to the first one.
	if got := profilePreview(&res, d, 7, p); !strings.Contains(got, "GCode, Disc1") {
		t.Error("expected the first disc for an out-of-range index")
	}
}

func TestProfilePreview_NoResult(t *testing.T) {
	got := profilePreview(nil, model.NewDesign(), 0, model.GetProfile("Grbl"))
	if !strings.Contains(got, "Generate a valid design") {
		t.Errorf("unexpected preview without a result: %q", got)
	}
}

func TestProfilePreview_ToolError(t *testing.T) {
	d := model.NewDesign()
	res, err := engine.GenerateDesign(d)
	if err != nil {
		t.Fatalf("GenerateDesign: %v", err)
	}
	d.Machining.ToolDiameter = 0
	if got := profilePreview(&res, d, 0, model.GetProfile("Grbl")); !strings.HasPrefix(got, "Preview unavailable") {
		t.Errorf("expected an unavailable preview, got %q", got)
	}
}

func TestProfileIssues(t *testing.T) {
	for _, p := range model.GCodeProfiles {
		if issues := profileIssues(p); len(issues) != 0 {
			t.Errorf("built-in %s has issues: %v", p.Name, issues)
		}
	}

	p := model.GetProfile("Grbl")
	p.Name = " "
	p.ArcCCW = ""
	p.DecimalPlaces = 12
	p.SpindleStart = "M3"
	issues := profileIssues(p)
	if len(issues) != 4 {
		t.Fatalf("expected 4 issues, got %v", issues)
	}
	if !strings.Contains(issues[2], "arc") {
		t.Errorf("expected the arc issue third, got %q", issues[2])
	}
}

func TestCopyProfile_OwnsCodeSlices(t *testing.T) {
	src := model.GetProfile("LinuxCNC")
	dup := copyProfile(src, "Mill 2", "Based on LinuxCNC")
	dup.StartCode[0] = "G91"
	dup.EndCode = append(dup.EndCode, "M30")

	if src.StartCode[0] != "G90" {
		t.Error("editing the copy changed the source start code")
	}
	if model.GetProfile("LinuxCNC").StartCode[0] != "G90" {
		t.Error("editing the copy changed the built-in profile")
	}
	if dup.Name != "Mill 2" || dup.ArcCW != src.ArcCW {
		t.Errorf("unexpected copy %+v", dup)
	}
}

func TestProfileFileName(t *testing.T) {
	if got := profileFileName(" Shop Mach3 "); got != "shop_mach3_profile.json" {
		t.Errorf("got %q", got)
	}
}

func TestSplitLines(t *testing.T) {
	got := splitLines("G90\n\n  G21 \n")
	if len(got) != 2 || got[0] != "G90" || got[1] != "G21" {
		t.Errorf("got %q", got)
	}
}
