package model

import "testing"

func TestToolProfileApplyToSettings(t *testing.T) {
	tool := NewToolProfile("2mm", 2.0, 400, 150, 20000, 0.6)
	s := DefaultMachiningSettings()
	tool.ApplyToSettings(&s)

	if s.ToolDiameter != 2.0 || s.FeedRate != 400 || s.PlungeRate != 150 {
		t.Errorf("tool not applied: %+v", s)
	}
	if s.SpindleSpeed != 20000 || s.PassDepth != 0.6 {
		t.Errorf("tool not applied: %+v", s)
	}
	if s.CutDepth != DefaultMachiningSettings().CutDepth {
		t.Error("tool must not change the plate thickness")
	}
}

func TestPlatePresetApplyToSettings(t *testing.T) {
	plate := NewPlatePreset("POM 10mm", 10, "POM")
	s := DefaultMachiningSettings()
	plate.ApplyToSettings(&s)
	if s.CutDepth != 10 {
		t.Errorf("expected cut depth 10, got %f", s.CutDepth)
	}
}

func TestInventoryLookups(t *testing.T) {
	inv := DefaultInventory()
	if len(inv.ToolNames()) != len(inv.Tools) {
		t.Error("tool names length mismatch")
	}
	if len(inv.PlateNames()) != len(inv.Plates) {
		t.Error("plate names length mismatch")
	}

	tool := inv.FindToolByName("3mm End Mill")
	if tool == nil {
		t.Fatal("expected to find 3mm End Mill")
	}
	if inv.FindToolByID(tool.ID) == nil {
		t.Error("expected lookup by ID to succeed")
	}
	if inv.FindPlateByName("POM 6mm") == nil {
		t.Error("expected to find POM 6mm")
	}
	if inv.FindToolByName("missing") != nil {
		t.Error("expected nil for missing tool")
	}

	// tool points into the slice, which RemoveTool shifts.
	id := tool.ID
	n := len(inv.Tools)
	if !inv.RemoveTool(id) {
		t.Fatal("expected RemoveTool to succeed")
	}
	if len(inv.Tools) != n-1 {
		t.Errorf("expected %d tools, got %d", n-1, len(inv.Tools))
	}
	if inv.FindToolByID(id) != nil {
		t.Error("removed tool is still listed")
	}
	if inv.RemoveTool(id) {
		t.Error("expected second RemoveTool to fail")
	}
	if len(inv.Tools) != n-1 {
		t.Error("second RemoveTool must not remove another tool")
	}
}
