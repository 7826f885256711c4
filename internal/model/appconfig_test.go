package model

import "testing"

func TestDefaultAppConfigMatchesDefaults(t *testing.T) {
	cfg := DefaultAppConfig()
	m := DefaultMachiningSettings()
	e := DefaultEngineSettings()

	if cfg.DefaultToolDiameter != m.ToolDiameter {
		t.Errorf("ToolDiameter mismatch: config=%f settings=%f", cfg.DefaultToolDiameter, m.ToolDiameter)
	}
	if cfg.DefaultGCodeProfile != m.GCodeProfile {
		t.Errorf("GCodeProfile mismatch: config=%s settings=%s", cfg.DefaultGCodeProfile, m.GCodeProfile)
	}
	if cfg.DefaultSamplingMode != e.Mode {
		t.Errorf("SamplingMode mismatch: config=%s settings=%s", cfg.DefaultSamplingMode, e.Mode)
	}
	if cfg.InputUnit != UnitMM {
		t.Errorf("expected mm input unit, got %s", cfg.InputUnit)
	}
	if cfg.RecentDesigns == nil {
		t.Error("RecentDesigns should not be nil")
	}
}

func TestApplyToDesign(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultToolDiameter = 2.0
	cfg.DefaultGCodeProfile = "Grbl"
	cfg.DefaultSamplingMode = SamplingUniform
	cfg.DefaultGuardPolicy = GuardIterative
	cfg.DefaultExact = true

	d := NewDesign()
	cfg.ApplyToDesign(&d)

	if d.Machining.ToolDiameter != 2.0 {
		t.Errorf("expected ToolDiameter=2.0, got %f", d.Machining.ToolDiameter)
	}
	if d.Machining.GCodeProfile != "Grbl" {
		t.Errorf("expected GCodeProfile=Grbl, got %s", d.Machining.GCodeProfile)
	}
	if d.Engine.Mode != SamplingUniform {
		t.Errorf("expected uniform sampling, got %s", d.Engine.Mode)
	}
	if d.Engine.GuardPolicy != GuardIterative {
		t.Errorf("expected iterative guard, got %s", d.Engine.GuardPolicy)
	}
	if !d.Options.ExactGeometry {
		t.Error("expected exact geometry")
	}
}

func TestAddRecent(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecent("a.cyclo", 2)
	cfg.AddRecent("b.cyclo", 2)
	cfg.AddRecent("a.cyclo", 2)
	cfg.AddRecent("c.cyclo", 2)

	if len(cfg.RecentDesigns) != 2 {
		t.Fatalf("expected 2 recent designs, got %d", len(cfg.RecentDesigns))
	}
	if cfg.RecentDesigns[0] != "c.cyclo" || cfg.RecentDesigns[1] != "a.cyclo" {
		t.Errorf("unexpected order %v", cfg.RecentDesigns)
	}
}
