package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/CycloDisc/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultToolDiameter = 2.0
	cfg.DefaultGuardPolicy = model.GuardIterative
	cfg.InputUnit = model.UnitInch
	cfg.DefaultExact = true
	cfg.RecentDesigns = []string{"/tmp/a.cyclo", "/tmp/b.yaml"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultToolDiameter != 2.0 {
		t.Errorf("expected tool diameter 2.0, got %f", loaded.DefaultToolDiameter)
	}
	if loaded.DefaultGuardPolicy != model.GuardIterative {
		t.Errorf("expected iterative guard, got %q", loaded.DefaultGuardPolicy)
	}
	if loaded.InputUnit != model.UnitInch {
		t.Errorf("expected unit in, got %q", loaded.InputUnit)
	}
	if !loaded.DefaultExact {
		t.Error("expected exact geometry default")
	}
	if len(loaded.RecentDesigns) != 2 {
		t.Errorf("expected 2 recent designs, got %d", len(loaded.RecentDesigns))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	cfg, err := LoadAppConfig(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	def := model.DefaultAppConfig()
	if cfg.DefaultFeedRate != def.DefaultFeedRate || cfg.Theme != def.Theme {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAppConfig(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadAppConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"theme": "dark"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.Theme != "dark" {
		t.Errorf("expected dark theme, got %q", cfg.Theme)
	}
	if cfg.DefaultSamplingMode != model.SamplingAdaptive {
		t.Errorf("expected default sampling mode, got %q", cfg.DefaultSamplingMode)
	}
	if cfg.RecentDesigns == nil {
		t.Error("RecentDesigns should not be nil after loading")
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "config.json")
	if err := SaveAppConfig(path, model.DefaultAppConfig()); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not created: %v", err)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if filepath.Base(path) != "config.json" || filepath.Base(filepath.Dir(path)) != ".cyclodisc" {
		t.Errorf("unexpected config path %s", path)
	}
}
