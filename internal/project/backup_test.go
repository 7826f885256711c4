package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/CycloDisc/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultCutDepth = 8
	store := model.NewTemplateStore()
	store.Add(model.NewDesignTemplate("Compact", "11 pins", model.NewDesign()))
	profiles := []model.GCodeProfile{{Name: "Shop router", CommentPrefix: ";", DecimalPlaces: 3}}

	backup := NewBackup(cfg, model.DefaultInventory(), store, profiles)
	if err := ExportAllData(path, backup); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	loaded, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if loaded.Version != BackupVersion {
		t.Errorf("expected version %s, got %s", BackupVersion, loaded.Version)
	}
	if loaded.Config.DefaultCutDepth != 8 {
		t.Errorf("expected cut depth 8, got %f", loaded.Config.DefaultCutDepth)
	}
	if len(loaded.Inventory.Tools) != len(model.DefaultInventory().Tools) {
		t.Errorf("expected default tools, got %d", len(loaded.Inventory.Tools))
	}
	if len(loaded.Templates.Templates) != 1 || loaded.Templates.Templates[0].Name != "Compact" {
		t.Errorf("unexpected templates %+v", loaded.Templates)
	}
	if len(loaded.Profiles) != 1 || loaded.Profiles[0].Name != "Shop router" {
		t.Errorf("unexpected profiles %+v", loaded.Profiles)
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	if _, err := ImportAllData(filepath.Join(t.TempDir(), "none.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestImportAllDataInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportAllData(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	if err := os.WriteFile(path, []byte(`{"config": {}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportAllData(path); err == nil {
		t.Error("expected error for missing version")
	}
}

func TestImportAllDataMinimalBundle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	if err := os.WriteFile(path, []byte(`{"version": "1.0.0"}`), 0644); err != nil {
		t.Fatal(err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Config.RecentDesigns == nil || backup.Templates.Templates == nil || backup.Profiles == nil {
		t.Error("slices should not be nil after import")
	}
	if backup.Config.DefaultToolDiameter != model.DefaultAppConfig().DefaultToolDiameter {
		t.Error("expected config defaults for a bundle without config")
	}
}

func TestExportAllDataCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x", "y", "backup.json")
	if err := ExportAllData(path, BackupData{}); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}
	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Version != BackupVersion {
		t.Errorf("expected version to be filled in, got %q", backup.Version)
	}
}
