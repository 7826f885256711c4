package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/CycloDisc/internal/model"
)

func testProfile(name string) model.GCodeProfile {
	return model.GCodeProfile{
		Name:          name,
		Description:   "Test controller",
		Units:         "mm",
		StartCode:     []string{"G90", "G21"},
		SpindleStart:  "M3 S%d",
		SpindleStop:   "M5",
		AbsoluteMode:  "G90",
		FeedMode:      "G94",
		RapidMove:     "G0",
		FeedMove:      "G1",
		ArcCW:         "G2",
		ArcCCW:        "G3",
		EndCode:       []string{"G0 Z[SafeZ]", "M30"},
		CommentPrefix: ";",
		DecimalPlaces: 3,
	}
}

func TestSaveAndLoadCustomProfiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")
	profiles := []model.GCodeProfile{testProfile("Shop A"), testProfile("Shop B")}

	if err := SaveCustomProfiles(path, profiles); err != nil {
		t.Fatalf("SaveCustomProfiles failed: %v", err)
	}

	loaded, err := LoadCustomProfiles(path)
	if err != nil {
		t.Fatalf("LoadCustomProfiles failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(loaded))
	}
	if loaded[0].Name != "Shop A" || loaded[1].Name != "Shop B" {
		t.Errorf("unexpected names %q, %q", loaded[0].Name, loaded[1].Name)
	}
	if len(loaded[0].EndCode) != 2 || loaded[0].EndCode[0] != "G0 Z[SafeZ]" {
		t.Errorf("end code not preserved: %v", loaded[0].EndCode)
	}
}

func TestLoadCustomProfilesDropsBuiltInNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")
	builtIn := model.GCodeProfiles[0].Name
	profiles := []model.GCodeProfile{testProfile(builtIn), testProfile("Mine")}

	if err := SaveCustomProfiles(path, profiles); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadCustomProfiles(path)
	if err != nil {
		t.Fatalf("LoadCustomProfiles failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Name != "Mine" {
		t.Errorf("expected only the custom profile, got %+v", loaded)
	}
}

func TestLoadCustomProfilesNonExistent(t *testing.T) {
	profiles, err := LoadCustomProfiles(filepath.Join(t.TempDir(), "none.json"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if profiles == nil || len(profiles) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", profiles)
	}
}

func TestLoadCustomProfilesInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")
	if err := os.WriteFile(path, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCustomProfiles(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestExportAndImportProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.json")
	p := testProfile("Shared Router")

	if err := ExportProfile(path, p); err != nil {
		t.Fatalf("ExportProfile failed: %v", err)
	}
	imported, err := ImportProfile(path)
	if err != nil {
		t.Fatalf("ImportProfile failed: %v", err)
	}
	if imported.Name != "Shared Router" || imported.DecimalPlaces != 3 {
		t.Errorf("unexpected profile %+v", imported)
	}
}

func TestImportProfileNoName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unnamed.json")
	if err := ExportProfile(path, testProfile("")); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportProfile(path); err == nil {
		t.Error("expected error for profile without name")
	}
}

func TestImportProfileBuiltInConflict(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conflict.json")
	if err := ExportProfile(path, testProfile(model.GCodeProfiles[0].Name)); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportProfile(path); err == nil {
		t.Error("expected error for built-in name conflict")
	}
}

func TestSaveCustomProfilesCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "profiles.json")
	if err := SaveCustomProfiles(path, []model.GCodeProfile{testProfile("X")}); err != nil {
		t.Fatalf("SaveCustomProfiles failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("profiles file not created: %v", err)
	}
}
