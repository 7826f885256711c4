package project

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/CycloDisc/internal/model"
)

func TestSaveAndLoadTemplates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")

	d := model.NewDesign()
	d.Params.RingPinCount = 15
	d.Options.PhaseDeg = model.ManualPhase(7.5)
	store := model.NewTemplateStore()
	store.Add(model.NewDesignTemplate("14:1 reducer", "Fifteen pins", d))

	if err := SaveTemplates(path, store); err != nil {
		t.Fatalf("SaveTemplates failed: %v", err)
	}
	loaded, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("LoadTemplates failed: %v", err)
	}

	if len(loaded.Templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(loaded.Templates))
	}
	tmpl := loaded.Templates[0]
	if tmpl.Name != "14:1 reducer" || tmpl.Description != "Fifteen pins" {
		t.Errorf("unexpected template %q/%q", tmpl.Name, tmpl.Description)
	}
	if tmpl.Params.RingPinCount != 15 {
		t.Errorf("expected 15 pins, got %d", tmpl.Params.RingPinCount)
	}
	if tmpl.Options.PhaseDeg == nil || *tmpl.Options.PhaseDeg != 7.5 {
		t.Errorf("expected manual phase 7.5, got %v", tmpl.Options.PhaseDeg)
	}
}

func TestLoadTemplatesNotFound(t *testing.T) {
	store, err := LoadTemplates(filepath.Join(t.TempDir(), "none.json"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if store.Templates == nil || len(store.Templates) != 0 {
		t.Errorf("expected empty store, got %+v", store.Templates)
	}
}

func TestSaveAndLoadMultipleTemplates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")

	store := model.NewTemplateStore()
	for _, tmpl := range model.BuiltInTemplates() {
		store.Add(tmpl)
	}
	if err := SaveTemplates(path, store); err != nil {
		t.Fatalf("SaveTemplates failed: %v", err)
	}

	loaded, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("LoadTemplates failed: %v", err)
	}
	if len(loaded.Templates) != len(store.Templates) {
		t.Fatalf("expected %d templates, got %d", len(store.Templates), len(loaded.Templates))
	}
	for _, name := range store.Names() {
		if loaded.FindByName(name) == nil {
			t.Errorf("template %q missing after load", name)
		}
	}
}
