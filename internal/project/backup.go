package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/CycloDisc/internal/model"
)

// BackupVersion is written into every backup bundle.
const BackupVersion = "1.0.0"

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version   string               `json:"version"`
	CreatedAt string               `json:"created_at"`
	Config    model.AppConfig      `json:"config"`
	Inventory model.Inventory      `json:"inventory"`
	Templates model.TemplateStore  `json:"templates"`
	Profiles  []model.GCodeProfile `json:"profiles"`
}

// NewBackup bundles the given stores with the current version and time.
func NewBackup(config model.AppConfig, inv model.Inventory, templates model.TemplateStore, profiles []model.GCodeProfile) BackupData {
	return BackupData{
		Version:   BackupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Inventory: inv,
		Templates: templates,
		Profiles:  profiles,
	}
}

// ExportAllData writes the backup bundle to a single JSON file at the
// specified path.
func ExportAllData(exportPath string, backup BackupData) error {
	if backup.Version == "" {
		backup.Version = BackupVersion
	}
	if err := writeJSON(exportPath, backup); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying the imported stores.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	backup := BackupData{Config: model.DefaultAppConfig()}
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	// Ensure slices are never nil
	if backup.Config.RecentDesigns == nil {
		backup.Config.RecentDesigns = []string{}
	}
	if backup.Templates.Templates == nil {
		backup.Templates.Templates = []model.DesignTemplate{}
	}
	if backup.Profiles == nil {
		backup.Profiles = []model.GCodeProfile{}
	}
	return backup, nil
}
