package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/CycloDisc/internal/model"
)

// DefaultProfilesPath returns the default file path for custom profiles,
// ~/.cyclodisc/profiles.json.
func DefaultProfilesPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cyclodisc", "profiles.json"), nil
}

// SaveCustomProfiles saves custom profiles to a JSON file.
func SaveCustomProfiles(path string, profiles []model.GCodeProfile) error {
	return writeJSON(path, profiles)
}

// LoadCustomProfiles loads custom profiles from a JSON file.
// Returns an empty slice if the file does not exist. Entries that reuse a
// built-in profile name are dropped.
func LoadCustomProfiles(path string) ([]model.GCodeProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.GCodeProfile{}, nil
		}
		return nil, err
	}

	var loaded []model.GCodeProfile
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, err
	}

	profiles := make([]model.GCodeProfile, 0, len(loaded))
	for _, p := range loaded {
		if !model.IsBuiltInProfile(p.Name) {
			profiles = append(profiles, p)
		}
	}
	return profiles, nil
}

// SaveCustomProfilesToDefault saves custom profiles to the default path.
func SaveCustomProfilesToDefault(profiles []model.GCodeProfile) error {
	path, err := DefaultProfilesPath()
	if err != nil {
		return err
	}
	return SaveCustomProfiles(path, profiles)
}

// LoadCustomProfilesFromDefault loads custom profiles from the default path
// and registers them so generators can look them up by name.
func LoadCustomProfilesFromDefault() ([]model.GCodeProfile, error) {
	path, err := DefaultProfilesPath()
	if err != nil {
		return nil, err
	}
	profiles, err := LoadCustomProfiles(path)
	if err != nil {
		return nil, err
	}
	for _, p := range profiles {
		if err := model.AddCustomProfile(p); err != nil {
			return profiles, err
		}
	}
	return profiles, nil
}

// ExportProfile exports a single profile to a JSON file (for sharing).
func ExportProfile(path string, profile model.GCodeProfile) error {
	return writeJSON(path, profile)
}

// ImportProfile imports a single profile from a JSON file.
func ImportProfile(path string) (model.GCodeProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.GCodeProfile{}, err
	}

	var profile model.GCodeProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return model.GCodeProfile{}, err
	}

	if profile.Name == "" {
		return model.GCodeProfile{}, errors.New("imported profile has no name")
	}
	if model.IsBuiltInProfile(profile.Name) {
		return model.GCodeProfile{}, fmt.Errorf("imported profile %q conflicts with a built-in profile", profile.Name)
	}
	return profile, nil
}
