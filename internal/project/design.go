package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/CycloDisc/internal/model"
	"gopkg.in/yaml.v3"
)

// DesignExt is the native design file extension (JSON content).
const DesignExt = ".cyclo"

// ErrUnknownFormat is returned for design files whose extension is not
// .cyclo, .json, .yaml or .yml.
var ErrUnknownFormat = errors.New("unknown design file format")

type designFormat int

const (
	formatJSON designFormat = iota
	formatYAML
)

func formatFor(path string) (designFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case DesignExt, ".json":
		return formatJSON, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// SaveDesign writes a design as JSON or YAML depending on the path extension.
func SaveDesign(path string, d model.Design) error {
	format, err := formatFor(path)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case formatYAML:
		data, err = yaml.Marshal(d)
	default:
		data, err = json.MarshalIndent(d, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode design: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadDesign reads a design written by SaveDesign. Sections missing from the
// file keep the values of a new design, so older or hand-written files load
// with sensible defaults.
func LoadDesign(path string) (model.Design, error) {
	format, err := formatFor(path)
	if err != nil {
		return model.Design{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Design{}, err
	}

	d := model.NewDesign()
	switch format {
	case formatYAML:
		err = yaml.Unmarshal(data, &d)
	default:
		err = json.Unmarshal(data, &d)
	}
	if err != nil {
		return model.Design{}, fmt.Errorf("failed to parse design %s: %w", filepath.Base(path), err)
	}
	return d, nil
}

// ExportGCode writes a generated program to path, creating parent directories.
func ExportGCode(path, code string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(code), 0644)
}
