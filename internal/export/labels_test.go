package export

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/piwi3910/CycloDisc/internal/model"
)

func buildLabelDesigns(n int) []model.Design {
	designs := make([]model.Design, n)
	for i := range designs {
		designs[i] = model.NewDesign()
		designs[i].Name = fmt.Sprintf("Drive %d", i+1)
	}
	return designs
}

func TestExportLabels_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	if err := ExportLabels(path, buildLabelDesigns(3)); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
	assertFile(t, path, 500)
}

func TestExportLabels_NoDesigns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	if err := ExportLabels(path, nil); err == nil {
		t.Error("expected error for no designs")
	}
}

func TestExportLabels_ManyDesigns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	// More than one page worth of labels.
	designs := buildLabelDesigns(labelsPerPage + 5)
	designs[0].Name = "A design name far too long to fit beside the QR code on a label"
	designs[1].Options.ExactGeometry = true
	if err := ExportLabels(path, designs); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
	assertFile(t, path, 500)
}

func TestCollectLabelInfos(t *testing.T) {
	designs := buildLabelDesigns(2)
	designs[1].Params.RingPinCount = 11
	designs[1].Options.PhaseDeg = model.ManualPhase(12)

	infos := CollectLabelInfos(designs)
	if len(infos) != 2 {
		t.Fatalf("expected 2 labels, got %d", len(infos))
	}
	if infos[0].Ratio != "8:1" || infos[1].Ratio != "10:1" {
		t.Errorf("unexpected ratios %q, %q", infos[0].Ratio, infos[1].Ratio)
	}
	if infos[0].PhaseDeg != nil {
		t.Error("expected auto phase to be omitted")
	}
	if infos[1].PhaseDeg == nil || *infos[1].PhaseDeg != 12 {
		t.Errorf("expected manual phase 12, got %v", infos[1].PhaseDeg)
	}
}

func TestLabelInfo_JSONRoundTrip(t *testing.T) {
	info := CollectLabelInfos(buildLabelDesigns(1))[0]

	data, err := json.Marshal(info)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded LabelInfo
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if decoded.ToParameters() != model.DefaultParameters() {
		t.Errorf("expected default parameters, got %+v", decoded.ToParameters())
	}
	if decoded.Name != "Drive 1" {
		t.Errorf("expected name 'Drive 1', got %q", decoded.Name)
	}
}
