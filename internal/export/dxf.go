package export

import (
	"fmt"
	"time"

	"github.com/piwi3910/CycloDisc/internal/engine"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

var dxfDiscColors = []color.ColorNumber{color.Blue, color.Red, color.Green, color.Magenta}

// ExportDXF writes every disc of res to a DXF drawing. Each disc gets its own
// layer holding a closed LWPOLYLINE profile plus CIRCLEs for the bore and the
// output holes. Ring pins and output pins go on separate reference layers
// when the result carries them. Layer names use the current time prefix.
func ExportDXF(path string, res engine.Result) error {
	return ExportDXFWithPrefix(path, res, EntityPrefix(time.Now()))
}

// ExportDXFWithPrefix is ExportDXF with a caller-chosen entity prefix.
func ExportDXFWithPrefix(path string, res engine.Result, prefix string) error {
	if len(res.Discs) == 0 {
		return fmt.Errorf("no discs to export")
	}

	d := dxf.NewDrawing()

	if len(res.RingPins) > 0 {
		if err := dxfCircles(d, EntityName(prefix, SuffixRingPins), color.Cyan, res.RingPins); err != nil {
			return err
		}
	}
	if len(res.OutputPins) > 0 {
		if err := dxfCircles(d, EntityName(prefix, SuffixOutputPins), color.Yellow, res.OutputPins); err != nil {
			return err
		}
	}

	for i, disc := range res.Discs {
		layer := EntityName(prefix, disc.Suffix)
		if _, err := d.AddLayer(layer, dxfDiscColors[i%len(dxfDiscColors)], dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", layer, err)
		}

		vertices := make([][]float64, len(disc.WorldProfile))
		for j, p := range disc.WorldProfile {
			vertices[j] = []float64{p.X, p.Y}
		}
		if _, err := d.LwPolyline(true, vertices...); err != nil {
			return fmt.Errorf("failed to write %s profile: %w", disc.Suffix, err)
		}

		circles := append([]engine.Circle{disc.Bore()}, disc.Holes()...)
		for _, c := range circles {
			if !(c.Radius > 0) {
				continue
			}
			if _, err := d.Circle(c.Center.X, c.Center.Y, 0, c.Radius); err != nil {
				return fmt.Errorf("failed to write %s circle: %w", disc.Suffix, err)
			}
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}

func dxfCircles(d *drawing.Drawing, layer string, col color.ColorNumber, circles []engine.Circle) error {
	if _, err := d.AddLayer(layer, col, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", layer, err)
	}
	for _, c := range circles {
		if _, err := d.Circle(c.Center.X, c.Center.Y, 0, c.Radius); err != nil {
			return fmt.Errorf("failed to write circle on %s: %w", layer, err)
		}
	}
	return nil
}
