package gcode

import (
	"fmt"
	"math"
	"strings"

	"github.com/piwi3910/CycloDisc/internal/engine"
	"github.com/piwi3910/CycloDisc/internal/model"
	"gonum.org/v1/gonum/spatial/r2"
)

// PathKind distinguishes full-circle cuts from sampled contours.
type PathKind int

const (
	PathCircle  PathKind = iota // Bore or output hole, cut inside the circle
	PathContour                 // Outer disc profile, cut outside the polygon
)

// Toolpath is one closed tool-center path cut at every pass depth.
type Toolpath struct {
	Label  string
	Kind   PathKind
	Center r2.Vec   // PathCircle
	Radius float64  // PathCircle, tool-center radius
	Points []r2.Vec // PathContour, in cutting order
}

// Generator produces GCode for placed discs.
type Generator struct {
	Settings model.MachiningSettings
	Engine   model.EngineSettings // sampler settings for the tool-center contour
	profile  model.GCodeProfile
}

func New(settings model.MachiningSettings) *Generator {
	return &Generator{
		Settings: settings,
		Engine:   model.DefaultEngineSettings(),
		profile:  model.GetProfile(settings.GCodeProfile),
	}
}

// NewForDesign uses the design's machining and engine settings.
func NewForDesign(d model.Design) *Generator {
	g := New(d.Machining)
	g.Engine = d.Engine
	return g
}

// GenerateAll produces one GCode program per placed disc.
func (g *Generator) GenerateAll(res engine.Result) ([]string, error) {
	var codes []string
	for i := range res.Discs {
		code, err := g.GenerateDisc(res, i)
		if err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, nil
}

// GenerateDisc produces the program for res.Discs[idx]: bore first, then the
// output holes, then the outer profile.
func (g *Generator) GenerateDisc(res engine.Result, idx int) (string, error) {
	if idx < 0 || idx >= len(res.Discs) {
		return "", fmt.Errorf("disc index %d out of range (have %d)", idx, len(res.Discs))
	}
	paths, warnings, err := g.DiscToolpaths(res, res.Discs[idx])
	if err != nil {
		return "", err
	}
	var b strings.Builder
	g.writeProgram(&b, res, res.Discs[idx], paths, warnings)
	return b.String(), nil
}

// WithProfile returns a copy of g that formats with p instead of the
// profile named in its settings.
func (g *Generator) WithProfile(p model.GCodeProfile) *Generator {
	c := *g
	c.profile = p
	return &c
}

// Preview renders res.Discs[idx] the way GenerateDisc does, but with a
// single pass per toolpath and every contour cut short after maxPoints
// points. The result shows how a profile formats a real disc; it is not
// meant for machining.
func (g *Generator) Preview(res engine.Result, idx, maxPoints int) (string, error) {
	if idx < 0 || idx >= len(res.Discs) {
		return "", fmt.Errorf("disc index %d out of range (have %d)", idx, len(res.Discs))
	}
	pg := *g
	pg.Settings.PassDepth = pg.Settings.CutDepth
	paths, warnings, err := pg.DiscToolpaths(res, res.Discs[idx])
	if err != nil {
		return "", err
	}
	maxPoints = max(maxPoints, 2)
	for i, tp := range paths {
		if tp.Kind == PathContour && len(tp.Points) > maxPoints {
			warnings = append(warnings, fmt.Sprintf("preview: %s shows %d of %d points", tp.Label, maxPoints, len(tp.Points)))
			paths[i].Points = tp.Points[:maxPoints]
		}
	}
	var b strings.Builder
	pg.writeProgram(&b, res, res.Discs[idx], paths, warnings)
	return b.String(), nil
}

func (g *Generator) writeProgram(b *strings.Builder, res engine.Result, disc engine.PlacedDisc, paths []Toolpath, warnings []string) {
	g.writeHeader(b, res, disc)
	for _, w := range warnings {
		b.WriteString(g.comment("WARNING: " + w))
	}
	if len(warnings) > 0 {
		b.WriteString("\n")
	}
	for _, tp := range paths {
		switch tp.Kind {
		case PathCircle:
			g.writeCircle(b, tp)
		case PathContour:
			g.writeContour(b, tp)
		}
	}
	g.writeFooter(b)
}

// DiscToolpaths computes the tool-center paths for one disc. Circles the tool
// cannot enter are skipped and reported as warnings.
func (g *Generator) DiscToolpaths(res engine.Result, disc engine.PlacedDisc) ([]Toolpath, []string, error) {
	toolR := g.Settings.ToolDiameter / 2.0
	if !(toolR > 0) {
		return nil, nil, fmt.Errorf("tool diameter must be > 0 (got %g)", g.Settings.ToolDiameter)
	}

	var paths []Toolpath
	var warnings []string

	if g.Settings.CutBore {
		bore := disc.Bore()
		if r := bore.Radius - toolR; r > 0 {
			paths = append(paths, Toolpath{Label: "Bore", Kind: PathCircle, Center: bore.Center, Radius: r})
		} else {
			warnings = append(warnings, fmt.Sprintf("%s bore Ø %.3f mm is smaller than the tool, skipped", disc.Suffix, 2*bore.Radius))
		}
	}
	if g.Settings.CutHoles {
		for i, h := range disc.Holes() {
			r := h.Radius - toolR
			if r <= 0 {
				warnings = append(warnings, fmt.Sprintf("%s holes Ø %.3f mm are smaller than the tool, skipped", disc.Suffix, 2*h.Radius))
				break
			}
			paths = append(paths, Toolpath{Label: fmt.Sprintf("Hole %d", i+1), Kind: PathCircle, Center: h.Center, Radius: r})
		}
	}

	contour, err := g.contour(res, disc, toolR)
	if err != nil {
		return nil, nil, err
	}
	paths = append(paths, contour)
	return paths, warnings, nil
}

// contour resamples the parallel curve at d_eff − tool radius so the tool
// edge, not its center, follows the disc profile.
func (g *Generator) contour(res engine.Result, disc engine.PlacedDisc, toolR float64) (Toolpath, error) {
	p := res.Params
	cfg := engine.SamplerConfigFrom(g.Engine, p.SamplesPerLobe)
	local, err := engine.Sample(p.RingPinCount, p.Radius(), p.Eccentricity, res.DEff-toolR, cfg)
	if err != nil {
		return Toolpath{}, fmt.Errorf("tool-center contour: %w", err)
	}
	if len(local) < 3 {
		return Toolpath{}, fmt.Errorf("tool-center contour: only %d points", len(local))
	}
	pts := disc.Placement.Apply(local)
	if g.Settings.UseClimb {
		// The sampled profile runs counter-clockwise; climb cutting outside runs clockwise.
		pts = reverseKeepingStart(pts)
	}
	return Toolpath{Label: "Profile " + disc.Suffix, Kind: PathContour, Points: pts}, nil
}

func reverseKeepingStart(pts []r2.Vec) []r2.Vec {
	out := make([]r2.Vec, len(pts))
	out[0] = pts[0]
	for i := 1; i < len(pts); i++ {
		out[i] = pts[len(pts)-i]
	}
	return out
}

// passDepths returns the Z depth of each pass, the last one landing exactly
// on CutDepth.
func (g *Generator) passDepths() []float64 {
	if !(g.Settings.PassDepth > 0) || g.Settings.PassDepth >= g.Settings.CutDepth {
		return []float64{g.Settings.CutDepth}
	}
	numPasses := int(math.Ceil(g.Settings.CutDepth/g.Settings.PassDepth - 1e-9))
	depths := make([]float64, numPasses)
	for pass := 1; pass <= numPasses; pass++ {
		depths[pass-1] = math.Min(float64(pass)*g.Settings.PassDepth, g.Settings.CutDepth)
	}
	return depths
}

func (g *Generator) writeHeader(b *strings.Builder, res engine.Result, disc engine.PlacedDisc) {
	p := g.profile
	s := res.Summary

	b.WriteString(g.comment(fmt.Sprintf("CycloDisc GCode, %s", disc.Suffix)))
	b.WriteString(g.comment(fmt.Sprintf("Ratio %s, %d ring pins, E=%.3f mm, d_eff=%.3f mm",
		s.Ratio(), res.Params.RingPinCount, res.Params.Eccentricity, res.DEff)))
	b.WriteString(g.comment(fmt.Sprintf("Tool: %.2fmm, Feed: %.0f mm/min, Plunge: %.0f mm/min",
		g.Settings.ToolDiameter, g.Settings.FeedRate, g.Settings.PlungeRate)))
	b.WriteString(g.comment(fmt.Sprintf("Depth: %.2fmm in %.2fmm passes", g.Settings.CutDepth, g.Settings.PassDepth)))
	b.WriteString(g.comment(fmt.Sprintf("Profile: %s", p.Name)))
	b.WriteString("\n")

	for _, code := range p.StartCode {
		b.WriteString(code + "\n")
	}
	if p.SpindleStart != "" {
		b.WriteString(fmt.Sprintf(p.SpindleStart+"\n", g.Settings.SpindleSpeed))
	}
	b.WriteString(fmt.Sprintf("%s Z%s\n", p.RapidMove, g.format(g.Settings.SafeZ)))
	b.WriteString("\n")
}

func (g *Generator) writeFooter(b *strings.Builder) {
	p := g.profile

	b.WriteString("\n")
	b.WriteString(g.comment("=== Job complete ==="))
	for _, code := range p.EndCode {
		code = strings.ReplaceAll(code, "[SafeZ]", g.format(g.Settings.SafeZ))
		b.WriteString(code + "\n")
	}
	if p.SpindleStop != "" {
		b.WriteString(p.SpindleStop + "\n")
	}
}

// writeCircle cuts a full circle starting on its +X side.
func (g *Generator) writeCircle(b *strings.Builder, tp Toolpath) {
	p := g.profile
	sx, sy := tp.Center.X+tp.Radius, tp.Center.Y

	// Inside cuts climb counter-clockwise.
	arc := p.ArcCCW
	if !g.Settings.UseClimb {
		arc = p.ArcCW
	}

	b.WriteString(g.comment(fmt.Sprintf("--- %s: center (%.3f, %.3f), tool path r=%.3f ---",
		tp.Label, tp.Center.X, tp.Center.Y, tp.Radius)))
	depths := g.passDepths()
	for i, depth := range depths {
		b.WriteString(g.comment(fmt.Sprintf("Pass %d/%d, depth=%.2fmm", i+1, len(depths), depth)))
		b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove, g.format(sx), g.format(sy)))
		b.WriteString(fmt.Sprintf("%s Z%s F%s\n", p.FeedMove, g.format(-depth), g.format(g.Settings.PlungeRate)))
		b.WriteString(fmt.Sprintf("%s X%s Y%s I%s J%s F%s\n", arc,
			g.format(sx), g.format(sy), g.format(-tp.Radius), g.format(0),
			g.format(g.Settings.FeedRate)))
		b.WriteString(fmt.Sprintf("%s Z%s\n", p.RapidMove, g.format(g.Settings.SafeZ)))
	}
	b.WriteString("\n")
}

// writeContour follows a closed polygon at each pass depth.
func (g *Generator) writeContour(b *strings.Builder, tp Toolpath) {
	p := g.profile
	pts := tp.Points

	b.WriteString(g.comment(fmt.Sprintf("--- %s (%d points) ---", tp.Label, len(pts))))
	depths := g.passDepths()
	for i, depth := range depths {
		b.WriteString(g.comment(fmt.Sprintf("Pass %d/%d, depth=%.2fmm", i+1, len(depths), depth)))
		b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove, g.format(pts[0].X), g.format(pts[0].Y)))
		b.WriteString(fmt.Sprintf("%s Z%s F%s\n", p.FeedMove, g.format(-depth), g.format(g.Settings.PlungeRate)))
		b.WriteString(fmt.Sprintf("%s X%s Y%s F%s\n", p.FeedMove, g.format(pts[1].X), g.format(pts[1].Y), g.format(g.Settings.FeedRate)))
		for _, pt := range pts[2:] {
			b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.FeedMove, g.format(pt.X), g.format(pt.Y)))
		}
		// Close the loop
		b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.FeedMove, g.format(pts[0].X), g.format(pts[0].Y)))
		b.WriteString(fmt.Sprintf("%s Z%s\n", p.RapidMove, g.format(g.Settings.SafeZ)))
	}
	b.WriteString("\n")
}

// comment wraps text in the profile's comment syntax.
func (g *Generator) comment(text string) string {
	return g.profile.CommentPrefix + " " + text + g.profile.CommentSuffix + "\n"
}

// format formats a coordinate according to the profile's decimal places.
func (g *Generator) format(v float64) string {
	s := fmt.Sprintf("%.*f", g.profile.DecimalPlaces, v)
	if s == "-"+fmt.Sprintf("%.*f", g.profile.DecimalPlaces, 0.0) {
		return s[1:]
	}
	return s
}
