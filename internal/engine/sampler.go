package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/CycloDisc/internal/model"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// minSteps is the lower bound on base samples around the full curve.
	minSteps = 240
	// dedupTolerance is the distance below which consecutive points merge.
	dedupTolerance = 1e-6
	// maxDepthLimit caps the configurable recursion depth.
	maxDepthLimit = 30
)

// Profile is an ordered, implicitly closed point sequence in disc-local coordinates.
type Profile []r2.Vec

// SamplerConfig controls how the parallel curve is walked.
type SamplerConfig struct {
	Mode       model.SamplingMode
	Density    int     // samples per lobe
	MaxSegment float64 // adaptive chord bound
	MaxDepth   int     // adaptive recursion bound
	Epsilon    float64 // degenerate tangent threshold
}

// DefaultSamplerConfig returns adaptive sampling at the given density.
func DefaultSamplerConfig(density int) SamplerConfig {
	return SamplerConfigFrom(model.DefaultEngineSettings(), density)
}

// SamplerConfigFrom builds a sampler config from design settings.
func SamplerConfigFrom(s model.EngineSettings, density int) SamplerConfig {
	return SamplerConfig{
		Mode:       s.Mode,
		Density:    density,
		MaxSegment: s.MaxSegment,
		MaxDepth:   s.MaxDepth,
		Epsilon:    s.Epsilon,
	}
}

func (c SamplerConfig) validate() error {
	switch c.Mode {
	case model.SamplingUniform, model.SamplingAdaptive:
	default:
		return fmt.Errorf("unknown sampling mode %q", c.Mode)
	}
	if c.Density <= 0 {
		return fmt.Errorf("density must be > 0 (got %d)", c.Density)
	}
	if c.Mode == model.SamplingAdaptive {
		if !(c.MaxSegment > 0) {
			return fmt.Errorf("max segment must be > 0 (got %g)", c.MaxSegment)
		}
		if c.MaxDepth < 1 || c.MaxDepth > maxDepthLimit {
			return fmt.Errorf("max depth must be in 1..%d (got %d)", maxDepthLimit, c.MaxDepth)
		}
	}
	if !(c.Epsilon > 0) {
		return fmt.Errorf("epsilon must be > 0 (got %g)", c.Epsilon)
	}
	return nil
}

// baseSteps returns max(240, lobes·density).
func baseSteps(n, density int) int {
	return max(minSteps, (n-1)*density)
}

// Sample walks the trochoid for N pins on radius R with eccentricity E and
// returns its parallel curve at distance dEff. The offset is taken along the
// left normal, which points toward the disc center while E·N < R.
func Sample(n int, r, e, dEff float64, cfg SamplerConfig) (Profile, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("sampler config: %w", err)
	}
	if n < 1 || !(r > 0) {
		return nil, fmt.Errorf("sample: need n >= 1 and r > 0 (got n=%d, r=%g)", n, r)
	}

	s := sampler{curve: trochoid{r: r, n: n, e: e, eps: cfg.Epsilon}, d: dEff, cfg: cfg}
	var pts Profile
	if cfg.Mode == model.SamplingUniform {
		pts = s.uniform(baseSteps(n, cfg.Density))
	} else {
		pts = s.adaptive(baseSteps(n, cfg.Density) * max(1, n/8))
	}
	return dedup(pts), nil
}

type sampler struct {
	curve trochoid
	d     float64
	cfg   SamplerConfig
}

// node is a sampled offset point with its resolved normal.
type node struct {
	p      float64
	pt     r2.Vec
	normal r2.Vec
}

// at offsets the curve at p, orienting the normal against ref.
func (s sampler) at(p float64, ref r2.Vec) (node, bool) {
	f, ok := s.curve.frame(p)
	if !ok {
		return node{}, false
	}
	nrm := alignNormal(f.Normal, ref)
	return node{p: p, pt: r2.Add(f.Position, r2.Scale(s.d, nrm)), normal: nrm}, true
}

func (s sampler) uniform(steps int) Profile {
	var nr NormalResolver
	pts := make(Profile, 0, steps)
	for i := 0; i < steps; i++ {
		f, ok := s.curve.frame(2 * math.Pi * float64(i) / float64(steps))
		if !ok {
			continue
		}
		nrm := nr.Resolve(f.Normal)
		pts = append(pts, r2.Add(f.Position, r2.Scale(s.d, nrm)))
	}
	return pts
}

func (s sampler) adaptive(steps int) Profile {
	prev, ok := s.at(0, r2.Vec{})
	if !ok {
		return nil
	}
	pts := make(Profile, 0, steps+steps/4)
	pts = append(pts, prev.pt)
	for i := 1; i <= steps; i++ {
		cur, ok := s.at(2*math.Pi*float64(i)/float64(steps), prev.normal)
		if !ok {
			continue
		}
		pts = s.subdivide(prev, cur, 0, pts)
		prev = cur
	}
	return pts
}

// subdivide appends b, inserting bisection points between a and b until no
// chord exceeds MaxSegment or MaxDepth is reached.
func (s sampler) subdivide(a, b node, depth int, out Profile) Profile {
	if depth < s.cfg.MaxDepth && r2.Norm(r2.Sub(b.pt, a.pt)) > s.cfg.MaxSegment {
		if mid, ok := s.at(0.5*(a.p+b.p), a.normal); ok {
			out = s.subdivide(a, mid, depth+1, out)
			return s.subdivide(mid, b, depth+1, out)
		}
	}
	return append(out, b.pt)
}

// dedup drops consecutive points closer than dedupTolerance, including
// trailing points that coincide with the first.
func dedup(pts Profile) Profile {
	out := make(Profile, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && r2.Norm(r2.Sub(p, out[len(out)-1])) <= dedupTolerance {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && r2.Norm(r2.Sub(out[len(out)-1], out[0])) <= dedupTolerance {
		out = out[:len(out)-1]
	}
	return out
}
