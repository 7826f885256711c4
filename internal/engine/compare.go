package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/CycloDisc/internal/model"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r2"
)

// vertex is a profile point that remembers its index for kd-tree queries.
type vertex struct {
	r2.Vec
	idx int
}

func (v vertex) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(vertex)
	if d == 0 {
		return v.X - q.X
	}
	return v.Y - q.Y
}

func (v vertex) Dims() int { return 2 }

func (v vertex) Distance(c kdtree.Comparable) float64 {
	return r2.Norm2(r2.Sub(v.Vec, c.(vertex).Vec))
}

// vertices implements kdtree.Interface.
type vertices []vertex

func (vs vertices) Index(i int) kdtree.Comparable { return vs[i] }
func (vs vertices) Len() int                      { return len(vs) }
func (vs vertices) Slice(start, end int) kdtree.Interface {
	return vs[start:end]
}
func (vs vertices) Pivot(d kdtree.Dim) int {
	p := vertexPlane{dim: d, vertices: vs}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

type vertexPlane struct {
	dim kdtree.Dim
	vertices
}

func (p vertexPlane) Less(i, j int) bool {
	return p.vertices[i].Compare(p.vertices[j], p.dim) < 0
}
func (p vertexPlane) Swap(i, j int) {
	p.vertices[i], p.vertices[j] = p.vertices[j], p.vertices[i]
}
func (p vertexPlane) Slice(start, end int) kdtree.SortSlicer {
	p.vertices = p.vertices[start:end]
	return p
}

// segmentDistance returns the distance from p to segment ab.
func segmentDistance(p, a, b r2.Vec) float64 {
	ab := r2.Sub(b, a)
	l2 := r2.Norm2(ab)
	if l2 == 0 {
		return r2.Norm(r2.Sub(p, a))
	}
	t := r2.Dot(r2.Sub(p, a), ab) / l2
	t = min(1, max(0, t))
	return r2.Norm(r2.Sub(p, r2.Add(a, r2.Scale(t, ab))))
}

// polylineIndex answers point-to-closed-polyline distances. An edge within
// distance d of a query point has both endpoints within d + its length, so
// searching vertices within nearest + longest edge finds the closest edge.
type polylineIndex struct {
	pts     Profile
	tree    *kdtree.Tree
	longest float64
}

func newPolylineIndex(pts Profile) polylineIndex {
	vs := make(vertices, len(pts))
	for i, p := range pts {
		vs[i] = vertex{Vec: p, idx: i}
	}
	return polylineIndex{pts: pts, tree: kdtree.New(vs, false), longest: MaxChord(pts)}
}

func (pi polylineIndex) distance(p r2.Vec) float64 {
	q := vertex{Vec: p}
	_, d2 := pi.tree.Nearest(q)
	reach := math.Sqrt(d2) + pi.longest

	keep := kdtree.NewDistKeeper(reach * reach)
	pi.tree.NearestSet(keep, q)

	best := math.Sqrt(d2)
	n := len(pi.pts)
	for _, c := range keep.Heap {
		if c.Comparable == nil {
			continue
		}
		k := c.Comparable.(vertex).idx
		best = min(best,
			segmentDistance(p, pi.pts[(k-1+n)%n], pi.pts[k]),
			segmentDistance(p, pi.pts[k], pi.pts[(k+1)%n]))
	}
	return best
}

// MaxDeviation returns a symmetric Hausdorff-type distance between two closed
// profiles: the largest distance from any vertex of one to the other polyline.
func MaxDeviation(a, b Profile) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	return max(directedDeviation(a, b), directedDeviation(b, a))
}

func directedDeviation(a, b Profile) float64 {
	idx := newPolylineIndex(b)
	var worst float64
	for _, p := range a {
		worst = max(worst, idx.distance(p))
	}
	return worst
}

// SamplingComparison holds uniform and adaptive results at one density.
type SamplingComparison struct {
	Density        int     `json:"density"`
	UniformPoints  int     `json:"uniform_points"`
	AdaptivePoints int     `json:"adaptive_points"`
	MaxDeviation   float64 `json:"max_deviation"`
	MaxChord       float64 `json:"max_chord"` // longest adaptive segment
}

// CompareSampling samples p with both policies at each density and measures
// how far apart the two polygons are.
func CompareSampling(p model.DriveParameters, settings model.EngineSettings, densities []int) ([]SamplingComparison, error) {
	if err := ValidateParameters(p).Err(); err != nil {
		return nil, err
	}
	results := make([]SamplingComparison, 0, len(densities))
	for _, density := range densities {
		cfg := SamplerConfigFrom(settings, density)

		cfg.Mode = model.SamplingUniform
		uni, err := Sample(p.RingPinCount, p.Radius(), p.Eccentricity, p.EffectiveOffset(0), cfg)
		if err != nil {
			return nil, fmt.Errorf("density %d: %w", density, err)
		}
		cfg.Mode = model.SamplingAdaptive
		ada, err := Sample(p.RingPinCount, p.Radius(), p.Eccentricity, p.EffectiveOffset(0), cfg)
		if err != nil {
			return nil, fmt.Errorf("density %d: %w", density, err)
		}

		results = append(results, SamplingComparison{
			Density:        density,
			UniformPoints:  len(uni),
			AdaptivePoints: len(ada),
			MaxDeviation:   MaxDeviation(uni, ada),
			MaxChord:       MaxChord(ada),
		})
	}
	return results, nil
}

// DefaultComparisonDensities spans the UI's samples-per-lobe range.
func DefaultComparisonDensities() []int {
	return []int{model.MinSamplesPerLobe, 80, 120, 240, model.MaxSamplesPerLobe}
}

// MaxChord returns the longest edge of the closed profile. Profiles with
// fewer than two points have no edges and return 0.
func MaxChord(pts Profile) float64 {
	if len(pts) < 2 {
		return 0
	}
	var longest float64
	for i := range pts {
		longest = max(longest, r2.Norm(r2.Sub(pts[(i+1)%len(pts)], pts[i])))
	}
	return longest
}
