package engine

import (
	"context"
	"errors"
	"math"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// orientEpsilon is the collinearity tolerance of the segment test.
	orientEpsilon = 1e-12
	// minIntersectPoints is the smallest polygon that is scanned at all.
	minIntersectPoints = 6
	// parallelThreshold is the point count above which SelfIntersects fans out.
	parallelThreshold = 2048
)

// orient returns the signed area of the triangle p, q, r (twice).
func orient(p, q, r r2.Vec) float64 {
	return r2.Cross(r2.Sub(q, p), r2.Sub(r, p))
}

// onSegment reports whether q lies within the bounding box of p, r.
func onSegment(p, q, r r2.Vec) bool {
	return math.Min(p.X, r.X)-orientEpsilon <= q.X && q.X <= math.Max(p.X, r.X)+orientEpsilon &&
		math.Min(p.Y, r.Y)-orientEpsilon <= q.Y && q.Y <= math.Max(p.Y, r.Y)+orientEpsilon
}

func opposite(a, b float64) bool {
	return (a > orientEpsilon && b < -orientEpsilon) || (a < -orientEpsilon && b > orientEpsilon)
}

// SegmentsIntersect reports whether segments ab and cd cross properly or
// touch, counting an endpoint lying on the other segment as a hit.
func SegmentsIntersect(a, b, c, d r2.Vec) bool {
	o1 := orient(a, b, c)
	o2 := orient(a, b, d)
	o3 := orient(c, d, a)
	o4 := orient(c, d, b)

	if opposite(o1, o2) && opposite(o3, o4) {
		return true
	}
	switch {
	case math.Abs(o1) <= orientEpsilon && onSegment(a, c, b):
		return true
	case math.Abs(o2) <= orientEpsilon && onSegment(a, d, b):
		return true
	case math.Abs(o3) <= orientEpsilon && onSegment(c, a, d):
		return true
	case math.Abs(o4) <= orientEpsilon && onSegment(c, b, d):
		return true
	}
	return false
}

// edgeCrossing returns the first edge j > i that crosses edge i, skipping
// neighbours and edges that share a vertex with it.
func edgeCrossing(pts Profile, i int) (int, bool) {
	n := len(pts)
	a, b := pts[i], pts[(i+1)%n]
	for j := i + 1; j < n; j++ {
		if j == (i+1)%n || i == (j+1)%n {
			continue
		}
		c, d := pts[j], pts[(j+1)%n]
		if a == c || a == d || b == c || b == d {
			continue
		}
		if SegmentsIntersect(a, b, c, d) {
			return j, true
		}
	}
	return -1, false
}

// FindSelfIntersection returns the first pair of crossing edges, scanning in
// index order. Edge i runs from point i to point i+1 (mod n).
func FindSelfIntersection(pts Profile) (i, j int, found bool) {
	if len(pts) < minIntersectPoints {
		return -1, -1, false
	}
	for i := range pts {
		if j, ok := edgeCrossing(pts, i); ok {
			return i, j, true
		}
	}
	return -1, -1, false
}

// SelfIntersects reports whether any two non-adjacent edges of the closed
// polygon cross. Large polygons are scanned in parallel; the answer is the same.
func SelfIntersects(pts Profile) bool {
	if len(pts) > parallelThreshold {
		found, err := SelfIntersectsParallel(context.Background(), pts, runtime.GOMAXPROCS(0))
		if err == nil {
			return found
		}
	}
	_, _, found := FindSelfIntersection(pts)
	return found
}

var errCrossingFound = errors.New("crossing found")

// SelfIntersectsParallel splits the outer edge loop into chunks scanned by at
// most workers goroutines. The first crossing cancels the remaining chunks.
func SelfIntersectsParallel(ctx context.Context, pts Profile, workers int) (bool, error) {
	n := len(pts)
	if n < minIntersectPoints {
		return false, nil
	}
	if workers < 1 {
		workers = 1
	}

	var found atomic.Bool
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	chunk := max(64, n/(workers*4))
	for start := 0; start < n && !found.Load(); start += chunk {
		end := min(n, start+chunk)
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				if found.Load() {
					return nil
				}
				if _, ok := edgeCrossing(pts, i); ok {
					found.Store(true)
					return errCrossingFound
				}
			}
			return nil
		})
	}

	err := g.Wait()
	if found.Load() {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}
