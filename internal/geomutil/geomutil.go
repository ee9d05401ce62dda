// Package geomutil supplies the small planar predicates the extraction core
// needs on top of orb: convex hulls, segment intersection tests and
// representative midpoints.
package geomutil

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// ConvexHullRing computes the convex hull of a point set and returns it as a
// closed ring in counterclockwise order, starting at the lexicographically
// smallest point. Inputs with fewer than three distinct points are returned
// as their distinct points in lexicographic order, unclosed.
func ConvexHullRing(points []orb.Point) []orb.Point {
	distinct := dedupe(points)
	if len(distinct) < 3 {
		return distinct
	}

	// Andrew's monotone chain.
	var lower, upper []orb.Point
	for _, p := range distinct {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}
	for i := len(distinct) - 1; i >= 0; i-- {
		p := distinct[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	// Each chain ends with the other chain's starting point, so the
	// concatenation is already a closed ring.
	hull := append(lower[:len(lower)-1], upper...)
	if len(hull) < 4 {
		// All points collinear; report the extremes, unclosed.
		return []orb.Point{distinct[0], distinct[len(distinct)-1]}
	}
	return hull
}

func dedupe(points []orb.Point) []orb.Point {
	sorted := make([]orb.Point, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i][0] != sorted[j][0] {
			return sorted[i][0] < sorted[j][0]
		}
		return sorted[i][1] < sorted[j][1]
	})
	distinct := sorted[:0]
	for i, p := range sorted {
		if i == 0 || p != sorted[i-1] {
			distinct = append(distinct, p)
		}
	}
	return distinct
}

// cross returns the z component of (b-a) x (c-a).
func cross(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

// onSegment reports whether p lies on the segment a-b, assuming the three
// points are collinear.
func onSegment(a, b, p orb.Point) bool {
	return min(a[0], b[0]) <= p[0] && p[0] <= max(a[0], b[0]) &&
		min(a[1], b[1]) <= p[1] && p[1] <= max(a[1], b[1])
}

// SegmentsIntersect reports whether the segments a1-a2 and b1-b2 share at
// least one point. Endpoint touches and collinear overlaps count.
func SegmentsIntersect(a1, a2, b1, b2 orb.Point) bool {
	d1 := cross(b1, b2, a1)
	d2 := cross(b1, b2, a2)
	d3 := cross(a1, a2, b1)
	d4 := cross(a1, a2, b2)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	switch {
	case d1 == 0 && onSegment(b1, b2, a1):
		return true
	case d2 == 0 && onSegment(b1, b2, a2):
		return true
	case d3 == 0 && onSegment(a1, a2, b1):
		return true
	case d4 == 0 && onSegment(a1, a2, b2):
		return true
	}
	return false
}

// PointOnLine reports whether p lies on any segment of the polyline.
func PointOnLine(line orb.LineString, p orb.Point) bool {
	if len(line) == 1 {
		return line[0] == p
	}
	for i := 0; i+1 < len(line); i++ {
		if cross(line[i], line[i+1], p) == 0 && onSegment(line[i], line[i+1], p) {
			return true
		}
	}
	return false
}

// LinesIntersect reports whether two polylines share at least one point.
// Single-point polylines degrade to point-on-line tests.
func LinesIntersect(a, b orb.LineString) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	if len(a) == 1 {
		return PointOnLine(b, a[0])
	}
	if len(b) == 1 {
		return PointOnLine(a, b[0])
	}
	for i := 0; i+1 < len(a); i++ {
		for j := 0; j+1 < len(b); j++ {
			if SegmentsIntersect(a[i], a[i+1], b[j], b[j+1]) {
				return true
			}
		}
	}
	return false
}

// RingIntersectsLine reports whether any edge of the ring crosses the polyline.
func RingIntersectsLine(ring orb.Ring, line orb.LineString) bool {
	return LinesIntersect(orb.LineString(ring), line)
}

// Centroid returns the arithmetic mean of a point set.
func Centroid(points []orb.Point) (orb.Point, bool) {
	if len(points) == 0 {
		return orb.Point{}, false
	}
	var sumLon, sumLat float64
	for _, p := range points {
		sumLon += p[0]
		sumLat += p[1]
	}
	n := float64(len(points))
	return orb.Point{sumLon / n, sumLat / n}, true
}

// ClosestPoint returns the member of points closest to target.
func ClosestPoint(points []orb.Point, target orb.Point) (orb.Point, bool) {
	if len(points) == 0 {
		return orb.Point{}, false
	}
	best := points[0]
	bestDist := planar.Distance(best, target)
	for _, p := range points[1:] {
		if d := planar.Distance(p, target); d < bestDist {
			best = p
			bestDist = d
		}
	}
	return best, true
}

// Midpoint returns the member point closest to the centroid of the set, a
// representative location guaranteed to lie on the geometry.
func Midpoint(points []orb.Point) (orb.Point, bool) {
	centroid, ok := Centroid(points)
	if !ok {
		return orb.Point{}, false
	}
	return ClosestPoint(points, centroid)
}
