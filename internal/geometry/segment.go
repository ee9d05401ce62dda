// Package geometry wraps coordinate sequences with cached bounding boxes and
// the containment/intersection predicates the street and boundary stages need.
package geometry

import (
	"errors"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/wegman-software/pbf2json-go/internal/geomutil"
)

// ErrEmptyGeometry is returned when a bounding box cannot be derived because
// the coordinate sequence is empty.
var ErrEmptyGeometry = errors.New("cannot compute bounding box for empty coordinate sequence")

// SegmentGeometry is a single way's polyline with its bounding box. The box
// is computed at construction and the value is immutable afterwards.
type SegmentGeometry struct {
	line  orb.LineString
	bound orb.Bound
}

// NewSegmentGeometry wraps a coordinate sequence. It fails on empty input.
func NewSegmentGeometry(line orb.LineString) (*SegmentGeometry, error) {
	if len(line) == 0 {
		return nil, ErrEmptyGeometry
	}
	return &SegmentGeometry{line: line, bound: line.Bound()}, nil
}

// Line returns the wrapped coordinate sequence.
func (g *SegmentGeometry) Line() orb.LineString {
	return g.line
}

// Len returns the number of points.
func (g *SegmentGeometry) Len() int {
	return len(g.line)
}

// Bound returns the cached bounding box.
func (g *SegmentGeometry) Bound() orb.Bound {
	return g.bound
}

// PaddedBound returns the bounding box expanded by distance on all sides.
// The stored box is not modified.
func (g *SegmentGeometry) PaddedBound(distance float64) orb.Bound {
	return g.bound.Pad(distance)
}

// Length returns the Euclidean length of the bounding box diagonal. This is
// a fast proxy for the polyline length, not the true arc length.
func (g *SegmentGeometry) Length() float64 {
	return planar.Distance(g.bound.Min, g.bound.Max)
}

// RectFromBound converts an orb bounding box into an rtreego rectangle.
// Degenerate extents are widened by a hair so point and axis-aligned
// geometries remain indexable.
func RectFromBound(b orb.Bound) rtreego.Rect {
	const minExtent = 1e-9

	lengths := []float64{
		b.Max[0] - b.Min[0],
		b.Max[1] - b.Min[1],
	}
	for i := range lengths {
		if lengths[i] < minExtent {
			lengths[i] = minExtent
		}
	}

	rect, err := rtreego.NewRect(rtreego.Point{b.Min[0], b.Min[1]}, lengths)
	if err != nil {
		// Unreachable with the widened lengths above.
		panic(err)
	}
	return rect
}

// Intersects reports whether two segment polylines share at least one point.
func (g *SegmentGeometry) Intersects(other *SegmentGeometry) bool {
	return geomutil.LinesIntersect(g.line, other.line)
}
