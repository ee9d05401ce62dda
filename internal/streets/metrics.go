package streets

import (
	"github.com/paulmach/orb"

	"github.com/wegman-software/pbf2json-go/internal/geomutil"
)

// ID derives the street's output identity as the XOR of its member way ids.
// XOR is commutative, so the id is stable under segment reordering. Distinct
// id sets can collide.
func (s *Street) ID() int64 {
	var id int64
	for _, segment := range s.Segments {
		id ^= int64(segment.WayID)
	}
	return id
}

// Length sums the bounding-box-diagonal lengths of the member segments.
// Like the segment length this is a documented approximation, not arc length.
func (s *Street) Length() float64 {
	var length float64
	for _, segment := range s.Segments {
		length += segment.Geometry.Length()
	}
	return length
}

// Midpoint returns a representative point for the street: the member point
// closest to the centroid of all member points. It reports false when no
// member has coordinates.
func (s *Street) Midpoint() (orb.Point, bool) {
	var points []orb.Point
	for _, segment := range s.Segments {
		points = append(points, segment.Geometry.Line()...)
	}
	return geomutil.Midpoint(points)
}
