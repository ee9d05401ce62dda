package geometry

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/wegman-software/pbf2json-go/internal/geomutil"
)

// BoundaryGeometry is a closed multi-polygon (outer rings plus holes) with a
// cached bounding box. Built once per administrative relation.
type BoundaryGeometry struct {
	multiPolygon orb.MultiPolygon
	bound        orb.Bound
}

// NewBoundaryGeometry wraps a multi-polygon. It fails when no rings with
// coordinates are present.
func NewBoundaryGeometry(mp orb.MultiPolygon) (*BoundaryGeometry, error) {
	empty := true
	for _, polygon := range mp {
		for _, ring := range polygon {
			if len(ring) > 0 {
				empty = false
			}
		}
	}
	if empty {
		return nil, ErrEmptyGeometry
	}
	return &BoundaryGeometry{multiPolygon: mp, bound: mp.Bound()}, nil
}

// MultiPolygon returns the wrapped rings.
func (g *BoundaryGeometry) MultiPolygon() orb.MultiPolygon {
	return g.multiPolygon
}

// Bound returns the cached bounding box.
func (g *BoundaryGeometry) Bound() orb.Bound {
	return g.bound
}

// Intersects reports whether any boundary ring crosses the segment's line.
func (g *BoundaryGeometry) Intersects(segment *SegmentGeometry) bool {
	line := segment.Line()
	for _, polygon := range g.multiPolygon {
		for _, ring := range polygon {
			if geomutil.RingIntersectsLine(ring, line) {
				return true
			}
		}
	}
	return false
}

// Owns reports whether the centroid of the segment's points lies inside the
// polygon set.
func (g *BoundaryGeometry) Owns(segment *SegmentGeometry) bool {
	centroid, ok := geomutil.Centroid(segment.Line())
	if !ok {
		return false
	}
	return planar.MultiPolygonContains(g.multiPolygon, centroid)
}
