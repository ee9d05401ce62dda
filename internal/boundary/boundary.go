// Package boundary assembles administrative boundary polygons from OSM
// relations and indexes them for spatial joins.
package boundary

import (
	"strconv"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/osm"

	"github.com/wegman-software/pbf2json-go/internal/chain"
	"github.com/wegman-software/pbf2json-go/internal/geometry"
	"github.com/wegman-software/pbf2json-go/internal/resolve"
)

// AdminBoundary is one administrative area: name, level and closed polygon
// geometry with a cached bounding box.
type AdminBoundary struct {
	Name       string
	AdminLevel uint8
	Geometry   *geometry.BoundaryGeometry
}

// Bounds implements the rtreego.Spatial interface.
func (b *AdminBoundary) Bounds() rtreego.Rect {
	return geometry.RectFromBound(b.Geometry.Bound())
}

// Build extracts an AdminBoundary from every relation in the object map that
// is tagged boundary=administrative with a name and a numeric admin_level.
// Relations whose ring assembly yields no closed outer ring are skipped;
// extraction is best effort and gaps are not errors.
func Build(objs resolve.ObjectMap) []*AdminBoundary {
	var boundaries []*AdminBoundary
	for _, obj := range objs {
		relation, ok := obj.(*osm.Relation)
		if !ok {
			continue
		}
		if boundary := fromRelation(relation, objs); boundary != nil {
			boundaries = append(boundaries, boundary)
		}
	}
	return boundaries
}

func fromRelation(relation *osm.Relation, objs resolve.ObjectMap) *AdminBoundary {
	if relation.Tags.Find("boundary") != "administrative" {
		return nil
	}
	name := relation.Tags.Find("name")
	if name == "" {
		return nil
	}
	level, err := strconv.ParseUint(relation.Tags.Find("admin_level"), 10, 8)
	if err != nil {
		return nil
	}

	multiPolygon := assembleMultiPolygon(relation, objs)
	if multiPolygon == nil {
		return nil
	}
	geom, err := geometry.NewBoundaryGeometry(multiPolygon)
	if err != nil {
		return nil
	}

	return &AdminBoundary{
		Name:       name,
		AdminLevel: uint8(level),
		Geometry:   geom,
	}
}

// assembleMultiPolygon stitches the relation's member ways into closed rings
// and groups inner rings under the outer ring that contains them.
func assembleMultiPolygon(relation *osm.Relation, objs resolve.ObjectMap) orb.MultiPolygon {
	var outerFragments, innerFragments [][]orb.Point
	for _, member := range relation.Members {
		if member.Type != osm.TypeWay {
			continue
		}
		way := objs.Way(osm.WayID(member.Ref))
		if way == nil {
			continue
		}
		line := resolve.WayCoordinates(way, objs)
		if len(line) == 0 {
			continue
		}
		if member.Role == "inner" {
			innerFragments = append(innerFragments, line)
		} else {
			outerFragments = append(outerFragments, line)
		}
	}

	outers := closedRings(chain.MergeAll(outerFragments))
	if len(outers) == 0 {
		return nil
	}
	inners := closedRings(chain.MergeAll(innerFragments))

	multiPolygon := make(orb.MultiPolygon, len(outers))
	for i, outer := range outers {
		multiPolygon[i] = orb.Polygon{outer}
	}
	for _, inner := range inners {
		for i, outer := range outers {
			if planar.RingContains(outer, inner[0]) {
				multiPolygon[i] = append(multiPolygon[i], inner)
				break
			}
		}
	}
	return multiPolygon
}

func closedRings(chains [][]orb.Point) []orb.Ring {
	var rings []orb.Ring
	for _, points := range chains {
		if len(points) < 4 || points[0] != points[len(points)-1] {
			continue
		}
		rings = append(rings, orb.Ring(points))
	}
	return rings
}

// NewIndex bulk-loads boundaries into a fresh R-tree. The index is local to
// one extraction call and is never mutated after construction.
func NewIndex(boundaries []*AdminBoundary) *rtreego.Rtree {
	spatials := make([]rtreego.Spatial, len(boundaries))
	for i, b := range boundaries {
		spatials[i] = b
	}
	return rtreego.NewTree(2, 25, 50, spatials...)
}
