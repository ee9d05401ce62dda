package resolve

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// GeoInfo carries the derived geographic facts for one resolved object.
// Either field may be nil when the coordinate sequence is empty.
type GeoInfo struct {
	Centroid *orb.Point
	Bound    *orb.Bound
}

// Info derives centroid and bounding box from a coordinate sequence. Closed
// sequences are treated as polygons, open ones as linestrings.
func Info(line orb.LineString) GeoInfo {
	if len(line) == 0 {
		return GeoInfo{}
	}

	bound := line.Bound()
	var centroid orb.Point
	if len(line) == 1 {
		centroid = line[0]
	} else if len(line) >= 4 && line[0] == line[len(line)-1] {
		centroid, _ = planar.CentroidArea(orb.Polygon{orb.Ring(line)})
	} else {
		centroid, _ = planar.CentroidArea(line)
	}

	return GeoInfo{Centroid: &centroid, Bound: &bound}
}
