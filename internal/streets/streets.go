// Package streets reconstructs logical streets from independently digitized
// way fragments. Fragments sharing a name are clustered by spatial adjacency:
// an R-tree provides padded-envelope candidates, an exact line intersection
// test confirms adjacency, and connected components of the resulting graph
// become streets.
package streets

import (
	"sync"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/wegman-software/pbf2json-go/internal/geometry"
	"github.com/wegman-software/pbf2json-go/internal/resolve"
)

// rtreePadding is the envelope tolerance used during the broad phase. It
// exists to catch near-miss endpoint gaps from digitization noise; candidate
// pairs still have to pass the exact intersection test.
const rtreePadding = 1e-3

// Segment is one way fragment. Identity is the way id alone; two segments
// are the same segment iff they came from the same way.
type Segment struct {
	WayID    osm.WayID
	Geometry *geometry.SegmentGeometry
}

// NewSegment resolves a way's coordinates into a segment. Ways whose
// resolution yields no points are rejected.
func NewSegment(way *osm.Way, objs resolve.ObjectMap) (*Segment, error) {
	geom, err := geometry.NewSegmentGeometry(resolve.WayCoordinates(way, objs))
	if err != nil {
		return nil, err
	}
	return &Segment{WayID: way.ID, Geometry: geom}, nil
}

// Bounds implements the rtreego.Spatial interface with the unpadded envelope.
func (s *Segment) Bounds() rtreego.Rect {
	return geometry.RectFromBound(s.Geometry.Bound())
}

// Street is one connected cluster of same-named segments. Boundary is empty
// until the boundary overlay assigns one.
type Street struct {
	Name     string
	Segments []*Segment
	Boundary string
}

// Extract clusters every named way in the object map into streets. Name
// groups are independent and are processed in parallel; the order of the
// returned streets is unspecified.
func Extract(objs resolve.ObjectMap, workers int) []*Street {
	if workers < 1 {
		workers = 1
	}

	var (
		mu      sync.Mutex
		streets []*Street
	)

	var g errgroup.Group
	g.SetLimit(workers)
	for name, ways := range nameGroups(objs) {
		name, ways := name, ways
		g.Go(func() error {
			clustered := clusters(buildSegments(ways, objs))
			mu.Lock()
			defer mu.Unlock()
			for _, segments := range clustered {
				streets = append(streets, &Street{Name: name, Segments: segments})
			}
			return nil
		})
	}
	_ = g.Wait()

	return streets
}

// nameGroups collects the ways of the object map by their name tag.
func nameGroups(objs resolve.ObjectMap) map[string][]*osm.Way {
	groups := make(map[string][]*osm.Way)
	for _, obj := range objs {
		way, ok := obj.(*osm.Way)
		if !ok {
			continue
		}
		name := way.Tags.Find("name")
		if name == "" {
			continue
		}
		groups[name] = append(groups[name], way)
	}
	return groups
}

func buildSegments(ways []*osm.Way, objs resolve.ObjectMap) []*Segment {
	segments := make([]*Segment, 0, len(ways))
	for _, way := range ways {
		segment, err := NewSegment(way, objs)
		if err != nil {
			continue
		}
		segments = append(segments, segment)
	}
	return segments
}

type wayPair struct {
	a, b osm.WayID
}

// intersections finds all segment pairs that truly intersect. The padded
// envelope query is only a broad phase; pairs whose envelopes touch but
// whose lines do not are discarded.
func intersections(tree *rtreego.Rtree, segments []*Segment) map[wayPair][2]*Segment {
	pairs := make(map[wayPair][2]*Segment)
	for _, segment := range segments {
		queryRect := geometry.RectFromBound(segment.Geometry.PaddedBound(rtreePadding))
		for _, candidate := range tree.SearchIntersect(queryRect) {
			other := candidate.(*Segment)
			if other.WayID == segment.WayID {
				continue
			}
			if !segment.Geometry.Intersects(other.Geometry) {
				continue
			}
			pair := wayPair{a: segment.WayID, b: other.WayID}
			if pair.b < pair.a {
				pair.a, pair.b = pair.b, pair.a
			}
			pairs[pair] = [2]*Segment{segment, other}
		}
	}
	return pairs
}

// clusters partitions segments into connected components. Each component is
// one street: a maximal set of fragments reachable through confirmed
// intersections.
func clusters(segments []*Segment) [][]*Segment {
	if len(segments) == 0 {
		return nil
	}

	// Deduplicate by way id; the graph relies on way id identity.
	byID := make(map[osm.WayID]*Segment, len(segments))
	unique := segments[:0:0]
	for _, segment := range segments {
		if _, seen := byID[segment.WayID]; seen {
			continue
		}
		byID[segment.WayID] = segment
		unique = append(unique, segment)
	}

	spatials := make([]rtreego.Spatial, len(unique))
	for i, segment := range unique {
		spatials[i] = segment
	}
	tree := rtreego.NewTree(2, 25, 50, spatials...)

	g := simple.NewUndirectedGraph()
	for _, segment := range unique {
		g.AddNode(simple.Node(segment.WayID))
	}
	for _, pair := range intersections(tree, unique) {
		g.SetEdge(g.NewEdge(simple.Node(pair[0].WayID), simple.Node(pair[1].WayID)))
	}

	components := topo.ConnectedComponents(g)
	result := make([][]*Segment, 0, len(components))
	for _, component := range components {
		cluster := make([]*Segment, 0, len(component))
		for _, node := range component {
			cluster = append(cluster, byID[osm.WayID(node.ID())])
		}
		result = append(result, cluster)
	}
	return result
}

// Bound returns the combined envelope of all member segment points.
func (s *Street) Bound() orb.Bound {
	bound := s.Segments[0].Geometry.Bound()
	for _, segment := range s.Segments[1:] {
		bound = bound.Union(segment.Geometry.Bound())
	}
	return bound
}

// MultiLine returns the member polylines, for serialization.
func (s *Street) MultiLine() []orb.LineString {
	lines := make([]orb.LineString, 0, len(s.Segments))
	for _, segment := range s.Segments {
		lines = append(lines, segment.Geometry.Line())
	}
	return lines
}
