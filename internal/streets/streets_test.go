package streets

import (
	"math"
	"sort"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"

	"github.com/wegman-software/pbf2json-go/internal/resolve"
)

func objectMap(objects ...osm.Object) resolve.ObjectMap {
	m := make(resolve.ObjectMap, len(objects))
	for _, obj := range objects {
		switch o := obj.(type) {
		case *osm.Node:
			m[o.ID.FeatureID()] = o
		case *osm.Way:
			m[o.ID.FeatureID()] = o
		case *osm.Relation:
			m[o.ID.FeatureID()] = o
		}
	}
	return m
}

func node(id int64, lon, lat float64) *osm.Node {
	return &osm.Node{ID: osm.NodeID(id), Lon: lon, Lat: lat}
}

func namedWay(id int64, name string, nodeIDs ...int64) *osm.Way {
	w := &osm.Way{ID: osm.WayID(id), Tags: osm.Tags{{Key: "name", Value: name}}}
	for _, nid := range nodeIDs {
		w.Nodes = append(w.Nodes, osm.WayNode{ID: osm.NodeID(nid)})
	}
	return w
}

func segmentCounts(all []*Street) []int {
	counts := make([]int, 0, len(all))
	for _, street := range all {
		counts = append(counts, len(street.Segments))
	}
	sort.Ints(counts)
	return counts
}

func TestExtractClustering(t *testing.T) {
	tests := []struct {
		name    string
		objects []osm.Object
		want    []int
	}{
		{
			name: "crossing fragments form one street",
			objects: []osm.Object{
				node(1, 0, 0), node(2, 2, 2),
				node(3, 0, 2), node(4, 2, 0),
				namedWay(10, "Hauptstrasse", 1, 2),
				namedWay(11, "Hauptstrasse", 3, 4),
			},
			want: []int{2},
		},
		{
			name: "fragments touching at an endpoint form one street",
			objects: []osm.Object{
				node(1, 0, 0), node(2, 1, 0), node(3, 2, 0),
				namedWay(10, "Hauptstrasse", 1, 2),
				namedWay(11, "Hauptstrasse", 2, 3),
			},
			want: []int{2},
		},
		{
			name: "distant fragments stay separate streets",
			objects: []osm.Object{
				node(1, 0, 0), node(2, 1, 0),
				node(3, 50, 50), node(4, 51, 50),
				namedWay(10, "Hauptstrasse", 1, 2),
				namedWay(11, "Hauptstrasse", 3, 4),
			},
			want: []int{1, 1},
		},
		{
			name: "overlapping envelopes without a crossing stay separate",
			objects: []osm.Object{
				node(1, 1, 1), node(2, 3, 3),
				node(3, 2, 0), node(4, 3, 2),
				namedWay(10, "Hauptstrasse", 1, 2),
				namedWay(11, "Hauptstrasse", 3, 4),
			},
			want: []int{1, 1},
		},
		{
			name: "three chained fragments form one street",
			objects: []osm.Object{
				node(1, 0, 0), node(2, 1, 0), node(3, 2, 0), node(4, 3, 0),
				namedWay(10, "Hauptstrasse", 1, 2),
				namedWay(11, "Hauptstrasse", 2, 3),
				namedWay(12, "Hauptstrasse", 3, 4),
			},
			want: []int{3},
		},
		{
			name: "different names never merge",
			objects: []osm.Object{
				node(1, 0, 0), node(2, 2, 2),
				node(3, 0, 2), node(4, 2, 0),
				namedWay(10, "Hauptstrasse", 1, 2),
				namedWay(11, "Nebenstrasse", 3, 4),
			},
			want: []int{1, 1},
		},
		{
			name: "unnamed ways are ignored",
			objects: []osm.Object{
				node(1, 0, 0), node(2, 1, 0),
				&osm.Way{ID: 10, Nodes: osm.WayNodes{{ID: 1}, {ID: 2}}},
			},
			want: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := segmentCounts(Extract(objectMap(tt.objects...), 1))
			if len(got) != len(tt.want) {
				t.Fatalf("street segment counts = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("street segment counts = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestExtractParallelWorkers(t *testing.T) {
	objs := objectMap(
		node(1, 0, 0), node(2, 1, 0),
		node(3, 10, 10), node(4, 11, 10),
		node(5, 20, 20), node(6, 21, 20),
		namedWay(10, "Hauptstrasse", 1, 2),
		namedWay(11, "Nebenstrasse", 3, 4),
		namedWay(12, "Ringstrasse", 5, 6),
	)

	all := Extract(objs, 4)
	if len(all) != 3 {
		t.Fatalf("expected 3 streets, got %d", len(all))
	}

	names := make(map[string]bool)
	for _, street := range all {
		names[street.Name] = true
	}
	for _, name := range []string{"Hauptstrasse", "Nebenstrasse", "Ringstrasse"} {
		if !names[name] {
			t.Errorf("missing street %q", name)
		}
	}
}

func streetFromWays(t *testing.T, objs resolve.ObjectMap, name string, wayIDs ...int64) *Street {
	t.Helper()
	street := &Street{Name: name}
	for _, id := range wayIDs {
		segment, err := NewSegment(objs.Way(osm.WayID(id)), objs)
		if err != nil {
			t.Fatalf("NewSegment(%d): %v", id, err)
		}
		street.Segments = append(street.Segments, segment)
	}
	return street
}

func TestStreetID(t *testing.T) {
	objs := objectMap(
		node(1, 0, 0), node(2, 1, 0), node(3, 2, 0),
		namedWay(10, "Hauptstrasse", 1, 2),
		namedWay(11, "Hauptstrasse", 2, 3),
	)

	forward := streetFromWays(t, objs, "Hauptstrasse", 10, 11)
	backward := streetFromWays(t, objs, "Hauptstrasse", 11, 10)

	if forward.ID() != backward.ID() {
		t.Errorf("id depends on segment order: %d vs %d", forward.ID(), backward.ID())
	}
	if want := int64(10 ^ 11); forward.ID() != want {
		t.Errorf("ID = %d, want %d", forward.ID(), want)
	}
}

func TestStreetLength(t *testing.T) {
	objs := objectMap(
		node(1, 0, 0), node(2, 3, 4),
		node(3, 10, 0), node(4, 16, 8),
		namedWay(10, "Hauptstrasse", 1, 2),
		namedWay(11, "Hauptstrasse", 3, 4),
	)

	street := streetFromWays(t, objs, "Hauptstrasse", 10, 11)
	if got := street.Length(); math.Abs(got-15) > 1e-9 {
		t.Errorf("Length = %f, want 15", got)
	}
}

func TestStreetMidpoint(t *testing.T) {
	objs := objectMap(
		node(1, 0, 0), node(2, 4, 0),
		node(3, 10, 0),
		namedWay(10, "Hauptstrasse", 1, 2),
		namedWay(11, "Hauptstrasse", 2, 3),
	)

	street := streetFromWays(t, objs, "Hauptstrasse", 10, 11)
	got, ok := street.Midpoint()
	if !ok {
		t.Fatal("expected a midpoint")
	}
	// Member points are (0,0), (4,0), (4,0), (10,0); their centroid sits at
	// x=4.5, so the closest member is (4,0).
	if got != (orb.Point{4, 0}) {
		t.Errorf("Midpoint = %v, want (4, 0)", got)
	}
}

func TestStreetBound(t *testing.T) {
	objs := objectMap(
		node(1, 0, 0), node(2, 1, 1),
		node(3, 5, 5), node(4, 6, 7),
		namedWay(10, "Hauptstrasse", 1, 2),
		namedWay(11, "Hauptstrasse", 3, 4),
	)

	street := streetFromWays(t, objs, "Hauptstrasse", 10, 11)
	bound := street.Bound()
	if bound.Min != (orb.Point{0, 0}) || bound.Max != (orb.Point{6, 7}) {
		t.Errorf("Bound = %v, want (0,0)-(6,7)", bound)
	}
}
