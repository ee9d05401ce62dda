// Package resolve turns OSM objects into coordinate sequences by walking
// their references through an in-memory object map.
package resolve

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"

	"github.com/wegman-software/pbf2json-go/internal/geomutil"
)

// ObjectMap is the loaded object set for one extraction call, keyed by
// feature id. It is read-only once loaded.
type ObjectMap map[osm.FeatureID]osm.Object

// Node looks up a node by id.
func (m ObjectMap) Node(id osm.NodeID) *osm.Node {
	if node, ok := m[id.FeatureID()].(*osm.Node); ok {
		return node
	}
	return nil
}

// Way looks up a way by id.
func (m ObjectMap) Way(id osm.WayID) *osm.Way {
	if way, ok := m[id.FeatureID()].(*osm.Way); ok {
		return way
	}
	return nil
}

// Relation looks up a relation by id.
func (m ObjectMap) Relation(id osm.RelationID) *osm.Relation {
	if relation, ok := m[id.FeatureID()].(*osm.Relation); ok {
		return relation
	}
	return nil
}

// WayCoordinates maps a way's node references to (lon, lat) pairs. Nodes
// absent from the map are skipped; dependency-closure loading is expected to
// have fetched every node a selected way needs.
func WayCoordinates(way *osm.Way, objs ObjectMap) orb.LineString {
	line := make(orb.LineString, 0, len(way.Nodes))
	for _, wayNode := range way.Nodes {
		node := objs.Node(wayNode.ID)
		if node == nil {
			continue
		}
		line = append(line, orb.Point{node.Lon, node.Lat})
	}
	return line
}

// RelationCoordinates flattens a relation's members into a point set and
// returns its convex hull ring. Nested relations are followed; a relation id
// seen twice on one branch contributes nothing, which breaks cycles.
func RelationCoordinates(rel *osm.Relation, objs ObjectMap) orb.LineString {
	return relationCoordinates(rel, objs, map[osm.RelationID]bool{})
}

func relationCoordinates(rel *osm.Relation, objs ObjectMap, visited map[osm.RelationID]bool) orb.LineString {
	if visited[rel.ID] {
		return nil
	}
	visited[rel.ID] = true

	var points []orb.Point
	for _, member := range rel.Members {
		switch member.Type {
		case osm.TypeNode:
			if node := objs.Node(osm.NodeID(member.Ref)); node != nil {
				points = append(points, orb.Point{node.Lon, node.Lat})
			}
		case osm.TypeWay:
			if way := objs.Way(osm.WayID(member.Ref)); way != nil {
				points = append(points, WayCoordinates(way, objs)...)
			}
		case osm.TypeRelation:
			if nested := objs.Relation(osm.RelationID(member.Ref)); nested != nil {
				points = append(points, relationCoordinates(nested, objs, visited)...)
			}
		}
	}
	return geomutil.ConvexHullRing(points)
}

// Coordinates resolves any object to its coordinate sequence: a node to a
// single point, a way to its polyline, a relation to its compound hull ring.
func Coordinates(obj osm.Object, objs ObjectMap) orb.LineString {
	switch o := obj.(type) {
	case *osm.Node:
		return orb.LineString{orb.Point{o.Lon, o.Lat}}
	case *osm.Way:
		return WayCoordinates(o, objs)
	case *osm.Relation:
		return RelationCoordinates(o, objs)
	}
	return nil
}
