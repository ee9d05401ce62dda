// Package osmread loads OSM objects from a PBF file into an in-memory
// object map: every object matching a predicate plus everything those
// matches transitively reference. Selected objects therefore never see a
// dangling reference; objects that are neither selected nor referenced are
// simply absent.
package osmread

import (
	"context"
	"fmt"
	"io"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"

	"github.com/wegman-software/pbf2json-go/internal/logger"
	"github.com/wegman-software/pbf2json-go/internal/resolve"
)

// Reader scans one PBF file, rescanning per object type. The file is read
// three times: relations first (so the relation closure and the referenced
// way set are known), then ways, then nodes.
type Reader struct {
	r     io.ReadSeeker
	procs int
}

// New creates a reader over a seekable PBF stream.
func New(r io.ReadSeeker, procs int) *Reader {
	if procs < 1 {
		procs = 1
	}
	return &Reader{r: r, procs: procs}
}

// Load returns all objects matching the predicate plus their transitive
// dependencies.
func (r *Reader) Load(ctx context.Context, match func(osm.Object) bool) (resolve.ObjectMap, error) {
	log := logger.Get()
	objs := make(resolve.ObjectMap)

	log.Debug("Pass 1: scanning relations")
	neededWays, neededNodes, err := r.loadRelations(ctx, match, objs)
	if err != nil {
		return nil, err
	}

	log.Debug("Pass 2: scanning ways")
	if err := r.loadWays(ctx, match, objs, neededWays, neededNodes); err != nil {
		return nil, err
	}

	log.Debug("Pass 3: scanning nodes")
	if err := r.loadNodes(ctx, match, objs, neededNodes); err != nil {
		return nil, err
	}

	log.Debug("Load complete", zap.Int("objects", len(objs)))
	return objs, nil
}

// loadRelations selects matching relations, expands the closure over nested
// relation members, and records which ways and nodes the selection needs.
func (r *Reader) loadRelations(ctx context.Context, match func(osm.Object) bool, objs resolve.ObjectMap) (map[osm.WayID]bool, map[osm.NodeID]bool, error) {
	all := make(map[osm.RelationID]*osm.Relation)
	var selected []osm.RelationID

	err := r.scan(ctx, scanRelations, func(obj osm.Object) {
		relation := obj.(*osm.Relation)
		all[relation.ID] = relation
		if match(obj) {
			selected = append(selected, relation.ID)
		}
	})
	if err != nil {
		return nil, nil, err
	}

	// Closure over nested relations. The queue only grows with unseen ids,
	// so cyclic member references terminate.
	neededWays := make(map[osm.WayID]bool)
	neededNodes := make(map[osm.NodeID]bool)
	visited := make(map[osm.RelationID]bool)
	queue := selected
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		visited[id] = true

		relation, ok := all[id]
		if !ok {
			continue
		}
		objs[relation.ID.FeatureID()] = relation
		for _, member := range relation.Members {
			switch member.Type {
			case osm.TypeNode:
				neededNodes[osm.NodeID(member.Ref)] = true
			case osm.TypeWay:
				neededWays[osm.WayID(member.Ref)] = true
			case osm.TypeRelation:
				queue = append(queue, osm.RelationID(member.Ref))
			}
		}
	}

	return neededWays, neededNodes, nil
}

func (r *Reader) loadWays(ctx context.Context, match func(osm.Object) bool, objs resolve.ObjectMap, neededWays map[osm.WayID]bool, neededNodes map[osm.NodeID]bool) error {
	return r.scan(ctx, scanWays, func(obj osm.Object) {
		way := obj.(*osm.Way)
		if !neededWays[way.ID] && !match(obj) {
			return
		}
		objs[way.ID.FeatureID()] = way
		for _, wayNode := range way.Nodes {
			neededNodes[wayNode.ID] = true
		}
	})
}

func (r *Reader) loadNodes(ctx context.Context, match func(osm.Object) bool, objs resolve.ObjectMap, neededNodes map[osm.NodeID]bool) error {
	return r.scan(ctx, scanNodes, func(obj osm.Object) {
		node := obj.(*osm.Node)
		if !neededNodes[node.ID] && !match(obj) {
			return
		}
		objs[node.ID.FeatureID()] = node
	})
}

type scanKind int

const (
	scanNodes scanKind = iota
	scanWays
	scanRelations
)

// scan runs one pass over the file for a single object type.
func (r *Reader) scan(ctx context.Context, kind scanKind, visit func(osm.Object)) error {
	if _, err := r.r.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind PBF stream: %w", err)
	}

	scanner := osmpbf.New(ctx, r.r, r.procs)
	defer scanner.Close()

	scanner.SkipNodes = kind != scanNodes
	scanner.SkipWays = kind != scanWays
	scanner.SkipRelations = kind != scanRelations

	for scanner.Scan() {
		visit(scanner.Object())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("PBF scan failed: %w", err)
	}
	return nil
}
