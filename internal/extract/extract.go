// Package extract composes the reader, filter, clustering and boundary
// stages into the three extraction operations the CLI exposes.
package extract

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"go.uber.org/zap"

	"github.com/wegman-software/pbf2json-go/internal/boundary"
	"github.com/wegman-software/pbf2json-go/internal/config"
	"github.com/wegman-software/pbf2json-go/internal/filter"
	"github.com/wegman-software/pbf2json-go/internal/logger"
	"github.com/wegman-software/pbf2json-go/internal/osmread"
	"github.com/wegman-software/pbf2json-go/internal/output"
	"github.com/wegman-software/pbf2json-go/internal/resolve"
	"github.com/wegman-software/pbf2json-go/internal/streets"
)

// adminGroups builds the selector for administrative boundary relations at
// the given levels.
func adminGroups(levels []uint8) []filter.Group {
	groups := make([]filter.Group, 0, len(levels))
	for _, level := range levels {
		groups = append(groups, filter.Group{Conditions: []filter.Condition{
			{Key: "boundary", Value: "administrative", HasValue: true},
			{Key: "admin_level", Value: fmt.Sprintf("%d", level), HasValue: true},
		}})
	}
	return groups
}

// streetGroups builds the selector for named street ways. With an empty
// name any named way of a qualifying highway class matches.
func streetGroups(classes []string, name string) []filter.Group {
	nameCondition := filter.Condition{Key: "name"}
	if name != "" {
		nameCondition = filter.Condition{Key: "name", Value: name, HasValue: true}
	}

	groups := make([]filter.Group, 0, len(classes))
	for _, class := range classes {
		groups = append(groups, filter.Group{Conditions: []filter.Condition{
			{Key: "highway", Value: class, HasValue: true},
			nameCondition,
		}})
	}
	return groups
}

func tagsOf(obj osm.Object) osm.Tags {
	switch o := obj.(type) {
	case *osm.Node:
		return o.Tags
	case *osm.Way:
		return o.Tags
	case *osm.Relation:
		return o.Tags
	}
	return nil
}

func matcher(groups []filter.Group) func(osm.Object) bool {
	return func(obj osm.Object) bool {
		return filter.Match(tagsOf(obj), groups)
	}
}

// Streets extracts clustered streets from the PBF stream. A non-empty name
// restricts extraction to that street name. A boundaryLevel >= 0 loads the
// administrative boundaries of that level from the same stream and splits
// the streets across them.
func Streets(ctx context.Context, r io.ReadSeeker, cfg *config.Config, name string, boundaryLevel int) ([]*streets.Street, error) {
	log := logger.Get()
	reader := osmread.New(r, cfg.Workers)

	start := time.Now()
	objs, err := reader.Load(ctx, matcher(streetGroups(cfg.Profile.StreetClasses, name)))
	if err != nil {
		return nil, err
	}
	log.Debug("Street objects loaded",
		zap.Int("objects", len(objs)),
		zap.Duration("duration", time.Since(start).Round(time.Millisecond)),
	)

	result := streets.Extract(objs, cfg.Workers)

	if boundaryLevel >= 0 {
		boundaries, err := loadBoundaries(ctx, reader, []uint8{uint8(boundaryLevel)})
		if err != nil {
			return nil, err
		}
		result = streets.SplitByBoundaries(result, boundaries)
	}

	log.Info("Street extraction complete",
		zap.Int("streets", len(result)),
		zap.Duration("duration", time.Since(start).Round(time.Millisecond)),
	)
	return result, nil
}

// Boundaries extracts administrative boundaries for the given levels, or the
// profile's default levels when none are given.
func Boundaries(ctx context.Context, r io.ReadSeeker, cfg *config.Config, levels []uint8) ([]*boundary.AdminBoundary, error) {
	if len(levels) == 0 {
		levels = cfg.Profile.AdminLevels
	}

	log := logger.Get()
	start := time.Now()

	boundaries, err := loadBoundaries(ctx, osmread.New(r, cfg.Workers), levels)
	if err != nil {
		return nil, err
	}

	log.Info("Boundary extraction complete",
		zap.Int("boundaries", len(boundaries)),
		zap.Duration("duration", time.Since(start).Round(time.Millisecond)),
	)
	return boundaries, nil
}

func loadBoundaries(ctx context.Context, reader *osmread.Reader, levels []uint8) ([]*boundary.AdminBoundary, error) {
	objs, err := reader.Load(ctx, matcher(adminGroups(levels)))
	if err != nil {
		return nil, err
	}
	return boundary.Build(objs), nil
}

// Objects extracts raw objects matching the selector groups (all objects
// when groups is empty), each with derived centroid and bounds.
func Objects(ctx context.Context, r io.ReadSeeker, cfg *config.Config, groups []filter.Group, retainCoordinates bool) ([]output.JSONObject, error) {
	match := func(osm.Object) bool { return true }
	if len(groups) > 0 {
		match = matcher(groups)
	}

	objs, err := osmread.New(r, cfg.Workers).Load(ctx, match)
	if err != nil {
		return nil, err
	}

	records := make([]output.JSONObject, 0, len(objs))
	for _, obj := range objs {
		// Dependencies of matches are loaded too; emit matches only.
		if len(groups) > 0 && !filter.Match(tagsOf(obj), groups) {
			continue
		}
		records = append(records, objectRecord(obj, objs, retainCoordinates))
	}
	sortRecords(records)
	return records, nil
}

func objectRecord(obj osm.Object, objs resolve.ObjectMap, retainCoordinates bool) output.JSONObject {
	switch o := obj.(type) {
	case *osm.Node:
		lat, lon := o.Lat, o.Lon
		return output.JSONObject{
			ID:   int64(o.ID),
			Type: "node",
			Lat:  &lat,
			Lon:  &lon,
			Tags: o.Tags.Map(),
		}
	case *osm.Way:
		return shapeRecord(int64(o.ID), "way", o.Tags, resolve.WayCoordinates(o, objs), retainCoordinates)
	case *osm.Relation:
		return shapeRecord(int64(o.ID), "relation", o.Tags, resolve.RelationCoordinates(o, objs), retainCoordinates)
	}
	return output.JSONObject{}
}

func shapeRecord(id int64, objType string, tags osm.Tags, line orb.LineString, retainCoordinates bool) output.JSONObject {
	record := output.JSONObject{
		ID:   id,
		Type: objType,
		Tags: tags.Map(),
	}

	info := resolve.Info(line)
	if info.Centroid != nil {
		record.Centroid = &output.Location{Lat: info.Centroid.Lat(), Lon: info.Centroid.Lon()}
	}
	if info.Bound != nil {
		record.Bounds = &output.Bounds{
			E: info.Bound.Max[0],
			N: info.Bound.Max[1],
			S: info.Bound.Min[1],
			W: info.Bound.Min[0],
		}
	}
	if retainCoordinates {
		coordinates := make([][2]float64, 0, len(line))
		for _, p := range line {
			coordinates = append(coordinates, [2]float64{p[0], p[1]})
		}
		record.Coordinates = coordinates
	}
	return record
}

func sortRecords(records []output.JSONObject) {
	rank := map[string]int{"node": 0, "way": 1, "relation": 2}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Type != records[j].Type {
			return rank[records[i].Type] < rank[records[j].Type]
		}
		return records[i].ID < records[j].ID
	})
}
