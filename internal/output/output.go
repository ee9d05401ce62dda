// Package output serializes extraction results as JSON lines or GeoJSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/wegman-software/pbf2json-go/internal/boundary"
	"github.com/wegman-software/pbf2json-go/internal/streets"
)

// JSONStreet is one street record: id, name, optional boundary, approximate
// length and a representative location.
type JSONStreet struct {
	ID       int64      `json:"id"`
	Name     string     `json:"name"`
	Boundary string     `json:"boundary,omitempty"`
	Length   float64    `json:"length"`
	Loc      [2]float64 `json:"loc"`
}

// WriteStreets writes one JSON line per street.
func WriteStreets(w io.Writer, all []*streets.Street) error {
	enc := json.NewEncoder(w)
	for _, street := range all {
		loc, ok := street.Midpoint()
		if !ok {
			return fmt.Errorf("could not calculate midpoint for street %q", street.Name)
		}
		record := JSONStreet{
			ID:       street.ID(),
			Name:     street.Name,
			Boundary: street.Boundary,
			Length:   street.Length(),
			Loc:      [2]float64{loc[0], loc[1]},
		}
		if err := enc.Encode(record); err != nil {
			return err
		}
	}
	return nil
}

// WriteStreetsGeoJSON writes streets as a FeatureCollection, one
// MultiLineString feature per street. Segments with fewer than two points
// are dropped; streets with no drawable segment are skipped.
func WriteStreetsGeoJSON(w io.Writer, all []*streets.Street) error {
	collection := geojson.NewFeatureCollection()
	for _, street := range all {
		var lines orb.MultiLineString
		for _, line := range street.MultiLine() {
			if len(line) >= 2 {
				lines = append(lines, line)
			}
		}
		if len(lines) == 0 {
			continue
		}

		feature := geojson.NewFeature(lines)
		feature.Properties["name"] = street.Name
		feature.Properties["stroke"] = randomColor()
		if street.Boundary != "" {
			feature.Properties["boundary"] = street.Boundary
		}
		collection.Append(feature)
	}
	return json.NewEncoder(w).Encode(collection)
}

// JSONBBox is a bounding box as southwest/northeast (lon, lat) corners.
type JSONBBox struct {
	SW [2]float64 `json:"sw"`
	NE [2]float64 `json:"ne"`
}

// JSONBoundary is one administrative boundary record.
type JSONBoundary struct {
	Name       string   `json:"name"`
	AdminLevel uint8    `json:"admin_level"`
	BBox       JSONBBox `json:"bbox"`
}

// WriteBoundaries writes one JSON line per boundary.
func WriteBoundaries(w io.Writer, boundaries []*boundary.AdminBoundary) error {
	enc := json.NewEncoder(w)
	for _, b := range boundaries {
		bound := b.Geometry.Bound()
		record := JSONBoundary{
			Name:       b.Name,
			AdminLevel: b.AdminLevel,
			BBox: JSONBBox{
				SW: [2]float64{bound.Min[0], bound.Min[1]},
				NE: [2]float64{bound.Max[0], bound.Max[1]},
			},
		}
		if err := enc.Encode(record); err != nil {
			return err
		}
	}
	return nil
}

// WriteBoundariesGeoJSON writes boundaries as a FeatureCollection of
// MultiPolygon features.
func WriteBoundariesGeoJSON(w io.Writer, boundaries []*boundary.AdminBoundary) error {
	collection := geojson.NewFeatureCollection()
	for _, b := range boundaries {
		feature := geojson.NewFeature(b.Geometry.MultiPolygon())
		feature.Properties["name"] = b.Name
		feature.Properties["admin_level"] = fmt.Sprintf("%d", b.AdminLevel)
		collection.Append(feature)
	}
	return json.NewEncoder(w).Encode(collection)
}

func randomColor() string {
	return fmt.Sprintf("#%02X%02X%02X", rand.Intn(256), rand.Intn(256), rand.Intn(256))
}
