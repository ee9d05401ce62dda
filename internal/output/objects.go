package output

import (
	"encoding/json"
	"io"
)

// Location is a (lat, lon) coordinate.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Bounds is an axis-aligned bounding box in single-letter compass notation.
type Bounds struct {
	E float64 `json:"e"`
	N float64 `json:"n"`
	S float64 `json:"s"`
	W float64 `json:"w"`
}

// JSONObject is one raw object record. Nodes carry lat/lon directly; ways
// and relations carry derived centroid and bounds, which stay null when the
// geometry could not be resolved.
type JSONObject struct {
	ID          int64             `json:"id"`
	Type        string            `json:"type"`
	Lat         *float64          `json:"lat,omitempty"`
	Lon         *float64          `json:"lon,omitempty"`
	Tags        map[string]string `json:"tags"`
	Centroid    *Location         `json:"centroid,omitempty"`
	Bounds      *Bounds           `json:"bounds,omitempty"`
	Coordinates [][2]float64      `json:"coordinates,omitempty"`
}

// WriteObjects writes one JSON line per object record.
func WriteObjects(w io.Writer, objects []JSONObject) error {
	enc := json.NewEncoder(w)
	for _, object := range objects {
		if err := enc.Encode(object); err != nil {
			return err
		}
	}
	return nil
}
