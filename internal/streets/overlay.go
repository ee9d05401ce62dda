package streets

import (
	"github.com/wegman-software/pbf2json-go/internal/boundary"
	"github.com/wegman-software/pbf2json-go/internal/geometry"
)

// SplitByBoundaries joins streets against the administrative boundaries
// whose envelopes they intersect.
//
// A street with no matching boundary passes through unchanged. A single
// match sets the street's boundary in place. Multiple matches replace the
// street with one clone per boundary; the clones share the same segment
// list, so a street straddling two districts appears once per district.
// Consumers must not naively sum lengths across a name group.
func SplitByBoundaries(allStreets []*Street, boundaries []*boundary.AdminBoundary) []*Street {
	index := boundary.NewIndex(boundaries)

	result := make([]*Street, 0, len(allStreets))
	for _, street := range allStreets {
		envelope := geometry.RectFromBound(street.Bound())

		var matches []*boundary.AdminBoundary
		for _, spatial := range index.SearchIntersect(envelope) {
			matches = append(matches, spatial.(*boundary.AdminBoundary))
		}

		switch len(matches) {
		case 0:
			result = append(result, street)
		case 1:
			street.Boundary = matches[0].Name
			result = append(result, street)
		default:
			for _, match := range matches {
				clone := *street
				clone.Boundary = match.Name
				result = append(result, &clone)
			}
		}
	}
	return result
}
