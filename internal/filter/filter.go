// Package filter implements the tag selector mini-language used to choose
// which OSM objects are loaded.
//
// A selector is a comma-separated list of OR-groups. Each group is a
// `+`-separated list of conditions that must all hold. A condition is either
// a bare tag key (presence test) or `key~value` (exact value match):
//
//	amenity~fountain+tourism,amenity~townhall
//
// selects objects that are either tagged amenity=fountain with any tourism
// tag, or tagged amenity=townhall.
package filter

import (
	"strings"

	"github.com/paulmach/osm"
)

// Condition is a single tag test.
type Condition struct {
	Key   string
	Value string
	// HasValue distinguishes `key~value` from a bare presence test.
	HasValue bool
}

// Group is a conjunction of conditions.
type Group struct {
	Conditions []Condition
}

// Parse parses a selector string into filter groups.
func Parse(selector string) []Group {
	groupStrs := strings.Split(selector, ",")
	groups := make([]Group, 0, len(groupStrs))
	for _, groupStr := range groupStrs {
		groups = append(groups, parseGroup(groupStr))
	}
	return groups
}

func parseGroup(groupStr string) Group {
	conditionStrs := strings.Split(groupStr, "+")
	conditions := make([]Condition, 0, len(conditionStrs))
	for _, conditionStr := range conditionStrs {
		conditions = append(conditions, parseCondition(conditionStr))
	}
	return Group{Conditions: conditions}
}

func parseCondition(conditionStr string) Condition {
	key, value, found := strings.Cut(conditionStr, "~")
	if !found {
		return Condition{Key: conditionStr}
	}
	return Condition{Key: key, Value: value, HasValue: true}
}

// Match reports whether the tags satisfy the condition.
func (c Condition) Match(tags osm.Tags) bool {
	for _, tag := range tags {
		if tag.Key != c.Key {
			continue
		}
		return !c.HasValue || tag.Value == c.Value
	}
	return false
}

// Match reports whether the tags satisfy every condition in the group.
func (g Group) Match(tags osm.Tags) bool {
	for _, c := range g.Conditions {
		if !c.Match(tags) {
			return false
		}
	}
	return true
}

// Match reports whether the tags satisfy at least one group.
func Match(tags osm.Tags, groups []Group) bool {
	for _, g := range groups {
		if g.Match(tags) {
			return true
		}
	}
	return false
}
