// Package station provides the Station entity and the tag-matching rule that
// routes item events to kitchen displays. A station receives an item event iff
// the event's tags intersect the station's tags.
package station

import (
	"orderboard/internal/pkg/errs"
)

// Station is a logical work area in the kitchen (e.g. grill, fry) identified by
// a set of tags. Items carry tags too; the intersection decides routing.
type Station struct {
	id   string
	name string
	tags []string

	isConstructed bool
}

// NewStation creates a station with the given tag set.
// The id is required; the tag set may be empty, in which case the station
// matches nothing.
func NewStation(id, name string, tags []string) (*Station, error) {
	if id == "" {
		return nil, errs.NewValueIsRequiredError("stationId")
	}

	return &Station{
		id:            id,
		name:          name,
		tags:          append([]string(nil), tags...),
		isConstructed: true,
	}, nil
}

// ID returns the station's opaque identifier.
func (s *Station) ID() string {
	return s.id
}

// Name returns the station display name.
func (s *Station) Name() string {
	return s.name
}

// Tags returns a copy of the station's tag set.
func (s *Station) Tags() []string {
	return append([]string(nil), s.tags...)
}

// Matches reports whether an event carrying eventTags belongs to this station.
func (s *Station) Matches(eventTags []string) bool {
	return TagsMatch(eventTags, s.tags)
}

// TagsMatch reports whether two tag sets have a non-empty intersection.
// This is the single routing rule of the system: an item event reaches a
// station iff TagsMatch(event tags, station tags).
func TagsMatch(eventTags, stationTags []string) bool {
	if len(eventTags) == 0 || len(stationTags) == 0 {
		return false
	}

	set := make(map[string]struct{}, len(stationTags))
	for _, tag := range stationTags {
		set[tag] = struct{}{}
	}
	for _, tag := range eventTags {
		if _, ok := set[tag]; ok {
			return true
		}
	}
	return false
}

// SameTags reports whether two tag sets contain exactly the same tags,
// regardless of order or duplication. Used to make station group joins
// idempotent: rejoining with the same tag set is a no-op.
func SameTags(a, b []string) bool {
	setA := make(map[string]struct{}, len(a))
	for _, tag := range a {
		setA[tag] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, tag := range b {
		setB[tag] = struct{}{}
	}
	if len(setA) != len(setB) {
		return false
	}
	for tag := range setA {
		if _, ok := setB[tag]; !ok {
			return false
		}
	}
	return true
}
