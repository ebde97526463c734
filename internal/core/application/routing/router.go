// Package routing decides which push events belong to a kitchen station and
// manages the station's membership in its tag-scoped event group.
package routing

import (
	"context"
	"sync"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/station"
	"orderboard/internal/core/ports"
	"orderboard/internal/pkg/errs"
)

// Router owns a station's view of the event stream: it announces the station's
// tag interest so server-side fan-out can target it, and filters incoming
// item-level events by tag intersection.
//
// Join is idempotent: rejoining with an unchanged tag set is a no-op from the
// client's perspective. There is no partial-update message on the wire, so a
// tag-set change must leave and rejoin with the full new set.
type Router struct {
	mu      sync.Mutex
	channel ports.EventChannel
	session kernel.Session
	station *station.Station
	tags    []string
	joined  bool
}

// NewRouter creates a router for the given station within a session.
func NewRouter(session kernel.Session, st *station.Station, channel ports.EventChannel) (*Router, error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}
	if st == nil {
		return nil, errs.NewValueIsRequiredError("station")
	}
	if channel == nil {
		return nil, errs.NewValueIsRequiredError("channel")
	}

	return &Router{
		channel: channel,
		session: session,
		station: st,
		tags:    st.Tags(),
	}, nil
}

// Station returns the station this router serves.
func (r *Router) Station() *station.Station {
	return r.station
}

// Tags returns the tag set currently announced to the event group.
func (r *Router) Tags() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.tags...)
}

// Join announces the station's tag interest on the channel.
// Rejoining while already joined with the same tag set is a no-op.
func (r *Router) Join(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.joinLocked(ctx)
}

func (r *Router) joinLocked(ctx context.Context) error {
	if r.joined {
		return nil
	}

	payload := ports.StationJoinedPayload{
		RestaurantID: r.session.RestaurantID(),
		LocationID:   r.session.LocationID(),
		StationID:    r.station.ID(),
		StationTags:  append([]string(nil), r.tags...),
	}
	if err := r.channel.Emit(ctx, ports.TopicStationJoined, payload); err != nil {
		return err
	}

	r.joined = true
	return nil
}

// Leave withdraws from the event group. The transport has no leave message;
// server-side membership is scoped to the connection and replaced by the next
// join, so leaving is purely local bookkeeping.
func (r *Router) Leave() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.joined = false
}

// SetTags replaces the announced tag set. An unchanged set is a no-op; a
// changed set leaves and rejoins with the full new set.
func (r *Router) SetTags(ctx context.Context, tags []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if station.SameTags(r.tags, tags) {
		return nil
	}

	r.joined = false
	r.tags = append([]string(nil), tags...)
	return r.joinLocked(ctx)
}

// Matches reports whether an event carrying eventTags belongs to this station,
// defined as non-empty tag intersection.
func (r *Router) Matches(eventTags []string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return station.TagsMatch(eventTags, r.tags)
}
